package repository

import (
	"context"

	"trial-bridge/internal/domain/entity"
	domainRepo "trial-bridge/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type roleRepository struct{}

func NewRoleRepository() domainRepo.RoleRepository {
	return &roleRepository{}
}

// EnsureDefaults inserts the fixed roles, leaving existing rows untouched.
func (r *roleRepository) EnsureDefaults(ctx context.Context, db *gorm.DB) error {
	roles := entity.DefaultRoles()
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error
}
