package repository

import (
	"context"

	"trial-bridge/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.PatientProfile, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.PatientProfile, error)
	Exists(ctx context.Context, db *gorm.DB, email string) (bool, error)
	Update(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error
}
