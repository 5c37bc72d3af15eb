package repository

import (
	"context"

	"gorm.io/gorm"
)

type RoleRepository interface {
	EnsureDefaults(ctx context.Context, db *gorm.DB) error
}
