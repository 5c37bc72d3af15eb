package repository

import (
	"context"
	"errors"

	"trial-bridge/internal/domain/entity"
	domainRepo "trial-bridge/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, db, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	return r.findOne(ctx, db, "email = ?", email)
}

func (r *userRepository) FindByPhone(ctx context.Context, db *gorm.DB, phone string) (*entity.User, error) {
	return r.findOne(ctx, db, "phone = ?", phone)
}

func (r *userRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.User, error) {
	return r.findOne(ctx, db, "username = ?", username)
}

func (r *userRepository) findOne(ctx context.Context, db *gorm.DB, query string, args ...any) (*entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).Preload("Role").Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
