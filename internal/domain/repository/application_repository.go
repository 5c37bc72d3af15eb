package repository

import (
	"context"

	"trial-bridge/internal/domain/entity"

	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(ctx context.Context, db *gorm.DB, application *entity.TrialApplication) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*entity.TrialApplication, error)
	FindByPatientAndTrial(ctx context.Context, db *gorm.DB, patientEmail, trialID string) (*entity.TrialApplication, error)
	FindByPatient(ctx context.Context, db *gorm.DB, patientEmail string) ([]entity.TrialApplication, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.TrialApplication, error)
	CountByPatient(ctx context.Context, db *gorm.DB, patientEmail string) (int64, error)
	UpdateReview(ctx context.Context, db *gorm.DB, application *entity.TrialApplication) error
}
