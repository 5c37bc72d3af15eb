package repository

import (
	"context"

	"trial-bridge/internal/domain/entity"

	"gorm.io/gorm"
)

type TrialRepository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Trial, error)
	FindByID(ctx context.Context, db *gorm.DB, id string) (*entity.Trial, error)
	FindByStatus(ctx context.Context, db *gorm.DB, status entity.TrialStatus) ([]entity.Trial, error)
	Exists(ctx context.Context, db *gorm.DB, id string) (bool, error)
	// Enroll adds the patient to the trial; enrolling twice is a no-op.
	Enroll(ctx context.Context, db *gorm.DB, trialID, patientEmail string) error
	FindEnrolledEmails(ctx context.Context, db *gorm.DB, trialID string) ([]string, error)
}
