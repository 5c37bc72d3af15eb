package repository

import (
	"context"

	"trial-bridge/internal/domain/entity"

	"gorm.io/gorm"
)

type EducationalResourceRepository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.EducationalResource, error)
	FindByID(ctx context.Context, db *gorm.DB, id string) (*entity.EducationalResource, error)
	FindByType(ctx context.Context, db *gorm.DB, resourceType entity.ResourceType) ([]entity.EducationalResource, error)
	Exists(ctx context.Context, db *gorm.DB, id string) (bool, error)
	// IncrementViewCount returns false when no resource has the id.
	IncrementViewCount(ctx context.Context, db *gorm.DB, id string) (bool, error)
}

type FeedbackRepository interface {
	// Upsert inserts or replaces the (resource, patient) feedback.
	Upsert(ctx context.Context, db *gorm.DB, feedback *entity.PatientFeedback) error
	FindByResourceAndPatient(ctx context.Context, db *gorm.DB, resourceID, patientEmail string) (*entity.PatientFeedback, error)
	FindByResource(ctx context.Context, db *gorm.DB, resourceID string) ([]entity.PatientFeedback, error)
}
