package repository

import (
	"context"

	"trial-bridge/internal/domain/entity"

	"gorm.io/gorm"
)

type HealthRecordRepository interface {
	Create(ctx context.Context, db *gorm.DB, record *entity.HealthRecord) error
	FindByPatient(ctx context.Context, db *gorm.DB, patientEmail string) ([]entity.HealthRecord, error)
}
