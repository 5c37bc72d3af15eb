package repository

import (
	"context"

	"trial-bridge/internal/domain/entity"
	domainRepo "trial-bridge/internal/domain/repository"

	"gorm.io/gorm"
)

type healthRecordRepository struct{}

func NewHealthRecordRepository() domainRepo.HealthRecordRepository {
	return &healthRecordRepository{}
}

func (r *healthRecordRepository) Create(ctx context.Context, db *gorm.DB, record *entity.HealthRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *healthRecordRepository) FindByPatient(ctx context.Context, db *gorm.DB, patientEmail string) ([]entity.HealthRecord, error) {
	var records []entity.HealthRecord
	err := db.WithContext(ctx).
		Where("patient_email = ?", patientEmail).
		Order("date ASC, created_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
