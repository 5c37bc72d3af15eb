package repository

import (
	"context"
	"errors"

	"trial-bridge/internal/domain/entity"
	domainRepo "trial-bridge/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type trialRepository struct{}

func NewTrialRepository() domainRepo.TrialRepository {
	return &trialRepository{}
}

func preloadEnrollments(db *gorm.DB) *gorm.DB {
	return db.Preload("Enrollments", func(db *gorm.DB) *gorm.DB {
		return db.Order("enrolled_at ASC, patient_email ASC")
	})
}

func (r *trialRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Trial, error) {
	var trials []entity.Trial
	err := preloadEnrollments(db.WithContext(ctx)).Order("id ASC").Find(&trials).Error
	if err != nil {
		return nil, err
	}
	return trials, nil
}

func (r *trialRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*entity.Trial, error) {
	var trial entity.Trial
	err := preloadEnrollments(db.WithContext(ctx)).Where("id = ?", id).First(&trial).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trial, nil
}

func (r *trialRepository) FindByStatus(ctx context.Context, db *gorm.DB, status entity.TrialStatus) ([]entity.Trial, error) {
	var trials []entity.Trial
	err := preloadEnrollments(db.WithContext(ctx)).
		Where("status = ?", status).
		Order("id ASC").
		Find(&trials).Error
	if err != nil {
		return nil, err
	}
	return trials, nil
}

func (r *trialRepository) Exists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Trial{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Enroll relies on the (trial_id, patient_email) primary key so concurrent
// approvals of the same patient insert a single row.
func (r *trialRepository) Enroll(ctx context.Context, db *gorm.DB, trialID, patientEmail string) error {
	enrollment := &entity.TrialEnrollment{
		TrialID:      trialID,
		PatientEmail: patientEmail,
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(enrollment).Error
}

func (r *trialRepository) FindEnrolledEmails(ctx context.Context, db *gorm.DB, trialID string) ([]string, error) {
	emails := []string{}
	err := db.WithContext(ctx).Model(&entity.TrialEnrollment{}).
		Where("trial_id = ?", trialID).
		Order("enrolled_at ASC, patient_email ASC").
		Pluck("patient_email", &emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}
