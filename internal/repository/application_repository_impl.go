package repository

import (
	"context"
	"errors"

	"trial-bridge/internal/domain/entity"
	domainRepo "trial-bridge/internal/domain/repository"

	"gorm.io/gorm"
)

type applicationRepository struct{}

func NewApplicationRepository() domainRepo.ApplicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(ctx context.Context, db *gorm.DB, application *entity.TrialApplication) error {
	return db.WithContext(ctx).Create(application).Error
}

func (r *applicationRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*entity.TrialApplication, error) {
	var application entity.TrialApplication
	err := db.WithContext(ctx).Preload("Trial").Where("id = ?", id).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) FindByPatientAndTrial(ctx context.Context, db *gorm.DB, patientEmail, trialID string) (*entity.TrialApplication, error) {
	var application entity.TrialApplication
	err := db.WithContext(ctx).
		Where("patient_email = ? AND trial_id = ?", patientEmail, trialID).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) FindByPatient(ctx context.Context, db *gorm.DB, patientEmail string) ([]entity.TrialApplication, error) {
	var applications []entity.TrialApplication
	err := db.WithContext(ctx).Preload("Trial").
		Where("patient_email = ?", patientEmail).
		Order("submission_date DESC, id ASC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *applicationRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.TrialApplication, error) {
	var applications []entity.TrialApplication
	err := db.WithContext(ctx).Preload("Trial").Order("id ASC").Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *applicationRepository) CountByPatient(ctx context.Context, db *gorm.DB, patientEmail string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.TrialApplication{}).
		Where("patient_email = ?", patientEmail).
		Count(&count).Error
	return count, err
}

func (r *applicationRepository) UpdateReview(ctx context.Context, db *gorm.DB, application *entity.TrialApplication) error {
	return db.WithContext(ctx).Model(&entity.TrialApplication{}).
		Where("id = ?", application.ID).
		Updates(map[string]any{
			"status": application.Status,
			"notes":  application.Notes,
		}).Error
}
