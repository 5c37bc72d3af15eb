package repository

import (
	"context"
	"errors"

	"trial-bridge/internal/domain/entity"
	domainRepo "trial-bridge/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type educationalResourceRepository struct{}

func NewEducationalResourceRepository() domainRepo.EducationalResourceRepository {
	return &educationalResourceRepository{}
}

func (r *educationalResourceRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.EducationalResource, error) {
	var resources []entity.EducationalResource
	err := db.WithContext(ctx).Order("id ASC").Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *educationalResourceRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*entity.EducationalResource, error) {
	var resource entity.EducationalResource
	err := db.WithContext(ctx).Where("id = ?", id).First(&resource).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &resource, nil
}

func (r *educationalResourceRepository) FindByType(ctx context.Context, db *gorm.DB, resourceType entity.ResourceType) ([]entity.EducationalResource, error) {
	var resources []entity.EducationalResource
	err := db.WithContext(ctx).Where("type = ?", resourceType).Order("id ASC").Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *educationalResourceRepository) Exists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.EducationalResource{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// IncrementViewCount bumps the counter in SQL so concurrent reads never lose a view.
func (r *educationalResourceRepository) IncrementViewCount(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	result := db.WithContext(ctx).Model(&entity.EducationalResource{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	return result.RowsAffected > 0, result.Error
}

type feedbackRepository struct{}

func NewFeedbackRepository() domainRepo.FeedbackRepository {
	return &feedbackRepository{}
}

func (r *feedbackRepository) Upsert(ctx context.Context, db *gorm.DB, feedback *entity.PatientFeedback) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "resource_id"}, {Name: "patient_email"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "date_submitted"}),
	}).Create(feedback).Error
}

func (r *feedbackRepository) FindByResourceAndPatient(ctx context.Context, db *gorm.DB, resourceID, patientEmail string) (*entity.PatientFeedback, error) {
	var feedback entity.PatientFeedback
	err := db.WithContext(ctx).
		Where("resource_id = ? AND patient_email = ?", resourceID, patientEmail).
		First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) FindByResource(ctx context.Context, db *gorm.DB, resourceID string) ([]entity.PatientFeedback, error) {
	var feedback []entity.PatientFeedback
	err := db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("date_submitted DESC, id ASC").
		Find(&feedback).Error
	if err != nil {
		return nil, err
	}
	return feedback, nil
}
