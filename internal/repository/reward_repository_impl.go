package repository

import (
	"context"
	"errors"

	"trial-bridge/internal/domain/entity"
	domainRepo "trial-bridge/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type rewardRepository struct{}

func NewRewardRepository() domainRepo.RewardRepository {
	return &rewardRepository{}
}

func (r *rewardRepository) FindAllRewards(ctx context.Context, db *gorm.DB) ([]entity.Reward, error) {
	var rewards []entity.Reward
	err := db.WithContext(ctx).Order("id ASC").Find(&rewards).Error
	if err != nil {
		return nil, err
	}
	return rewards, nil
}

func (r *rewardRepository) FindRewardByID(ctx context.Context, db *gorm.DB, id string) (*entity.Reward, error) {
	var reward entity.Reward
	err := db.WithContext(ctx).Where("id = ?", id).First(&reward).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reward, nil
}

func (r *rewardRepository) FindAllAchievements(ctx context.Context, db *gorm.DB) ([]entity.Achievement, error) {
	var achievements []entity.Achievement
	err := db.WithContext(ctx).Order("id ASC").Find(&achievements).Error
	if err != nil {
		return nil, err
	}
	return achievements, nil
}

func (r *rewardRepository) FindAchievementByID(ctx context.Context, db *gorm.DB, id string) (*entity.Achievement, error) {
	var achievement entity.Achievement
	err := db.WithContext(ctx).Where("id = ?", id).First(&achievement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &achievement, nil
}

func (r *rewardRepository) FindPatientAchievements(ctx context.Context, db *gorm.DB, patientEmail string) ([]entity.PatientAchievement, error) {
	var awards []entity.PatientAchievement
	err := db.WithContext(ctx).Preload("Achievement").
		Where("patient_email = ?", patientEmail).
		Order("achievement_id ASC").
		Find(&awards).Error
	if err != nil {
		return nil, err
	}
	return awards, nil
}

func (r *rewardRepository) AwardAchievement(ctx context.Context, db *gorm.DB, award *entity.PatientAchievement) (bool, error) {
	result := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Omit("Achievement").Create(award)
	return result.RowsAffected > 0, result.Error
}

func (r *rewardRepository) CreateRedemption(ctx context.Context, db *gorm.DB, redemption *entity.RewardRedemption) error {
	return db.WithContext(ctx).Omit("Reward").Create(redemption).Error
}

func (r *rewardRepository) TotalEarned(ctx context.Context, db *gorm.DB, patientEmail string) (int, error) {
	var total int
	err := db.WithContext(ctx).Model(&entity.PatientAchievement{}).
		Joins("JOIN achievements ON achievements.id = patient_achievements.achievement_id").
		Where("patient_achievements.patient_email = ?", patientEmail).
		Select("COALESCE(SUM(achievements.points_awarded), 0)").
		Scan(&total).Error
	return total, err
}

func (r *rewardRepository) TotalSpent(ctx context.Context, db *gorm.DB, patientEmail string) (int, error) {
	var total int
	err := db.WithContext(ctx).Model(&entity.RewardRedemption{}).
		Where("patient_email = ?", patientEmail).
		Select("COALESCE(SUM(points_spent), 0)").
		Scan(&total).Error
	return total, err
}
