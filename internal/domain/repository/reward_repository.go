package repository

import (
	"context"

	"trial-bridge/internal/domain/entity"

	"gorm.io/gorm"
)

type RewardRepository interface {
	FindAllRewards(ctx context.Context, db *gorm.DB) ([]entity.Reward, error)
	FindRewardByID(ctx context.Context, db *gorm.DB, id string) (*entity.Reward, error)
	FindAllAchievements(ctx context.Context, db *gorm.DB) ([]entity.Achievement, error)
	FindAchievementByID(ctx context.Context, db *gorm.DB, id string) (*entity.Achievement, error)
	FindPatientAchievements(ctx context.Context, db *gorm.DB, patientEmail string) ([]entity.PatientAchievement, error)
	// AwardAchievement returns false when the patient already holds it.
	AwardAchievement(ctx context.Context, db *gorm.DB, award *entity.PatientAchievement) (bool, error)
	CreateRedemption(ctx context.Context, db *gorm.DB, redemption *entity.RewardRedemption) error
	TotalEarned(ctx context.Context, db *gorm.DB, patientEmail string) (int, error)
	TotalSpent(ctx context.Context, db *gorm.DB, patientEmail string) (int, error)
}
