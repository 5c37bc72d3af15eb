package usecase

import (
	"context"
	"errors"
	"time"

	"trial-bridge/internal/converter"
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/delivery/http/middleware"
	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/domain/repository"
	"trial-bridge/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRewardNotFound      = errors.New("reward not found")
	ErrRewardUnavailable   = errors.New("reward is not available")
	ErrInvalidRewardType   = errors.New("invalid reward type")
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrInsufficientPoints  = service.ErrInsufficientPoints
)

type RewardUsecase interface {
	GetRewards(ctx context.Context, rewardType string) (*dto.RewardListResponse, error)
	GetAchievements(ctx context.Context, patientEmail string) (*dto.AchievementsResponse, error)
	GetPointsSummary(ctx context.Context, patientEmail string) (*dto.PointsSummaryResponse, error)
	AwardAchievement(ctx context.Context, patientEmail, achievementID string) (*dto.AwardAchievementResponse, error)
	RedeemReward(ctx context.Context, patientEmail, rewardID string) (*dto.RedemptionResponse, error)
}

type rewardUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	rewardRepo         repository.RewardRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
	pointsSyncService  *service.PointsSyncService
	levelStep          int
}

func NewRewardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	rewardRepo repository.RewardRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
	pointsSyncService *service.PointsSyncService,
	levelStep int,
) RewardUsecase {
	return &rewardUsecase{
		db:                 db,
		log:                log,
		rewardRepo:         rewardRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
		pointsSyncService:  pointsSyncService,
		levelStep:          levelStep,
	}
}

// GetRewards lists the catalog, optionally narrowed to one type.
func (u *rewardUsecase) GetRewards(ctx context.Context, rewardType string) (*dto.RewardListResponse, error) {
	if rewardType != "" && !entity.RewardType(rewardType).IsValid() {
		return nil, ErrInvalidRewardType
	}

	rewards, err := u.rewardRepo.FindAllRewards(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find rewards: %+v", err)
		return nil, err
	}

	if rewardType != "" {
		filtered := rewards[:0]
		for _, reward := range rewards {
			if reward.Type == entity.RewardType(rewardType) {
				filtered = append(filtered, reward)
			}
		}
		rewards = filtered
	}

	return &dto.RewardListResponse{
		Rewards: converter.RewardsToResponses(rewards),
		Total:   len(rewards),
	}, nil
}

func (u *rewardUsecase) GetAchievements(ctx context.Context, patientEmail string) (*dto.AchievementsResponse, error) {
	achievements, err := u.rewardRepo.FindAllAchievements(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find achievements: %+v", err)
		return nil, err
	}

	awards, err := u.rewardRepo.FindPatientAchievements(ctx, u.db, patientEmail)
	if err != nil {
		u.log.Warnf("Failed to find achievements for %s: %+v", patientEmail, err)
		return nil, err
	}

	completedOn := make(map[string]string, len(awards))
	for _, award := range awards {
		completedOn[award.AchievementID] = award.DateCompleted
	}

	response := &dto.AchievementsResponse{
		Completed: []dto.AchievementResponse{},
		Pending:   []dto.AchievementResponse{},
	}
	for i := range achievements {
		if date, ok := completedOn[achievements[i].ID]; ok {
			response.Completed = append(response.Completed, converter.AchievementToResponse(&achievements[i], date))
		} else {
			response.Pending = append(response.Pending, converter.AchievementToResponse(&achievements[i], ""))
		}
	}

	return response, nil
}

func (u *rewardUsecase) GetPointsSummary(ctx context.Context, patientEmail string) (*dto.PointsSummaryResponse, error) {
	if err := u.requirePatient(ctx, patientEmail); err != nil {
		return nil, err
	}

	earned, err := u.rewardRepo.TotalEarned(ctx, u.db, patientEmail)
	if err != nil {
		u.log.Warnf("Failed to total points for %s: %+v", patientEmail, err)
		return nil, err
	}

	balance, err := u.pointsSyncService.Balance(ctx, patientEmail)
	if err != nil {
		return nil, err
	}

	level, next := PointsLevel(earned, u.levelStep)
	return &dto.PointsSummaryResponse{
		Balance:         balance,
		TotalEarned:     earned,
		Level:           level,
		NextLevelPoints: next,
	}, nil
}

// AwardAchievement marks the achievement completed today. Awarding it again
// changes nothing and reports Awarded=false.
func (u *rewardUsecase) AwardAchievement(ctx context.Context, patientEmail, achievementID string) (*dto.AwardAchievementResponse, error) {
	achievement, err := u.rewardRepo.FindAchievementByID(ctx, u.db, achievementID)
	if err != nil {
		u.log.Warnf("Failed to find achievement %s: %+v", achievementID, err)
		return nil, err
	}
	if achievement == nil {
		return nil, ErrAchievementNotFound
	}

	if err := u.requirePatient(ctx, patientEmail); err != nil {
		return nil, err
	}

	award := &entity.PatientAchievement{
		PatientEmail:  patientEmail,
		AchievementID: achievementID,
		DateCompleted: entity.Today(),
	}
	var inserted bool
	err = u.pointsSyncService.WithPatientLock(patientEmail, func() error {
		var err error
		inserted, err = u.rewardRepo.AwardAchievement(ctx, u.db, award)
		if err != nil || !inserted {
			return err
		}
		if err := u.pointsSyncService.CreditPoints(ctx, patientEmail, achievement.PointsAwarded); err != nil {
			// the next rebuild picks the award up from the database
			u.log.Warnf("Failed to credit points for %s (non-fatal): %+v", patientEmail, err)
		}
		return nil
	})
	if err != nil {
		u.log.Warnf("Failed to award %s to %s: %+v", achievementID, patientEmail, err)
		return nil, err
	}
	if inserted {
		u.log.Infof("Achievement %s awarded to %s", achievementID, patientEmail)
	}

	dateCompleted := award.DateCompleted
	if !inserted {
		awards, err := u.rewardRepo.FindPatientAchievements(ctx, u.db, patientEmail)
		if err == nil {
			for _, a := range awards {
				if a.AchievementID == achievementID {
					dateCompleted = a.DateCompleted
				}
			}
		}
	}

	return &dto.AwardAchievementResponse{
		Awarded:     inserted,
		Achievement: converter.AchievementToResponse(achievement, dateCompleted),
	}, nil
}

// RedeemReward spends points on a reward.
//
// Flow:
// 1. Validate the reward exists and is redeemable today
// 2. Under the patient lock: Redis DeductPoints (atomic, never goes below zero)
// 3. Insert the redemption and its audit entry in one transaction
// 4. If the transaction fails -> compensate: CreditPoints in Redis
func (u *rewardUsecase) RedeemReward(ctx context.Context, patientEmail, rewardID string) (*dto.RedemptionResponse, error) {
	reward, err := u.rewardRepo.FindRewardByID(ctx, u.db, rewardID)
	if err != nil {
		u.log.Warnf("Failed to find reward %s: %+v", rewardID, err)
		return nil, err
	}
	if reward == nil {
		return nil, ErrRewardNotFound
	}
	if !reward.IsRedeemable(time.Now().UTC()) {
		return nil, ErrRewardUnavailable
	}

	if err := u.requirePatient(ctx, patientEmail); err != nil {
		return nil, err
	}

	redemption := &entity.RewardRedemption{
		ID:           entity.NewID("redemption"),
		PatientEmail: patientEmail,
		RewardID:     reward.ID,
		PointsSpent:  reward.PointsRequired,
	}

	var remaining int
	err = u.pointsSyncService.WithPatientLock(patientEmail, func() error {
		var err error
		remaining, err = u.pointsSyncService.DeductPoints(ctx, patientEmail, reward.PointsRequired)
		if err != nil {
			return err
		}

		if err := u.persistRedemption(ctx, redemption); err != nil {
			u.log.Errorf("Failed to store redemption, compensating Redis: %+v", err)

			syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if creditErr := u.pointsSyncService.CreditPoints(syncCtx, patientEmail, reward.PointsRequired); creditErr != nil {
				u.log.Errorf("CRITICAL: Failed to restore %d points for %s: %+v", reward.PointsRequired, patientEmail, creditErr)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, service.ErrInsufficientPoints) {
			return nil, ErrInsufficientPoints
		}
		return nil, err
	}

	u.log.Infof("Reward redeemed: id=%s, patient=%s, reward=%s, remaining=%d", redemption.ID, patientEmail, reward.ID, remaining)
	return &dto.RedemptionResponse{
		ID:               redemption.ID,
		RewardID:         reward.ID,
		RewardTitle:      reward.Title,
		PointsSpent:      redemption.PointsSpent,
		RemainingBalance: remaining,
		RedeemedAt:       redemption.RedeemedAt,
	}, nil
}

func (u *rewardUsecase) persistRedemption(ctx context.Context, redemption *entity.RewardRedemption) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.rewardRepo.CreateRedemption(ctx, tx, redemption); err != nil {
		return err
	}

	var actor *uuid.UUID
	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		actor = &userID
	}

	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionRewardRedeem, "reward_redemptions", redemption.ID, redemption); err != nil {
		return err
	}

	return tx.Commit().Error
}

func (u *rewardUsecase) requirePatient(ctx context.Context, patientEmail string) error {
	exists, err := u.patientProfileRepo.Exists(ctx, u.db, patientEmail)
	if err != nil {
		u.log.Warnf("Failed to check patient %s: %+v", patientEmail, err)
		return err
	}
	if !exists {
		return ErrPatientNotFound
	}
	return nil
}

// PointsLevel maps lifetime points to a level starting at 1 and the
// points needed to reach the next one.
func PointsLevel(totalEarned, step int) (level, nextLevelPoints int) {
	if step <= 0 {
		step = 250
	}
	level = totalEarned/step + 1
	return level, level * step
}
