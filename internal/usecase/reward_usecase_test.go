package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/service"
	"trial-bridge/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seededPatient = "patient@example.com"

func TestGetRewards(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	all, err := e.rewards.GetRewards(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 8, all.Total)

	medical, err := e.rewards.GetRewards(ctx, "medical")
	require.NoError(t, err)
	assert.Equal(t, 5, medical.Total)

	_, err = e.rewards.GetRewards(ctx, "travel")
	assert.ErrorIs(t, err, usecase.ErrInvalidRewardType)
}

func TestGetAchievements_SplitsCompleted(t *testing.T) {
	e := newEnv(t)

	achievements, err := e.rewards.GetAchievements(context.Background(), seededPatient)
	require.NoError(t, err)
	assert.Len(t, achievements.Completed, 5)
	assert.Len(t, achievements.Pending, 3)
	for _, a := range achievements.Completed {
		assert.True(t, a.Completed)
		assert.NotEmpty(t, a.DateCompleted)
	}
}

func TestGetPointsSummary(t *testing.T) {
	e := newEnv(t)

	summary, err := e.rewards.GetPointsSummary(context.Background(), seededPatient)
	require.NoError(t, err)
	assert.Equal(t, 450, summary.Balance)
	assert.Equal(t, 450, summary.TotalEarned)
	assert.Equal(t, 2, summary.Level)
	assert.Equal(t, 500, summary.NextLevelPoints)

	_, err = e.rewards.GetPointsSummary(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, usecase.ErrPatientNotFound)
}

func TestAwardAchievement_Idempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.points.Balance(ctx, seededPatient)
	require.NoError(t, err)

	first, err := e.rewards.AwardAchievement(ctx, seededPatient, "achievement-006")
	require.NoError(t, err)
	assert.True(t, first.Awarded)
	assert.Equal(t, entity.Today(), first.Achievement.DateCompleted)

	second, err := e.rewards.AwardAchievement(ctx, seededPatient, "achievement-006")
	require.NoError(t, err)
	assert.False(t, second.Awarded)

	summary, err := e.rewards.GetPointsSummary(ctx, seededPatient)
	require.NoError(t, err)
	assert.Equal(t, 650, summary.Balance)
	assert.Equal(t, 650, summary.TotalEarned)
	assert.Equal(t, 3, summary.Level)

	// already held since the seed
	held, err := e.rewards.AwardAchievement(ctx, seededPatient, "achievement-001")
	require.NoError(t, err)
	assert.False(t, held.Awarded)
	assert.Equal(t, "2023-05-10", held.Achievement.DateCompleted)

	_, err = e.rewards.AwardAchievement(ctx, seededPatient, "achievement-999")
	assert.ErrorIs(t, err, usecase.ErrAchievementNotFound)

	_, err = e.rewards.AwardAchievement(ctx, "ghost@example.com", "achievement-006")
	assert.ErrorIs(t, err, usecase.ErrPatientNotFound)
}

func TestRedeemReward(t *testing.T) {
	e := newEnv(t)
	ctx := e.sessionFor(t, seededPatient)

	redemption, err := e.rewards.RedeemReward(ctx, seededPatient, "reward-007")
	require.NoError(t, err)
	assert.Equal(t, 450, redemption.PointsSpent)
	assert.Equal(t, 0, redemption.RemainingBalance)
	assert.Equal(t, "Dental Checkup", redemption.RewardTitle)

	_, err = e.rewards.RedeemReward(ctx, seededPatient, "reward-003")
	assert.ErrorIs(t, err, usecase.ErrInsufficientPoints)

	assert.EqualValues(t, 1, countRows(t, e.db, &entity.RewardRedemption{}, "patient_email = ?", seededPatient))
	assert.EqualValues(t, 1, auditCount(t, e.db, entity.AuditActionRewardRedeem))

	// a rebuilt cache agrees with the database
	e.mr.Del(service.RedisPointsKeyPrefix + seededPatient)
	balance, err := e.points.Balance(ctx, seededPatient)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestRedeemReward_Unredeemable(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.rewards.RedeemReward(ctx, seededPatient, "reward-999")
	assert.ErrorIs(t, err, usecase.ErrRewardNotFound)

	require.NoError(t, e.db.Model(&entity.Reward{}).Where("id = ?", "reward-001").Update("available", false).Error)
	_, err = e.rewards.RedeemReward(ctx, seededPatient, "reward-001")
	assert.ErrorIs(t, err, usecase.ErrRewardUnavailable)

	require.NoError(t, e.db.Model(&entity.Reward{}).Where("id = ?", "reward-003").Update("expiry_date", "2020-01-01").Error)
	_, err = e.rewards.RedeemReward(ctx, seededPatient, "reward-003")
	assert.ErrorIs(t, err, usecase.ErrRewardUnavailable)

	balance, err := e.points.Balance(ctx, seededPatient)
	require.NoError(t, err)
	assert.Equal(t, 450, balance)
}

func TestRedeemReward_RestoresPointsWhenInsertFails(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.points.Balance(ctx, seededPatient)
	require.NoError(t, err)
	require.NoError(t, e.db.Migrator().DropTable(&entity.RewardRedemption{}))

	_, err = e.rewards.RedeemReward(ctx, seededPatient, "reward-002")
	require.Error(t, err)

	cached, err := e.mr.Get(service.RedisPointsKeyPrefix + seededPatient)
	require.NoError(t, err)
	assert.Equal(t, "450", cached)
}

func TestRedeemReward_ConcurrentNeverOverspends(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		succeeded    int
		insufficient int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.rewards.RedeemReward(ctx, seededPatient, "reward-003")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, usecase.ErrInsufficientPoints):
				insufficient++
			}
		}()
	}
	wg.Wait()

	// 450 points buy three 150-point rewards
	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 5, insufficient)
	assert.EqualValues(t, 3, countRows(t, e.db, &entity.RewardRedemption{}, "patient_email = ?", seededPatient))
}

func TestPointsLevel(t *testing.T) {
	tests := []struct {
		earned, step int
		level, next  int
	}{
		{0, 250, 1, 250},
		{249, 250, 1, 250},
		{250, 250, 2, 500},
		{450, 250, 2, 500},
		{1000, 250, 5, 1250},
		{100, 0, 1, 250},
	}

	for _, tt := range tests {
		level, next := usecase.PointsLevel(tt.earned, tt.step)
		assert.Equal(t, tt.level, level, "earned=%d step=%d", tt.earned, tt.step)
		assert.Equal(t, tt.next, next, "earned=%d step=%d", tt.earned, tt.step)
	}
}
