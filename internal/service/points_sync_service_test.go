package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/repository"
	"trial-bridge/internal/service"
	"trial-bridge/internal/testutil"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const patient = "patient@example.com"

func newPointsService(t *testing.T) (*service.PointsSyncService, *redis.Client) {
	t.Helper()

	db := testutil.NewSeededDB(t)
	client, _ := testutil.NewRedis(t)
	log, _ := testutil.NewLogger()

	svc := service.NewPointsSyncService(db, client, log, repository.NewRewardRepository())
	t.Cleanup(svc.Stop)
	return svc, client
}

func TestSyncOnStartup_WritesEveryPatient(t *testing.T) {
	svc, client := newPointsService(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, service.RedisPointsKeyPrefix+patient, 1, 0).Err())
	require.NoError(t, svc.SyncOnStartup(ctx))

	keys, err := client.Keys(ctx, service.RedisPointsKeyPrefix+"*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 8)

	balance, err := client.Get(ctx, service.RedisPointsKeyPrefix+patient).Int()
	require.NoError(t, err)
	assert.Equal(t, 450, balance, "startup sync overwrites stale values")

	other, err := client.Get(ctx, service.RedisPointsKeyPrefix+"emily.davis@example.com").Int()
	require.NoError(t, err)
	assert.Zero(t, other)
}

func TestSyncOnStartup_RedisDown(t *testing.T) {
	db := testutil.NewSeededDB(t)
	log, _ := testutil.NewLogger()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { client.Close() })

	svc := service.NewPointsSyncService(db, client, log, repository.NewRewardRepository())
	defer svc.Stop()

	assert.Error(t, svc.SyncOnStartup(context.Background()))
}

func TestDeductPoints(t *testing.T) {
	svc, client := newPointsService(t)
	ctx := context.Background()

	// missing key is rebuilt from the database first
	remaining, err := svc.DeductPoints(ctx, patient, 200)
	require.NoError(t, err)
	assert.Equal(t, 250, remaining)

	_, err = svc.DeductPoints(ctx, patient, 300)
	assert.ErrorIs(t, err, service.ErrInsufficientPoints)

	balance, err := client.Get(ctx, service.RedisPointsKeyPrefix+patient).Int()
	require.NoError(t, err)
	assert.Equal(t, 250, balance, "a failed deduction takes nothing")

	remaining, err = svc.DeductPoints(ctx, patient, 250)
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestCreditPoints(t *testing.T) {
	svc, client := newPointsService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreditPoints(ctx, patient, 50))
	exists, err := client.Exists(ctx, service.RedisPointsKeyPrefix+patient).Result()
	require.NoError(t, err)
	assert.Zero(t, exists, "credit does not create a balance")

	_, err = svc.Balance(ctx, patient)
	require.NoError(t, err)
	require.NoError(t, svc.CreditPoints(ctx, patient, 50))

	balance, err := svc.Balance(ctx, patient)
	require.NoError(t, err)
	assert.Equal(t, 500, balance)
}

func TestRefreshBalance_KeepsConcurrentWrite(t *testing.T) {
	svc, client := newPointsService(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, service.RedisPointsKeyPrefix+patient, 999, 0).Err())

	balance, err := svc.RefreshBalance(ctx, patient)
	require.NoError(t, err)
	assert.Equal(t, 999, balance)

	require.NoError(t, client.Del(ctx, service.RedisPointsKeyPrefix+patient).Err())
	balance, err = svc.RefreshBalance(ctx, patient)
	require.NoError(t, err)
	assert.Equal(t, 450, balance)
}

func TestRefreshBalance_WaitsForAwardUnderPatientLock(t *testing.T) {
	db := testutil.NewSeededDB(t)
	client, _ := testutil.NewRedis(t)
	log, _ := testutil.NewLogger()
	rewardRepo := repository.NewRewardRepository()

	svc := service.NewPointsSyncService(db, client, log, rewardRepo)
	t.Cleanup(svc.Stop)
	ctx := context.Background()

	locked := make(chan struct{})
	release := make(chan struct{})
	awardDone := make(chan error, 1)
	go func() {
		awardDone <- svc.WithPatientLock(patient, func() error {
			close(locked)
			<-release
			inserted, err := rewardRepo.AwardAchievement(ctx, db, &entity.PatientAchievement{
				PatientEmail:  patient,
				AchievementID: "achievement-006",
				DateCompleted: entity.Today(),
			})
			if err != nil || !inserted {
				return fmt.Errorf("award not inserted: %v", err)
			}
			// no cached balance yet, so the credit is deferred
			return svc.CreditPoints(ctx, patient, 200)
		})
	}()
	<-locked

	refreshed := make(chan int, 1)
	go func() {
		balance, err := svc.RefreshBalance(ctx, patient)
		assert.NoError(t, err)
		refreshed <- balance
	}()

	select {
	case <-refreshed:
		t.Fatal("rebuild ran while an award held the patient lock")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-awardDone)
	assert.Equal(t, 650, <-refreshed)

	cached, err := client.Get(ctx, service.RedisPointsKeyPrefix+patient).Int()
	require.NoError(t, err)
	assert.Equal(t, 650, cached)
}

func TestPointsSyncService_StopIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	client, _ := testutil.NewRedis(t)
	log, _ := testutil.NewLogger()

	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	svc := service.NewPointsSyncService(db, client, log, repository.NewRewardRepository())
	svc.Stop()
	svc.Stop()
}

func TestAuditService_LogUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	log, _ := testutil.NewLogger()
	audit := service.NewAuditService(log, repository.NewAuditLogRepository())
	ctx := context.Background()

	err := audit.LogUpdate(ctx, db, nil, entity.AuditActionProfileUpdate, "patient_profiles", patient,
		map[string]any{"age": 45}, map[string]any{"age": 46})
	require.NoError(t, err)

	var entry entity.AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, entity.AuditActionProfileUpdate, entry.Action)
	assert.Nil(t, entry.UserID)
	assert.Equal(t, "patient_profiles", entry.Metadata["entity"])
	assert.Equal(t, patient, entry.Metadata["entity_id"])
	assert.Equal(t, map[string]any{"age": float64(46)}, entry.Metadata["new_value"])
}
