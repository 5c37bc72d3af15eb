package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrInsufficientPoints is returned when a deduction exceeds the cached balance.
var ErrInsufficientPoints = errors.New("insufficient points")

// deductPointsScript subtracts ARGV[1] from the balance only when it is covered.
// Returns -2 when the key is missing (caller resyncs), -1 when the balance is
// too low, otherwise the remaining balance.
var deductPointsScript = redis.NewScript(`
	local balance = tonumber(redis.call('GET', KEYS[1]) or '-1')
	if balance < 0 then
		return -2
	end
	if balance < tonumber(ARGV[1]) then
		return -1
	end
	return redis.call('DECRBY', KEYS[1], ARGV[1])
`)

// creditPointsScript adds ARGV[1] to a cached balance. A missing key is left
// missing so the next read rebuilds it from the database.
var creditPointsScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 0 then
		return -2
	end
	return redis.call('INCRBY', KEYS[1], ARGV[1])
`)

const (
	RedisPointsKeyPrefix = "points:balance:"

	pointsBalanceTTL = 24 * time.Hour

	// patients per startup pipeline
	syncBatchSize = 500

	mutexCleanupInterval = 10 * time.Minute
	mutexStaleThreshold  = 10 * time.Minute
)

// PointsSyncService keeps each patient's spendable points balance in Redis.
// The database stays authoritative: balance = points from completed
// achievements minus points spent on redemptions. Redis holds the hot copy so
// concurrent redemptions for one patient cannot overspend.
type PointsSyncService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
	rewardRepo  repository.RewardRepository

	// per-patient mutex serialising rebuilds with point-changing writes
	patientMu sync.Map // map[string]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

type balanceRow struct {
	Email       string
	TotalEarned int
	TotalSpent  int
}

// NewPointsSyncService starts the background mutex cleanup. Call Stop during shutdown.
func NewPointsSyncService(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger, rewardRepo repository.RewardRepository) *PointsSyncService {
	svc := &PointsSyncService{
		db:          db,
		redisClient: redisClient,
		log:         log,
		rewardRepo:  rewardRepo,
		stopChan:    make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupMutexMapLoop()

	return svc
}

// Stop is safe to call multiple times.
func (s *PointsSyncService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("PointsSyncService stopped")
	}
}

// SyncOnStartup overwrites every patient's cached balance with the database
// value. Run it before accepting traffic.
func (s *PointsSyncService) SyncOnStartup(ctx context.Context) error {
	s.log.Info("Starting points balance sync from database...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	offset := 0
	totalSynced := 0

	for {
		var rows []balanceRow

		err := s.db.WithContext(ctx).Model(&entity.PatientProfile{}).
			Select(`
				patient_profiles.email AS email,
				COALESCE((
					SELECT SUM(achievements.points_awarded)
					FROM patient_achievements
					JOIN achievements ON achievements.id = patient_achievements.achievement_id
					WHERE patient_achievements.patient_email = patient_profiles.email
				), 0) AS total_earned,
				COALESCE((
					SELECT SUM(reward_redemptions.points_spent)
					FROM reward_redemptions
					WHERE reward_redemptions.patient_email = patient_profiles.email
				), 0) AS total_spent
			`).
			Order("patient_profiles.email").
			Limit(syncBatchSize).
			Offset(offset).
			Scan(&rows).Error
		if err != nil {
			s.log.Errorf("Failed to query balances at offset %d: %+v", offset, err)
			return fmt.Errorf("query balances at offset %d: %w", offset, err)
		}

		if len(rows) == 0 {
			break
		}

		// new pipeline per batch
		pipe := s.redisClient.TxPipeline()
		for _, row := range rows {
			pipe.Set(ctx, balanceKey(row.Email), row.TotalEarned-row.TotalSpent, pointsBalanceTTL)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			s.log.Errorf("Failed to execute pipeline for batch at offset %d: %+v", offset, err)
			return fmt.Errorf("pipeline exec at offset %d: %w", offset, err)
		}

		totalSynced += len(rows)

		if len(rows) < syncBatchSize {
			break
		}
		offset += syncBatchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	s.log.Infof("Points sync completed: %d patients synced in %v", totalSynced, time.Since(startTime))
	return nil
}

// Balance returns the cached balance, rebuilding it when absent.
func (s *PointsSyncService) Balance(ctx context.Context, email string) (int, error) {
	balance, err := s.redisClient.Get(ctx, balanceKey(email)).Int()
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, redis.Nil) {
		s.log.Warnf("Failed to read points balance for %s: %+v", email, err)
		return 0, fmt.Errorf("get balance for %s: %w", email, err)
	}
	return s.RefreshBalance(ctx, email)
}

// WithPatientLock runs fn holding the patient's mutex. Database writes that
// change earned or spent points, together with the matching Redis update,
// belong inside fn so a concurrent rebuild cannot cache a balance read
// between the two.
func (s *PointsSyncService) WithPatientLock(email string, fn func() error) error {
	mt := s.getPatientMutex(email)
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return fn()
}

// RefreshBalance recomputes the balance from the database. A value written
// concurrently by another request wins over the recomputed one.
func (s *PointsSyncService) RefreshBalance(ctx context.Context, email string) (int, error) {
	mt := s.getPatientMutex(email)
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return s.refreshBalance(ctx, email)
}

// refreshBalance expects the patient's mutex to be held.
func (s *PointsSyncService) refreshBalance(ctx context.Context, email string) (int, error) {
	earned, err := s.rewardRepo.TotalEarned(ctx, s.db, email)
	if err != nil {
		return 0, fmt.Errorf("total earned for %s: %w", email, err)
	}
	spent, err := s.rewardRepo.TotalSpent(ctx, s.db, email)
	if err != nil {
		return 0, fmt.Errorf("total spent for %s: %w", email, err)
	}
	balance := earned - spent

	set, err := s.redisClient.SetNX(ctx, balanceKey(email), balance, pointsBalanceTTL).Result()
	if err != nil {
		s.log.Warnf("Failed to cache points balance for %s: %+v", email, err)
		return 0, fmt.Errorf("cache balance for %s: %w", email, err)
	}
	if !set {
		return s.redisClient.Get(ctx, balanceKey(email)).Int()
	}

	s.log.Debugf("Rebuilt points balance for %s: %d", email, balance)
	return balance, nil
}

// DeductPoints atomically takes amount from the balance and returns what is
// left. Call it inside WithPatientLock.
func (s *PointsSyncService) DeductPoints(ctx context.Context, email string, amount int) (int, error) {
	key := balanceKey(email)

	for attempt := 0; attempt < 2; attempt++ {
		result, err := deductPointsScript.Run(ctx, s.redisClient, []string{key}, amount).Int()
		if err != nil {
			s.log.Warnf("Failed Lua script DeductPoints for %s: %+v", email, err)
			return 0, fmt.Errorf("lua deduct points for %s: %w", email, err)
		}

		switch result {
		case -1:
			return 0, ErrInsufficientPoints
		case -2:
			if _, err := s.refreshBalance(ctx, email); err != nil {
				return 0, err
			}
			continue
		}

		s.log.Debugf("Deducted %d points from %s, remaining %d", amount, email, result)
		return result, nil
	}

	return 0, fmt.Errorf("points balance for %s could not be loaded", email)
}

// CreditPoints adds amount to a cached balance. Used for awards and for
// refunding a deduction whose database write failed. Call it inside
// WithPatientLock, after the database write it reflects.
func (s *PointsSyncService) CreditPoints(ctx context.Context, email string, amount int) error {
	result, err := creditPointsScript.Run(ctx, s.redisClient, []string{balanceKey(email)}, amount).Int()
	if err != nil {
		s.log.Warnf("Failed to credit %d points to %s: %+v", amount, email, err)
		return fmt.Errorf("credit points for %s: %w", email, err)
	}
	if result == -2 {
		s.log.Debugf("No cached balance for %s, credit deferred to next rebuild", email)
	}
	return nil
}

func balanceKey(email string) string {
	return RedisPointsKeyPrefix + email
}

func (s *PointsSyncService) getPatientMutex(email string) *mutexWithTimestamp {
	mt, _ := s.patientMu.LoadOrStore(email, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

func (s *PointsSyncService) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanupStaleMutexes()
		}
	}
}

// cleanupStaleMutexes checks lastUsed while holding the lock so a mutex
// picked up concurrently is never dropped.
func (s *PointsSyncService) cleanupStaleMutexes() {
	cutoffTime := time.Now().Add(-mutexStaleThreshold).Unix()
	var cleaned int

	s.patientMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffTime {
				s.patientMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale mutexes", cleaned)
	}
}
