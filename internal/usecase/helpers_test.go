package usecase_test

import (
	"context"
	"testing"
	"time"

	"trial-bridge/config"
	"trial-bridge/internal/delivery/http/middleware"
	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/repository"
	"trial-bridge/internal/service"
	"trial-bridge/internal/testutil"
	"trial-bridge/internal/usecase"
	"trial-bridge/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testVerificationCode = "123456"

// env wires every usecase over one seeded database and redis.
type env struct {
	db    *gorm.DB
	redis *redis.Client
	mr    *miniredis.Miniredis
	jwt   *jwt.JWTService

	points *service.PointsSyncService

	auth         usecase.AuthUsecase
	trials       usecase.TrialUsecase
	applications usecase.ApplicationUsecase
	profiles     usecase.PatientProfileUsecase
	records      usecase.HealthRecordUsecase
	education    usecase.EducationUsecase
	messages     usecase.MessageUsecase
	forum        usecase.ForumUsecase
	rewards      usecase.RewardUsecase
	risk         usecase.RiskAssessmentUsecase
	appointments usecase.AppointmentUsecase
	auditLogs    usecase.AuditLogUsecase
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.NewSeededDB(t)
	redisClient, mr := testutil.NewRedis(t)
	log, _ := testutil.NewLogger()

	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewPatientProfileRepository()
	trialRepo := repository.NewTrialRepository()
	applicationRepo := repository.NewApplicationRepository()
	rewardRepo := repository.NewRewardRepository()
	auditRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditRepo)
	points := service.NewPointsSyncService(db, redisClient, log, rewardRepo)
	t.Cleanup(points.Stop)

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})

	rewards := usecase.NewRewardUsecase(db, log, rewardRepo, profileRepo, auditService, points, 250)

	return &env{
		db:     db,
		redis:  redisClient,
		mr:     mr,
		jwt:    jwtService,
		points: points,
		auth: usecase.NewAuthUsecase(db, log, userRepo, profileRepo, auditService, jwtService, redisClient, config.AuthConfig{
			PhoneVerificationCode: testVerificationCode,
			BcryptCost:            bcrypt.MinCost,
		}),
		trials:       usecase.NewTrialUsecase(db, log, trialRepo),
		applications: usecase.NewApplicationUsecase(db, log, applicationRepo, trialRepo, rewards),
		profiles:     usecase.NewPatientProfileUsecase(db, log, profileRepo, auditService),
		records:      usecase.NewHealthRecordUsecase(db, log, repository.NewHealthRecordRepository(), profileRepo, auditService),
		education:    usecase.NewEducationUsecase(db, log, repository.NewEducationalResourceRepository(), repository.NewFeedbackRepository()),
		messages:     usecase.NewMessageUsecase(db, log, repository.NewMessageRepository()),
		forum:        usecase.NewForumUsecase(db, log, repository.NewForumRepository(), userRepo),
		rewards:      rewards,
		risk:         usecase.NewRiskAssessmentUsecase(db, log, trialRepo, profileRepo),
		appointments: usecase.NewAppointmentUsecase(db, log, repository.NewAppointmentRepository(), trialRepo, profileRepo),
		auditLogs:    usecase.NewAuditLogUsecase(db, log, auditRepo),
	}
}

// sessionFor returns a context carrying the seeded user's identity, the
// way the auth middleware would after validating a token.
func (e *env) sessionFor(t *testing.T, email string) context.Context {
	t.Helper()

	user, err := repository.NewUserRepository().FindByEmail(context.Background(), e.db, email)
	require.NoError(t, err)
	require.NotNil(t, user, "no user %s", email)

	identity := jwt.Identity{UserID: user.ID, Email: user.Email, RoleID: user.RoleID}
	if user.Username != nil {
		identity.Username = *user.Username
	}
	return middleware.ContextWithIdentity(context.Background(), identity, uuid.NewString())
}

func countRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func auditCount(t *testing.T, db *gorm.DB, action string) int64 {
	t.Helper()
	return countRows(t, db, &entity.AuditLog{}, "action = ?", action)
}
