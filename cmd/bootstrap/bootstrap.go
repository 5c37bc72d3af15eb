package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trial-bridge/config"
	deliveryHttp "trial-bridge/internal/delivery/http"
	"trial-bridge/internal/delivery/http/handler"
	"trial-bridge/internal/delivery/http/middleware"
	"trial-bridge/internal/fixture"
	"trial-bridge/internal/infrastructure/cache"
	"trial-bridge/internal/infrastructure/database"
	"trial-bridge/internal/repository"
	"trial-bridge/internal/service"
	"trial-bridge/internal/usecase"
	"trial-bridge/pkg/jwt"
	"trial-bridge/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Points      *service.PointsSyncService
	Server      *http.Server
}

// NewLogger returns the JSON logger every layer shares.
func NewLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	if cfg.IsDevelopment() {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// OpenDatabase connects to the configured database and migrates the schema.
func OpenDatabase(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	db, err := database.NewConnection(cfg.DB, cfg.App.IsDevelopment(), log)
	if err != nil {
		return nil, err
	}

	if err := fixture.Migrate(ctx, db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("Database migrated successfully")

	return db, nil
}

// New creates a new App instance with all dependencies initialized
func New(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	db, err := OpenDatabase(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	app.DB = db

	if cfg.DB.Seed {
		if err := fixture.Seed(ctx, db, cfg.Auth.BcryptCost); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
		log.Info("Demo data ready")
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.RedisClient = redisClient

	httpHandler, points := NewHTTPHandler(cfg, db, redisClient, log)
	app.Points = points

	if err := points.SyncOnStartup(ctx); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to sync points cache: %w", err)
	}

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// NewHTTPHandler wires repositories, services, usecases and handlers into
// the API router. The caller owns the returned points service and must
// Stop it.
func NewHTTPHandler(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) (http.Handler, *service.PointsSyncService) {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Repositories
	userRepo := repository.NewUserRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	trialRepo := repository.NewTrialRepository()
	applicationRepo := repository.NewApplicationRepository()
	healthRecordRepo := repository.NewHealthRecordRepository()
	resourceRepo := repository.NewEducationalResourceRepository()
	feedbackRepo := repository.NewFeedbackRepository()
	messageRepo := repository.NewMessageRepository()
	forumRepo := repository.NewForumRepository()
	rewardRepo := repository.NewRewardRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Services
	auditService := service.NewAuditService(log, auditLogRepo)
	pointsSyncService := service.NewPointsSyncService(db, redisClient, log, rewardRepo)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, patientProfileRepo, auditService, jwtService, redisClient, cfg.Auth)
	trialUsecase := usecase.NewTrialUsecase(db, log, trialRepo)
	rewardUsecase := usecase.NewRewardUsecase(db, log, rewardRepo, patientProfileRepo, auditService, pointsSyncService, cfg.Rewards.LevelStep)
	applicationUsecase := usecase.NewApplicationUsecase(db, log, applicationRepo, trialRepo, rewardUsecase)
	patientProfileUsecase := usecase.NewPatientProfileUsecase(db, log, patientProfileRepo, auditService)
	healthRecordUsecase := usecase.NewHealthRecordUsecase(db, log, healthRecordRepo, patientProfileRepo, auditService)
	educationUsecase := usecase.NewEducationUsecase(db, log, resourceRepo, feedbackRepo)
	messageUsecase := usecase.NewMessageUsecase(db, log, messageRepo)
	forumUsecase := usecase.NewForumUsecase(db, log, forumRepo, userRepo)
	riskAssessmentUsecase := usecase.NewRiskAssessmentUsecase(db, log, trialRepo, patientProfileRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, trialRepo, patientProfileRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Handlers
	handlers := deliveryHttp.Handlers{
		Auth:           handler.NewAuthHandler(authUsecase, customValidator),
		Trial:          handler.NewTrialHandler(trialUsecase),
		Application:    handler.NewApplicationHandler(applicationUsecase, customValidator),
		Patient:        handler.NewPatientHandler(patientProfileUsecase, customValidator),
		HealthRecord:   handler.NewHealthRecordHandler(healthRecordUsecase, customValidator),
		Education:      handler.NewEducationHandler(educationUsecase, customValidator),
		Message:        handler.NewMessageHandler(messageUsecase, customValidator),
		Forum:          handler.NewForumHandler(forumUsecase, customValidator),
		Reward:         handler.NewRewardHandler(rewardUsecase),
		RiskAssessment: handler.NewRiskAssessmentHandler(riskAssessmentUsecase, customValidator),
		Appointment:    handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		AuditLog:       handler.NewAuditLogHandler(auditLogUsecase),
	}

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins)

	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware)
	return router.Setup(), pointsSyncService
}

// Run serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			app.Close()
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}

	app.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()
	app.Log.Info("Server shutdown complete")
	return nil
}

// Close stops background work and closes the database and redis connections.
func (app *App) Close() {
	if app.Points != nil {
		app.Points.Stop()
	}

	if app.DB != nil {
		closeDB(app.DB)
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}
}
