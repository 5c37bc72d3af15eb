package usecase

import (
	"context"
	"errors"
	"strings"

	"trial-bridge/internal/converter"
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/domain/repository"
	repoImpl "trial-bridge/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound       = errors.New("application not found")
	ErrAlreadyApplied            = errors.New("patient has already applied for this trial")
	ErrInvalidApplicationStatus  = errors.New("status must be approved or rejected")
	ErrApplicationAlreadyDecided = errors.New("application has already been decided")
)

type ApplicationUsecase interface {
	ApplyForTrial(ctx context.Context, patientEmail string, req *dto.ApplyForTrialRequest) (*dto.ApplicationResponse, error)
	UpdateApplicationStatus(ctx context.Context, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error)
	GetPatientApplications(ctx context.Context, patientEmail string) (*dto.ApplicationListResponse, error)
	GetAllApplications(ctx context.Context) (*dto.ApplicationListResponse, error)
}

type applicationUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	applicationRepo repository.ApplicationRepository
	trialRepo       repository.TrialRepository
	rewardUsecase   RewardUsecase
}

func NewApplicationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	applicationRepo repository.ApplicationRepository,
	trialRepo repository.TrialRepository,
	rewardUsecase RewardUsecase,
) ApplicationUsecase {
	return &applicationUsecase{
		db:              db,
		log:             log,
		applicationRepo: applicationRepo,
		trialRepo:       trialRepo,
		rewardUsecase:   rewardUsecase,
	}
}

// ApplyForTrial records a pending application dated today. The patient's
// first application earns the First Trial Application achievement.
func (u *applicationUsecase) ApplyForTrial(ctx context.Context, patientEmail string, req *dto.ApplyForTrialRequest) (*dto.ApplicationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	trial, err := u.trialRepo.FindByID(ctx, tx, req.TrialID)
	if err != nil {
		u.log.Warnf("Failed to find trial %s: %+v", req.TrialID, err)
		return nil, err
	}
	if trial == nil {
		return nil, ErrTrialNotFound
	}

	existing, err := u.applicationRepo.FindByPatientAndTrial(ctx, tx, patientEmail, req.TrialID)
	if err != nil {
		u.log.Warnf("Failed to check existing application: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyApplied
	}

	previous, err := u.applicationRepo.CountByPatient(ctx, tx, patientEmail)
	if err != nil {
		u.log.Warnf("Failed to count applications for %s: %+v", patientEmail, err)
		return nil, err
	}

	application := &entity.TrialApplication{
		ID:             entity.NewID("app"),
		PatientEmail:   patientEmail,
		TrialID:        req.TrialID,
		Status:         entity.ApplicationStatusPending,
		SubmissionDate: entity.Today(),
		Notes:          strings.TrimSpace(req.Notes),
	}

	// the unique index settles concurrent duplicates
	if err := u.applicationRepo.Create(ctx, tx, application); err != nil {
		if repoImpl.IsDuplicateKeyError(err, "trial") {
			return nil, ErrAlreadyApplied
		}
		u.log.Warnf("Failed to create application: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if previous == 0 {
		if _, err := u.rewardUsecase.AwardAchievement(ctx, patientEmail, entity.AchievementFirstApplication); err != nil {
			u.log.Warnf("Failed to award first application achievement to %s (non-fatal): %+v", patientEmail, err)
		}
	}

	application.Trial = trial
	u.log.Infof("Application created: id=%s, patient=%s, trial=%s", application.ID, patientEmail, req.TrialID)
	return converter.ApplicationToResponse(application), nil
}

// UpdateApplicationStatus decides a pending application. Approval enrolls
// the patient in the same transaction. A decided application only accepts
// the decision it already has.
func (u *applicationUsecase) UpdateApplicationStatus(ctx context.Context, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	status := entity.ApplicationStatus(req.Status)
	if status != entity.ApplicationStatusApproved && status != entity.ApplicationStatusRejected {
		return nil, ErrInvalidApplicationStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	application, err := u.applicationRepo.FindByID(ctx, tx, applicationID)
	if err != nil {
		u.log.Warnf("Failed to find application %s: %+v", applicationID, err)
		return nil, err
	}
	if application == nil {
		return nil, ErrApplicationNotFound
	}

	if !application.IsPending() && application.Status != status {
		return nil, ErrApplicationAlreadyDecided
	}

	application.Status = status
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		application.Notes = notes
	}

	if err := u.applicationRepo.UpdateReview(ctx, tx, application); err != nil {
		u.log.Warnf("Failed to update application %s: %+v", applicationID, err)
		return nil, err
	}

	if application.IsApproved() {
		if err := u.trialRepo.Enroll(ctx, tx, application.TrialID, application.PatientEmail); err != nil {
			u.log.Warnf("Failed to enroll %s in %s: %+v", application.PatientEmail, application.TrialID, err)
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Application %s marked %s", applicationID, status)
	return converter.ApplicationToResponse(application), nil
}

func (u *applicationUsecase) GetPatientApplications(ctx context.Context, patientEmail string) (*dto.ApplicationListResponse, error) {
	applications, err := u.applicationRepo.FindByPatient(ctx, u.db, patientEmail)
	if err != nil {
		u.log.Warnf("Failed to find applications for %s: %+v", patientEmail, err)
		return nil, err
	}

	return &dto.ApplicationListResponse{
		Applications: converter.ApplicationsToResponses(applications),
		Total:        len(applications),
	}, nil
}

func (u *applicationUsecase) GetAllApplications(ctx context.Context) (*dto.ApplicationListResponse, error) {
	applications, err := u.applicationRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all applications: %+v", err)
		return nil, err
	}

	return &dto.ApplicationListResponse{
		Applications: converter.ApplicationsToResponses(applications),
		Total:        len(applications),
	}, nil
}
