package usecase

import (
	"context"
	"errors"
	"strings"

	"trial-bridge/internal/converter"
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrTrialNotFound      = errors.New("trial not found")
	ErrInvalidTrialStatus = errors.New("invalid trial status")
)

type TrialUsecase interface {
	GetAllTrials(ctx context.Context) (*dto.TrialListResponse, error)
	GetTrialByID(ctx context.Context, id string) (*dto.TrialResponse, error)
	GetTrialsByStatus(ctx context.Context, status string) (*dto.TrialListResponse, error)
	SearchTrials(ctx context.Context, filter entity.TrialFilter) (*dto.TrialListResponse, error)
	GetEnrolledPatients(ctx context.Context, trialID string) (*dto.EnrolledPatientsResponse, error)
}

type trialUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	trialRepo repository.TrialRepository
}

func NewTrialUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	trialRepo repository.TrialRepository,
) TrialUsecase {
	return &trialUsecase{
		db:        db,
		log:       log,
		trialRepo: trialRepo,
	}
}

func (u *trialUsecase) GetAllTrials(ctx context.Context) (*dto.TrialListResponse, error) {
	trials, err := u.trialRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all trials: %+v", err)
		return nil, err
	}
	return trialList(trials), nil
}

func (u *trialUsecase) GetTrialByID(ctx context.Context, id string) (*dto.TrialResponse, error) {
	trial, err := u.trialRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find trial %s: %+v", id, err)
		return nil, err
	}
	if trial == nil {
		return nil, ErrTrialNotFound
	}
	return converter.TrialToResponse(trial), nil
}

func (u *trialUsecase) GetTrialsByStatus(ctx context.Context, status string) (*dto.TrialListResponse, error) {
	trialStatus := entity.TrialStatus(status)
	if !trialStatus.IsValid() {
		return nil, ErrInvalidTrialStatus
	}

	trials, err := u.trialRepo.FindByStatus(ctx, u.db, trialStatus)
	if err != nil {
		u.log.Warnf("Failed to find trials by status %s: %+v", status, err)
		return nil, err
	}
	return trialList(trials), nil
}

func (u *trialUsecase) SearchTrials(ctx context.Context, filter entity.TrialFilter) (*dto.TrialListResponse, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, ErrInvalidTrialStatus
	}

	trials, err := u.trialRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all trials: %+v", err)
		return nil, err
	}
	return trialList(FilterTrials(trials, filter)), nil
}

func (u *trialUsecase) GetEnrolledPatients(ctx context.Context, trialID string) (*dto.EnrolledPatientsResponse, error) {
	exists, err := u.trialRepo.Exists(ctx, u.db, trialID)
	if err != nil {
		u.log.Warnf("Failed to check trial %s: %+v", trialID, err)
		return nil, err
	}
	if !exists {
		return nil, ErrTrialNotFound
	}

	emails, err := u.trialRepo.FindEnrolledEmails(ctx, u.db, trialID)
	if err != nil {
		u.log.Warnf("Failed to find enrolled patients for %s: %+v", trialID, err)
		return nil, err
	}
	if emails == nil {
		emails = []string{}
	}

	return &dto.EnrolledPatientsResponse{
		TrialID:       trialID,
		PatientEmails: emails,
		Total:         len(emails),
	}, nil
}

// FilterTrials keeps trials whose status equals filter.Status and whose
// title, description, location or sponsor contains filter.Search,
// ignoring case. Empty filter fields match everything.
func FilterTrials(trials []entity.Trial, filter entity.TrialFilter) []entity.Trial {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	result := make([]entity.Trial, 0, len(trials))
	for _, trial := range trials {
		if filter.Status != "" && trial.Status != filter.Status {
			continue
		}
		if search != "" && !trialMatches(&trial, search) {
			continue
		}
		result = append(result, trial)
	}
	return result
}

func trialMatches(trial *entity.Trial, search string) bool {
	for _, field := range []string{trial.Title, trial.Description, trial.Location, trial.SponsoredBy} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func trialList(trials []entity.Trial) *dto.TrialListResponse {
	return &dto.TrialListResponse{
		Trials: converter.TrialsToResponses(trials),
		Total:  len(trials),
	}
}
