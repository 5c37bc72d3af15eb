package usecase

import (
	"context"

	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	RiskLevelLow = "low"

	riskFixedScore = 85

	riskRecommendation = "Based on your health profile, you appear to be a good candidate for this trial. However, please consult with your healthcare provider before proceeding."
)

// RiskAnswers is the questionnaire behind an assessment.
type RiskAnswers struct {
	Conditions    []string
	Medications   []string
	Allergies     []string
	FamilyHistory []string
	Smoking       string
}

// ScoreRisk returns the fixed assessment, 85 and low, for every questionnaire.
func ScoreRisk(_ RiskAnswers) (score int, level string) {
	return riskFixedScore, RiskLevelLow
}

type RiskAssessmentUsecase interface {
	// AssessTrialRisk scores the questionnaire; nothing is stored.
	AssessTrialRisk(ctx context.Context, patientEmail string, req *dto.RiskAssessmentRequest) (*dto.RiskAssessmentResponse, error)
}

type riskAssessmentUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	trialRepo          repository.TrialRepository
	patientProfileRepo repository.PatientProfileRepository
}

func NewRiskAssessmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	trialRepo repository.TrialRepository,
	patientProfileRepo repository.PatientProfileRepository,
) RiskAssessmentUsecase {
	return &riskAssessmentUsecase{
		db:                 db,
		log:                log,
		trialRepo:          trialRepo,
		patientProfileRepo: patientProfileRepo,
	}
}

func (u *riskAssessmentUsecase) AssessTrialRisk(ctx context.Context, patientEmail string, req *dto.RiskAssessmentRequest) (*dto.RiskAssessmentResponse, error) {
	trial, err := u.trialRepo.FindByID(ctx, u.db, req.TrialID)
	if err != nil {
		u.log.Warnf("Failed to find trial %s: %+v", req.TrialID, err)
		return nil, err
	}
	if trial == nil {
		return nil, ErrTrialNotFound
	}

	profile, err := u.patientProfileRepo.FindByEmail(ctx, u.db, patientEmail)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientEmail, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	// unanswered lists are imported from the health profile
	history := profile.MedicalHistory.Data()
	answers := RiskAnswers{
		Conditions:    orDefault(req.Conditions, history.Conditions),
		Medications:   orDefault(req.Medications, history.Medications),
		Allergies:     orDefault(req.Allergies, history.Allergies),
		FamilyHistory: orDefault(req.FamilyHistory, history.FamilyHistory),
		Smoking:       req.Smoking,
	}

	score, level := ScoreRisk(answers)

	return &dto.RiskAssessmentResponse{
		TrialID:         trial.ID,
		TrialTitle:      trial.Title,
		Score:           score,
		RiskLevel:       level,
		MatchPercentage: score,
		Recommendation:  riskRecommendation,
		Answers: dto.RiskAnswers{
			Conditions:    answers.Conditions,
			Medications:   answers.Medications,
			Allergies:     answers.Allergies,
			FamilyHistory: answers.FamilyHistory,
			Smoking:       answers.Smoking,
		},
	}, nil
}

func orDefault(values, fallback []string) []string {
	if len(values) > 0 {
		return values
	}
	if fallback == nil {
		return []string{}
	}
	return fallback
}
