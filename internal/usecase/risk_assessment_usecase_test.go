package usecase_test

import (
	"context"
	"testing"

	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreRisk_IsFixed(t *testing.T) {
	tests := []struct {
		name    string
		answers usecase.RiskAnswers
	}{
		{"empty", usecase.RiskAnswers{}},
		{"allergies", usecase.RiskAnswers{Allergies: []string{"Sulfa drugs", "Shellfish"}}},
		{"current smoker", usecase.RiskAnswers{Smoking: "current"}},
		{"full history", usecase.RiskAnswers{
			Conditions:    []string{"Asthma"},
			Medications:   []string{"Albuterol"},
			Allergies:     []string{"a", "b", "c", "d"},
			FamilyHistory: []string{"Heart disease"},
			Smoking:       "former",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, level := usecase.ScoreRisk(tt.answers)
			assert.Equal(t, 85, score)
			assert.Equal(t, usecase.RiskLevelLow, level)
		})
	}
}

func TestAssessTrialRisk_ImportsProfile(t *testing.T) {
	e := newEnv(t)

	result, err := e.risk.AssessTrialRisk(context.Background(), "patient@example.com", &dto.RiskAssessmentRequest{TrialID: "trial-001"})
	require.NoError(t, err)
	assert.Equal(t, "Diabetes Type 2 Management Study", result.TrialTitle)
	assert.Equal(t, []string{"Penicillin"}, result.Answers.Allergies)
	assert.Equal(t, []string{"Type 2 Diabetes", "Hypertension"}, result.Answers.Conditions)
	assert.Equal(t, 85, result.Score)
	assert.Equal(t, 85, result.MatchPercentage)
	assert.Equal(t, usecase.RiskLevelLow, result.RiskLevel)
	assert.Contains(t, result.Recommendation, "good candidate for this trial")
}

func TestAssessTrialRisk_ProfileDoesNotChangeScore(t *testing.T) {
	e := newEnv(t)

	result, err := e.risk.AssessTrialRisk(context.Background(), "jane.smith@example.com", &dto.RiskAssessmentRequest{TrialID: "trial-001"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Answers.Allergies)
	assert.Equal(t, 85, result.Score)
	assert.Equal(t, usecase.RiskLevelLow, result.RiskLevel)
}

func TestAssessTrialRisk_AnswersOverrideProfile(t *testing.T) {
	e := newEnv(t)

	result, err := e.risk.AssessTrialRisk(context.Background(), "patient@example.com", &dto.RiskAssessmentRequest{
		TrialID:   "trial-001",
		Allergies: []string{"Latex", "Sulfa", "Peanuts"},
		Smoking:   "current",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Latex", "Sulfa", "Peanuts"}, result.Answers.Allergies)
	assert.Equal(t, "current", result.Answers.Smoking)
	assert.Equal(t, 85, result.Score)
	assert.Equal(t, usecase.RiskLevelLow, result.RiskLevel)
}

func TestAssessTrialRisk_NotFound(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.risk.AssessTrialRisk(ctx, "patient@example.com", &dto.RiskAssessmentRequest{TrialID: "trial-999"})
	assert.ErrorIs(t, err, usecase.ErrTrialNotFound)

	_, err = e.risk.AssessTrialRisk(ctx, "ghost@example.com", &dto.RiskAssessmentRequest{TrialID: "trial-001"})
	assert.ErrorIs(t, err, usecase.ErrPatientNotFound)
}
