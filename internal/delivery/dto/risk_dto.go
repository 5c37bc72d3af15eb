package dto

// RiskAssessmentRequest carries the questionnaire. Empty lists are filled
// from the patient's profile.
type RiskAssessmentRequest struct {
	TrialID       string   `json:"trial_id" validate:"required"`
	Conditions    []string `json:"conditions"`
	Medications   []string `json:"medications"`
	Allergies     []string `json:"allergies"`
	FamilyHistory []string `json:"family_history"`
	Smoking       string   `json:"smoking" validate:"omitempty,oneof=never former current"`
}

type RiskAnswers struct {
	Conditions    []string `json:"conditions"`
	Medications   []string `json:"medications"`
	Allergies     []string `json:"allergies"`
	FamilyHistory []string `json:"family_history"`
	Smoking       string   `json:"smoking,omitempty"`
}

type RiskAssessmentResponse struct {
	TrialID         string      `json:"trial_id"`
	TrialTitle      string      `json:"trial_title"`
	Score           int         `json:"score"`
	RiskLevel       string      `json:"risk_level"`
	MatchPercentage int         `json:"match_percentage"`
	Recommendation  string      `json:"recommendation"`
	Answers         RiskAnswers `json:"answers"`
}
