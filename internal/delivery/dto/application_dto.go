package dto

import "time"

// Request DTOs

type ApplyForTrialRequest struct {
	TrialID string `json:"trial_id" validate:"required"`
	Notes   string `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Notes  string `json:"notes" validate:"omitempty,max=2000"`
}

// Response DTOs

type ApplicationResponse struct {
	ID             string    `json:"id"`
	PatientEmail   string    `json:"patient_email"`
	TrialID        string    `json:"trial_id"`
	TrialTitle     string    `json:"trial_title,omitempty"`
	Status         string    `json:"status"`
	SubmissionDate string    `json:"submission_date"`
	Notes          string    `json:"notes,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Total        int                   `json:"total"`
}
