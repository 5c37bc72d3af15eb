package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	TrialID  *string `json:"trial_id"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string  `json:"time" validate:"required"`
	Type     string  `json:"type" validate:"required,oneof=screening follow-up consultation"`
	Doctor   string  `json:"doctor" validate:"omitempty,max=255"`
	Location string  `json:"location" validate:"omitempty,max=255"`
	Notes    string  `json:"notes" validate:"omitempty,max=2000"`
}

// Response DTOs

type AppointmentResponse struct {
	ID           uuid.UUID `json:"id"`
	PatientEmail string    `json:"patient_email"`
	TrialID      *string   `json:"trial_id,omitempty"`
	TrialTitle   string    `json:"trial_title,omitempty"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Type         string    `json:"type"`
	Doctor       string    `json:"doctor"`
	Location     string    `json:"location"`
	Notes        string    `json:"notes,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
