package dto

import (
	"encoding/json"
	"time"
)

type CreateHealthRecordRequest struct {
	Date     string          `json:"date" validate:"required,datetime=2006-01-02"`
	Type     string          `json:"type" validate:"required,oneof=vital lab medication symptom note"`
	Data     json.RawMessage `json:"data" validate:"required"`
	Provider string          `json:"provider" validate:"omitempty,max=255"`
}

type HealthRecordResponse struct {
	ID           string          `json:"id"`
	PatientEmail string          `json:"patient_email"`
	Date         string          `json:"date"`
	Type         string          `json:"type"`
	Data         json.RawMessage `json:"data"`
	Provider     string          `json:"provider,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type HealthRecordListResponse struct {
	Records []HealthRecordResponse `json:"records"`
	Total   int                    `json:"total"`
}
