package dto

import (
	"time"

	"trial-bridge/internal/domain/entity"
)

// Request DTOs

// UpdatePatientProfileRequest is a partial update: nil fields are left untouched.
type UpdatePatientProfileRequest struct {
	Name             *string                `json:"name" validate:"omitempty,max=255"`
	Age              *int                   `json:"age" validate:"omitempty,gte=0,lte=120"`
	Gender           *string                `json:"gender" validate:"omitempty,oneof=male female other"`
	Phone            *string                `json:"phone" validate:"omitempty,max=20"`
	Address          *string                `json:"address"`
	MedicalHistory   *MedicalHistoryPatch   `json:"medical_history"`
	InsuranceInfo    *InsuranceInfoPatch    `json:"insurance_info"`
	EmergencyContact *EmergencyContactPatch `json:"emergency_contact"`
}

// MedicalHistoryPatch replaces each list that is present.
type MedicalHistoryPatch struct {
	Conditions    *[]string `json:"conditions"`
	Medications   *[]string `json:"medications"`
	Allergies     *[]string `json:"allergies"`
	Surgeries     *[]string `json:"surgeries"`
	FamilyHistory *[]string `json:"familyHistory"`
}

type InsuranceInfoPatch struct {
	Provider       *string `json:"provider"`
	PolicyNumber   *string `json:"policyNumber"`
	GroupNumber    *string `json:"groupNumber"`
	ExpirationDate *string `json:"expirationDate" validate:"omitempty,datetime=2006-01-02"`
}

type EmergencyContactPatch struct {
	Name         *string `json:"name"`
	Relationship *string `json:"relationship"`
	Phone        *string `json:"phone"`
}

// Response DTOs

type PatientProfileResponse struct {
	Email            string                   `json:"email"`
	Name             string                   `json:"name"`
	Age              int                      `json:"age"`
	Gender           string                   `json:"gender"`
	Phone            string                   `json:"phone"`
	Address          string                   `json:"address"`
	MedicalHistory   entity.MedicalHistory    `json:"medical_history"`
	InsuranceInfo    *entity.InsuranceInfo    `json:"insurance_info,omitempty"`
	EmergencyContact *entity.EmergencyContact `json:"emergency_contact,omitempty"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientProfileResponse `json:"patients"`
	Total    int                      `json:"total"`
}
