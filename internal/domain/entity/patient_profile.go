package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PatientProfile holds demographics and medical history, keyed by email.
type PatientProfile struct {
	Email            string                                `gorm:"type:varchar(255);primaryKey" json:"email"`
	UserID           *uuid.UUID                            `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name             string                                `gorm:"type:varchar(255)" json:"name"`
	Age              int                                   `json:"age"`
	Gender           string                                `gorm:"type:varchar(10)" json:"gender"`
	Phone            string                                `gorm:"type:varchar(20)" json:"phone"`
	Address          string                                `gorm:"type:text" json:"address"`
	MedicalHistory   datatypes.JSONType[MedicalHistory]    `json:"medical_history"`
	InsuranceInfo    datatypes.JSONType[*InsuranceInfo]    `json:"insurance_info"`
	EmergencyContact datatypes.JSONType[*EmergencyContact] `json:"emergency_contact"`
	CreatedAt        time.Time                             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time                             `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}

type MedicalHistory struct {
	Conditions    []string `json:"conditions"`
	Medications   []string `json:"medications"`
	Allergies     []string `json:"allergies"`
	Surgeries     []string `json:"surgeries"`
	FamilyHistory []string `json:"familyHistory"`
}

type InsuranceInfo struct {
	Provider       string `json:"provider"`
	PolicyNumber   string `json:"policyNumber"`
	GroupNumber    string `json:"groupNumber,omitempty"`
	ExpirationDate string `json:"expirationDate"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// Gender constants
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// IsValidGender reports whether g is an accepted gender value.
func IsValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// EmptyMedicalHistory has non-nil lists so it serialises as arrays.
func EmptyMedicalHistory() MedicalHistory {
	return MedicalHistory{
		Conditions:    []string{},
		Medications:   []string{},
		Allergies:     []string{},
		Surgeries:     []string{},
		FamilyHistory: []string{},
	}
}
