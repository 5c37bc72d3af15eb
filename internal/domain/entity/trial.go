package entity

import (
	"time"

	"gorm.io/datatypes"
)

// TrialStatus represents where a trial is in its lifecycle
type TrialStatus string

const (
	TrialStatusRecruiting TrialStatus = "recruiting"
	TrialStatusActive     TrialStatus = "active"
	TrialStatusCompleted  TrialStatus = "completed"
)

// IsValid reports whether s is one of the known trial states.
func (s TrialStatus) IsValid() bool {
	switch s {
	case TrialStatusRecruiting, TrialStatusActive, TrialStatusCompleted:
		return true
	}
	return false
}

// Trial is a clinical study listed in the registry.
// StartDate and EndDate are calendar dates (YYYY-MM-DD).
type Trial struct {
	ID                  string                      `gorm:"type:varchar(64);primaryKey" json:"id"`
	Title               string                      `gorm:"type:varchar(255);not null" json:"title"`
	Description         string                      `gorm:"type:text" json:"description"`
	Status              TrialStatus                 `gorm:"type:varchar(20);not null;index" json:"status"`
	Location            string                      `gorm:"type:varchar(255)" json:"location"`
	StartDate           string                      `gorm:"type:varchar(10)" json:"start_date"`
	EndDate             string                      `gorm:"type:varchar(10)" json:"end_date"`
	EligibilityCriteria datatypes.JSONSlice[string] `json:"eligibility_criteria"`
	Compensation        string                      `gorm:"type:varchar(255)" json:"compensation"`
	SponsoredBy         string                      `gorm:"type:varchar(255)" json:"sponsored_by"`
	ContactEmail        string                      `gorm:"type:varchar(255)" json:"contact_email"`
	ContactPhone        string                      `gorm:"type:varchar(50)" json:"contact_phone"`
	CreatedAt           time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Enrollments []TrialEnrollment `gorm:"foreignKey:TrialID" json:"enrollments,omitempty"`
}

func (Trial) TableName() string {
	return "trials"
}

// EnrolledEmails lists the enrolled patients when Enrollments is preloaded.
func (t *Trial) EnrolledEmails() []string {
	emails := make([]string, 0, len(t.Enrollments))
	for _, e := range t.Enrollments {
		emails = append(emails, e.PatientEmail)
	}
	return emails
}

// TrialEnrollment records a patient enrolled in a trial. The composite
// primary key makes enrollment a set: a patient appears at most once.
type TrialEnrollment struct {
	TrialID      string    `gorm:"type:varchar(64);primaryKey" json:"trial_id"`
	PatientEmail string    `gorm:"type:varchar(255);primaryKey" json:"patient_email"`
	EnrolledAt   time.Time `gorm:"autoCreateTime" json:"enrolled_at"`
}

func (TrialEnrollment) TableName() string {
	return "trial_enrollments"
}

// TrialFilter narrows the trial listing. Empty fields match everything.
type TrialFilter struct {
	Status TrialStatus
	Search string
}
