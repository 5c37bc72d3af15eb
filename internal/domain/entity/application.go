package entity

import "time"

// ApplicationStatus represents the review state of a trial application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// TrialApplication is a patient's request to join a trial.
// A patient has at most one application per trial.
type TrialApplication struct {
	ID             string            `gorm:"type:varchar(64);primaryKey" json:"id"`
	PatientEmail   string            `gorm:"type:varchar(255);not null;uniqueIndex:idx_application_patient_trial" json:"patient_email"`
	TrialID        string            `gorm:"type:varchar(64);not null;uniqueIndex:idx_application_patient_trial;index" json:"trial_id"`
	Status         ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	SubmissionDate string            `gorm:"type:varchar(10);not null" json:"submission_date"`
	Notes          string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Trial *Trial `gorm:"foreignKey:TrialID" json:"trial,omitempty"`
}

func (TrialApplication) TableName() string {
	return "trial_applications"
}

// IsPending checks if the application still awaits review
func (a *TrialApplication) IsPending() bool {
	return a.Status == ApplicationStatusPending
}

// IsApproved checks if the application was approved
func (a *TrialApplication) IsApproved() bool {
	return a.Status == ApplicationStatusApproved
}
