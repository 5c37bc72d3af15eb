package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type AppointmentType string

const (
	AppointmentTypeScreening    AppointmentType = "screening"
	AppointmentTypeFollowUp     AppointmentType = "follow-up"
	AppointmentTypeConsultation AppointmentType = "consultation"
)

// Appointment is a visit a patient schedules, optionally tied to a trial.
type Appointment struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	PatientEmail string            `gorm:"type:varchar(255);not null;index" json:"patient_email"`
	TrialID      *string           `gorm:"type:varchar(64);index" json:"trial_id,omitempty"`
	Date         string            `gorm:"type:varchar(10);not null;index" json:"date"`
	Time         string            `gorm:"type:varchar(5);not null" json:"time"`
	Type         AppointmentType   `gorm:"type:varchar(20);not null" json:"type"`
	Doctor       string            `gorm:"type:varchar(255)" json:"doctor"`
	Location     string            `gorm:"type:varchar(255)" json:"location"`
	Notes        string            `gorm:"type:text" json:"notes,omitempty"`
	Status       AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Trial *Trial `gorm:"foreignKey:TrialID" json:"trial,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsCancelled checks if appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}
