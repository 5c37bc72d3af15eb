package entity

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used across the portal.
const DateLayout = "2006-01-02"

// Today returns the current UTC date in DateLayout.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// IsValidDate reports whether s is a YYYY-MM-DD calendar date.
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// NewID returns a fresh identifier such as "app-1f0c...".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// AllModels lists every entity managed by migration, parents first.
func AllModels() []any {
	return []any{
		&Role{},
		&User{},
		&AuditLog{},
		&Trial{},
		&TrialEnrollment{},
		&TrialApplication{},
		&PatientProfile{},
		&HealthRecord{},
		&EducationalResource{},
		&PatientFeedback{},
		&Message{},
		&ForumPost{},
		&ForumComment{},
		&Reward{},
		&Achievement{},
		&PatientAchievement{},
		&RewardRedemption{},
		&Appointment{},
	}
}
