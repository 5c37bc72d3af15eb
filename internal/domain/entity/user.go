package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the single authentication table for patients and trial team members.
// Patients sign in by email or phone, team members by username.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username  *string   `gorm:"type:varchar(100);uniqueIndex" json:"username,omitempty"`
	Phone     *string   `gorm:"type:varchar(20);uniqueIndex" json:"phone,omitempty"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	FullName  string    `gorm:"type:varchar(255)" json:"full_name"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsPatient reports whether the user signs in through the patient portal.
func (u *User) IsPatient() bool {
	return u.RoleID == RoleIDPatient
}

// ParticipantID is the identifier used in messages and forum posts:
// the email for patients, the username for the trial team.
func (u *User) ParticipantID() string {
	if !u.IsPatient() && u.Username != nil {
		return *u.Username
	}
	return u.Email
}

// DisplayName falls back to the participant id when no name is on file.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.ParticipantID()
}
