package entity

import (
	"time"

	"gorm.io/datatypes"
)

// ParticipantType distinguishes patients from trial staff in messaging
type ParticipantType string

const (
	ParticipantPatient   ParticipantType = "patient"
	ParticipantTrialTeam ParticipantType = "trialTeam"
)

// ParticipantTypeForRole maps a role id to the messaging participant type.
func ParticipantTypeForRole(roleID int) ParticipantType {
	if roleID == RoleIDTrialTeam {
		return ParticipantTrialTeam
	}
	return ParticipantPatient
}

type AttachmentType string

const (
	AttachmentImage    AttachmentType = "image"
	AttachmentDocument AttachmentType = "document"
	AttachmentPDF      AttachmentType = "pdf"
)

// Attachment is link metadata only; Size is in KB.
type Attachment struct {
	ID   string         `json:"id" yaml:"id"`
	Name string         `json:"name" yaml:"name"`
	Type AttachmentType `json:"type" yaml:"type"`
	URL  string         `json:"url" yaml:"url"`
	Size int            `json:"size" yaml:"size"`
}

// Message is a direct message between two participants. Sender and
// receiver ids are patient emails or team usernames.
type Message struct {
	ID          string                          `gorm:"type:varchar(64);primaryKey" json:"id"`
	SenderID    string                          `gorm:"type:varchar(255);not null;index" json:"sender_id"`
	ReceiverID  string                          `gorm:"type:varchar(255);not null;index" json:"receiver_id"`
	SenderType  ParticipantType                 `gorm:"type:varchar(20);not null" json:"sender_type"`
	Content     string                          `gorm:"type:text;not null" json:"content"`
	Timestamp   time.Time                       `gorm:"not null;index" json:"timestamp"`
	Read        bool                            `gorm:"not null;default:false" json:"read"`
	Attachments datatypes.JSONSlice[Attachment] `json:"attachments,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
