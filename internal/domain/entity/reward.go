package entity

import (
	"time"
)

type RewardType string

const (
	RewardTypeMedical   RewardType = "medical"
	RewardTypeFinancial RewardType = "financial"
	RewardTypeService   RewardType = "service"
)

func (t RewardType) IsValid() bool {
	switch t {
	case RewardTypeMedical, RewardTypeFinancial, RewardTypeService:
		return true
	}
	return false
}

// Reward is redeemable for points while Available and not past ExpiryDate.
type Reward struct {
	ID             string     `gorm:"type:varchar(64);primaryKey" json:"id"`
	Title          string     `gorm:"type:varchar(255);not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	Type           RewardType `gorm:"type:varchar(20);not null;index" json:"type"`
	PointsRequired int        `gorm:"not null" json:"points_required"`
	Available      bool       `gorm:"not null;default:true" json:"available"`
	ExpiryDate     string     `gorm:"type:varchar(10)" json:"expiry_date,omitempty"`
}

func (Reward) TableName() string {
	return "rewards"
}

// IsRedeemable reports whether the reward can be claimed on day now.
func (r *Reward) IsRedeemable(now time.Time) bool {
	if !r.Available {
		return false
	}
	if r.ExpiryDate == "" {
		return true
	}
	expiry, err := time.Parse(DateLayout, r.ExpiryDate)
	if err != nil {
		return false
	}
	return !now.After(expiry.AddDate(0, 0, 1))
}

type Achievement struct {
	ID            string `gorm:"type:varchar(64);primaryKey" json:"id"`
	Title         string `gorm:"type:varchar(255);not null;uniqueIndex" json:"title"`
	Description   string `gorm:"type:text" json:"description"`
	PointsAwarded int    `gorm:"not null" json:"points_awarded"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// PatientAchievement marks an achievement completed by a patient.
type PatientAchievement struct {
	PatientEmail  string    `gorm:"type:varchar(255);primaryKey" json:"patient_email"`
	AchievementID string    `gorm:"type:varchar(64);primaryKey" json:"achievement_id"`
	DateCompleted string    `gorm:"type:varchar(10);not null" json:"date_completed"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

func (PatientAchievement) TableName() string {
	return "patient_achievements"
}

type RewardRedemption struct {
	ID           string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	PatientEmail string    `gorm:"type:varchar(255);not null;index" json:"patient_email"`
	RewardID     string    `gorm:"type:varchar(64);not null;index" json:"reward_id"`
	PointsSpent  int       `gorm:"not null" json:"points_spent"`
	RedeemedAt   time.Time `gorm:"autoCreateTime" json:"redeemed_at"`

	// Relationships
	Reward *Reward `gorm:"foreignKey:RewardID" json:"reward,omitempty"`
}

func (RewardRedemption) TableName() string {
	return "reward_redemptions"
}

// Well-known achievements awarded automatically.
const (
	AchievementFirstApplication = "achievement-002"
)
