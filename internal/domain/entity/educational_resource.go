package entity

import (
	"slices"
	"time"

	"gorm.io/datatypes"
)

// ResourceType is the presentation format of an educational resource
type ResourceType string

const (
	ResourceTypeArticle     ResourceType = "article"
	ResourceTypeVideo       ResourceType = "video"
	ResourceTypeFAQ         ResourceType = "faq"
	ResourceTypeInfographic ResourceType = "infographic"
)

func (t ResourceType) IsValid() bool {
	switch t {
	case ResourceTypeArticle, ResourceTypeVideo, ResourceTypeFAQ, ResourceTypeInfographic:
		return true
	}
	return false
}

type EducationalResource struct {
	ID              string                      `gorm:"type:varchar(64);primaryKey" json:"id"`
	Title           string                      `gorm:"type:varchar(255);not null" json:"title"`
	Type            ResourceType                `gorm:"type:varchar(20);not null;index" json:"type"`
	Content         string                      `gorm:"type:text" json:"content"`
	Summary         string                      `gorm:"type:text" json:"summary"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
	DatePublished   string                      `gorm:"type:varchar(10)" json:"date_published"`
	Author          string                      `gorm:"type:varchar(255)" json:"author,omitempty"`
	ViewCount       int                         `gorm:"not null;default:0" json:"view_count"`
	RelatedTrialIDs datatypes.JSONSlice[string] `json:"related_trial_ids"`
	CreatedAt       time.Time                   `gorm:"autoCreateTime" json:"created_at"`
}

func (EducationalResource) TableName() string {
	return "educational_resources"
}

// HasTag reports an exact, case-sensitive tag match.
func (r *EducationalResource) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

func (r *EducationalResource) RelatesToTrial(trialID string) bool {
	return slices.Contains(r.RelatedTrialIDs, trialID)
}

// PatientFeedback is a patient's rating of a resource. One per
// (resource, patient); resubmitting replaces it.
type PatientFeedback struct {
	ID            string `gorm:"type:varchar(64);primaryKey" json:"id"`
	ResourceID    string `gorm:"type:varchar(64);not null;uniqueIndex:idx_feedback_resource_patient" json:"resource_id"`
	PatientEmail  string `gorm:"type:varchar(255);not null;uniqueIndex:idx_feedback_resource_patient" json:"patient_email"`
	Rating        int    `gorm:"not null" json:"rating"`
	Comment       string `gorm:"type:text" json:"comment,omitempty"`
	DateSubmitted string `gorm:"type:varchar(10);not null" json:"date_submitted"`
}

func (PatientFeedback) TableName() string {
	return "patient_feedback"
}

const (
	MinRating = 1
	MaxRating = 5
)
