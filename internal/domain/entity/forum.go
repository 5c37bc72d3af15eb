package entity

import (
	"time"

	"gorm.io/datatypes"
)

type ForumCategory string

const (
	ForumCategoryGeneral     ForumCategory = "general"
	ForumCategoryQuestions   ForumCategory = "questions"
	ForumCategoryExperiences ForumCategory = "experiences"
	ForumCategorySupport     ForumCategory = "support"
)

func (c ForumCategory) IsValid() bool {
	switch c {
	case ForumCategoryGeneral, ForumCategoryQuestions, ForumCategoryExperiences, ForumCategorySupport:
		return true
	}
	return false
}

type ForumPost struct {
	ID         string                      `gorm:"type:varchar(64);primaryKey" json:"id"`
	Title      string                      `gorm:"type:varchar(255);not null" json:"title"`
	Content    string                      `gorm:"type:text;not null" json:"content"`
	AuthorID   string                      `gorm:"type:varchar(255);not null;index" json:"author_id"`
	AuthorType ParticipantType             `gorm:"type:varchar(20);not null" json:"author_type"`
	AuthorName string                      `gorm:"type:varchar(255)" json:"author_name"`
	Timestamp  time.Time                   `gorm:"not null;index" json:"timestamp"`
	Category   ForumCategory               `gorm:"type:varchar(20);not null;index" json:"category"`
	Tags       datatypes.JSONSlice[string] `json:"tags"`
	Likes      int                         `gorm:"not null;default:0" json:"likes"`

	// Relationships
	Comments []ForumComment `gorm:"foreignKey:PostID" json:"comments"`
}

func (ForumPost) TableName() string {
	return "forum_posts"
}

// ForumComment belongs to a post. ParentCommentID, when set, names
// another comment on the same post.
type ForumComment struct {
	ID              string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	PostID          string          `gorm:"type:varchar(64);not null;index" json:"post_id"`
	Content         string          `gorm:"type:text;not null" json:"content"`
	AuthorID        string          `gorm:"type:varchar(255);not null" json:"author_id"`
	AuthorType      ParticipantType `gorm:"type:varchar(20);not null" json:"author_type"`
	AuthorName      string          `gorm:"type:varchar(255)" json:"author_name"`
	Timestamp       time.Time       `gorm:"not null" json:"timestamp"`
	Likes           int             `gorm:"not null;default:0" json:"likes"`
	ParentCommentID *string         `gorm:"type:varchar(64);index" json:"parent_comment_id,omitempty"`
}

func (ForumComment) TableName() string {
	return "forum_comments"
}
