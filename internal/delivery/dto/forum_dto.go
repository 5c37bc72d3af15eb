package dto

import "time"

// Request DTOs

type CreateForumPostRequest struct {
	Title    string   `json:"title" validate:"required,min=3,max=255"`
	Content  string   `json:"content" validate:"required"`
	Category string   `json:"category" validate:"required,oneof=general questions experiences support"`
	Tags     []string `json:"tags" validate:"omitempty,max=10,dive,max=50"`
}

type CreateForumCommentRequest struct {
	Content         string  `json:"content" validate:"required,max=5000"`
	ParentCommentID *string `json:"parent_comment_id"`
}

// Response DTOs

type ForumCommentResponse struct {
	ID              string    `json:"id"`
	PostID          string    `json:"post_id"`
	Content         string    `json:"content"`
	AuthorID        string    `json:"author_id"`
	AuthorType      string    `json:"author_type"`
	AuthorName      string    `json:"author_name"`
	Timestamp       time.Time `json:"timestamp"`
	Likes           int       `json:"likes"`
	ParentCommentID *string   `json:"parent_comment_id,omitempty"`
}

type ForumPostResponse struct {
	ID         string                 `json:"id"`
	Title      string                 `json:"title"`
	Content    string                 `json:"content"`
	AuthorID   string                 `json:"author_id"`
	AuthorType string                 `json:"author_type"`
	AuthorName string                 `json:"author_name"`
	Timestamp  time.Time              `json:"timestamp"`
	Category   string                 `json:"category"`
	Tags       []string               `json:"tags"`
	Likes      int                    `json:"likes"`
	Comments   []ForumCommentResponse `json:"comments"`
}

type ForumPostListResponse struct {
	Posts []ForumPostResponse `json:"posts"`
	Total int                 `json:"total"`
}
