package dto

import "time"

// Request DTOs

type SendMessageRequest struct {
	ReceiverID  string              `json:"receiver_id" validate:"required"`
	Content     string              `json:"content" validate:"required,max=5000"`
	Attachments []AttachmentRequest `json:"attachments" validate:"omitempty,dive"`
}

type AttachmentRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required,oneof=image document pdf"`
	URL  string `json:"url" validate:"required,url"`
	Size int    `json:"size" validate:"gte=0"`
}

// Response DTOs

type AttachmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
	Size int    `json:"size"`
}

type MessageResponse struct {
	ID          string               `json:"id"`
	SenderID    string               `json:"sender_id"`
	ReceiverID  string               `json:"receiver_id"`
	SenderType  string               `json:"sender_type"`
	Content     string               `json:"content"`
	Timestamp   time.Time            `json:"timestamp"`
	Read        bool                 `json:"read"`
	Attachments []AttachmentResponse `json:"attachments"`
}

type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int               `json:"total"`
}
