package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// LoginPatientRequest accepts either email+password or phone+verification_code.
type LoginPatientRequest struct {
	Email            string `json:"email" validate:"required_without=Phone,omitempty,email"`
	Password         string `json:"password" validate:"required_with=Email"`
	Phone            string `json:"phone" validate:"required_without=Email,omitempty,numeric"`
	VerificationCode string `json:"verification_code" validate:"required_with=Phone"`
}

type LoginTrialTeamRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterPatientRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,numeric,min=10,max=20"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"omitempty,max=255"`
}

type RegisterTrialTeamRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"omitempty,max=255"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}

type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	FullName      string    `json:"full_name"`
	Role          string    `json:"role"`
	ParticipantID string    `json:"participant_id"`
	CreatedAt     time.Time `json:"created_at"`
}
