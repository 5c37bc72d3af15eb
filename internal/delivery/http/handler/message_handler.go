package handler

import (
	"encoding/json"
	"net/http"

	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/delivery/http/middleware"
	"trial-bridge/internal/usecase"
	"trial-bridge/pkg/response"
	"trial-bridge/pkg/validator"

	"github.com/gorilla/mux"
)

type MessageHandler struct {
	messageUsecase usecase.MessageUsecase
	validator      *validator.CustomValidator
}

func NewMessageHandler(messageUsecase usecase.MessageUsecase, validator *validator.CustomValidator) *MessageHandler {
	return &MessageHandler{
		messageUsecase: messageUsecase,
		validator:      validator,
	}
}

// GetMyMessages lists every message the session user sent or received.
func (h *MessageHandler) GetMyMessages(w http.ResponseWriter, r *http.Request) {
	participantID, ok := middleware.GetParticipantIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	messages, err := h.messageUsecase.GetMessagesByUser(r.Context(), participantID)
	if err != nil {
		response.InternalServerError(w, "Failed to get messages")
		return
	}

	response.Success(w, http.StatusOK, "Messages retrieved successfully", messages)
}

func (h *MessageHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	participantID, ok := middleware.GetParticipantIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	messages, err := h.messageUsecase.GetConversation(r.Context(), participantID, mux.Vars(r)["userId"])
	if err != nil {
		response.InternalServerError(w, "Failed to get conversation")
		return
	}

	response.Success(w, http.StatusOK, "Conversation retrieved successfully", messages)
}

func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.messageUsecase.SendMessage(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUnauthenticated:
			response.Unauthorized(w, "Invalid token")
		case usecase.ErrEmptyMessage, usecase.ErrReceiverRequired:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to send message")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Message sent successfully", message)
}

func (h *MessageHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	err := h.messageUsecase.MarkMessageAsRead(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case usecase.ErrUnauthenticated:
			response.Unauthorized(w, "Invalid token")
		case usecase.ErrMessageNotFound:
			response.NotFound(w, "Message not found")
		default:
			response.InternalServerError(w, "Failed to mark message as read")
		}
		return
	}

	response.Success(w, http.StatusOK, "Message marked as read", nil)
}
