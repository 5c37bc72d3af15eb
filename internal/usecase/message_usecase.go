package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"trial-bridge/internal/converter"
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/delivery/http/middleware"
	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound  = errors.New("message not found")
	ErrEmptyMessage     = errors.New("message content is required")
	ErrReceiverRequired = errors.New("receiver is required")
)

type MessageUsecase interface {
	GetMessagesByUser(ctx context.Context, userID string) (*dto.MessageListResponse, error)
	GetConversation(ctx context.Context, firstID, secondID string) (*dto.MessageListResponse, error)
	SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	MarkMessageAsRead(ctx context.Context, id string) error
}

type messageUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	messageRepo repository.MessageRepository
}

func NewMessageUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	messageRepo repository.MessageRepository,
) MessageUsecase {
	return &messageUsecase{
		db:          db,
		log:         log,
		messageRepo: messageRepo,
	}
}

// GetMessagesByUser returns every message the participant sent or received, newest first.
func (u *messageUsecase) GetMessagesByUser(ctx context.Context, userID string) (*dto.MessageListResponse, error) {
	messages, err := u.messageRepo.FindByParticipant(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find messages for %s: %+v", userID, err)
		return nil, err
	}
	return messageList(messages), nil
}

// GetConversation returns the exchange between two participants, oldest first.
func (u *messageUsecase) GetConversation(ctx context.Context, firstID, secondID string) (*dto.MessageListResponse, error) {
	messages, err := u.messageRepo.FindConversation(ctx, u.db, firstID, secondID)
	if err != nil {
		u.log.Warnf("Failed to find conversation %s/%s: %+v", firstID, secondID, err)
		return nil, err
	}
	return messageList(messages), nil
}

// SendMessage sends from the signed-in participant.
func (u *messageUsecase) SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	senderID, ok := middleware.GetParticipantIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	receiverID := strings.TrimSpace(req.ReceiverID)
	if receiverID == "" {
		return nil, ErrReceiverRequired
	}

	attachments := make([]entity.Attachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		attachments = append(attachments, entity.Attachment{
			ID:   entity.NewID("att"),
			Name: a.Name,
			Type: entity.AttachmentType(a.Type),
			URL:  a.URL,
			Size: a.Size,
		})
	}

	message := &entity.Message{
		ID:          entity.NewID("msg"),
		SenderID:    senderID,
		ReceiverID:  receiverID,
		SenderType:  entity.ParticipantTypeForRole(roleID),
		Content:     content,
		Timestamp:   time.Now().UTC(),
		Read:        false,
		Attachments: datatypes.JSONSlice[entity.Attachment](attachments),
	}

	if err := u.messageRepo.Create(ctx, u.db, message); err != nil {
		u.log.Warnf("Failed to create message: %+v", err)
		return nil, err
	}

	return converter.MessageToResponse(message), nil
}

// MarkMessageAsRead marks a message the signed-in participant received. A
// message addressed to someone else reports ErrMessageNotFound.
func (u *messageUsecase) MarkMessageAsRead(ctx context.Context, id string) error {
	receiverID, ok := middleware.GetParticipantIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	found, err := u.messageRepo.MarkRead(ctx, u.db, id, receiverID)
	if err != nil {
		u.log.Warnf("Failed to mark message %s as read: %+v", id, err)
		return err
	}
	if !found {
		return ErrMessageNotFound
	}
	return nil
}

func messageList(messages []entity.Message) *dto.MessageListResponse {
	return &dto.MessageListResponse{
		Messages: converter.MessagesToResponses(messages),
		Total:    len(messages),
	}
}
