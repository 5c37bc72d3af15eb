package repository

import (
	"context"

	"trial-bridge/internal/domain/entity"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, db *gorm.DB, message *entity.Message) error
	FindByParticipant(ctx context.Context, db *gorm.DB, participantID string) ([]entity.Message, error)
	FindConversation(ctx context.Context, db *gorm.DB, firstID, secondID string) ([]entity.Message, error)
	// MarkRead returns false when no message with the id was sent to receiverID.
	MarkRead(ctx context.Context, db *gorm.DB, id, receiverID string) (bool, error)
}
