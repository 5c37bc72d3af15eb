package repository

import (
	"context"

	"trial-bridge/internal/domain/entity"
	domainRepo "trial-bridge/internal/domain/repository"

	"gorm.io/gorm"
)

type messageRepository struct{}

func NewMessageRepository() domainRepo.MessageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(ctx context.Context, db *gorm.DB, message *entity.Message) error {
	return db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) FindByParticipant(ctx context.Context, db *gorm.DB, participantID string) ([]entity.Message, error) {
	var messages []entity.Message
	err := db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", participantID, participantID).
		Order("timestamp DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) FindConversation(ctx context.Context, db *gorm.DB, firstID, secondID string) ([]entity.Message, error) {
	var messages []entity.Message
	err := db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			firstID, secondID, secondID, firstID).
		Order("timestamp ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, db *gorm.DB, id, receiverID string) (bool, error) {
	result := db.WithContext(ctx).Model(&entity.Message{}).
		Where("id = ? AND receiver_id = ?", id, receiverID).
		Update("read", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
