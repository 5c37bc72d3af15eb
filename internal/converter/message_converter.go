package converter

import (
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/entity"
)

func MessageToResponse(message *entity.Message) *dto.MessageResponse {
	if message == nil {
		return nil
	}

	attachments := make([]dto.AttachmentResponse, len(message.Attachments))
	for i, a := range message.Attachments {
		attachments[i] = dto.AttachmentResponse{
			ID:   a.ID,
			Name: a.Name,
			Type: string(a.Type),
			URL:  a.URL,
			Size: a.Size,
		}
	}

	return &dto.MessageResponse{
		ID:          message.ID,
		SenderID:    message.SenderID,
		ReceiverID:  message.ReceiverID,
		SenderType:  string(message.SenderType),
		Content:     message.Content,
		Timestamp:   message.Timestamp,
		Read:        message.Read,
		Attachments: attachments,
	}
}

func MessagesToResponses(messages []entity.Message) []dto.MessageResponse {
	responses := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		responses[i] = *MessageToResponse(&messages[i])
	}
	return responses
}
