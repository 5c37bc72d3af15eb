package converter

import (
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/entity"
)

func ResourceToResponse(resource *entity.EducationalResource) *dto.ResourceResponse {
	if resource == nil {
		return nil
	}

	return &dto.ResourceResponse{
		ID:              resource.ID,
		Title:           resource.Title,
		Type:            string(resource.Type),
		Content:         resource.Content,
		Summary:         resource.Summary,
		Tags:            nonNil([]string(resource.Tags)),
		DatePublished:   resource.DatePublished,
		Author:          resource.Author,
		ViewCount:       resource.ViewCount,
		RelatedTrialIDs: nonNil([]string(resource.RelatedTrialIDs)),
	}
}

func ResourcesToResponses(resources []entity.EducationalResource) []dto.ResourceResponse {
	responses := make([]dto.ResourceResponse, len(resources))
	for i := range resources {
		responses[i] = *ResourceToResponse(&resources[i])
	}
	return responses
}

func FeedbackToResponse(feedback *entity.PatientFeedback) *dto.FeedbackResponse {
	if feedback == nil {
		return nil
	}

	return &dto.FeedbackResponse{
		ID:            feedback.ID,
		ResourceID:    feedback.ResourceID,
		PatientEmail:  feedback.PatientEmail,
		Rating:        feedback.Rating,
		Comment:       feedback.Comment,
		DateSubmitted: feedback.DateSubmitted,
	}
}

func FeedbackListToResponses(feedback []entity.PatientFeedback) []dto.FeedbackResponse {
	responses := make([]dto.FeedbackResponse, len(feedback))
	for i := range feedback {
		responses[i] = *FeedbackToResponse(&feedback[i])
	}
	return responses
}
