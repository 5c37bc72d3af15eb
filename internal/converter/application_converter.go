package converter

import (
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/entity"
)

// ApplicationToResponse converts a TrialApplication entity to ApplicationResponse DTO
func ApplicationToResponse(application *entity.TrialApplication) *dto.ApplicationResponse {
	if application == nil {
		return nil
	}

	response := &dto.ApplicationResponse{
		ID:             application.ID,
		PatientEmail:   application.PatientEmail,
		TrialID:        application.TrialID,
		Status:         string(application.Status),
		SubmissionDate: application.SubmissionDate,
		Notes:          application.Notes,
		UpdatedAt:      application.UpdatedAt,
	}

	// Include trial title if preloaded
	if application.Trial != nil {
		response.TrialTitle = application.Trial.Title
	}

	return response
}

func ApplicationsToResponses(applications []entity.TrialApplication) []dto.ApplicationResponse {
	responses := make([]dto.ApplicationResponse, len(applications))
	for i := range applications {
		responses[i] = *ApplicationToResponse(&applications[i])
	}
	return responses
}
