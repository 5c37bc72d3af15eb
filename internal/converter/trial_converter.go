package converter

import (
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/entity"
)

// TrialToResponse converts a Trial entity to TrialResponse DTO.
// EnrolledCount is only meaningful when Enrollments is preloaded.
func TrialToResponse(trial *entity.Trial) *dto.TrialResponse {
	if trial == nil {
		return nil
	}

	return &dto.TrialResponse{
		ID:                  trial.ID,
		Title:               trial.Title,
		Description:         trial.Description,
		Status:              string(trial.Status),
		Location:            trial.Location,
		StartDate:           trial.StartDate,
		EndDate:             trial.EndDate,
		EligibilityCriteria: nonNil([]string(trial.EligibilityCriteria)),
		Compensation:        trial.Compensation,
		SponsoredBy:         trial.SponsoredBy,
		ContactEmail:        trial.ContactEmail,
		ContactPhone:        trial.ContactPhone,
		EnrolledCount:       len(trial.Enrollments),
	}
}

func TrialsToResponses(trials []entity.Trial) []dto.TrialResponse {
	responses := make([]dto.TrialResponse, len(trials))
	for i := range trials {
		responses[i] = *TrialToResponse(&trials[i])
	}
	return responses
}
