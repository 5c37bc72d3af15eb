package converter

import (
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/entity"
)

// PatientProfileToResponse converts a PatientProfile entity to PatientProfileResponse DTO
func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.PatientProfileResponse{
		Email:            profile.Email,
		Name:             profile.Name,
		Age:              profile.Age,
		Gender:           profile.Gender,
		Phone:            profile.Phone,
		Address:          profile.Address,
		MedicalHistory:   normalizeMedicalHistory(profile.MedicalHistory.Data()),
		InsuranceInfo:    profile.InsuranceInfo.Data(),
		EmergencyContact: profile.EmergencyContact.Data(),
		UpdatedAt:        profile.UpdatedAt,
	}
}

func PatientProfilesToResponses(profiles []entity.PatientProfile) []dto.PatientProfileResponse {
	responses := make([]dto.PatientProfileResponse, len(profiles))
	for i := range profiles {
		responses[i] = *PatientProfileToResponse(&profiles[i])
	}
	return responses
}

// normalizeMedicalHistory turns nil lists into empty ones.
func normalizeMedicalHistory(h entity.MedicalHistory) entity.MedicalHistory {
	return entity.MedicalHistory{
		Conditions:    nonNil(h.Conditions),
		Medications:   nonNil(h.Medications),
		Allergies:     nonNil(h.Allergies),
		Surgeries:     nonNil(h.Surgeries),
		FamilyHistory: nonNil(h.FamilyHistory),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
