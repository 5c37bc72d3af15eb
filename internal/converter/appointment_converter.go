package converter

import (
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:           appointment.ID,
		PatientEmail: appointment.PatientEmail,
		TrialID:      appointment.TrialID,
		Date:         appointment.Date,
		Time:         appointment.Time,
		Type:         string(appointment.Type),
		Doctor:       appointment.Doctor,
		Location:     appointment.Location,
		Notes:        appointment.Notes,
		Status:       string(appointment.Status),
		CreatedAt:    appointment.CreatedAt,
	}

	// Include trial info if available
	if appointment.Trial != nil {
		response.TrialTitle = appointment.Trial.Title
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
