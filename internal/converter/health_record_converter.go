package converter

import (
	"encoding/json"

	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/entity"
)

func HealthRecordToResponse(record *entity.HealthRecord) *dto.HealthRecordResponse {
	if record == nil {
		return nil
	}

	data := json.RawMessage(record.Data)
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}

	return &dto.HealthRecordResponse{
		ID:           record.ID,
		PatientEmail: record.PatientEmail,
		Date:         record.Date,
		Type:         string(record.Type),
		Data:         data,
		Provider:     record.Provider,
		CreatedAt:    record.CreatedAt,
	}
}

func HealthRecordsToResponses(records []entity.HealthRecord) []dto.HealthRecordResponse {
	responses := make([]dto.HealthRecordResponse, len(records))
	for i := range records {
		responses[i] = *HealthRecordToResponse(&records[i])
	}
	return responses
}
