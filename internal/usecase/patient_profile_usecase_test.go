package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUpdatePatientProfile_ConditionsOnly(t *testing.T) {
	e := newEnv(t)
	ctx := e.sessionFor(t, "patient@example.com")

	before, err := e.profiles.GetPatientProfile(ctx, "patient@example.com")
	require.NoError(t, err)

	after, err := e.profiles.UpdatePatientProfile(ctx, "patient@example.com", &dto.UpdatePatientProfileRequest{
		MedicalHistory: &dto.MedicalHistoryPatch{Conditions: &[]string{"X"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"X"}, after.MedicalHistory.Conditions)
	assert.Equal(t, before.MedicalHistory.Medications, after.MedicalHistory.Medications)
	assert.Equal(t, before.MedicalHistory.Allergies, after.MedicalHistory.Allergies)
	assert.Equal(t, before.MedicalHistory.Surgeries, after.MedicalHistory.Surgeries)
	assert.Equal(t, before.MedicalHistory.FamilyHistory, after.MedicalHistory.FamilyHistory)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.InsuranceInfo, after.InsuranceInfo)

	stored, err := e.profiles.GetPatientProfile(ctx, "patient@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, stored.MedicalHistory.Conditions)

	assert.EqualValues(t, 1, auditCount(t, e.db, entity.AuditActionProfileUpdate))
}

func TestUpdatePatientProfile_MergesNestedObjects(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	after, err := e.profiles.UpdatePatientProfile(ctx, "patient@example.com", &dto.UpdatePatientProfileRequest{
		Age:              ptr(46),
		InsuranceInfo:    &dto.InsuranceInfoPatch{ExpirationDate: ptr("2026-12-31")},
		EmergencyContact: &dto.EmergencyContactPatch{Phone: ptr("5550009999")},
	})
	require.NoError(t, err)

	assert.Equal(t, 46, after.Age)
	require.NotNil(t, after.InsuranceInfo)
	assert.Equal(t, "BCBS12345678", after.InsuranceInfo.PolicyNumber)
	assert.Equal(t, "2026-12-31", after.InsuranceInfo.ExpirationDate)
	require.NotNil(t, after.EmergencyContact)
	assert.Equal(t, "Jane Smith", after.EmergencyContact.Name)
	assert.Equal(t, "5550009999", after.EmergencyContact.Phone)
}

func TestUpdatePatientProfile_RejectsBeforeWriting(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.profiles.UpdatePatientProfile(ctx, "patient@example.com", &dto.UpdatePatientProfileRequest{
		Name:   ptr("Renamed"),
		Gender: ptr("unknown"),
	})
	assert.ErrorIs(t, err, usecase.ErrInvalidGender)

	_, err = e.profiles.UpdatePatientProfile(ctx, "patient@example.com", &dto.UpdatePatientProfileRequest{Age: ptr(130)})
	assert.ErrorIs(t, err, usecase.ErrInvalidAge)

	_, err = e.profiles.UpdatePatientProfile(ctx, "not-an-email", &dto.UpdatePatientProfileRequest{})
	assert.ErrorIs(t, err, usecase.ErrInvalidEmail)

	_, err = e.profiles.UpdatePatientProfile(ctx, "ghost@example.com", &dto.UpdatePatientProfileRequest{Name: ptr("Ghost")})
	assert.ErrorIs(t, err, usecase.ErrPatientNotFound)

	profile, err := e.profiles.GetPatientProfile(ctx, "patient@example.com")
	require.NoError(t, err)
	assert.Equal(t, "John Smith", profile.Name)
}

func TestApplyProfilePatch_ClearsListWithEmptySlice(t *testing.T) {
	var profile entity.PatientProfile
	usecase.ApplyProfilePatch(&profile, &dto.UpdatePatientProfileRequest{
		MedicalHistory: &dto.MedicalHistoryPatch{Allergies: &[]string{"Latex"}},
	})
	assert.Equal(t, []string{"Latex"}, profile.MedicalHistory.Data().Allergies)

	usecase.ApplyProfilePatch(&profile, &dto.UpdatePatientProfileRequest{
		MedicalHistory: &dto.MedicalHistoryPatch{Allergies: &[]string{}},
	})
	assert.Empty(t, profile.MedicalHistory.Data().Allergies)
}

func TestGetAllPatients(t *testing.T) {
	e := newEnv(t)

	list, err := e.profiles.GetAllPatients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, list.Total)
}

func TestAddHealthRecord(t *testing.T) {
	e := newEnv(t)
	ctx := e.sessionFor(t, "patient@example.com")

	record, err := e.records.AddHealthRecord(ctx, "patient@example.com", &dto.CreateHealthRecordRequest{
		Date:     "2024-03-01",
		Type:     "symptom",
		Data:     json.RawMessage(`{"description":"Mild headache","severity":"Mild"}`),
		Provider: "Self-reported",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.JSONEq(t, `{"description":"Mild headache","severity":"Mild"}`, string(record.Data))

	list, err := e.records.GetPatientHealthRecords(ctx, "patient@example.com")
	require.NoError(t, err)
	assert.Equal(t, 7, list.Total)
	assert.EqualValues(t, 1, auditCount(t, e.db, entity.AuditActionRecordCreate))
}

func TestAddHealthRecord_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		email   string
		req     dto.CreateHealthRecordRequest
		wantErr error
	}{
		{"bad date", "patient@example.com", dto.CreateHealthRecordRequest{Date: "03/01/2024", Type: "note", Data: json.RawMessage(`{"content":"x"}`)}, usecase.ErrInvalidDateFormat},
		{"bad type", "patient@example.com", dto.CreateHealthRecordRequest{Date: "2024-03-01", Type: "xray", Data: json.RawMessage(`{"content":"x"}`)}, usecase.ErrInvalidRecordType},
		{"payload mismatch", "patient@example.com", dto.CreateHealthRecordRequest{Date: "2024-03-01", Type: "medication", Data: json.RawMessage(`{"dosage":"5mg"}`)}, usecase.ErrInvalidRecordData},
		{"unknown patient", "ghost@example.com", dto.CreateHealthRecordRequest{Date: "2024-03-01", Type: "note", Data: json.RawMessage(`{"content":"x"}`)}, usecase.ErrPatientNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.records.AddHealthRecord(ctx, tt.email, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	list, err := e.records.GetPatientHealthRecords(ctx, "patient@example.com")
	require.NoError(t, err)
	assert.Equal(t, 6, list.Total)
}
