package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateHealthData(t *testing.T) {
	tests := []struct {
		name    string
		kind    HealthRecordType
		raw     string
		wantErr bool
	}{
		{"vital", HealthRecordVital, `{"bloodPressure":"128/82","heartRate":75}`, false},
		{"lab with free-form fields", HealthRecordLab, `{"hba1c":6.8,"crp":1.2}`, false},
		{"medication", HealthRecordMedication, `{"name":"Metformin","dosage":"500mg","frequency":"Twice daily","startDate":"2023-05-15","endDate":null}`, false},
		{"medication without name", HealthRecordMedication, `{"dosage":"500mg"}`, true},
		{"symptom without description", HealthRecordSymptom, `{"severity":"Mild"}`, true},
		{"note", HealthRecordNote, `{"content":"Doing well","author":"Dr. Sarah Johnson"}`, false},
		{"array payload", HealthRecordNote, `["content"]`, true},
		{"null payload", HealthRecordVital, `null`, true},
		{"unknown type", HealthRecordType("xray"), `{"content":"x"}`, true},
		{"wrong field type", HealthRecordVital, `{"heartRate":"fast"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHealthData(tt.kind, []byte(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrHealthDataInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReward_IsRedeemable(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, (&Reward{Available: true, ExpiryDate: "2024-06-01"}).IsRedeemable(now))
	assert.True(t, (&Reward{Available: true}).IsRedeemable(now))
	assert.False(t, (&Reward{Available: true, ExpiryDate: "2024-05-31"}).IsRedeemable(now))
	assert.False(t, (&Reward{Available: false, ExpiryDate: "2030-01-01"}).IsRedeemable(now))
	assert.False(t, (&Reward{Available: true, ExpiryDate: "soon"}).IsRedeemable(now))
}

func TestUser_ParticipantID(t *testing.T) {
	username := "dr.johnson"
	team := &User{RoleID: RoleIDTrialTeam, Email: "sarah.johnson@example.com", Username: &username}
	patient := &User{RoleID: RoleIDPatient, Email: "patient@example.com", FullName: "John Smith"}

	assert.Equal(t, "dr.johnson", team.ParticipantID())
	assert.Equal(t, "dr.johnson", team.DisplayName())
	assert.Equal(t, "patient@example.com", patient.ParticipantID())
	assert.Equal(t, "John Smith", patient.DisplayName())
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, TrialStatusRecruiting.IsValid())
	assert.False(t, TrialStatus("paused").IsValid())
	assert.True(t, ResourceTypeFAQ.IsValid())
	assert.False(t, ResourceType("podcast").IsValid())
	assert.True(t, ForumCategorySupport.IsValid())
	assert.False(t, ForumCategory("offtopic").IsValid())
	assert.True(t, IsValidGender(GenderOther))
	assert.False(t, IsValidGender("M"))
	assert.True(t, IsValidDate("2023-05-15"))
	assert.False(t, IsValidDate("15/05/2023"))
}
