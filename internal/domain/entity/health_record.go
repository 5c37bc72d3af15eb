package entity

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
)

// HealthRecordType tags the shape of a record's payload
type HealthRecordType string

const (
	HealthRecordVital      HealthRecordType = "vital"
	HealthRecordLab        HealthRecordType = "lab"
	HealthRecordMedication HealthRecordType = "medication"
	HealthRecordSymptom    HealthRecordType = "symptom"
	HealthRecordNote       HealthRecordType = "note"
)

func (t HealthRecordType) IsValid() bool {
	switch t {
	case HealthRecordVital, HealthRecordLab, HealthRecordMedication, HealthRecordSymptom, HealthRecordNote:
		return true
	}
	return false
}

// HealthRecord is an append-only entry in a patient's chart. Data holds
// the JSON payload matching Type.
type HealthRecord struct {
	ID           string           `gorm:"type:varchar(64);primaryKey" json:"id"`
	PatientEmail string           `gorm:"type:varchar(255);not null;index" json:"patient_email"`
	Date         string           `gorm:"type:varchar(10);not null;index" json:"date"`
	Type         HealthRecordType `gorm:"type:varchar(20);not null" json:"type"`
	Data         datatypes.JSON   `json:"data"`
	Provider     string           `gorm:"type:varchar(255)" json:"provider,omitempty"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

func (HealthRecord) TableName() string {
	return "health_records"
}

// Payload shapes. Vital and lab results carry open-ended measurements,
// so only the fields the portal charts are named.
type VitalData struct {
	BloodPressure   string   `json:"bloodPressure,omitempty"`
	HeartRate       *float64 `json:"heartRate,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	Height          *float64 `json:"height,omitempty"`
	BMI             *float64 `json:"bmi,omitempty"`
	RespiratoryRate *float64 `json:"respiratoryRate,omitempty"`
}

type LabData struct {
	GlucoseFasting   *float64 `json:"glucoseFasting,omitempty"`
	HbA1c            *float64 `json:"hba1c,omitempty"`
	CholesterolTotal *float64 `json:"cholesterolTotal,omitempty"`
	LDL              *float64 `json:"ldl,omitempty"`
	HDL              *float64 `json:"hdl,omitempty"`
	Triglycerides    *float64 `json:"triglycerides,omitempty"`
	TestName         string   `json:"testName,omitempty"`
	ReferenceRange   string   `json:"referenceRange,omitempty"`
}

type MedicationData struct {
	Name         string  `json:"name"`
	Dosage       string  `json:"dosage"`
	Frequency    string  `json:"frequency"`
	StartDate    string  `json:"startDate"`
	EndDate      *string `json:"endDate"`
	PrescribedBy string  `json:"prescribedBy,omitempty"`
}

type SymptomData struct {
	Description string `json:"description"`
	Severity    string `json:"severity,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Triggers    string `json:"triggers,omitempty"`
}

type NoteData struct {
	Content string `json:"content"`
	Author  string `json:"author,omitempty"`
}

var ErrHealthDataInvalid = errors.New("health record data does not match its type")

// ValidateHealthData checks that raw is a JSON object and carries the
// fields required by t.
func ValidateHealthData(t HealthRecordType, raw []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return ErrHealthDataInvalid
	}

	switch t {
	case HealthRecordVital:
		var v VitalData
		return decodeHealthData(raw, &v)
	case HealthRecordLab:
		var v LabData
		return decodeHealthData(raw, &v)
	case HealthRecordMedication:
		var v MedicationData
		if err := decodeHealthData(raw, &v); err != nil {
			return err
		}
		if v.Name == "" {
			return ErrHealthDataInvalid
		}
	case HealthRecordSymptom:
		var v SymptomData
		if err := decodeHealthData(raw, &v); err != nil {
			return err
		}
		if v.Description == "" {
			return ErrHealthDataInvalid
		}
	case HealthRecordNote:
		var v NoteData
		if err := decodeHealthData(raw, &v); err != nil {
			return err
		}
		if v.Content == "" {
			return ErrHealthDataInvalid
		}
	default:
		return ErrHealthDataInvalid
	}
	return nil
}

func decodeHealthData(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return ErrHealthDataInvalid
	}
	return nil
}
