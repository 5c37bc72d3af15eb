package usecase_test

import (
	"context"
	"testing"

	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func screening(date, at string) *dto.CreateAppointmentRequest {
	trialID := "trial-001"
	return &dto.CreateAppointmentRequest{
		TrialID:  &trialID,
		Date:     date,
		Time:     at,
		Type:     "screening",
		Doctor:   "Dr. Sarah Johnson",
		Location: "Boston Medical Center",
	}
}

func TestScheduleAppointment(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	later, err := e.appointments.ScheduleAppointment(ctx, "patient@example.com", screening("2099-03-01", "14:00"))
	require.NoError(t, err)
	assert.Equal(t, "scheduled", later.Status)
	assert.Equal(t, "Diabetes Type 2 Management Study", later.TrialTitle)

	sooner, err := e.appointments.ScheduleAppointment(ctx, "patient@example.com", &dto.CreateAppointmentRequest{
		Date: "2099-01-15",
		Time: "09:30",
		Type: "consultation",
	})
	require.NoError(t, err)
	assert.Nil(t, sooner.TrialID)

	list, err := e.appointments.GetMyAppointments(ctx, "patient@example.com")
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, sooner.ID, list.Appointments[0].ID)
	assert.Equal(t, later.ID, list.Appointments[1].ID)

	other, err := e.appointments.GetMyAppointments(ctx, "jane.smith@example.com")
	require.NoError(t, err)
	assert.Zero(t, other.Total)
}

func TestScheduleAppointment_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	unknownTrial := "trial-999"

	tests := []struct {
		name    string
		req     *dto.CreateAppointmentRequest
		wantErr error
	}{
		{"past date", screening("2020-01-01", "10:00"), usecase.ErrAppointmentPast},
		{"bad date", screening("01/02/2099", "10:00"), usecase.ErrInvalidDateFormat},
		{"single digit hour", screening("2099-01-01", "9:30"), usecase.ErrInvalidTimeFormat},
		{"hour out of range", screening("2099-01-01", "25:00"), usecase.ErrInvalidTimeFormat},
		{"bad type", &dto.CreateAppointmentRequest{Date: "2099-01-01", Time: "10:00", Type: "surgery"}, usecase.ErrInvalidAppointmentType},
		{"unknown trial", &dto.CreateAppointmentRequest{TrialID: &unknownTrial, Date: "2099-01-01", Time: "10:00", Type: "screening"}, usecase.ErrTrialNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.appointments.ScheduleAppointment(ctx, "patient@example.com", tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := e.appointments.ScheduleAppointment(ctx, "ghost@example.com", screening("2099-01-01", "10:00"))
	assert.ErrorIs(t, err, usecase.ErrPatientNotFound)
}

func TestCancelAppointment(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	appt, err := e.appointments.ScheduleAppointment(ctx, "patient@example.com", screening("2099-03-01", "14:00"))
	require.NoError(t, err)

	err = e.appointments.CancelAppointment(ctx, "jane.smith@example.com", appt.ID)
	assert.ErrorIs(t, err, usecase.ErrAppointmentNotOwned)

	require.NoError(t, e.appointments.CancelAppointment(ctx, "patient@example.com", appt.ID))

	err = e.appointments.CancelAppointment(ctx, "patient@example.com", appt.ID)
	assert.ErrorIs(t, err, usecase.ErrAppointmentAlreadyCancelled)

	err = e.appointments.CancelAppointment(ctx, "patient@example.com", uuid.New())
	assert.ErrorIs(t, err, usecase.ErrAppointmentNotFound)

	list, err := e.appointments.GetMyAppointments(ctx, "patient@example.com")
	require.NoError(t, err)
	require.Len(t, list.Appointments, 1)
	assert.Equal(t, "cancelled", list.Appointments[0].Status)
}
