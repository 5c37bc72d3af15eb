package repository_test

import (
	"context"
	"testing"

	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/repository"
	"trial-bridge/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrialRepository_EnrollIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSeededDB(t)
	repo := repository.NewTrialRepository()

	for range 2 {
		require.NoError(t, repo.Enroll(ctx, db, "trial-001", "jane.smith@example.com"))
	}

	emails, err := repo.FindEnrolledEmails(ctx, db, "trial-001")
	require.NoError(t, err)
	assert.Equal(t, []string{"jane.smith@example.com"}, emails)

	trial, err := repo.FindByID(ctx, db, "trial-404")
	require.NoError(t, err)
	assert.Nil(t, trial)
}

func TestApplicationRepository_UniquePatientTrial(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSeededDB(t)
	repo := repository.NewApplicationRepository()

	app := &entity.TrialApplication{
		ID:             entity.NewID("app"),
		PatientEmail:   "jane.smith@example.com",
		TrialID:        "trial-006",
		Status:         entity.ApplicationStatusPending,
		SubmissionDate: "2024-01-01",
	}
	require.NoError(t, repo.Create(ctx, db, app))

	dup := *app
	dup.ID = entity.NewID("app")
	err := repo.Create(ctx, db, &dup)
	require.Error(t, err)
	assert.True(t, repository.IsDuplicateKeyError(err, "patient_email"))
}

func TestFeedbackRepository_UpsertKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSeededDB(t)
	repo := repository.NewFeedbackRepository()

	first := &entity.PatientFeedback{
		ID:            "feedback-a",
		ResourceID:    "edu-007",
		PatientEmail:  "patient@example.com",
		Rating:        2,
		DateSubmitted: "2024-01-01",
	}
	require.NoError(t, repo.Upsert(ctx, db, first))

	second := *first
	second.ID = "feedback-b"
	second.Rating = 5
	second.Comment = "Better on a second read"
	require.NoError(t, repo.Upsert(ctx, db, &second))

	all, err := repo.FindByResource(ctx, db, "edu-007")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "feedback-a", all[0].ID)
	assert.Equal(t, 5, all[0].Rating)
	assert.Equal(t, "Better on a second read", all[0].Comment)
}

func TestEducationalResourceRepository_IncrementViewCount(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSeededDB(t)
	repo := repository.NewEducationalResourceRepository()

	before, err := repo.FindByID(ctx, db, "edu-001")
	require.NoError(t, err)

	ok, err := repo.IncrementViewCount(ctx, db, "edu-001")
	require.NoError(t, err)
	assert.True(t, ok)

	after, err := repo.FindByID(ctx, db, "edu-001")
	require.NoError(t, err)
	assert.Equal(t, before.ViewCount+1, after.ViewCount)

	ok, err = repo.IncrementViewCount(ctx, db, "edu-404")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRewardRepository_AwardAchievementOnce(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSeededDB(t)
	repo := repository.NewRewardRepository()

	award := func() bool {
		inserted, err := repo.AwardAchievement(ctx, db, &entity.PatientAchievement{
			PatientEmail:  "jane.smith@example.com",
			AchievementID: "achievement-008",
			DateCompleted: "2024-01-01",
		})
		require.NoError(t, err)
		return inserted
	}
	assert.True(t, award())
	assert.False(t, award())

	earned, err := repo.TotalEarned(ctx, db, "patient@example.com")
	require.NoError(t, err)
	assert.Equal(t, 450, earned)
}

func TestAppointmentRepository_CancelOnlyOnce(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSeededDB(t)
	repo := repository.NewAppointmentRepository()

	appointment := &entity.Appointment{
		PatientEmail: "patient@example.com",
		Date:         "2099-01-01",
		Time:         "10:00",
		Type:         entity.AppointmentTypeConsultation,
		Status:       entity.AppointmentStatusScheduled,
	}
	require.NoError(t, repo.Create(ctx, db, appointment))
	require.NotEqual(t, uuid.Nil, appointment.ID)

	n, err := repo.Cancel(ctx, db, appointment.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repo.Cancel(ctx, db, appointment.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	missing, err := repo.FindByID(ctx, db, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
