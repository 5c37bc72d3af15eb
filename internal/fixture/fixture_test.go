package fixture_test

import (
	"context"
	"testing"

	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/fixture"
	"trial-bridge/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeed_LoadsDemoDataset(t *testing.T) {
	db := testutil.NewSeededDB(t)

	counts := map[any]int64{
		&entity.User{}:                13,
		&entity.Trial{}:               7,
		&entity.TrialApplication{}:    12,
		&entity.PatientProfile{}:      8,
		&entity.EducationalResource{}: 11,
		&entity.PatientFeedback{}:     6,
		&entity.Message{}:             20,
		&entity.ForumPost{}:           4,
		&entity.ForumComment{}:        11,
		&entity.Reward{}:              8,
		&entity.Achievement{}:         8,
		&entity.PatientAchievement{}:  5,
	}
	for model, want := range counts {
		var got int64
		require.NoError(t, db.Model(model).Count(&got).Error)
		assert.Equal(t, want, got, "%T", model)
	}

	var enrolled []entity.TrialEnrollment
	require.NoError(t, db.Where("trial_id = ?", "trial-007").Order("patient_email").Find(&enrolled).Error)
	require.Len(t, enrolled, 2)
	assert.Equal(t, "jane.smith@example.com", enrolled[0].PatientEmail)
	assert.Equal(t, "susan.williams@example.com", enrolled[1].PatientEmail)

	var msg entity.Message
	require.NoError(t, db.First(&msg, "id = ?", "msg-014").Error)
	require.Len(t, msg.Attachments, 2)
	assert.Equal(t, 540, msg.Attachments[1].Size)

	var profile entity.PatientProfile
	require.NoError(t, db.First(&profile, "email = ?", "patient@example.com").Error)
	assert.Equal(t, []string{"Penicillin"}, profile.MedicalHistory.Data().Allergies)
	require.NotNil(t, profile.InsuranceInfo.Data())
	assert.Equal(t, "BCBS12345678", profile.InsuranceInfo.Data().PolicyNumber)

	var empty entity.PatientProfile
	require.NoError(t, db.First(&empty, "email = ?", "emily.davis@example.com").Error)
	assert.Empty(t, empty.MedicalHistory.Data().Conditions)
	assert.Nil(t, empty.EmergencyContact.Data())
}

func TestSeed_HashesPasswords(t *testing.T) {
	db := testutil.NewSeededDB(t)

	var user entity.User
	require.NoError(t, db.First(&user, "username = ?", "dr.johnson").Error)
	assert.Equal(t, entity.RoleIDTrialTeam, user.RoleID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("drj123")))
}

func TestSeed_IsIdempotent(t *testing.T) {
	db := testutil.NewSeededDB(t)

	require.NoError(t, fixture.Seed(context.Background(), db, bcrypt.MinCost))

	var trials int64
	require.NoError(t, db.Model(&entity.Trial{}).Count(&trials).Error)
	assert.Equal(t, int64(7), trials)
}

func TestMigrate_CreatesRoles(t *testing.T) {
	db := testutil.NewDB(t)

	// running twice must not fail on the existing roles
	require.NoError(t, fixture.Migrate(context.Background(), db))

	var roles []entity.Role
	require.NoError(t, db.Order("id").Find(&roles).Error)
	require.Len(t, roles, 2)
	assert.Equal(t, entity.RoleTrialTeam, roles[0].RoleName)
	assert.Equal(t, entity.RolePatient, roles[1].RoleName)
}
