package usecase_test

import (
	"context"
	"testing"

	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/delivery/http/middleware"
	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPatient_CreatesAccountAndEmptyProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	user, err := e.auth.RegisterPatient(ctx, &dto.RegisterPatientRequest{
		Email:    "a@x.com",
		Phone:    "1112223333",
		Password: "12345678",
		FullName: "Alex Example",
	})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, entity.RolePatient, user.Role)

	profile, err := e.profiles.GetPatientProfile(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Alex Example", profile.Name)
	assert.Empty(t, profile.MedicalHistory.Conditions)

	assert.EqualValues(t, 1, auditCount(t, e.db, entity.AuditActionUserRegister))
	assert.Empty(t, e.mr.Keys(), "registration must not sign in")
}

func TestRegisterPatient_Duplicates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.auth.RegisterPatient(ctx, &dto.RegisterPatientRequest{
		Email: "patient@example.com", Phone: "5550001111", Password: "secret1", FullName: "Dup",
	})
	assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)

	_, err = e.auth.RegisterPatient(ctx, &dto.RegisterPatientRequest{
		Email: "new@example.com", Phone: "1234567890", Password: "secret1", FullName: "Dup",
	})
	assert.ErrorIs(t, err, usecase.ErrPhoneAlreadyExists)

	_, err = e.auth.RegisterTrialTeam(ctx, &dto.RegisterTrialTeamRequest{
		Username: "admin", Email: "other.admin@example.com", Password: "secret1", FullName: "Dup",
	})
	assert.ErrorIs(t, err, usecase.ErrUsernameAlreadyExists)

	assert.EqualValues(t, 0, auditCount(t, e.db, entity.AuditActionUserRegister))
}

func TestLoginPatient_Email(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tokens, err := e.auth.LoginPatient(ctx, &dto.LoginPatientRequest{Email: "patient@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NotNil(t, tokens.User)
	assert.Equal(t, "patient@example.com", tokens.User.Email)

	claims, err := e.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.True(t, e.mr.Exists(middleware.AccessTokenKey(claims.UserID, claims.TokenID)))

	claims, err = e.jwt.ValidateToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.True(t, e.mr.Exists(middleware.RefreshTokenKey(claims.UserID, claims.TokenID)))

	assert.EqualValues(t, 1, auditCount(t, e.db, entity.AuditActionUserLogin))
}

func TestLoginPatient_WrongPasswordIssuesNoSession(t *testing.T) {
	e := newEnv(t)

	tokens, err := e.auth.LoginPatient(context.Background(), &dto.LoginPatientRequest{
		Email:    "patient@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	assert.Nil(t, tokens)
	assert.Empty(t, e.mr.Keys())
	assert.EqualValues(t, 0, auditCount(t, e.db, entity.AuditActionUserLogin))
}

func TestLoginPatient_Phone(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tokens, err := e.auth.LoginPatient(ctx, &dto.LoginPatientRequest{Phone: "1234567890", VerificationCode: testVerificationCode})
	require.NoError(t, err)
	assert.Equal(t, "patient@example.com", tokens.User.Email)

	claims, err := e.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "1234567890", claims.Phone)
	assert.Equal(t, "patient@example.com", claims.Email)

	refreshed, err := e.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	claims, err = e.jwt.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "1234567890", claims.Phone, "rotation keeps the phone claim")

	_, err = e.auth.LoginPatient(ctx, &dto.LoginPatientRequest{Phone: "1234567890", VerificationCode: "000000"})
	assert.ErrorIs(t, err, usecase.ErrInvalidVerificationCode)

	_, err = e.auth.LoginPatient(ctx, &dto.LoginPatientRequest{Phone: "0000000000", VerificationCode: testVerificationCode})
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
}

func TestLogin_RolesDoNotCross(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tokens, err := e.auth.LoginTrialTeam(ctx, &dto.LoginTrialTeamRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleTrialTeam, tokens.User.Role)

	_, err = e.auth.LoginPatient(ctx, &dto.LoginPatientRequest{Email: "admin@example.com", Password: "admin123"})
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	_, err = e.auth.LoginTrialTeam(ctx, &dto.LoginTrialTeamRequest{Username: "admin", Password: "nope"})
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
}

func TestRefreshToken_RotatesAndRejectsReuse(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tokens, err := e.auth.LoginTrialTeam(ctx, &dto.LoginTrialTeamRequest{Username: "dr.johnson", Password: "drj123"})
	require.NoError(t, err)

	rotated, err := e.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	_, err = e.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, usecase.ErrTokenRevoked)

	_, err = e.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: rotated.AccessToken})
	assert.ErrorIs(t, err, usecase.ErrInvalidToken)
}

func TestLogout_RevokesBothTokens(t *testing.T) {
	e := newEnv(t)

	tokens, err := e.auth.LoginPatient(context.Background(), &dto.LoginPatientRequest{Email: "patient@example.com", Password: "password123"})
	require.NoError(t, err)

	access, err := e.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	ctx := middleware.ContextWithIdentity(context.Background(), access.Identity(), access.TokenID)

	require.NoError(t, e.auth.Logout(ctx, tokens.RefreshToken))
	assert.Empty(t, e.mr.Keys())
	assert.EqualValues(t, 1, auditCount(t, e.db, entity.AuditActionUserLogout))

	assert.ErrorIs(t, e.auth.Logout(context.Background(), ""), usecase.ErrUnauthenticated)
}

func TestGetCurrentUser(t *testing.T) {
	e := newEnv(t)

	user, err := e.auth.GetCurrentUser(e.sessionFor(t, "sarah.johnson@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "dr.johnson", user.Username)
	assert.Equal(t, "dr.johnson", user.ParticipantID)

	_, err = e.auth.GetCurrentUser(context.Background())
	assert.ErrorIs(t, err, usecase.ErrUnauthenticated)
}
