package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,numeric,len=10"`
	Password string `json:"password" validate:"required,min=8"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female other"`
	Rating   int    `json:"rating" validate:"gte=1,lte=5"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(sample{Email: "nope", Phone: "12ab", Password: "short", Gender: "M", Rating: 9, Date: "05/15/2023"})
	require.Error(t, err)

	msgs := v.FormatValidationErrors(err)
	assert.Equal(t, "email must be a valid email address", msgs["email"])
	assert.Equal(t, "phone must contain only digits", msgs["phone"])
	assert.Equal(t, "password must be at least 8 characters", msgs["password"])
	assert.Equal(t, "gender must be one of: male, female, other", msgs["gender"])
	assert.Equal(t, "rating must be less than or equal to 5", msgs["rating"])
	assert.Equal(t, "date must match the format 2006-01-02", msgs["date"])
}

func TestValidate_Passes(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(sample{Email: "a@x.com", Phone: "1112223333", Password: "12345678", Rating: 5}))
	assert.Empty(t, v.FormatValidationErrors(errors.New("not a validation error")))
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("patient@example.com"))
	assert.False(t, IsEmail(""))
	assert.False(t, IsEmail("not-an-email"))
	assert.False(t, IsEmail("John <john@example.com>"))
}
