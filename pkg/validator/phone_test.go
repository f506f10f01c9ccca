package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhoneValidator(t *testing.T) {
	validator := NewPhoneValidator()
	assert.NotNil(t, validator)
}

func TestValidate_ValidNumbers(t *testing.T) {
	validator := NewPhoneValidator()

	validNumbers := []struct {
		input    string
		expected string
		name     string
	}{
		{"88887777", "88887777", "Standard format"},
		{"8888 7777", "88887777", "With spaces"},
		{"8888-7777", "88887777", "With dashes"},
		{"8888.7777", "88887777", "With dots"},
		{"(8888) 7777", "88887777", "With parentheses"},
		{"22223333", "22223333", "Landline"},
		{"40001111", "40001111", "VoIP range"},
		{"61234567", "61234567", "Mobile 6"},
		{"71234567", "71234567", "Mobile 7"},
		{"+506 8888 7777", "88887777", "With country code"},
		{"50688887777", "88887777", "Country code without plus"},
	}

	for _, tc := range validNumbers {
		t.Run(tc.name, func(t *testing.T) {
			sanitized, err := validator.Validate(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, sanitized)
		})
	}
}

func TestValidate_InvalidNumbers(t *testing.T) {
	validator := NewPhoneValidator()

	invalidNumbers := []struct {
		input       string
		expectedErr error
		name        string
	}{
		{"", ErrEmptyPhone, "Empty string"},
		{"123", ErrInvalidLength, "Too short"},
		{"888877776", ErrInvalidLength, "Too long"},
		{"18887777", ErrInvalidPrefix, "Invalid prefix 1"},
		{"38887777", ErrInvalidPrefix, "Invalid prefix 3"},
		{"98887777", ErrInvalidPrefix, "Invalid prefix 9"},
		{"8888777a", ErrInvalidFormat, "Contains letters"},
		{"8888-777a", ErrInvalidFormat, "Contains letters with dashes"},
		{"8888 777!", ErrInvalidFormat, "Contains special characters"},
	}

	for _, tc := range invalidNumbers {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validator.Validate(tc.input)
			assert.Error(t, err)
			assert.Equal(t, tc.expectedErr, err)
		})
	}
}

func TestSanitize(t *testing.T) {
	validator := NewPhoneValidator()

	tests := []struct {
		input    string
		expected string
	}{
		{"8888 7777", "88887777"},
		{"8888-7777", "88887777"},
		{"+50688887777", "88887777"},
		{"(8888)7777", "88887777"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, validator.Sanitize(tc.input))
	}
}

func TestFormat(t *testing.T) {
	validator := NewPhoneValidator()

	formatted, err := validator.Format("88887777")
	require.NoError(t, err)
	assert.Equal(t, "8888 7777", formatted)

	_, err = validator.Format("123")
	assert.Error(t, err)
}

func TestIsMobile(t *testing.T) {
	validator := NewPhoneValidator()

	mobile, err := validator.IsMobile("88887777")
	require.NoError(t, err)
	assert.True(t, mobile)

	mobile, err = validator.IsMobile("22223333")
	require.NoError(t, err)
	assert.False(t, mobile)
}
