package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidLength indicates phone number length is not 8 digits
	ErrInvalidLength = errors.New("phone number must be exactly 8 digits")

	// ErrInvalidPrefix indicates phone number doesn't start with a valid Costa Rican prefix
	ErrInvalidPrefix = errors.New("phone number must start with 2, 4, 6, 7 or 8")

	// ErrInvalidFormat indicates phone number contains invalid characters
	ErrInvalidFormat = errors.New("phone number can only contain digits")

	// ErrEmptyPhone indicates phone number is empty
	ErrEmptyPhone = errors.New("phone number cannot be empty")
)

// validPrefixes contains the leading digits assigned in the Costa Rican
// national numbering plan: 2 for landlines, 4 for VoIP, 6/7/8 for mobile.
var validPrefixes = []string{"2", "4", "6", "7", "8"}

// phoneRegex matches digits only
var phoneRegex = regexp.MustCompile(`^\d+$`)

// PhoneValidator handles phone number validation
type PhoneValidator struct{}

// NewPhoneValidator creates a new phone validator instance
func NewPhoneValidator() *PhoneValidator {
	return &PhoneValidator{}
}

// Validate validates a Costa Rican phone number.
// Accepts format: 88887777, 8888 7777, 8888-7777 or +506 8888 7777.
// Returns sanitized phone number (digits only) and error if invalid.
func (v *PhoneValidator) Validate(phone string) (string, error) {
	// Check if empty
	if phone == "" {
		return "", ErrEmptyPhone
	}

	// Sanitize input
	sanitized := v.Sanitize(phone)

	// Check if contains only digits
	if !phoneRegex.MatchString(sanitized) {
		return "", ErrInvalidFormat
	}

	// Check length
	if len(sanitized) != 8 {
		return "", ErrInvalidLength
	}

	// Check prefix
	if !v.IsValidPrefix(sanitized) {
		return "", ErrInvalidPrefix
	}

	return sanitized, nil
}

// Sanitize removes all non-digit characters from phone number
func (v *PhoneValidator) Sanitize(phone string) string {
	// Remove spaces, dashes, parentheses, and other common separators
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	phone = strings.ReplaceAll(phone, "(", "")
	phone = strings.ReplaceAll(phone, ")", "")
	phone = strings.ReplaceAll(phone, "+", "")
	phone = strings.ReplaceAll(phone, ".", "")

	// Remove country code if present (506)
	if strings.HasPrefix(phone, "506") && len(phone) == 11 {
		phone = phone[3:]
	}

	return phone
}

// IsValidPrefix checks if phone number has a valid Costa Rican prefix
func (v *PhoneValidator) IsValidPrefix(phone string) bool {
	if len(phone) < 1 {
		return false
	}

	prefix := phone[:1]
	for _, validPrefix := range validPrefixes {
		if prefix == validPrefix {
			return true
		}
	}

	return false
}

// Format formats a phone number in the standard display format: XXXX XXXX
func (v *PhoneValidator) Format(phone string) (string, error) {
	// Validate first
	sanitized, err := v.Validate(phone)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s %s", sanitized[0:4], sanitized[4:8]), nil
}

// IsMobile reports whether the number is in a mobile range (6, 7 or 8).
func (v *PhoneValidator) IsMobile(phone string) (bool, error) {
	sanitized, err := v.Validate(phone)
	if err != nil {
		return false, err
	}

	switch sanitized[:1] {
	case "6", "7", "8":
		return true, nil
	}
	return false, nil
}
