package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maarriet/costa-rica-tourism-system/internal/models"
	"github.com/maarriet/costa-rica-tourism-system/internal/services"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"PlaceNotFound", models.ErrPlaceNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"ReservationNotFound", models.ErrReservationNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"CapacityExceeded", models.ErrCapacityExceeded, http.StatusConflict, "CAPACITY_EXCEEDED"},
		{"PlaceNotAvailable", models.ErrPlaceNotAvailable, http.StatusConflict, "PLACE_NOT_AVAILABLE"},
		{"InvalidTransition", models.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{"WrappedInvalidTransition", fmt.Errorf("context: %w", models.ErrInvalidTransition), http.StatusConflict, "INVALID_TRANSITION"},
		{"CodeExhausted", models.ErrCodeGenerationExhausted, http.StatusConflict, "CODE_GENERATION_FAILED"},
		{"CategoryInUse", models.ErrCategoryInUse, http.StatusConflict, "CATEGORY_IN_USE"},
		{"PlaceInUse", models.ErrPlaceInUse, http.StatusConflict, "PLACE_IN_USE"},
		{"EmailTaken", models.ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
		{"InvalidPhone", fmt.Errorf("%w: 12345", models.ErrInvalidPhone), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"Unauthorized", models.ErrUnauthorized, http.StatusForbidden, "INSUFFICIENT_PERMISSIONS"},
		{"InvalidCredentials", services.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body, ok := errorStatus(tt.err)
			assert.True(t, ok)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
		})
	}

	t.Run("UnknownErrorUnmapped", func(t *testing.T) {
		_, _, ok := errorStatus(assert.AnError)
		assert.False(t, ok)
	})
}
