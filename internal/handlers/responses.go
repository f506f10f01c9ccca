package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/maarriet/costa-rica-tourism-system/internal/models"
	"github.com/maarriet/costa-rica-tourism-system/internal/services"
)

// errDateFormat is the shared complaint for malformed date query params.
var errDateFormat = errors.New("dates must be in YYYY-MM-DD format")

// ErrorResponse is the uniform error body returned by every endpoint
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// errorStatus maps domain errors onto HTTP codes. Anything unmapped is a
// server fault and must not leak its message to the client.
func errorStatus(err error) (int, ErrorResponse, bool) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
			Code:    "NOT_FOUND",
		}, true
	case errors.Is(err, models.ErrCapacityExceeded):
		return http.StatusConflict, ErrorResponse{
			Error:   "capacity_exceeded",
			Message: "The place does not have room for this party on the requested date",
			Code:    "CAPACITY_EXCEEDED",
		}, true
	case errors.Is(err, models.ErrPlaceNotAvailable):
		return http.StatusConflict, ErrorResponse{
			Error:   "place_not_available",
			Message: "The place is not accepting reservations",
			Code:    "PLACE_NOT_AVAILABLE",
		}, true
	case errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict, ErrorResponse{
			Error:   "invalid_transition",
			Message: err.Error(),
			Code:    "INVALID_TRANSITION",
		}, true
	case errors.Is(err, models.ErrDuplicateCode), errors.Is(err, models.ErrCodeGenerationExhausted):
		return http.StatusConflict, ErrorResponse{
			Error:   "code_generation_failed",
			Message: "Could not generate a unique code, please retry",
			Code:    "CODE_GENERATION_FAILED",
		}, true
	case errors.Is(err, models.ErrCategoryInUse):
		return http.StatusConflict, ErrorResponse{
			Error:   "category_in_use",
			Message: "The category still has places attached",
			Code:    "CATEGORY_IN_USE",
		}, true
	case errors.Is(err, models.ErrPlaceInUse):
		return http.StatusConflict, ErrorResponse{
			Error:   "place_in_use",
			Message: "The place still has active reservations",
			Code:    "PLACE_IN_USE",
		}, true
	case errors.Is(err, models.ErrInvalidPhone):
		return http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    "VALIDATION_ERROR",
		}, true
	case errors.Is(err, models.ErrEmailTaken):
		return http.StatusConflict, ErrorResponse{
			Error:   "email_taken",
			Message: "An account with this email already exists",
			Code:    "EMAIL_TAKEN",
		}, true
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to access this resource",
			Code:    "INSUFFICIENT_PERMISSIONS",
		}, true
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_credentials",
			Message: err.Error(),
			Code:    "INVALID_CREDENTIALS",
		}, true
	}
	return 0, ErrorResponse{}, false
}

// respondError writes the mapped domain error, or a generic 500.
func respondError(c *gin.Context, err error) {
	if status, body, ok := errorStatus(err); ok {
		c.JSON(status, body)
		return
	}

	logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
		Code:    "INTERNAL_ERROR",
	})
}

// respondValidation writes a 400 for malformed or invalid request bodies.
func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
		Code:    "VALIDATION_ERROR",
	})
}

// unauthorizedContext writes the 401 used when the user context is missing.
func unauthorizedContext(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error:   "unauthorized",
		Message: "User context not found",
		Code:    "MISSING_USER_CONTEXT",
	})
}
