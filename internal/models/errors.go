package models

import (
	"errors"
	"fmt"
)

// Domain errors surfaced by services and repositories. Handlers map these
// to HTTP status codes; nothing below is retried automatically except the
// code generator's re-roll and the alert sweep's next-cycle retry.
// The entity-specific not-found errors all wrap ErrNotFound.
var (
	ErrNotFound                = errors.New("not found")
	ErrPlaceNotFound           = fmt.Errorf("place %w", ErrNotFound)
	ErrReservationNotFound     = fmt.Errorf("reservation %w", ErrNotFound)
	ErrCategoryNotFound        = fmt.Errorf("category %w", ErrNotFound)
	ErrAlertNotFound           = fmt.Errorf("alert %w", ErrNotFound)
	ErrUserNotFound            = fmt.Errorf("user %w", ErrNotFound)
	ErrPlaceNotAvailable       = errors.New("place is not available for booking")
	ErrCapacityExceeded        = errors.New("place capacity exceeded")
	ErrInvalidTransition       = errors.New("invalid reservation transition")
	ErrDuplicateCode           = errors.New("code already exists")
	ErrCodeGenerationExhausted = errors.New("could not generate a unique code")
	ErrUnauthorized            = errors.New("operation not permitted")
	ErrCategoryInUse           = errors.New("category has places assigned to it")
	ErrPlaceInUse              = errors.New("place has active reservations")
	ErrEmailTaken              = errors.New("email is already registered")
	ErrInvalidPhone            = errors.New("invalid phone number")
)
