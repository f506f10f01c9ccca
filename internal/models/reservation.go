package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "pending"
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusCheckedIn  ReservationStatus = "checked_in"
	ReservationStatusCheckedOut ReservationStatus = "checked_out"
	ReservationStatusCompleted  ReservationStatus = "completed"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
)

// OccupancyStatuses are the states whose party sizes count toward a
// place's present occupancy. Confirmed reservations represent future
// intent, not bodies on site, so only checked-in guests are counted.
var OccupancyStatuses = []ReservationStatus{ReservationStatusCheckedIn}

// AdmissionStatuses are the states counted when deciding whether a new
// reservation fits: both guests already on site and guests who hold a
// confirmed claim on the same date.
var AdmissionStatuses = []ReservationStatus{ReservationStatusConfirmed, ReservationStatusCheckedIn}

// ActiveStatuses are the states that block deletion of the referenced place.
var ActiveStatuses = []ReservationStatus{
	ReservationStatusPending,
	ReservationStatusConfirmed,
	ReservationStatusCheckedIn,
}

// reservationTransitions is the single source of truth for legal status
// moves. Status is never written outside the lifecycle service.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:    {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed:  {ReservationStatusCheckedIn, ReservationStatusCancelled},
	ReservationStatusCheckedIn:  {ReservationStatusCheckedOut},
	ReservationStatusCheckedOut: {ReservationStatusCompleted},
	ReservationStatusCompleted:  {},
	ReservationStatusCancelled:  {},
}

// CanTransition reports whether moving from into to is a legal lifecycle step.
func CanTransition(from, to ReservationStatus) bool {
	for _, next := range reservationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Reservation represents a booking of a place by a client
type Reservation struct {
	ID              string            `json:"id" db:"id"`
	ReservationCode string            `json:"reservation_code" db:"reservation_code"`
	PlaceID         string            `json:"place_id" db:"place_id"`
	ClientName      string            `json:"client_name" db:"client_name"`
	ClientEmail     string            `json:"client_email" db:"client_email"`
	ClientPhone     *string           `json:"client_phone,omitempty" db:"client_phone"`
	StartDate       time.Time         `json:"start_date" db:"start_date"`
	EndDate         *time.Time        `json:"end_date,omitempty" db:"end_date"`
	StartTime       *string           `json:"start_time,omitempty" db:"start_time"`
	EndTime         *string           `json:"end_time,omitempty" db:"end_time"`
	PartySize       int               `json:"party_size" db:"party_size"`
	TotalAmount     float64           `json:"total_amount" db:"total_amount"`
	Status          ReservationStatus `json:"status" db:"status"`
	CheckInAt       *time.Time        `json:"check_in_at,omitempty" db:"check_in_at"`
	CheckOutAt      *time.Time        `json:"check_out_at,omitempty" db:"check_out_at"`
	Notes           *string           `json:"notes,omitempty" db:"notes"`
	AlertSent       bool              `json:"alert_sent" db:"alert_sent"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}

// CreateReservationRequest represents the request to create a reservation
type CreateReservationRequest struct {
	PlaceID     string     `json:"place_id" binding:"required"`
	ClientName  string     `json:"client_name" binding:"required,max=200"`
	ClientEmail string     `json:"client_email" binding:"required,email,max=200"`
	ClientPhone *string    `json:"client_phone,omitempty"`
	StartDate   string     `json:"start_date" binding:"required"` // "2006-01-02"
	EndDate     *string    `json:"end_date,omitempty"`
	StartTime   *string    `json:"start_time,omitempty"` // "15:04"
	EndTime     *string    `json:"end_time,omitempty"`
	PartySize   int        `json:"party_size" binding:"required,min=1"`
	Notes       *string    `json:"notes,omitempty"`

	// Confirm starts the reservation in the confirmed state. Only honored
	// for administrators (the front-desk direct-booking flow).
	Confirm bool `json:"confirm,omitempty"`
}

// CancelReservationRequest represents the request to cancel a reservation
type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// MaxPartySize caps a single reservation. Matches the largest tour group
// the operators accept.
const MaxPartySize = 50

// Validate validates the create reservation request beyond binding tags.
func (r *CreateReservationRequest) Validate() error {
	if r.PartySize <= 0 {
		return errors.New("party_size must be at least 1")
	}
	if r.PartySize > MaxPartySize {
		return fmt.Errorf("party_size cannot exceed %d", MaxPartySize)
	}

	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return errors.New("start_date must be in YYYY-MM-DD format")
	}

	if r.EndDate != nil && *r.EndDate != "" {
		end, err := time.Parse("2006-01-02", *r.EndDate)
		if err != nil {
			return errors.New("end_date must be in YYYY-MM-DD format")
		}
		if end.Before(start) {
			return errors.New("end_date cannot be before start_date")
		}
	}

	for _, tv := range []*string{r.StartTime, r.EndTime} {
		if tv != nil && *tv != "" {
			if _, err := time.Parse("15:04", *tv); err != nil {
				return errors.New("times must be in HH:MM format")
			}
		}
	}

	return nil
}

// OccupiesDate reports whether the reservation's stay covers the given
// calendar date. Reservations without an end date occupy their start date
// only.
func (r *Reservation) OccupiesDate(date time.Time) bool {
	day := date.Truncate(24 * time.Hour)
	start := r.StartDate.Truncate(24 * time.Hour)
	end := start
	if r.EndDate != nil {
		end = r.EndDate.Truncate(24 * time.Hour)
	}
	return !day.Before(start) && !day.After(end)
}

// CanBeCancelled reports whether the reservation may still be cancelled.
// Once a guest has checked in the booking can never be cancelled.
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusConfirmed
}

// AppendCancellationNote records the cancellation reason in the notes field.
func (r *Reservation) AppendCancellationNote(reason *string) {
	text := "Cancelled"
	if reason != nil && strings.TrimSpace(*reason) != "" {
		text = "Cancelled: " + strings.TrimSpace(*reason)
	}
	if r.Notes != nil && *r.Notes != "" {
		combined := *r.Notes + "\n" + text
		r.Notes = &combined
	} else {
		r.Notes = &text
	}
}

// IsActive reports whether the reservation still blocks deletion of its place.
func (r *Reservation) IsActive() bool {
	for _, s := range ActiveStatuses {
		if r.Status == s {
			return true
		}
	}
	return false
}
