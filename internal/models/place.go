package models

import (
	"errors"
	"fmt"
	"time"
)

// PlaceStatus represents the operational status of a place
type PlaceStatus string

const (
	PlaceStatusAvailable   PlaceStatus = "available"
	PlaceStatusOccupied    PlaceStatus = "occupied"
	PlaceStatusMaintenance PlaceStatus = "maintenance"
	PlaceStatusInactive    PlaceStatus = "inactive"
)

// ValidPlaceStatus reports whether s is one of the known place statuses.
func ValidPlaceStatus(s PlaceStatus) bool {
	switch s {
	case PlaceStatusAvailable, PlaceStatusOccupied, PlaceStatusMaintenance, PlaceStatusInactive:
		return true
	}
	return false
}

// Place represents a bookable tourism entity (hotel, tour, restaurant).
// Occupancy is never stored on the place; it is always derived from the
// reservations that are checked in on a given date.
type Place struct {
	ID          string      `json:"id" db:"id"`
	Code        string      `json:"code" db:"code"`
	Name        string      `json:"name" db:"name"`
	Description *string     `json:"description,omitempty" db:"description"`
	CategoryID  string      `json:"category_id" db:"category_id"`
	Price       float64     `json:"price" db:"price"`
	Capacity    *int        `json:"capacity,omitempty" db:"capacity"`
	Location    *string     `json:"location,omitempty" db:"location"`
	Status      PlaceStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// HasCapacityLimit reports whether the place enforces a guest ceiling.
func (p *Place) HasCapacityLimit() bool {
	return p.Capacity != nil && *p.Capacity > 0
}

// IsBookable reports whether new reservations may be admitted.
func (p *Place) IsBookable() bool {
	return p.Status == PlaceStatusAvailable
}

// Remaining describes the remaining capacity of a place on a date.
// When Unlimited is true the place has no guest ceiling and Seats is
// meaningless. Seats is the signed remainder; callers displaying it
// should use Display which floors at zero.
type Remaining struct {
	Unlimited bool `json:"unlimited"`
	Seats     int  `json:"seats"`
}

// Display returns the remaining seats floored at zero for presentation.
func (r Remaining) Display() int {
	if r.Seats < 0 {
		return 0
	}
	return r.Seats
}

// CreatePlaceRequest represents the request to create a place
type CreatePlaceRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Description *string `json:"description,omitempty"`
	CategoryID  string  `json:"category_id" binding:"required"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Capacity    *int    `json:"capacity,omitempty"`
	Location    *string `json:"location,omitempty"`
}

// Validate validates the create place request beyond binding tags.
func (r *CreatePlaceRequest) Validate() error {
	if r.Capacity != nil && *r.Capacity <= 0 {
		return errors.New("capacity must be positive when provided")
	}
	if r.Price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

// UpdatePlaceRequest represents the request to update a place
type UpdatePlaceRequest struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	CategoryID  *string      `json:"category_id,omitempty"`
	Price       *float64     `json:"price,omitempty"`
	Capacity    *int         `json:"capacity,omitempty"`
	Location    *string      `json:"location,omitempty"`
	Status      *PlaceStatus `json:"status,omitempty"`
}

// Validate validates the update place request.
func (r *UpdatePlaceRequest) Validate() error {
	if r.Status != nil && !ValidPlaceStatus(*r.Status) {
		return fmt.Errorf("unknown place status: %s", *r.Status)
	}
	if r.Capacity != nil && *r.Capacity <= 0 {
		return errors.New("capacity must be positive when provided")
	}
	if r.Price != nil && *r.Price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}
