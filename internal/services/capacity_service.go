package services

import (
	"fmt"
	"time"

	"github.com/maarriet/costa-rica-tourism-system/internal/database"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
)

// CapacityService derives place occupancy from reservation state.
// Occupancy counts checked-in guests only; admission checks also count
// confirmed parties so an over-booked day is rejected up front.
type CapacityService struct {
	placeRepo       *database.PlaceRepository
	reservationRepo *database.ReservationRepository
}

// NewCapacityService creates a new CapacityService
func NewCapacityService(placeRepo *database.PlaceRepository, reservationRepo *database.ReservationRepository) *CapacityService {
	return &CapacityService{
		placeRepo:       placeRepo,
		reservationRepo: reservationRepo,
	}
}

// PlaceAvailability is the derived occupancy snapshot for a place on a date.
type PlaceAvailability struct {
	PlaceID          string           `json:"place_id"`
	Date             time.Time        `json:"date"`
	Capacity         *int             `json:"capacity,omitempty"`
	CurrentOccupancy int              `json:"current_occupancy"`
	CommittedGuests  int              `json:"committed_guests"`
	Remaining        models.Remaining `json:"remaining"`
	RemainingSeats   int              `json:"remaining_seats"`
	Available        bool             `json:"available"`
}

// CanAdmit reports whether a party of the given size would pass the
// admission check against this snapshot.
func (a *PlaceAvailability) CanAdmit(partySize int) bool {
	if !a.Available {
		return false
	}
	return a.Remaining.Unlimited || a.Remaining.Seats >= partySize
}

// CurrentOccupancy returns the number of guests currently checked in at a place.
func (s *CapacityService) CurrentOccupancy(placeID string, onDate time.Time) (int, error) {
	return s.reservationRepo.SumPartySize(nil, placeID, onDate, models.OccupancyStatuses)
}

// GetAvailability computes the occupancy snapshot for a place on a given date.
func (s *CapacityService) GetAvailability(placeID string, onDate time.Time) (*PlaceAvailability, error) {
	place, err := s.placeRepo.GetByID(placeID)
	if err != nil {
		return nil, err
	}

	occupancy, err := s.reservationRepo.SumPartySize(nil, placeID, onDate, models.OccupancyStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to compute occupancy: %w", err)
	}

	committed, err := s.reservationRepo.SumPartySize(nil, placeID, onDate, models.AdmissionStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to compute committed guests: %w", err)
	}

	availability := &PlaceAvailability{
		PlaceID:          place.ID,
		Date:             onDate,
		Capacity:         place.Capacity,
		CurrentOccupancy: occupancy,
		CommittedGuests:  committed,
		Remaining:        models.Remaining{Unlimited: true},
		Available:        place.IsBookable(),
	}

	if place.HasCapacityLimit() {
		availability.Remaining = models.Remaining{Seats: *place.Capacity - committed}
		availability.Available = availability.Available && availability.Remaining.Seats > 0
	}
	availability.RemainingSeats = availability.Remaining.Display()

	return availability, nil
}

// CheckAdmission verifies that a party of the given size fits within the
// place capacity on the requested date. Callers that already hold a row
// lock pass their transaction as q; otherwise q may be nil.
func (s *CapacityService) CheckAdmission(q database.Queryer, place *models.Place, onDate time.Time, partySize int, statuses []models.ReservationStatus) error {
	if !place.HasCapacityLimit() {
		return nil
	}

	committed, err := s.reservationRepo.SumPartySize(q, place.ID, onDate, statuses)
	if err != nil {
		return fmt.Errorf("failed to compute committed guests: %w", err)
	}

	if committed+partySize > *place.Capacity {
		return models.ErrCapacityExceeded
	}
	return nil
}
