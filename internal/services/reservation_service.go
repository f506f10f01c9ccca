package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/maarriet/costa-rica-tourism-system/internal/clock"
	"github.com/maarriet/costa-rica-tourism-system/internal/database"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
	"github.com/maarriet/costa-rica-tourism-system/pkg/validator"
)

// ReservationService owns the reservation lifecycle. All status changes
// go through this service so the transition rules live in one place.
type ReservationService struct {
	reservationRepo *database.ReservationRepository
	placeRepo       *database.PlaceRepository
	alertRepo       *database.AlertRepository
	capacitySvc     *CapacityService
	codeGen         *CodeGeneratorService
	phoneValidator  *validator.PhoneValidator
	clock           clock.Clock
}

// NewReservationService creates a new ReservationService
func NewReservationService(
	reservationRepo *database.ReservationRepository,
	placeRepo *database.PlaceRepository,
	alertRepo *database.AlertRepository,
	capacitySvc *CapacityService,
	codeGen *CodeGeneratorService,
	clk clock.Clock,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		placeRepo:       placeRepo,
		alertRepo:       alertRepo,
		capacitySvc:     capacitySvc,
		codeGen:         codeGen,
		phoneValidator:  validator.NewPhoneValidator(),
		clock:           clk,
	}
}

// Create admits a new reservation. The place row is locked for the whole
// check-then-insert sequence so two concurrent requests cannot both pass
// the capacity check against the same remaining seats.
func (s *ReservationService) Create(req *models.CreateReservationRequest) (*models.Reservation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.ClientPhone != nil && *req.ClientPhone != "" {
		normalized, err := s.phoneValidator.Validate(*req.ClientPhone)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", models.ErrInvalidPhone, *req.ClientPhone)
		}
		req.ClientPhone = &normalized
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		end, _ := time.Parse("2006-01-02", *req.EndDate)
		endDate = &end
	}

	tx, err := s.reservationRepo.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	place, err := s.placeRepo.GetForUpdate(tx, req.PlaceID)
	if err != nil {
		return nil, err
	}
	if !place.IsBookable() {
		return nil, models.ErrPlaceNotAvailable
	}

	// Every day of the stay must fit, not just the first one.
	for day := startDate; ; day = day.Add(24 * time.Hour) {
		if err := s.capacitySvc.CheckAdmission(tx, place, day, req.PartySize, models.AdmissionStatuses); err != nil {
			return nil, err
		}
		if endDate == nil || !day.Before(*endDate) {
			break
		}
	}

	status := models.ReservationStatusPending
	if req.Confirm {
		status = models.ReservationStatusConfirmed
	}

	reservation := &models.Reservation{
		PlaceID:     place.ID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		StartDate:   startDate,
		EndDate:     endDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		PartySize:   req.PartySize,
		TotalAmount: place.Price * float64(req.PartySize),
		Status:      status,
		Notes:       req.Notes,
	}

	// Regenerate on the rare collision. The unique index is the final
	// arbiter; CodeExists only keeps the happy path cheap.
	for attempt := 0; ; attempt++ {
		code, err := s.codeGen.GenerateUnique(ReservationCodePrefix, s.reservationRepo.CodeExists)
		if err != nil {
			return nil, err
		}
		reservation.ReservationCode = code

		err = s.reservationRepo.Create(tx, reservation)
		if err == nil {
			break
		}
		if errors.Is(err, models.ErrDuplicateCode) && attempt < maxCodeAttempts {
			continue
		}
		return nil, err
	}

	if reminder := models.NewReservationReminder(reservation, s.clock.Now()); reminder != nil {
		if err := s.alertRepo.Create(tx, reminder); err != nil {
			return nil, fmt.Errorf("failed to create reminder alert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reservation: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"reservation_code": reservation.ReservationCode,
		"place_id":         place.ID,
		"party_size":       reservation.PartySize,
	}).Info("Reservation created")

	return reservation, nil
}

// GetByID returns a reservation the user is allowed to see.
func (s *ReservationService) GetByID(user *models.User, reservationID string) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(reservationID)
	if err != nil {
		return nil, err
	}
	if !user.CanActOn(reservation) {
		return nil, models.ErrUnauthorized
	}
	return reservation, nil
}

// GetByCode returns a reservation by its business code.
func (s *ReservationService) GetByCode(user *models.User, code string) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if !user.CanActOn(reservation) {
		return nil, models.ErrUnauthorized
	}
	return reservation, nil
}

// List returns reservations matching the filter. Clients only ever see
// their own bookings regardless of the filter they send.
func (s *ReservationService) List(user *models.User, filter database.ReservationFilter) ([]models.Reservation, error) {
	if !user.IsAdministrator() {
		filter.ClientEmail = user.Email
	}
	return s.reservationRepo.GetAll(filter)
}

// Confirm moves a pending reservation to confirmed. Staff only.
func (s *ReservationService) Confirm(user *models.User, reservationID string) (*models.Reservation, error) {
	if !user.IsAdministrator() {
		return nil, models.ErrUnauthorized
	}

	reservation, err := s.reservationRepo.GetByID(reservationID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(reservation.Status, models.ReservationStatusConfirmed) {
		return nil, models.ErrInvalidTransition
	}

	// A place pulled from service between booking and confirmation
	// invalidates the pending claim.
	place, err := s.placeRepo.GetByID(reservation.PlaceID)
	if err != nil {
		return nil, err
	}
	if !place.IsBookable() {
		return nil, models.ErrPlaceNotAvailable
	}

	if err := s.reservationRepo.Confirm(reservationID); err != nil {
		return nil, err
	}
	return s.reservationRepo.GetByID(reservationID)
}

// CheckIn admits the party on site. Only valid on a day the reservation
// covers, and the place must still have room for the party at the door.
func (s *ReservationService) CheckIn(user *models.User, reservationID string) (*models.Reservation, error) {
	if !user.IsAdministrator() {
		return nil, models.ErrUnauthorized
	}

	reservation, err := s.reservationRepo.GetByID(reservationID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(reservation.Status, models.ReservationStatusCheckedIn) {
		return nil, models.ErrInvalidTransition
	}

	today := s.clock.Now()
	if !reservation.OccupiesDate(today) {
		return nil, fmt.Errorf("%w: reservation does not cover %s", models.ErrInvalidTransition, today.Format("2006-01-02"))
	}

	tx, err := s.reservationRepo.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	place, err := s.placeRepo.GetForUpdate(tx, reservation.PlaceID)
	if err != nil {
		return nil, err
	}

	// At the door only bodies on site count; the party's own confirmed
	// claim must not block its own admission.
	if err := s.capacitySvc.CheckAdmission(tx, place, today, reservation.PartySize, models.OccupancyStatuses); err != nil {
		return nil, err
	}

	if err := s.reservationRepo.CheckIn(tx, reservationID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit check-in: %w", err)
	}

	logrus.WithField("reservation_code", reservation.ReservationCode).Info("Party checked in")
	return s.reservationRepo.GetByID(reservationID)
}

// CheckOut records the party leaving the place. Staff only.
func (s *ReservationService) CheckOut(user *models.User, reservationID string) (*models.Reservation, error) {
	if !user.IsAdministrator() {
		return nil, models.ErrUnauthorized
	}

	if err := s.reservationRepo.CheckOut(reservationID); err != nil {
		return nil, err
	}
	return s.reservationRepo.GetByID(reservationID)
}

// Complete closes out a checked-out reservation. Staff only; the nightly
// sweep also completes stays left checked out for more than a day.
func (s *ReservationService) Complete(user *models.User, reservationID string) (*models.Reservation, error) {
	if !user.IsAdministrator() {
		return nil, models.ErrUnauthorized
	}

	if err := s.reservationRepo.Complete(reservationID); err != nil {
		return nil, err
	}
	return s.reservationRepo.GetByID(reservationID)
}

// Cancel cancels a reservation that has not yet checked in. Clients may
// cancel their own bookings; staff may cancel any.
func (s *ReservationService) Cancel(user *models.User, reservationID string, reason *string) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(reservationID)
	if err != nil {
		return nil, err
	}
	if !user.CanActOn(reservation) {
		return nil, models.ErrUnauthorized
	}
	if !reservation.CanBeCancelled() {
		return nil, models.ErrInvalidTransition
	}

	reservation.AppendCancellationNote(reason)
	if err := s.reservationRepo.Cancel(reservationID, reservation.Notes); err != nil {
		return nil, err
	}

	// The notice is bookkeeping; a failure here must not undo the cancel.
	notice := models.NewCancellationNotice(reservation, s.clock.Now())
	if err := s.alertRepo.Create(nil, notice); err != nil {
		logrus.WithError(err).WithField("reservation_code", reservation.ReservationCode).
			Error("Failed to record cancellation notice")
	}

	logrus.WithField("reservation_code", reservation.ReservationCode).Info("Reservation cancelled")
	return s.reservationRepo.GetByID(reservationID)
}

// staleCheckoutAge is how long a checked-out stay may linger before the
// nightly sweep completes it.
const staleCheckoutAge = 24 * time.Hour

// CompleteStaleCheckouts completes every reservation that checked out
// more than staleCheckoutAge ago. Returns the number completed.
func (s *ReservationService) CompleteStaleCheckouts() (int, error) {
	cutoff := s.clock.Now().Add(-staleCheckoutAge)
	return s.reservationRepo.CompleteCheckedOutBefore(cutoff)
}
