package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
)

// ReservationRepository handles database operations for the reservations table
type ReservationRepository struct {
	db DB
}

// NewReservationRepository creates a new ReservationRepository
func NewReservationRepository(db DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// ReservationFilter narrows GetAll results
type ReservationFilter struct {
	PlaceID     string
	Status      models.ReservationStatus
	ClientEmail string
	FromDate    *time.Time
	ToDate      *time.Time
}

const reservationColumns = `
	id, reservation_code, place_id, client_name, client_email, client_phone,
	start_date, end_date, start_time, end_time, party_size, total_amount,
	status, check_in_at, check_out_at, notes, alert_sent, created_at, updated_at`

// Create inserts a reservation, optionally inside tx. A unique violation
// on the reservation code is reported as ErrDuplicateCode so the caller
// can regenerate and retry instead of failing outright.
func (r *ReservationRepository) Create(q Queryer, reservation *models.Reservation) error {
	if q == nil {
		q = r.db
	}

	query := `
		INSERT INTO reservations (
			id, reservation_code, place_id, client_name, client_email,
			client_phone, start_date, end_date, start_time, end_time,
			party_size, total_amount, status, notes, alert_sent
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		RETURNING created_at, updated_at
	`

	if reservation.ID == "" {
		reservation.ID = uuid.New().String()
	}

	err := q.QueryRow(
		query,
		reservation.ID, reservation.ReservationCode, reservation.PlaceID,
		reservation.ClientName, reservation.ClientEmail, reservation.ClientPhone,
		reservation.StartDate, reservation.EndDate, reservation.StartTime,
		reservation.EndTime, reservation.PartySize, reservation.TotalAmount,
		reservation.Status, reservation.Notes, reservation.AlertSent,
	).Scan(&reservation.CreatedAt, &reservation.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("reservation code %q: %w", reservation.ReservationCode, models.ErrDuplicateCode)
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	return nil
}

// GetByID retrieves a reservation by ID
func (r *ReservationRepository) GetByID(reservationID string) (*models.Reservation, error) {
	query := `SELECT` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation := &models.Reservation{}
	if err := r.db.Get(reservation, query, reservationID); err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	return reservation, nil
}

// GetByCode retrieves a reservation by its unique code
func (r *ReservationRepository) GetByCode(code string) (*models.Reservation, error) {
	query := `SELECT` + reservationColumns + ` FROM reservations WHERE reservation_code = $1`

	reservation := &models.Reservation{}
	if err := r.db.Get(reservation, query, code); err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation by code: %w", err)
	}

	return reservation, nil
}

// GetAll retrieves reservations matching the filter, newest first
func (r *ReservationRepository) GetAll(filter ReservationFilter) ([]models.Reservation, error) {
	query := `
		SELECT` + reservationColumns + `
		FROM reservations
		WHERE ($1 = '' OR place_id::text = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR client_email = $3)
		  AND ($4::date IS NULL OR start_date >= $4)
		  AND ($5::date IS NULL OR start_date <= $5)
		ORDER BY created_at DESC
	`

	reservations := []models.Reservation{}
	err := r.db.Select(
		&reservations, query,
		filter.PlaceID, string(filter.Status), filter.ClientEmail,
		filter.FromDate, filter.ToDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	return reservations, nil
}

// SumPartySize returns the total party size of reservations for the place
// whose status is in the given set and whose stay covers onDate.
// Reservations without an end date occupy their start date only.
func (r *ReservationRepository) SumPartySize(q Queryer, placeID string, onDate time.Time, statuses []models.ReservationStatus) (int, error) {
	if q == nil {
		q = r.db
	}

	query := `
		SELECT COALESCE(SUM(party_size), 0)
		FROM reservations
		WHERE place_id = $1
		  AND status = ANY($2)
		  AND start_date <= $3
		  AND COALESCE(end_date, start_date) >= $3
	`

	var total int
	err := q.QueryRow(query, placeID, pq.Array(statusStrings(statuses)), onDate).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum party sizes: %w", err)
	}

	return total, nil
}

// transition performs a compare-and-swap status update. Zero rows affected
// means the reservation was not in the expected source state (or does not
// exist), so the caller's guard has failed.
func (r *ReservationRepository) transition(query string, args ...interface{}) error {
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrInvalidTransition
	}

	return nil
}

// Confirm moves a pending reservation to confirmed
func (r *ReservationRepository) Confirm(reservationID string) error {
	return r.transition(`
		UPDATE reservations
		SET status = 'confirmed', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, reservationID)
}

// CheckIn moves a confirmed reservation to checked_in inside tx, stamping
// the check-in time. Runs within the admission transaction so the re-check
// and the status flip are atomic.
func (r *ReservationRepository) CheckIn(q Queryer, reservationID string) error {
	if q == nil {
		q = r.db
	}

	result, err := q.Exec(`
		UPDATE reservations
		SET status = 'checked_in', check_in_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'confirmed'
	`, reservationID)
	if err != nil {
		return fmt.Errorf("failed to check in reservation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrInvalidTransition
	}

	return nil
}

// CheckOut moves a checked-in reservation to checked_out, stamping the
// check-out time. A second call finds no checked_in row and fails without
// touching the original check_out_at.
func (r *ReservationRepository) CheckOut(reservationID string) error {
	return r.transition(`
		UPDATE reservations
		SET status = 'checked_out', check_out_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'checked_in'
	`, reservationID)
}

// Complete moves a checked-out reservation to completed
func (r *ReservationRepository) Complete(reservationID string) error {
	return r.transition(`
		UPDATE reservations
		SET status = 'completed', updated_at = NOW()
		WHERE id = $1 AND status = 'checked_out'
	`, reservationID)
}

// Cancel moves a pending or confirmed reservation to cancelled and stores
// the updated notes (with the cancellation reason appended by the caller).
func (r *ReservationRepository) Cancel(reservationID string, notes *string) error {
	return r.transition(`
		UPDATE reservations
		SET status = 'cancelled', notes = $2, updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'confirmed')
	`, reservationID, notes)
}

// ListForReminder returns reservations starting on the given date whose
// reminder has not been dispatched yet.
func (r *ReservationRepository) ListForReminder(startDate time.Time) ([]models.Reservation, error) {
	query := `
		SELECT` + reservationColumns + `
		FROM reservations
		WHERE start_date = $1
		  AND alert_sent = false
		  AND status IN ('pending', 'confirmed')
		ORDER BY created_at
	`

	reservations := []models.Reservation{}
	if err := r.db.Select(&reservations, query, startDate); err != nil {
		return nil, fmt.Errorf("failed to list reservations for reminder: %w", err)
	}

	return reservations, nil
}

// MarkAlertSent flags the reservation's reminder as dispatched
func (r *ReservationRepository) MarkAlertSent(reservationID string) error {
	result, err := r.db.Exec(`
		UPDATE reservations
		SET alert_sent = true, updated_at = NOW()
		WHERE id = $1
	`, reservationID)
	if err != nil {
		return fmt.Errorf("failed to mark alert sent: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrReservationNotFound
	}

	return nil
}

// CompleteCheckedOutBefore completes all reservations that checked out
// before the cutoff. Returns the number of reservations completed.
func (r *ReservationRepository) CompleteCheckedOutBefore(cutoff time.Time) (int, error) {
	result, err := r.db.Exec(`
		UPDATE reservations
		SET status = 'completed', updated_at = NOW()
		WHERE status = 'checked_out'
		  AND check_out_at < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to complete checked-out reservations: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(rows), nil
}

// CodeExists reports whether a reservation code is already taken
func (r *ReservationRepository) CodeExists(code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM reservations WHERE reservation_code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check reservation code: %w", err)
	}
	return exists, nil
}

// Beginx starts a new transaction for multi-statement flows
func (r *ReservationRepository) Beginx() (Tx, error) {
	return r.db.Beginx()
}

// Tx is the transaction surface the services need
type Tx interface {
	Queryer
	Commit() error
	Rollback() error
}
