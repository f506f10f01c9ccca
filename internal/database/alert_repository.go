package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
)

// AlertRepository handles database operations for the alerts table
type AlertRepository struct {
	db DB
}

// NewAlertRepository creates a new AlertRepository
func NewAlertRepository(db DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Create inserts an alert, optionally inside tx (the automatic reminder is
// created in the same transaction as its reservation).
func (r *AlertRepository) Create(q Queryer, alert *models.Alert) error {
	if q == nil {
		q = r.db
	}

	query := `
		INSERT INTO alerts (id, reservation_id, type, title, message, alert_date, is_sent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}

	err := q.QueryRow(
		query,
		alert.ID, alert.ReservationID, alert.Type, alert.Title,
		alert.Message, alert.AlertDate, alert.IsSent,
	).Scan(&alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	return nil
}

// GetByID retrieves an alert by ID
func (r *AlertRepository) GetByID(alertID string) (*models.Alert, error) {
	query := `
		SELECT id, reservation_id, type, title, message, alert_date,
		       is_sent, sent_at, created_at
		FROM alerts
		WHERE id = $1
	`

	alert := &models.Alert{}
	if err := r.db.Get(alert, query, alertID); err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}

	return alert, nil
}

// GetActive retrieves unsent alerts whose alert date has passed
func (r *AlertRepository) GetActive(now time.Time) ([]models.Alert, error) {
	query := `
		SELECT id, reservation_id, type, title, message, alert_date,
		       is_sent, sent_at, created_at
		FROM alerts
		WHERE is_sent = false
		  AND alert_date <= $1
		ORDER BY created_at DESC
	`

	alerts := []models.Alert{}
	if err := r.db.Select(&alerts, query, now); err != nil {
		return nil, fmt.Errorf("failed to list active alerts: %w", err)
	}

	return alerts, nil
}

// GetByType retrieves unsent alerts of the given type
func (r *AlertRepository) GetByType(alertType models.AlertType) ([]models.Alert, error) {
	query := `
		SELECT id, reservation_id, type, title, message, alert_date,
		       is_sent, sent_at, created_at
		FROM alerts
		WHERE type = $1
		  AND is_sent = false
		ORDER BY created_at DESC
	`

	alerts := []models.Alert{}
	if err := r.db.Select(&alerts, query, alertType); err != nil {
		return nil, fmt.Errorf("failed to list alerts by type: %w", err)
	}

	return alerts, nil
}

// GetByReservation retrieves all alerts bound to a reservation
func (r *AlertRepository) GetByReservation(reservationID string) ([]models.Alert, error) {
	query := `
		SELECT id, reservation_id, type, title, message, alert_date,
		       is_sent, sent_at, created_at
		FROM alerts
		WHERE reservation_id = $1
		ORDER BY alert_date
	`

	alerts := []models.Alert{}
	if err := r.db.Select(&alerts, query, reservationID); err != nil {
		return nil, fmt.Errorf("failed to list alerts for reservation: %w", err)
	}

	return alerts, nil
}

// MarkReminderSent retires the auto-created reminder row once the email
// for its reservation went out. Zero rows is fine; imminent starts never
// got a reminder alert.
func (r *AlertRepository) MarkReminderSent(reservationID string) error {
	query := `
		UPDATE alerts
		SET is_sent = true, sent_at = NOW()
		WHERE reservation_id = $1
		  AND type = $2
		  AND is_sent = false
	`

	if _, err := r.db.Exec(query, reservationID, models.AlertTypeReservationReminder); err != nil {
		return fmt.Errorf("failed to mark reminder alert sent: %w", err)
	}

	return nil
}

// SetSent flips the sent flag. Marking sent stamps the sent time; marking
// unsent clears it.
func (r *AlertRepository) SetSent(alertID string, sent bool) error {
	query := `
		UPDATE alerts
		SET is_sent = $2,
		    sent_at = CASE WHEN $2 THEN NOW() ELSE NULL END
		WHERE id = $1
	`

	result, err := r.db.Exec(query, alertID, sent)
	if err != nil {
		return fmt.Errorf("failed to update alert sent flag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrAlertNotFound
	}

	return nil
}
