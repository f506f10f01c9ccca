package models

import (
	"fmt"
	"time"
)

// AlertType classifies reminder alerts tied to reservations
type AlertType string

const (
	AlertTypeReservationReminder AlertType = "reservation_reminder"
	AlertTypeCheckInReminder     AlertType = "check_in_reminder"
	AlertTypeCheckOutReminder    AlertType = "check_out_reminder"
	AlertTypePaymentReminder     AlertType = "payment_reminder"
	AlertTypeCancellationNotice  AlertType = "cancellation_notice"
)

// ValidAlertType reports whether t is one of the known alert types.
func ValidAlertType(t AlertType) bool {
	switch t {
	case AlertTypeReservationReminder, AlertTypeCheckInReminder,
		AlertTypeCheckOutReminder, AlertTypePaymentReminder,
		AlertTypeCancellationNotice:
		return true
	}
	return false
}

// ReminderLeadTime is how far ahead of a reservation's start date the
// automatic reminder alert is scheduled.
const ReminderLeadTime = 72 * time.Hour

// Alert is a scheduled reminder bound to a reservation. Alerts are
// created automatically at reservation time or manually by an
// administrator; afterwards only the sent flag ever changes.
type Alert struct {
	ID            string     `json:"id" db:"id"`
	ReservationID string     `json:"reservation_id" db:"reservation_id"`
	Type          AlertType  `json:"type" db:"type"`
	Title         string     `json:"title" db:"title"`
	Message       string     `json:"message" db:"message"`
	AlertDate     time.Time  `json:"alert_date" db:"alert_date"`
	IsSent        bool       `json:"is_sent" db:"is_sent"`
	SentAt        *time.Time `json:"sent_at,omitempty" db:"sent_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// NewReservationReminder builds the automatic reminder for a reservation,
// or nil when the reminder date has already passed.
func NewReservationReminder(r *Reservation, now time.Time) *Alert {
	alertDate := r.StartDate.Add(-ReminderLeadTime)
	if !alertDate.After(now) {
		return nil
	}
	return &Alert{
		ReservationID: r.ID,
		Type:          AlertTypeReservationReminder,
		Title:         fmt.Sprintf("Upcoming reservation %s", r.ReservationCode),
		Message:       fmt.Sprintf("Reservation %s for %s starts on %s.", r.ReservationCode, r.ClientName, r.StartDate.Format("2006-01-02")),
		AlertDate:     alertDate,
		IsSent:        false,
	}
}

// NewCancellationNotice builds the notice recorded when a reservation is
// cancelled. It is due immediately so it shows up in the active list.
func NewCancellationNotice(r *Reservation, now time.Time) *Alert {
	return &Alert{
		ReservationID: r.ID,
		Type:          AlertTypeCancellationNotice,
		Title:         fmt.Sprintf("Reservation %s cancelled", r.ReservationCode),
		Message:       fmt.Sprintf("Reservation %s for %s on %s was cancelled.", r.ReservationCode, r.ClientName, r.StartDate.Format("2006-01-02")),
		AlertDate:     now,
		IsSent:        false,
	}
}

// CreateAlertRequest represents the request to create a manual alert
type CreateAlertRequest struct {
	ReservationID string    `json:"reservation_id" binding:"required"`
	Type          AlertType `json:"type" binding:"required"`
	Title         string    `json:"title" binding:"required,max=200"`
	Message       string    `json:"message" binding:"required,max=1000"`
	AlertDate     time.Time `json:"alert_date" binding:"required"`
}

// Validate validates the create alert request.
func (r *CreateAlertRequest) Validate() error {
	if !ValidAlertType(r.Type) {
		return fmt.Errorf("unknown alert type: %s", r.Type)
	}
	return nil
}
