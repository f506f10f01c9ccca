package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/maarriet/costa-rica-tourism-system/internal/clock"
	"github.com/maarriet/costa-rica-tourism-system/internal/database"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
	"github.com/maarriet/costa-rica-tourism-system/pkg/mailer"
)

// AlertService manages reservation alerts and the reminder email sweep.
type AlertService struct {
	alertRepo       *database.AlertRepository
	reservationRepo *database.ReservationRepository
	placeRepo       *database.PlaceRepository
	mailer          mailer.Mailer
	clock           clock.Clock
}

// NewAlertService creates a new AlertService
func NewAlertService(
	alertRepo *database.AlertRepository,
	reservationRepo *database.ReservationRepository,
	placeRepo *database.PlaceRepository,
	m mailer.Mailer,
	clk clock.Clock,
) *AlertService {
	return &AlertService{
		alertRepo:       alertRepo,
		reservationRepo: reservationRepo,
		placeRepo:       placeRepo,
		mailer:          m,
		clock:           clk,
	}
}

// Create records a manual alert against an existing reservation.
func (s *AlertService) Create(req *models.CreateAlertRequest) (*models.Alert, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The foreign key would catch this too, but a clean not-found error
	// beats a constraint violation surfaced to the client.
	if _, err := s.reservationRepo.GetByID(req.ReservationID); err != nil {
		return nil, err
	}

	alert := &models.Alert{
		ReservationID: req.ReservationID,
		Type:          req.Type,
		Title:         req.Title,
		Message:       req.Message,
		AlertDate:     req.AlertDate,
	}
	if err := s.alertRepo.Create(nil, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// GetByID returns a single alert.
func (s *AlertService) GetByID(alertID string) (*models.Alert, error) {
	return s.alertRepo.GetByID(alertID)
}

// GetActive returns unsent alerts whose alert date has been reached.
func (s *AlertService) GetActive() ([]models.Alert, error) {
	return s.alertRepo.GetActive(s.clock.Now())
}

// GetByType returns unsent alerts of one type.
func (s *AlertService) GetByType(alertType models.AlertType) ([]models.Alert, error) {
	return s.alertRepo.GetByType(alertType)
}

// GetByReservation returns all alerts attached to a reservation.
func (s *AlertService) GetByReservation(reservationID string) ([]models.Alert, error) {
	if _, err := s.reservationRepo.GetByID(reservationID); err != nil {
		return nil, err
	}
	return s.alertRepo.GetByReservation(reservationID)
}

// MarkSent flags an alert as dispatched.
func (s *AlertService) MarkSent(alertID string) error {
	return s.alertRepo.SetSent(alertID, true)
}

// MarkUnsent puts an alert back in the active queue.
func (s *AlertService) MarkUnsent(alertID string) error {
	return s.alertRepo.SetSent(alertID, false)
}

// SendReservationReminders emails every client whose reservation starts
// in exactly ReminderLeadTime and has not been reminded yet. A failed
// send leaves alert_sent untouched so the next sweep retries it.
func (s *AlertService) SendReservationReminders() (int, error) {
	targetDate := s.clock.Now().Add(models.ReminderLeadTime).Truncate(24 * time.Hour)

	reservations, err := s.reservationRepo.ListForReminder(targetDate)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range reservations {
		reservation := &reservations[i]

		place, err := s.placeRepo.GetByID(reservation.PlaceID)
		if err != nil {
			logrus.WithError(err).WithField("reservation_code", reservation.ReservationCode).
				Error("Failed to load place for reminder")
			continue
		}

		subject := fmt.Sprintf("Reminder: your visit to %s on %s", place.Name, reservation.StartDate.Format("2006-01-02"))
		body := s.reminderBody(reservation, place)

		if err := s.mailer.Send(reservation.ClientEmail, subject, body); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"reservation_code": reservation.ReservationCode,
				"gateway":          s.mailer.GetName(),
			}).Error("Failed to send reminder email")
			continue
		}

		if err := s.reservationRepo.MarkAlertSent(reservation.ID); err != nil {
			logrus.WithError(err).WithField("reservation_code", reservation.ReservationCode).
				Error("Failed to mark reminder as sent")
			continue
		}

		// Retire the scheduled alert row so it drops out of the active
		// list. The email already went out, so a failure here only
		// leaves a stale row behind.
		if err := s.alertRepo.MarkReminderSent(reservation.ID); err != nil {
			logrus.WithError(err).WithField("reservation_code", reservation.ReservationCode).
				Error("Failed to retire reminder alert")
		}
		sent++
	}

	return sent, nil
}

func (s *AlertService) reminderBody(r *models.Reservation, place *models.Place) string {
	timeLine := ""
	if r.StartTime != nil && *r.StartTime != "" {
		timeLine = fmt.Sprintf("<p>Arrival time: %s</p>", *r.StartTime)
	}
	return fmt.Sprintf(
		`<h2>Your reservation is coming up</h2>
<p>Hi %s,</p>
<p>This is a reminder that reservation <strong>%s</strong> at <strong>%s</strong> starts on <strong>%s</strong>.</p>
%s<p>Party size: %d</p>
<p>We look forward to seeing you.</p>`,
		r.ClientName,
		r.ReservationCode,
		place.Name,
		r.StartDate.Format("2006-01-02"),
		timeLine,
		r.PartySize,
	)
}
