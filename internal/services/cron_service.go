package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CronService manages scheduled background jobs
type CronService struct {
	cron           *cron.Cron
	alertSvc       *AlertService
	reservationSvc *ReservationService
}

// NewCronService creates a new CronService
func NewCronService(alertSvc *AlertService, reservationSvc *ReservationService) *CronService {
	return &CronService{
		cron:           cron.New(cron.WithSeconds()),
		alertSvc:       alertSvc,
		reservationSvc: reservationSvc,
	}
}

// Start registers and starts all scheduled jobs.
func (s *CronService) Start() error {
	// Cron format: second minute hour day month weekday

	// Reminder emails every morning at 8 AM, when clients actually read them.
	_, err := s.cron.AddFunc("0 0 8 * * *", s.sendRemindersJob)
	if err != nil {
		return fmt.Errorf("failed to schedule reminder job: %w", err)
	}
	logrus.Info("Scheduled: reservation reminders (daily at 8:00 AM)")

	// Complete forgotten checkouts nightly at 2 AM.
	_, err = s.cron.AddFunc("0 0 2 * * *", s.completeStaleJob)
	if err != nil {
		return fmt.Errorf("failed to schedule stale checkout job: %w", err)
	}
	logrus.Info("Scheduled: complete stale checkouts (daily at 2:00 AM)")

	s.cron.Start()
	logrus.Info("Cron service started")
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logrus.Info("Cron service stopped")
}

func (s *CronService) sendRemindersJob() {
	start := time.Now()

	sent, err := s.alertSvc.SendReservationReminders()
	if err != nil {
		logrus.WithError(err).Error("Reminder job failed")
		return
	}

	logrus.WithFields(logrus.Fields{
		"sent":     sent,
		"duration": time.Since(start).String(),
	}).Info("Reminder job finished")
}

func (s *CronService) completeStaleJob() {
	start := time.Now()

	completed, err := s.reservationSvc.CompleteStaleCheckouts()
	if err != nil {
		logrus.WithError(err).Error("Stale checkout job failed")
		return
	}

	logrus.WithFields(logrus.Fields{
		"completed": completed,
		"duration":  time.Since(start).String(),
	}).Info("Stale checkout job finished")
}

// RunRemindersNow runs the reminder sweep immediately (admin endpoint).
func (s *CronService) RunRemindersNow() (int, error) {
	return s.alertSvc.SendReservationReminders()
}
