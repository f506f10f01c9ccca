package mailer

import "github.com/sirupsen/logrus"

// DevMailer logs outgoing mail instead of sending it. Used in development
// so the alert sweep can run without SMTP credentials.
type DevMailer struct {
	logger *logrus.Logger
}

// NewDevMailer creates a new development mailer
func NewDevMailer(logger *logrus.Logger) *DevMailer {
	return &DevMailer{logger: logger}
}

// Send logs the email instead of delivering it
func (m *DevMailer) Send(toEmail, subject, bodyHTML string) error {
	m.logger.WithFields(logrus.Fields{
		"to":      toEmail,
		"subject": subject,
		"bytes":   len(bodyHTML),
	}).Info("dev mailer: email suppressed")
	return nil
}

// GetName returns the mailer implementation name
func (m *DevMailer) GetName() string {
	return "Dev"
}
