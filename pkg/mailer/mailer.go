package mailer

// Mailer defines the interface for sending notification emails
type Mailer interface {
	// Send delivers an HTML email to the recipient.
	// Failures are returned to the caller; the alert sweep treats them as
	// non-fatal and retries on its next cycle.
	Send(toEmail, subject, bodyHTML string) error

	// GetName returns the name of the mailer implementation
	GetName() string
}
