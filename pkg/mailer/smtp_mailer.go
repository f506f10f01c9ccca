package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// SMTPMailer sends mail through an SMTP relay
type SMTPMailer struct {
	host        string
	port        int
	username    string
	password    string
	from        string
	displayName string
}

// SMTPConfig holds configuration for the SMTP mailer
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	DisplayName string
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		host:        config.Host,
		port:        config.Port,
		username:    config.Username,
		password:    config.Password,
		from:        config.From,
		displayName: config.DisplayName,
	}
}

// Send delivers an HTML email through the configured relay
func (m *SMTPMailer) Send(toEmail, subject, bodyHTML string) error {
	if toEmail == "" {
		return fmt.Errorf("recipient address is required")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", m.displayName, m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", toEmail)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(bodyHTML)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.from, []string{toEmail}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	return nil
}

// GetName returns the mailer implementation name
func (m *SMTPMailer) GetName() string {
	return "SMTP"
}
