package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends templated account emails. Callers must not let a send failure
// change the response they give the user.
type Mailer interface {
	SendPasswordReset(to, resetURL string, expiryMinutes int) error
}

// SMTPMailer delivers mail over a plain SMTP dialer
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendPasswordReset(to, resetURL string, expiryMinutes int) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset Request")
	msg.SetBody("text/html", fmt.Sprintf(`
		<h2>Password Reset Request</h2>
		<p>You requested a password reset for your account.</p>
		<p><a href="%s">Reset Password</a></p>
		<p>If you didn't request this, please ignore this email.</p>
		<p>This link will expire in %d minutes.</p>
	`, resetURL, expiryMinutes))

	return m.dialer.DialAndSend(msg)
}
