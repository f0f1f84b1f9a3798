// Package notify delivers portal e-mail over SMTP.
package notify

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Dialer is the subset of *gomail.Dialer the mailer uses.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer implements ports.Mailer with gomail.
type Mailer struct {
	dialer Dialer
	from   string
}

// NewMailer returns nil when no SMTP host is configured, which disables mail.
func NewMailer(cfg SMTPConfig) *Mailer {
	if cfg.Host == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// NewMailerWithDialer is used by tests to swap the transport.
func NewMailerWithDialer(d Dialer, from string) *Mailer {
	return &Mailer{dialer: d, from: from}
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return errors.New("mailer: empty recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
