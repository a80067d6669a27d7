// Package email delivers account-confirmation messages. Delivery itself is
// an external collaborator; this package only shapes the message and hands it
// to an SMTP relay. A no-op mailer keeps local development and tests free of
// a mail dependency.
package email

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog/log"
)

// Mailer sends a confirmation token to a freshly registered address.
type Mailer interface {
	SendConfirmation(ctx context.Context, to, token string) error
}

// SMTPMailer relays confirmation messages through a plain SMTP endpoint.
type SMTPMailer struct {
	Addr       string // host:port of the relay
	From       string
	ConfirmURL string // base URL the token is appended to
}

// SendConfirmation composes the confirmation message and submits it to the
// relay. Context is accepted for interface symmetry; net/smtp has no
// context-aware send, so cancellation is bounded by the relay's own timeouts.
func (m *SMTPMailer) SendConfirmation(_ context.Context, to, token string) error {
	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Confirm your account\r\n\r\n"+
			"Welcome! Confirm your account by visiting:\r\n%s/%s\r\n",
		m.From, to, m.ConfirmURL, token,
	)
	if err := smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(body)); err != nil {
		log.Error().Err(err).Str("to", to).Msg("confirmation email send failed")
		return err
	}
	log.Debug().Str("to", to).Msg("confirmation email sent")
	return nil
}

// LogMailer logs the confirmation instead of sending it. Used when no SMTP
// relay is configured (local development, tests).
type LogMailer struct{}

// SendConfirmation records the would-be delivery and succeeds.
func (LogMailer) SendConfirmation(_ context.Context, to, token string) error {
	log.Info().Str("to", to).Str("token", token).Msg("confirmation email suppressed (no SMTP relay configured)")
	return nil
}
