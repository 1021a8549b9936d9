// Package email delivers transactional mail over SMTP. Rendering is the
// caller's job; this package only transports.
package email

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

type SMTPMailer struct {
	addr   string
	auth   smtp.Auth
	from   string
	logger zerolog.Logger
}

func NewSMTPMailer(host string, port int, username, password, from string, logger zerolog.Logger) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr:   fmt.Sprintf("%s:%d", host, port),
		auth:   auth,
		from:   from,
		logger: logger,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		m.logger.Debug().Str("to", to).Str("subject", subject).Msg("mail sent")
		return nil
	}
}
