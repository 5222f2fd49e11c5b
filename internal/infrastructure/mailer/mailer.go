// Package mailer stubs outbound email. Delivery internals are delegated to
// an external system; this implementation records the intent in the log so
// local and test environments see what would have been sent.
package mailer

import (
	"context"

	"github.com/rs/zerolog"
)

// LogMailer satisfies ports.Mailer by logging instead of sending.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.log.Info().
		Str("to", to).
		Str("subject", subject).
		Msg("mail delivery stubbed")
	return nil
}
