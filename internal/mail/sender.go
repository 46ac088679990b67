// Package mail delivers transactional email for the platform. The default
// implementation only logs, which is enough for development and for flows
// where delivery is best effort.
package mail

import (
	"context"
	"log/slog"
)

// Sender delivers a single message to one recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender writes messages to the structured log instead of sending them.
type LogSender struct {
	logger *slog.Logger
	from   string
}

// NewLogSender creates a log-backed sender.
func NewLogSender(logger *slog.Logger, from string) *LogSender {
	return &LogSender{
		logger: logger,
		from:   from,
	}
}

// Send logs the message and always succeeds.
func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	s.logger.Info("Outgoing mail",
		"from", s.from,
		"to", to,
		"subject", subject,
		"body", body,
	)
	return nil
}
