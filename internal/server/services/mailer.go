package services

import (
	"context"

	"github.com/knothost/siteapi/internal/logging"
)

// Mailer delivers account emails.
type Mailer interface {
	SendConfirmation(ctx context.Context, to string) error
	SendPasswordReset(ctx context.Context, to, token string) error
}

// LogMailer simulates delivery by writing each email as a log record.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(logger logging.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("module", "mailer")}
}

func (m *LogMailer) SendConfirmation(ctx context.Context, to string) error {
	m.logger.Info(ctx, "email sent", "to", to, "subject", "Confirm your KnotHost account")
	return nil
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	m.logger.Info(ctx, "email sent", "to", to, "subject", "Reset your KnotHost password", "reset_token", token)
	return nil
}
