package email

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrymomot/webutils/core/logger"
)

// LogSender logs messages instead of delivering them. Bodies are not logged
// since they may contain verification links.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender. A nil logger discards everything.
func NewLogSender(l *slog.Logger) *LogSender {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LogSender{logger: l.With(logger.Component("email"))}
}

// SendEmail implements Sender.
func (s *LogSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	s.logger.WarnContext(ctx, "email not delivered: log sender in use",
		logger.Key("send_to", params.SendTo),
		logger.Key("subject", params.Subject),
		logger.Key("tag", params.Tag),
	)
	return nil
}
