package email

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/tasknotify/domain"
)

// LogMailer writes messages to the log instead of delivering them. Used in development.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg domain.EmailMessage) error {
	m.logger.Info("email",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body))
	return nil
}
