package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/tasknotify/domain"
)

// Mailer delivers a single email through an outbound channel.
type Mailer interface {
	Send(ctx context.Context, msg domain.EmailMessage) error
}

// Dispatcher sends one notification per call and reports the outcome as a bool.
// Transport errors and panics stay inside Send; callers only see false.
type Dispatcher struct {
	mailer Mailer
	logger *zap.Logger
}

func New(mailer Mailer, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{mailer: mailer, logger: logger}
}

// Send returns true when the channel accepted the message. There is no retry:
// calling Send twice sends two emails.
func (d *Dispatcher) Send(ctx context.Context, to, subject, body string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("error sending email", zap.String("to", to), zap.Error(fmt.Errorf("panic: %v", r)))
			ok = false
		}
	}()

	if d.mailer == nil {
		d.logger.Error("error sending email", zap.String("to", to), zap.String("reason", "no mailer configured"))
		return false
	}

	if err := d.mailer.Send(ctx, domain.EmailMessage{To: to, Subject: subject, Body: body}); err != nil {
		d.logger.Error("error sending email", zap.String("to", to), zap.Error(err))
		return false
	}

	d.logger.Info("email sent successfully", zap.String("to", to))
	return true
}
