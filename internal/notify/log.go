package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogSender records notifications when no broker is configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, n Notification) error {
	s.log.Info("notification",
		zap.String("event_id", n.EventID),
		zap.String("type", n.Type),
		zap.String("channel", n.Channel),
		zap.Uint("provider_id", n.ProviderID),
		zap.Uint("booking_id", n.BookingID),
		zap.String("date", n.Date),
		zap.String("time", n.Time),
		zap.String("status", n.Status),
	)
	return nil
}
