package audit

import "go.uber.org/zap"

// LogSink writes audit events to the process log. It backs the memory
// store, which has no audit table.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogSink{log: log.Named("audit")}
}

func (s *LogSink) Write(ev Event) error {
	fields := []zap.Field{
		zap.Uint("provider_id", ev.ProviderID),
		zap.String("action", ev.Action),
		zap.String("entity", ev.Entity),
		zap.Any("metadata", ev.Metadata),
	}
	if ev.EntityID != nil {
		fields = append(fields, zap.Uint("entity_id", *ev.EntityID))
	}
	s.log.Info("audit", fields...)
	return nil
}

var _ Sink = (*LogSink)(nil)
