package consumer

import (
	"context"

	"go.uber.org/zap"
)

// LogHandler writes consumed roster events to the structured log. It backs
// the roster-tail tool used to watch signup traffic during local dev.
type LogHandler struct {
	logger *zap.Logger
}

// NewLogHandler constructs a handler writing to the provided logger.
func NewLogHandler(logger *zap.Logger) *LogHandler {
	return &LogHandler{logger: logger}
}

// Handle logs one roster event.
func (h *LogHandler) Handle(ctx context.Context, msg Message) error {
	h.logger.Info("roster event",
		zap.String("event_id", msg.Event.EventID),
		zap.String("action", msg.Event.Action),
		zap.String("activity", msg.Event.Activity),
		zap.String("email", msg.Event.Email),
		zap.Time("occurred_at", msg.Event.OccurredAt),
		zap.Int64("offset", msg.Offset))
	return nil
}
