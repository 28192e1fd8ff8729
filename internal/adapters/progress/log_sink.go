package progress

import (
	"context"
	"log/slog"

	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

// LogSink reports progress through the logger. It is used when no spinner
// can be drawn: JSON output or non-interactive runs.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink creates a progress sink writing to log
func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log.With("component", "progress")}
}

// OnProgress logs stage changes at debug level. Stage ends carry no
// message and are skipped.
func (s *LogSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Message == "" {
		return
	}
	attrs := []any{"stage", event.Stage}
	if event.Total > 0 {
		attrs = append(attrs, "current", event.Current, "total", event.Total)
	}
	s.log.DebugContext(ctx, event.Message, attrs...)
}

// Info logs a user-facing notice such as a mined transaction
func (s *LogSink) Info(message string) {
	s.log.Info(message)
}

// Error logs a user-facing failure
func (s *LogSink) Error(message string) {
	s.log.Error(message)
}

var _ usecase.ProgressSink = (*LogSink)(nil)
