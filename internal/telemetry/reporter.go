package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

// Sink persists log events. The app_logs repository implements it.
type Sink interface {
	Write(ctx context.Context, ev domain.LogEvent) error
}

// Reporter is the (component, message, level, context) event collaborator.
// Every event goes to the structured log immediately; when a sink is
// configured a persistence job is also queued on the dispatcher.
type Reporter struct {
	dispatcher *Dispatcher
	sink       Sink
	log        *slog.Logger
	now        func() time.Time
}

// NewReporter creates a Reporter. sink may be nil to disable persistence.
func NewReporter(logger *slog.Logger, dispatcher *Dispatcher, sink Sink) *Reporter {
	return &Reporter{
		dispatcher: dispatcher,
		sink:       sink,
		log:        logger,
		now:        time.Now,
	}
}

// Report records an event. It never blocks on I/O and never fails.
func (r *Reporter) Report(ctx context.Context, component, message string, level domain.LogLevel, fields map[string]any) {
	if r == nil {
		return
	}

	attrs := make([]any, 0, len(fields)+1)
	attrs = append(attrs, slog.String("component", component))
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	r.log.Log(ctx, slogLevel(level), message, attrs...)

	if r.sink == nil || r.dispatcher == nil {
		return
	}

	ev := domain.LogEvent{
		Component: component,
		Message:   message,
		Level:     level,
		Context:   fields,
		CreatedAt: r.now().UTC(),
	}
	r.dispatcher.Submit("app_log", func(ctx context.Context) error {
		return r.sink.Write(ctx, ev)
	})
}

func slogLevel(l domain.LogLevel) slog.Level {
	switch l {
	case domain.LogLevelDebug:
		return slog.LevelDebug
	case domain.LogLevelWarn:
		return slog.LevelWarn
	case domain.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
