package domain

import "time"

// LogLevel is the severity of a LogEvent.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func (l LogLevel) String() string { return string(l) }

// IsValid reports whether l is one of the known levels.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	}
	return false
}

// LogEvent is a component-scoped diagnostic event, persisted to app_logs.
type LogEvent struct {
	Component string
	Message   string
	Level     LogLevel
	Context   map[string]any
	CreatedAt time.Time
}
