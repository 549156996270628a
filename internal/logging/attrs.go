package logging

import (
	"context"
	"log/slog"
	"time"
)

type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

// Path tags a vault-relative document or folder path.
func Path(path string) Attr { return slog.String(FieldPath, path) }

// VideoID tags a YouTube video id.
func VideoID(id string) Attr { return slog.String(FieldVideoID, id) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags logger with a component name. A nil logger yields a
// silent one.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// Event names something an operator may need to act on: what happened, what
// it cost, and what to do about it. Impact and Hint are omitted when empty.
type Event struct {
	Type   string
	Impact string
	Hint   string
}

// Warn logs msg at warn level carrying the event's fields ahead of attrs.
func Warn(logger *slog.Logger, ev Event, msg string, attrs ...Attr) {
	logEvent(logger, slog.LevelWarn, ev, msg, attrs)
}

// Fail logs msg at error level carrying the event's fields ahead of attrs.
func Fail(logger *slog.Logger, ev Event, msg string, attrs ...Attr) {
	logEvent(logger, slog.LevelError, ev, msg, attrs)
}

func logEvent(logger *slog.Logger, level slog.Level, ev Event, msg string, attrs []Attr) {
	if logger == nil {
		return
	}
	fields := make([]Attr, 0, len(attrs)+3)
	fields = append(fields, String(FieldEventType, ev.Type))
	if ev.Impact != "" {
		fields = append(fields, String(FieldImpact, ev.Impact))
	}
	if ev.Hint != "" {
		fields = append(fields, String(FieldErrorHint, ev.Hint))
	}
	fields = append(fields, attrs...)
	logger.LogAttrs(context.Background(), level, msg, fields...)
}

func args(attrs []Attr) []any {
	out := make([]any, len(attrs))
	for i, attr := range attrs {
		out[i] = attr
	}
	return out
}
