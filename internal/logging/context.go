package logging

import (
	"context"
	"log/slog"

	"ytvault/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized key for sync run identifiers.
	FieldRunID = "run_id"
	// FieldPlaylistID is the standardized key for remote playlist identifiers.
	FieldPlaylistID = "playlist_id"
	// FieldCommand is the standardized key for the CLI command being executed.
	FieldCommand = "command"
	// FieldVideoID is the standardized key for YouTube video identifiers.
	FieldVideoID = "video_id"
	// FieldPath is the standardized key for vault-relative document paths.
	FieldPath = "path"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests a next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if id, ok := services.PlaylistIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldPlaylistID, id))
	}
	if name, ok := services.CommandFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCommand, name))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(args(fields)...)
}
