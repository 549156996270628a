// Package logging assembles the structured slog loggers used across ytvault.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so sync code automatically tags
// log lines with the run ID and playlist ID. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
