// Package services defines small shared utilities used by the sync engine and
// the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp sync run IDs and playlist IDs so log lines can
//     be correlated across the fetch and write phases of a run.
//   - Structured error markers plus the Wrap helper, and FailureCategory which
//     maps a failed run onto the category recorded in the sync history.
package services
