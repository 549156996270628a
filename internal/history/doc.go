// Package history persists a ledger of sync runs and small pieces of CLI
// state, such as the last playlist URL synced, in a SQLite database under the
// state directory.
//
// The ledger is informational. Whether a video was already synced is always
// decided from the vault itself, never from this database.
package history
