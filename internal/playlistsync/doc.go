// Package playlistsync materializes playlist snapshots as notes in a vault.
//
// The vault is the only record of what earlier runs created: ScanExisting
// reads the video IDs out of the notes already present in a playlist folder,
// and Engine.Sync creates notes only for videos that are missing. Existing
// notes, including the index note, are never rewritten, so re-running a sync
// after an interruption or after the playlist grew is always safe.
package playlistsync
