// Package vault defines the document store the playlist sync writes into and
// a filesystem-backed implementation rooted at a vault directory.
//
// Paths handed to a Store are vault-relative and slash separated, the same
// shape note-taking apps use for links. The store only ever creates folders
// and documents; it never rewrites or deletes existing content, which keeps
// concurrent manual edits by the vault owner safe. Lock serializes sync runs
// against the same vault across processes.
package vault
