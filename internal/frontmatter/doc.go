// Package frontmatter writes and reads the delimited key/value header block at
// the top of every generated document.
//
// The header is the only state the playlist sync reads back from disk, so its
// shape must stay stable: Header renders fields in insertion order with
// EscapeValue applied to every value, and Fields decodes the block with a YAML
// parser while keeping scalar values as their literal text (an all-digit video
// id stays a string).
package frontmatter
