// Package textutil provides text helpers for turning remote titles into
// filesystem-safe document and folder names.
//
// SanitizeName is total and idempotent: any input string maps to a name that
// contains none of the characters reserved on common filesystems, never
// exceeds MaxNameLength runes, and is unchanged by a second pass. Rules are
// applied in a fixed order so later rewrites cannot reintroduce characters
// removed by earlier ones.
package textutil
