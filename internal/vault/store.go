package vault

import (
	"context"
	"path"
	"strings"
)

// Entry is a direct child of a folder.
type Entry struct {
	Path   string
	Folder bool
}

// Store is the capability set the sync engine needs from a document store.
type Store interface {
	// Exists reports whether a folder or document exists at p.
	Exists(ctx context.Context, p string) (bool, error)
	// CreateFolder creates a single folder whose parent must already exist.
	CreateFolder(ctx context.Context, p string) error
	// CreateDocument creates a new document and fails with ErrWriteConflict
	// when something already exists at p.
	CreateDocument(ctx context.Context, p, text string) error
	// ReadDocument returns the full text of the document at p.
	ReadDocument(ctx context.Context, p string) (string, error)
	// ListChildren returns the direct children of folder in name order.
	ListChildren(ctx context.Context, folder string) ([]Entry, error)
}

// Join builds a vault-relative path, skipping empty elements.
func Join(elem ...string) string {
	parts := make([]string, 0, len(elem))
	for _, e := range elem {
		e = strings.Trim(strings.TrimSpace(e), "/")
		if e != "" {
			parts = append(parts, e)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return path.Clean(strings.Join(parts, "/"))
}

// Prefixes returns every ancestor of p followed by p itself, outermost first:
// "a/b/c" yields ["a", "a/b", "a/b/c"].
func Prefixes(p string) []string {
	p = Join(p)
	if p == "" {
		return nil
	}
	segments := strings.Split(p, "/")
	out := make([]string, 0, len(segments))
	current := ""
	for _, segment := range segments {
		if current == "" {
			current = segment
		} else {
			current = current + "/" + segment
		}
		out = append(out, current)
	}
	return out
}
