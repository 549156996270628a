package playlistsync

import (
	"context"
	"path"
	"strings"

	"ytvault/internal/frontmatter"
	"ytvault/internal/render"
	"ytvault/internal/vault"
)

// IDSet holds video IDs already present in a playlist folder.
type IDSet map[string]struct{}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// ScanExisting returns the video IDs recorded in the front matter of the notes
// directly inside folder. A missing folder yields an empty set. Subfolders are
// not visited, and notes without a parsable header or without a video_id are
// ignored.
func ScanExisting(ctx context.Context, store vault.Store, folder string) (IDSet, error) {
	ids := IDSet{}
	exists, err := store.Exists(ctx, folder)
	if err != nil {
		return nil, err
	}
	if !exists {
		return ids, nil
	}

	entries, err := store.ListChildren(ctx, folder)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.Folder || !isNote(entry.Path) {
			continue
		}
		text, err := store.ReadDocument(ctx, entry.Path)
		if err != nil {
			return nil, err
		}
		if id, ok := frontmatter.Field(text, render.FieldVideoID); ok && strings.TrimSpace(id) != "" {
			ids[strings.TrimSpace(id)] = struct{}{}
		}
	}
	return ids, nil
}

func isNote(p string) bool {
	return strings.EqualFold(path.Ext(p), render.NoteExt)
}
