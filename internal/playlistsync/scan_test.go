package playlistsync_test

import (
	"context"
	"testing"

	"ytvault/internal/playlistsync"
	"ytvault/internal/testsupport"
)

func TestScanExistingMissingFolder(t *testing.T) {
	ids, err := playlistsync.ScanExisting(context.Background(), testsupport.NewMemoryStore(), "nope")
	if err != nil {
		t.Fatalf("ScanExisting: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty set, got %v", ids)
	}
}

func TestScanExistingSkipsUnparsableAndNested(t *testing.T) {
	store := testsupport.NewMemoryStore()
	store.Put("P/01 - a.md", "---\ntype: playlist-item\nvideo_id: aaaaaaaaaaa\n---\n")
	store.Put("P/02 - b.md", "---\nvideo_id: \"-bbbbbbbbbb\"\n---\n")
	store.Put("P/03 - c.md", "no header")
	store.Put("P/04 - d.md", "---\ntitle: no id\n---\n")
	store.Put("P/05 - e.md", "---\nvideo_id: [unterminated\n---\n")
	store.Put("P/attachment.txt", "---\nvideo_id: ttttttttttt\n---\n")
	store.Put("P/sub/06 - f.md", "---\nvideo_id: fffffffffff\n---\n")

	ids, err := playlistsync.ScanExisting(context.Background(), store, "P")
	if err != nil {
		t.Fatalf("ScanExisting: %v", err)
	}
	if len(ids) != 2 || !ids.Has("aaaaaaaaaaa") || !ids.Has("-bbbbbbbbbb") {
		t.Fatalf("unexpected ids %v", ids)
	}
	if store.Reads() != 5 {
		t.Fatalf("expected only the five direct notes to be read, got %d", store.Reads())
	}
}
