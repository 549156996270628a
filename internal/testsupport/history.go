package testsupport

import (
	"context"
	"testing"

	"ytvault/internal/config"
	"ytvault/internal/history"
)

// MustOpenHistory opens a history.Store for tests and registers cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// BeginRun records a started run for tests.
func BeginRun(t testing.TB, store *history.Store, runID, ref string) {
	t.Helper()

	if err := store.BeginRun(context.Background(), runID, ref); err != nil {
		t.Fatalf("store.BeginRun: %v", err)
	}
}
