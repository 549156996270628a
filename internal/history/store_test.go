package history_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"ytvault/internal/history"
	"ytvault/internal/testsupport"
)

func TestOpenCreatesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)

	if store.Path() != cfg.HistoryPath() {
		t.Fatalf("Path = %q, want %q", store.Path(), cfg.HistoryPath())
	}
	runs, err := store.RecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected empty history, got %d runs", len(runs))
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	testsupport.BeginRun(t, store, "run-1", "PL1")
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenHistory(t, cfg)
	run, err := reopened.GetRun(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run.PlaylistRef != "PL1" || run.Status != history.StatusRunning {
		t.Fatalf("unexpected run after reopen: %#v", run)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	store.Close()

	db, err := sql.Open("sqlite", cfg.HistoryPath())
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	db.Close()

	if _, err := history.Open(cfg); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestFinishRunSuccess(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	testsupport.BeginRun(t, store, "run-ok", "https://www.youtube.com/playlist?list=PL1")
	err := store.FinishRun(ctx, "run-ok", history.Outcome{
		PlaylistID:    "PL1",
		PlaylistTitle: "Talks",
		Folder:        "YouTube/Talks - Chan",
		WasUpdate:     true,
		Created:       3,
		Skipped:       4,
		Conflicts:     1,
	})
	if err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	run, err := store.GetRun(ctx, "run-ok")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run.Status != history.StatusSucceeded {
		t.Fatalf("Status = %q, want succeeded", run.Status)
	}
	if run.PlaylistID != "PL1" || run.PlaylistTitle != "Talks" || run.Folder != "YouTube/Talks - Chan" {
		t.Fatalf("unexpected playlist fields: %#v", run)
	}
	if !run.WasUpdate || run.IndexCreated {
		t.Fatalf("unexpected flags: update=%v index=%v", run.WasUpdate, run.IndexCreated)
	}
	if run.Created != 3 || run.Skipped != 4 || run.Conflicts != 1 {
		t.Fatalf("unexpected counts: %d/%d/%d", run.Created, run.Skipped, run.Conflicts)
	}
	if run.ErrorMessage != "" || run.ErrorCategory != "" {
		t.Fatalf("expected no error fields, got %q/%q", run.ErrorCategory, run.ErrorMessage)
	}
	if run.StartedAt.IsZero() || run.FinishedAt.IsZero() {
		t.Fatalf("expected timestamps, got %v/%v", run.StartedAt, run.FinishedAt)
	}
	if run.Duration() < 0 {
		t.Fatalf("negative duration %v", run.Duration())
	}
}

func TestFinishRunFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	testsupport.BeginRun(t, store, "run-bad", "PLmissing")
	err := store.FinishRun(ctx, "run-bad", history.Outcome{
		Err:           errors.New("playlist not found"),
		ErrorCategory: "remote",
	})
	if err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	run, err := store.GetRun(ctx, "run-bad")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run.Status != history.StatusFailed {
		t.Fatalf("Status = %q, want failed", run.Status)
	}
	if run.ErrorCategory != "remote" || run.ErrorMessage != "playlist not found" {
		t.Fatalf("unexpected error fields: %q/%q", run.ErrorCategory, run.ErrorMessage)
	}
	if run.PlaylistID != "" {
		t.Fatalf("expected empty playlist id, got %q", run.PlaylistID)
	}
}

func TestFinishRunUnknownID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)

	err := store.FinishRun(context.Background(), "nope", history.Outcome{})
	if !errors.Is(err, history.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := store.GetRun(context.Background(), "nope"); !errors.Is(err, history.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound from GetRun, got %v", err)
	}
}

func TestBeginRunValidation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	if err := store.BeginRun(ctx, "  ", "PL1"); err == nil {
		t.Fatal("expected error for blank run id")
	}
	testsupport.BeginRun(t, store, "dup", "PL1")
	if err := store.BeginRun(ctx, "dup", "PL1"); err == nil {
		t.Fatal("expected error for duplicate run id")
	}
}

func TestRecentRunsNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d"} {
		testsupport.BeginRun(t, store, id, "PL-"+id)
	}

	cases := []struct {
		limit int
		want  []string
	}{
		{limit: 2, want: []string{"d", "c"}},
		{limit: 10, want: []string{"d", "c", "b", "a"}},
		{limit: 0, want: []string{"d", "c", "b", "a"}},
	}
	for _, tc := range cases {
		runs, err := store.RecentRuns(ctx, tc.limit)
		if err != nil {
			t.Fatalf("RecentRuns(%d) failed: %v", tc.limit, err)
		}
		if len(runs) != len(tc.want) {
			t.Fatalf("RecentRuns(%d) returned %d runs, want %d", tc.limit, len(runs), len(tc.want))
		}
		for i, run := range runs {
			if run.RunID != tc.want[i] {
				t.Fatalf("RecentRuns(%d)[%d] = %q, want %q", tc.limit, i, run.RunID, tc.want[i])
			}
		}
	}
}

func TestMarkAbandoned(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	testsupport.BeginRun(t, store, "stuck", "PL1")
	testsupport.BeginRun(t, store, "done", "PL2")
	if err := store.FinishRun(ctx, "done", history.Outcome{PlaylistID: "PL2"}); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	n, err := store.MarkAbandoned(ctx)
	if err != nil {
		t.Fatalf("MarkAbandoned failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("MarkAbandoned updated %d runs, want 1", n)
	}
	stuck, _ := store.GetRun(ctx, "stuck")
	if stuck.Status != history.StatusFailed || stuck.ErrorCategory != "abandoned" {
		t.Fatalf("unexpected stuck run: %#v", stuck)
	}
	done, _ := store.GetRun(ctx, "done")
	if done.Status != history.StatusSucceeded {
		t.Fatalf("finished run changed: %#v", done)
	}
}

func TestLastPlaylistURL(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	got, err := store.LastPlaylistURL(ctx)
	if err != nil {
		t.Fatalf("LastPlaylistURL failed: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty last url, got %q", got)
	}

	for _, ref := range []string{"PL1", "https://www.youtube.com/playlist?list=PL2"} {
		if err := store.SetLastPlaylistURL(ctx, ref); err != nil {
			t.Fatalf("SetLastPlaylistURL failed: %v", err)
		}
		got, err := store.LastPlaylistURL(ctx)
		if err != nil {
			t.Fatalf("LastPlaylistURL failed: %v", err)
		}
		if got != ref {
			t.Fatalf("LastPlaylistURL = %q, want %q", got, ref)
		}
	}
}
