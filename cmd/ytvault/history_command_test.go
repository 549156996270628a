package main

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHistoryEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No sync runs recorded")
}

func TestHistoryListsRuns(t *testing.T) {
	env := setupCLITestEnv(t, talksPlaylist(2))

	if _, _, err := runCLI(t, []string{"sync", "PLtalks"}, env.configPath); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if _, _, err := runCLI(t, []string{"sync", "PLtalks"}, env.configPath); err != nil {
		t.Fatalf("second sync: %v", err)
	}

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "Talks")
	requireContains(t, out, "succeeded")

	out, _, err = runCLI(t, []string{"history", "--json", "--limit", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("history --json: %v", err)
	}
	var rows []historyRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode rows: %v\n%s", err, out)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if !rows[0].WasUpdate || rows[0].Created != 0 || rows[0].Skipped != 2 {
		t.Fatalf("expected newest run first, got %+v", rows[0])
	}
}

func TestFormatRunDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "-"},
		{250 * time.Millisecond, "250ms"},
		{1520 * time.Millisecond, "1.5s"},
	}
	for _, tc := range cases {
		if got := formatRunDuration(tc.in); got != tc.want {
			t.Fatalf("formatRunDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
