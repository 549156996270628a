package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a sync run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// ErrRunNotFound indicates no run exists with the requested ID.
var ErrRunNotFound = errors.New("sync run not found")

// Run is one recorded sync invocation.
type Run struct {
	ID            int64
	RunID         string
	PlaylistRef   string
	PlaylistID    string
	PlaylistTitle string
	Folder        string
	Status        Status
	WasUpdate     bool
	IndexCreated  bool
	Created       int
	Skipped       int
	Conflicts     int
	ErrorCategory string
	ErrorMessage  string
	StartedAt     time.Time
	FinishedAt    time.Time
}

// Duration returns how long the run took, or zero while it is still running.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Outcome carries what is known about a run when it finishes.
type Outcome struct {
	PlaylistID    string
	PlaylistTitle string
	Folder        string
	WasUpdate     bool
	IndexCreated  bool
	Created       int
	Skipped       int
	Conflicts     int
	// Err is nil for a successful run.
	Err error
	// ErrorCategory classifies Err for filtering.
	ErrorCategory string
}

const runColumns = "id, run_id, playlist_ref, playlist_id, playlist_title, folder, status, was_update, index_created, created_count, skipped_count, conflict_count, error_category, error_message, started_at, finished_at"

// BeginRun records the start of a sync.
func (s *Store) BeginRun(ctx context.Context, runID, playlistRef string) error {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return errors.New("run id required")
	}
	_, err := s.exec(ctx,
		`INSERT INTO sync_runs (run_id, playlist_ref, status, started_at) VALUES (?, ?, ?, ?)`,
		runID, playlistRef, StatusRunning, formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("insert sync run: %w", err)
	}
	return nil
}

// FinishRun records the outcome of a sync started with BeginRun.
func (s *Store) FinishRun(ctx context.Context, runID string, outcome Outcome) error {
	status := StatusSucceeded
	var errMessage sql.NullString
	var errCategory sql.NullString
	if outcome.Err != nil {
		status = StatusFailed
		errMessage = sql.NullString{String: outcome.Err.Error(), Valid: true}
		errCategory = nullableString(outcome.ErrorCategory)
	}

	res, err := s.exec(ctx,
		`UPDATE sync_runs SET
            playlist_id = ?, playlist_title = ?, folder = ?, status = ?,
            was_update = ?, index_created = ?, created_count = ?, skipped_count = ?, conflict_count = ?,
            error_category = ?, error_message = ?, finished_at = ?
        WHERE run_id = ?`,
		nullableString(outcome.PlaylistID),
		nullableString(outcome.PlaylistTitle),
		nullableString(outcome.Folder),
		status,
		boolToInt(outcome.WasUpdate),
		boolToInt(outcome.IndexCreated),
		outcome.Created,
		outcome.Skipped,
		outcome.Conflicts,
		errCategory,
		errMessage,
		formatTime(time.Now()),
		runID,
	)
	if err != nil {
		return fmt.Errorf("update sync run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

// GetRun returns the run with the given run ID.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM sync_runs WHERE run_id = ?", runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return run, err
}

// RecentRuns returns up to limit runs, newest first. A non-positive limit
// returns every run.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM sync_runs ORDER BY id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sync runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sync runs: %w", err)
	}
	return runs, nil
}

// MarkAbandoned fails runs left in the running state by a process that died
// mid-sync. It returns how many runs were updated.
func (s *Store) MarkAbandoned(ctx context.Context) (int64, error) {
	res, err := s.exec(ctx,
		`UPDATE sync_runs SET status = ?, error_category = ?, error_message = ?, finished_at = ? WHERE status = ?`,
		StatusFailed, "abandoned", "process exited before the run finished", formatTime(time.Now()), StatusRunning,
	)
	if err != nil {
		return 0, fmt.Errorf("mark abandoned runs: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run           Run
		playlistID    sql.NullString
		playlistTitle sql.NullString
		folder        sql.NullString
		status        string
		wasUpdate     int
		indexCreated  int
		errCategory   sql.NullString
		errMessage    sql.NullString
		startedRaw    string
		finishedRaw   sql.NullString
	)
	if err := scanner.Scan(
		&run.ID, &run.RunID, &run.PlaylistRef, &playlistID, &playlistTitle, &folder, &status,
		&wasUpdate, &indexCreated, &run.Created, &run.Skipped, &run.Conflicts,
		&errCategory, &errMessage, &startedRaw, &finishedRaw,
	); err != nil {
		return nil, err
	}
	run.PlaylistID = playlistID.String
	run.PlaylistTitle = playlistTitle.String
	run.Folder = folder.String
	run.Status = Status(status)
	run.WasUpdate = wasUpdate != 0
	run.IndexCreated = indexCreated != 0
	run.ErrorCategory = errCategory.String
	run.ErrorMessage = errMessage.String
	run.StartedAt = parseTime(startedRaw)
	if finishedRaw.Valid {
		run.FinishedAt = parseTime(finishedRaw.String)
	}
	return &run, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) sql.NullString {
	if strings.TrimSpace(value) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
