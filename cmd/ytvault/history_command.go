package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ytvault/internal/history"
)

type historyRow struct {
	RunID         string `json:"run_id"`
	Status        string `json:"status"`
	PlaylistRef   string `json:"playlist_ref"`
	PlaylistID    string `json:"playlist_id,omitempty"`
	PlaylistTitle string `json:"playlist_title,omitempty"`
	Folder        string `json:"folder,omitempty"`
	WasUpdate     bool   `json:"was_update"`
	Created       int    `json:"created"`
	Skipped       int    `json:"skipped"`
	Conflicts     int    `json:"conflicts"`
	ErrorCategory string `json:"error_category,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
	StartedAt     string `json:"started_at"`
	FinishedAt    string `json:"finished_at,omitempty"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent sync runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open sync history: %w", err)
			}
			defer store.Close()

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				rows := make([]historyRow, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, toHistoryRow(run))
				}
				return writeJSON(cmd, rows)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No sync runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print runs as JSON")
	return cmd
}

func toHistoryRow(run history.Run) historyRow {
	row := historyRow{
		RunID:         run.RunID,
		Status:        string(run.Status),
		PlaylistRef:   run.PlaylistRef,
		PlaylistID:    run.PlaylistID,
		PlaylistTitle: run.PlaylistTitle,
		Folder:        run.Folder,
		WasUpdate:     run.WasUpdate,
		Created:       run.Created,
		Skipped:       run.Skipped,
		Conflicts:     run.Conflicts,
		ErrorCategory: run.ErrorCategory,
		ErrorMessage:  run.ErrorMessage,
		StartedAt:     run.StartedAt.Format(time.RFC3339),
	}
	if !run.FinishedAt.IsZero() {
		row.FinishedAt = run.FinishedAt.Format(time.RFC3339)
	}
	return row
}

func renderHistoryTable(runs []history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		playlist := run.PlaylistTitle
		if playlist == "" {
			playlist = run.PlaylistRef
		}
		status := string(run.Status)
		if run.ErrorCategory != "" {
			status += " (" + run.ErrorCategory + ")"
		}
		rows = append(rows, []string{
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			status,
			playlist,
			strconv.Itoa(run.Created),
			strconv.Itoa(run.Skipped),
			strconv.Itoa(run.Conflicts),
			formatRunDuration(run.Duration()),
		})
	}
	return renderTable(historyColumns, rows)
}

var historyColumns = []column{
	{Title: "Started"},
	{Title: "Status"},
	{Title: "Playlist"},
	{Title: "Created", Count: true},
	{Title: "Skipped", Count: true},
	{Title: "Conflicts", Count: true},
	{Title: "Took", Count: true},
}

func formatRunDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
