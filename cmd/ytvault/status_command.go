package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ytvault/internal/config"
	"ytvault/internal/history"
	"ytvault/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check vault access, API credentials, and the last sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			results := preflight.RunAll(cmd.Context(), cfg, !offline)
			lines := renderSection("Readiness", preflightLines(results, colorize), colorize)
			lines = append(lines, "")
			lines = append(lines, renderSection("Last sync", lastSyncLines(cmd, cfg, colorize), colorize)...)
			fmt.Fprintln(out, strings.Join(lines, "\n"))

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d readiness check(s) failed", len(failed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the YouTube API check")
	return cmd
}

func preflightLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		kind := statusReady
		if !r.Passed {
			kind = statusBlocked
		}
		lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
	}
	return lines
}

func lastSyncLines(cmd *cobra.Command, cfg *config.Config, colorize bool) []string {
	store, err := history.Open(cfg)
	if err != nil {
		return []string{renderStatusLine("History", statusUnknown, err.Error(), colorize)}
	}
	defer store.Close()

	runs, err := store.RecentRuns(cmd.Context(), 1)
	if err != nil {
		return []string{renderStatusLine("History", statusUnknown, err.Error(), colorize)}
	}
	if len(runs) == 0 {
		return []string{renderStatusLine("Last run", statusNoHistory, "No syncs yet", colorize)}
	}
	run := runs[0]
	playlist := run.PlaylistTitle
	if playlist == "" {
		playlist = run.PlaylistRef
	}
	when := run.StartedAt.Local().Format("2006-01-02 15:04")
	switch run.Status {
	case history.StatusSucceeded:
		return []string{renderStatusLine("Last run", statusSynced,
			fmt.Sprintf("%s at %s (%d created, %d skipped)", playlist, when, run.Created, run.Skipped), colorize)}
	case history.StatusFailed:
		return []string{renderStatusLine("Last run", statusSyncFailed,
			fmt.Sprintf("%s at %s failed: %s", playlist, when, run.ErrorMessage), colorize)}
	default:
		return []string{renderStatusLine("Last run", statusSyncRunning,
			fmt.Sprintf("%s started at %s is still running", playlist, when), colorize)}
	}
}
