package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ytvault/internal/config"
	"ytvault/internal/history"
	"ytvault/internal/logging"
	"ytvault/internal/playlistsync"
	"ytvault/internal/preflight"
	"ytvault/internal/render"
	"ytvault/internal/services"
	"ytvault/internal/vault"
	"ytvault/internal/youtube"
)

type syncSummary struct {
	RunID        string   `json:"run_id"`
	PlaylistID   string   `json:"playlist_id"`
	Title        string   `json:"title"`
	Channel      string   `json:"channel"`
	Folder       string   `json:"folder"`
	IndexPath    string   `json:"index_path"`
	VideoCount   int      `json:"video_count"`
	WasUpdate    bool     `json:"was_update"`
	IndexCreated bool     `json:"index_created"`
	Created      int      `json:"created"`
	Skipped      int      `json:"skipped"`
	Conflicts    int      `json:"conflicts"`
	CreatedPaths []string `json:"created_paths"`
}

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sync [playlist-url-or-id]",
		Short: "Create vault notes for a YouTube playlist",
		Long: `Fetch a playlist from the YouTube Data API and write an index note plus one
note per video into the vault. Notes that already exist are left untouched, so
re-running sync only adds videos that were appended to the playlist.

When no playlist is given, the playlist from the previous sync is used.

Examples:
  ytvault sync https://www.youtube.com/playlist?list=PL123
  ytvault sync PL123 --json
  ytvault sync`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			var ref string
			if len(args) > 0 {
				ref = strings.TrimSpace(args[0])
			}

			logger, err := ctx.newLogger(cfg, "cli-sync")
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			summary, err := runSync(signalCtx, cfg, logger, ref)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, summary)
			}
			printSyncSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run summary as JSON")
	return cmd
}

// runSync performs one locked, recorded sync of ref.
func runSync(ctx context.Context, cfg *config.Config, logger *slog.Logger, ref string) (*syncSummary, error) {
	if err := cfg.RequireSync(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "sync", "check config", "sync is not configured", err)
	}
	if failed := preflight.Failed(preflight.RunAll(ctx, cfg, false)); len(failed) > 0 {
		details := make([]string, 0, len(failed))
		for _, r := range failed {
			details = append(details, r.Name+": "+r.Detail)
		}
		return nil, services.Wrap(services.ErrConfiguration, "sync", "preflight", strings.Join(details, "; "), nil)
	}

	lock, err := vault.AcquireLock(cfg.LockPath())
	if err != nil {
		if errors.Is(err, vault.ErrLocked) {
			return nil, fmt.Errorf("another sync is already running: %w", err)
		}
		return nil, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release sync lock", logging.Error(err))
		}
	}()

	store, err := history.Open(cfg)
	if err != nil {
		return nil, services.Wrap(services.ErrStorage, "history", "open", "open sync history", err)
	}
	defer store.Close()

	if n, err := store.MarkAbandoned(ctx); err != nil {
		logger.Warn("mark abandoned runs", logging.Error(err))
	} else if n > 0 {
		logger.Info("marked interrupted sync runs as failed", logging.Int("count", int(n)))
	}

	if ref == "" {
		last, err := store.LastPlaylistURL(ctx)
		if err != nil {
			return nil, services.Wrap(services.ErrStorage, "history", "last playlist", "read last playlist", err)
		}
		if last == "" {
			return nil, services.Wrap(services.ErrValidation, "sync", "resolve playlist", "no playlist given and none synced before", nil)
		}
		logger.Info("reusing last playlist", logging.String("playlist_ref", last))
		ref = last
	}
	if _, err := youtube.ResolvePlaylistID(ref); err != nil {
		return nil, services.Wrap(services.ErrValidation, "sync", "resolve playlist", "invalid playlist reference", err)
	}
	if err := store.SetLastPlaylistURL(ctx, ref); err != nil {
		logger.Warn("remember playlist", logging.Error(err))
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithCommand(ctx, "sync")
	logger = logging.WithContext(ctx, logger)

	if err := store.BeginRun(ctx, runID, ref); err != nil {
		return nil, services.Wrap(services.ErrStorage, "history", "begin run", "record sync start", err)
	}

	summary, snap, runErr := syncPlaylist(ctx, cfg, logger, ref)
	summary.RunID = runID

	outcome := history.Outcome{
		Err:           runErr,
		ErrorCategory: services.FailureCategory(runErr),
		Folder:        summary.Folder,
		WasUpdate:     summary.WasUpdate,
		IndexCreated:  summary.IndexCreated,
		Created:       summary.Created,
		Skipped:       summary.Skipped,
		Conflicts:     summary.Conflicts,
	}
	if snap != nil {
		outcome.PlaylistID = snap.ID
		outcome.PlaylistTitle = snap.Title
	}
	if err := store.FinishRun(context.WithoutCancel(ctx), runID, outcome); err != nil {
		logger.Warn("record sync outcome", logging.Error(err))
	}

	if runErr != nil {
		logging.Fail(logger, logging.Event{Type: "sync_failed", Hint: syncFailureHint(runErr)}, "sync failed",
			logging.Error(runErr),
			logging.String("category", outcome.ErrorCategory),
			logging.Int("created", summary.Created),
		)
		return nil, runErr
	}
	return summary, nil
}

func syncFailureHint(err error) string {
	switch {
	case errors.Is(err, youtube.ErrUnauthorized):
		return "check youtube.api_key or YOUTUBE_API_KEY"
	case errors.Is(err, youtube.ErrNotFound):
		return "check the playlist id and that the playlist is public or unlisted"
	case errors.Is(err, services.ErrStorage):
		return "check that the vault directory is writable"
	}
	return "rerun with --verbose for details"
}

// syncPlaylist fetches the snapshot and applies it to the vault. The summary
// is populated as far as the run got, even on error.
func syncPlaylist(ctx context.Context, cfg *config.Config, logger *slog.Logger, ref string) (*syncSummary, *youtube.Snapshot, error) {
	summary := &syncSummary{CreatedPaths: []string{}}

	client, err := youtube.New(cfg.YouTube.APIKey, cfg.YouTube.BaseURL,
		youtube.WithTimeout(cfg.RequestTimeout()),
		youtube.WithPageSize(cfg.YouTube.PageSize),
		youtube.WithLogger(logging.NewComponentLogger(logger, "youtube")),
	)
	if err != nil {
		return summary, nil, services.Wrap(services.ErrConfiguration, "youtube", "client", "create api client", err)
	}

	snap, err := client.FetchSnapshot(ctx, ref)
	if err != nil {
		marker := services.ErrRemote
		if errors.Is(err, youtube.ErrMalformed) {
			marker = services.ErrValidation
		}
		if ctx.Err() != nil {
			marker = nil
		}
		return summary, nil, services.Wrap(marker, "youtube", "fetch playlist", "fetch playlist", err)
	}
	ctx = services.WithPlaylistID(ctx, snap.ID)
	summary.PlaylistID = snap.ID
	summary.Title = snap.Title
	summary.Channel = snap.ChannelName
	summary.VideoCount = snap.ItemCount

	vaultStore, err := vault.NewFSStore(cfg.Paths.VaultDir)
	if err != nil {
		return summary, snap, services.Wrap(services.ErrConfiguration, "vault", "open", "open vault", err)
	}
	renderer := render.New(render.WithDateLayout(cfg.Templates.DateFormat))
	engine := playlistsync.NewEngine(vaultStore, renderer, cfg.Paths.NotesFolder, logger)

	result, err := engine.Sync(ctx, snap)
	summary.Folder = result.Folder
	summary.IndexPath = result.IndexPath
	summary.WasUpdate = result.WasUpdate
	summary.IndexCreated = result.IndexCreated
	summary.Created = result.Created
	summary.Skipped = result.Skipped
	summary.Conflicts = result.Conflicts
	if result.CreatedPaths != nil {
		summary.CreatedPaths = result.CreatedPaths
	}
	if err != nil {
		if ctx.Err() != nil {
			return summary, snap, err
		}
		return summary, snap, services.Wrap(services.ErrStorage, "vault", "write notes", "write playlist notes", err)
	}
	return summary, snap, nil
}

func printSyncSummary(cmd *cobra.Command, s *syncSummary) {
	out := cmd.OutOrStdout()
	if s.WasUpdate {
		fmt.Fprintf(out, "Updated playlist %q: %d new, %d already present\n", s.Title, s.Created, s.Skipped)
	} else {
		fmt.Fprintf(out, "Created playlist %q with %d notes\n", s.Title, s.Created)
	}
	fmt.Fprintln(out, renderKeyValues([][2]string{
		{"Folder", s.Folder},
		{"Videos", fmt.Sprintf("%d", s.VideoCount)},
		{"Created", fmt.Sprintf("%d", s.Created)},
		{"Skipped", fmt.Sprintf("%d", s.Skipped)},
		{"Conflicts", fmt.Sprintf("%d", s.Conflicts)},
		{"Index created", yesNo(s.IndexCreated)},
		{"Run", s.RunID},
	}))
	if s.Conflicts > 0 {
		fmt.Fprintf(out, "%d video(s) skipped because a different note already uses the file name\n", s.Conflicts)
	}
}
