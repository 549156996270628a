package playlistsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ytvault/internal/logging"
	"ytvault/internal/render"
	"ytvault/internal/vault"
	"ytvault/internal/youtube"
)

var nameConflict = logging.Event{
	Type:   "item_name_conflict",
	Impact: "video note not created",
	Hint:   "rename or remove the existing note and sync again",
}

// Result summarizes one sync of a snapshot into the vault.
type Result struct {
	Folder    string
	IndexPath string
	// WasUpdate is true when the playlist folder existed before the run.
	WasUpdate    bool
	IndexCreated bool
	Created      int
	Skipped      int
	// Conflicts counts items whose target file name was already taken by a
	// note that does not carry the item's video ID. Those items are left alone.
	Conflicts    int
	CreatedPaths []string
}

// Engine writes snapshots into a vault.
type Engine struct {
	store    vault.Store
	renderer *render.Renderer
	root     string
	logger   *slog.Logger
}

// NewEngine returns an engine that writes playlist folders under root, a
// vault-relative folder that may be empty.
func NewEngine(store vault.Store, renderer *render.Renderer, root string, logger *slog.Logger) *Engine {
	if renderer == nil {
		renderer = render.New()
	}
	return &Engine{
		store:    store,
		renderer: renderer,
		root:     vault.Join(root),
		logger:   logging.NewComponentLogger(logger, "sync"),
	}
}

// FolderFor returns the vault-relative folder a snapshot is written to.
func (e *Engine) FolderFor(snap *youtube.Snapshot) string {
	return vault.Join(e.root, render.PlaylistName(snap))
}

// Sync creates the playlist folder, the index note when it is absent, and a
// note for every item whose video ID is not already present, in playlist
// order. A failed write stops the run; notes written before it stay in place
// and are picked up as existing by the next run.
func (e *Engine) Sync(ctx context.Context, snap *youtube.Snapshot) (Result, error) {
	if snap == nil {
		return Result{}, errors.New("sync: nil snapshot")
	}
	logger := logging.WithContext(ctx, e.logger)

	folder := e.FolderFor(snap)
	result := Result{
		Folder:    folder,
		IndexPath: vault.Join(folder, render.IndexFileName(snap)),
	}

	wasUpdate, err := e.store.Exists(ctx, folder)
	if err != nil {
		return result, fmt.Errorf("check playlist folder: %w", err)
	}
	result.WasUpdate = wasUpdate

	if err := e.ensureFolder(ctx, folder); err != nil {
		return result, err
	}

	existing, err := ScanExisting(ctx, e.store, folder)
	if err != nil {
		return result, fmt.Errorf("scan existing notes: %w", err)
	}
	logger.Debug("scanned playlist folder",
		logging.Path(folder),
		logging.Int("existing_items", len(existing)),
	)

	created, err := e.createIfAbsent(ctx, result.IndexPath, func() string { return e.renderer.Index(snap) })
	if err != nil {
		return result, fmt.Errorf("write index note: %w", err)
	}
	result.IndexCreated = created

	for _, item := range snap.Items {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if existing.Has(item.VideoID) {
			result.Skipped++
			continue
		}
		path := vault.Join(folder, render.ItemFileName(item))
		created, err := e.createIfAbsent(ctx, path, func() string { return e.renderer.Item(snap, item) })
		if err != nil {
			return result, fmt.Errorf("write note for video %s: %w", item.VideoID, err)
		}
		if !created {
			result.Conflicts++
			logging.Warn(logger, nameConflict, "note name already taken by another note",
				logging.Path(path),
				logging.VideoID(item.VideoID),
			)
			continue
		}
		existing[item.VideoID] = struct{}{}
		result.Created++
		result.CreatedPaths = append(result.CreatedPaths, path)
		logger.Debug("created video note", logging.Path(path))
	}

	logger.Info("playlist synced",
		logging.String(logging.FieldEventType, "sync_complete"),
		logging.Path(folder),
		logging.Bool("was_update", result.WasUpdate),
		logging.Bool("index_created", result.IndexCreated),
		logging.Int("created", result.Created),
		logging.Int("skipped", result.Skipped),
		logging.Int("conflicts", result.Conflicts),
	)
	return result, nil
}

// ensureFolder creates each missing segment of folder, outermost first.
func (e *Engine) ensureFolder(ctx context.Context, folder string) error {
	for _, segment := range vault.Prefixes(folder) {
		exists, err := e.store.Exists(ctx, segment)
		if err != nil {
			return fmt.Errorf("check folder %q: %w", segment, err)
		}
		if exists {
			continue
		}
		if err := e.store.CreateFolder(ctx, segment); err != nil && !errors.Is(err, vault.ErrWriteConflict) {
			return fmt.Errorf("create folder %q: %w", segment, err)
		}
	}
	return nil
}

// createIfAbsent writes the rendered document unless something already exists
// at path. It reports whether the document was written.
func (e *Engine) createIfAbsent(ctx context.Context, path string, text func() string) (bool, error) {
	exists, err := e.store.Exists(ctx, path)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := e.store.CreateDocument(ctx, path, text()); err != nil {
		if errors.Is(err, vault.ErrWriteConflict) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
