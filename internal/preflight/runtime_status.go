package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ytvault/internal/config"
)

// CheckYouTubeFromConfig evaluates API status from config and connectivity.
func CheckYouTubeFromConfig(ctx context.Context, cfg *config.Config) Result {
	const name = "YouTube API"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if strings.TrimSpace(cfg.YouTube.APIKey) == "" {
		return Result{Name: name, Detail: "Missing API key (set youtube.api_key or YOUTUBE_API_KEY)"}
	}
	return CheckYouTube(ctx, cfg.YouTube.BaseURL, cfg.YouTube.APIKey)
}

// CheckNotesFolder reports whether the notes folder inside the vault is usable.
// A folder that does not exist yet passes because sync creates it.
func CheckNotesFolder(cfg *config.Config) Result {
	const name = "Notes folder"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	folder := strings.Trim(cfg.Paths.NotesFolder, "/")
	if folder == "" {
		return Result{Name: name, Passed: true, Detail: "vault root"}
	}
	full := filepath.Join(cfg.Paths.VaultDir, filepath.FromSlash(folder))
	if _, err := os.Stat(full); os.IsNotExist(err) {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", folder)}
	}
	check := CheckDirectoryAccess(name, full)
	check.Detail = strings.Replace(check.Detail, full, folder, 1)
	return check
}
