package preflight

import (
	"context"

	"ytvault/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config. The remote
// check is skipped when remote is false.
func RunAll(ctx context.Context, cfg *config.Config, remote bool) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Vault directory", cfg.Paths.VaultDir),
		CheckNotesFolder(cfg),
		CheckWritableLocation("State directory", cfg.Paths.StateDir),
	}
	if remote {
		results = append(results, CheckYouTubeFromConfig(ctx, cfg))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
