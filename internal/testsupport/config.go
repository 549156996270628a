package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"ytvault/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The vault directory exists; state and log directories are left for the code
// under test to create.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.YouTube.APIKey = "test-key"
	cfgVal.Paths.VaultDir = filepath.Join(base, "vault")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	if err := os.MkdirAll(cfgVal.Paths.VaultDir, 0o755); err != nil {
		t.Fatalf("mkdir vault dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPIKey sets the YouTube API key on the test config.
func WithAPIKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.YouTube.APIKey = key
	}
}

// WithYouTubeBaseURL points the test config at a stub API server.
func WithYouTubeBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.YouTube.BaseURL = url
	}
}

// WithPageSize overrides the playlistItems page size.
func WithPageSize(size int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.YouTube.PageSize = size
	}
}

// WithNotesFolder overrides the vault-relative notes folder.
func WithNotesFolder(folder string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.NotesFolder = folder
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.VaultDir)
}
