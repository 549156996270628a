package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytvault/internal/config"
	"ytvault/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	server     *testsupport.YouTubeServer
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, playlists ...testsupport.FakePlaylist) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("YTVAULT_VAULT_DIR", "")
	t.Chdir(base)

	server := testsupport.NewYouTubeServer(t, "test-key", playlists...)
	cfg := testsupport.NewConfig(t, testsupport.WithYouTubeBaseURL(server.URL))

	configPath := filepath.Join(homeDir, ".config", "ytvault", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		server:     server,
		configPath: configPath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	return runCLIWithInput(t, args, configPath, "")
}

func runCLIWithInput(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
vault_dir = %q
notes_folder = %q
state_dir = %q
log_dir = %q

[youtube]
api_key = %q
base_url = %q
page_size = %d

[logging]
level = "error"
`,
		cfg.Paths.VaultDir,
		cfg.Paths.NotesFolder,
		cfg.Paths.StateDir,
		cfg.Paths.LogDir,
		cfg.YouTube.APIKey,
		cfg.YouTube.BaseURL,
		cfg.YouTube.PageSize,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
