package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Validate ensures the configuration is structurally usable. Credentials are
// checked separately by RequireSync because not every command needs them.
func (c *Config) Validate() error {
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if strings.Contains(c.Paths.NotesFolder, "..") {
		return errors.New("paths.notes_folder must stay inside the vault")
	}
	return nil
}

func (c *Config) validateYouTube() error {
	if c.YouTube.PageSize < 1 || c.YouTube.PageSize > MaxPageSize {
		return fmt.Errorf("youtube.page_size must be between 1 and %d", MaxPageSize)
	}
	if c.YouTube.RequestTimeout < 0 {
		return errors.New("youtube.request_timeout must be positive")
	}
	parsed, err := url.Parse(c.YouTube.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("youtube.base_url %q is not an absolute url", c.YouTube.BaseURL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

// RequireSync reports whether the settings needed to sync a playlist are present.
func (c *Config) RequireSync() error {
	if c.YouTube.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/ytvault/config.toml"
		}
		return fmt.Errorf("youtube.api_key is required. Set YOUTUBE_API_KEY env var or edit %s (create with 'ytvault config init')", defaultPath)
	}
	if c.Paths.VaultDir == "" {
		return errors.New("paths.vault_dir must be set to the vault directory")
	}
	info, err := os.Stat(c.Paths.VaultDir)
	if err != nil {
		return fmt.Errorf("paths.vault_dir %q: %w", c.Paths.VaultDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("paths.vault_dir %q is not a directory", c.Paths.VaultDir)
	}
	return nil
}
