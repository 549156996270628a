package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeYouTube()
	c.normalizeTemplates()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.VaultDir) == "" {
		if value, ok := os.LookupEnv("YTVAULT_VAULT_DIR"); ok {
			c.Paths.VaultDir = value
		}
	}
	var err error
	if c.Paths.VaultDir, err = expandPath(strings.TrimSpace(c.Paths.VaultDir)); err != nil {
		return fmt.Errorf("paths.vault_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	// notes_folder is vault-relative and slash separated.
	folder := strings.ReplaceAll(strings.TrimSpace(c.Paths.NotesFolder), "\\", "/")
	c.Paths.NotesFolder = strings.Trim(folder, "/")
	return nil
}

func (c *Config) normalizeYouTube() {
	if c.YouTube.APIKey == "" {
		if value, ok := os.LookupEnv("YOUTUBE_API_KEY"); ok {
			c.YouTube.APIKey = value
		}
	}
	c.YouTube.APIKey = strings.TrimSpace(c.YouTube.APIKey)
	c.YouTube.BaseURL = strings.TrimRight(strings.TrimSpace(c.YouTube.BaseURL), "/")
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = defaultYouTubeBaseURL
	}
	if c.YouTube.PageSize == 0 {
		c.YouTube.PageSize = defaultPageSize
	}
	if c.YouTube.RequestTimeout == 0 {
		c.YouTube.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeTemplates() {
	c.Templates.DateFormat = strings.TrimSpace(c.Templates.DateFormat)
	if c.Templates.DateFormat == "" {
		c.Templates.DateFormat = defaultDateFormat
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
