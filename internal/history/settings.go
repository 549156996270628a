package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const keyLastPlaylistURL = "last_playlist_url"

// SetLastPlaylistURL remembers the playlist reference most recently synced.
func (s *Store) SetLastPlaylistURL(ctx context.Context, ref string) error {
	return s.setSetting(ctx, keyLastPlaylistURL, ref)
}

// LastPlaylistURL returns the remembered playlist reference, or "" when none is stored.
func (s *Store) LastPlaylistURL(ctx context.Context) (string, error) {
	return s.setting(ctx, keyLastPlaylistURL)
}

func (s *Store) setSetting(ctx context.Context, key, value string) error {
	_, err := s.exec(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("store setting %s: %w", key, err)
	}
	return nil
}

func (s *Store) setting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read setting %s: %w", key, err)
	}
	return value, nil
}
