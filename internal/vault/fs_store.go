package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"ytvault/internal/fileutil"
)

// FSStore is a Store backed by a directory on the local filesystem.
type FSStore struct {
	root string
}

var _ Store = (*FSStore)(nil)

// NewFSStore returns a store rooted at dir. The directory must exist.
func NewFSStore(dir string) (*FSStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("vault directory required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("inspect vault directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault directory %q is not a directory", dir)
	}
	return &FSStore{root: dir}, nil
}

// Root returns the vault directory.
func (s *FSStore) Root() string {
	return s.root
}

func (s *FSStore) resolve(op, p string) (string, error) {
	cleaned := path.Clean("/" + strings.TrimSpace(p))
	if cleaned != "/"+strings.Trim(strings.TrimSpace(p), "/") {
		return "", &StoreError{Kind: KindIOFailure, Op: op, Path: p, Err: errors.New("path escapes vault root")}
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(cleaned, "/"))), nil
}

func (s *FSStore) Exists(ctx context.Context, p string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	target, err := s.resolve("exists", p)
	if err != nil {
		return false, err
	}
	ok, err := fileutil.Exists(target)
	if err != nil {
		return false, ioFailure("exists", p, err)
	}
	return ok, nil
}

func (s *FSStore) CreateFolder(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.resolve("create folder", p)
	if err != nil {
		return err
	}
	if err := os.Mkdir(target, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return conflict("create folder", p)
		}
		return ioFailure("create folder", p, err)
	}
	return nil
}

func (s *FSStore) CreateDocument(ctx context.Context, p, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.resolve("create document", p)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileExclusive(target, []byte(text), 0o644); err != nil {
		if errors.Is(err, fileutil.ErrExists) {
			return conflict("create document", p)
		}
		return ioFailure("create document", p, err)
	}
	return nil
}

func (s *FSStore) ReadDocument(ctx context.Context, p string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	target, err := s.resolve("read document", p)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return "", ioFailure("read document", p, err)
	}
	return string(data), nil
}

func (s *FSStore) ListChildren(ctx context.Context, folder string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := s.resolve("list", folder)
	if err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(target)
	if err != nil {
		return nil, ioFailure("list", folder, err)
	}
	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entries = append(entries, Entry{
			Path:   Join(folder, de.Name()),
			Folder: de.IsDir(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
