package testsupport

import (
	"context"
	"errors"
	"path"
	"sort"
	"strings"
	"sync"

	"ytvault/internal/vault"
)

// MemoryStore is an in-memory vault.Store that records the order of writes.
type MemoryStore struct {
	mu      sync.Mutex
	folders map[string]struct{}
	docs    map[string]string
	writes  []string
	reads   int

	// FailCreate, when set, is consulted before every create and its error
	// returned instead of performing the write.
	FailCreate func(p string) error
}

var _ vault.Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store whose root folder exists.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		folders: map[string]struct{}{"": {}},
		docs:    map[string]string{},
	}
}

func (s *MemoryStore) Exists(ctx context.Context, p string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p = vault.Join(p)
	_, isFolder := s.folders[p]
	_, isDoc := s.docs[p]
	return isFolder || isDoc, nil
}

func (s *MemoryStore) CreateFolder(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p = vault.Join(p)
	if err := s.checkCreate("create folder", p); err != nil {
		return err
	}
	s.folders[p] = struct{}{}
	s.writes = append(s.writes, p+"/")
	return nil
}

func (s *MemoryStore) CreateDocument(ctx context.Context, p, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p = vault.Join(p)
	if err := s.checkCreate("create document", p); err != nil {
		return err
	}
	s.docs[p] = text
	s.writes = append(s.writes, p)
	return nil
}

func (s *MemoryStore) checkCreate(op, p string) error {
	if s.FailCreate != nil {
		if err := s.FailCreate(p); err != nil {
			return err
		}
	}
	_, isFolder := s.folders[p]
	_, isDoc := s.docs[p]
	if isFolder || isDoc {
		return &vault.StoreError{Kind: vault.KindWriteConflict, Op: op, Path: p}
	}
	if _, ok := s.folders[parent(p)]; !ok {
		return &vault.StoreError{Kind: vault.KindIOFailure, Op: op, Path: p, Err: errors.New("parent folder missing")}
	}
	return nil
}

func (s *MemoryStore) ReadDocument(ctx context.Context, p string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	text, ok := s.docs[vault.Join(p)]
	if !ok {
		return "", &vault.StoreError{Kind: vault.KindIOFailure, Op: "read document", Path: p, Err: errors.New("no such document")}
	}
	return text, nil
}

func (s *MemoryStore) ListChildren(ctx context.Context, folder string) ([]vault.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	folder = vault.Join(folder)
	if _, ok := s.folders[folder]; !ok {
		return nil, &vault.StoreError{Kind: vault.KindIOFailure, Op: "list", Path: folder, Err: errors.New("no such folder")}
	}
	var entries []vault.Entry
	for p := range s.folders {
		if p != "" && parent(p) == folder {
			entries = append(entries, vault.Entry{Path: p, Folder: true})
		}
	}
	for p := range s.docs {
		if parent(p) == folder {
			entries = append(entries, vault.Entry{Path: p})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// Put seeds a document, creating any missing parent folders. It bypasses
// FailCreate and is not recorded in Writes.
func (s *MemoryStore) Put(p, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p = vault.Join(p)
	for _, prefix := range vault.Prefixes(parent(p)) {
		s.folders[prefix] = struct{}{}
	}
	s.docs[p] = text
}

// Document returns the text stored at p.
func (s *MemoryStore) Document(p string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.docs[vault.Join(p)]
	return text, ok
}

// Documents returns the paths of all documents under folder, sorted.
func (s *MemoryStore) Documents(folder string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	folder = vault.Join(folder)
	var out []string
	for p := range s.docs {
		if folder == "" || strings.HasPrefix(p, folder+"/") {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// Writes returns every successful create in order. Folders carry a trailing slash.
func (s *MemoryStore) Writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.writes...)
}

// Reads returns how many documents have been read.
func (s *MemoryStore) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func parent(p string) string {
	dir := path.Dir(p)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}
