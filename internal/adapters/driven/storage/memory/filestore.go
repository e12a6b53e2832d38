package memory

import (
	"context"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/ports/driven"
)

// Ensure FileStore implements the interfaces.
var (
	_ driven.TimestampFetcher = (*FileStore)(nil)
	_ driven.ContentFetcher   = (*FileStore)(nil)
	_ driven.SlideScanner     = (*FileStore)(nil)
)

type memFile struct {
	content string
	modTime time.Time
}

// FileStore is an in-memory slide project used for testing.
// Paths are slash-separated; slides live under <root>/svg_output.
type FileStore struct {
	mu    sync.RWMutex
	files map[string]memFile
}

// NewFileStore creates an empty file store.
func NewFileStore() *FileStore {
	return &FileStore{files: make(map[string]memFile)}
}

// Write creates or replaces a file.
func (s *FileStore) Write(p, content string, modTime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[p] = memFile{content: content, modTime: modTime}
}

// Remove deletes a file.
func (s *FileStore) Remove(p string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, p)
}

// FetchTimestamp returns the modification time of a file.
func (s *FileStore) FetchTimestamp(_ context.Context, p string) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[p]
	if !ok {
		return time.Time{}, domain.ErrNotFound
	}
	return f.modTime, nil
}

// FetchContent returns the content of a file.
func (s *FileStore) FetchContent(_ context.Context, p string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[p]
	if !ok {
		return "", domain.ErrNotFound
	}
	return f.content, nil
}

// SlideDir returns the slide directory of root.
func (s *FileStore) SlideDir(root string) string {
	return path.Join(root, domain.SlideDirName)
}

// ScanSlides lists the .svg files directly under the slide directory,
// sorted by name. The file path doubles as the slide id.
func (s *FileStore) ScanSlides(_ context.Context, root string) ([]domain.Slide, error) {
	dir := s.SlideDir(root) + "/"

	s.mu.RLock()
	var names []string
	for p := range s.files {
		rest, ok := strings.CutPrefix(p, dir)
		if !ok || strings.Contains(rest, "/") || !strings.EqualFold(path.Ext(rest), ".svg") {
			continue
		}
		names = append(names, rest)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	slides := make([]domain.Slide, len(names))
	for i, name := range names {
		slides[i] = domain.Slide{ID: dir + name, Path: dir + name, Index: i}
	}
	return slides, nil
}
