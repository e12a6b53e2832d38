package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/deckwork/internal/core/domain"
	"github.com/custodia-labs/deckwork/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.TimestampFetcher = (*Store)(nil)
	_ driven.ContentFetcher   = (*Store)(nil)
	_ driven.SlideScanner     = (*Store)(nil)
)

// slideNamespace scopes slide ids so they never collide with other SHA1 uuids.
var slideNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("deckwork:slide"))

// Store is the local filesystem adapter.
type Store struct{}

// NewStore creates a filesystem store.
func NewStore() *Store {
	return &Store{}
}

// SlideDir returns the slide directory of a project.
func (s *Store) SlideDir(root string) string {
	return filepath.Join(ResolvePath(root), domain.SlideDirName)
}

// ScanSlides returns the .svg files of the slide directory sorted by name.
// A missing slide directory yields no slides.
func (s *Store) ScanSlides(ctx context.Context, root string) ([]domain.Slide, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := s.SlideDir(root)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read slide dir %s: %w: %v", dir, domain.ErrIO, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".svg") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	slides := make([]domain.Slide, len(names))
	for i, name := range names {
		slides[i] = domain.Slide{
			ID:    SlideID(filepath.Join(domain.SlideDirName, name)),
			Path:  filepath.Join(dir, name),
			Index: i,
		}
	}
	return slides, nil
}

// FetchTimestamp returns the modification time of a file.
func (s *Store) FetchTimestamp(ctx context.Context, path string) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, mapError(path, err)
	}
	return info.ModTime(), nil
}

// FetchContent reads a file as text.
func (s *Store) FetchContent(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", mapError(path, err)
	}
	return string(data), nil
}

// SlideID derives a stable slide id from its path relative to the project.
func SlideID(relPath string) string {
	return uuid.NewSHA1(slideNamespace, []byte(filepath.ToSlash(relPath))).String()
}

// ResolvePath converts a file:// URI to a local path. Bare paths pass
// through unchanged.
func ResolvePath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		return strings.TrimPrefix(uri, "file://")
	}
	return uri
}

func mapError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %v", path, domain.ErrIO, err)
}
