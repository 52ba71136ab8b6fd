package gallery

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/inkplot/inkplot/pkg/errors"
)

// DefaultDir returns the default gallery data directory, honoring
// XDG_DATA_HOME and falling back to ~/.local/share/inkplot/gallery.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "inkplot", "gallery"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "resolve home directory")
	}
	return filepath.Join(home, ".local", "share", "inkplot", "gallery"), nil
}

// FileStore keeps artwork metadata as JSON documents in a directory,
// one file per artwork.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a file-based store. If dir is empty the default
// data directory is used.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create gallery directory %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *FileStore) Put(ctx context.Context, a *Artwork) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal artwork %s", a.ID)
	}
	if err := os.WriteFile(s.path(a.ID), data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write artwork %s", a.ID)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Artwork, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeArtworkNotFound, "artwork not found: %s", id)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read artwork %s", id)
	}
	var a Artwork
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse artwork %s", id)
	}
	return &a, nil
}

func (s *FileStore) List(ctx context.Context) ([]*Artwork, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read gallery directory")
	}

	var artworks []*Artwork
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var a Artwork
		if err := json.Unmarshal(data, &a); err != nil || a.ID == "" {
			continue
		}
		artworks = append(artworks, &a)
	}

	sort.Slice(artworks, func(i, j int) bool {
		return artworks[i].CreatedAt.After(artworks[j].CreatedAt)
	})
	return artworks, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInternal, err, "remove artwork %s", id)
	}
	return nil
}

func (s *FileStore) Close(ctx context.Context) error { return nil }

var _ Store = (*FileStore)(nil)

// artifactDir stores rendered artifact bytes as <id>.<format> files.
type artifactDir struct {
	dir string
}

func newArtifactDir(dir string) (*artifactDir, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	dir = filepath.Join(dir, "artifacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create artifact directory %s", dir)
	}
	return &artifactDir{dir: dir}, nil
}

func (d *artifactDir) path(id, format string) string {
	return filepath.Join(d.dir, id+"."+format)
}

func (d *artifactDir) write(id, format string, data []byte) error {
	if err := os.WriteFile(d.path(id, format), data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s artifact for %s", format, id)
	}
	return nil
}

func (d *artifactDir) read(id, format string) ([]byte, error) {
	data, err := os.ReadFile(d.path(id, format))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "missing %s artifact for %s", format, id)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s artifact for %s", format, id)
	}
	return data, nil
}

func (d *artifactDir) remove(id string, formats []string) {
	for _, format := range formats {
		os.Remove(d.path(id, format))
	}
}
