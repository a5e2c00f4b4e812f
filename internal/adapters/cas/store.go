// Package cas stores build info: the recipe fingerprint each target was last built with.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/zerr"
)

// StateFile is the build info file name, relative to the build root.
const StateFile = ".wave/build-info.json"

var _ ports.BuildInfoStore = (*Store)(nil)

// Store implements ports.BuildInfoStore using a flat JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.BuildInfo
}

// Open opens the store of the build folder at buildRoot.
func Open(buildRoot string) (*Store, error) {
	return NewStore(filepath.Join(buildRoot, StateFile))
}

// NewStore creates a new BuildInfoStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.BuildInfo),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read build info store"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal build info store"), "path", s.path)
	}

	return nil
}

// save writes the store through a temporary file so a crash never leaves it truncated.
// The caller must hold the write lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal build info store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for build info store")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return zerr.Wrap(err, "failed to write build info store")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return zerr.Wrap(err, "failed to replace build info store")
	}

	return nil
}

// Get retrieves the build info for a target. It returns nil when the target was never built.
func (s *Store) Get(target string) (*domain.BuildInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.cache[target]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

// Put stores the build info and persists the store.
func (s *Store) Put(info domain.BuildInfo) error {
	if info.Target == "" {
		return zerr.New("build info without target")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[info.Target] = info
	return s.save()
}
