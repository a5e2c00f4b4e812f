package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"

	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*FileSystem)(nil)

// FileSystem implements ports.FileSystem on the local disk.
type FileSystem struct{}

// NewFileSystem creates a new FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// Stat returns the file info for path.
func (f *FileSystem) Stat(path string) (iofs.FileInfo, error) {
	return os.Stat(path)
}

// MkdirAll creates path and its parents.
func (f *FileSystem) MkdirAll(path string) error {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", path)
	}
	return nil
}

// Remove deletes a file. A missing file is not an error.
func (f *FileSystem) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to remove file"), "path", path)
	}
	return nil
}

// RemoveAll deletes path recursively.
func (f *FileSystem) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove directory"), "path", path)
	}
	return nil
}

// Open opens path for reading.
func (f *FileSystem) Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return nil, err
	}
	return file, nil
}
