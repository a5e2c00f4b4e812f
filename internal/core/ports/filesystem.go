package ports

import (
	"io"
	"io/fs"
)

// FileSystem is the view of the file system the engine works through.
// All operations may fail with a transient I/O error.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Stat returns the file info for path. A missing file reports fs.ErrNotExist.
	Stat(path string) (fs.FileInfo, error)
	// MkdirAll creates path and all missing parents.
	MkdirAll(path string) error
	// Remove deletes a single file. Removing a missing file is not an error.
	Remove(path string) error
	// RemoveAll deletes path and everything below it.
	RemoveAll(path string) error
	// Open opens a file for reading.
	Open(path string) (io.ReadCloser, error)
}

// DependencyReader extracts the header files listed in a make style dependency file.
type DependencyReader interface {
	// Headers returns the header paths referenced by depFile, resolved against buildRoot.
	Headers(depFile, buildRoot string) ([]string, error)
}
