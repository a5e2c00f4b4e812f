// Package depfile reads the make style dependency files compilers write next to object files.
package depfile

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/zerr"
)

const cacheSize = 4096

var _ ports.DependencyReader = (*Reader)(nil)

// Parse returns the header names listed in a dependency file. Compilers emit one phony rule per header
// ("name.h:"), so every line ending in a colon names a header. Escaped blanks are unescaped.
func Parse(r io.Reader) ([]string, error) {
	var headers []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if !strings.HasSuffix(line, ":") {
			continue
		}
		name := strings.ReplaceAll(strings.TrimSuffix(line, ":"), `\ `, " ")
		if name == "" {
			continue
		}
		headers = append(headers, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to read dependency file")
	}

	return headers, nil
}

type cacheKey struct {
	path    string
	modTime time.Time
	size    int64
}

// Reader resolves dependency files to absolute header paths. Parsed files are cached until they
// change on disk.
type Reader struct {
	fs    ports.FileSystem
	cache *lru.Cache[cacheKey, []string]
}

// NewReader creates a new Reader.
func NewReader(fsys ports.FileSystem) (*Reader, error) {
	cache, err := lru.New[cacheKey, []string](cacheSize)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create dependency cache")
	}
	return &Reader{fs: fsys, cache: cache}, nil
}

// Headers returns the headers listed in depFile. Relative names are resolved against buildRoot,
// which is the directory the compiler ran in.
func (r *Reader) Headers(depFile, buildRoot string) ([]string, error) {
	info, err := r.fs.Stat(depFile)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to stat dependency file"), "path", depFile)
	}

	key := cacheKey{path: depFile, modTime: info.ModTime(), size: info.Size()}
	if headers, ok := r.cache.Get(key); ok {
		return resolve(headers, buildRoot), nil
	}

	f, err := r.fs.Open(depFile)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open dependency file"), "path", depFile)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	headers, err := Parse(f)
	if err != nil {
		return nil, zerr.With(err, "path", depFile)
	}

	r.cache.Add(key, headers)
	return resolve(headers, buildRoot), nil
}

func resolve(headers []string, buildRoot string) []string {
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		if !filepath.IsAbs(h) {
			h = filepath.Join(buildRoot, h)
		}
		out = append(out, filepath.Clean(h))
	}
	return out
}
