package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver implements the InputResolver interface using filepath.Glob.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveInputs resolves the given patterns relative to root into sorted, unique file paths.
// A glob without matches contributes nothing; a literal path that does not exist is an error.
func (r *Resolver) ResolveInputs(inputs []string, root string) ([]string, error) {
	var result []string

	for _, input := range inputs {
		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, input)
		}

		if !isGlob(input) {
			if _, err := os.Stat(path); err != nil {
				if errors.Is(err, iofs.ErrNotExist) {
					return nil, zerr.With(zerr.New("input not found"), "path", path)
				}
				return nil, zerr.With(zerr.Wrap(err, "failed to stat input"), "path", path)
			}
			result = append(result, path)
			continue
		}

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", path)
		}
		result = append(result, matches...)
	}

	slices.Sort(result)
	return slices.Compact(result), nil
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}
