// Package fs provides file system adapters: the engine's file system view, source walking, glob
// resolution and hashing.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// alwaysSkip are directories never descended into.
var alwaysSkip = map[string]bool{
	".git": true,
	".jj":  true,
}

// Walker walks source folders.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file below root. Entries whose name or root relative path matches one of
// ignores are skipped, as are the directories in skipDirs (typically the build folder).
func (w *Walker) WalkFiles(root string, ignores []string, skipDirs ...string) iter.Seq[string] {
	skip := make(map[string]bool, len(skipDirs))
	for _, d := range skipDirs {
		skip[filepath.Clean(d)] = true
	}

	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && (alwaysSkip[d.Name()] || skip[filepath.Clean(path)] || w.ignored(root, path, ignores)) {
					return filepath.SkipDir
				}
				return nil
			}

			if w.ignored(root, path, ignores) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) ignored(root, path string, ignores []string) bool {
	name := filepath.Base(path)
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
		if matched, _ := filepath.Match(ignore, rel); matched {
			return true
		}
	}
	return false
}
