package watcher

import (
	"sync"

	"go.trai.ch/wave/internal/core/ports"
)

// ChangeFilter drops events for files whose content did not change, such as an editor saving an
// unmodified buffer.
type ChangeFilter struct {
	hasher ports.Hasher

	mu     sync.Mutex
	hashes map[string]uint64
}

// NewChangeFilter creates a new ChangeFilter.
func NewChangeFilter(hasher ports.Hasher) *ChangeFilter {
	return &ChangeFilter{
		hasher: hasher,
		hashes: make(map[string]uint64),
	}
}

// Changed reports whether event changes the content of its path since the last call. Removals and
// files that cannot be hashed always count as changes.
func (f *ChangeFilter) Changed(event ports.WatchEvent) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if event.Operation == ports.OpRemove || event.Operation == ports.OpRename {
		delete(f.hashes, event.Path)
		return true
	}

	hash, err := f.hasher.ComputeFileHash(event.Path)
	if err != nil {
		delete(f.hashes, event.Path)
		return true
	}

	if prev, ok := f.hashes[event.Path]; ok && prev == hash {
		return false
	}
	f.hashes[event.Path] = hash
	return true
}
