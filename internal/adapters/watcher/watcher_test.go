package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wave/internal/adapters/fs"
	"go.trai.ch/wave/internal/adapters/watcher"
	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/wave/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestWatcher_ReportsSourceChangesOnly(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	build := filepath.Join(root, "build")
	require.NoError(t, os.MkdirAll(src, 0o750))
	require.NoError(t, os.MkdirAll(build, 0o750))

	w, err := watcher.NewWatcher(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, w.Start(ctx, root, []string{build}))

	require.NoError(t, os.WriteFile(filepath.Join(build, "main.o"), []byte("obj"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "main.c"), []byte("int main;"), 0o600))

	for event := range w.Events() {
		assert.NotEqual(t, filepath.Join(build, "main.o"), event.Path)
		if event.Path == filepath.Join(src, "main.c") {
			return
		}
	}
	t.Fatal("no event for the source file")
}

func TestChangeFilter(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "main.c")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o600))

	f := watcher.NewChangeFilter(fs.NewHasher())
	write := ports.WatchEvent{Path: path, Operation: ports.OpWrite}

	assert.True(t, f.Changed(write), "first sighting is a change")
	assert.False(t, f.Changed(write), "same content is not a change")

	require.NoError(t, os.WriteFile(path, []byte("b"), 0o600))
	assert.True(t, f.Changed(write))

	assert.True(t, f.Changed(ports.WatchEvent{Path: path, Operation: ports.OpRemove}))
	assert.True(t, f.Changed(write), "content is rehashed after a removal")
}

func TestChangeFilter_HashError(t *testing.T) {
	ctrl := gomock.NewController(t)
	hasher := mocks.NewMockHasher(ctrl)
	hasher.EXPECT().ComputeFileHash("/gone.c").Return(uint64(0), os.ErrNotExist).Times(2)

	f := watcher.NewChangeFilter(hasher)
	ev := ports.WatchEvent{Path: "/gone.c", Operation: ports.OpWrite}
	assert.True(t, f.Changed(ev))
	assert.True(t, f.Changed(ev))
}
