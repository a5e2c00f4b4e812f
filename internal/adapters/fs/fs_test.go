package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wave/internal/adapters/fs"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "main.c"))
	writeFile(t, filepath.Join(root, "src", "util.h"))
	writeFile(t, filepath.Join(root, "src", "notes.txt"))
	writeFile(t, filepath.Join(root, ".git", "HEAD"))
	writeFile(t, filepath.Join(root, "build", "debug", "main.o"))
	writeFile(t, filepath.Join(root, "vendor", "lib.c"))

	walker := fs.NewWalker()
	got := slices.Collect(walker.WalkFiles(root, []string{"*.txt", "vendor"}, filepath.Join(root, "build")))
	slices.Sort(got)

	assert.Equal(t, []string{
		filepath.Join(root, "src", "main.c"),
		filepath.Join(root, "src", "util.h"),
	}, got)
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.c", "b.c", "c.c"} {
		writeFile(t, filepath.Join(root, name))
	}

	var seen int
	for range fs.NewWalker().WalkFiles(root, nil) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestFileSystem(t *testing.T) {
	root := t.TempDir()
	fsys := fs.NewFileSystem()

	dir := filepath.Join(root, "a", "b")
	require.NoError(t, fsys.MkdirAll(dir))

	file := filepath.Join(dir, "out.o")
	writeFile(t, file)

	info, err := fsys.Stat(file)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), info.ModTime(), time.Minute)

	rc, err := fsys.Open(file)
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	require.NoError(t, fsys.Remove(file))
	require.NoError(t, fsys.Remove(file), "removing a missing file succeeds")

	_, err = fsys.Stat(file)
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, fsys.RemoveAll(filepath.Join(root, "a")))
	_, err = fsys.Stat(dir)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestHasher_Fingerprint(t *testing.T) {
	h := fs.NewHasher()

	a := h.Fingerprint([]string{"gcc -c a.c", "echo done"})
	assert.Len(t, a, 16)
	assert.Equal(t, a, h.Fingerprint([]string{"gcc -c a.c", "echo done"}))
	assert.NotEqual(t, a, h.Fingerprint([]string{"gcc -c a.c echo done"}))
	assert.NotEqual(t, a, h.Fingerprint([]string{"echo done", "gcc -c a.c"}))
}

func TestHasher_ComputeFileHash(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.c")
	b := filepath.Join(root, "b.c")
	writeFile(t, a)
	writeFile(t, b)

	h := fs.NewHasher()
	ha, err := h.ComputeFileHash(a)
	require.NoError(t, err)
	hb, err := h.ComputeFileHash(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)

	_, err = h.ComputeFileHash(filepath.Join(root, "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open file")
}
