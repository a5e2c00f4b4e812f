package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wave/internal/adapters/fs"
)

func sourceTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("int x;\n"), 0o600))
	}
	return root
}

func TestResolver_ResolveInputs(t *testing.T) {
	root := sourceTree(t, "src/main.c", "src/led.c", "src/board.h", "lib/hal.c", "notes.txt")

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "glob",
			patterns: []string{"src/*.c"},
			want:     []string{"src/led.c", "src/main.c"},
		},
		{
			name:     "several patterns are merged and sorted",
			patterns: []string{"src/*.c", "lib/*.c"},
			want:     []string{"lib/hal.c", "src/led.c", "src/main.c"},
		},
		{
			name:     "literal and glob overlap once",
			patterns: []string{"src/main.c", "src/*.c", "src/main.c"},
			want:     []string{"src/led.c", "src/main.c"},
		},
		{
			name:     "glob without matches",
			patterns: []string{"src/*.cpp"},
			want:     nil,
		},
	}

	resolver := fs.NewResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := resolver.ResolveInputs(tt.patterns, root)
			require.NoError(t, err)

			var want []string
			for _, w := range tt.want {
				want = append(want, filepath.Join(root, w))
			}
			assert.Equal(t, want, resolved)
		})
	}
}

func TestResolver_ResolveInputs_AbsolutePath(t *testing.T) {
	root := sourceTree(t, "main.c")
	elsewhere := sourceTree(t, "hal.c")

	resolved, err := fs.NewResolver().ResolveInputs([]string{filepath.Join(elsewhere, "hal.c")}, root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(elsewhere, "hal.c")}, resolved)
}

func TestResolver_ResolveInputs_Errors(t *testing.T) {
	root := sourceTree(t)
	resolver := fs.NewResolver()

	_, err := resolver.ResolveInputs([]string{"["}, root)
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to glob path")

	_, err = resolver.ResolveInputs([]string{"missing.c"}, root)
	require.Error(t, err)
	assert.ErrorContains(t, err, "input not found")
}
