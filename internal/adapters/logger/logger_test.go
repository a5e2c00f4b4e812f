package logger_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"

	"go.trai.ch/wave/internal/adapters/logger"
)

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(lg *logger.Logger)
		level string
		want  string
	}{
		{
			name:  "info",
			log:   func(lg *logger.Logger) { lg.Info("src/main.c is stale: target missing") },
			level: "INFO",
			want:  "src/main.c is stale: target missing",
		},
		{
			name:  "warn",
			log:   func(lg *logger.Logger) { lg.Warn("no source files found") },
			level: "WARN",
			want:  "no source files found",
		},
		{
			name:  "error",
			log:   func(lg *logger.Logger) { lg.Error(os.ErrPermission) },
			level: "ERROR",
			want:  "permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(logger.NewWithWriter(&buf))

			out := buf.String()
			assert.Contains(t, out, tt.level)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestNew_WritesToStderr(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	original := os.Stderr
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = original })

	logger.New().Info("wave started")
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.Contains(t, string(out), "wave started")
}

func TestLogger_ErrorMetadata(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Error(zerr.With(zerr.With(zerr.New("rule failed"), "target", "src/main.o"), "group", 2))

	out := buf.String()
	assert.Contains(t, out, "rule failed")
	assert.Contains(t, out, "target=src/main.o")
	assert.Contains(t, out, "group=2")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("group=")), bytes.Index(buf.Bytes(), []byte("target=")),
		"attributes are sorted by key")
}

func TestLogger_SetQuiet(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.SetQuiet(true)
	lg.Info("hidden")
	lg.Warn("shown")

	lg.SetQuiet(false)
	lg.Info("visible again")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "visible again")
}

func TestLogger_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	lg := logger.NewWithWriter(&first)

	lg.SetOutput(&second)
	lg.Info("moved")

	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), "moved")
}
