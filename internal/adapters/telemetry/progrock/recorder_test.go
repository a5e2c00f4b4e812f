package progrock_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vprogrock "github.com/vito/progrock"
	"go.trai.ch/wave/internal/adapters/telemetry/progrock"
	"go.trai.ch/zerr"
)

// captureWriter keeps the latest state of every vertex.
type captureWriter struct {
	mu       sync.Mutex
	vertexes map[string]*vprogrock.Vertex
	logs     int
}

func (w *captureWriter) WriteStatus(update *vprogrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, v := range update.Vertexes {
		w.vertexes[v.Name] = v
	}
	w.logs += len(update.Logs)
	return nil
}

func (w *captureWriter) Close() error { return nil }

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
	require.NoError(t, recorder.Close())
	require.NoError(t, recorder.Close(), "closing twice")
}

func TestRecorder_Vertices(t *testing.T) {
	w := &captureWriter{vertexes: make(map[string]*vprogrock.Vertex)}
	recorder := progrock.NewRecorder(w)

	_, built := recorder.Record(context.Background(), "src/main.o")
	_, err := built.Stdout().Write([]byte("compiling\n"))
	require.NoError(t, err)
	built.Complete(nil)

	_, fresh := recorder.Record(context.Background(), "src/util.o")
	fresh.Cached()
	fresh.Complete(nil)

	_, failed := recorder.Record(context.Background(), "app.elf")
	failed.Complete(zerr.New("link failed"))

	require.NoError(t, recorder.Close())

	w.mu.Lock()
	defer w.mu.Unlock()

	require.Contains(t, w.vertexes, "src/main.o")
	assert.NotNil(t, w.vertexes["src/main.o"].Completed)
	assert.Nil(t, w.vertexes["src/main.o"].Error)

	require.Contains(t, w.vertexes, "src/util.o")
	assert.True(t, w.vertexes["src/util.o"].Cached)

	require.Contains(t, w.vertexes, "app.elf")
	require.NotNil(t, w.vertexes["app.elf"].Error)
	assert.Contains(t, *w.vertexes["app.elf"].Error, "link failed")

	assert.Positive(t, w.logs)
}
