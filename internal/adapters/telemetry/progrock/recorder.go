// Package progrock provides the Progrock implementation of the rule progress recorder.
package progrock

import (
	"context"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/wave/internal/core/ports"
)

var _ ports.Recorder = (*Recorder)(nil)

// Recorder implements ports.Recorder using the progrock library. Each rule is one vertex,
// identified by the digest of its name.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	closeOnce sync.Once
	closeErr  error
}

// New creates a new Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts recording a new vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := r.rec.Vertex(digest.FromString(name), name)
	return ctx, &Vertex{vertex: v}
}

// Close flushes and closes the recording session. Only the first call closes the writer.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		r.closeErr = r.w.Close()
	})
	return r.closeErr
}
