// Package console provides the line buffered build transcript.
package console

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/wave/internal/core/ports"
)

var _ ports.Console = (*Console)(nil)

// Console implements ports.Console. Process output is written line by line with a "[name]" prefix,
// so output of rules running in parallel never interleaves within a line.
type Console struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu sync.Mutex
}

// New creates a Console. Nil writers default to the process streams.
func New(stdout, stderr io.Writer) *Console {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Console{
		stdout: stdout,
		stderr: stderr,
		output: termenv.NewOutput(stdout, termenv.WithProfile(colorProfile())),
	}
}

// colorProfile returns the color profile based on environment.
func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// ToConsole prints text as one or more lines.
func (c *Console) ToConsole(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, _ = io.WriteString(c.stdout, text)
}

// Stream opens a pair of output streams labelled with name.
func (c *Console) Stream(name string) ports.RuleStream {
	s := &stream{console: c, name: name}
	s.out = &lineWriter{stream: s, dst: c.stdout}
	s.err = &lineWriter{stream: s, dst: c.stderr, isErr: true}
	return s
}

func (c *Console) printLine(name string, line []byte, dst io.Writer, isErr bool) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}

	style := c.output.String(fmt.Sprintf("[%s]", name)).Faint()
	if isErr {
		style = style.Foreground(termenv.ANSIRed)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(dst, "%s %s\n", style.String(), line)
}

type stream struct {
	console *Console
	name    string
	out     *lineWriter
	err     *lineWriter
}

func (s *stream) Stdout() io.Writer { return s.out }
func (s *stream) Stderr() io.Writer { return s.err }

// Close flushes partial lines.
func (s *stream) Close() error {
	s.out.flush()
	s.err.flush()
	return nil
}

// lineWriter buffers writes and prints complete lines.
type lineWriter struct {
	stream *stream
	dst    io.Writer
	isErr  bool

	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		idx := bytes.IndexByte(w.buf.Bytes(), '\n')
		if idx < 0 {
			break
		}
		line := w.buf.Next(idx + 1)
		w.stream.console.printLine(w.stream.name, line, w.dst, w.isErr)
	}
	return len(p), nil
}

func (w *lineWriter) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.stream.console.printLine(w.stream.name, w.buf.Bytes(), w.dst, w.isErr)
		w.buf.Reset()
	}
}
