// Package diagnostics collects compiler diagnostics from the output of the rules of one sequence
// group. Output is buffered raw while the group runs and only parsed once every worker has joined.
package diagnostics

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Severity of a diagnostic.
type Severity uint8

const (
	// SeverityNote is an informational diagnostic.
	SeverityNote Severity = iota
	// SeverityWarning is a warning.
	SeverityWarning
	// SeverityError is an error.
	SeverityError
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// Diagnostic is a single parsed compiler message.
type Diagnostic struct {
	File     string
	Line     int
	Column   int
	Severity Severity
	Message  string
}

// String formats d the way gcc prints it.
func (d Diagnostic) String() string {
	loc := d.File
	if d.Line > 0 {
		loc += ":" + strconv.Itoa(d.Line)
	}
	if d.Column > 0 {
		loc += ":" + strconv.Itoa(d.Column)
	}
	return fmt.Sprintf("%s: %s: %s", loc, d.Severity, d.Message)
}

func compare(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.File, b.File),
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Column, b.Column),
		cmp.Compare(b.Severity, a.Severity),
		cmp.Compare(a.Message, b.Message),
	)
}

// gcc, clang and gas style: "file:line[:col]: [fatal ]error|warning|note: message".
var pattern = regexp.MustCompile(`^(.+?):(\d+):(?:(\d+):)?\s*(fatal error|error|warning|note|Error|Warning):\s*(.*)$`)

// Parse parses one output line. It reports false for lines that are not diagnostics.
func Parse(line string) (Diagnostic, bool) {
	m := pattern.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
	if m == nil {
		return Diagnostic{}, false
	}

	d := Diagnostic{File: m[1], Message: strings.TrimSpace(m[5])}
	d.Line, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		d.Column, _ = strconv.Atoi(m[3])
	}
	switch strings.ToLower(m[4]) {
	case "error", "fatal error":
		d.Severity = SeverityError
	case "warning":
		d.Severity = SeverityWarning
	default:
		d.Severity = SeverityNote
	}
	return d, true
}

// Buffer collects the raw output of a sequence group. It is safe for concurrent use.
type Buffer struct {
	mu    sync.Mutex
	lines []string
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Writer returns a writer feeding complete lines into the buffer. Use one writer per output stream
// so partial lines of concurrent streams never join. Close flushes a trailing partial line.
func (b *Buffer) Writer() io.WriteCloser {
	return &lineWriter{buf: b}
}

func (b *Buffer) add(line string) {
	b.mu.Lock()
	b.lines = append(b.lines, line)
	b.mu.Unlock()
}

// Flush parses the buffered output, returns the unique diagnostics in file order and empties the
// buffer. It must only be called once all writers of the group are done.
func (b *Buffer) Flush() []Diagnostic {
	b.mu.Lock()
	lines := b.lines
	b.lines = nil
	b.mu.Unlock()

	var out []Diagnostic
	for _, line := range lines {
		if d, ok := Parse(line); ok {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, compare)
	return slices.Compact(out)
}

type lineWriter struct {
	mu      sync.Mutex
	buf     *Buffer
	partial []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.partial = append(w.partial, p...)
	for {
		i := bytes.IndexByte(w.partial, '\n')
		if i < 0 {
			break
		}
		w.buf.add(string(w.partial[:i]))
		w.partial = w.partial[i+1:]
	}
	return len(p), nil
}

func (w *lineWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.partial) > 0 {
		w.buf.add(string(w.partial))
		w.partial = nil
	}
	return nil
}

// Count returns the number of diagnostics of each severity.
func Count(diags []Diagnostic) (errors, warnings int) {
	for _, d := range diags {
		switch d.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}

// Summary describes diags in one line, for example "2 errors, 1 warning". It is empty when there
// are no errors or warnings.
func Summary(diags []Diagnostic) string {
	errs, warns := Count(diags)
	var parts []string
	if errs > 0 {
		parts = append(parts, plural(errs, "error"))
	}
	if warns > 0 {
		parts = append(parts, plural(warns, "warning"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
