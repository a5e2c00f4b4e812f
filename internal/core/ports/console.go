package ports

import "io"

// Console is the thread safe, line oriented build transcript.
//
//go:generate go run go.uber.org/mock/mockgen -source=console.go -destination=mocks/mock_console.go -package=mocks
type Console interface {
	// ToConsole prints a line to the transcript.
	ToConsole(text string)
	// Stream opens a pair of output streams labelled with name.
	Stream(name string) RuleStream
}

// RuleStream carries the raw output of a rule's processes.
type RuleStream interface {
	Stdout() io.Writer
	Stderr() io.Writer
	// Close flushes any partial line.
	Close() error
}
