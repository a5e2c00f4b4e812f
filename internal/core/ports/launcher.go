// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/wave/internal/core/domain"
)

// Launcher starts recipe processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=launcher.go -destination=mocks/mock_launcher.go -package=mocks
type Launcher interface {
	// Launch runs cmd to completion, streaming its output to stdout and stderr.
	// It returns the process exit code. A process that could not be started reports
	// domain.LaunchFailureExitCode.
	Launch(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) (int, error)
}
