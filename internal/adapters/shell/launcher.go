// Package shell launches recipe processes.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/wave/internal/engine/expander"
	"go.trai.ch/zerr"
)

var _ ports.Launcher = (*Launcher)(nil)

// Launcher implements ports.Launcher using os/exec. Recipes are tokenised with shell quoting rules
// and run directly, without a shell.
type Launcher struct {
	baseEnv func() []string
}

// NewLauncher creates a new Launcher that inherits the process environment.
func NewLauncher() *Launcher {
	return &Launcher{baseEnv: os.Environ}
}

// Launch runs cmd and waits for it. Process output is copied to stdout and stderr.
//
// A recipe that cannot be started writes "Failed to execute" and the recipe to stdout and
// reports domain.LaunchFailureExitCode.
func (l *Launcher) Launch(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) (int, error) {
	name, args, err := expander.Split(cmd.Line)
	if err != nil {
		return l.launchFailure(cmd, stdout, err)
	}

	// The environment is merged as: system base, then the build environment.
	env := resolveEnvironment(l.baseEnv(), cmd.Env)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	proc := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command
	if len(proc.Args) > 0 {
		proc.Args[0] = name
	}
	proc.Dir = cmd.Dir
	proc.Env = env
	proc.Stdout = stdout
	proc.Stderr = stderr

	if err := proc.Start(); err != nil {
		return l.launchFailure(cmd, stdout, err)
	}

	if err := proc.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return -1, zerr.With(zerr.Wrap(ctxErr, "command interrupted"), "recipe", cmd.Line)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			return code, zerr.With(zerr.With(domain.ErrCommandFailed, "exit_code", code), "recipe", cmd.Line)
		}
		return -1, zerr.With(zerr.Wrap(err, "failed to wait for command"), "recipe", cmd.Line)
	}

	return 0, nil
}

func (l *Launcher) launchFailure(cmd domain.Command, stdout io.Writer, cause error) (int, error) {
	_, _ = fmt.Fprintf(stdout, "Failed to execute\n%s\n", cmd.Line)
	return domain.LaunchFailureExitCode, zerr.With(errors.Join(domain.ErrLaunchFailed, cause), "recipe", cmd.Line)
}

// resolveEnvironment merges the build environment over the system environment. A PATH in the build
// environment is prepended to the system PATH. The result is sorted.
func resolveEnvironment(sysEnv, buildEnv []string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	for _, entry := range buildEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" && v != sysPath {
				v = v + string(os.PathListSeparator) + sysPath
			}
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
