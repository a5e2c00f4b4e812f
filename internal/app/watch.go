package app

import (
	"context"
	"fmt"

	"go.trai.ch/wave/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/zerr"
)

// WatchOptions configure watch mode.
type WatchOptions struct {
	Config    string
	Jobs      int
	KeepGoing bool
}

// Watch builds the project, then rebuilds it automatically whenever a source changes, until ctx
// is canceled. Failed builds are logged and do not end watch mode.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	session, err := a.Load(ctx, opts.Config)
	if err != nil {
		return err
	}
	cfg := session.Project.Config

	w, err := a.newWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := w.Start(ctx, cfg.ProjectRoot, []string{cfg.BuildRoot()}); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}

	buildOpts := BuildOptions{Config: opts.Config, Kind: domain.BuildAuto, Jobs: opts.Jobs, KeepGoing: opts.KeepGoing}
	a.autoBuild(ctx, session, buildOpts)
	a.console.ToConsole("Watching " + cfg.ProjectRoot + " for changes")

	trigger := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case trigger <- paths:
		default:
			// A build is already pending and will see these changes.
		}
	})

	events := make(chan ports.WatchEvent)
	go func() {
		defer close(events)
		for event := range w.Events() {
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if a.filter.Changed(event) {
				debouncer.Add(event.Path)
			}
		case paths := <-trigger:
			a.console.ToConsole(fmt.Sprintf("%d changed file(s), rebuilding", len(paths)))
			// The graph is rebuilt so added and removed sources are picked up.
			next, err := a.Load(ctx, opts.Config)
			if err != nil {
				a.logger.Error(err)
				continue
			}
			a.autoBuild(ctx, next, buildOpts)
		}
	}
}

func (a *App) autoBuild(ctx context.Context, session *Session, opts BuildOptions) {
	if _, err := a.build(ctx, session, opts); err != nil && ctx.Err() == nil {
		a.logger.Error(err)
	}
}
