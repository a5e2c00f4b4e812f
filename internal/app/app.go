// Package app implements the application layer for wave.
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/ddddddO/gtree"
	"go.trai.ch/wave/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/wave/internal/adapters/toolchain" //nolint:depguard // Wired in app layer
	"go.trai.ch/wave/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/wave/internal/engine/graph"
	"go.trai.ch/wave/internal/engine/rule"
	"go.trai.ch/wave/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// ChangeFilter drops watch events that did not change file contents.
type ChangeFilter interface {
	Changed(event ports.WatchEvent) bool
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	builder      *graph.Builder
	scheduler    *scheduler.Scheduler
	fs           ports.FileSystem
	openStore    cas.Opener
	newWatcher   watcher.Factory
	filter       ChangeFilter
	console      ports.Console
	logger       ports.Logger

	debounce time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	builder *graph.Builder,
	sched *scheduler.Scheduler,
	fsys ports.FileSystem,
	openStore cas.Opener,
	newWatcher watcher.Factory,
	filter ChangeFilter,
	console ports.Console,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		builder:      builder,
		scheduler:    sched,
		fs:           fsys,
		openStore:    openStore,
		newWatcher:   newWatcher,
		filter:       filter,
		console:      console,
		logger:       logger,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithDebounce sets the window file changes are collected in before an automatic build.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// SetVerbose enables informational log messages.
func (a *App) SetVerbose(verbose bool) {
	if l, ok := a.logger.(interface{ SetQuiet(bool) }); ok {
		l.SetQuiet(!verbose)
	}
}

// Session is a loaded project with its rule graph.
type Session struct {
	Project   *domain.Project
	Toolchain *toolchain.Toolchain
	Rules     *graph.RuleSet
}

// Load reads the project file at configPath and builds its rule graph.
func (a *App) Load(ctx context.Context, configPath string) (*Session, error) {
	project, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	tc, err := toolchain.New(project)
	if err != nil {
		return nil, err
	}

	rules, err := a.builder.Build(ctx, &project.Config, tc)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build rule graph")
	}

	return &Session{Project: project, Toolchain: tc, Rules: rules}, nil
}

// BuildOptions configure a build.
type BuildOptions struct {
	Config string
	Kind   domain.BuildKind
	// Jobs overrides the configured parallelism when positive.
	Jobs int
	// KeepGoing runs every group even when rules fail.
	KeepGoing bool
}

// Build runs a build of the project.
func (a *App) Build(ctx context.Context, opts BuildOptions) (scheduler.Report, error) {
	session, err := a.Load(ctx, opts.Config)
	if err != nil {
		return scheduler.Report{}, err
	}
	return a.build(ctx, session, opts)
}

func (a *App) build(ctx context.Context, session *Session, opts BuildOptions) (scheduler.Report, error) {
	cfg := &session.Project.Config

	runOpts := scheduler.Options{
		Kind:          opts.Kind,
		Parallelism:   cfg.Parallelism,
		StopOnError:   cfg.StopOnError && !opts.KeepGoing,
		Policy:        scheduler.ObjectsOnlyPolicy{},
		TrackCommands: cfg.TrackCommands,
	}
	if opts.Jobs > 0 {
		runOpts.Parallelism = opts.Jobs
	}

	if runOpts.TrackCommands && opts.Kind != domain.BuildClean {
		store, err := a.openStore(cfg.BuildRoot())
		if err != nil {
			return scheduler.Report{}, zerr.Wrap(err, "failed to open build info store")
		}
		runOpts.Store = store
	}

	return a.scheduler.Run(ctx, session.Rules.Waves(), cfg, runOpts)
}

// CleanOptions configure a clean.
type CleanOptions struct {
	Config string
	// FilesOnly deletes the targets and dependency files of the rules instead of the whole build
	// folder.
	FilesOnly bool
}

// Clean removes build output.
func (a *App) Clean(ctx context.Context, opts CleanOptions) error {
	session, err := a.Load(ctx, opts.Config)
	if err != nil {
		return err
	}

	if !opts.FilesOnly {
		_, err := a.build(ctx, session, BuildOptions{Kind: domain.BuildClean})
		return err
	}

	buildRoot := session.Project.Config.BuildRoot()
	for _, file := range session.Rules.BuildFiles() {
		if err := a.fs.Remove(file); err != nil {
			return err
		}
		a.console.ToConsole("Removed " + rule.NiceName(buildRoot, file))
	}
	return nil
}

// PlanOptions configure a plan.
type PlanOptions struct {
	Config string
	// Files lists the build files instead of the rule tree.
	Files bool
}

// Plan writes the sources and the rule graph of the project to w as a tree of sequence groups.
func (a *App) Plan(ctx context.Context, w io.Writer, opts PlanOptions) error {
	session, err := a.Load(ctx, opts.Config)
	if err != nil {
		return err
	}

	if opts.Files {
		for _, file := range session.Rules.BuildFiles() {
			if _, err := fmt.Fprintln(w, file); err != nil {
				return zerr.Wrap(err, "failed to write plan")
			}
		}
		return nil
	}

	cfg := &session.Project.Config
	buildRoot := cfg.BuildRoot()
	root := gtree.NewRoot(fmt.Sprintf("%s [%s]", cfg.ProjectName, cfg.Configuration))
	sources := root.Add("sources")
	for _, src := range session.Rules.Sources() {
		sources.Add(displayName(cfg.ProjectRoot, buildRoot, src))
	}
	for _, wave := range session.Rules.Waves() {
		group := root.Add(fmt.Sprintf("group %d", wave.Group))
		for _, r := range wave.Rules {
			node := group.Add(r.Announcement(buildRoot))
			for _, p := range r.PrerequisiteFiles() {
				node.Add(displayName(cfg.ProjectRoot, buildRoot, p))
			}
		}
	}

	if err := gtree.OutputFromRoot(w, root); err != nil {
		return zerr.Wrap(err, "failed to write plan")
	}
	return nil
}

// displayName shortens a prerequisite: build output relative to the build folder, sources
// relative to the project root.
func displayName(projectRoot, buildRoot, path string) string {
	for _, base := range []string{buildRoot, projectRoot} {
		if rel, err := filepath.Rel(base, path); err == nil && filepath.IsLocal(rel) {
			return filepath.ToSlash(rel)
		}
	}
	return path
}
