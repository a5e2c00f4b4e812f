// Package scheduler runs the rules of a build wave by wave.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/wave/internal/engine/diagnostics"
	"go.trai.ch/wave/internal/engine/rule"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultDrainTimeout bounds how long the rules of one sequence group may run.
const DefaultDrainTimeout = 20 * time.Minute

// State is the final state of a build.
type State uint8

const (
	// StateDone indicates every sequence group was processed.
	StateDone State = iota
	// StateAborted indicates the build stopped early.
	StateAborted
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == StateAborted {
		return "aborted"
	}
	return "done"
}

// Options control a single build.
type Options struct {
	Kind domain.BuildKind
	// Parallelism is the number of rules run at once. Zero selects the number of CPUs.
	Parallelism int
	StopOnError bool
	// DrainTimeout bounds a sequence group. Zero selects DefaultDrainTimeout.
	DrainTimeout time.Duration
	// Policy may end the build after a group. Nil never stops early.
	Policy StopPolicy
	// TrackCommands rebuilds fresh rules whose recipes changed. It requires Store.
	TrackCommands bool
	Store         ports.BuildInfoStore
}

func (o Options) withDefaults() Options {
	if o.Parallelism <= 0 {
		o.Parallelism = runtime.NumCPU()
	}
	if o.DrainTimeout <= 0 {
		o.DrainTimeout = DefaultDrainTimeout
	}
	return o
}

// Report summarizes a build.
type Report struct {
	State    State
	Executed int
	Skipped  int
	Failed   int
	// Groups is the number of sequence groups processed.
	Groups      int
	Diagnostics []diagnostics.Diagnostic
	Duration    time.Duration
}

// StalenessChecker decides whether a rule needs executing.
type StalenessChecker interface {
	Check(r *rule.Rule, buildRoot string) rule.Decision
}

// Scheduler runs rules.
type Scheduler struct {
	launcher ports.Launcher
	console  ports.Console
	checker  StalenessChecker
	macros   ports.MacroResolver
	fs       ports.FileSystem
	hasher   ports.Hasher
	tracer   ports.Tracer
	recorder ports.Recorder
	logger   ports.Logger

	mu         sync.RWMutex
	ruleStatus map[string]domain.RuleStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	launcher ports.Launcher,
	console ports.Console,
	checker StalenessChecker,
	macros ports.MacroResolver,
	fsys ports.FileSystem,
	hasher ports.Hasher,
	tracer ports.Tracer,
	recorder ports.Recorder,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		launcher:   launcher,
		console:    console,
		checker:    checker,
		macros:     macros,
		fs:         fsys,
		hasher:     hasher,
		tracer:     tracer,
		recorder:   recorder,
		logger:     logger,
		ruleStatus: make(map[string]domain.RuleStatus),
	}
}

// updateStatus updates the status of a rule.
func (s *Scheduler) updateStatus(name string, status domain.RuleStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ruleStatus[name] = status
}

// Status returns the status of the rule building target in the last build.
func (s *Scheduler) Status(target string) domain.RuleStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if status, ok := s.ruleStatus[target]; ok {
		return status
	}
	return domain.RuleStatusPending
}

func (s *Scheduler) resetStatuses(waves []rule.Wave) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.ruleStatus)
	for _, w := range waves {
		for _, r := range w.Rules {
			for _, t := range r.TargetFiles() {
				s.ruleStatus[t] = domain.RuleStatusPending
			}
		}
	}
}

// Run executes the stale rules of waves in ascending group order.
//
// Groups run one after another. The rules of a group run concurrently, at most Parallelism at a
// time, and must all finish within DrainTimeout; past it the build aborts and the rules still
// running are canceled. A failing rule never interrupts the rules already
// running. With StopOnError no further group starts and the post build step is skipped.
func (s *Scheduler) Run(ctx context.Context, waves []rule.Wave, cfg *domain.BuildConfig, opts Options) (Report, error) {
	opts = opts.withDefaults()
	start := time.Now()
	buildRoot := cfg.BuildRoot()

	ctx, span := s.tracer.Start(ctx, "build",
		ports.WithAttribute("kind", opts.Kind.String()),
		ports.WithAttribute("configuration", cfg.Configuration),
	)
	defer span.End()

	s.resetStatuses(waves)
	s.console.ToConsole(fmt.Sprintf("%s build of configuration %s for project %s",
		capitalize(opts.Kind.String()), cfg.Configuration, cfg.ProjectName))
	if cfg.Toolchain != "" {
		s.console.ToConsole("Using toolchain " + cfg.Toolchain)
	}

	if opts.Kind == domain.BuildClean {
		err := s.clean(buildRoot)
		if err != nil {
			span.RecordError(err)
		}
		return Report{State: StateDone, Duration: time.Since(start)}, err
	}

	report := Report{State: StateDone}
	err := s.run(ctx, waves, cfg, opts, &report)
	report.Duration = time.Since(start)
	if err != nil {
		report.State = StateAborted
		span.RecordError(err)
	}

	s.console.ToConsole(fmt.Sprintf("Build %s: %d run, %d up to date, %d failed (took %s)",
		report.State, report.Executed, report.Skipped, report.Failed, report.Duration.Round(time.Millisecond)))

	if err == nil && report.Failed > 0 {
		err = zerr.With(domain.ErrBuildExecutionFailed, "failed", report.Failed)
	}
	return report, err
}

func (s *Scheduler) run(ctx context.Context, waves []rule.Wave, cfg *domain.BuildConfig, opts Options, report *Report) error {
	buildRoot := cfg.BuildRoot()
	if err := s.fs.MkdirAll(buildRoot); err != nil {
		return err
	}

	if err := s.runStep(ctx, cfg, cfg.PreBuild, "pre-build"); err != nil {
		report.Failed++
		if opts.StopOnError {
			return errors.Join(domain.ErrBuildAborted, err)
		}
	}

	for _, w := range waves {
		if err := ctx.Err(); err != nil {
			return zerr.Wrap(err, "build interrupted")
		}

		res, err := s.runWave(ctx, w, cfg, opts)
		report.Groups++
		report.Executed += res.executed
		report.Skipped += res.skipped
		report.Failed += res.failed
		report.Diagnostics = append(report.Diagnostics, res.diagnostics...)
		if err != nil {
			return err
		}

		if res.failed > 0 && opts.StopOnError {
			return zerr.With(domain.ErrBuildAborted, "group", w.Group)
		}

		if opts.Policy != nil && opts.Policy.StopAfter(opts.Kind, cfg, w) {
			s.logger.Info(fmt.Sprintf("stopping after group %d: auto build target %s reached", w.Group, cfg.AutoBuildTarget))
			break
		}
	}

	if err := s.runStep(ctx, cfg, cfg.PostBuild, "post-build"); err != nil {
		report.Failed++
		if opts.StopOnError {
			return errors.Join(domain.ErrBuildAborted, err)
		}
	}
	return nil
}

// clean deletes and recreates the build folder.
func (s *Scheduler) clean(buildRoot string) error {
	s.console.ToConsole("Cleaning " + buildRoot)
	if err := s.fs.RemoveAll(buildRoot); err != nil {
		return zerr.Wrap(err, "failed to clean build folder")
	}
	return s.fs.MkdirAll(buildRoot)
}

// runStep runs a pre or post build step in the build folder.
func (s *Scheduler) runStep(ctx context.Context, cfg *domain.BuildConfig, step domain.Step, name string) error {
	if strings.TrimSpace(step.Command) == "" {
		return nil
	}

	line := s.resolve(step.Command, cfg)
	if announcement := s.resolve(step.Announcement, cfg); strings.TrimSpace(announcement) != "" {
		s.console.ToConsole(announcement)
	}
	s.console.ToConsole(line)

	stream := s.console.Stream(name)
	defer func() { _ = stream.Close() }()

	_, err := s.launcher.Launch(ctx, domain.Command{
		Line: line,
		Env:  cfg.Environment,
		Dir:  cfg.BuildRoot(),
	}, stream.Stdout(), stream.Stderr())
	if err != nil {
		err = zerr.Wrap(err, name+" step failed")
		s.logger.Error(err)
		return err
	}
	return nil
}

func (s *Scheduler) resolve(text string, cfg *domain.BuildConfig) string {
	resolved := s.macros.Resolve(text, "", " ", cfg)
	if strings.TrimSpace(resolved) == "" {
		return text
	}
	return resolved
}

type waveResult struct {
	executed    int
	skipped     int
	failed      int
	diagnostics []diagnostics.Diagnostic
}

// job is a stale rule prepared for a worker.
type job struct {
	rule        *rule.Rule
	name        string
	reason      rule.Decision
	recipes     []string
	fingerprint string
}

func (s *Scheduler) runWave(ctx context.Context, w rule.Wave, cfg *domain.BuildConfig, opts Options) (waveResult, error) {
	ctx, span := s.tracer.Start(ctx, fmt.Sprintf("group %d", w.Group), ports.WithAttribute("group", w.Group))
	defer span.End()

	var res waveResult
	var targets []string
	for _, r := range w.Rules {
		targets = append(targets, r.TargetFiles()...)
	}
	s.tracer.EmitPlan(ctx, w.Group, targets)

	var jobs []*job
	for _, r := range w.Rules {
		j, err := s.prepare(ctx, r, cfg, opts)
		switch {
		case err != nil:
			res.failed++
		case j == nil:
			res.skipped++
		default:
			jobs = append(jobs, j)
		}
	}
	if len(jobs) == 0 {
		return res, nil
	}

	// Workers are canceled when the wave is abandoned after a drain timeout.
	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	buf := diagnostics.NewBuffer()
	succeeded := make([]bool, len(jobs))
	done := make(chan struct{})

	go func() {
		defer close(done)
		var g errgroup.Group
		g.SetLimit(opts.Parallelism)
		for i, j := range jobs {
			g.Go(func() error {
				succeeded[i] = s.execute(workCtx, j, cfg, opts, buf)
				return nil
			})
		}
		_ = g.Wait()
	}()

	timer := time.NewTimer(opts.DrainTimeout)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		err := zerr.With(zerr.With(domain.ErrDrainTimeout, "group", w.Group), "timeout", opts.DrainTimeout.String())
		span.RecordError(err)
		s.logger.Error(err)
		return res, err
	}

	res.diagnostics = buf.Flush()
	if summary := diagnostics.Summary(res.diagnostics); summary != "" {
		s.console.ToConsole(fmt.Sprintf("Group %d: %s", w.Group, summary))
	}

	for i, j := range jobs {
		if !succeeded[i] {
			res.failed++
			continue
		}
		res.executed++
		if opts.TrackCommands && opts.Store != nil {
			s.remember(opts.Store, j.rule, j.fingerprint)
		}
	}
	return res, nil
}

// prepare decides whether r runs and returns nil for a fresh rule. A stale rule has its target
// folders created and its old targets removed before any worker starts.
func (s *Scheduler) prepare(ctx context.Context, r *rule.Rule, cfg *domain.BuildConfig, opts Options) (*job, error) {
	buildRoot := cfg.BuildRoot()
	name := rule.NiceName(buildRoot, firstTarget(r))
	decision := s.checker.Check(r, buildRoot)

	var recipes []string
	var fingerprint string
	tracking := opts.TrackCommands && opts.Store != nil
	if decision.Stale || tracking {
		recipes = r.Recipes(buildRoot, cfg, s.macros, s.logger)
		fingerprint = s.hasher.Fingerprint(recipes)
	}

	if !decision.Stale && tracking {
		decision = s.commandDecision(opts.Store, r, fingerprint)
	}

	if !decision.Stale {
		s.console.ToConsole("No need to run " + r.Announcement(buildRoot))
		_, vertex := s.recorder.Record(ctx, name)
		vertex.Cached()
		vertex.Complete(nil)
		s.updateStatus(firstTarget(r), domain.RuleStatusUpToDate)
		return nil, nil
	}

	s.logger.Info(fmt.Sprintf("%s is stale: %s", name, decision))

	for _, target := range r.TargetFiles() {
		if err := s.fs.MkdirAll(filepath.Dir(target)); err != nil {
			s.fail(r, name, err)
			return nil, err
		}
		if err := s.fs.Remove(target); err != nil {
			s.fail(r, name, err)
			return nil, err
		}
	}

	return &job{rule: r, name: name, reason: decision, recipes: recipes, fingerprint: fingerprint}, nil
}

func (s *Scheduler) fail(r *rule.Rule, name string, err error) {
	s.logger.Error(zerr.With(zerr.Wrap(err, "rule failed"), "rule", name))
	s.updateStatus(firstTarget(r), domain.RuleStatusFailed)
}

// execute runs the recipes of one rule. It reports whether all of them succeeded.
func (s *Scheduler) execute(ctx context.Context, j *job, cfg *domain.BuildConfig, opts Options, buf *diagnostics.Buffer) bool {
	ctx, span := s.tracer.Start(ctx, j.name,
		ports.WithAttribute("tool", j.rule.Tool().Name()),
		ports.WithAttribute("reason", string(j.reason.Reason)),
	)
	defer span.End()

	s.updateStatus(firstTarget(j.rule), domain.RuleStatusRunning)
	ctx, vertex := s.recorder.Record(ctx, j.name)

	stream := s.console.Stream(j.name)
	// The process streams are copied concurrently; each gets its own line buffer.
	diagOut, diagErr := buf.Writer(), buf.Writer()
	defer func() {
		_ = diagOut.Close()
		_ = diagErr.Close()
		_ = stream.Close()
	}()
	stdout := io.MultiWriter(stream.Stdout(), vertex.Stdout(), span, diagOut)
	stderr := io.MultiWriter(stream.Stderr(), vertex.Stderr(), span, diagErr)

	s.console.ToConsole(j.rule.Announcement(cfg.BuildRoot()))

	// A misconfigured rule contributes nothing; the build goes on.
	if len(j.recipes) == 0 {
		s.logger.Warn(fmt.Sprintf("%s: %s", j.name, domain.ErrNoRecipes))
	}

	var failed error

	for _, line := range j.recipes {
		s.console.ToConsole(line)
		_, err := s.launcher.Launch(ctx, domain.Command{
			Line: line,
			Env:  cfg.Environment,
			Dir:  cfg.BuildRoot(),
		}, stdout, stderr)
		if err != nil {
			failed = errors.Join(failed, err)
			if opts.StopOnError {
				break
			}
		}
	}

	vertex.Complete(failed)
	if failed != nil {
		span.RecordError(failed)
		s.fail(j.rule, j.name, failed)
		return false
	}
	s.updateStatus(firstTarget(j.rule), domain.RuleStatusCompleted)
	return true
}

func firstTarget(r *rule.Rule) string {
	if targets := r.TargetFiles(); len(targets) > 0 {
		return targets[0]
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
