package app_test

import (
	"bytes"
	"context"
	"io"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wave/internal/adapters/cas"
	"go.trai.ch/wave/internal/adapters/config"
	"go.trai.ch/wave/internal/adapters/console"
	"go.trai.ch/wave/internal/adapters/depfile"
	"go.trai.ch/wave/internal/adapters/fs"
	"go.trai.ch/wave/internal/adapters/macro"
	"go.trai.ch/wave/internal/adapters/telemetry"
	"go.trai.ch/wave/internal/adapters/watcher"
	"go.trai.ch/wave/internal/app"
	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/wave/internal/core/ports/mocks"
	"go.trai.ch/wave/internal/engine/expander"
	"go.trai.ch/wave/internal/engine/graph"
	"go.trai.ch/wave/internal/engine/rule"
	"go.trai.ch/wave/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

const project = `
	project: blink
	tools:
	  - name: c-compiler
	    command: gcc
	    flags: [-c]
	    output_flag: -o
	    announcement: Compiling
	    inputs: [c-source]
	    output: object
	  - name: linker
	    command: gcc
	    output_flag: -o
	    announcement: Linking
	    inputs: [object]
	    output: executable
	    multiple_inputs: true
`

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fixture struct {
	root     string
	app      *app.App
	launcher *mocks.MockLauncher
	watcher  *mocks.MockWatcher
	out      *syncBuffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.ProjectFileName), []byte(dedent.Dedent(project)), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.c"), []byte("int main(void) { return 0; }\n"), 0o600))

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Stdout().Return(io.Discard).AnyTimes()
	vertex.EXPECT().Stderr().Return(io.Discard).AnyTimes()
	vertex.EXPECT().Cached().AnyTimes()
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	recorder := mocks.NewMockRecorder(ctrl)
	recorder.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) { return ctx, vertex },
	).AnyTimes()

	f := &fixture{
		root:     root,
		launcher: mocks.NewMockLauncher(ctrl),
		watcher:  mocks.NewMockWatcher(ctrl),
		out:      &syncBuffer{},
	}

	fsys := fs.NewFileSystem()
	deps, err := depfile.NewReader(fsys)
	require.NoError(t, err)
	cons := console.New(f.out, f.out)
	macros := macro.NewResolver()
	hasher := fs.NewHasher()

	sched := scheduler.NewScheduler(
		f.launcher,
		cons,
		rule.NewChecker(fsys, deps, log),
		macros,
		fsys,
		hasher,
		telemetry.NewNoOpTracer(),
		recorder,
		log,
	)

	f.app = app.New(
		config.NewLoader(log),
		graph.NewBuilder(fs.NewWalker(), fs.NewResolver(), log),
		sched,
		fsys,
		func(buildRoot string) (ports.BuildInfoStore, error) { return cas.Open(buildRoot) },
		func() (ports.Watcher, error) { return f.watcher, nil },
		watcher.NewChangeFilter(hasher),
		cons,
		log,
	)
	return f
}

func (f *fixture) buildRoot() string {
	return filepath.Join(f.root, "build", domain.DefaultConfiguration)
}

// countLaunches makes every launch succeed and counts them.
func (f *fixture) countLaunches() *atomic.Int32 {
	var n atomic.Int32
	f.launcher.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.Command, _, _ io.Writer) (int, error) {
			n.Add(1)
			return 0, nil
		},
	).AnyTimes()
	return &n
}

func TestApp_Build(t *testing.T) {
	f := newFixture(t)
	launches := f.countLaunches()

	report, err := f.app.Build(t.Context(), app.BuildOptions{Config: f.root, Jobs: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Executed)
	assert.Equal(t, 2, report.Groups)
	assert.Equal(t, int32(2), launches.Load())
	assert.Contains(t, f.out.String(), "Compiling main.o")
	assert.Contains(t, f.out.String(), "Linking blink.elf")
}

// produceTargets makes every launch write its -o output, recording the command lines and whether
// two launches ever overlapped.
func (f *fixture) produceTargets(t *testing.T) (lines func() []string, overlapped *atomic.Bool) {
	t.Helper()
	var mu sync.Mutex
	var recorded []string
	var active atomic.Int32
	overlapped = &atomic.Bool{}

	f.launcher.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command, _, _ io.Writer) (int, error) {
			if active.Add(1) > 1 {
				overlapped.Store(true)
			}
			defer active.Add(-1)

			_, args, err := expander.Split(cmd.Line)
			if !assert.NoError(t, err) {
				return 1, err
			}
			i := slices.Index(args, "-o")
			if !assert.Positive(t, i, cmd.Line) || i+1 >= len(args) {
				return 1, domain.ErrCommandFailed
			}
			if err := os.WriteFile(filepath.Join(cmd.Dir, args[i+1]), []byte("built"), 0o600); err != nil {
				return 1, err
			}

			mu.Lock()
			defer mu.Unlock()
			recorded = append(recorded, cmd.Line)
			return 0, nil
		},
	).AnyTimes()

	return func() []string {
		mu.Lock()
		defer mu.Unlock()
		return slices.Clone(recorded)
	}, overlapped
}

func TestApp_Build_Incremental(t *testing.T) {
	f := newFixture(t)
	lines, overlapped := f.produceTargets(t)
	source := filepath.Join(f.root, "main.c")
	opts := app.BuildOptions{Config: f.root, Jobs: 4}

	// A fresh tree builds everything.
	source0 := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(source, source0, source0))
	report, err := f.app.Build(t.Context(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Executed)
	require.Len(t, lines(), 2)

	// Nothing changed: nothing runs.
	report, err = f.app.Build(t.Context(), opts)
	require.NoError(t, err)
	assert.Zero(t, report.Executed)
	assert.Equal(t, 2, report.Skipped)
	require.Len(t, lines(), 2)

	// Touching the source rebuilds the object, then the executable.
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(source, future, future))
	report, err = f.app.Build(t.Context(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Executed)

	rebuilt := lines()[2:]
	require.Len(t, rebuilt, 2)
	assert.Contains(t, rebuilt[0], "-c")
	assert.Contains(t, rebuilt[0], `"main.o"`)
	assert.NotContains(t, rebuilt[1], "-c")
	assert.Contains(t, rebuilt[1], `"blink.elf"`)
	assert.False(t, overlapped.Load(), "the link never runs alongside the compile")
}

func TestApp_Build_KeepGoing(t *testing.T) {
	f := newFixture(t)
	f.launcher.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command, _, _ io.Writer) (int, error) {
			if strings.Contains(cmd.Line, "-c") {
				return 1, domain.ErrCommandFailed
			}
			return 0, nil
		},
	).Times(2)

	report, err := f.app.Build(t.Context(), app.BuildOptions{Config: f.root, KeepGoing: true})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrBuildExecutionFailed.Error())
	assert.Equal(t, 2, report.Groups)
}

func TestApp_Build_ConfigNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.Build(t.Context(), app.BuildOptions{Config: filepath.Join(f.root, "missing.yaml")})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to load configuration")
}

func TestApp_Plan(t *testing.T) {
	f := newFixture(t)

	var out bytes.Buffer
	require.NoError(t, f.app.Plan(t.Context(), &out, app.PlanOptions{Config: f.root}))

	plan := out.String()
	assert.True(t, strings.HasPrefix(plan, "blink [default]"), plan)
	assert.Contains(t, plan, "sources")
	assert.NotContains(t, plan, domain.ProjectFileName, "only files a tool consumes are sources")
	assert.Contains(t, plan, "group 0")
	assert.Contains(t, plan, "Compiling main.o")
	assert.Contains(t, plan, "main.c")
	assert.Contains(t, plan, "group 1")
	assert.Contains(t, plan, "Linking blink.elf")
}

func TestApp_Plan_Files(t *testing.T) {
	f := newFixture(t)

	var out bytes.Buffer
	require.NoError(t, f.app.Plan(t.Context(), &out, app.PlanOptions{Config: f.root, Files: true}))

	assert.Equal(t, []string{
		filepath.Join(f.buildRoot(), "blink.elf"),
		filepath.Join(f.buildRoot(), "main.o"),
	}, strings.Fields(out.String()))
}

func TestApp_Clean(t *testing.T) {
	f := newFixture(t)
	stray := filepath.Join(f.buildRoot(), "stray.txt")
	require.NoError(t, os.MkdirAll(f.buildRoot(), 0o750))
	require.NoError(t, os.WriteFile(stray, nil, 0o600))

	require.NoError(t, f.app.Clean(t.Context(), app.CleanOptions{Config: f.root}))

	entries, err := os.ReadDir(f.buildRoot())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApp_Clean_FilesOnly(t *testing.T) {
	f := newFixture(t)
	stray := filepath.Join(f.buildRoot(), "stray.txt")
	object := filepath.Join(f.buildRoot(), "main.o")
	require.NoError(t, os.MkdirAll(f.buildRoot(), 0o750))
	require.NoError(t, os.WriteFile(stray, nil, 0o600))
	require.NoError(t, os.WriteFile(object, nil, 0o600))

	require.NoError(t, f.app.Clean(t.Context(), app.CleanOptions{Config: f.root, FilesOnly: true}))

	_, err := os.Stat(object)
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Stat(stray)
	assert.NoError(t, err)
	assert.Contains(t, f.out.String(), "Removed main.o")
}

func TestApp_Watch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.app.WithDebounce(50 * time.Millisecond)
		launches := f.countLaunches()

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		source := filepath.Join(f.root, "main.c")
		f.watcher.EXPECT().Start(gomock.Any(), f.root, []string{f.buildRoot()}).Return(nil)
		f.watcher.EXPECT().Stop().Return(nil)
		f.watcher.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
			if !yield(ports.WatchEvent{Path: source, Operation: ports.OpWrite}) {
				return
			}
			<-ctx.Done()
		}))

		errCh := make(chan error)
		go func() {
			errCh <- f.app.Watch(ctx, app.WatchOptions{Config: f.root})
		}()

		// The initial build runs before any change is seen.
		synctest.Wait()
		if got := launches.Load(); got != 2 {
			t.Fatalf("expected 2 launches after the initial build, got %d", got)
		}

		time.Sleep(time.Second)
		synctest.Wait()
		if got := launches.Load(); got != 4 {
			t.Errorf("expected 4 launches after the change, got %d", got)
		}

		cancel()
		if err := <-errCh; err != nil {
			t.Errorf("Watch failed: %v", err)
		}
		assert.Contains(t, f.out.String(), "1 changed file(s), rebuilding")
	})
}
