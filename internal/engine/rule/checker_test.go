package rule_test

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/core/ports/mocks"
	"go.trai.ch/wave/internal/engine/rule"
	"go.uber.org/mock/gomock"
)

// osFS is a minimal ports.FileSystem over the real file system.
type osFS struct{}

func (osFS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }
func (osFS) MkdirAll(path string) error { return os.MkdirAll(path, 0o750) }
func (osFS) Remove(path string) error { return os.Remove(path) }
func (osFS) RemoveAll(path string) error { return os.RemoveAll(path) }
func (osFS) Open(path string) (io.ReadCloser, error) { return os.Open(path) } //nolint:gosec // test

var base = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func touch(t *testing.T, path string, at time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	}
	require.NoError(t, os.Chtimes(path, at, at))
}

type fixture struct {
	root    string
	src     string
	obj     string
	depFile string
	header  string
	rule    *rule.Rule
	deps    *mocks.MockDependencyReader
	logger  *mocks.MockLogger
	checker *rule.Checker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	f := &fixture{
		root:    filepath.Join(root, "build"),
		src:     filepath.Join(root, "src", "main.c"),
		obj:     filepath.Join(root, "build", "src", "main.o"),
		depFile: filepath.Join(root, "build", "src", "main.d"),
		header:  filepath.Join(root, "include", "board.h"),
		deps:    mocks.NewMockDependencyReader(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
	}
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	tool := mocks.NewMockTool(ctrl)
	tool.EXPECT().DependencyFile(f.obj).Return(f.depFile, true).AnyTimes()

	f.rule = rule.New(tool, 0)
	f.rule.AddPrerequisites(domain.CSource, f.src)
	f.rule.AddTarget(domain.Object, f.obj)
	f.checker = rule.NewChecker(osFS{}, f.deps, f.logger)
	return f
}

// built lays out a freshly built rule: source and header older than object and dependency file.
func (f *fixture) built(t *testing.T) {
	touch(t, f.src, base)
	touch(t, f.header, base)
	touch(t, f.obj, base.Add(time.Minute))
	touch(t, f.depFile, base.Add(time.Minute))
}

func TestChecker_TargetMissing(t *testing.T) {
	f := newFixture(t)
	touch(t, f.src, base)

	d := f.checker.Check(f.rule, f.root)

	assert.True(t, d.Stale)
	assert.Equal(t, rule.ReasonTargetMissing, d.Reason)
	assert.Equal(t, f.obj, d.Path)
}

func TestChecker_TargetMissingDominatesTimestamps(t *testing.T) {
	f := newFixture(t)
	f.built(t)
	require.NoError(t, os.Remove(f.obj))
	// Even with everything else ancient the missing target wins.
	touch(t, f.src, base.Add(-time.Hour))

	assert.True(t, f.checker.NeedsExecuting(f.rule, f.root))
}

func TestChecker_DependencyFileMissing(t *testing.T) {
	f := newFixture(t)
	f.built(t)
	require.NoError(t, os.Remove(f.depFile))

	d := f.checker.Check(f.rule, f.root)

	assert.True(t, d.Stale)
	assert.Equal(t, rule.ReasonDependencyFileMissing, d.Reason)
}

func TestChecker_Fresh(t *testing.T) {
	f := newFixture(t)
	f.built(t)
	f.deps.EXPECT().Headers(f.depFile, f.root).Return([]string{f.header}, nil)

	d := f.checker.Check(f.rule, f.root)

	assert.False(t, d.Stale)
	assert.Equal(t, rule.ReasonFresh, d.Reason)
}

func TestChecker_NoHeaders(t *testing.T) {
	f := newFixture(t)
	f.built(t)
	f.deps.EXPECT().Headers(f.depFile, f.root).Return(nil, nil)

	assert.False(t, f.checker.NeedsExecuting(f.rule, f.root))
}

func TestChecker_PrerequisiteNewer(t *testing.T) {
	f := newFixture(t)
	f.built(t)
	touch(t, f.src, base.Add(2*time.Minute))

	d := f.checker.Check(f.rule, f.root)

	assert.True(t, d.Stale)
	assert.Equal(t, rule.ReasonPrerequisiteNewer, d.Reason)
}

func TestChecker_PrerequisiteMissing(t *testing.T) {
	f := newFixture(t)
	f.built(t)
	require.NoError(t, os.Remove(f.src))

	d := f.checker.Check(f.rule, f.root)

	assert.True(t, d.Stale)
	assert.Equal(t, rule.ReasonPrerequisiteMissing, d.Reason)
}

func TestChecker_TouchedHeader(t *testing.T) {
	f := newFixture(t)
	f.built(t)
	touch(t, f.header, base.Add(5*time.Minute))
	f.deps.EXPECT().Headers(f.depFile, f.root).Return([]string{f.header}, nil)

	d := f.checker.Check(f.rule, f.root)

	assert.True(t, d.Stale)
	assert.Equal(t, rule.ReasonHeaderNewer, d.Reason)
	assert.Equal(t, f.header, d.Path)
}

func TestChecker_HeaderSameTimeAsTarget(t *testing.T) {
	f := newFixture(t)
	f.built(t)
	touch(t, f.header, base.Add(time.Minute))
	f.deps.EXPECT().Headers(f.depFile, f.root).Return([]string{f.header}, nil)

	assert.True(t, f.checker.NeedsExecuting(f.rule, f.root))
}

func TestChecker_HeaderMissing(t *testing.T) {
	f := newFixture(t)
	f.built(t)
	gone := filepath.Join(filepath.Dir(f.header), "gone.h")
	f.deps.EXPECT().Headers(f.depFile, f.root).Return([]string{f.header, gone}, nil)

	d := f.checker.Check(f.rule, f.root)

	assert.True(t, d.Stale)
	assert.Equal(t, rule.ReasonHeaderMissing, d.Reason)
	assert.Equal(t, gone, d.Path)
}

func TestChecker_DependencyUnreadable(t *testing.T) {
	f := newFixture(t)
	f.built(t)
	f.deps.EXPECT().Headers(f.depFile, f.root).Return(nil, errors.New("corrupt"))

	d := f.checker.Check(f.rule, f.root)

	assert.True(t, d.Stale)
	assert.Equal(t, rule.ReasonDependencyUnreadable, d.Reason)
	assert.Equal(t, "dependency file unreadable: "+f.depFile, d.String())
}

func TestChecker_StatErrorIsStale(t *testing.T) {
	ctrl := gomock.NewController(t)
	fsys := mocks.NewMockFileSystem(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	tool := mocks.NewMockTool(ctrl)
	tool.EXPECT().DependencyFile(gomock.Any()).Return("", false).AnyTimes()

	fsys.EXPECT().Stat("/b/a.o").Return(nil, fs.ErrPermission)
	logger.EXPECT().Warn(gomock.Any())

	r := rule.New(tool, 0)
	r.AddPrerequisites(domain.CSource, "/p/a.c")
	r.AddTarget(domain.Object, "/b/a.o")

	d := rule.NewChecker(fsys, mocks.NewMockDependencyReader(ctrl), logger).Check(r, "/b")

	assert.True(t, d.Stale)
	assert.Equal(t, rule.ReasonIOError, d.Reason)
}
