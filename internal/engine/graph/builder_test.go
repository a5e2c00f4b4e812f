package graph_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wave/internal/adapters/fs"
	"go.trai.ch/wave/internal/adapters/toolchain"
	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/core/ports/mocks"
	"go.trai.ch/wave/internal/engine/graph"
	"go.uber.org/mock/gomock"
)

func write(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
}

func project(root string) *domain.Project {
	return &domain.Project{
		Config: domain.BuildConfig{
			ProjectName:   "blink",
			Configuration: "debug",
			ProjectRoot:   root,
			BuildFolder:   "build/debug",
			SourceFolders: []string{root},
		},
		Tools: []domain.ToolSpec{
			{
				Name:           "linker",
				Command:        "gcc",
				OutputFlag:     "-o",
				Inputs:         []domain.Category{domain.Object},
				Output:         domain.Executable,
				MultipleInputs: true,
			},
			{
				Name:       "c-compiler",
				Command:    "gcc",
				Flags:      []string{"-c"},
				OutputFlag: "-o",
				Inputs:     []domain.Category{domain.CSource},
				Output:     domain.Object,
			},
			{
				Name:       "objcopy",
				Command:    "objcopy",
				OutputFlag: "-O ihex",
				Inputs:     []domain.Category{domain.Executable},
				Output:     domain.Image,
			},
		},
	}
}

func build(t *testing.T, p *domain.Project) (*graph.RuleSet, error) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	tc, err := toolchain.New(p)
	require.NoError(t, err)

	b := graph.NewBuilder(fs.NewWalker(), fs.NewResolver(), log)
	return b.Build(t.Context(), &p.Config, tc)
}

func TestBuild_Pipeline(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "main.c"))
	write(t, filepath.Join(root, "drivers", "led.c"))
	write(t, filepath.Join(root, "README.md"))

	set, err := build(t, project(root))
	require.NoError(t, err)

	buildRoot := filepath.Join(root, "build", "debug")
	waves := set.Waves()
	require.Len(t, waves, 3)

	assert.Equal(t, 0, waves[0].Group)
	require.Len(t, waves[0].Rules, 2)
	assert.Equal(t, []string{filepath.Join(buildRoot, "drivers", "led.o")}, waves[0].Rules[0].TargetFiles())
	assert.Equal(t, []string{filepath.Join(buildRoot, "main.o")}, waves[0].Rules[1].TargetFiles())

	assert.Equal(t, 1, waves[1].Group)
	require.Len(t, waves[1].Rules, 1)
	link := waves[1].Rules[0]
	assert.Equal(t, []string{filepath.Join(buildRoot, "blink.elf")}, link.TargetFiles())
	assert.ElementsMatch(t, []string{
		filepath.Join(buildRoot, "drivers", "led.o"),
		filepath.Join(buildRoot, "main.o"),
	}, link.PrerequisiteFiles())

	assert.Equal(t, 2, waves[2].Group)
	assert.Equal(t, []string{filepath.Join(buildRoot, "blink.hex")}, waves[2].Rules[0].TargetFiles())

	assert.Len(t, set.ForTool("c-compiler"), 2)
	assert.Len(t, set.ForFolder(filepath.Join(root, "drivers")), 1)
	assert.Len(t, set.ForPrerequisite(filepath.Join(root, "main.c")), 1)
	assert.Equal(t, []string{
		filepath.Join(root, "drivers", "led.c"),
		filepath.Join(root, "main.c"),
	}, set.Sources())
	assert.Len(t, set.BuildFiles(), 4)
}

func TestBuild_SkipsBuildFolderAndExcludes(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "main.c"))
	write(t, filepath.Join(root, "vendor", "lib.c"))
	write(t, filepath.Join(root, "build", "debug", "stale.c"))

	p := project(root)
	p.Config.Exclude = []string{"vendor"}

	set, err := build(t, p)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "main.c")}, set.Sources())
	assert.Len(t, set.ForTool("c-compiler"), 1)
}

func TestBuild_ExtraSources(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	write(t, filepath.Join(root, "main.c"))
	write(t, filepath.Join(other, "hal.c"))

	p := project(root)
	p.Config.Sources = []string{filepath.Join(other, "*.c")}

	set, err := build(t, p)
	require.NoError(t, err)
	assert.Len(t, set.Sources(), 2)

	// Sources outside the project land directly in the build folder.
	hal := set.ForPrerequisite(filepath.Join(other, "hal.c"))
	require.Len(t, hal, 1)
	assert.Equal(t, []string{filepath.Join(root, "build", "debug", "hal.o")}, hal[0].TargetFiles())
}

func TestBuild_NoSources(t *testing.T) {
	root := t.TempDir()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("no source files found")

	p := project(root)
	tc, err := toolchain.New(p)
	require.NoError(t, err)

	set, err := graph.NewBuilder(fs.NewWalker(), fs.NewResolver(), log).Build(t.Context(), &p.Config, tc)
	require.NoError(t, err)
	assert.Empty(t, set.Rules())
	assert.Empty(t, set.Waves())
}

func TestBuild_DuplicateTarget(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "main.c"))
	write(t, filepath.Join(root, "main.S"))

	p := project(root)
	p.Tools = append(p.Tools, domain.ToolSpec{
		Name:       "assembler",
		Command:    "as",
		OutputFlag: "-o",
		Inputs:     []domain.Category{domain.AssemblySource},
		Output:     domain.Object,
	})

	_, err := build(t, p)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrDuplicateTarget.Error())
}

func TestBuild_ToolCycle(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "main.c"))

	p := project(root)
	p.Tools = append(p.Tools, domain.ToolSpec{
		Name:    "relinker",
		Command: "ld",
		Inputs:  []domain.Category{domain.Executable},
		Output:  domain.Executable,
	})

	_, err := build(t, p)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCycleDetected.Error())
}

func TestBuild_Canceled(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "main.c"))

	p := project(root)
	tc, err := toolchain.New(p)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	ctrl := gomock.NewController(t)
	_, err = graph.NewBuilder(fs.NewWalker(), fs.NewResolver(), mocks.NewMockLogger(ctrl)).Build(ctx, &p.Config, tc)
	require.Error(t, err)
	assert.ErrorContains(t, err, "interrupted")
}
