package domain_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/zerr"
)

func names(g *domain.Graph) []string {
	var out []string
	for n := range g.Walk() {
		out = append(out, n.String())
	}
	return out
}

func TestGraph_AddNode_Duplicate(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddNode(domain.NewInternedString("compiler")))

	err := g.AddNode(domain.NewInternedString("compiler"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrNodeAlreadyExists.Error())

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "compiler", zErr.Metadata()["node"])
}

func TestGraph_Validate_Order(t *testing.T) {
	g := domain.NewGraph()
	compiler := domain.NewInternedString("compiler")
	archiver := domain.NewInternedString("archiver")
	linker := domain.NewInternedString("linker")
	objcopy := domain.NewInternedString("objcopy")

	require.NoError(t, g.AddNode(objcopy, linker))
	require.NoError(t, g.AddNode(linker, compiler, archiver))
	require.NoError(t, g.AddNode(archiver, compiler))
	require.NoError(t, g.AddNode(compiler))

	require.NoError(t, g.Validate())
	order := names(g)

	assert.Equal(t, []string{"compiler", "archiver", "linker", "objcopy"}, order)
}

func TestGraph_Validate_Deterministic(t *testing.T) {
	build := func() []string {
		g := domain.NewGraph()
		for _, n := range []string{"d", "b", "a", "c"} {
			require.NoError(t, g.AddNode(domain.NewInternedString(n)))
		}
		require.NoError(t, g.Validate())
		return names(g)
	}

	first := build()
	for range 10 {
		assert.True(t, slices.Equal(first, build()))
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, first)
}

func TestGraph_Validate_Cycle(t *testing.T) {
	g := domain.NewGraph()
	a := domain.NewInternedString("A")
	b := domain.NewInternedString("B")
	require.NoError(t, g.AddNode(a, b))
	require.NoError(t, g.AddNode(b, a))

	err := g.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCycleDetected.Error())

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "A -> B -> A", zErr.Metadata()["cycle"])
}

func TestGraph_Validate_SelfLoop(t *testing.T) {
	g := domain.NewGraph()
	a := domain.NewInternedString("A")
	require.NoError(t, g.AddNode(a, a))

	err := g.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCycleDetected.Error())
}

func TestGraph_Validate_MissingDependency(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddNode(domain.NewInternedString("A"), domain.NewInternedString("missing")))

	err := g.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMissingDependency.Error())
}
