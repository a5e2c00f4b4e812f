// Package domain contains the core domain models of the build engine.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph is a dependency graph of named nodes. The rule graph builder uses it to order tools so that
// every tool runs after the tools producing its inputs.
type Graph struct {
	deps           map[InternedString][]InternedString
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		deps: make(map[InternedString][]InternedString),
	}
}

// AddNode adds a node with its dependencies.
// It returns an error if a node with the same name already exists.
func (g *Graph) AddNode(name InternedString, deps ...InternedString) error {
	if _, exists := g.deps[name]; exists {
		return zerr.With(ErrNodeAlreadyExists, "node", name.String())
	}
	g.deps[name] = slices.Clone(deps)
	return nil
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.deps)
}

// Validate checks for cycles using a depth first topological sort and populates the execution order.
// Nodes are visited in name order so the resulting order is deterministic.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.deps))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		deps, exists := g.deps[u]
		if !exists {
			return zerr.With(ErrMissingDependency, "dependency", u.String())
		}

		for _, dep := range sortedNames(deps) {
			switch visited[dep] {
			case 1:
				return g.buildCycleError(path, dep)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	names := make([]InternedString, 0, len(g.deps))
	for name := range g.deps {
		names = append(names, name)
	}
	for _, name := range sortedNames(names) {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

func sortedNames(names []InternedString) []InternedString {
	out := slices.Clone(names)
	slices.SortFunc(out, CompareInterned)
	return out
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	start := slices.Index(path, dep)
	parts := make([]string, 0, len(path)-start+1)
	for _, node := range path[start:] {
		parts = append(parts, node.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(parts, " -> "))
}

// Walk yields node names in execution order: dependencies before dependents.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[InternedString] {
	return func(yield func(InternedString) bool) {
		for _, name := range g.executionOrder {
			if !yield(name) {
				return
			}
		}
	}
}
