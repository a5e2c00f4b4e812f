package graph

import (
	"slices"

	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/engine/rule"
)

// RuleSet is the result of a graph build.
type RuleSet struct {
	rules     []*rule.Rule
	buildRoot string
	sources   []string
}

// Rules returns all rules in creation order.
func (s *RuleSet) Rules() []*rule.Rule {
	return slices.Clone(s.rules)
}

// Waves returns the rules grouped by sequence group.
func (s *RuleSet) Waves() []rule.Wave {
	return rule.Waves(s.rules)
}

// Sources returns the discovered source files, sorted.
func (s *RuleSet) Sources() []string {
	return slices.Clone(s.sources)
}

// ForFolder returns the rules with a prerequisite directly in folder.
func (s *RuleSet) ForFolder(folder string) []*rule.Rule {
	var out []*rule.Rule
	for _, r := range s.rules {
		if r.IsForFolder(folder) {
			out = append(out, r)
		}
	}
	return out
}

// ForTool returns the rules built by the tool called name.
func (s *RuleSet) ForTool(name string) []*rule.Rule {
	var out []*rule.Rule
	for _, r := range s.rules {
		if r.Tool().Name() == name {
			out = append(out, r)
		}
	}
	return out
}

// ForPrerequisite returns the rules that consume path.
func (s *RuleSet) ForPrerequisite(path string) []*rule.Rule {
	var out []*rule.Rule
	for _, r := range s.rules {
		if r.HasPrerequisite(path) {
			out = append(out, r)
		}
	}
	return out
}

// BuildFiles returns every target and dependency file, sorted.
func (s *RuleSet) BuildFiles() []string {
	var files []domain.InternedString
	for _, r := range s.rules {
		for _, f := range r.TargetFiles() {
			files = append(files, domain.NewInternedString(f))
		}
		for _, f := range r.DependencyFiles() {
			files = append(files, domain.NewInternedString(f))
		}
	}
	return domain.Strings(files)
}

// BuildRoot returns the build folder the rules write to.
func (s *RuleSet) BuildRoot() string {
	return s.buildRoot
}
