// Package graph builds the rule graph of a project: every tool invocation needed to turn the source
// files into the final outputs, each placed in a sequence group.
package graph

import (
	"context"
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/wave/internal/engine/rule"
	"go.trai.ch/zerr"
)

// sourceGroup is the producer group of files nobody builds.
const sourceGroup = -1

// SourceWalker lists the files below a source folder.
type SourceWalker interface {
	WalkFiles(root string, ignores []string, skipDirs ...string) iter.Seq[string]
}

// Toolset is the set of tools a project builds with.
type Toolset interface {
	Tools() []ports.Tool
	Categorize(path string) (domain.Category, bool)
}

// Builder creates rule sets.
type Builder struct {
	walker   SourceWalker
	resolver ports.InputResolver
	logger   ports.Logger
}

// NewBuilder creates a new Builder.
func NewBuilder(walker SourceWalker, resolver ports.InputResolver, logger ports.Logger) *Builder {
	return &Builder{walker: walker, resolver: resolver, logger: logger}
}

// Build creates the rules that build the sources of cfg with tools.
func (b *Builder) Build(ctx context.Context, cfg *domain.BuildConfig, tools Toolset) (*RuleSet, error) {
	ordered, err := orderTools(tools.Tools())
	if err != nil {
		return nil, err
	}

	sources, err := b.discoverSources(cfg)
	if err != nil {
		return nil, err
	}

	st := newState(cfg)
	var known []string
	for _, src := range sources {
		if cat, ok := tools.Categorize(src); ok {
			st.addFile(cat, src, sourceGroup)
			known = append(known, src)
		}
	}

	for _, tool := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, zerr.Wrap(err, "rule graph build interrupted")
		}

		add := st.addSingleInputRules
		if tool.MultipleInputs() {
			add = st.addMultiInputRule
		}
		if err := add(tool); err != nil {
			return nil, err
		}
	}

	return &RuleSet{rules: st.rules, buildRoot: st.buildRoot, sources: known}, nil
}

// orderTools sorts tools so that every tool comes after the tools producing its inputs. A tool
// consuming its own output is a cycle.
func orderTools(tools []ports.Tool) ([]ports.Tool, error) {
	byName := make(map[domain.InternedString]ports.Tool, len(tools))
	g := domain.NewGraph()

	for _, consumer := range tools {
		var deps []domain.InternedString
		for _, producer := range tools {
			if slices.Contains(consumer.Inputs(), producer.Output()) {
				deps = append(deps, domain.NewInternedString(producer.Name()))
			}
		}
		name := domain.NewInternedString(consumer.Name())
		if err := g.AddNode(name, deps...); err != nil {
			return nil, err
		}
		byName[name] = consumer
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	ordered := make([]ports.Tool, 0, len(tools))
	for name := range g.Walk() {
		ordered = append(ordered, byName[name])
	}
	return ordered, nil
}

// discoverSources walks the source folders and resolves the extra source globs. The build folder
// is never part of the sources.
func (b *Builder) discoverSources(cfg *domain.BuildConfig) ([]string, error) {
	buildRoot := cfg.BuildRoot()
	var sources []string

	for _, folder := range cfg.SourceFolders {
		for path := range b.walker.WalkFiles(folder, cfg.Exclude, buildRoot) {
			sources = append(sources, filepath.Clean(path))
		}
	}

	if len(cfg.Sources) > 0 {
		extra, err := b.resolver.ResolveInputs(cfg.Sources, cfg.ProjectRoot)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to resolve sources")
		}
		for _, path := range extra {
			if isBelow(buildRoot, path) || excluded(cfg.ProjectRoot, path, cfg.Exclude) {
				continue
			}
			sources = append(sources, filepath.Clean(path))
		}
	}

	slices.Sort(sources)
	sources = slices.Compact(sources)
	if len(sources) == 0 {
		b.logger.Warn("no source files found")
	}
	return sources, nil
}

func excluded(root, path string, patterns []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, filepath.Base(path)); ok {
			return true
		}
		if ok, _ := filepath.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func isBelow(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// state tracks the files known while rules are added.
type state struct {
	cfg       *domain.BuildConfig
	buildRoot string
	files     map[domain.Category][]string
	producer  map[string]int
	rules     []*rule.Rule
}

func newState(cfg *domain.BuildConfig) *state {
	return &state{
		cfg:       cfg,
		buildRoot: cfg.BuildRoot(),
		files:     make(map[domain.Category][]string),
		producer:  make(map[string]int),
	}
}

func (s *state) addFile(cat domain.Category, path string, group int) {
	s.files[cat] = append(s.files[cat], path)
	s.producer[path] = group
}

func (s *state) addRule(tool ports.Tool, target string, inputs map[domain.Category][]string, cats []domain.Category) error {
	if _, exists := s.producer[target]; exists {
		return zerr.With(zerr.With(domain.ErrDuplicateTarget, "target", target), "tool", tool.Name())
	}

	group := sourceGroup
	for _, files := range inputs {
		for _, f := range files {
			group = max(group, s.producer[f])
		}
	}

	r := rule.New(tool, group+1)
	for _, cat := range cats {
		if files := inputs[cat]; len(files) > 0 {
			r.AddPrerequisites(cat, files...)
		}
	}
	r.AddTarget(tool.Output(), target)

	s.rules = append(s.rules, r)
	s.addFile(tool.Output(), target, r.SequenceGroup())
	return nil
}

func (s *state) addSingleInputRules(tool ports.Tool) error {
	for _, cat := range tool.Inputs() {
		for _, input := range slices.Clone(s.files[cat]) {
			target := filepath.Join(s.outputDir(input), tool.OutputName(s.cfg, input))
			if err := s.addRule(tool, target, map[domain.Category][]string{cat: {input}}, []domain.Category{cat}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *state) addMultiInputRule(tool ports.Tool) error {
	inputs := make(map[domain.Category][]string)
	for _, cat := range tool.Inputs() {
		if files := s.files[cat]; len(files) > 0 {
			inputs[cat] = slices.Clone(files)
		}
	}
	if len(inputs) == 0 {
		return nil
	}

	target := filepath.Join(s.buildRoot, tool.OutputName(s.cfg, ""))
	return s.addRule(tool, target, inputs, tool.Inputs())
}

// outputDir places the output of input in the build folder, mirroring the directory of input
// relative to the project root. Files already in the build folder stay in their directory.
func (s *state) outputDir(input string) string {
	dir := filepath.Dir(input)
	if isBelow(s.buildRoot, input) {
		return dir
	}
	if isBelow(s.cfg.ProjectRoot, input) {
		rel, err := filepath.Rel(s.cfg.ProjectRoot, dir)
		if err == nil {
			return filepath.Join(s.buildRoot, rel)
		}
	}
	return s.buildRoot
}
