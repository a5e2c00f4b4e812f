// Package rule models build rules: a tool invocation turning prerequisite files into target files.
package rule

import (
	"path/filepath"
	"strings"

	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/core/ports"
)

// Rule is a single tool invocation. Its identity is the tool plus the sequence group.
type Rule struct {
	tool          ports.Tool
	prerequisites categoryFiles
	targets       categoryFiles
	group         int
}

// New creates an empty rule for tool in the given sequence group.
func New(tool ports.Tool, group int) *Rule {
	return &Rule{tool: tool, group: group}
}

// Tool returns the tool that builds the rule.
func (r *Rule) Tool() ports.Tool {
	return r.tool
}

// AddPrerequisites adds input files of a category.
func (r *Rule) AddPrerequisites(cat domain.Category, files ...string) {
	r.prerequisites.add(cat, files...)
}

// AddTarget adds an output file of a category.
func (r *Rule) AddTarget(cat domain.Category, file string) {
	r.targets.add(cat, file)
}

// PrerequisiteCategories returns the input categories in insertion order.
func (r *Rule) PrerequisiteCategories() []domain.Category {
	return r.prerequisites.categories()
}

// TargetCategories returns the output categories in insertion order.
func (r *Rule) TargetCategories() []domain.Category {
	return r.targets.categories()
}

// Prerequisites returns the input files of a category.
func (r *Rule) Prerequisites(cat domain.Category) []string {
	return r.prerequisites.get(cat)
}

// Targets returns the output files of a category.
func (r *Rule) Targets(cat domain.Category) []string {
	return r.targets.get(cat)
}

// PrerequisiteFiles returns all input files, sorted.
func (r *Rule) PrerequisiteFiles() []string {
	return r.prerequisites.all()
}

// TargetFiles returns all output files, sorted.
func (r *Rule) TargetFiles() []string {
	return r.targets.all()
}

// Dependencies returns the dependency files keyed by the build variable of their target's category
// plus domain.DependencySuffix. The map is derived from the targets on every call.
func (r *Rule) Dependencies() map[string][]string {
	deps := make(map[string][]string)
	for _, cat := range r.targets.categories() {
		for _, target := range r.targets.get(cat) {
			depFile, ok := r.tool.DependencyFile(target)
			if !ok {
				continue
			}
			key := cat.DependencyKey()
			deps[key] = append(deps[key], depFile)
		}
	}
	return deps
}

// DependencyFiles returns all dependency files, sorted.
func (r *Rule) DependencyFiles() []string {
	var out []domain.InternedString
	for _, files := range r.Dependencies() {
		for _, f := range files {
			out = append(out, domain.NewInternedString(f))
		}
	}
	return domain.Strings(out)
}

// IsSimple reports whether the rule has exactly one target file and at least one prerequisite.
func (r *Rule) IsSimple() bool {
	return r.targets.size() == 1 && len(r.TargetFiles()) == 1 && len(r.PrerequisiteFiles()) > 0
}

// IsForFolder reports whether any prerequisite lives directly in folder.
func (r *Rule) IsForFolder(folder string) bool {
	folder = filepath.Clean(folder)
	for _, p := range r.prerequisites.all() {
		if filepath.Dir(p) == folder {
			return true
		}
	}
	return false
}

// IsTool reports whether the rule is built by a tool with the same name.
func (r *Rule) IsTool(tool ports.Tool) bool {
	return tool != nil && r.tool.Name() == tool.Name()
}

// HasPrerequisite reports whether path is an input of the rule.
func (r *Rule) HasPrerequisite(path string) bool {
	return r.prerequisites.contains(path)
}

// SequenceGroup returns the group the rule runs in.
func (r *Rule) SequenceGroup() int {
	return r.group
}

// SetSequenceGroup moves the rule to another group.
func (r *Rule) SetSequenceGroup(group int) {
	r.group = group
}

// Announcement returns the line printed when the rule runs.
func (r *Rule) Announcement(buildFolder string) string {
	names := make([]string, 0, 1)
	for _, t := range r.TargetFiles() {
		names = append(names, NiceName(buildFolder, t))
	}
	text := strings.TrimSpace(r.tool.Announcement())
	if text == "" {
		text = "Building"
	}
	return text + " " + strings.Join(names, " ")
}

// NiceName returns path relative to buildFolder, or path itself when no relative form exists.
func NiceName(buildFolder, path string) string {
	rel, err := filepath.Rel(buildFolder, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
