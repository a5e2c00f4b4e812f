// Package toolchain builds the tools of a project from its tool specs.
package toolchain

import (
	"maps"
	"path/filepath"
	"strings"

	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/zerr"
)

// Toolchain is the ordered set of tools of a project together with the file categorization.
type Toolchain struct {
	name       string
	tools      []*Tool
	byName     map[string]*Tool
	extensions map[string]domain.Category
}

// New creates the toolchain of project. Tool names must be unique.
func New(project *domain.Project) (*Toolchain, error) {
	tc := &Toolchain{
		name:       project.Config.Toolchain,
		byName:     make(map[string]*Tool, len(project.Tools)),
		extensions: domain.DefaultExtensions(),
	}
	for ext, cat := range project.Extensions {
		tc.extensions[normalizeExt(ext)] = cat
	}

	for _, spec := range project.Tools {
		if _, exists := tc.byName[spec.Name]; exists {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "duplicate tool"), "tool", spec.Name)
		}
		tool := &Tool{spec: spec, categorize: tc.Categorize}
		tc.tools = append(tc.tools, tool)
		tc.byName[spec.Name] = tool

		// Outputs of a tool are recognized by extension so flags can be validated against them.
		if ext := outputExtension(spec.Output); ext != "" {
			if _, taken := tc.extensions[ext]; !taken {
				tc.extensions[ext] = spec.Output
			}
		}
	}

	return tc, nil
}

// Name returns the toolchain name.
func (tc *Toolchain) Name() string {
	return tc.name
}

// Tools returns the tools in declaration order.
func (tc *Toolchain) Tools() []ports.Tool {
	tools := make([]ports.Tool, 0, len(tc.tools))
	for _, t := range tc.tools {
		tools = append(tools, t)
	}
	return tools
}

// Tool returns the tool called name.
func (tc *Toolchain) Tool(name string) (ports.Tool, error) {
	t, ok := tc.byName[name]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownTool, "tool", name)
	}
	return t, nil
}

// Extensions returns a copy of the extension to category map.
func (tc *Toolchain) Extensions() map[string]domain.Category {
	return maps.Clone(tc.extensions)
}

// Categorize returns the category of path based on its extension.
func (tc *Toolchain) Categorize(path string) (domain.Category, bool) {
	ext := filepath.Ext(path)
	if cat, ok := tc.extensions[ext]; ok {
		return cat, true
	}
	cat, ok := tc.extensions[strings.ToLower(ext)]
	return cat, ok
}

func normalizeExt(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
