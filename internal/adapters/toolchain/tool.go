package toolchain

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/wave/internal/engine/expander"
	"go.trai.ch/zerr"
)

// Name template tokens.
const (
	TokenName     = "${NAME}"
	TokenBaseName = "${BASENAME}"
	TokenProject  = "${PROJECT}"
	TokenConfig   = "${CONFIG}"
	TokenDepFile  = "${DEPFILE}"
)

// DefaultVariable is the build variable the primary inputs of a tool are assigned to.
const DefaultVariable = "INPUTS"

var _ ports.Tool = (*Tool)(nil)

// Tool implements ports.Tool from a domain.ToolSpec.
type Tool struct {
	spec       domain.ToolSpec
	categorize func(path string) (domain.Category, bool)
}

// Name returns the unique tool name.
func (t *Tool) Name() string { return t.spec.Name }

// Command returns the executable the tool runs.
func (t *Tool) Command() string { return t.spec.Command }

// CommandLinePattern returns the recipe template.
func (t *Tool) CommandLinePattern() string { return t.spec.Pattern }

// Inputs returns the categories the tool consumes.
func (t *Tool) Inputs() []domain.Category { return slices.Clone(t.spec.Inputs) }

// Output returns the category the tool produces.
func (t *Tool) Output() domain.Category { return t.spec.Output }

// MultipleInputs reports whether one rule consumes all inputs of the tool.
func (t *Tool) MultipleInputs() bool { return t.spec.MultipleInputs }

// Announcement returns the text printed before the tool runs.
func (t *Tool) Announcement() string { return t.spec.Announcement }

// OutputName returns the output file name for input. The name carries no directory.
func (t *Tool) OutputName(cfg *domain.BuildConfig, input string) string {
	template := t.spec.OutputName
	if template == "" {
		if t.spec.MultipleInputs || input == "" {
			template = TokenProject + outputExtension(t.spec.Output)
		} else {
			template = TokenName + outputExtension(t.spec.Output)
		}
	}
	return filepath.Base(expandName(template, input, cfg))
}

// DependencyFile returns the dependency file written next to target.
func (t *Tool) DependencyFile(target string) (string, bool) {
	if t.spec.DependencyFile == "" || target == "" {
		return "", false
	}
	name := expandName(t.spec.DependencyFile, target, nil)
	return filepath.Join(filepath.Dir(target), filepath.Base(name)), true
}

// CommandFlags returns the tool flags with per input tokens substituted.
func (t *Tool) CommandFlags(cfg *domain.BuildConfig, input, output string) ([]string, error) {
	if t.categorize != nil {
		if cat, ok := t.categorize(input); ok && !slices.Contains(t.spec.Inputs, cat) {
			return nil, zerr.With(zerr.With(zerr.With(domain.ErrBuildConfiguration,
				"tool", t.spec.Name),
				"input", input),
				"category", cat.Name())
		}
	}

	depFile, hasDepFile := t.DependencyFile(output)
	if hasDepFile && cfg != nil {
		if rel, err := filepath.Rel(cfg.BuildRoot(), depFile); err == nil {
			depFile = filepath.ToSlash(rel)
		}
	}

	flags := make([]string, 0, len(t.spec.Flags))
	for _, flag := range t.spec.Flags {
		if strings.Contains(flag, TokenDepFile) {
			if !hasDepFile {
				return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrBuildConfiguration,
					"flag references a dependency file the tool does not write"),
					"tool", t.spec.Name),
					"flag", flag)
			}
			flag = strings.ReplaceAll(flag, TokenDepFile, depFile)
		}
		flags = append(flags, expandName(flag, input, cfg))
	}
	return flags, nil
}

// Recipes returns the templated recipe lines. A pattern may hold several lines.
func (t *Tool) Recipes(cfg *domain.BuildConfig, flags []string, outputName string, inputs []domain.InputGroup) []string {
	expanded := expander.Expand(expander.Pattern{
		Template:   t.spec.Pattern,
		Command:    t.spec.Command,
		Flags:      flags,
		OutputFlag: t.spec.OutputFlag,
		OutputName: outputName,
		Inputs:     inputs,
	})

	var lines []string
	for line := range strings.Lines(expanded) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// AssignToVariable returns the build variable files of c are assigned to. The first input category
// goes to the tool variable; further categories use their own build variable.
func (t *Tool) AssignToVariable(c domain.Category) string {
	if len(t.spec.Inputs) == 0 || t.spec.Inputs[0] == c {
		if t.spec.Variable != "" {
			return t.spec.Variable
		}
		return DefaultVariable
	}
	return c.BuildVariable()
}

func expandName(template, path string, cfg *domain.BuildConfig) string {
	base := filepath.Base(path)
	if path == "" {
		base = ""
	}
	name := strings.TrimSuffix(base, filepath.Ext(base))

	var project, config string
	if cfg != nil {
		project, config = cfg.ProjectName, cfg.Configuration
	}

	return strings.NewReplacer(
		TokenName, name,
		TokenBaseName, base,
		TokenProject, project,
		TokenConfig, config,
	).Replace(template)
}

func outputExtension(c domain.Category) string {
	switch c.Kind() {
	case domain.KindObject:
		return ".o"
	case domain.KindArchive:
		return ".a"
	case domain.KindExecutable:
		return ".elf"
	case domain.KindImage:
		return ".hex"
	case domain.KindCustom:
		if c.IsZero() {
			return ""
		}
		return "." + c.Name()
	default:
		return ""
	}
}
