// Package macro resolves build variable references in recipe lines and step commands.
//
// Templates use the HCL template syntax: "${NAME}" interpolates a variable. Variables come from the
// build configuration, a few built-ins describing the build and finally the process environment.
package macro

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/core/ports"
)

// Built-in variable names.
const (
	VarProject     = "PROJECT"
	VarConfig      = "CONFIG"
	VarBuildDir    = "BUILD_DIR"
	VarProjectRoot = "PROJECT_ROOT"
	VarToolchain   = "TOOLCHAIN"
)

var _ ports.MacroResolver = (*Resolver)(nil)

// Resolver implements ports.MacroResolver.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve expands the variables referenced in template. It returns "" when the template cannot be
// parsed or evaluated.
func (r *Resolver) Resolve(template, defaultValue, separator string, cfg *domain.BuildConfig) string {
	if !strings.Contains(template, "${") {
		return template
	}

	// Directives are not part of the recipe language.
	src := strings.ReplaceAll(template, "%{", "%%{")

	expr, diags := hclsyntax.ParseTemplate([]byte(src), "recipe", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return ""
	}

	vars := make(map[string]cty.Value)
	for _, traversal := range expr.Variables() {
		name := traversal.RootName()
		if _, done := vars[name]; done {
			continue
		}
		value, ok := lookup(name, separator, cfg)
		if !ok {
			value = defaultValue
		}
		vars[name] = cty.StringVal(value)
	}

	val, diags := expr.Value(&hcl.EvalContext{Variables: vars})
	if diags.HasErrors() || !val.IsKnown() || val.IsNull() {
		return ""
	}

	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return ""
	}
	return str.AsString()
}

func lookup(name, separator string, cfg *domain.BuildConfig) (string, bool) {
	if cfg == nil {
		return "", false
	}

	if values, ok := cfg.Variable(name); ok {
		return strings.Join(values, separator), true
	}

	switch name {
	case VarProject:
		return cfg.ProjectName, true
	case VarConfig:
		return cfg.Configuration, true
	case VarBuildDir:
		return cfg.BuildRoot(), true
	case VarProjectRoot:
		return cfg.ProjectRoot, true
	case VarToolchain:
		return cfg.Toolchain, true
	}

	prefix := name + "="
	for i := len(cfg.Environment) - 1; i >= 0; i-- {
		if value, ok := strings.CutPrefix(cfg.Environment[i], prefix); ok {
			return value, true
		}
	}

	return "", false
}
