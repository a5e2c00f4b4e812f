package ports

import "go.trai.ch/wave/internal/core/domain"

// InputResolver resolves source glob patterns.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type InputResolver interface {
	// ResolveInputs resolves the given input patterns to a list of concrete file paths.
	ResolveInputs(inputs []string, root string) ([]string, error)
}

// MacroResolver expands build variable references in a template.
type MacroResolver interface {
	// Resolve expands the variables referenced in template. Undefined variables expand to
	// defaultValue and list variables are joined with separator. A blank result means no
	// substitution could be made.
	Resolve(template, defaultValue, separator string, cfg *domain.BuildConfig) string
}
