package ports

import "go.trai.ch/wave/internal/core/domain"

// Tool is a single tool of the toolchain. Rules hold a reference to the tool that builds them.
//
//go:generate go run go.uber.org/mock/mockgen -source=tool.go -destination=mocks/mock_tool.go -package=mocks
type Tool interface {
	// Name returns the unique tool name.
	Name() string
	// Command returns the executable the tool runs.
	Command() string
	// CommandLinePattern returns the recipe template. Empty selects the default pattern.
	CommandLinePattern() string
	// Inputs returns the categories the tool consumes.
	Inputs() []domain.Category
	// Output returns the category the tool produces.
	Output() domain.Category
	// MultipleInputs reports whether one rule consumes all inputs of the tool.
	MultipleInputs() bool
	// OutputName returns the file name of the output built from input. Input is empty for
	// tools consuming multiple inputs.
	OutputName(cfg *domain.BuildConfig, input string) string
	// Recipes returns the templated recipe lines for one rule.
	Recipes(cfg *domain.BuildConfig, flags []string, outputName string, inputs []domain.InputGroup) []string
	// CommandFlags returns the flags used to build output from input. It fails with
	// domain.ErrBuildConfiguration when the flags cannot be determined.
	CommandFlags(cfg *domain.BuildConfig, input, output string) ([]string, error)
	// DependencyFile returns the dependency file written when building target, if any.
	DependencyFile(target string) (string, bool)
	// Announcement returns the text printed before the tool runs.
	Announcement() string
	// AssignToVariable returns the build variable inputs of the given category are assigned to.
	AssignToVariable(c domain.Category) string
}
