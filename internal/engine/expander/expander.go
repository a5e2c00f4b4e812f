// Package expander expands tool command line patterns into literal recipes.
package expander

import (
	"strings"

	"github.com/mattn/go-shellwords"
	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/zerr"
)

// Placeholder tokens recognised in a command line pattern.
const (
	TokenCommand    = "${COMMAND}"
	TokenFlags      = "${FLAGS}"
	TokenOutputFlag = "${OUTPUT_FLAG}"
	TokenOutput     = "${OUTPUT}"
	TokenInputs     = "${INPUTS}"
)

// DefaultPattern is used when a tool does not define its own pattern.
const DefaultPattern = TokenCommand + " " + TokenFlags + " " + TokenOutputFlag + " " + TokenOutput + " " + TokenInputs

// variableMarker opens a make style variable reference. Values starting with it are never quoted.
const variableMarker = "$("

// Pattern holds everything needed to expand one recipe line.
type Pattern struct {
	Template   string
	Command    string
	Flags      []string
	OutputFlag string
	OutputName string
	// Inputs are substituted for ${INPUTS}. Groups are also available under ${<Variable>}.
	Inputs []domain.InputGroup
}

// Expand substitutes the placeholders of p.Template. Expansion is deterministic: equal patterns
// always expand to byte identical lines.
func Expand(p Pattern) string {
	template := p.Template
	if strings.TrimSpace(template) == "" {
		template = DefaultPattern
	}

	var all []string
	pairs := []string{
		TokenCommand, p.Command,
		TokenFlags, strings.Join(p.Flags, " "),
		TokenOutputFlag, p.OutputFlag,
		TokenOutput, quote(p.OutputName),
	}
	for _, group := range p.Inputs {
		all = append(all, group.Files...)
		if group.Variable != "" && group.Variable != "INPUTS" {
			pairs = append(pairs, "${"+group.Variable+"}", joinInputs(group.Files))
		}
	}
	pairs = append(pairs, TokenInputs, joinInputs(all))

	return strings.NewReplacer(pairs...).Replace(template)
}

// joinInputs quotes each non empty input and joins them with a space.
func joinInputs(files []string) string {
	quoted := make([]string, 0, len(files))
	for _, f := range files {
		if f == "" {
			continue
		}
		quoted = append(quoted, quote(f))
	}
	return strings.TrimSpace(strings.Join(quoted, " "))
}

func quote(s string) string {
	if s == "" || strings.HasPrefix(s, variableMarker) {
		return s
	}
	return `"` + s + `"`
}

// Split tokenises a recipe into an executable and its arguments. Quoted substrings are kept as
// single arguments.
func Split(recipe string) (string, []string, error) {
	parser := shellwords.NewParser()
	words, err := parser.Parse(recipe)
	if err != nil {
		return "", nil, zerr.With(zerr.Wrap(err, "failed to split recipe"), "recipe", recipe)
	}
	if len(words) == 0 {
		return "", nil, zerr.With(domain.ErrEmptyCommand, "recipe", recipe)
	}
	return words[0], words[1:], nil
}
