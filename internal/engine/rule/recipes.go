package rule

import (
	"strings"

	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/zerr"
)

// Recipes returns the literal command lines that build the rule. A rule that is not simple yields
// no recipes and logs domain.ErrRuleNotSimple.
func (r *Rule) Recipes(
	buildFolder string,
	cfg *domain.BuildConfig,
	resolver ports.MacroResolver,
	logger ports.Logger,
) []string {
	if !r.IsSimple() {
		logger.Error(zerr.With(zerr.With(domain.ErrRuleNotSimple,
			"tool", r.tool.Name()),
			"targets", strings.Join(r.TargetFiles(), " ")))
		return nil
	}
	target := r.TargetFiles()[0]

	var flags []string
	seen := make(map[string]struct{})
	var groups []domain.InputGroup
	groupIndex := make(map[string]int)

	for _, cat := range r.prerequisites.categories() {
		variable := r.tool.AssignToVariable(cat)
		idx, ok := groupIndex[variable]
		if !ok {
			idx = len(groups)
			groupIndex[variable] = idx
			groups = append(groups, domain.InputGroup{Variable: variable})
		}

		for _, input := range r.prerequisites.get(cat) {
			groups[idx].Files = append(groups[idx].Files, NiceName(buildFolder, input))

			inputFlags, err := r.tool.CommandFlags(cfg, input, target)
			if err != nil {
				logger.Error(zerr.With(zerr.Wrap(err, "no flags contributed"), "input", input))
				continue
			}
			for _, f := range inputFlags {
				if _, dup := seen[f]; dup {
					continue
				}
				seen[f] = struct{}{}
				flags = append(flags, f)
			}
		}
	}

	lines := r.tool.Recipes(cfg, flags, NiceName(buildFolder, target), groups)
	recipes := make([]string, 0, len(lines))
	for _, line := range lines {
		resolved := resolver.Resolve(line, "", " ", cfg)
		if strings.TrimSpace(resolved) == "" {
			resolved = line
		}
		if strings.TrimSpace(resolved) == "" {
			continue
		}
		recipes = append(recipes, resolved)
	}
	return recipes
}
