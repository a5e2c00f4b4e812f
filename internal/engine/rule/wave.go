package rule

import (
	"cmp"
	"slices"
)

// Wave is the set of rules sharing a sequence group. Rules of a wave never depend on each other.
type Wave struct {
	Group int
	Rules []*Rule
}

// Waves groups rules by sequence group in ascending group order. Groups without rules are absent.
// Within a wave rules are ordered by their first target.
func Waves(rules []*Rule) []Wave {
	byGroup := make(map[int][]*Rule)
	for _, r := range rules {
		byGroup[r.SequenceGroup()] = append(byGroup[r.SequenceGroup()], r)
	}

	groups := make([]int, 0, len(byGroup))
	for g := range byGroup {
		groups = append(groups, g)
	}
	slices.Sort(groups)

	waves := make([]Wave, 0, len(groups))
	for _, g := range groups {
		members := byGroup[g]
		slices.SortStableFunc(members, func(a, b *Rule) int {
			return cmp.Compare(firstTarget(a), firstTarget(b))
		})
		waves = append(waves, Wave{Group: g, Rules: members})
	}
	return waves
}

func firstTarget(r *Rule) string {
	targets := r.TargetFiles()
	if len(targets) == 0 {
		return ""
	}
	return targets[0]
}
