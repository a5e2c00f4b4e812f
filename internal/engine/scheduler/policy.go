package scheduler

import (
	"slices"

	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/engine/rule"
)

// StopPolicy decides whether a build ends after a sequence group.
type StopPolicy interface {
	StopAfter(kind domain.BuildKind, cfg *domain.BuildConfig, w rule.Wave) bool
}

// ObjectsOnlyPolicy ends an automatic build once the group producing object files has run, when
// the project asks for object files only.
type ObjectsOnlyPolicy struct{}

// StopAfter implements StopPolicy.
func (ObjectsOnlyPolicy) StopAfter(kind domain.BuildKind, cfg *domain.BuildConfig, w rule.Wave) bool {
	if kind != domain.BuildAuto || cfg.AutoBuildTarget != domain.AutoBuildObjects {
		return false
	}
	for _, r := range w.Rules {
		if slices.Contains(r.TargetCategories(), domain.Object) {
			return true
		}
	}
	return false
}
