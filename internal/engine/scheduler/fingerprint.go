package scheduler

import (
	"time"

	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/wave/internal/engine/rule"
	"go.trai.ch/zerr"
)

// commandDecision compares the recipe fingerprint of a fresh rule with the one recorded when its
// targets were last built. A target without a record is recorded now and stays fresh.
func (s *Scheduler) commandDecision(store ports.BuildInfoStore, r *rule.Rule, fingerprint string) rule.Decision {
	for _, target := range r.TargetFiles() {
		info, err := store.Get(target)
		if err != nil {
			s.logger.Error(zerr.With(zerr.Wrap(err, "failed to read build info"), "target", target))
			return rule.Decision{Stale: true, Reason: rule.ReasonIOError, Path: target}
		}
		if info == nil {
			s.remember(store, r, fingerprint)
			continue
		}
		if info.RecipeHash != fingerprint {
			return rule.Decision{Stale: true, Reason: rule.ReasonCommandChanged, Path: target}
		}
	}
	return rule.Decision{Reason: rule.ReasonFresh}
}

// remember records the fingerprint of the recipes that built r.
func (s *Scheduler) remember(store ports.BuildInfoStore, r *rule.Rule, fingerprint string) {
	now := time.Now()
	for _, target := range r.TargetFiles() {
		if err := store.Put(domain.BuildInfo{Target: target, RecipeHash: fingerprint, Timestamp: now}); err != nil {
			s.logger.Error(zerr.With(zerr.Wrap(err, "failed to store build info"), "target", target))
		}
	}
}
