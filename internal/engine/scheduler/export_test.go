package scheduler

import "go.trai.ch/wave/internal/core/domain"

// GetRuleStatusMap returns a copy of the internal rule status map.
// This is exported for testing purposes only.
func (s *Scheduler) GetRuleStatusMap() map[string]domain.RuleStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statusMap := make(map[string]domain.RuleStatus, len(s.ruleStatus))
	for k, v := range s.ruleStatus {
		statusMap[k] = v
	}
	return statusMap
}
