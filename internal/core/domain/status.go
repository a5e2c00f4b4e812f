package domain

// RuleStatus is the outcome of a rule within a build.
type RuleStatus string

const (
	// RuleStatusPending indicates the rule has not been reached yet.
	RuleStatusPending RuleStatus = "pending"
	// RuleStatusRunning indicates the rule's recipes are executing.
	RuleStatusRunning RuleStatus = "running"
	// RuleStatusCompleted indicates every recipe of the rule succeeded.
	RuleStatusCompleted RuleStatus = "completed"
	// RuleStatusFailed indicates a recipe of the rule failed.
	RuleStatusFailed RuleStatus = "failed"
	// RuleStatusUpToDate indicates the rule was skipped because its targets are fresh.
	RuleStatusUpToDate RuleStatus = "up-to-date"
)

// IsTerminal reports whether the status is final.
func (s RuleStatus) IsTerminal() bool {
	switch s {
	case RuleStatusCompleted, RuleStatusFailed, RuleStatusUpToDate:
		return true
	default:
		return false
	}
}
