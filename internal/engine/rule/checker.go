package rule

import (
	"errors"
	"io/fs"
	"time"

	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/zerr"
)

// Reason explains a staleness decision.
type Reason string

// Staleness reasons.
const (
	ReasonFresh                 Reason = "up to date"
	ReasonTargetMissing         Reason = "target missing"
	ReasonDependencyFileMissing Reason = "dependency file missing"
	ReasonPrerequisiteMissing   Reason = "prerequisite missing"
	ReasonPrerequisiteNewer     Reason = "prerequisite newer than target"
	ReasonDependencyUnreadable  Reason = "dependency file unreadable"
	ReasonHeaderMissing         Reason = "header missing"
	ReasonHeaderNewer           Reason = "header newer than target"
	ReasonIOError               Reason = "i/o error"
	ReasonCommandChanged        Reason = "command changed"
)

// Decision is the result of a staleness check.
type Decision struct {
	Stale  bool
	Reason Reason
	// Path is the file that decided the outcome, if any.
	Path string
}

// String implements fmt.Stringer.
func (d Decision) String() string {
	if d.Path == "" {
		return string(d.Reason)
	}
	return string(d.Reason) + ": " + d.Path
}

func stale(reason Reason, path string) Decision {
	return Decision{Stale: true, Reason: reason, Path: path}
}

// Checker decides whether a rule needs executing.
type Checker struct {
	fs     ports.FileSystem
	deps   ports.DependencyReader
	logger ports.Logger
}

// NewChecker creates a Checker.
func NewChecker(fsys ports.FileSystem, deps ports.DependencyReader, logger ports.Logger) *Checker {
	return &Checker{fs: fsys, deps: deps, logger: logger}
}

// NeedsExecuting reports whether r is stale.
func (c *Checker) NeedsExecuting(r *Rule, buildRoot string) bool {
	return c.Check(r, buildRoot).Stale
}

// Check decides whether r is stale. Missing information always resolves to stale.
//
// A rule is stale when a target or dependency file is missing, when the newest prerequisite is
// newer than the oldest target, or when a header listed in a dependency file is missing or not
// older than the oldest target.
func (c *Checker) Check(r *Rule, buildRoot string) Decision {
	var targetTime time.Time
	for i, target := range r.TargetFiles() {
		mod, d, ok := c.modTime(target, ReasonTargetMissing)
		if !ok {
			return d
		}
		if i == 0 || mod.Before(targetTime) {
			targetTime = mod
		}
	}

	depFiles := r.DependencyFiles()
	for _, depFile := range depFiles {
		if _, d, ok := c.modTime(depFile, ReasonDependencyFileMissing); !ok {
			return d
		}
	}

	var prereqTime time.Time
	for _, prereq := range r.PrerequisiteFiles() {
		mod, d, ok := c.modTime(prereq, ReasonPrerequisiteMissing)
		if !ok {
			return d
		}
		if mod.After(prereqTime) {
			prereqTime = mod
		}
	}
	if prereqTime.After(targetTime) {
		return stale(ReasonPrerequisiteNewer, "")
	}

	var depTime time.Time
	var newest string
	for _, depFile := range depFiles {
		headers, err := c.deps.Headers(depFile, buildRoot)
		if err != nil {
			c.logger.Warn(zerr.With(zerr.Wrap(err, "dependency file unreadable"), "path", depFile).Error())
			return stale(ReasonDependencyUnreadable, depFile)
		}
		for _, header := range headers {
			mod, d, ok := c.modTime(header, ReasonHeaderMissing)
			if !ok {
				return d
			}
			if newest == "" || mod.After(depTime) {
				depTime = mod
				newest = header
			}
		}
	}
	if newest != "" && !depTime.Before(targetTime) {
		return stale(ReasonHeaderNewer, newest)
	}

	return Decision{Reason: ReasonFresh}
}

// modTime stats path. A missing file yields a stale decision with the given reason and any other
// error yields ReasonIOError.
func (c *Checker) modTime(path string, missing Reason) (time.Time, Decision, bool) {
	info, err := c.fs.Stat(path)
	if err == nil {
		return info.ModTime(), Decision{}, true
	}
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, stale(missing, path), false
	}
	c.logger.Warn(zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path).Error())
	return time.Time{}, stale(ReasonIOError, path), false
}
