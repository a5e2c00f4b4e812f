package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// BuildKind selects what a build invocation does.
type BuildKind uint8

const (
	// BuildIncremental runs every stale rule.
	BuildIncremental BuildKind = iota
	// BuildFull runs every stale rule; the build folder is not cleaned first.
	BuildFull
	// BuildAuto is an incremental build triggered by a file change.
	BuildAuto
	// BuildClean deletes and recreates the build folder without running any rule.
	BuildClean
)

// String implements fmt.Stringer.
func (k BuildKind) String() string {
	switch k {
	case BuildFull:
		return "full"
	case BuildAuto:
		return "auto"
	case BuildClean:
		return "clean"
	default:
		return "incremental"
	}
}

// ParseBuildKind parses a build kind name.
func ParseBuildKind(s string) (BuildKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "incremental":
		return BuildIncremental, nil
	case "full":
		return BuildFull, nil
	case "auto":
		return BuildAuto, nil
	case "clean":
		return BuildClean, nil
	default:
		return BuildIncremental, zerr.With(ErrInvalidBuildKind, "kind", s)
	}
}

// Auto build targets.
const (
	// AutoBuildAll runs every stale rule on an automatic build.
	AutoBuildAll = "all"
	// AutoBuildObjects stops an automatic build once object files are up to date.
	AutoBuildObjects = "objects"
)

// Step is a single shell command run outside the rule graph.
type Step struct {
	Command      string
	Announcement string
}

// BuildConfig is the configuration a build runs with.
type BuildConfig struct {
	ProjectName   string
	Configuration string
	Toolchain     string
	ProjectRoot   string
	BuildFolder   string
	SourceFolders []string
	Sources       []string
	Exclude       []string
	Parallelism   int
	StopOnError   bool
	TrackCommands bool
	// AutoBuildTarget is either "all" or AutoBuildObjects.
	AutoBuildTarget string
	PreBuild        Step
	PostBuild       Step
	// Variables holds build variables. A variable with several values is joined on resolution.
	Variables map[string][]string
	// Environment is the KEY=VALUE vector processes are launched with.
	Environment []string
}

// BuildRoot returns the absolute build folder.
func (c *BuildConfig) BuildRoot() string {
	if filepath.IsAbs(c.BuildFolder) {
		return filepath.Clean(c.BuildFolder)
	}
	return filepath.Join(c.ProjectRoot, c.BuildFolder)
}

// Variable returns the values of a build variable.
func (c *BuildConfig) Variable(name string) ([]string, bool) {
	v, ok := c.Variables[name]
	return v, ok
}

// Command is a single process launch request.
type Command struct {
	Line string
	Env  []string
	Dir  string
}

// InputGroup is the list of display names assigned to a build variable.
type InputGroup struct {
	Variable string
	Files    []string
}
