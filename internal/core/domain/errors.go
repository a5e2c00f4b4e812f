package domain

import "go.trai.ch/zerr"

// LaunchFailureExitCode is reported for a recipe whose process could not be started.
const LaunchFailureExitCode = -999

var (
	// ErrNodeAlreadyExists is returned when attempting to add a node with a name that already exists.
	ErrNodeAlreadyExists = zerr.New("node already exists")

	// ErrMissingDependency is returned when a node references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the tool dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrRuleNotSimple is reported when a rule does not have exactly one target file and at least one
	// prerequisite. Such a rule produces no recipes.
	ErrRuleNotSimple = zerr.New("rule must have exactly one target file and at least one prerequisite")

	// ErrBuildConfiguration is returned by a tool when the command flags for an input cannot be resolved.
	ErrBuildConfiguration = zerr.New("build configuration error")

	// ErrDuplicateTarget is returned when two rules would produce the same target file.
	ErrDuplicateTarget = zerr.New("duplicate target")

	// ErrUnknownTool is returned when a tool name is not part of the project.
	ErrUnknownTool = zerr.New("unknown tool")

	// ErrInvalidBuildKind is returned when a build kind string cannot be parsed.
	ErrInvalidBuildKind = zerr.New("invalid build kind")

	// ErrNoRecipes is reported when a stale rule has no command to run.
	ErrNoRecipes = zerr.New("rule has no recipes")

	// ErrEmptyCommand is returned when a recipe has no executable.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrLaunchFailed is returned when a recipe process could not be started.
	ErrLaunchFailed = zerr.New("failed to execute")

	// ErrCommandFailed is returned when a recipe process exits with a non-zero code.
	ErrCommandFailed = zerr.New("command failed")

	// ErrDrainTimeout is returned when the rules of a sequence group did not finish within the drain timeout.
	ErrDrainTimeout = zerr.New("sequence group drain timed out")

	// ErrBuildAborted is returned when the build stopped on the first error.
	ErrBuildAborted = zerr.New("build aborted")

	// ErrBuildExecutionFailed is returned when one or more rules failed.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrConfigNotFound is returned when no project file could be located.
	ErrConfigNotFound = zerr.New("project file not found")

	// ErrInvalidConfig is returned when the project file fails validation.
	ErrInvalidConfig = zerr.New("invalid project file")
)
