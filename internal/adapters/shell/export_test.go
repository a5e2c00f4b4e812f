package shell

// ResolveEnvironment exposes resolveEnvironment for tests.
var ResolveEnvironment = resolveEnvironment

// NewLauncherWithEnv creates a Launcher with a fixed base environment.
func NewLauncherWithEnv(env []string) *Launcher {
	return &Launcher{baseEnv: func() []string { return env }}
}
