package config

// NewLoaderWithEnviron creates a Loader with a fixed process environment.
func NewLoaderWithEnviron(loader *Loader, environ []string) *Loader {
	loader.environ = func() []string { return environ }
	return loader
}
