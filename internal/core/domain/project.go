package domain

// ToolSpec describes a tool of the toolchain.
type ToolSpec struct {
	Name         string
	Command      string
	Pattern      string
	OutputFlag   string
	Announcement string
	Flags        []string
	Inputs       []Category
	Output       Category
	// OutputName is a template for the output file name, for example "${NAME}.o".
	OutputName string
	// DependencyFile is a template for the make style dependency file written next to the output.
	// Empty when the tool does not produce one.
	DependencyFile string
	// Variable is the build variable inputs are assigned to in the recipe. Defaults to INPUTS.
	Variable string
	// MultipleInputs makes the tool consume all files of its input categories in one rule.
	MultipleInputs bool
}

// Project is a loaded project file.
type Project struct {
	Config     BuildConfig
	Tools      []ToolSpec
	Extensions map[string]Category
}

const (
	// ProjectFileName is the name of the project file.
	ProjectFileName = "wave.yaml"
	// EnvFileName is the optional dotenv file next to the project file.
	EnvFileName = ".env"
	// DefaultConfiguration is used when the project file names no configuration.
	DefaultConfiguration = "default"
	// DefaultBuildFolder is the build folder, relative to the project root, when none is configured.
	DefaultBuildFolder = "build"
)
