package config

import (
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Wavefile represents the structure of the wave.yaml project file.
type Wavefile struct {
	Project       string                `yaml:"project" validate:"required,max=128"`
	Configuration string                `yaml:"configuration" validate:"omitempty,max=128"`
	Toolchain     string                `yaml:"toolchain"`
	BuildFolder   string                `yaml:"build_folder"`
	Sources       SourcesDTO            `yaml:"sources"`
	Parallelism   int                   `yaml:"parallelism" validate:"gte=0,lte=1024"`
	StopOnError   *bool                 `yaml:"stop_on_error"`
	TrackCommands bool                  `yaml:"track_commands"`
	AutoBuild     string                `yaml:"auto_build" validate:"omitempty,oneof=all objects"`
	PreBuild      StepDTO               `yaml:"pre_build"`
	PostBuild     StepDTO               `yaml:"post_build"`
	Variables     map[string]StringList `yaml:"variables" validate:"dive,keys,required,endkeys"`
	Environment   map[string]string     `yaml:"environment" validate:"dive,keys,required,excludes==,endkeys"`
	Extensions    map[string]string     `yaml:"extensions" validate:"dive,keys,required,endkeys,required"`
	Tools         []ToolDTO             `yaml:"tools" validate:"required,min=1,dive"`
}

// SourcesDTO lists the source folders and extra source globs.
type SourcesDTO struct {
	Folders []string `yaml:"folders" validate:"dive,required"`
	Include []string `yaml:"include" validate:"dive,required"`
	Exclude []string `yaml:"exclude" validate:"dive,required"`
}

// StepDTO is a pre or post build step.
type StepDTO struct {
	Command      string `yaml:"command"`
	Announcement string `yaml:"announcement"`
}

// ToolDTO represents a tool definition.
type ToolDTO struct {
	Name           string   `yaml:"name" validate:"required"`
	Command        string   `yaml:"command" validate:"required"`
	Pattern        string   `yaml:"pattern"`
	Flags          []string `yaml:"flags"`
	OutputFlag     string   `yaml:"output_flag"`
	Announcement   string   `yaml:"announcement"`
	Inputs         []string `yaml:"inputs" validate:"required,min=1,dive,required"`
	Output         string   `yaml:"output" validate:"required"`
	OutputName     string   `yaml:"output_name"`
	DependencyFile string   `yaml:"dependency_file"`
	Variable       string   `yaml:"variable"`
	MultipleInputs bool     `yaml:"multiple_inputs"`
}

// StringList is a list of strings that also accepts a single scalar.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = StringList{node.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return zerr.With(zerr.New("expected a string or a list of strings"), "line", node.Line)
	}
}
