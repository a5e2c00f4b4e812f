// Package config provides the project file loader.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.trai.ch/wave/internal/core/domain"
	"go.trai.ch/wave/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger   ports.Logger
	validate *validator.Validate
	environ  func() []string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		environ:  os.Environ,
	}
}

// Load reads the project file at path. When path is a directory the project file is searched for
// in it and its parents.
func (l *Loader) Load(path string) (*domain.Project, error) {
	configPath, err := l.findConfiguration(path)
	if err != nil {
		return nil, err
	}

	var wavefile Wavefile
	if err := readAndUnmarshalYAML(configPath, &wavefile); err != nil {
		return nil, err
	}

	if err := l.validate.Struct(&wavefile); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrInvalidConfig, validationError(err)), "path", configPath)
	}

	root := filepath.Dir(configPath)
	for _, folder := range resolvePaths(root, wavefile.Sources.Folders) {
		if _, err := os.Stat(folder); err != nil {
			l.Logger.Warn(fmt.Sprintf("source folder %s does not exist", folder))
		}
	}

	env, err := l.environment(root, wavefile.Environment)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		Config:     l.buildConfig(&wavefile, root, env),
		Extensions: make(map[string]domain.Category, len(wavefile.Extensions)),
	}

	for ext, cat := range wavefile.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		project.Extensions[ext] = domain.ParseCategory(cat)
	}

	for _, dto := range wavefile.Tools {
		project.Tools = append(project.Tools, buildTool(dto))
	}

	return project, nil
}

func (l *Loader) findConfiguration(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrConfigNotFound, err), "path", path)
	}
	if !info.IsDir() {
		return filepath.Abs(path)
	}

	currentDir, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve project directory")
	}

	for {
		candidate := filepath.Join(currentDir, domain.ProjectFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", path)
}

func (l *Loader) buildConfig(w *Wavefile, root string, env []string) domain.BuildConfig {
	cfg := domain.BuildConfig{
		ProjectName:     w.Project,
		Configuration:   w.Configuration,
		Toolchain:       w.Toolchain,
		ProjectRoot:     root,
		BuildFolder:     w.BuildFolder,
		SourceFolders:   resolvePaths(root, w.Sources.Folders),
		Sources:         w.Sources.Include,
		Exclude:         w.Sources.Exclude,
		Parallelism:     w.Parallelism,
		StopOnError:     true,
		TrackCommands:   w.TrackCommands,
		AutoBuildTarget: w.AutoBuild,
		PreBuild:        domain.Step(w.PreBuild),
		PostBuild:       domain.Step(w.PostBuild),
		Variables:       make(map[string][]string, len(w.Variables)),
		Environment:     env,
	}

	if cfg.Configuration == "" {
		cfg.Configuration = domain.DefaultConfiguration
	}
	if cfg.BuildFolder == "" {
		cfg.BuildFolder = filepath.Join(domain.DefaultBuildFolder, cfg.Configuration)
	}
	if len(cfg.SourceFolders) == 0 && len(cfg.Sources) == 0 {
		cfg.SourceFolders = []string{root}
	}
	if w.StopOnError != nil {
		cfg.StopOnError = *w.StopOnError
	}
	if cfg.AutoBuildTarget == "" {
		cfg.AutoBuildTarget = domain.AutoBuildAll
	}
	for name, values := range w.Variables {
		cfg.Variables[name] = slices.Clone(values)
	}

	return cfg
}

// environment merges the process environment, the dotenv file next to the project file and the
// project file entries, in increasing priority. The result is sorted.
func (l *Loader) environment(root string, overrides map[string]string) ([]string, error) {
	envMap := make(map[string]string)
	for _, entry := range l.environ() {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	dotenv, err := godotenv.Read(filepath.Join(root, domain.EnvFileName))
	switch {
	case err == nil:
		for k, v := range dotenv {
			envMap[k] = v
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, zerr.With(zerr.Wrap(err, "failed to read dotenv file"), "path", filepath.Join(root, domain.EnvFileName))
	}

	for k, v := range overrides {
		envMap[k] = v
	}

	env := make([]string, 0, len(envMap))
	for k, v := range envMap {
		env = append(env, k+"="+v)
	}
	slices.Sort(env)
	return env, nil
}

func buildTool(dto ToolDTO) domain.ToolSpec {
	inputs := make([]domain.Category, 0, len(dto.Inputs))
	for _, in := range dto.Inputs {
		inputs = append(inputs, domain.ParseCategory(in))
	}

	return domain.ToolSpec{
		Name:           dto.Name,
		Command:        dto.Command,
		Pattern:        dto.Pattern,
		OutputFlag:     dto.OutputFlag,
		Announcement:   dto.Announcement,
		Flags:          slices.Clone(dto.Flags),
		Inputs:         inputs,
		Output:         domain.ParseCategory(dto.Output),
		OutputName:     dto.OutputName,
		DependencyFile: dto.DependencyFile,
		Variable:       dto.Variable,
		MultipleInputs: dto.MultipleInputs,
	}
}

func resolvePaths(root string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}

// validationError flattens validator errors into one readable error.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return zerr.New(strings.Join(msgs, "; "))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read project file"), "path", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(zerr.Wrap(parseErr, "failed to parse project file"), "path", configPath)
	}

	return nil
}
