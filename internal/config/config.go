// internal/config/config.go
//
// This package handles configuration and the .qkata directory structure.
// Every project that grades katas gets a .qkata/ folder created in its root.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// QKataDir is the name of the directory we create in each project
	QKataDir = ".qkata"

	defaultNamespace      = "Katas"
	defaultSubmissionsDir = "solutions"
)

const defaultProjectConfigYAML = `# quantum kata project configuration
version: 1

# Root namespace simple exercise names resolve in.
namespace: Katas

# Directory holding submission files, one <Exercise>.go per exercise.
submissions: solutions

simulator:
  # 0 uses a time-based seed; any other value makes measurement
  # outcomes reproducible across runs.
  seed: 0

logs:
  enabled: true
`

// SimulatorConfig captures execution engine preferences.
type SimulatorConfig struct {
	Seed int64 `yaml:"seed"`
}

// LogsConfig toggles the persistent grading logbook.
type LogsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ProjectConfig models .qkata/config.yaml.
type ProjectConfig struct {
	Version     int             `yaml:"version"`
	Namespace   string          `yaml:"namespace"`
	Submissions string          `yaml:"submissions"`
	Simulator   SimulatorConfig `yaml:"simulator"`
	Logs        LogsConfig      `yaml:"logs"`
}

// Config holds the runtime configuration for the grading tool.
type Config struct {
	// ProjectDir is the directory where the user ran `kata` from
	ProjectDir string

	// QKataProjectDir is ProjectDir/.qkata
	QKataProjectDir string

	Project ProjectConfig
}

// InitQKataDir creates the .qkata directory structure in the given project
// directory and seeds a default config file on first run.
//
// Structure created:
// .qkata/
// ├── config.yaml   <- Project settings
// └── logs/         <- Grading logbook
func InitQKataDir(projectDir string) error {
	qkataDir := filepath.Join(projectDir, QKataDir)

	dirs := []string{
		filepath.Join(qkataDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return ensureProjectConfig(filepath.Join(qkataDir, "config.yaml"))
}

// NewConfig creates a new Config instance populated with project settings.
// A missing config file is not an error; defaults apply.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:      projectDir,
		QKataProjectDir: filepath.Join(projectDir, QKataDir),
		Project:         defaultProjectConfig(),
	}

	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.QKataProjectDir, "logs")
}

// LogbookPath returns the grading logbook file.
func (c *Config) LogbookPath() string {
	return filepath.Join(c.LogsDir(), "kata.log")
}

// SubmissionsDir returns the directory submission files are read from.
func (c *Config) SubmissionsDir() string {
	return resolvePath(c.ProjectDir, c.Project.Submissions)
}

// Namespace returns the root namespace for simple-name resolution.
func (c *Config) Namespace() string {
	return c.Project.Namespace
}

// Seed returns the configured simulator seed; zero means time-based.
func (c *Config) Seed() int64 {
	return c.Project.Simulator.Seed
}

// LogsEnabled reports whether grading runs are mirrored to the logbook.
func (c *Config) LogsEnabled() bool {
	return c.Project.Logs.Enabled
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.QKataProjectDir, "config.yaml")
}

// SetSeed updates the simulator seed and persists the value back to
// .qkata/config.yaml so later runs replay the same measurement outcomes.
func (c *Config) SetSeed(seed int64) error {
	c.Project.Simulator.Seed = seed
	return c.saveProjectConfig()
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version:     1,
		Namespace:   defaultNamespace,
		Submissions: defaultSubmissionsDir,
		Logs:        LogsConfig{Enabled: true},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Namespace) == "" {
		pc.Namespace = defaultNamespace
	}
	if strings.TrimSpace(pc.Submissions) == "" {
		pc.Submissions = defaultSubmissionsDir
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Namespace = strings.TrimSpace(pc.Namespace)
	pc.Submissions = strings.TrimSpace(pc.Submissions)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Namespace == "" {
		return fmt.Errorf("namespace is required")
	}
	if strings.ContainsAny(pc.Namespace, " \t") {
		return fmt.Errorf("namespace %q must not contain whitespace", pc.Namespace)
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return base
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.QKataProjectDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure qkata dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
