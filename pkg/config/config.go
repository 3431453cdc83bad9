package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/boristopalov/recsim/pkg/environment"
)

// ExperimentConfig describes one rollout run: which environment to build, how
// many episodes to drive, and which policy drives them.
type ExperimentConfig struct {
	Name        string    `yaml:"name"`
	Episodes    int       `yaml:"episodes"`
	Policy      string    `yaml:"policy"`
	Environment EnvConfig `yaml:"environment"`
	Logging     LogConfig `yaml:"logging"`
}

// EnvConfig mirrors environment.Config with yaml tags.
type EnvConfig struct {
	NumLearners    int   `yaml:"num_learners"`
	NumCourses     int   `yaml:"num_courses"`
	MaxSteps       int   `yaml:"max_steps"`
	ObservationDim int   `yaml:"observation_dim"`
	Seed           int64 `yaml:"seed"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Default returns the configuration used when no file is supplied: the stock
// population of 100 learners and 500 courses, 100-step episodes, random
// policy.
func Default() *ExperimentConfig {
	return &ExperimentConfig{
		Name:     "rollout",
		Episodes: 10,
		Policy:   "random",
		Environment: EnvConfig{
			NumLearners:    100,
			NumCourses:     500,
			MaxSteps:       100,
			ObservationDim: environment.ObservationDim,
		},
		Logging: LogConfig{Level: "info"},
	}
}

// LoadConfig reads and validates an experiment configuration from a YAML
// file. Fields missing from the file keep their defaults.
func LoadConfig(path string) (*ExperimentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulator would refuse or that make no
// sense to run.
func (c *ExperimentConfig) Validate() error {
	if c.Episodes <= 0 {
		return fmt.Errorf("config: episodes must be positive, got %d", c.Episodes)
	}
	if c.Environment.NumLearners <= 0 {
		return fmt.Errorf("config: num_learners must be positive, got %d", c.Environment.NumLearners)
	}
	if c.Environment.NumCourses <= 0 {
		return fmt.Errorf("config: num_courses must be positive, got %d", c.Environment.NumCourses)
	}
	if c.Environment.MaxSteps <= 0 {
		return fmt.Errorf("config: max_steps must be positive, got %d", c.Environment.MaxSteps)
	}
	if c.Environment.ObservationDim != 0 && c.Environment.ObservationDim != environment.ObservationDim {
		return fmt.Errorf("config: observation_dim must be %d, got %d", environment.ObservationDim, c.Environment.ObservationDim)
	}
	return nil
}

// ToEnv converts the yaml view into the simulator's construction config.
func (c *ExperimentConfig) ToEnv() environment.Config {
	return environment.Config{
		NumLearners:    c.Environment.NumLearners,
		NumCourses:     c.Environment.NumCourses,
		MaxSteps:       c.Environment.MaxSteps,
		ObservationDim: c.Environment.ObservationDim,
		Seed:           c.Environment.Seed,
	}
}
