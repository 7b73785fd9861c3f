package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls which paths the checker visits and which findings
// fail the run.
type Config struct {
	ExcludePaths    []string `yaml:"exclude_paths"`
	ExitOnUnused    bool     `yaml:"exit_on_unused"`
	ExitOnForbidden bool     `yaml:"exit_on_forbidden"`
	Verbose         bool     `yaml:"verbose"`
}

// DefaultConfig skips the packages allowed to use raw error
// constructions: the errors package itself, the client SDK (which keeps
// the server packages out of its import graph), and tooling.
func DefaultConfig() *Config {
	return &Config{
		ExcludePaths: []string{
			"pkg/errors/",
			"pkg/sdk/",
			"scripts/",
			"_examples/",
			"_test.go",
		},
		ExitOnUnused:    true,
		ExitOnForbidden: true,
		Verbose:         false,
	}
}

// LoadConfig reads a YAML config file, falling back to the defaults
// when no path is given.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
