// Package config loads the optional dbshell configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the user-level settings. Every field has a working default so
// the file is entirely optional.
type Config struct {
	// Target is the default connection target used when --db is not given.
	Target string `yaml:"target"`

	// Verbose and Debug pick the default log level; command line flags
	// override them.
	Verbose bool `yaml:"verbose"`
	Debug   bool `yaml:"debug"`
}

// Default returns the built-in configuration: a transient in-memory database
// and warnings-only logging.
func Default() *Config {
	return &Config{Target: ":memory:"}
}

func configPath() string {
	if dir := os.Getenv("DBSHELL_CONF"); dir != "" {
		return filepath.Join(dir, "config.yml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dbshell", "config.yml")
}

// Load reads the configuration from path, or from the default location when
// path is empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = configPath()
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("unable to read the configuration file: %w", err)
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("unable to decode the configuration: %w", err)
	}
	if cfg.Target == "" {
		cfg.Target = ":memory:"
	}

	return cfg, nil
}
