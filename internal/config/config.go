package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config controls a generation run. All fields are optional; zero values
// are normalized by applyDefaults.
type Config struct {
	// Version of the config schema. Currently always "1".
	Version string `yaml:"version"`
	// Prefix is the directive comment prefix, e.g. "pybind" matches
	// "//pybind:hash".
	Prefix string `yaml:"prefix"`
	// CheckDelegates enables the generation-time delegate-method check.
	CheckDelegates *bool `yaml:"check_delegates"`
	// Header is an extra comment line placed above every generated item.
	Header string `yaml:"header"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}

	if cfg.Prefix == "" {
		cfg.Prefix = "pybind"
	}

	if cfg.CheckDelegates == nil {
		v := true
		cfg.CheckDelegates = &v
	}
}

// Validate rejects configs the generator cannot honor.
func (c *Config) Validate() error {
	if c.Version != "1" {
		return fmt.Errorf("unsupported config version %q", c.Version)
	}

	if strings.ContainsAny(c.Prefix, ": \t") {
		return fmt.Errorf("invalid directive prefix %q", c.Prefix)
	}

	return nil
}

// DelegateChecks reports whether the delegate-method check is enabled.
func (c *Config) DelegateChecks() bool {
	return c.CheckDelegates == nil || *c.CheckDelegates
}
