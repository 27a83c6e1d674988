// Package config loads the optional tool-filtering configuration.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config controls which tools the server exposes. The default
// configuration disables nothing.
type Config struct {
	// DisabledTools lists tool names hidden from tools/list and rejected
	// by tools/call
	DisabledTools []string `json:"disabledTools" yaml:"disabledTools"`
}

// DefaultConfig returns a configuration with every tool enabled
func DefaultConfig() *Config {
	return &Config{
		DisabledTools: []string{},
	}
}

// LoadFile loads configuration from a JSON or YAML file, chosen by file
// extension. An empty path or a missing file yields the default
// configuration.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return Load(f)
	}
}

// Load loads JSON configuration from an io.Reader
func Load(r io.Reader) (*Config, error) {
	config := DefaultConfig()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading config data: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config JSON: %w", err)
	}

	return config, nil
}

// LoadYAML loads YAML configuration from an io.Reader
func LoadYAML(r io.Reader) (*Config, error) {
	config := DefaultConfig()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading config data: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config YAML: %w", err)
	}

	return config, nil
}

// IsToolDisabled checks if a specific tool name is in the disabled list
func (c *Config) IsToolDisabled(name string) bool {
	for _, disabled := range c.DisabledTools {
		if disabled == name {
			return true
		}
	}
	return false
}
