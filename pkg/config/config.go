// Package config provides configuration loading and management for fourierslice.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Panel names accepted in Render.Panels
var Panels = []string{
	"phantom",
	"spectrum",
	"buffer",
	"reconstruction",
	"sinogram",
	"projection",
	"projection_spectrum",
}

// Config represents the application configuration loaded from YAML
type Config struct {
	// Phantom parameters
	Phantom struct {
		// Size is the width and height of the phantom grid in pixels
		Size int `yaml:"size"`
	} `yaml:"phantom"`

	// Render parameters
	Render struct {
		// OutputDir is where rendered panels are written
		OutputDir string `yaml:"outputDir"`

		// SweepStep is the angle increment, in degrees, of a full sweep
		SweepStep int `yaml:"sweepStep"`

		// Panels lists the panels to render. Empty means all of them.
		Panels []string `yaml:"panels"`

		// Scale is the integer upscaling factor applied to image panels
		Scale int `yaml:"scale"`
	} `yaml:"render"`

	// Detector demo parameters
	Detector struct {
		// Shape is the name of the detector demo shape
		Shape string `yaml:"shape"`
	} `yaml:"detector"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Phantom.Size = 128

	cfg.Render.OutputDir = "frames"
	cfg.Render.SweepStep = 10
	cfg.Render.Panels = append([]string(nil), Panels...)
	cfg.Render.Scale = 2

	cfg.Detector.Shape = "E"

	cfg.Output.Verbose = false

	return cfg
}

// Validate reports the first invalid setting in cfg
func (c *Config) Validate() error {
	if c.Phantom.Size < 2 {
		return fmt.Errorf("phantom size must be at least 2, got %d", c.Phantom.Size)
	}
	if c.Render.SweepStep < 1 {
		return fmt.Errorf("sweep step must be at least 1, got %d", c.Render.SweepStep)
	}
	if c.Render.Scale < 1 {
		return fmt.Errorf("render scale must be at least 1, got %d", c.Render.Scale)
	}
	for _, p := range c.Render.Panels {
		if !IsPanel(p) {
			return fmt.Errorf("unknown panel %q", p)
		}
	}
	return nil
}

// IsPanel reports whether name is a known panel
func IsPanel(name string) bool {
	for _, p := range Panels {
		if p == name {
			return true
		}
	}
	return false
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
