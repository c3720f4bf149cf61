// Package config handles loading, validation and persistence of the
// redeye configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	// Session storage configuration
	Sessions SessionsConfig `yaml:"sessions" json:"sessions"`

	// External tool configuration
	Tools ToolsConfig `yaml:"tools" json:"tools"`

	// Scanning behavior
	Scanning ScanningConfig `yaml:"scanning" json:"scanning"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SessionsConfig holds session storage settings
type SessionsConfig struct {
	// Root directory that holds one subdirectory per session
	Root string `yaml:"root" json:"root"`
}

// ToolsConfig holds the names of the external binaries redeye drives.
// Overriding these is only useful for wrapper scripts or test doubles;
// the defaults are what any real system provides.
type ToolsConfig struct {
	// Scanner binary
	Nmap string `yaml:"nmap" json:"nmap"`

	// Scan comparison binary
	Ndiff string `yaml:"ndiff" json:"ndiff"`

	// XML-to-HTML transform binary
	Xsltproc string `yaml:"xsltproc" json:"xsltproc"`

	// Optional XSL stylesheet passed to xsltproc; empty means the
	// stylesheet referenced by the scan XML itself is used
	Stylesheet string `yaml:"stylesheet" json:"stylesheet"`
}

// ScanningConfig holds scanning-related settings
type ScanningConfig struct {
	// Default port specification when none is set interactively;
	// empty means the scanner's own default
	DefaultPorts string `yaml:"default_ports" json:"default_ports"`

	// Require a typed confirmation before running dangerous script scans
	ConfirmDangerous bool `yaml:"confirm_dangerous" json:"confirm_dangerous"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level" json:"level"`

	// Log format (text, json)
	Format string `yaml:"format" json:"format"`

	// Log output (stdout, stderr, file path)
	Output string `yaml:"output" json:"output"`
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Sessions: SessionsConfig{
			Root: "redeye_sessions",
		},
		Tools: ToolsConfig{
			Nmap:       "nmap",
			Ndiff:      "ndiff",
			Xsltproc:   "xsltproc",
			Stylesheet: "",
		},
		Scanning: ScanningConfig{
			DefaultPorts:     "",
			ConfirmDangerous: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	// Start with defaults
	config := Default()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil // Return defaults if no config file
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Sessions.Root == "" {
		return fmt.Errorf("sessions root is required")
	}

	if c.Tools.Nmap == "" {
		return fmt.Errorf("nmap tool name is required")
	}
	if c.Tools.Ndiff == "" {
		return fmt.Errorf("ndiff tool name is required")
	}
	if c.Tools.Xsltproc == "" {
		return fmt.Errorf("xsltproc tool name is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

// RequiredTools returns the external binaries that must be present on the
// search path before the interactive shell can start.
func (c *Config) RequiredTools() []string {
	return []string{c.Tools.Nmap, c.Tools.Ndiff, c.Tools.Xsltproc}
}
