// Package config provides configuration loading and management for
// treegen: where the specification lives, what the scanner ignores, how
// git is invoked, and how the watcher debounces.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete treegen configuration
type Config struct {
	Spec  SpecConfig  `yaml:"spec"`
	Scan  ScanConfig  `yaml:"scan"`
	Git   GitConfig   `yaml:"git"`
	Watch WatchConfig `yaml:"watch"`
}

// SpecConfig configures the specification document
type SpecConfig struct {
	// File is the specification filename (default: treegen.yml)
	File string `yaml:"file"`
}

// ScanConfig configures filesystem scanning
type ScanConfig struct {
	// ExcludeDirs are directory names skipped in addition to the
	// built-in set (node_modules, target, ...)
	ExcludeDirs []string `yaml:"exclude_dirs"`
	// ExcludeFiles are file names skipped in addition to the built-in set
	ExcludeFiles []string `yaml:"exclude_files"`
	// ExcludePatterns are glob patterns matched against scanned paths
	ExcludePatterns []string `yaml:"exclude_patterns"`
}

// GitConfig configures how clone targets are fetched
type GitConfig struct {
	// Binary is the git executable to invoke (default: git)
	Binary string `yaml:"binary"`
}

// WatchConfig configures the watch command
type WatchConfig struct {
	// Debounce is how long to wait after the last spec change before
	// re-synchronizing (default: 500ms)
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Spec: SpecConfig{
			File: "treegen.yml",
		},
		Scan: ScanConfig{},
		Git: GitConfig{
			Binary: "git",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Spec.File == "" {
		return fmt.Errorf("spec.file is required")
	}
	if c.Git.Binary == "" {
		return fmt.Errorf("git.binary is required")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce cannot be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Spec.File != "" {
		c.Spec.File = other.Spec.File
	}

	if len(other.Scan.ExcludeDirs) > 0 {
		c.Scan.ExcludeDirs = other.Scan.ExcludeDirs
	}
	if len(other.Scan.ExcludeFiles) > 0 {
		c.Scan.ExcludeFiles = other.Scan.ExcludeFiles
	}
	if len(other.Scan.ExcludePatterns) > 0 {
		c.Scan.ExcludePatterns = other.Scan.ExcludePatterns
	}

	if other.Git.Binary != "" {
		c.Git.Binary = other.Git.Binary
	}

	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
}
