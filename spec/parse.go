package spec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a specification document into the typed model. The
// document is a bare YAML list of projects at indentation zero.
//
// Parsing is only used to build the model; structural mutations of the
// document go through the edit package, which preserves formatting.
func Parse(data []byte) (*Config, error) {
	var projects []Project
	if err := yaml.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("parse specification: %w", err)
	}
	return &Config{Projects: projects}, nil
}

// ParseString decodes a specification document held in memory.
func ParseString(text string) (*Config, error) {
	return Parse([]byte(text))
}

// Load reads and parses the specification document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read specification %s: %w", path, err)
	}
	return Parse(data)
}

// Exists reports whether a specification document is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
