package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseProblemYAML parses a Problem from YAML bytes and validates it.
// This is used where the problem arrives as a payload, not via the filesystem.
func ParseProblemYAML(data []byte) (*Problem, error) {
	var p Problem
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse problem yaml: %w", err)
	}

	if err := validateProblem(&p); err != nil {
		return nil, fmt.Errorf("invalid problem: %w", err)
	}

	return &p, nil
}

// ParseProblemYAMLString parses a Problem from a YAML string and validates it.
func ParseProblemYAMLString(yamlText string) (*Problem, error) {
	return ParseProblemYAML([]byte(yamlText))
}
