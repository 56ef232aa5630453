package recipe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML recipe from the given path.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Model.
func Parse(data []byte) (*Model, error) {
	var m Model

	err := yaml.Unmarshal(data, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipe YAML: %w", err)
	}

	applyDefaults(&m)

	return &m, nil
}

// applyDefaults normalizes optional fields so later passes never see nil maps.
func applyDefaults(m *Model) {
	for i := range m.Components {
		_ = m.Components[i].Walk(func(_ []int, child *Child) error {
			if child.Kind == ChildExtern && child.Extern.Properties == nil {
				child.Extern.Properties = map[string]Expression{}
			}

			return nil
		})
	}
}

// Marshal serializes a Model to YAML.
func Marshal(m *Model) ([]byte, error) {
	return yaml.Marshal(m)
}

// WriteFile writes a Model to the given path.
func WriteFile(m *Model, path string) error {
	data, err := Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write recipe file %s: %w", path, err)
	}

	return nil
}
