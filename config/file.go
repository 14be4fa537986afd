package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse overlays YAML data on top of the current defaults. Keys missing from
// data keep their default value.
func Parse(data []byte) (Tuning, error) {
	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// LoadFile reads a YAML tuning file. An empty path yields the defaults.
func LoadFile(path string) (Tuning, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return Tuning{}, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// Marshal encodes t as YAML.
func (t Tuning) Marshal() ([]byte, error) {
	return yaml.Marshal(t)
}
