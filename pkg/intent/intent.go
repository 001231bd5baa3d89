package intent

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads an intent from a YAML file.
func Load(path string) (*Intent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading intent file: %w", err)
	}

	var in Intent
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parsing intent YAML: %w", err)
	}

	return &in, nil
}

// LoadProject loads an intent from a project directory.
// It looks for intent.yaml in the given directory.
func LoadProject(projectDir string) (*Intent, error) {
	return Load(filepath.Join(projectDir, "intent.yaml"))
}
