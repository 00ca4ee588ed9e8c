package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// FileName is the project manifest written at the project root by setup.
const FileName = "lab.yaml"

// LayoutVersion is the manifest layout version stamped into new projects.
const LayoutVersion = "1.0.0"

// ErrNotFound is returned when the project has no manifest. The manifest
// is optional metadata: root resolution never depends on it.
var ErrNotFound = errors.New("project manifest not found")

// Project is the lab.yaml content.
type Project struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Created     string `yaml:"created,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// NewProject returns a manifest for a freshly initialized project.
func NewProject(name string) *Project {
	return &Project{
		Name:    name,
		Version: LayoutVersion,
		Created: time.Now().UTC().Format(time.RFC3339),
	}
}

// Path returns the manifest location for a project root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Write marshals p to lab.yaml at the project root.
func Write(root string, p *Project) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(Path(root), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", FileName, err)
	}
	return nil
}

// Read loads and parses lab.yaml from the project root.
func Read(root string) (*Project, error) {
	data, err := os.ReadFile(Path(root))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &p, nil
}
