package pending

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const pendingFile = "pending-conflicts.yaml"

// ConflictFile records one file whose merge produced conflict regions.
type ConflictFile struct {
	Path      string `yaml:"path"`
	Conflicts int    `yaml:"conflicts"`
	Backup    string `yaml:"backup,omitempty"` // backup stamp for restore on reject
}

// Conflicts represents merge conflicts awaiting resolution. They are
// written by update and consumed by resolve.
type Conflicts struct {
	PendingSince    string         `yaml:"pending_since,omitempty"`
	UpstreamVersion string         `yaml:"upstream_version,omitempty"`
	Files           []ConflictFile `yaml:"files,omitempty"`
}

// IsEmpty returns true if no conflicts are pending.
func (c Conflicts) IsEmpty() bool {
	return len(c.Files) == 0
}

// Lookup finds the pending entry for path.
func (c Conflicts) Lookup(path string) (ConflictFile, bool) {
	for _, f := range c.Files {
		if f.Path == path {
			return f, true
		}
	}
	return ConflictFile{}, false
}

// Write writes pending conflicts to stateDir/pending-conflicts.yaml.
func Write(stateDir string, c Conflicts) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling pending conflicts: %w", err)
	}
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(stateDir, pendingFile), data, 0644)
}

// Read reads pending conflicts. Returns empty Conflicts (with
// IsEmpty() = true) if the file doesn't exist.
func Read(stateDir string) (Conflicts, error) {
	data, err := os.ReadFile(filepath.Join(stateDir, pendingFile))
	if err != nil {
		if os.IsNotExist(err) {
			return Conflicts{}, nil
		}
		return Conflicts{}, fmt.Errorf("reading pending conflicts: %w", err)
	}
	var c Conflicts
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Conflicts{}, fmt.Errorf("parsing pending conflicts: %w", err)
	}
	return c, nil
}

// Clear removes the pending-conflicts.yaml file. No error if the file
// doesn't exist.
func Clear(stateDir string) error {
	err := os.Remove(filepath.Join(stateDir, pendingFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing pending conflicts: %w", err)
	}
	return nil
}
