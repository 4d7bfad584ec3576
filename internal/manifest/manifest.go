package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/ruminaider/upsync/internal/state"
)

// FileName is the tracking manifest inside a project's .upsync directory.
const FileName = "manifest.yaml"

// FormatVersion is written into new manifests.
const FormatVersion = "1"

// Manifest records the baseline hash and customization state of every
// tracked file, plus the upstream release the baseline came from.
type Manifest struct {
	Version         string              `yaml:"version"`
	BaselineVersion string              `yaml:"baseline_version,omitempty"`
	Files           []state.TrackedFile `yaml:"files,omitempty"`
}

// Lookup finds the tracked entry for path.
func (m *Manifest) Lookup(path string) (state.TrackedFile, bool) {
	for _, f := range m.Files {
		if f.Path == path {
			return f, true
		}
	}
	return state.TrackedFile{}, false
}

// Upsert replaces the entry for f.Path or appends a new one.
func (m *Manifest) Upsert(f state.TrackedFile) {
	for i := range m.Files {
		if m.Files[i].Path == f.Path {
			m.Files[i] = f
			return
		}
	}
	m.Files = append(m.Files, f)
}

// Remove untracks path. Untracking is the only way an entry disappears.
func (m *Manifest) Remove(path string) {
	for i := range m.Files {
		if m.Files[i].Path == path {
			m.Files = append(m.Files[:i], m.Files[i+1:]...)
			return
		}
	}
}

// Read loads stateDir/manifest.yaml. A missing file yields an empty
// manifest, not an error.
func Read(stateDir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(stateDir, FileName))
	if os.IsNotExist(err) {
		return Manifest{Version: FormatVersion}, nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest: %w", err)
	}
	return m, nil
}

// Write saves the manifest, creating stateDir if needed.
func Write(stateDir string, m Manifest) error {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(stateDir, FileName), data, 0644)
}
