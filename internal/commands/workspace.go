package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ruminaider/upsync/internal/fingerprint"
	"github.com/ruminaider/upsync/internal/hashing"
	"github.com/ruminaider/upsync/internal/manifest"
	"github.com/ruminaider/upsync/internal/paths"
	"github.com/ruminaider/upsync/internal/project"
	"github.com/ruminaider/upsync/internal/release"
	"github.com/ruminaider/upsync/internal/state"
)

// Workspace bundles the project config, tracking manifest, and upstream
// clone location for one initialized project.
type Workspace struct {
	Root        string
	StateDir    string
	Config      project.Config
	Manifest    manifest.Manifest
	UpstreamDir string

	forceCustomized bool // per-run assume-customized override
}

// LoadWorkspace loads the workspace rooted at or above dir.
func LoadWorkspace(dir string) (*Workspace, error) {
	root, err := project.FindProjectRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("not an upsync project. Run 'upsync init <upstream-url>' first: %w", err)
	}
	cfg, err := project.ReadConfig(root)
	if err != nil {
		return nil, err
	}
	stateDir := paths.ProjectStateDir(root)
	m, err := manifest.Read(stateDir)
	if err != nil {
		return nil, err
	}
	return &Workspace{
		Root:        root,
		StateDir:    stateDir,
		Config:      cfg,
		Manifest:    m,
		UpstreamDir: paths.UpstreamDir(cfg.Name()),
	}, nil
}

// EnsureUpstream clones the upstream template repository on first use and
// refreshes it otherwise.
func (w *Workspace) EnsureUpstream() error {
	if _, err := os.Stat(w.UpstreamDir); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(w.UpstreamDir), 0755); err != nil {
			return err
		}
		return release.Clone(w.Config.Upstream, w.UpstreamDir)
	}
	return release.Fetch(w.UpstreamDir)
}

// LatestVersion returns the newest release tag of the upstream clone.
func (w *Workspace) LatestVersion() (string, error) {
	tags, err := release.Tags(w.UpstreamDir)
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", fmt.Errorf("upstream %s has no release tags", w.Config.Upstream)
	}
	return tags[0], nil
}

// UpstreamFile reads one file from the upstream clone at version.
func (w *Workspace) UpstreamFile(version, path string) (string, bool, error) {
	return release.FileAt(w.UpstreamDir, version, path)
}

// CurrentFile reads one project file. The second return is false when the
// file does not exist.
func (w *Workspace) CurrentFile(path string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(w.Root, filepath.FromSlash(path)))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), true, nil
}

// trackedPaths returns the union of manifest entries and upstream files at
// version, minus exclusions, sorted for stable output.
func (w *Workspace) trackedPaths(version string) ([]string, error) {
	seen := make(map[string]bool)
	var all []string

	add := func(p string) {
		// The fingerprint database and per-project state are metadata, not
		// templates.
		if seen[p] || w.Config.Excluded(p) || p == fingerprint.DatabaseFileName || strings.HasPrefix(p, ".upsync/") {
			return
		}
		seen[p] = true
		all = append(all, p)
	}

	for _, f := range w.Manifest.Files {
		add(f.Path)
	}

	upstream, err := release.ListFiles(w.UpstreamDir, version)
	if err != nil {
		return nil, err
	}
	for _, p := range upstream {
		add(p)
	}

	sort.Strings(all)
	return all, nil
}

// Classify computes the update action for every tracked file against the
// given upstream version.
func (w *Workspace) Classify(version string) ([]state.FileState, error) {
	pths, err := w.trackedPaths(version)
	if err != nil {
		return nil, err
	}

	states := make([]state.FileState, 0, len(pths))
	for _, p := range pths {
		in := state.Input{Path: p, AssumeCustomized: w.Config.AssumeCustomized || w.forceCustomized}

		if entry, ok := w.Manifest.Lookup(p); ok {
			in.OriginalHash = entry.OriginalHash
			in.AssumeCustomized = in.AssumeCustomized || entry.Customized
		}

		if content, ok, err := w.CurrentFile(p); err != nil {
			return nil, err
		} else if ok {
			in.CurrentHash = hashing.HashString(content)
		}

		if content, ok, err := w.UpstreamFile(version, p); err != nil {
			return nil, err
		} else if ok {
			in.UpstreamHash = hashing.HashString(content)
		}

		states = append(states, state.Classify(in))
	}
	return states, nil
}
