package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ruminaider/upsync/internal/fingerprint"
	"github.com/ruminaider/upsync/internal/hashing"
	"github.com/ruminaider/upsync/internal/manifest"
	"github.com/ruminaider/upsync/internal/paths"
	"github.com/ruminaider/upsync/internal/project"
	"github.com/ruminaider/upsync/internal/release"
	"github.com/ruminaider/upsync/internal/state"
)

// ErrAlreadyInitialized marks a project that already has an upsync config.
var ErrAlreadyInitialized = errors.New("project is already initialized")

// InitOptions configures project initialization.
type InitOptions struct {
	Upstream         string // git URL of the template repository
	Ref              string // branch to follow; upstream default when empty
	AssumeCustomized bool   // treat every existing file as customized
}

// InitResult describes what init found and recorded.
type InitResult struct {
	Root       string
	Baseline   string             // release the existing files were detected as
	Match      *fingerprint.Match // nil when no release matched
	Tracked    []string
	Customized []string
	Notes      []string
}

// Init sets up a project to track an upstream template repository. The
// upstream is cloned, its fingerprint database is used to detect which
// release the project's existing files came from, and the manifest is
// seeded with that release's baseline hashes. A project with no
// recognizable files starts with an empty baseline and picks everything
// up as new on the first update.
func Init(dir string, opts InitOptions) (*InitResult, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if _, err := project.ReadConfig(root); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyInitialized, root)
	} else if !errors.Is(err, project.ErrNoProjectConfig) {
		return nil, err
	}

	cfg := project.Config{
		Version:          "1",
		Upstream:         opts.Upstream,
		Ref:              opts.Ref,
		AssumeCustomized: opts.AssumeCustomized,
	}

	upstreamDir := paths.UpstreamDir(cfg.Name())
	if _, err := os.Stat(upstreamDir); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(upstreamDir), 0755); err != nil {
			return nil, err
		}
		if err := release.Clone(cfg.Upstream, upstreamDir); err != nil {
			return nil, err
		}
	} else if err := release.Fetch(upstreamDir); err != nil {
		return nil, err
	}

	res := &InitResult{Root: root}

	// The upstream ships its fingerprint database in-tree, so the working
	// copy of the clone always has the newest one.
	store := fingerprint.NewStore(filepath.Join(upstreamDir, fingerprint.DatabaseFileName))
	detector := fingerprint.NewDetector(store)
	match, err := detector.Detect(root)
	if err != nil {
		res.Notes = append(res.Notes, fmt.Sprintf("version detection unavailable: %v", err))
	} else if match != nil {
		res.Match = match
		res.Baseline = match.VersionID
	}

	cfg.BaselineVersion = res.Baseline
	m := manifest.Manifest{Version: manifest.FormatVersion, BaselineVersion: res.Baseline}

	if res.Baseline != "" {
		files, err := release.ListFiles(upstreamDir, res.Baseline)
		if err != nil {
			return nil, err
		}
		for _, p := range files {
			if cfg.Excluded(p) || p == fingerprint.DatabaseFileName || strings.HasPrefix(p, ".upsync/") {
				continue
			}
			content, ok, err := release.FileAt(upstreamDir, res.Baseline, p)
			if !ok || err != nil {
				continue
			}
			baseHash := hashing.HashString(content)

			entry := state.TrackedFile{Path: p, OriginalHash: baseHash, IsOfficial: true}
			if data, rerr := os.ReadFile(filepath.Join(root, filepath.FromSlash(p))); rerr == nil {
				if opts.AssumeCustomized || hashing.Hash(data) != baseHash {
					entry.Customized = true
					res.Customized = append(res.Customized, p)
				}
			}
			m.Upsert(entry)
			res.Tracked = append(res.Tracked, p)
		}
	}

	if err := project.WriteConfig(root, cfg); err != nil {
		return nil, err
	}
	if err := manifest.Write(paths.ProjectStateDir(root), m); err != nil {
		return nil, err
	}
	return res, nil
}
