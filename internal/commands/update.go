package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ruminaider/upsync/internal/backup"
	"github.com/ruminaider/upsync/internal/hashing"
	"github.com/ruminaider/upsync/internal/manifest"
	"github.com/ruminaider/upsync/internal/merge"
	"github.com/ruminaider/upsync/internal/paths"
	"github.com/ruminaider/upsync/internal/pending"
	"github.com/ruminaider/upsync/internal/project"
	"github.com/ruminaider/upsync/internal/state"
)

// Plan is the classified update decision for every tracked file.
type Plan struct {
	Version string
	States  []state.FileState
}

// Pending returns the states that require a write, merge, or removal.
func (p *Plan) Pending() []state.FileState {
	var out []state.FileState
	for _, st := range p.States {
		switch st.Action {
		case state.ActionAdd, state.ActionUpdate, state.ActionMerge, state.ActionRemove:
			out = append(out, st)
		}
	}
	return out
}

// PlanUpdate fetches upstream and classifies every tracked file against
// version (latest release when empty). Nothing is written. With
// assumeCustomized set, every file is treated as customized for this run,
// forcing merges instead of overwrites.
func PlanUpdate(dir, version string, assumeCustomized bool) (*Workspace, *Plan, error) {
	w, err := LoadWorkspace(dir)
	if err != nil {
		return nil, nil, err
	}
	// Per-run override only; never persisted back into the config.
	w.forceCustomized = assumeCustomized
	if err := w.EnsureUpstream(); err != nil {
		return nil, nil, err
	}
	if version == "" {
		if version, err = w.LatestVersion(); err != nil {
			return nil, nil, err
		}
	}
	states, err := w.Classify(version)
	if err != nil {
		return nil, nil, err
	}
	return w, &Plan{Version: version, States: states}, nil
}

// ApplyResult reports what an update pass did.
type ApplyResult struct {
	Added      []string
	Updated    []string
	Merged     []string // semantic merges that resolved cleanly
	Conflicted []pending.ConflictFile
	Removed    []string
	Preserved  []string
	Notes      []string
	Stamp      string // backup stamp shared by every file touched
}

// Changed returns true if any file was written or removed.
func (r *ApplyResult) Changed() bool {
	return len(r.Added) > 0 || len(r.Updated) > 0 || len(r.Merged) > 0 ||
		len(r.Conflicted) > 0 || len(r.Removed) > 0
}

// ApplyUpdate executes a plan: adds and overwrites pristine files, runs the
// semantic merger where both sides changed, and records conflicts for
// later resolution. Every overwritten or removed file is backed up first
// under one shared stamp.
func ApplyUpdate(w *Workspace, plan *Plan) (*ApplyResult, error) {
	res := &ApplyResult{Stamp: backup.Stamp()}
	backupsDir := paths.BackupsDir(w.Root)

	for _, st := range plan.States {
		switch st.Action {
		case state.ActionSkip:
			// Baseline may still need a refresh after a version bump.
			if st.UpstreamHash != "" {
				w.Manifest.Upsert(state.TrackedFile{
					Path: st.Path, OriginalHash: st.UpstreamHash, IsOfficial: true,
				})
			}

		case state.ActionPreserve:
			res.Preserved = append(res.Preserved, st.Path)
			w.Manifest.Upsert(state.TrackedFile{
				Path: st.Path, OriginalHash: st.OriginalHash, IsOfficial: true, Customized: true,
			})

		case state.ActionAdd:
			if err := w.writeUpstream(plan.Version, st.Path); err != nil {
				return nil, err
			}
			res.Added = append(res.Added, st.Path)
			w.Manifest.Upsert(state.TrackedFile{
				Path: st.Path, OriginalHash: st.UpstreamHash, IsOfficial: true,
			})

		case state.ActionUpdate:
			if err := backup.Save(backupsDir, w.Root, st.Path, res.Stamp); err != nil {
				return nil, err
			}
			if err := w.writeUpstream(plan.Version, st.Path); err != nil {
				return nil, err
			}
			res.Updated = append(res.Updated, st.Path)
			w.Manifest.Upsert(state.TrackedFile{
				Path: st.Path, OriginalHash: st.UpstreamHash, IsOfficial: true,
			})

		case state.ActionRemove:
			if err := backup.Save(backupsDir, w.Root, st.Path, res.Stamp); err != nil {
				return nil, err
			}
			if err := os.Remove(filepath.Join(w.Root, filepath.FromSlash(st.Path))); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("removing %s: %w", st.Path, err)
			}
			res.Removed = append(res.Removed, st.Path)
			w.Manifest.Remove(st.Path)

		case state.ActionMerge:
			if err := w.mergeFile(plan, st, backupsDir, res); err != nil {
				return nil, err
			}
		}
	}

	w.Manifest.BaselineVersion = plan.Version
	if w.Manifest.Version == "" {
		w.Manifest.Version = "1"
	}
	if err := manifest.Write(w.StateDir, w.Manifest); err != nil {
		return nil, err
	}

	if len(res.Conflicted) > 0 {
		p := pending.Conflicts{
			PendingSince:    time.Now().UTC().Format(time.RFC3339),
			UpstreamVersion: plan.Version,
			Files:           res.Conflicted,
		}
		if err := pending.Write(w.StateDir, p); err != nil {
			return nil, err
		}
	}

	w.Config.BaselineVersion = plan.Version
	if err := project.WriteConfig(w.Root, w.Config); err != nil {
		return nil, err
	}

	return res, nil
}

// mergeFile runs the semantic 3-way merge for one customized file that
// upstream also changed. The base side is the file as shipped in the
// baseline release. Non-markdown files are never auto-merged: the local
// copy stays put and the file is queued for manual resolution.
func (w *Workspace) mergeFile(plan *Plan, st state.FileState, backupsDir string, res *ApplyResult) error {
	if !isMarkdown(st.Path) {
		res.Conflicted = append(res.Conflicted, pending.ConflictFile{Path: st.Path, Conflicts: 1})
		res.Notes = append(res.Notes, fmt.Sprintf("%s: not a markdown document, review manually with 'upsync diff'", st.Path))
		return nil
	}

	current, _, err := w.CurrentFile(st.Path)
	if err != nil {
		return err
	}
	incoming, _, err := w.UpstreamFile(plan.Version, st.Path)
	if err != nil {
		return err
	}

	// The baseline release's copy is the base document. With no recorded
	// baseline the base is empty and every shared section resolves
	// conservatively.
	var base string
	if w.Manifest.BaselineVersion != "" {
		base, _, err = w.UpstreamFile(w.Manifest.BaselineVersion, st.Path)
		if err != nil {
			return err
		}
	}

	result, err := merge.Merge(base, current, incoming, merge.Options{Label: st.Path})
	if err != nil {
		// The caller's fallback: keep the user's file, queue for manual review.
		res.Conflicted = append(res.Conflicted, pending.ConflictFile{Path: st.Path, Conflicts: 1})
		res.Notes = append(res.Notes, fmt.Sprintf("%s: semantic merge failed (%v), kept local copy", st.Path, err))
		return nil
	}

	if err := backup.Save(backupsDir, w.Root, st.Path, res.Stamp); err != nil {
		return err
	}
	if err := w.writeFile(st.Path, result.Merged); err != nil {
		return err
	}
	res.Notes = append(res.Notes, result.Notes...)

	if result.Conflicts > 0 {
		res.Conflicted = append(res.Conflicted, pending.ConflictFile{
			Path: st.Path, Conflicts: result.Conflicts, Backup: res.Stamp,
		})
	} else {
		res.Merged = append(res.Merged, st.Path)
	}

	// The merged copy counts as customized unless it matched incoming
	// exactly.
	w.Manifest.Upsert(state.TrackedFile{
		Path:         st.Path,
		OriginalHash: st.UpstreamHash,
		IsOfficial:   true,
		Customized:   hashing.HashString(result.Merged) != st.UpstreamHash,
	})
	return nil
}

func (w *Workspace) writeUpstream(version, path string) error {
	content, ok, err := w.UpstreamFile(version, path)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("upstream %s missing at %s", path, version)
	}
	return w.writeFile(path, content)
}

func (w *Workspace) writeFile(path, content string) error {
	full := filepath.Join(w.Root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, []byte(content), 0644)
}

func isMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md") ||
		strings.EqualFold(filepath.Ext(path), ".markdown")
}
