package commands

import (
	"errors"
	"fmt"

	"github.com/ruminaider/upsync/internal/backup"
	"github.com/ruminaider/upsync/internal/hashing"
	"github.com/ruminaider/upsync/internal/manifest"
	"github.com/ruminaider/upsync/internal/paths"
	"github.com/ruminaider/upsync/internal/pending"
)

// ErrNoPendingConflicts marks a resolve with nothing to resolve.
var ErrNoPendingConflicts = errors.New("no pending conflicts")

// ResolveResult lists the files a resolve pass touched.
type ResolveResult struct {
	Accepted []string
	Restored []string
}

// PendingConflicts returns the conflicts recorded by the last update, if
// any.
func PendingConflicts(dir string) (*Workspace, pending.Conflicts, error) {
	w, err := LoadWorkspace(dir)
	if err != nil {
		return nil, pending.Conflicts{}, err
	}
	p, err := pending.Read(w.StateDir)
	if err != nil {
		return nil, pending.Conflicts{}, err
	}
	return w, p, nil
}

// Accept marks all pending conflicts resolved. The files keep whatever
// the user edited them into; their customization flag is recomputed
// against the upstream version the conflicts came from.
func Accept(dir string) (*ResolveResult, error) {
	w, p, err := PendingConflicts(dir)
	if err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return nil, ErrNoPendingConflicts
	}

	res := &ResolveResult{}
	for _, f := range p.Files {
		res.Accepted = append(res.Accepted, f.Path)

		content, ok, err := w.CurrentFile(f.Path)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		entry, _ := w.Manifest.Lookup(f.Path)
		entry.Path = f.Path
		entry.IsOfficial = true
		entry.Customized = entry.OriginalHash == "" || hashing.HashString(content) != entry.OriginalHash
		w.Manifest.Upsert(entry)
	}

	if err := manifest.Write(w.StateDir, w.Manifest); err != nil {
		return nil, err
	}
	if err := pending.Clear(w.StateDir); err != nil {
		return nil, err
	}
	return res, nil
}

// Reject restores every conflicted file from its pre-update backup and
// clears the pending record. Files without a backup stamp were never
// overwritten and are left alone.
func Reject(dir string) (*ResolveResult, error) {
	w, p, err := PendingConflicts(dir)
	if err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return nil, ErrNoPendingConflicts
	}

	backupsDir := paths.BackupsDir(w.Root)
	res := &ResolveResult{}
	for _, f := range p.Files {
		if f.Backup == "" {
			continue
		}
		if err := backup.Restore(backupsDir, w.Root, f.Path, f.Backup); err != nil {
			return nil, fmt.Errorf("rejecting %s: %w", f.Path, err)
		}
		res.Restored = append(res.Restored, f.Path)

		// The restored copy diverges from the new baseline again.
		entry, _ := w.Manifest.Lookup(f.Path)
		entry.Path = f.Path
		entry.IsOfficial = true
		entry.Customized = true
		w.Manifest.Upsert(entry)
	}

	if err := manifest.Write(w.StateDir, w.Manifest); err != nil {
		return nil, err
	}
	if err := pending.Clear(w.StateDir); err != nil {
		return nil, err
	}
	return res, nil
}
