package commands

import (
	"github.com/ruminaider/upsync/internal/state"
)

// StatusResult groups tracked files by their pending action.
type StatusResult struct {
	Version         string // upstream version the files were compared against
	UpToDate        []string
	Customized      []string // preserved local edits
	UpdateAvail     []string
	MergeNeeded     []string
	NewUpstream     []string
	RemovedUpstream []string
}

// HasPendingWork returns true if any file needs an update, merge, add, or
// removal.
func (r *StatusResult) HasPendingWork() bool {
	return len(r.UpdateAvail) > 0 || len(r.MergeNeeded) > 0 ||
		len(r.NewUpstream) > 0 || len(r.RemovedUpstream) > 0
}

// Status classifies every tracked file against the newest upstream release
// (or version, when non-empty) without changing anything.
func Status(dir, version string) (*StatusResult, error) {
	w, err := LoadWorkspace(dir)
	if err != nil {
		return nil, err
	}
	if err := w.EnsureUpstream(); err != nil {
		return nil, err
	}
	if version == "" {
		if version, err = w.LatestVersion(); err != nil {
			return nil, err
		}
	}

	states, err := w.Classify(version)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{Version: version}
	for _, st := range states {
		switch st.Action {
		case state.ActionSkip:
			result.UpToDate = append(result.UpToDate, st.Path)
		case state.ActionPreserve:
			result.Customized = append(result.Customized, st.Path)
		case state.ActionUpdate:
			result.UpdateAvail = append(result.UpdateAvail, st.Path)
		case state.ActionMerge:
			result.MergeNeeded = append(result.MergeNeeded, st.Path)
		case state.ActionAdd:
			result.NewUpstream = append(result.NewUpstream, st.Path)
		case state.ActionRemove:
			result.RemovedUpstream = append(result.RemovedUpstream, st.Path)
		}
	}
	return result, nil
}
