package commands

import (
	"fmt"

	"github.com/ruminaider/upsync/internal/diffreport"
)

// FileDiff pairs one tracked file's current and incoming content with the
// sectioned comparison between them.
type FileDiff struct {
	Path     string
	Version  string
	Current  string
	Incoming string
	Report   *diffreport.Report
}

// DiffFile compares the project's copy of path with the upstream copy at
// version (latest release when empty).
func DiffFile(dir, path, version string) (*FileDiff, error) {
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

	current, _, err := w.CurrentFile(path)
	if err != nil {
		return nil, err
	}
	incoming, ok, err := w.UpstreamFile(version, path)
	if err != nil {
		return nil, err
	}
	if current == "" && !ok {
		return nil, fmt.Errorf("%s exists neither locally nor upstream at %s", path, version)
	}

	report := diffreport.Compare(current, incoming, diffreport.DefaultContextLines)
	return &FileDiff{
		Path:     path,
		Version:  version,
		Current:  current,
		Incoming: incoming,
		Report:   &report,
	}, nil
}
