package commands

import (
	"path/filepath"

	"github.com/ruminaider/upsync/internal/fingerprint"
)

// Detect identifies which upstream release the project's files correspond
// to, using the fingerprint database shipped in the upstream clone. A nil
// match means no known release fits.
func Detect(dir string, full bool) (*fingerprint.Match, error) {
	w, err := LoadWorkspace(dir)
	if err != nil {
		return nil, err
	}
	if err := w.EnsureUpstream(); err != nil {
		return nil, err
	}

	store := fingerprint.NewStore(filepath.Join(w.UpstreamDir, fingerprint.DatabaseFileName))
	detector := fingerprint.NewDetector(store)
	if full {
		return detector.FullScan(w.Root)
	}
	return detector.Detect(w.Root)
}
