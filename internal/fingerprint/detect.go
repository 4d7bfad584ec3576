package fingerprint

import (
	"path/filepath"

	"github.com/ruminaider/upsync/internal/hashing"
)

// Confidence grades how certain a version match is.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// Method records which detection path produced a match.
type Method int

const (
	MethodSignature Method = iota
	MethodFull
)

func (m Method) String() string {
	if m == MethodSignature {
		return "signature"
	}
	return "full"
}

// Match identifies the release a project's files correspond to.
type Match struct {
	VersionID       string
	Confidence      Confidence
	MatchedFiles    int
	TotalFiles      int
	MatchPercentage float64
	Method          Method
}

// Detector identifies which release a project's files were installed from.
type Detector struct {
	store *Store
}

// NewDetector returns a detector reading from store.
func NewDetector(store *Store) *Detector {
	return &Detector{store: store}
}

// Detect tries the signature fast path first and falls back to a scored
// full scan. A nil match means the project corresponds to no known release
// and must be treated as unversioned. Missing or unreadable project files
// are non-matches for that file, never errors.
func (d *Detector) Detect(projectDir string) (*Match, error) {
	db, err := d.store.Database()
	if err != nil {
		return nil, err
	}
	if m := detectBySignature(db, projectDir); m != nil {
		return m, nil
	}
	return fullScan(db, projectDir), nil
}

// FullScan skips the signature fast path, for callers that already know the
// signature files were touched.
func (d *Detector) FullScan(projectDir string) (*Match, error) {
	db, err := d.store.Database()
	if err != nil {
		return nil, err
	}
	return fullScan(db, projectDir), nil
}

// detectBySignature checks, newest version first, whether every signature
// file hashes to that version's stored fingerprint. All must match.
func detectBySignature(db *Database, projectDir string) *Match {
	if len(db.SignatureFiles) == 0 {
		return nil
	}

	local := make(map[string]string, len(db.SignatureFiles))
	for _, path := range db.SignatureFiles {
		h, err := hashing.HashFile(filepath.Join(projectDir, filepath.FromSlash(path)))
		if err != nil {
			return nil // a missing signature file rules the fast path out
		}
		local[path] = h
	}

	for _, id := range db.VersionIDs() {
		rec := db.Versions[id]
		all := true
		for _, path := range db.SignatureFiles {
			if rec.Fingerprints[path] != local[path] {
				all = false
				break
			}
		}
		if all {
			return &Match{
				VersionID:       id,
				Confidence:      ConfidenceHigh,
				MatchedFiles:    len(db.SignatureFiles),
				TotalFiles:      len(db.SignatureFiles),
				MatchPercentage: 100,
				Method:          MethodSignature,
			}
		}
	}
	return nil
}

// fullScan scores every version, newest first, by the fraction of its
// fingerprinted files that match locally, keeping the best and stopping
// early on a perfect score.
func fullScan(db *Database, projectDir string) *Match {
	hashed := make(map[string]string) // per-path hash cache across versions

	localHash := func(path string) string {
		if h, ok := hashed[path]; ok {
			return h
		}
		h, err := hashing.HashFile(filepath.Join(projectDir, filepath.FromSlash(path)))
		if err != nil {
			h = "" // degrade to a non-match, not an error
		}
		hashed[path] = h
		return h
	}

	var best *Match
	for _, id := range db.VersionIDs() {
		rec := db.Versions[id]
		if len(rec.Fingerprints) == 0 {
			continue
		}
		matched := 0
		for path, want := range rec.Fingerprints {
			if h := localHash(path); h != "" && h == want {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		pct := 100 * float64(matched) / float64(len(rec.Fingerprints))
		if best == nil || pct > best.MatchPercentage {
			best = &Match{
				VersionID:       id,
				Confidence:      confidenceFor(pct),
				MatchedFiles:    matched,
				TotalFiles:      len(rec.Fingerprints),
				MatchPercentage: pct,
				Method:          MethodFull,
			}
		}
		if pct == 100 {
			break
		}
	}
	return best
}

func confidenceFor(pct float64) Confidence {
	switch {
	case pct >= 95:
		return ConfidenceHigh
	case pct >= 70:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
