package fingerprint

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"go.yaml.in/yaml/v3"
)

// SupportedSchemaVersion is the only database schema this build reads.
const SupportedSchemaVersion = "1"

// DatabaseFileName is the fingerprint database file shipped in upstream
// template repositories.
const DatabaseFileName = ".upsync-fingerprints.yaml"

// ErrSchemaVersion marks a database whose schema_version is missing or
// unsupported. It is fatal to version detection, not to the rest of the
// engine.
var ErrSchemaVersion = errors.New("unsupported fingerprint database schema")

// VersionRecord holds the per-file fingerprints of one release.
type VersionRecord struct {
	ReleaseDate  string            `yaml:"release_date"`
	ReleaseURL   string            `yaml:"release_url,omitempty"`
	Fingerprints map[string]string `yaml:"fingerprints"`
}

// Database maps release ids to per-file content fingerprints, plus the
// reduced signature subset used by the detection fast path. Immutable once
// loaded; safe for concurrent readers.
type Database struct {
	SchemaVersion  string                   `yaml:"schema_version"`
	TrackedFiles   []string                 `yaml:"tracked_files"`
	SignatureFiles []string                 `yaml:"signature_files"`
	Versions       map[string]VersionRecord `yaml:"versions"`
}

// VersionIDs returns release ids newest first: release date descending,
// tie-broken by id descending. Dates are YYYY-MM-DD strings, so lexical
// order is chronological.
func (db *Database) VersionIDs() []string {
	ids := make([]string, 0, len(db.Versions))
	for id := range db.Versions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		di, dj := db.Versions[ids[i]].ReleaseDate, db.Versions[ids[j]].ReleaseDate
		if di != dj {
			return di > dj
		}
		return ids[i] > ids[j]
	})
	return ids
}

// Load reads and validates a fingerprint database file.
func Load(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fingerprint database: %w", err)
	}
	var db Database
	if err := yaml.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("parsing fingerprint database: %w", err)
	}
	if db.SchemaVersion != SupportedSchemaVersion {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrSchemaVersion, db.SchemaVersion, SupportedSchemaVersion)
	}

	tracked := make(map[string]bool, len(db.TrackedFiles))
	for _, p := range db.TrackedFiles {
		tracked[p] = true
	}
	for _, p := range db.SignatureFiles {
		if !tracked[p] {
			return nil, fmt.Errorf("%w: signature file %q not in tracked_files", ErrSchemaVersion, p)
		}
	}
	return &db, nil
}

// Store loads a database once and serves it read-only for the process
// lifetime. The zero synchronization cost after load makes it safe to share
// across concurrent per-file work.
type Store struct {
	path string
	once sync.Once
	db   *Database
	err  error
}

// NewStore returns a store for the database at path. Nothing is read until
// the first Database call.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Database returns the loaded database, loading it on first use. The load
// result, success or failure, is sticky.
func (s *Store) Database() (*Database, error) {
	s.once.Do(func() {
		s.db, s.err = Load(s.path)
	})
	return s.db, s.err
}
