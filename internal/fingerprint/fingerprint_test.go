package fingerprint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/ruminaider/upsync/internal/hashing"
)

// writeProject writes files into a temp project dir and returns the dir
// plus a path→hash map usable as version fingerprints.
func writeProject(t *testing.T, files map[string]string) (string, map[string]string) {
	t.Helper()
	dir := t.TempDir()
	hashes := make(map[string]string, len(files))
	for path, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
		hashes[path] = hashing.HashString(content)
	}
	return dir, hashes
}

func writeDatabase(t *testing.T, db Database) string {
	t.Helper()
	data, err := yaml.Marshal(db)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), DatabaseFileName)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoad_RejectsBadSchema(t *testing.T) {
	path := writeDatabase(t, Database{SchemaVersion: "99"})
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrSchemaVersion)
}

func TestLoad_RejectsSignatureOutsideTracked(t *testing.T) {
	path := writeDatabase(t, Database{
		SchemaVersion:  SupportedSchemaVersion,
		TrackedFiles:   []string{"a.md"},
		SignatureFiles: []string{"b.md"},
	})
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrSchemaVersion)
}

func TestStore_LoadsOnce(t *testing.T) {
	path := writeDatabase(t, Database{
		SchemaVersion: SupportedSchemaVersion,
		TrackedFiles:  []string{"a.md"},
	})
	store := NewStore(path)
	first, err := store.Database()
	require.NoError(t, err)

	// Corrupt the file; the cached load must survive.
	require.NoError(t, os.WriteFile(path, []byte("schema_version: bogus"), 0644))
	second, err := store.Database()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestDetect_SignatureFastPath(t *testing.T) {
	files := map[string]string{
		"templates/AGENT.md":   "agent v5",
		"templates/README.md":  "readme v5",
		"templates/CONFIG.yml": "config v5",
		"docs/extra.md":        "extra",
	}
	dir, hashes := writeProject(t, files)

	db := Database{
		SchemaVersion:  SupportedSchemaVersion,
		TrackedFiles:   []string{"templates/AGENT.md", "templates/README.md", "templates/CONFIG.yml", "docs/extra.md"},
		SignatureFiles: []string{"templates/AGENT.md", "templates/README.md", "templates/CONFIG.yml"},
		Versions: map[string]VersionRecord{
			"v4": {
				ReleaseDate: "2025-01-01",
				Fingerprints: map[string]string{
					"templates/AGENT.md":   hashing.HashString("agent v4"),
					"templates/README.md":  hashing.HashString("readme v4"),
					"templates/CONFIG.yml": hashing.HashString("config v4"),
				},
			},
			"v5": {
				ReleaseDate: "2025-06-01",
				Fingerprints: map[string]string{
					"templates/AGENT.md":   hashes["templates/AGENT.md"],
					"templates/README.md":  hashes["templates/README.md"],
					"templates/CONFIG.yml": hashes["templates/CONFIG.yml"],
				},
			},
		},
	}

	detector := NewDetector(NewStore(writeDatabase(t, db)))
	match, err := detector.Detect(dir)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "v5", match.VersionID)
	assert.Equal(t, ConfidenceHigh, match.Confidence)
	assert.Equal(t, 100.0, match.MatchPercentage)
	assert.Equal(t, MethodSignature, match.Method)
}

func TestDetect_FullScanScoresBestVersion(t *testing.T) {
	dir, hashes := writeProject(t, map[string]string{
		"a.md": "alpha",
		"b.md": "beta",
		"c.md": "gamma edited locally",
		"d.md": "delta",
	})

	db := Database{
		SchemaVersion:  SupportedSchemaVersion,
		TrackedFiles:   []string{"a.md", "b.md", "c.md", "d.md"},
		SignatureFiles: []string{"a.md", "b.md", "c.md"},
		Versions: map[string]VersionRecord{
			"v1": {
				ReleaseDate: "2024-01-01",
				Fingerprints: map[string]string{
					"a.md": hashes["a.md"],
					"b.md": hashing.HashString("old beta"),
					"c.md": hashing.HashString("old gamma"),
					"d.md": hashing.HashString("old delta"),
				},
			},
			"v2": {
				ReleaseDate: "2024-06-01",
				Fingerprints: map[string]string{
					"a.md": hashes["a.md"],
					"b.md": hashes["b.md"],
					"c.md": hashing.HashString("gamma"),
					"d.md": hashes["d.md"],
				},
			},
		},
	}

	detector := NewDetector(NewStore(writeDatabase(t, db)))
	match, err := detector.Detect(dir)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "v2", match.VersionID)
	assert.Equal(t, MethodFull, match.Method)
	assert.Equal(t, 3, match.MatchedFiles)
	assert.Equal(t, 4, match.TotalFiles)
	assert.Equal(t, 75.0, match.MatchPercentage)
	assert.Equal(t, ConfidenceMedium, match.Confidence)
}

func TestDetect_MissingFilesDegradeGracefully(t *testing.T) {
	dir, hashes := writeProject(t, map[string]string{"a.md": "alpha"})

	db := Database{
		SchemaVersion:  SupportedSchemaVersion,
		TrackedFiles:   []string{"a.md", "missing.md"},
		SignatureFiles: []string{"a.md", "missing.md"},
		Versions: map[string]VersionRecord{
			"v1": {
				ReleaseDate: "2024-01-01",
				Fingerprints: map[string]string{
					"a.md":       hashes["a.md"],
					"missing.md": hashing.HashString("never written"),
				},
			},
		},
	}

	detector := NewDetector(NewStore(writeDatabase(t, db)))
	match, err := detector.Detect(dir)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, MethodFull, match.Method)
	assert.Equal(t, 1, match.MatchedFiles)
	assert.Equal(t, ConfidenceLow, match.Confidence)
}

func TestDetect_NoMatchReturnsNil(t *testing.T) {
	dir, _ := writeProject(t, map[string]string{"a.md": "totally local"})

	db := Database{
		SchemaVersion:  SupportedSchemaVersion,
		TrackedFiles:   []string{"a.md"},
		SignatureFiles: []string{"a.md"},
		Versions: map[string]VersionRecord{
			"v1": {
				ReleaseDate:  "2024-01-01",
				Fingerprints: map[string]string{"a.md": hashing.HashString("upstream content")},
			},
		},
	}

	detector := NewDetector(NewStore(writeDatabase(t, db)))
	match, err := detector.Detect(dir)
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestVersionIDs_NewestFirst(t *testing.T) {
	db := &Database{Versions: map[string]VersionRecord{
		"v1": {ReleaseDate: "2024-01-01"},
		"v3": {ReleaseDate: "2025-01-01"},
		"v2": {ReleaseDate: "2024-06-01"},
	}}
	assert.Equal(t, []string{"v3", "v2", "v1"}, db.VersionIDs())
}
