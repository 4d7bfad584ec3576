package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruminaider/upsync/internal/state"
)

func TestReadWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	m := Manifest{
		Version:         FormatVersion,
		BaselineVersion: "v5",
		Files: []state.TrackedFile{
			{Path: "AGENT.md", OriginalHash: "sha256:aaaa", IsOfficial: true},
			{Path: "docs/guide.md", OriginalHash: "sha256:bbbb", Customized: true},
		},
	}
	require.NoError(t, Write(dir, m))

	got, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestRead_MissingFileIsEmpty(t *testing.T) {
	m, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, m.Files)
	assert.Equal(t, FormatVersion, m.Version)
}

func TestUpsertLookupRemove(t *testing.T) {
	var m Manifest

	m.Upsert(state.TrackedFile{Path: "a.md", OriginalHash: "sha256:1"})
	m.Upsert(state.TrackedFile{Path: "b.md", OriginalHash: "sha256:2"})
	m.Upsert(state.TrackedFile{Path: "a.md", OriginalHash: "sha256:3", Customized: true})

	require.Len(t, m.Files, 2)
	f, ok := m.Lookup("a.md")
	require.True(t, ok)
	assert.Equal(t, "sha256:3", f.OriginalHash)
	assert.True(t, f.Customized)

	m.Remove("a.md")
	_, ok = m.Lookup("a.md")
	assert.False(t, ok)
	require.Len(t, m.Files, 1)
}
