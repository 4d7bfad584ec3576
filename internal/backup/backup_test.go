package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndRestore(t *testing.T) {
	root := t.TempDir()
	backups := filepath.Join(root, ".upsync", "backups")

	rel := "docs/guide.md"
	full := filepath.Join(root, "docs", "guide.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte("original"), 0644))

	stamp := "20260828-120000"
	require.NoError(t, Save(backups, root, rel, stamp))

	// Overwrite, then restore.
	require.NoError(t, os.WriteFile(full, []byte("clobbered"), 0644))
	require.NoError(t, Restore(backups, root, rel, stamp))

	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestSave_MissingSourceIsNoop(t *testing.T) {
	root := t.TempDir()
	backups := filepath.Join(root, "backups")
	assert.NoError(t, Save(backups, root, "never-existed.md", "20260828-120000"))
	_, err := os.Stat(filepath.Join(backups, "20260828-120000"))
	assert.True(t, os.IsNotExist(err))
}

func TestRestore_MissingBackupIsError(t *testing.T) {
	root := t.TempDir()
	err := Restore(filepath.Join(root, "backups"), root, "a.md", "20260828-120000")
	assert.Error(t, err)
}

func TestLatestStamp(t *testing.T) {
	backups := t.TempDir()

	stamp, err := LatestStamp(backups)
	require.NoError(t, err)
	assert.Empty(t, stamp)

	require.NoError(t, os.MkdirAll(filepath.Join(backups, "20260801-090000"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(backups, "20260828-120000"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(backups, "20260815-100000"), 0755))

	stamp, err = LatestStamp(backups)
	require.NoError(t, err)
	assert.Equal(t, "20260828-120000", stamp)
}

func TestLatestStamp_MissingDir(t *testing.T) {
	stamp, err := LatestStamp(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, stamp)
}
