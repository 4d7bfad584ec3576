package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// SyncDir returns ~/.upsync.
func SyncDir() string {
	return filepath.Join(home(), ".upsync")
}

// UpstreamCacheDir returns ~/.upsync/upstream, where upstream template
// repositories are cloned.
func UpstreamCacheDir() string {
	return filepath.Join(SyncDir(), "upstream")
}

// UpstreamDir returns the clone directory for one named upstream.
func UpstreamDir(name string) string {
	return filepath.Join(UpstreamCacheDir(), name)
}

// ProjectStateDir returns <root>/.upsync, the per-project state directory
// holding the manifest, config, backups, and pending conflicts.
func ProjectStateDir(root string) string {
	return filepath.Join(root, ".upsync")
}

// BackupsDir returns <root>/.upsync/backups.
func BackupsDir(root string) string {
	return filepath.Join(ProjectStateDir(root), "backups")
}
