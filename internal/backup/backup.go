package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Stamp returns a filesystem-safe timestamp naming one backup run. All
// files backed up during a single update share a stamp.
func Stamp() string {
	return time.Now().UTC().Format("20060102-150405")
}

// Save copies root/relPath into backupsDir/stamp/relPath before the
// original is overwritten or removed. A missing source file is a no-op,
// not an error: there is nothing to protect.
func Save(backupsDir, root, relPath, stamp string) error {
	src := filepath.Join(root, filepath.FromSlash(relPath))
	data, err := os.ReadFile(src)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("backing up %s: %w", relPath, err)
	}

	dst := filepath.Join(backupsDir, stamp, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

// Restore copies the backed-up copy of relPath from stamp back into the
// project tree.
func Restore(backupsDir, root, relPath, stamp string) error {
	src := filepath.Join(backupsDir, stamp, filepath.FromSlash(relPath))
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("restoring %s from backup %s: %w", relPath, stamp, err)
	}

	dst := filepath.Join(root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

// LatestStamp returns the newest backup stamp, or "" when no backups
// exist. Stamps sort lexically by construction.
func LatestStamp(backupsDir string) (string, error) {
	entries, err := os.ReadDir(backupsDir)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var stamps []string
	for _, e := range entries {
		if e.IsDir() {
			stamps = append(stamps, e.Name())
		}
	}
	if len(stamps) == 0 {
		return "", nil
	}
	sort.Strings(stamps)
	return stamps[len(stamps)-1], nil
}
