package release

import (
	"fmt"
	"os/exec"
	"strings"
)

// Run executes a git command in the given directory and returns trimmed stdout.
func Run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return strings.TrimSpace(string(out)), err
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo returns true if dir is a git repository.
func IsRepo(dir string) bool {
	_, err := Run(dir, "rev-parse", "--git-dir")
	return err == nil
}

// Clone clones the upstream template repository into dir with full tag
// history, since releases are tags.
func Clone(url, dir string) error {
	cmd := exec.Command("git", "clone", "--quiet", url, dir)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("cloning %s: %s", url, strings.TrimSpace(string(out)))
	}
	return nil
}

// Fetch refreshes an existing upstream clone, pruning stale tags.
func Fetch(dir string) error {
	if _, err := Run(dir, "fetch", "--quiet", "--tags", "--prune", "--prune-tags", "--force"); err != nil {
		return fmt.Errorf("fetching upstream: %w", err)
	}
	return nil
}

// Tags returns release tags newest first.
func Tags(dir string) ([]string, error) {
	out, err := Run(dir, "tag", "--sort=-creatordate")
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// HeadSHA returns the SHA of HEAD.
func HeadSHA(dir string) (string, error) {
	return Run(dir, "rev-parse", "HEAD")
}

// FileAt reads path as it exists at ref, without touching the working
// tree. The second return is false when the file does not exist at that
// ref; absence is data, not an error.
func FileAt(dir, ref, path string) (string, bool, error) {
	cmd := exec.Command("git", "show", ref+":"+path)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 128 {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading %s at %s: %w", path, ref, err)
	}
	return string(out), true, nil
}

// ListFiles returns every path present at ref, in repository order.
func ListFiles(dir, ref string) ([]string, error) {
	out, err := Run(dir, "ls-tree", "-r", "--name-only", ref)
	if err != nil {
		return nil, fmt.Errorf("listing files at %s: %w", ref, err)
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}
