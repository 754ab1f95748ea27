package storage

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	gantterrors "github.com/abatilo/gantt/internal/errors"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// FindProjectRoot walks up from cwd looking for .git directory.
// Returns the directory containing .git, or error if not found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		gitPath := filepath.Join(dir, ".git")
		info, err := os.Stat(gitPath)
		if err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding .git
			return "", gantterrors.NotInRepoError{}
		}
		dir = parent
	}
}

// ResolveDir turns a configured store directory into an absolute path:
// absolute paths are kept, "~/x" becomes a per-project directory under
// ~/x, and anything else is taken relative to the project root (or the
// working directory outside a repository).
func ResolveDir(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return dir, nil
	}

	root, err := FindProjectRoot()
	if errors.As(err, &gantterrors.NotInRepoError{}) {
		root, err = os.Getwd()
	}
	if err != nil {
		return "", err
	}

	if rest, ok := strings.CutPrefix(dir, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, rest, SanitizePath(root)), nil
	}
	return filepath.Join(root, dir), nil
}

// SanitizePath converts an absolute path to a safe directory name.
// "/Users/abatilo/myproject" -> "Users-abatilo-myproject"
func SanitizePath(path string) string {
	result := strings.TrimPrefix(path, "/")
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
