package history

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// Locate finds the worktree root of the repository containing path and
// returns it along with path relative to that root, slash separated.
func Locate(path string) (root, rel string, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", err
	}
	if resolved, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(resolved, filepath.Base(abs))
	}

	repo, err := gogit.PlainOpenWithOptions(filepath.Dir(abs), &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", fmt.Errorf("git repository not detected for %s: %w", path, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", "", fmt.Errorf("repository has no worktree: %w", err)
	}

	root = wt.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	rel, err = filepath.Rel(root, abs)
	if err != nil {
		return "", "", err
	}
	return root, filepath.ToSlash(rel), nil
}
