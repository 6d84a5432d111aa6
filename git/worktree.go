package git

import (
	"fmt"

	"github.com/jmgilman/gitbind/native"
)

// Add stages the given paths, relative to the working tree root.
//
// Missing paths fail with giterr.ErrNotFound and directories with
// giterr.ErrDirectory. Bare repositories fail with giterr.ErrBareRepo.
func (r *Repository) Add(paths ...string) error {
	for _, path := range paths {
		if code := native.IndexAdd(r.native, path); code.Failed() {
			return r.fail(code, "index_add", fmt.Sprintf("failed to add %q", path))
		}
	}
	return nil
}

// Remove deletes path from the index and the working tree.
func (r *Repository) Remove(path string) error {
	if code := native.IndexRemove(r.native, path); code.Failed() {
		return r.fail(code, "index_remove", fmt.Sprintf("failed to remove %q", path))
	}
	return nil
}

// Commit records the index as a new commit on the current branch.
//
// An author is required. Without AllowEmpty, a commit whose tree matches
// its parent is refused.
//
// Example:
//
//	commit, err := repo.Commit("Add new feature", git.CommitOptions{
//	    Author: git.Signature{Name: "John Doe", Email: "john@example.com"},
//	})
func (r *Repository) Commit(message string, opts CommitOptions) (*Commit, error) {
	nativeOpts := native.CommitOptions{
		Author:     native.Signature(opts.Author),
		AllowEmpty: opts.AllowEmpty,
		All:        opts.All,
	}
	if opts.Committer != nil {
		committer := native.Signature(*opts.Committer)
		nativeOpts.Committer = &committer
	}

	id, code := native.CommitCreate(r.native, message, nativeOpts)
	if code.Failed() {
		return nil, r.fail(code, "commit_create", "failed to create commit")
	}
	return r.commit(id)
}

// IsClean reports whether tracked files match HEAD. Untracked files are
// ignored.
func (r *Repository) IsClean() (bool, error) {
	clean, code := native.StatusIsClean(r.native)
	if code.Failed() {
		return false, r.fail(code, "status_list", "failed to read worktree status")
	}
	return clean, nil
}
