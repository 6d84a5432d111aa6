package native

import (
	"errors"
	"io/fs"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

func (r *Repository) worktree(action string) (*gogit.Worktree, Code) {
	if r.bare {
		return nil, fail(ClassRepository, CodeBareRepo,
			"cannot %s. This operation is not allowed against bare repositories.", action)
	}
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, failErr(ClassWorktree, err)
	}
	return wt, CodeOK
}

// IndexAdd stages the file at path. Directories are rejected with
// CodeDirectory, missing files with CodeNotFound.
func IndexAdd(r *Repository, path string) Code {
	begin()
	wt, code := r.worktree("add to index")
	if code.Failed() {
		return code
	}
	st, err := wt.Filesystem.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fail(ClassIndex, CodeNotFound, "could not find '%s' to stat", path)
		}
		return failErr(ClassOS, err)
	}
	if st.IsDir() {
		return fail(ClassIndex, CodeDirectory, "'%s' is a directory", path)
	}
	if _, err := wt.Add(path); err != nil {
		return failErr(ClassIndex, err)
	}
	return CodeOK
}

// IndexRemove unstages and deletes the file at path.
func IndexRemove(r *Repository, path string) Code {
	begin()
	wt, code := r.worktree("remove from index")
	if code.Failed() {
		return code
	}
	if _, err := wt.Remove(path); err != nil {
		if errors.Is(err, index.ErrEntryNotFound) || errors.Is(err, fs.ErrNotExist) {
			return fail(ClassIndex, CodeNotFound, "index does not contain '%s'", path)
		}
		return failErr(ClassIndex, err)
	}
	return CodeOK
}

// CommitOptions configures CommitCreate.
type CommitOptions struct {
	Author     Signature
	Committer  *Signature
	AllowEmpty bool
	All        bool
}

// CommitCreate records the index as a new commit on HEAD. An author is
// required; the committer defaults to the author.
func CommitCreate(r *Repository, message string, opts CommitOptions) (Oid, Code) {
	begin()
	wt, code := r.worktree("create a commit")
	if code.Failed() {
		return ZeroOid, code
	}
	if opts.Author.Name == "" {
		return ZeroOid, fail(ClassInvalid, CodeInvalid, "author field is required")
	}
	h, err := wt.Commit(message, &gogit.CommitOptions{
		Author:            opts.Author.toObject(),
		Committer:         opts.Committer.toObject(),
		AllowEmptyCommits: opts.AllowEmpty,
		All:               opts.All,
	})
	if err != nil {
		return ZeroOid, failErr(ClassObject, err)
	}
	return oidOf(h), CodeOK
}

// CheckoutOptions configures Checkout.
type CheckoutOptions struct {
	Create bool
	Force  bool
	// Target is the commit a created branch starts at. Zero means HEAD.
	Target Oid
}

// Checkout switches the worktree to branch. Local changes that would be
// overwritten return CodeConflict unless Force is set.
func Checkout(r *Repository, branch string, opts CheckoutOptions) Code {
	begin()
	wt, code := r.worktree("checkout")
	if code.Failed() {
		return code
	}
	refName := branchPrefix + branch
	if !ReferenceNameIsValid(refName) {
		return fail(ClassCheckout, CodeInvalidSpec, "'%s' is not a valid branch name", branch)
	}
	_, code = r.lookupRef(refName)
	switch {
	case opts.Create && code == CodeOK:
		return fail(ClassReference, CodeExists, "a branch named '%s' already exists", branch)
	case !opts.Create && code.Failed():
		return code
	}
	begin()

	co := &gogit.CheckoutOptions{
		Branch: plumbing.ReferenceName(refName),
		Create: opts.Create,
		Force:  opts.Force,
	}
	if opts.Create && !opts.Target.IsZero() {
		co.Hash = opts.Target.hash()
	}
	if !opts.Force {
		conflicts, err := trackedChanges(wt)
		if err != nil {
			return failErr(ClassWorktree, err)
		}
		switch {
		case conflicts == 1:
			return fail(ClassCheckout, CodeConflict, "1 conflict prevents checkout")
		case conflicts > 1:
			return fail(ClassCheckout, CodeConflict, "%d conflicts prevent checkout", conflicts)
		}
	}
	if err := wt.Checkout(co); err != nil {
		if errors.Is(err, gogit.ErrUnstagedChanges) || errors.Is(err, gogit.ErrWorktreeNotClean) {
			return fail(ClassCheckout, CodeConflict, "1 conflict prevents checkout")
		}
		return failErr(ClassCheckout, err)
	}
	return CodeOK
}

// trackedChanges counts tracked paths that differ from HEAD. go-git moves
// HEAD before it notices such changes, so they are checked up front.
func trackedChanges(wt *gogit.Worktree) (int, error) {
	st, err := wt.Status()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, s := range st {
		if s.Worktree == gogit.Untracked {
			continue
		}
		if s.Worktree != gogit.Unmodified || s.Staging != gogit.Unmodified {
			n++
		}
	}
	return n, nil
}

// StatusIsClean reports whether every tracked file matches HEAD. Untracked
// files are ignored.
func StatusIsClean(r *Repository) (bool, Code) {
	begin()
	wt, code := r.worktree("get status")
	if code.Failed() {
		return false, code
	}
	n, err := trackedChanges(wt)
	if err != nil {
		return false, failErr(ClassWorktree, err)
	}
	return n == 0, CodeOK
}
