package git

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	platformerrors "github.com/jmgilman/gitbind/errors"
	"github.com/jmgilman/gitbind/native"
)

// CreateBranch creates a new local branch at the commit rev resolves to.
//
// The rev parameter can be a hash, a branch or tag name, or "HEAD". The
// branch is created but not checked out; use Checkout to switch to it.
//
// Fails with giterr.ErrExists if the branch already exists, giterr.ErrNotFound
// if rev does not resolve to a commit, and giterr.ErrInvalidSpec for names
// git would reject.
//
// Examples:
//
//	// Create branch from HEAD
//	err := repo.CreateBranch("feature-branch", "HEAD")
//
//	// Create branch from a tag
//	err := repo.CreateBranch("hotfix", "v1.0.0")
func (r *Repository) CreateBranch(name, rev string) error {
	commit, err := r.GetCommit(rev)
	if err != nil {
		return wrapError(err, fmt.Sprintf("failed to create branch %q", name))
	}
	if _, code := native.BranchCreate(r.native, name, commit.Hash, false); code.Failed() {
		return r.fail(code, "branch_create", fmt.Sprintf("failed to create branch %q", name))
	}
	return nil
}

// CreateBranchFromRemote creates a local branch that tracks a remote branch.
//
// The remoteBranch parameter should be in the format "remote/branch"
// (e.g., "origin/main"). The created branch is configured to track it.
//
// Example:
//
//	err := repo.CreateBranchFromRemote("main", "origin/main")
func (r *Repository) CreateBranchFromRemote(localName, remoteBranch string) error {
	remoteName, branchName, ok := strings.Cut(remoteBranch, "/")
	if !ok || remoteName == "" || branchName == "" {
		return platformerrors.Newf(platformerrors.CodeInvalidInput,
			"remote branch must be in format 'remote/branch', got %q", remoteBranch)
	}

	ref, code := native.BranchLookup(r.native, remoteBranch, true)
	if code.Failed() {
		return r.fail(code, "branch_lookup", fmt.Sprintf("failed to find remote branch %q", remoteBranch))
	}
	if _, code := native.BranchCreate(r.native, localName, ref.Target(), false); code.Failed() {
		return r.fail(code, "branch_create", fmt.Sprintf("failed to create local branch %q", localName))
	}

	sto := r.Underlying().Storer
	cfg, err := sto.Config()
	if err != nil {
		return platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "failed to read repository config")
	}
	cfg.Branches[localName] = &config.Branch{
		Name:   localName,
		Remote: remoteName,
		Merge:  plumbing.NewBranchReferenceName(branchName),
	}
	if err := sto.SetConfig(cfg); err != nil {
		return platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "failed to save tracking configuration")
	}
	return nil
}

// DeleteBranch removes a local branch. The checked-out branch cannot be
// deleted.
func (r *Repository) DeleteBranch(name string) error {
	if code := native.BranchDelete(r.native, name); code.Failed() {
		return r.fail(code, "branch_delete", fmt.Sprintf("failed to delete branch %q", name))
	}
	return nil
}

// CurrentBranch returns the short name of the checked-out branch.
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", err
	}
	return plumbing.ReferenceName(head.Name).Short(), nil
}

// Checkout switches the working tree to branch.
//
// With Create set, the branch is created at Start (HEAD when empty) first.
// Local changes that the switch would overwrite fail with
// giterr.ErrConflict and leave HEAD untouched, unless Force is set.
//
// Examples:
//
//	// Switch to an existing branch
//	err := repo.Checkout("develop", git.CheckoutOptions{})
//
//	// Create and switch
//	err := repo.Checkout("feature", git.CheckoutOptions{Create: true, Start: "v1.2.0"})
func (r *Repository) Checkout(branch string, opts CheckoutOptions) error {
	nativeOpts := native.CheckoutOptions{Create: opts.Create, Force: opts.Force}
	if opts.Create && opts.Start != "" {
		commit, err := r.GetCommit(opts.Start)
		if err != nil {
			return wrapError(err, fmt.Sprintf("failed to checkout branch %q", branch))
		}
		nativeOpts.Target = commit.Hash
	}
	if code := native.Checkout(r.native, branch, nativeOpts); code.Failed() {
		return r.fail(code, "checkout", fmt.Sprintf("failed to checkout branch %q", branch))
	}
	return nil
}
