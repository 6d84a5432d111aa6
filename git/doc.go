// Package git provides an idiomatic Go API over the native version-control
// engine.
//
// The engine (package native) reports every failure as a libgit2-style
// integer code plus a process-wide last-error message. This package hides
// that protocol: each failing engine call is classified on the spot with
// giterr.Classify and returned as an ordinary Go error, wrapped with the
// call-site context.
//
// # Architecture
//
// The library is built on several key principles:
//
//  1. Thin wrappers over the engine (not reimplementing Git)
//  2. Billy filesystem for all I/O operations, memfs for tests
//  3. Every engine failure classified immediately, before the next engine call
//  4. Escape hatches via Engine() and Underlying() for advanced use cases
//  5. Organized by operation type (repository, object, reference, branch,
//     tag, worktree, merge, diff, remote)
//
// # Core Types
//
// Repository wraps an engine handle together with a logger, default
// credentials and a retry policy.
//
// Commit, Tree, Blob and Tag are value types decoded from repository
// objects; they all satisfy Object. Reference, Branch, Remote and DiffStat
// are plain value types.
//
// # Error Handling
//
// Errors carry a *giterr.Error somewhere in their chain. Match on the kind
// with errors.Is against the giterr sentinels, or read the structured code
// through the errors package:
//
//	err := repo.CreateBranch("feature", "HEAD")
//	switch {
//	case errors.Is(err, giterr.ErrExists):
//	    // branch already there
//	case errors.Is(err, giterr.ErrInvalidSpec):
//	    // bad branch name
//	}
//
// Two kinds are raised by this package rather than the engine: an object
// whose type tag is not a commit, tree, blob or tag fails with
// giterr.ErrUnknownType, and a diff that cannot be rendered fails with
// giterr.ErrDiff.
//
// # Retries
//
// Fetch, Push and UpdateReference retry while the classified error is
// retryable (a held lock, a lost compare-and-swap, a truncated stream).
// The policy defaults to DefaultRetryPolicy and is set with WithRetry.
//
// # Git CLI
//
// Go-git cannot create merge commits or apply patches, so Merge (for
// diverged histories) and ApplyPatch shell out to git. These need the
// repository on the OS filesystem; memory repositories fail with
// giterr.ErrInvalid.
//
// # Usage
//
//	repo, err := git.Init("/repo", git.WithFilesystem(memfs.New()))
//	if err != nil {
//	    return err
//	}
//
//	// stage and commit
//	if err := repo.Add("README.md"); err != nil {
//	    return err
//	}
//	commit, err := repo.Commit("Initial commit", git.CommitOptions{
//	    Author: git.Signature{Name: "User", Email: "user@example.com"},
//	})
//
//	// branches
//	for b, err := range repo.Branches() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(b.Name, b.Hash)
//	}
package git
