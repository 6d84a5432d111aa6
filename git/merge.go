package git

import (
	"context"
	"fmt"

	"github.com/jmgilman/gitbind/native"
)

// MergeResult reports what Merge did.
type MergeResult struct {
	// Analysis is how HEAD related to the merged branch before the merge.
	Analysis native.MergeAnalysis

	// Head is the commit HEAD points at afterwards.
	Head native.Oid
}

// Merge merges a local branch into the current branch.
//
// Branches that are already contained in HEAD are a no-op. When HEAD can be
// fast-forwarded it is moved in-process; otherwise a merge commit is created
// through the git CLI, which needs an on-disk repository. With FFOnly set a
// diverged history fails with giterr.ErrNonFastForward instead.
//
// Conflicts fail with giterr.ErrMergeConflict and leave the merge in
// progress; call AbortMerge to back out.
//
// Example:
//
//	res, err := repo.Merge(ctx, "feature", git.MergeOptions{
//	    Committer: &git.Signature{Name: "CI", Email: "ci@example.com"},
//	})
func (r *Repository) Merge(ctx context.Context, branch string, opts MergeOptions) (MergeResult, error) {
	ref, code := native.BranchLookup(r.native, branch, false)
	if code.Failed() {
		return MergeResult{}, r.fail(code, "branch_lookup", fmt.Sprintf("failed to merge %q", branch))
	}
	analysis, code := native.MergeAnalyze(r.native, ref.Target())
	if code.Failed() {
		return MergeResult{}, r.fail(code, "merge_analysis", fmt.Sprintf("failed to merge %q", branch))
	}

	switch {
	case analysis == native.MergeAnalysisUpToDate:
	case analysis == native.MergeAnalysisFastForward || opts.FFOnly:
		if code := native.MergeFastForward(r.native, branch); code.Failed() {
			return MergeResult{Analysis: analysis}, r.fail(code, "merge_fastforward", fmt.Sprintf("failed to merge %q", branch))
		}
	default:
		var committer *native.Signature
		if opts.Committer != nil {
			sig := native.Signature(*opts.Committer)
			committer = &sig
		}
		if code := native.MergeCommit(ctx, r.native, branch, opts.Message, committer); code.Failed() {
			return MergeResult{Analysis: analysis}, r.fail(code, "merge", fmt.Sprintf("failed to merge %q", branch))
		}
	}

	head, err := r.Head()
	if err != nil {
		return MergeResult{Analysis: analysis}, err
	}
	r.logger.Debug("merged branch", "branch", branch, "analysis", analysis.String())
	return MergeResult{Analysis: analysis, Head: head.Target}, nil
}

// AbortMerge abandons a conflicted merge and restores the pre-merge state.
func (r *Repository) AbortMerge(ctx context.Context) error {
	if code := native.MergeAbort(ctx, r.native); code.Failed() {
		return r.fail(code, "merge_abort", "failed to abort merge")
	}
	return nil
}

// ApplyPatch applies a unified diff to the working tree through the git CLI.
// A patch that is already applied fails with giterr.ErrApplied.
func (r *Repository) ApplyPatch(ctx context.Context, patch []byte) error {
	if code := native.ApplyPatch(ctx, r.native, patch); code.Failed() {
		return r.fail(code, "apply", "failed to apply patch")
	}
	return nil
}
