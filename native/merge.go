package native

import (
	"context"
	"os"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// MergeAnalysis describes how HEAD relates to a merge candidate.
type MergeAnalysis int

const (
	MergeAnalysisUpToDate MergeAnalysis = iota
	MergeAnalysisFastForward
	MergeAnalysisNormal
)

func (m MergeAnalysis) String() string {
	switch m {
	case MergeAnalysisUpToDate:
		return "up-to-date"
	case MergeAnalysisFastForward:
		return "fast-forward"
	default:
		return "normal"
	}
}

// MergeAnalyze compares HEAD with the commit at theirs.
func MergeAnalyze(r *Repository, theirs Oid) (MergeAnalysis, Code) {
	begin()
	return r.analyze(theirs)
}

func (r *Repository) analyze(theirs Oid) (MergeAnalysis, Code) {
	head, code := r.resolvedHead()
	if code.Failed() {
		return MergeAnalysisNormal, code
	}
	if head.target == theirs {
		return MergeAnalysisUpToDate, CodeOK
	}

	ours, err := object.GetCommit(r.repo.Storer, head.target.hash())
	if err != nil {
		return MergeAnalysisNormal, failErr(ClassMerge, err)
	}
	other, err := object.GetCommit(r.repo.Storer, theirs.hash())
	if err != nil {
		return MergeAnalysisNormal, failErr(ClassMerge, err)
	}

	if merged, err := other.IsAncestor(ours); err != nil {
		return MergeAnalysisNormal, failErr(ClassMerge, err)
	} else if merged {
		return MergeAnalysisUpToDate, CodeOK
	}
	if ff, err := ours.IsAncestor(other); err != nil {
		return MergeAnalysisNormal, failErr(ClassMerge, err)
	} else if ff {
		return MergeAnalysisFastForward, CodeOK
	}
	return MergeAnalysisNormal, CodeOK
}

func (r *Repository) resolvedHead() (*Reference, Code) {
	unborn, code := RepositoryHeadUnborn(r)
	if code.Failed() {
		return nil, code
	}
	if unborn {
		return nil, fail(ClassMerge, CodeUnbornBranch, "cannot merge into an unborn branch")
	}
	return RepositoryHead(r)
}

// MergeFastForward advances the checked-out branch to branch when HEAD is
// its ancestor. Diverged histories return CodeNonFastForward and a dirty
// worktree returns CodeUncommitted.
func MergeFastForward(r *Repository, branch string) Code {
	begin()
	if r.bare {
		return fail(ClassRepository, CodeBareRepo,
			"cannot merge. This operation is not allowed against bare repositories.")
	}
	theirs, code := BranchLookup(r, branch, false)
	if code.Failed() {
		return code
	}

	clean, code := StatusIsClean(r)
	if code.Failed() {
		return code
	}
	if !clean {
		return fail(ClassMerge, CodeUncommitted, "uncommitted changes would be overwritten by merge")
	}

	analysis, code := r.analyze(theirs.target)
	if code.Failed() {
		return code
	}
	switch analysis {
	case MergeAnalysisUpToDate:
		return CodeOK
	case MergeAnalysisNormal:
		return fail(ClassMerge, CodeNonFastForward,
			"cannot fast-forward '%s': histories have diverged", branch)
	}

	ref := plumbing.NewHashReference(plumbing.ReferenceName(branchPrefix+branch), theirs.target.hash())
	if err := r.repo.Merge(*ref, gogit.MergeOptions{Strategy: gogit.FastForwardMerge}); err != nil {
		return failErr(ClassMerge, err)
	}

	wt, code := r.worktree("merge")
	if code.Failed() {
		return code
	}
	if err := wt.Reset(&gogit.ResetOptions{Commit: theirs.target.hash(), Mode: gogit.HardReset}); err != nil {
		return failErr(ClassCheckout, err)
	}
	return CodeOK
}

// MergeCommit merges branch with a merge commit using the git CLI.
func MergeCommit(ctx context.Context, r *Repository, branch, message string, committer *Signature) Code {
	begin()
	args := identityArgs(committer)
	args = append(args, "merge", "--no-ff", "--no-edit")
	if message != "" {
		args = append(args, "-m", message)
	}
	args = append(args, branch)
	_, code := r.runGit(ctx, ClassMerge, CodeError, args...)
	return code
}

// MergeAbort abandons an in-progress merge.
func MergeAbort(ctx context.Context, r *Repository) Code {
	begin()
	_, code := r.runGit(ctx, ClassMerge, CodeError, "merge", "--abort")
	return code
}

// ApplyPatch applies a unified diff to the worktree using the git CLI. A
// patch whose reverse applies cleanly is reported as CodeApplied.
func ApplyPatch(ctx context.Context, r *Repository, patch []byte) Code {
	begin()
	if len(patch) == 0 {
		return fail(ClassPatch, CodeInvalid, "empty patch")
	}

	f, err := os.CreateTemp("", "gitbind-*.patch")
	if err != nil {
		return failErr(ClassOS, err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(patch); err != nil {
		_ = f.Close()
		return failErr(ClassOS, err)
	}
	if err := f.Close(); err != nil {
		return failErr(ClassOS, err)
	}

	if _, code := r.runGit(ctx, ClassPatch, CodeApplyFail, "apply", "--check", "-R", f.Name()); code == CodeOK {
		return fail(ClassPatch, CodeApplied, "patch already applied")
	} else if code != CodeApplyFail {
		return code
	}

	begin()
	_, code := r.runGit(ctx, ClassPatch, CodeApplyFail, "apply", f.Name())
	return code
}
