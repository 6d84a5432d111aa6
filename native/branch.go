package native

import (
	"errors"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	branchPrefix = "refs/heads/"
	remotePrefix = "refs/remotes/"
)

// headBranch returns the reference name HEAD points at, or "" when HEAD is
// detached.
func (r *Repository) headBranch() string {
	head, err := r.repo.Storer.Reference(plumbing.HEAD)
	if err != nil || head.Type() != plumbing.SymbolicReference {
		return ""
	}
	return head.Target().String()
}

// BranchCreate points a new local branch at the commit target. Without
// force an existing branch is an error; with force the checked-out branch
// still cannot be overwritten.
func BranchCreate(r *Repository, name string, target Oid, force bool) (*Reference, Code) {
	begin()
	refName := branchPrefix + name
	if name == "HEAD" || !ReferenceNameIsValid(refName) {
		return nil, fail(ClassReference, CodeInvalidSpec, "'%s' is not a valid branch name", name)
	}

	if _, err := object.GetCommit(r.repo.Storer, target.hash()); err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, fail(ClassODB, CodeNotFound, "object not found - no match for id (%s)", target)
		}
		return nil, failErr(ClassObject, err)
	}

	if force && r.headBranch() == refName {
		return nil, fail(ClassReference, CodeError,
			"cannot force update branch '%s' as it is the current HEAD of the repository.", name)
	}
	return r.createRef(refName, target, force)
}

// BranchLookup finds a local branch, or a remote-tracking branch when remote
// is set. name is the short form, e.g. main or origin/main.
func BranchLookup(r *Repository, name string, remote bool) (*Reference, Code) {
	begin()
	prefix, kind := branchPrefix, "local"
	if remote {
		prefix, kind = remotePrefix, "remote-tracking"
	}
	if !ReferenceNameIsValid(prefix + name) {
		return nil, fail(ClassReference, CodeInvalidSpec, "'%s' is not a valid branch name", name)
	}
	ref, err := r.repo.Storer.Reference(plumbing.ReferenceName(prefix + name))
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, fail(ClassReference, CodeNotFound, "cannot locate %s branch '%s'", kind, name)
		}
		return nil, failErr(ClassReference, err)
	}
	return newReference(ref), CodeOK
}

// BranchDelete removes a local branch. The checked-out branch cannot be
// deleted.
func BranchDelete(r *Repository, name string) Code {
	begin()
	refName := branchPrefix + name
	if _, code := r.lookupRef(refName); code.Failed() {
		if code == CodeNotFound {
			return fail(ClassReference, CodeNotFound, "cannot locate local branch '%s'", name)
		}
		return code
	}
	if r.headBranch() == refName {
		return fail(ClassReference, CodeError,
			"cannot delete branch '%s' as it is the current HEAD of the repository.", refName)
	}
	if err := r.repo.Storer.RemoveReference(plumbing.ReferenceName(refName)); err != nil {
		return failErr(ClassReference, err)
	}
	return CodeOK
}

// BranchIsHead reports whether name is the checked-out branch.
func BranchIsHead(r *Repository, name string) bool {
	return r.headBranch() == branchPrefix+name
}
