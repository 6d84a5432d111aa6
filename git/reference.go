package git

import (
	"context"
	"fmt"
	"iter"

	"github.com/avast/retry-go/v4"
	"github.com/jmgilman/gitbind/giterr"
	"github.com/jmgilman/gitbind/native"
)

func newReference(ref *native.Reference) Reference {
	return Reference{Name: ref.Name(), Target: ref.Target(), Symbolic: ref.SymbolicTarget()}
}

// Head returns the branch reference HEAD points at, resolved to its commit.
// A repository without commits fails with giterr.ErrUnbornBranch.
func (r *Repository) Head() (Reference, error) {
	head, code := native.RepositoryHead(r.native)
	if code.Failed() {
		return Reference{}, r.fail(code, "repository_head", "failed to resolve HEAD")
	}
	return newReference(head), nil
}

// Reference looks up a reference by its full name.
func (r *Repository) Reference(name string) (Reference, error) {
	ref, code := native.ReferenceLookup(r.native, name)
	if code.Failed() {
		return Reference{}, r.fail(code, "reference_lookup", fmt.Sprintf("failed to look up reference %q", name))
	}
	return newReference(ref), nil
}

// CreateReference points a new reference at target. Without force an
// existing reference fails with giterr.ErrExists.
func (r *Repository) CreateReference(name string, target native.Oid, force bool) error {
	if _, code := native.ReferenceCreate(r.native, name, target, force); code.Failed() {
		return r.fail(code, "reference_create", fmt.Sprintf("failed to create reference %q", name))
	}
	return nil
}

// DeleteReference removes a reference.
func (r *Repository) DeleteReference(name string) error {
	if code := native.ReferenceDelete(r.native, name); code.Failed() {
		return r.fail(code, "reference_delete", fmt.Sprintf("failed to delete reference %q", name))
	}
	return nil
}

// UpdateReference moves a reference with compare-and-swap semantics. update
// receives the current target and returns the new one. If another writer
// moves the reference in between, the update is re-read and retried under
// the repository's retry policy; giterr.ErrModified is returned once the
// attempts run out. Errors returned by update stop the loop immediately.
//
// Example:
//
//	err := repo.UpdateReference(ctx, "refs/heads/main", func(cur native.Oid) (native.Oid, error) {
//	    return next, nil
//	})
func (r *Repository) UpdateReference(ctx context.Context, name string, update func(current native.Oid) (native.Oid, error)) error {
	return r.withRetry(ctx, "reference_set_target", func() error {
		ref, code := native.ReferenceLookup(r.native, name)
		if code.Failed() {
			return r.fail(code, "reference_lookup", fmt.Sprintf("failed to look up reference %q", name))
		}
		next, err := update(ref.Target())
		if err != nil {
			return retry.Unrecoverable(err)
		}
		if _, code := native.ReferenceSetTarget(r.native, name, next, ref.Target()); code.Failed() {
			return r.fail(code, "reference_set_target", fmt.Sprintf("failed to update reference %q", name))
		}
		return nil
	})
}

// References walks the references whose full name starts with prefix, in
// name order. An empty prefix walks every reference under refs/.
//
// The iterator yields (Reference, error) pairs; iteration stops after the
// first error.
//
//	for ref, err := range repo.References("refs/tags/") {
//	    if err != nil { return err }
//	    fmt.Println(ref.Name)
//	}
func (r *Repository) References(prefix string) iter.Seq2[Reference, error] {
	return func(yield func(Reference, error) bool) {
		for ref, err := range r.walk(prefix) {
			if err != nil {
				yield(Reference{}, err)
				return
			}
			if !yield(newReference(ref), nil) {
				return
			}
		}
	}
}

// Branches walks local and remote-tracking branches in name order. Remote
// branches are named "remote/branch".
//
//	for b, err := range repo.Branches() {
//	    if err != nil { return err }
//	    if b.IsHead { fmt.Println("*", b.Name) }
//	}
func (r *Repository) Branches() iter.Seq2[Branch, error] {
	return func(yield func(Branch, error) bool) {
		for ref, err := range r.walk("refs/") {
			if err != nil {
				yield(Branch{}, err)
				return
			}
			if ref.IsSymbolic() || !(ref.IsBranch() || ref.IsRemote()) {
				continue
			}
			b := Branch{Name: ref.Shorthand(), Hash: ref.Target(), IsRemote: ref.IsRemote()}
			if !b.IsRemote {
				b.IsHead = native.BranchIsHead(r.native, b.Name)
			}
			if !yield(b, nil) {
				return
			}
		}
	}
}

// walk drives the engine's reference iterator until it reports IterOver.
func (r *Repository) walk(prefix string) iter.Seq2[*native.Reference, error] {
	return func(yield func(*native.Reference, error) bool) {
		it, code := native.ReferenceIteratorNew(r.native, prefix)
		if code.Failed() {
			yield(nil, r.fail(code, "reference_iterator_new", "failed to list references"))
			return
		}
		for {
			ref, code := native.ReferenceNext(it)
			if code.Failed() {
				classified := giterr.Classify(code, "reference_next")
				if classified.Kind() == giterr.KindIterOver {
					return
				}
				logFailure(r.logger, classified)
				yield(nil, wrapError(classified, "failed to iterate references"))
				return
			}
			if !yield(ref, nil) {
				return
			}
		}
	}
}
