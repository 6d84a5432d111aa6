package native

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Reference is a named pointer to an object or to another reference.
type Reference struct {
	name     string
	target   Oid
	symbolic string
}

func newReference(ref *plumbing.Reference) *Reference {
	if ref.Type() == plumbing.SymbolicReference {
		return &Reference{name: ref.Name().String(), symbolic: ref.Target().String()}
	}
	return &Reference{name: ref.Name().String(), target: oidOf(ref.Hash())}
}

// Name returns the full reference name, e.g. refs/heads/main.
func (r *Reference) Name() string { return r.name }

// Target returns the object id of a direct reference.
func (r *Reference) Target() Oid { return r.target }

// SymbolicTarget returns the reference name a symbolic reference points at.
func (r *Reference) SymbolicTarget() string { return r.symbolic }

// IsSymbolic reports whether r points at another reference.
func (r *Reference) IsSymbolic() bool { return r.symbolic != "" }

// IsBranch reports whether r lives under refs/heads/.
func (r *Reference) IsBranch() bool { return strings.HasPrefix(r.name, "refs/heads/") }

// IsTag reports whether r lives under refs/tags/.
func (r *Reference) IsTag() bool { return strings.HasPrefix(r.name, "refs/tags/") }

// IsRemote reports whether r lives under refs/remotes/.
func (r *Reference) IsRemote() bool { return strings.HasPrefix(r.name, "refs/remotes/") }

// Shorthand returns the name without its refs/heads/, refs/tags/ or
// refs/remotes/ prefix.
func (r *Reference) Shorthand() string {
	return plumbing.ReferenceName(r.name).Short()
}

// ReferenceNameIsValid applies git check-ref-format rules. Names outside
// refs/ must be one level of upper case letters and underscores, like HEAD.
func ReferenceNameIsValid(name string) bool {
	if name == "" || name == "@" {
		return false
	}
	if !strings.HasPrefix(name, "refs/") {
		return isOneLevelName(name)
	}
	if strings.HasSuffix(name, "/") || strings.HasSuffix(name, ".") {
		return false
	}
	if strings.Contains(name, "..") || strings.Contains(name, "@{") || strings.Contains(name, "//") {
		return false
	}
	for _, c := range name {
		if c < 0x20 || c == 0x7f {
			return false
		}
		switch c {
		case ' ', '~', '^', ':', '?', '*', '[', '\\':
			return false
		}
	}
	for _, comp := range strings.Split(name, "/") {
		if comp == "" || strings.HasPrefix(comp, ".") || strings.HasSuffix(comp, ".lock") {
			return false
		}
	}
	return true
}

func isOneLevelName(name string) bool {
	for _, c := range name {
		if (c < 'A' || c > 'Z') && c != '_' {
			return false
		}
	}
	return true
}

// ReferenceLookup reads the reference called name without resolving it.
func ReferenceLookup(r *Repository, name string) (*Reference, Code) {
	begin()
	return r.lookupRef(name)
}

func (r *Repository) lookupRef(name string) (*Reference, Code) {
	if !ReferenceNameIsValid(name) {
		return nil, fail(ClassReference, CodeInvalidSpec, "the given reference name '%s' is not valid", name)
	}
	ref, err := r.repo.Storer.Reference(plumbing.ReferenceName(name))
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, fail(ClassReference, CodeNotFound, "reference '%s' not found", name)
		}
		return nil, failErr(ClassReference, err)
	}
	return newReference(ref), CodeOK
}

// ReferenceResolve follows symbolic references starting at name until a
// direct reference is reached.
func ReferenceResolve(r *Repository, name string) (*Reference, Code) {
	begin()
	if _, code := r.lookupRef(name); code.Failed() {
		return nil, code
	}
	ref, err := storer.ResolveReference(r.repo.Storer, plumbing.ReferenceName(name))
	if err != nil {
		return nil, failErr(ClassReference, err)
	}
	return newReference(ref), CodeOK
}

// ReferenceCreate writes a direct reference. Without force an existing
// reference of the same name is an error.
func ReferenceCreate(r *Repository, name string, target Oid, force bool) (*Reference, Code) {
	begin()
	return r.createRef(name, target, force)
}

func (r *Repository) createRef(name string, target Oid, force bool) (*Reference, Code) {
	if !ReferenceNameIsValid(name) {
		return nil, fail(ClassReference, CodeInvalidSpec, "the given reference name '%s' is not valid", name)
	}
	if err := r.repo.Storer.HasEncodedObject(target.hash()); err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, fail(ClassReference, CodeError,
				"target OID for the reference doesn't exist on the repository")
		}
		return nil, failErr(ClassODB, err)
	}

	refName := plumbing.ReferenceName(name)
	if !force {
		_, err := r.repo.Storer.Reference(refName)
		if err == nil {
			return nil, fail(ClassReference, CodeExists,
				"failed to write reference '%s': a reference with that name already exists.", name)
		}
		if !errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, failErr(ClassReference, err)
		}
	}

	ref := plumbing.NewHashReference(refName, target.hash())
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return nil, failErr(ClassReference, err)
	}
	return newReference(ref), CodeOK
}

// ReferenceSetTarget moves name to target only if it still points at
// expected. A concurrent update returns CodeModified.
func ReferenceSetTarget(r *Repository, name string, target, expected Oid) (*Reference, Code) {
	begin()
	cur, code := r.lookupRef(name)
	if code.Failed() {
		return nil, code
	}
	if cur.IsSymbolic() {
		return nil, fail(ClassReference, CodeInvalid, "cannot set OID on symbolic reference '%s'", name)
	}
	if err := r.repo.Storer.HasEncodedObject(target.hash()); err != nil {
		return nil, fail(ClassReference, CodeError,
			"target OID for the reference doesn't exist on the repository")
	}

	refName := plumbing.ReferenceName(name)
	next := plumbing.NewHashReference(refName, target.hash())
	old := plumbing.NewHashReference(refName, expected.hash())
	if err := r.repo.Storer.CheckAndSetReference(next, old); err != nil {
		return nil, failErr(ClassReference, err)
	}
	return newReference(next), CodeOK
}

// ReferenceDelete removes the reference called name.
func ReferenceDelete(r *Repository, name string) Code {
	begin()
	if _, code := r.lookupRef(name); code.Failed() {
		return code
	}
	if err := r.repo.Storer.RemoveReference(plumbing.ReferenceName(name)); err != nil {
		return failErr(ClassReference, err)
	}
	return CodeOK
}

// ReferenceIterator walks a snapshot of references in name order.
type ReferenceIterator struct {
	refs []*Reference
	pos  int
}

// ReferenceIteratorNew snapshots every reference under refs/ whose name
// starts with prefix. An empty prefix selects all of them.
func ReferenceIteratorNew(r *Repository, prefix string) (*ReferenceIterator, Code) {
	begin()
	iter, err := r.repo.Storer.IterReferences()
	if err != nil {
		return nil, failErr(ClassReference, err)
	}
	var refs []*Reference
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if strings.HasPrefix(name, "refs/") && strings.HasPrefix(name, prefix) {
			refs = append(refs, newReference(ref))
		}
		return nil
	})
	if err != nil {
		return nil, failErr(ClassReference, err)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].name < refs[j].name })
	return &ReferenceIterator{refs: refs}, CodeOK
}

// ReferenceNext returns the next reference. When the walk is exhausted it
// returns CodeIterOver and leaves the last-error slot empty.
func ReferenceNext(it *ReferenceIterator) (*Reference, Code) {
	begin()
	if it.pos >= len(it.refs) {
		return nil, CodeIterOver
	}
	ref := it.refs[it.pos]
	it.pos++
	return ref, CodeOK
}
