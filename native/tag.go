package native

import (
	"errors"
	"sort"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const tagPrefix = "refs/tags/"

// Signature identifies an author, committer or tagger.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

func (s *Signature) toObject() *object.Signature {
	if s == nil || s.Name == "" {
		return nil
	}
	when := s.When
	if when.IsZero() {
		when = time.Now()
	}
	return &object.Signature{Name: s.Name, Email: s.Email, When: when}
}

// TagCreate tags target. A nil tagger writes a lightweight tag, otherwise an
// annotated tag object is stored. The returned id is the tag object for
// annotated tags and target for lightweight ones.
func TagCreate(r *Repository, name string, target Oid, tagger *Signature, message string, force bool) (Oid, Code) {
	begin()
	refName := tagPrefix + name
	if !ReferenceNameIsValid(refName) {
		return ZeroOid, fail(ClassTag, CodeInvalidSpec, "'%s' is not a valid tag name", name)
	}
	if err := r.repo.Storer.HasEncodedObject(target.hash()); err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return ZeroOid, fail(ClassODB, CodeNotFound, "object not found - no match for id (%s)", target)
		}
		return ZeroOid, failErr(ClassODB, err)
	}

	_, err := r.repo.Storer.Reference(plumbing.ReferenceName(refName))
	switch {
	case err == nil && !force:
		return ZeroOid, fail(ClassTag, CodeExists, "tag already exists")
	case err == nil:
		if err := r.repo.Storer.RemoveReference(plumbing.ReferenceName(refName)); err != nil {
			return ZeroOid, failErr(ClassTag, err)
		}
	case !errors.Is(err, plumbing.ErrReferenceNotFound):
		return ZeroOid, failErr(ClassTag, err)
	}

	var opts *gogit.CreateTagOptions
	if sig := tagger.toObject(); sig != nil {
		if message == "" {
			message = name
		}
		opts = &gogit.CreateTagOptions{Tagger: sig, Message: message}
	}
	ref, err := r.repo.CreateTag(name, target.hash(), opts)
	if err != nil {
		return ZeroOid, failErr(ClassTag, err)
	}
	return oidOf(ref.Hash()), CodeOK
}

// TagLookup reads the reference for tag name.
func TagLookup(r *Repository, name string) (*Reference, Code) {
	begin()
	ref, code := r.lookupRef(tagPrefix + name)
	if code == CodeNotFound {
		return nil, fail(ClassTag, CodeNotFound, "tag '%s' not found", name)
	}
	return ref, code
}

// TagDelete removes tag name.
func TagDelete(r *Repository, name string) Code {
	begin()
	if !ReferenceNameIsValid(tagPrefix + name) {
		return fail(ClassTag, CodeInvalidSpec, "'%s' is not a valid tag name", name)
	}
	if err := r.repo.DeleteTag(name); err != nil {
		return failErr(ClassTag, err)
	}
	return CodeOK
}

// TagList returns the short names of all tags, sorted.
func TagList(r *Repository) ([]string, Code) {
	begin()
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, failErr(ClassTag, err)
	}
	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, failErr(ClassTag, err)
	}
	sort.Strings(names)
	return names, CodeOK
}
