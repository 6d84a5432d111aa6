package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	platformerrors "github.com/jmgilman/gitbind/errors"
	"github.com/jmgilman/gitbind/giterr"
	"github.com/jmgilman/gitbind/native"
)

// Lookup resolves a revision to an object.
//
// The rev parameter can be:
//   - A full or abbreviated hash (e.g., "abc123")
//   - A branch or tag name (e.g., "main", "v1.0.0")
//   - A reference name (e.g., "refs/heads/main")
//   - "HEAD" or an ancestry expression (e.g., "HEAD~2")
//
// Examples:
//
//	obj, err := repo.Lookup("HEAD")
//	if commit, ok := obj.(*git.Commit); ok {
//	    fmt.Println(commit.Message)
//	}
func (r *Repository) Lookup(rev string) (Object, error) {
	obj, code := native.RevparseSingle(r.native, rev)
	if code.Failed() {
		return nil, r.fail(code, "revparse_single", fmt.Sprintf("failed to resolve %q", rev))
	}
	return r.decode(obj)
}

// LookupPrefix finds the object whose hash starts with prefix. Prefixes
// shorter than four characters, or matching more than one object, fail with
// giterr.ErrAmbiguous. Use native.ObjectAny to accept any type.
func (r *Repository) LookupPrefix(prefix string, typ native.ObjectType) (Object, error) {
	obj, code := native.ObjectLookupPrefix(r.native, prefix, typ)
	if code.Failed() {
		return nil, r.fail(code, "object_lookup_prefix", fmt.Sprintf("failed to look up prefix %q", prefix))
	}
	return r.decode(obj)
}

// Peel follows obj until it reaches an object of type typ: tags are peeled
// to their targets and commits to their trees. Impossible peels fail with
// giterr.ErrPeel.
//
//	tree, err := repo.Peel(tag, native.ObjectTree)
func (r *Repository) Peel(obj Object, typ native.ObjectType) (Object, error) {
	raw, code := native.ObjectLookup(r.native, obj.ID(), native.ObjectAny)
	if code.Failed() {
		return nil, r.fail(code, "object_lookup", fmt.Sprintf("failed to load %s", obj.ID()))
	}
	peeled, code := native.ObjectPeel(r.native, raw, typ)
	if code.Failed() {
		return nil, r.fail(code, "object_peel", fmt.Sprintf("failed to peel %s to %s", obj.ID(), typ))
	}
	return r.decode(peeled)
}

// ReadVerified reads an object and checks that its content still hashes to
// id. Corrupted objects fail with giterr.ErrMismatch.
func (r *Repository) ReadVerified(id native.Oid) (Object, error) {
	obj, code := native.OdbRead(r.native, id)
	if code.Failed() {
		return nil, r.fail(code, "odb_read", fmt.Sprintf("failed to read %s", id))
	}
	return r.decode(obj)
}

// GetCommit resolves rev and peels the result to a commit.
//
//	commit, err := repo.GetCommit("v1.0.0")
func (r *Repository) GetCommit(rev string) (*Commit, error) {
	obj, err := r.Lookup(rev)
	if err != nil {
		return nil, err
	}
	if c, ok := obj.(*Commit); ok {
		return c, nil
	}
	peeled, err := r.Peel(obj, native.ObjectCommit)
	if err != nil {
		return nil, err
	}
	return peeled.(*Commit), nil
}

// resolve returns the id rev points at.
func (r *Repository) resolve(rev string) (native.Oid, error) {
	obj, code := native.RevparseSingle(r.native, rev)
	if code.Failed() {
		return native.ZeroOid, r.fail(code, "revparse_single", fmt.Sprintf("failed to resolve %q", rev))
	}
	return obj.ID(), nil
}

// decode converts a raw engine object into its value type. Type tags the
// binding does not know fail with giterr.ErrUnknownType.
func (r *Repository) decode(obj *native.Object) (Object, error) {
	typ, ok := plumbingType(obj.Type())
	if !ok {
		unknown := giterr.NewUnknownType(obj.Type(), obj.ID())
		logFailure(r.logger, unknown)
		return nil, wrapError(unknown, "failed to decode object")
	}

	mo := &plumbing.MemoryObject{}
	mo.SetType(typ)
	if _, err := mo.Write(obj.Data()); err != nil {
		return nil, platformerrors.Wrapf(err, platformerrors.CodeInternal, "failed to buffer %s %s", obj.Type(), obj.ID())
	}

	sto := r.native.Underlying().Storer
	var (
		out Object
		err error
	)
	switch obj.Type() {
	case native.ObjectCommit:
		var c *object.Commit
		if c, err = object.DecodeCommit(sto, mo); err == nil {
			out = newCommit(obj.ID(), c)
		}
	case native.ObjectTree:
		var t *object.Tree
		if t, err = object.DecodeTree(sto, mo); err == nil {
			out = newTree(obj.ID(), t)
		}
	case native.ObjectBlob:
		out = &Blob{Hash: obj.ID(), Data: obj.Data()}
	case native.ObjectTag:
		var t *object.Tag
		if t, err = object.DecodeTag(sto, mo); err == nil {
			out = newTag(obj.ID(), t)
		}
	}
	if err != nil {
		return nil, platformerrors.Wrapf(err, platformerrors.CodeInternal, "failed to decode %s %s", obj.Type(), obj.ID())
	}
	return out, nil
}

func plumbingType(t native.ObjectType) (plumbing.ObjectType, bool) {
	switch t {
	case native.ObjectCommit:
		return plumbing.CommitObject, true
	case native.ObjectTree:
		return plumbing.TreeObject, true
	case native.ObjectBlob:
		return plumbing.BlobObject, true
	case native.ObjectTag:
		return plumbing.TagObject, true
	default:
		return plumbing.InvalidObject, false
	}
}

func newSignature(s object.Signature) Signature {
	return Signature{Name: s.Name, Email: s.Email, When: s.When}
}

func newCommit(id native.Oid, c *object.Commit) *Commit {
	parents := make([]native.Oid, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, native.Oid(p))
	}
	return &Commit{
		Hash:      id,
		Tree:      native.Oid(c.TreeHash),
		Parents:   parents,
		Author:    newSignature(c.Author),
		Committer: newSignature(c.Committer),
		Message:   c.Message,
	}
}

func newTree(id native.Oid, t *object.Tree) *Tree {
	entries := make([]TreeEntry, 0, len(t.Entries))
	for _, e := range t.Entries {
		entries = append(entries, TreeEntry{Name: e.Name, Mode: e.Mode.String(), Hash: native.Oid(e.Hash)})
	}
	return &Tree{Hash: id, Entries: entries}
}

func newTag(id native.Oid, t *object.Tag) *Tag {
	targetType, _ := nativeType(t.TargetType)
	return &Tag{
		Name:       t.Name,
		Hash:       id,
		Target:     native.Oid(t.Target),
		TargetType: targetType,
		Tagger:     newSignature(t.Tagger),
		Message:    t.Message,
		Annotated:  true,
	}
}

func nativeType(t plumbing.ObjectType) (native.ObjectType, bool) {
	switch t {
	case plumbing.CommitObject:
		return native.ObjectCommit, true
	case plumbing.TreeObject:
		return native.ObjectTree, true
	case plumbing.BlobObject:
		return native.ObjectBlob, true
	case plumbing.TagObject:
		return native.ObjectTag, true
	default:
		return native.ObjectInvalid, false
	}
}
