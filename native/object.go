package native

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// OidHexSize is the length of a hex-formatted object id.
const OidHexSize = 40

// MinPrefixLen is the shortest hex prefix ObjectLookupPrefix accepts.
const MinPrefixLen = 4

// Oid is a SHA-1 object id.
type Oid [20]byte

// ZeroOid is the all-zero id.
var ZeroOid Oid

func (o Oid) String() string { return hex.EncodeToString(o[:]) }

// IsZero reports whether o is the all-zero id.
func (o Oid) IsZero() bool { return o == ZeroOid }

// MarshalText encodes the id as lowercase hex.
func (o Oid) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText decodes a full hex id. It does not touch the last-error slot.
func (o *Oid) UnmarshalText(text []byte) error {
	if len(text) != OidHexSize {
		return fmt.Errorf("invalid oid length %d", len(text))
	}
	if _, err := hex.Decode(o[:], text); err != nil {
		return fmt.Errorf("invalid oid: %w", err)
	}
	return nil
}

func (o Oid) hash() plumbing.Hash { return plumbing.Hash(o) }

func oidOf(h plumbing.Hash) Oid { return Oid(h) }

// OidFromString parses a 40-character hex id.
func OidFromString(s string) (Oid, Code) {
	begin()
	if len(s) != OidHexSize {
		return ZeroOid, fail(ClassInvalid, CodeError, "unable to parse OID - invalid length %d", len(s))
	}
	var o Oid
	if _, err := hex.Decode(o[:], []byte(s)); err != nil {
		return ZeroOid, fail(ClassInvalid, CodeError, "unable to parse OID - contains invalid characters")
	}
	return o, CodeOK
}

// OidFormat writes the hex form of o into dst. dst must hold OidHexSize bytes.
func OidFormat(dst []byte, o Oid) Code {
	begin()
	if len(dst) < OidHexSize {
		return fail(ClassInvalid, CodeBufs, "buffer too short: need %d bytes, have %d", OidHexSize, len(dst))
	}
	hex.Encode(dst, o[:])
	return CodeOK
}

// ObjectType is the engine's object type tag.
type ObjectType int

const (
	ObjectAny      ObjectType = -2
	ObjectInvalid  ObjectType = -1
	ObjectCommit   ObjectType = 1
	ObjectTree     ObjectType = 2
	ObjectBlob     ObjectType = 3
	ObjectTag      ObjectType = 4
	ObjectOfsDelta ObjectType = 6
	ObjectRefDelta ObjectType = 7
)

func (t ObjectType) String() string {
	switch t {
	case ObjectAny:
		return "any"
	case ObjectCommit:
		return "commit"
	case ObjectTree:
		return "tree"
	case ObjectBlob:
		return "blob"
	case ObjectTag:
		return "tag"
	case ObjectOfsDelta:
		return "OFS_DELTA"
	case ObjectRefDelta:
		return "REF_DELTA"
	default:
		return "invalid"
	}
}

// ObjectTypeFromString parses the lowercase type names used in object headers.
func ObjectTypeFromString(s string) ObjectType {
	switch s {
	case "commit":
		return ObjectCommit
	case "tree":
		return ObjectTree
	case "blob":
		return ObjectBlob
	case "tag":
		return ObjectTag
	default:
		return ObjectInvalid
	}
}

func (t ObjectType) loose() bool {
	return t == ObjectCommit || t == ObjectTree || t == ObjectBlob || t == ObjectTag
}

func toPlumbingType(t ObjectType) plumbing.ObjectType {
	switch t {
	case ObjectAny:
		return plumbing.AnyObject
	case ObjectInvalid:
		return plumbing.InvalidObject
	default:
		return plumbing.ObjectType(t)
	}
}

func fromPlumbingType(t plumbing.ObjectType) ObjectType {
	switch t {
	case plumbing.AnyObject:
		return ObjectAny
	case plumbing.InvalidObject:
		return ObjectInvalid
	default:
		return ObjectType(t)
	}
}

// Object is a raw object read from the database.
type Object struct {
	id   Oid
	typ  ObjectType
	data []byte
}

// NewObject builds an object value from its parts. Engines other than the
// object database, such as pack readers, use it to hand objects over.
func NewObject(id Oid, typ ObjectType, data []byte) *Object {
	return &Object{id: id, typ: typ, data: data}
}

// ID returns the object id.
func (o *Object) ID() Oid { return o.id }

// Type returns the object's type tag.
func (o *Object) Type() ObjectType { return o.typ }

// Data returns the raw content, without header.
func (o *Object) Data() []byte { return o.data }

// Size returns the content length.
func (o *Object) Size() int { return len(o.data) }

func readEncoded(enc plumbing.EncodedObject) ([]byte, error) {
	rd, err := enc.Reader()
	if err != nil {
		return nil, err
	}
	defer rd.Close()
	return io.ReadAll(rd)
}

func (r *Repository) load(id Oid, typ ObjectType) (*Object, Code) {
	enc, err := r.repo.Storer.EncodedObject(plumbing.AnyObject, id.hash())
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, fail(ClassODB, CodeNotFound, "object not found - no match for id (%s)", id)
		}
		return nil, failErr(ClassODB, err)
	}
	got := fromPlumbingType(enc.Type())
	if typ != ObjectAny && got != typ {
		return nil, fail(ClassInvalid, CodeNotFound, "the requested type does not match the type in the ODB")
	}
	data, err := readEncoded(enc)
	if err != nil {
		return nil, failErr(ClassODB, err)
	}
	return &Object{id: id, typ: got, data: data}, CodeOK
}

// ObjectLookup reads the object with id. A typ other than ObjectAny must
// match the stored type, otherwise CodeNotFound is returned.
func ObjectLookup(r *Repository, id Oid, typ ObjectType) (*Object, Code) {
	begin()
	return r.load(id, typ)
}

func isHex(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// ObjectLookupPrefix finds the single object whose id starts with prefix.
func ObjectLookupPrefix(r *Repository, prefix string, typ ObjectType) (*Object, Code) {
	begin()
	if len(prefix) < MinPrefixLen {
		return nil, fail(ClassObject, CodeAmbiguous, "ambiguous OID prefix - OID too short")
	}
	if len(prefix) > OidHexSize || !isHex(prefix) {
		return nil, fail(ClassInvalid, CodeInvalidSpec, "invalid OID prefix '%s'", prefix)
	}
	prefix = strings.ToLower(prefix)
	if len(prefix) == OidHexSize {
		id, code := OidFromString(prefix)
		if code.Failed() {
			return nil, code
		}
		return r.load(id, typ)
	}

	iter, err := r.repo.Storer.IterEncodedObjects(toPlumbingType(typ))
	if err != nil {
		return nil, failErr(ClassODB, err)
	}
	var matches []plumbing.Hash
	err = iter.ForEach(func(enc plumbing.EncodedObject) error {
		h := enc.Hash()
		if strings.HasPrefix(h.String(), prefix) {
			matches = append(matches, h)
			if len(matches) > 1 {
				return storer.ErrStop
			}
		}
		return nil
	})
	if err != nil {
		return nil, failErr(ClassODB, err)
	}

	switch len(matches) {
	case 0:
		return nil, fail(ClassODB, CodeNotFound, "no match for id prefix: %s", prefix)
	case 1:
		return r.load(oidOf(matches[0]), typ)
	default:
		return nil, fail(ClassODB, CodeAmbiguous, "multiple matches for prefix: %s", prefix)
	}
}

// ObjectPeel follows tags and commits until an object of target type is
// reached. With ObjectAny a tag is peeled until it is no longer a tag and a
// commit is peeled to its tree.
func ObjectPeel(r *Repository, obj *Object, target ObjectType) (*Object, Code) {
	begin()
	switch target {
	case ObjectInvalid, ObjectOfsDelta, ObjectRefDelta:
		return nil, peelError(obj, target, CodeInvalidSpec)
	}

	cur := obj
	for {
		if cur.typ == target {
			return cur, CodeOK
		}
		if target == ObjectAny && cur != obj && cur.typ != obj.typ {
			return cur, CodeOK
		}

		var next Oid
		switch cur.typ {
		case ObjectTag:
			tag, err := object.GetTag(r.repo.Storer, cur.id.hash())
			if err != nil {
				return nil, failErr(ClassObject, err)
			}
			next = oidOf(tag.Target)
		case ObjectCommit:
			if target != ObjectTree && target != ObjectAny {
				return nil, peelError(obj, target, CodePeel)
			}
			commit, err := object.GetCommit(r.repo.Storer, cur.id.hash())
			if err != nil {
				return nil, failErr(ClassObject, err)
			}
			next = oidOf(commit.TreeHash)
		default:
			return nil, peelError(obj, target, CodePeel)
		}

		loaded, code := r.load(next, ObjectAny)
		if code.Failed() {
			return nil, code
		}
		cur = loaded
	}
}

func peelError(obj *Object, target ObjectType, code Code) Code {
	return fail(ClassObject, code,
		"the git_object of id '%s' can not be successfully peeled into a %s (git_object_t=%d).",
		obj.id, target, int(target))
}

// OdbRead reads an object and verifies that its content hashes to id.
func OdbRead(r *Repository, id Oid) (*Object, Code) {
	begin()
	obj, code := r.load(id, ObjectAny)
	if code.Failed() {
		return nil, code
	}
	actual := plumbing.ComputeHash(toPlumbingType(obj.typ), obj.data)
	if oidOf(actual) != id {
		return nil, fail(ClassODB, CodeMismatch,
			"object hash mismatch - expected %s but got %s", id, actual)
	}
	return obj, CodeOK
}

// OdbWrite stores data as a new object of type typ and returns its id.
func OdbWrite(r *Repository, typ ObjectType, data []byte) (Oid, Code) {
	begin()
	if !typ.loose() {
		return ZeroOid, fail(ClassInvalid, CodeInvalid, "invalid object type %d for write", int(typ))
	}
	enc := r.repo.Storer.NewEncodedObject()
	enc.SetType(toPlumbingType(typ))
	enc.SetSize(int64(len(data)))
	w, err := enc.Writer()
	if err != nil {
		return ZeroOid, failErr(ClassODB, err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return ZeroOid, failErr(ClassODB, err)
	}
	if err := w.Close(); err != nil {
		return ZeroOid, failErr(ClassODB, err)
	}
	h, err := r.repo.Storer.SetEncodedObject(enc)
	if err != nil {
		return ZeroOid, failErr(ClassODB, err)
	}
	return oidOf(h), CodeOK
}

// RevparseSingle resolves a revision expression to one object.
func RevparseSingle(r *Repository, spec string) (*Object, Code) {
	begin()
	if strings.TrimSpace(spec) == "" {
		return nil, fail(ClassInvalid, CodeInvalidSpec, "empty revision spec")
	}

	if len(spec) >= MinPrefixLen && len(spec) <= OidHexSize && isHex(spec) {
		if obj, code := ObjectLookupPrefix(r, spec, ObjectAny); code == CodeOK || code == CodeAmbiguous {
			return obj, code
		}
		begin()
	}

	h, err := r.repo.ResolveRevision(plumbing.Revision(spec))
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) || errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, fail(ClassReference, CodeNotFound, "revspec '%s' not found", spec)
		}
		return nil, fail(ClassInvalid, CodeInvalidSpec, "failed to parse revision specifier '%s': %s", spec, err)
	}
	return r.load(oidOf(*h), ObjectAny)
}

// ObjectList returns the ids of every object of type typ, sorted.
func ObjectList(r *Repository, typ ObjectType) ([]Oid, Code) {
	begin()
	iter, err := r.repo.Storer.IterEncodedObjects(toPlumbingType(typ))
	if err != nil {
		return nil, failErr(ClassODB, err)
	}
	var ids []Oid
	err = iter.ForEach(func(enc plumbing.EncodedObject) error {
		ids = append(ids, oidOf(enc.Hash()))
		return nil
	})
	if err != nil {
		return nil, failErr(ClassODB, err)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, CodeOK
}
