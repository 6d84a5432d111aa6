package git

import (
	"fmt"
	"iter"

	"github.com/jmgilman/gitbind/native"
)

// CreateTag tags the object rev resolves to.
//
// With a Tagger the tag is annotated: a tag object holding the tagger and
// Message (which defaults to the tag name). Without one it is a lightweight
// tag that points straight at the target.
//
// Fails with giterr.ErrExists if the tag exists and Force is not set.
//
// Examples:
//
//	// Lightweight tag on HEAD
//	tag, err := repo.CreateTag("v1.0.0", "HEAD", git.TagOptions{})
//
//	// Annotated release tag
//	tag, err := repo.CreateTag("v1.0.0", "main", git.TagOptions{
//	    Tagger:  &git.Signature{Name: "Release Bot", Email: "bot@example.com"},
//	    Message: "Release 1.0.0",
//	})
func (r *Repository) CreateTag(name, rev string, opts TagOptions) (*Tag, error) {
	target, err := r.resolve(rev)
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("failed to create tag %q", name))
	}

	var tagger *native.Signature
	if opts.Tagger != nil {
		tagger = &native.Signature{Name: opts.Tagger.Name, Email: opts.Tagger.Email, When: opts.Tagger.When}
	}
	id, code := native.TagCreate(r.native, name, target, tagger, opts.Message, opts.Force)
	if code.Failed() {
		return nil, r.fail(code, "tag_create", fmt.Sprintf("failed to create tag %q", name))
	}
	return r.tag(name, id)
}

// DeleteTag removes a tag.
func (r *Repository) DeleteTag(name string) error {
	if code := native.TagDelete(r.native, name); code.Failed() {
		return r.fail(code, "tag_delete", fmt.Sprintf("failed to delete tag %q", name))
	}
	return nil
}

// GetTag looks up a tag by name.
func (r *Repository) GetTag(name string) (*Tag, error) {
	ref, code := native.TagLookup(r.native, name)
	if code.Failed() {
		return nil, r.fail(code, "tag_lookup", fmt.Sprintf("failed to look up tag %q", name))
	}
	return r.tag(name, ref.Target())
}

// Tags walks every tag in name order.
//
//	for tag, err := range repo.Tags() {
//	    if err != nil { return err }
//	    fmt.Println(tag.Name, tag.Target)
//	}
func (r *Repository) Tags() iter.Seq2[*Tag, error] {
	return func(yield func(*Tag, error) bool) {
		for ref, err := range r.walk("refs/tags/") {
			if err != nil {
				yield(nil, err)
				return
			}
			tag, err := r.tag(ref.Shorthand(), ref.Target())
			if !yield(tag, err) || err != nil {
				return
			}
		}
	}
}

// tag builds the Tag value for a tag reference pointing at id.
func (r *Repository) tag(name string, id native.Oid) (*Tag, error) {
	obj, code := native.ObjectLookup(r.native, id, native.ObjectAny)
	if code.Failed() {
		return nil, r.fail(code, "object_lookup", fmt.Sprintf("failed to load tag %q", name))
	}
	if obj.Type() == native.ObjectTag {
		decoded, err := r.decode(obj)
		if err != nil {
			return nil, err
		}
		return decoded.(*Tag), nil
	}
	return &Tag{Name: name, Hash: id, Target: id, TargetType: obj.Type()}, nil
}
