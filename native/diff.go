package native

import (
	"sort"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// Diff is the set of changes between two trees.
type Diff struct {
	changes object.Changes
}

// DiffFile is the line count summary for one path.
type DiffFile struct {
	Path    string
	Added   int
	Deleted int
}

func (r *Repository) tree(id Oid) (*object.Tree, Code) {
	if id.IsZero() {
		return nil, CodeOK
	}
	obj, code := r.load(id, ObjectAny)
	if code.Failed() {
		return nil, code
	}
	if obj.typ == ObjectCommit || obj.typ == ObjectTag {
		if obj, code = ObjectPeel(r, obj, ObjectTree); code.Failed() {
			return nil, code
		}
	}
	if obj.typ != ObjectTree {
		return nil, fail(ClassObject, CodeInvalidSpec, "object %s is a %s, not a tree", id, obj.typ)
	}
	t, err := object.GetTree(r.repo.Storer, obj.id.hash())
	if err != nil {
		return nil, failErr(ClassTree, err)
	}
	return t, CodeOK
}

// DiffTreeToTree computes the changes from oldTree to newTree. Commit and tag
// ids are peeled to their trees; a zero id stands for the empty tree.
func DiffTreeToTree(r *Repository, oldTree, newTree Oid) (*Diff, Code) {
	begin()
	from, code := r.tree(oldTree)
	if code.Failed() {
		return nil, code
	}
	to, code := r.tree(newTree)
	if code.Failed() {
		return nil, code
	}
	changes, err := object.DiffTree(from, to)
	if err != nil {
		return nil, failErr(ClassTree, err)
	}
	return &Diff{changes: changes}, CodeOK
}

// DiffNumDeltas returns the number of changed paths.
func DiffNumDeltas(d *Diff) int {
	return len(d.changes)
}

// DiffStats returns per-path line counts, sorted by path.
func DiffStats(d *Diff) ([]DiffFile, Code) {
	begin()
	patch, err := d.changes.Patch()
	if err != nil {
		return nil, failErr(ClassPatch, err)
	}
	stats := patch.Stats()
	files := make([]DiffFile, 0, len(stats))
	for _, s := range stats {
		files = append(files, DiffFile{Path: s.Name, Added: s.Addition, Deleted: s.Deletion})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, CodeOK
}
