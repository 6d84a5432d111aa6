package git

import (
	"fmt"
	"iter"

	"github.com/jmgilman/gitbind/native"
)

// WalkCommits walks the history reachable from to, newest first, stopping
// at from (exclusive). An empty from walks every ancestor. This matches
// "git log from..to" for linear history.
//
// The iterator yields commits one at a time, so breaking out early avoids
// loading the rest of the history.
//
// Examples:
//
//	// Last 10 commits
//	count := 0
//	for commit, err := range repo.WalkCommits("", "HEAD") {
//	    if err != nil { return err }
//	    if count >= 10 { break }
//	    fmt.Println(commit.Message)
//	    count++
//	}
//
//	// Commits between two tags
//	for commit, err := range repo.WalkCommits("v1.0.0", "v2.0.0") {
//	    if err != nil { return err }
//	    fmt.Println(commit.Hash)
//	}
func (r *Repository) WalkCommits(from, to string) iter.Seq2[*Commit, error] {
	return func(yield func(*Commit, error) bool) {
		tip, err := r.GetCommit(to)
		if err != nil {
			yield(nil, wrapError(err, "failed to walk commits"))
			return
		}

		var stop native.Oid
		if from != "" {
			base, err := r.GetCommit(from)
			if err != nil {
				yield(nil, wrapError(err, "failed to walk commits"))
				return
			}
			stop = base.Hash
		}

		seen := map[native.Oid]bool{}
		stack := []*Commit{tip}
		for len(stack) > 0 {
			c := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if seen[c.Hash] || (from != "" && c.Hash == stop) {
				continue
			}
			seen[c.Hash] = true
			if !yield(c, nil) {
				return
			}

			// Push parents in reverse so the first parent is visited next.
			for i := len(c.Parents) - 1; i >= 0; i-- {
				parent, err := r.commit(c.Parents[i])
				if err != nil {
					yield(nil, wrapError(err, "failed to iterate commits"))
					return
				}
				stack = append(stack, parent)
			}
		}
	}
}

// commit loads the commit with the given id.
func (r *Repository) commit(id native.Oid) (*Commit, error) {
	obj, code := native.ObjectLookup(r.native, id, native.ObjectCommit)
	if code.Failed() {
		return nil, r.fail(code, "commit_lookup", fmt.Sprintf("failed to load commit %s", id))
	}
	decoded, err := r.decode(obj)
	if err != nil {
		return nil, err
	}
	return decoded.(*Commit), nil
}
