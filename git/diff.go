package git

import (
	"fmt"

	"github.com/jmgilman/gitbind/giterr"
	"github.com/jmgilman/gitbind/native"
)

// Diff summarises the changes between two revisions, one DiffStat per
// changed path in path order. Commits and tags are compared by their trees;
// an empty oldRev compares against the empty tree.
//
// Revisions that cannot be resolved fail with the engine's classification.
// A diff that cannot be rendered once both trees are loaded fails with
// giterr.ErrDiff.
//
// Example:
//
//	stats, err := repo.Diff("v1.0.0", "HEAD")
//	for _, s := range stats {
//	    fmt.Printf("%s +%d -%d\n", s.Path, s.Added, s.Deleted)
//	}
func (r *Repository) Diff(oldRev, newRev string) ([]DiffStat, error) {
	var oldID native.Oid
	if oldRev != "" {
		id, err := r.resolve(oldRev)
		if err != nil {
			return nil, err
		}
		oldID = id
	}
	newID, err := r.resolve(newRev)
	if err != nil {
		return nil, err
	}

	diff, code := native.DiffTreeToTree(r.native, oldID, newID)
	if code.Failed() {
		return nil, r.fail(code, "diff_tree_to_tree", fmt.Sprintf("failed to diff %s..%s", oldRev, newRev))
	}

	files, code := native.DiffStats(diff)
	if code.Failed() {
		classified := classify(r.logger, code, "diff_get_stats")
		diffErr := giterr.NewDiffError()
		logFailure(r.logger, diffErr)
		return nil, fmt.Errorf("failed to diff %s..%s: %w (%s)", oldRev, newRev, diffErr, classified.Describe())
	}

	stats := make([]DiffStat, 0, len(files))
	for _, f := range files {
		stats = append(stats, DiffStat(f))
	}
	return stats, nil
}
