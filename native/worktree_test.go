package native

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexAdd(t *testing.T) {
	r := newMemRepo(t)
	writeFile(t, r, "file.txt", "content")
	require.NoError(t, r.Filesystem().MkdirAll("dir", 0o755))

	assert.Equal(t, CodeOK, IndexAdd(r, "file.txt"))

	assert.Equal(t, CodeDirectory, IndexAdd(r, "dir"))
	requireLast(t, ClassIndex, "'dir' is a directory")

	assert.Equal(t, CodeNotFound, IndexAdd(r, "missing.txt"))
	requireLast(t, ClassIndex, "could not find 'missing.txt' to stat")
}

func TestIndexRemove(t *testing.T) {
	r := newMemRepo(t)
	commitFile(t, r, "file.txt", "content", "add file")

	require.Equal(t, CodeOK, IndexRemove(r, "file.txt"))
	_, err := r.Filesystem().Stat("file.txt")
	assert.Error(t, err)

	assert.Equal(t, CodeNotFound, IndexRemove(r, "never.txt"))
}

func TestCommitCreate(t *testing.T) {
	r := newMemRepo(t)
	writeFile(t, r, "a.txt", "a")
	require.Equal(t, CodeOK, IndexAdd(r, "a.txt"))

	_, code := CommitCreate(r, "no author", CommitOptions{})
	assert.Equal(t, CodeInvalid, code)
	requireLast(t, ClassInvalid, "author field is required")

	id, code := CommitCreate(r, "initial", CommitOptions{Author: testSig})
	require.Equal(t, CodeOK, code)
	assert.False(t, id.IsZero())

	// Nothing staged: go-git refuses, which surfaces as a generic failure.
	_, code = CommitCreate(r, "empty", CommitOptions{Author: testSig})
	assert.Equal(t, CodeError, code)
	requireLast(t, ClassObject, "cannot create empty commit")

	_, code = CommitCreate(r, "empty", CommitOptions{Author: testSig, AllowEmpty: true})
	assert.Equal(t, CodeOK, code)
}

func TestWorktreeOps_BareRepository(t *testing.T) {
	r, code := RepositoryInit(memfs.New(), "/bare.git", true)
	require.Equal(t, CodeOK, code)

	assert.Equal(t, CodeBareRepo, IndexAdd(r, "a.txt"))
	requireLast(t, ClassRepository, "not allowed against bare repositories")

	_, code = CommitCreate(r, "msg", CommitOptions{Author: testSig})
	assert.Equal(t, CodeBareRepo, code)

	_, code = StatusIsClean(r)
	assert.Equal(t, CodeBareRepo, code)

	assert.Equal(t, CodeBareRepo, Checkout(r, "master", CheckoutOptions{}))
}

func TestCheckout(t *testing.T) {
	r := newMemRepo(t)
	first := commitFile(t, r, "a.txt", "one\n", "first")

	require.Equal(t, CodeOK, Checkout(r, "feature", CheckoutOptions{Create: true}))
	assert.True(t, BranchIsHead(r, "feature"))
	commitFile(t, r, "a.txt", "two\n", "on feature")

	require.Equal(t, CodeOK, Checkout(r, "master", CheckoutOptions{}))
	head, code := RepositoryHead(r)
	require.Equal(t, CodeOK, code)
	assert.Equal(t, first, head.Target())

	assert.Equal(t, CodeExists, Checkout(r, "feature", CheckoutOptions{Create: true}))
	assert.Equal(t, CodeNotFound, Checkout(r, "nope", CheckoutOptions{}))
	assert.Equal(t, CodeInvalidSpec, Checkout(r, "bad..name", CheckoutOptions{}))
}

func TestCheckout_DirtyWorktree(t *testing.T) {
	r := newMemRepo(t)
	commitFile(t, r, "a.txt", "one\n", "first")
	_, code := BranchCreate(r, "other", mustHead(t, r), false)
	require.Equal(t, CodeOK, code)

	writeFile(t, r, "a.txt", "local edit\n")

	assert.Equal(t, CodeConflict, Checkout(r, "other", CheckoutOptions{}))
	requireLast(t, ClassCheckout, "1 conflict prevents checkout")
	assert.True(t, BranchIsHead(r, "master"), "HEAD must not move on conflict")

	assert.Equal(t, CodeOK, Checkout(r, "other", CheckoutOptions{Force: true}))
	assert.True(t, BranchIsHead(r, "other"))
}

func TestCheckout_ConflictCount(t *testing.T) {
	r := newMemRepo(t)
	commitFile(t, r, "a.txt", "one\n", "first")
	commitFile(t, r, "b.txt", "two\n", "second")
	_, code := BranchCreate(r, "other", mustHead(t, r), false)
	require.Equal(t, CodeOK, code)

	writeFile(t, r, "a.txt", "edit\n")
	writeFile(t, r, "b.txt", "edit\n")

	assert.Equal(t, CodeConflict, Checkout(r, "other", CheckoutOptions{}))
	requireLast(t, ClassCheckout, "2 conflicts prevent checkout")
}

func TestStatusIsClean(t *testing.T) {
	r := newMemRepo(t)
	commitFile(t, r, "a.txt", "one\n", "first")

	clean, code := StatusIsClean(r)
	require.Equal(t, CodeOK, code)
	assert.True(t, clean)

	writeFile(t, r, "untracked.txt", "new")
	clean, code = StatusIsClean(r)
	require.Equal(t, CodeOK, code)
	assert.True(t, clean, "untracked files do not make the tree dirty")

	writeFile(t, r, "a.txt", "changed\n")
	clean, code = StatusIsClean(r)
	require.Equal(t, CodeOK, code)
	assert.False(t, clean)
}

func mustHead(t *testing.T, r *Repository) Oid {
	t.Helper()
	head, code := RepositoryHead(r)
	require.Equal(t, CodeOK, code)
	return head.Target()
}
