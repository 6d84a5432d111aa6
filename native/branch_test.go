package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchCreate(t *testing.T) {
	r := newMemRepo(t)
	id := commitFile(t, r, "a.txt", "a\n", "first")

	ref, code := BranchCreate(r, "feature", id, false)
	require.Equal(t, CodeOK, code)
	assert.Equal(t, "refs/heads/feature", ref.Name())

	_, code = BranchCreate(r, "feature", id, false)
	assert.Equal(t, CodeExists, code)

	_, code = BranchCreate(r, "feature", id, true)
	assert.Equal(t, CodeOK, code)

	_, code = BranchCreate(r, "master", id, true)
	assert.Equal(t, CodeError, code)
	requireLast(t, ClassReference, "current HEAD of the repository")

	_, code = BranchCreate(r, "HEAD", id, false)
	assert.Equal(t, CodeInvalidSpec, code)

	_, code = BranchCreate(r, "bad name", id, false)
	assert.Equal(t, CodeInvalidSpec, code)

	tree, code := ObjectLookup(r, id, ObjectCommit)
	require.Equal(t, CodeOK, code)
	treeObj, code := ObjectPeel(r, tree, ObjectTree)
	require.Equal(t, CodeOK, code)
	// A tree is not a commit, so no commit with that id exists.
	_, code = BranchCreate(r, "on-tree", treeObj.ID(), false)
	assert.Equal(t, CodeNotFound, code)

	missing, _ := OidFromString("3333333333333333333333333333333333333333")
	_, code = BranchCreate(r, "nowhere", missing, false)
	assert.Equal(t, CodeNotFound, code)
}

func TestBranchLookup(t *testing.T) {
	r := newMemRepo(t)
	id := commitFile(t, r, "a.txt", "a\n", "first")

	ref, code := BranchLookup(r, "master", false)
	require.Equal(t, CodeOK, code)
	assert.Equal(t, id, ref.Target())
	assert.True(t, BranchIsHead(r, "master"))

	_, code = BranchLookup(r, "missing", false)
	assert.Equal(t, CodeNotFound, code)
	requireLast(t, ClassReference, "cannot locate local branch 'missing'")

	_, code = BranchLookup(r, "origin/main", true)
	assert.Equal(t, CodeNotFound, code)
	requireLast(t, ClassReference, "cannot locate remote-tracking branch")
}

func TestBranchDelete(t *testing.T) {
	r := newMemRepo(t)
	id := commitFile(t, r, "a.txt", "a\n", "first")
	_, code := BranchCreate(r, "old", id, false)
	require.Equal(t, CodeOK, code)

	require.Equal(t, CodeOK, BranchDelete(r, "old"))
	assert.Equal(t, CodeNotFound, BranchDelete(r, "old"))

	assert.Equal(t, CodeError, BranchDelete(r, "master"))
	requireLast(t, ClassReference, "cannot delete branch 'refs/heads/master'")
}

func TestTagCreate(t *testing.T) {
	r := newMemRepo(t)
	id := commitFile(t, r, "a.txt", "a\n", "first")

	light, code := TagCreate(r, "v1", id, nil, "", false)
	require.Equal(t, CodeOK, code)
	assert.Equal(t, id, light)

	_, code = TagCreate(r, "v1", id, nil, "", false)
	assert.Equal(t, CodeExists, code)
	requireLast(t, ClassTag, "tag already exists")

	annotated, code := TagCreate(r, "v1", id, &testSig, "", true)
	require.Equal(t, CodeOK, code)
	assert.NotEqual(t, id, annotated)

	ref, code := TagLookup(r, "v1")
	require.Equal(t, CodeOK, code)
	assert.True(t, ref.IsTag())
	assert.Equal(t, annotated, ref.Target())

	_, code = TagCreate(r, "bad..tag", id, nil, "", false)
	assert.Equal(t, CodeInvalidSpec, code)

	names, code := TagList(r)
	require.Equal(t, CodeOK, code)
	assert.Equal(t, []string{"v1"}, names)
}

func TestTagDelete(t *testing.T) {
	r := newMemRepo(t)
	id := commitFile(t, r, "a.txt", "a\n", "first")
	_, code := TagCreate(r, "v1", id, nil, "", false)
	require.Equal(t, CodeOK, code)

	require.Equal(t, CodeOK, TagDelete(r, "v1"))

	assert.Equal(t, CodeNotFound, TagDelete(r, "v1"))
	requireLast(t, ClassTag, "tag not found")

	_, code = TagLookup(r, "v1")
	assert.Equal(t, CodeNotFound, code)
}
