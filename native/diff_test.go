package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffTreeToTree(t *testing.T) {
	r := newMemRepo(t)
	first := commitFile(t, r, "a.txt", "one\n", "first")
	writeFile(t, r, "b.txt", "new\nfile\n")
	require.Equal(t, CodeOK, IndexAdd(r, "b.txt"))
	second := commitFile(t, r, "a.txt", "two\n", "second")

	d, code := DiffTreeToTree(r, first, second)
	require.Equal(t, CodeOK, code)
	assert.Equal(t, 2, DiffNumDeltas(d))

	stats, code := DiffStats(d)
	require.Equal(t, CodeOK, code)
	assert.Equal(t, []DiffFile{
		{Path: "a.txt", Added: 1, Deleted: 1},
		{Path: "b.txt", Added: 2, Deleted: 0},
	}, stats)
}

func TestDiffTreeToTree_EmptyBase(t *testing.T) {
	r := newMemRepo(t)
	first := commitFile(t, r, "a.txt", "one\n", "first")

	d, code := DiffTreeToTree(r, ZeroOid, first)
	require.Equal(t, CodeOK, code)

	stats, code := DiffStats(d)
	require.Equal(t, CodeOK, code)
	assert.Equal(t, []DiffFile{{Path: "a.txt", Added: 1}}, stats)
}

func TestDiffTreeToTree_Errors(t *testing.T) {
	r := newMemRepo(t)
	first := commitFile(t, r, "a.txt", "one\n", "first")
	blob, code := OdbWrite(r, ObjectBlob, []byte("blob"))
	require.Equal(t, CodeOK, code)

	_, code = DiffTreeToTree(r, blob, first)
	assert.Equal(t, CodeInvalidSpec, code)
	requireLast(t, ClassObject, "is a blob, not a tree")

	missing, _ := OidFromString("4444444444444444444444444444444444444444")
	_, code = DiffTreeToTree(r, first, missing)
	assert.Equal(t, CodeNotFound, code)
}
