package native

import (
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryInit(t *testing.T) {
	tests := []struct {
		name string
		bare bool
	}{
		{name: "standard", bare: false},
		{name: "bare", bare: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, code := RepositoryInit(memfs.New(), "/repo", tt.bare)
			require.Equal(t, CodeOK, code)
			assert.Equal(t, tt.bare, RepositoryIsBare(r))
			assert.Equal(t, "/repo", r.Path())
			assert.NotNil(t, r.Underlying())
			assert.False(t, r.onDisk())
		})
	}
}

func TestRepositoryInit_AlreadyExists(t *testing.T) {
	fs := memfs.New()
	_, code := RepositoryInit(fs, "/repo", false)
	require.Equal(t, CodeOK, code)

	_, code = RepositoryInit(fs, "/repo", false)
	assert.Equal(t, CodeExists, code)
	requireLast(t, ClassRepository, "already a git repository")
}

func TestRepositoryInit_OnDisk(t *testing.T) {
	dir := t.TempDir()
	r, code := RepositoryInit(nil, dir, false)
	require.Equal(t, CodeOK, code)
	assert.True(t, r.onDisk())
	assert.Equal(t, dir, r.dir)

	base := t.TempDir()
	r, code = RepositoryInit(osfs.New(base), "nested", false)
	require.Equal(t, CodeOK, code)
	assert.Equal(t, filepath.Join(base, "nested"), r.dir)

	r, code = RepositoryOpen(osfs.New(base, osfs.WithBoundOS()), "nested")
	require.Equal(t, CodeOK, code)
	assert.Equal(t, filepath.Join(base, "nested"), r.dir)
}

func TestRepositoryOpen(t *testing.T) {
	fs := memfs.New()
	_, code := RepositoryInit(fs, "/repo", false)
	require.Equal(t, CodeOK, code)
	_, code = RepositoryInit(fs, "/bare.git", true)
	require.Equal(t, CodeOK, code)

	r, code := RepositoryOpen(fs, "/repo")
	require.Equal(t, CodeOK, code)
	assert.False(t, RepositoryIsBare(r))

	b, code := RepositoryOpen(fs, "/bare.git")
	require.Equal(t, CodeOK, code)
	assert.True(t, RepositoryIsBare(b))
}

func TestRepositoryOpen_NotFound(t *testing.T) {
	_, code := RepositoryOpen(memfs.New(), "/nowhere")
	assert.Equal(t, CodeNotFound, code)
	requireLast(t, ClassRepository, "could not find repository at '/nowhere'")
}

func TestRepositoryHead(t *testing.T) {
	r := newMemRepo(t)

	_, code := RepositoryHead(r)
	assert.Equal(t, CodeUnbornBranch, code)
	requireLast(t, ClassReference, "refs/heads/master")

	unborn, code := RepositoryHeadUnborn(r)
	require.Equal(t, CodeOK, code)
	assert.True(t, unborn)

	id := commitFile(t, r, "README.md", "hello\n", "initial")

	head, code := RepositoryHead(r)
	require.Equal(t, CodeOK, code)
	assert.Equal(t, "refs/heads/master", head.Name())
	assert.Equal(t, id, head.Target())

	unborn, code = RepositoryHeadUnborn(r)
	require.Equal(t, CodeOK, code)
	assert.False(t, unborn)
}

func TestRepositoryClone_EmptyURL(t *testing.T) {
	_, code := RepositoryClone(t.Context(), memfs.New(), "/clone", CloneOptions{})
	assert.Equal(t, CodeInvalid, code)
	requireLast(t, ClassInvalid, "empty URL")
}

func TestHostDir(t *testing.T) {
	_, ok := hostDir(memfs.New())
	assert.False(t, ok)

	scoped, err := memfs.New().Chroot("/repo")
	require.NoError(t, err)
	_, ok = hostDir(scoped)
	assert.False(t, ok)

	dir, ok := hostDir(rootFilesystem(nil))
	assert.True(t, ok)
	assert.Equal(t, "/", dir)

	base := t.TempDir()
	dir, ok = hostDir(osfs.New(base))
	assert.True(t, ok)
	assert.Equal(t, base, dir)
}
