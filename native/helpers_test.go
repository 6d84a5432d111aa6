package native

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/require"
)

var testSig = Signature{
	Name:  "Test User",
	Email: "test@example.com",
	When:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
}

func newMemRepo(t *testing.T) *Repository {
	t.Helper()
	r, code := RepositoryInit(memfs.New(), "/repo", false)
	require.Equal(t, CodeOK, code)
	return r
}

func writeFile(t *testing.T, r *Repository, path, content string) {
	t.Helper()
	f, err := r.Filesystem().Create(path)
	require.NoError(t, err)
	_, err = f.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func commitFile(t *testing.T, r *Repository, path, content, msg string) Oid {
	t.Helper()
	writeFile(t, r, path, content)
	require.Equal(t, CodeOK, IndexAdd(r, path))
	id, code := CommitCreate(r, msg, CommitOptions{Author: testSig})
	require.Equal(t, CodeOK, code)
	return id
}

func requireLast(t *testing.T, class ErrorClass, substr string) {
	t.Helper()
	last, ok := Last()
	require.True(t, ok, "expected a recorded error")
	require.Equal(t, class, last.Class)
	require.Contains(t, last.Message, substr)
}
