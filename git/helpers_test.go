package git_test

import (
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/client"
	"github.com/go-git/go-git/v5/plumbing/transport/server"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/jmgilman/gitbind/git"
	"github.com/jmgilman/gitbind/git/testutil"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, opts ...git.RepositoryOption) *git.Repository {
	t.Helper()
	repo, _, err := testutil.NewMemoryRepo(opts...)
	require.NoError(t, err)
	return repo
}

func commitFile(t *testing.T, repo *git.Repository, path, content, message string) *git.Commit {
	t.Helper()
	commit, err := testutil.CreateTestCommitWithFile(repo, path, content, message)
	require.NoError(t, err)
	return commit
}

// serveMemory installs an in-process "mem" transport backed by an empty
// in-memory repository and returns that repository.
func serveMemory(t *testing.T) *gogit.Repository {
	t.Helper()
	sto := memory.NewStorage()
	remote, err := gogit.Init(sto, nil)
	require.NoError(t, err)

	ep, err := transport.NewEndpoint(testutil.TestRemoteURL)
	require.NoError(t, err)
	client.InstallProtocol("mem", server.NewClient(server.MapLoader{ep.String(): sto}))
	t.Cleanup(func() { client.InstallProtocol("mem", nil) })
	return remote
}
