package git_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/jmgilman/gitbind/git"
	"github.com/jmgilman/gitbind/git/testutil"
	"github.com/jmgilman/gitbind/giterr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("standard repository", func(t *testing.T) {
		repo, err := git.Init("/repo", git.WithFilesystem(memfs.New()))
		require.NoError(t, err)
		assert.Equal(t, "/repo", repo.Path())
		assert.False(t, repo.IsBare())
		assert.NotNil(t, repo.Underlying())
		assert.NotNil(t, repo.Engine())
		assert.NotNil(t, repo.Filesystem())
		assert.NotNil(t, repo.Logger())
	})

	t.Run("bare repository", func(t *testing.T) {
		repo, err := git.Init("/repo.git", git.WithFilesystem(memfs.New()), git.WithBare())
		require.NoError(t, err)
		assert.True(t, repo.IsBare())
	})

	t.Run("existing repository", func(t *testing.T) {
		fs := memfs.New()
		_, err := git.Init("/repo", git.WithFilesystem(fs))
		require.NoError(t, err)

		_, err = git.Init("/repo", git.WithFilesystem(fs))
		require.Error(t, err)
		assert.True(t, errors.Is(err, giterr.ErrExists))
		assert.Contains(t, err.Error(), "failed to initialize repository")
		assert.Contains(t, err.Error(), "repository_init")
		assert.Contains(t, err.Error(), "GIT_EEXISTS")
	})
}

func TestOpen(t *testing.T) {
	t.Run("opens initialized repository", func(t *testing.T) {
		fs := memfs.New()
		created, err := git.Init("/repo", git.WithFilesystem(fs))
		require.NoError(t, err)
		commit, err := testutil.CreateTestCommit(created, testutil.TestInitialCommit)
		require.NoError(t, err)

		repo, err := git.Open("/repo", git.WithFilesystem(fs))
		require.NoError(t, err)
		assert.False(t, repo.IsBare())

		head, err := repo.Head()
		require.NoError(t, err)
		assert.Equal(t, commit.Hash, head.Target)
	})

	t.Run("opens bare repository", func(t *testing.T) {
		fs := memfs.New()
		_, err := git.Init("/repo.git", git.WithFilesystem(fs), git.WithBare())
		require.NoError(t, err)

		repo, err := git.Open("/repo.git", git.WithFilesystem(fs))
		require.NoError(t, err)
		assert.True(t, repo.IsBare())
	})

	t.Run("missing repository", func(t *testing.T) {
		_, err := git.Open("/nowhere", git.WithFilesystem(memfs.New()))
		require.Error(t, err)
		assert.True(t, errors.Is(err, giterr.ErrNotFound))
		assert.Contains(t, err.Error(), "failed to open repository")
	})
}

func TestClone(t *testing.T) {
	serveMemory(t)
	ctx := context.Background()

	source := newRepo(t)
	commit := commitFile(t, source, testutil.TestFilePath, testutil.TestFileContent, testutil.TestInitialCommit)
	require.NoError(t, source.AddRemote(git.DefaultRemote, testutil.TestRemoteURL))
	require.NoError(t, source.Push(ctx, "", git.PushOptions{}))

	t.Run("clones into filesystem", func(t *testing.T) {
		repo, err := git.Clone(ctx, testutil.TestRemoteURL, "/clone", git.WithFilesystem(memfs.New()))
		require.NoError(t, err)

		head, err := repo.GetCommit("HEAD")
		require.NoError(t, err)
		assert.Equal(t, commit.Hash, head.Hash)

		remotes, err := repo.ListRemotes()
		require.NoError(t, err)
		require.Len(t, remotes, 1)
		assert.Equal(t, git.DefaultRemote, remotes[0].Name)
	})

	t.Run("bare clone", func(t *testing.T) {
		repo, err := git.Clone(ctx, testutil.TestRemoteURL, "/clone.git",
			git.WithFilesystem(memfs.New()), git.WithBare(), git.WithSingleBranch(), git.WithBranch("master"))
		require.NoError(t, err)
		assert.True(t, repo.IsBare())
	})

	t.Run("empty url", func(t *testing.T) {
		_, err := git.Clone(ctx, "", "/clone", git.WithFilesystem(memfs.New()))
		require.Error(t, err)
		assert.True(t, errors.Is(err, giterr.ErrInvalid))
		assert.Contains(t, err.Error(), "failed to clone repository")
	})
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := git.Open("/nowhere", git.WithFilesystem(memfs.New()), git.WithLogger(logger))
	require.Error(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "git operation failed", entry["msg"])
	assert.Equal(t, "NotFound", entry["kind"])
	assert.Equal(t, "repository_open", entry["op"])
	assert.EqualValues(t, -3, entry["code"])
	assert.Equal(t, "repository", entry["class"])
}

func TestWithLogger_NilKeepsDefault(t *testing.T) {
	repo := newRepo(t, git.WithLogger(nil))
	assert.NotNil(t, repo.Logger())
}
