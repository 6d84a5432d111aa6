package git_test

import (
	"errors"
	"testing"

	platformerrors "github.com/jmgilman/gitbind/errors"
	"github.com/jmgilman/gitbind/git"
	"github.com/jmgilman/gitbind/git/testutil"
	"github.com/jmgilman/gitbind/giterr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBranch(t *testing.T) {
	repo := newRepo(t)
	first := commitFile(t, repo, testutil.TestFilePath, testutil.TestFileContent, testutil.TestInitialCommit)
	commitFile(t, repo, "b.txt", "b\n", testutil.TestFeatureCommit)

	t.Run("from revision", func(t *testing.T) {
		require.NoError(t, repo.CreateBranch("hotfix", first.Hash.String()))
		ref, err := repo.Reference("refs/heads/hotfix")
		require.NoError(t, err)
		assert.Equal(t, first.Hash, ref.Target)
	})

	t.Run("already exists", func(t *testing.T) {
		err := repo.CreateBranch("hotfix", "HEAD")
		require.Error(t, err)
		assert.True(t, errors.Is(err, giterr.ErrExists))
		assert.Contains(t, err.Error(), `failed to create branch "hotfix"`)
	})

	t.Run("invalid name", func(t *testing.T) {
		err := repo.CreateBranch("bad..name", "HEAD")
		assert.True(t, errors.Is(err, giterr.ErrInvalidSpec))
	})

	t.Run("unknown revision", func(t *testing.T) {
		err := repo.CreateBranch("other", "does-not-exist")
		assert.True(t, errors.Is(err, giterr.ErrNotFound))
	})
}

func TestCreateBranchFromRemote(t *testing.T) {
	repo := newRepo(t)
	commit, err := testutil.CreateTestCommit(repo, testutil.TestInitialCommit)
	require.NoError(t, err)
	require.NoError(t, repo.CreateReference("refs/remotes/origin/main", commit.Hash, false))

	t.Run("tracks remote branch", func(t *testing.T) {
		require.NoError(t, repo.CreateBranchFromRemote("main", "origin/main"))

		ref, err := repo.Reference("refs/heads/main")
		require.NoError(t, err)
		assert.Equal(t, commit.Hash, ref.Target)

		cfg, err := repo.Underlying().Config()
		require.NoError(t, err)
		require.Contains(t, cfg.Branches, "main")
		assert.Equal(t, "origin", cfg.Branches["main"].Remote)
		assert.Equal(t, "refs/heads/main", cfg.Branches["main"].Merge.String())
	})

	t.Run("malformed name", func(t *testing.T) {
		err := repo.CreateBranchFromRemote("x", "nodelimiter")
		require.Error(t, err)
		assert.Equal(t, platformerrors.CodeInvalidInput, platformerrors.GetCode(err))
	})

	t.Run("missing remote branch", func(t *testing.T) {
		err := repo.CreateBranchFromRemote("dev", "origin/dev")
		assert.True(t, errors.Is(err, giterr.ErrNotFound))
	})
}

func TestDeleteBranch(t *testing.T) {
	repo := newRepo(t)
	_, err := testutil.CreateTestCommit(repo, testutil.TestInitialCommit)
	require.NoError(t, err)
	require.NoError(t, repo.CreateBranch(testutil.TestBranchName, "HEAD"))

	require.NoError(t, repo.DeleteBranch(testutil.TestBranchName))
	_, err = repo.Reference("refs/heads/" + testutil.TestBranchName)
	assert.True(t, errors.Is(err, giterr.ErrNotFound))

	err = repo.DeleteBranch(testutil.TestBranchName)
	assert.True(t, errors.Is(err, giterr.ErrNotFound))

	err = repo.DeleteBranch("master")
	require.Error(t, err)
	assert.True(t, errors.Is(err, giterr.ErrGeneric))
	assert.Contains(t, err.Error(), "current HEAD")
}

func TestCheckout(t *testing.T) {
	t.Run("create and switch", func(t *testing.T) {
		repo := newRepo(t)
		commitFile(t, repo, testutil.TestFilePath, "one\n", testutil.TestInitialCommit)

		require.NoError(t, repo.Checkout("feature", git.CheckoutOptions{Create: true}))
		branch, err := repo.CurrentBranch()
		require.NoError(t, err)
		assert.Equal(t, "feature", branch)

		require.NoError(t, repo.Checkout("master", git.CheckoutOptions{}))
		branch, err = repo.CurrentBranch()
		require.NoError(t, err)
		assert.Equal(t, "master", branch)
	})

	t.Run("create at start revision", func(t *testing.T) {
		repo := newRepo(t)
		first := commitFile(t, repo, testutil.TestFilePath, "one\n", testutil.TestInitialCommit)
		commitFile(t, repo, testutil.TestFilePath, "two\n", testutil.TestFeatureCommit)

		require.NoError(t, repo.Checkout("old", git.CheckoutOptions{Create: true, Start: first.Hash.String()}))
		head, err := repo.Head()
		require.NoError(t, err)
		assert.Equal(t, first.Hash, head.Target)
	})

	t.Run("local changes conflict", func(t *testing.T) {
		repo := newRepo(t)
		commitFile(t, repo, testutil.TestFilePath, "one\n", testutil.TestInitialCommit)
		require.NoError(t, repo.CreateBranch("feature", "HEAD"))
		require.NoError(t, testutil.CreateTestFile(repo.Filesystem(), testutil.TestFilePath, "dirty\n"))

		err := repo.Checkout("feature", git.CheckoutOptions{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, giterr.ErrConflict))
		assert.Contains(t, err.Error(), "1 conflict prevents checkout")

		branch, err := repo.CurrentBranch()
		require.NoError(t, err)
		assert.Equal(t, "master", branch)

		require.NoError(t, repo.Checkout("feature", git.CheckoutOptions{Force: true}))
		branch, err = repo.CurrentBranch()
		require.NoError(t, err)
		assert.Equal(t, "feature", branch)
	})

	t.Run("errors", func(t *testing.T) {
		repo := newRepo(t)
		_, err := testutil.CreateTestCommit(repo, testutil.TestInitialCommit)
		require.NoError(t, err)

		assert.True(t, errors.Is(repo.Checkout("missing", git.CheckoutOptions{}), giterr.ErrNotFound))
		assert.True(t, errors.Is(repo.Checkout("master", git.CheckoutOptions{Create: true}), giterr.ErrExists))
		assert.True(t, errors.Is(repo.Checkout("bad..name", git.CheckoutOptions{}), giterr.ErrInvalidSpec))
		assert.True(t, errors.Is(
			repo.Checkout("other", git.CheckoutOptions{Create: true, Start: "nope"}), giterr.ErrNotFound))
	})

	t.Run("bare repository", func(t *testing.T) {
		repo := newRepo(t, git.WithBare())
		err := repo.Checkout("master", git.CheckoutOptions{})
		assert.True(t, errors.Is(err, giterr.ErrBareRepo))
	})
}
