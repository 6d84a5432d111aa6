// Package testutil provides in-memory testing utilities for the git package.
// It includes helpers for creating in-memory repositories and test data,
// enabling tests to run quickly without external dependencies.
package testutil

import (
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/jmgilman/gitbind/git"
)

// NewMemoryRepo creates a new in-memory Git repository for testing.
// It uses billy's memory filesystem (memfs) to provide a fully functional
// repository without touching the actual filesystem.
//
// The returned filesystem is the repository's working tree. All operations
// are in-memory and will not persist after the test completes.
//
// Example:
//
//	repo, fs, err := testutil.NewMemoryRepo()
//	if err != nil {
//	    t.Fatal(err)
//	}
func NewMemoryRepo(opts ...git.RepositoryOption) (*git.Repository, billy.Filesystem, error) {
	opts = append([]git.RepositoryOption{git.WithFilesystem(memfs.New())}, opts...)
	repo, err := git.Init("/repo", opts...)
	if err != nil {
		//nolint:wrapcheck // Test utility - errors from git package are already wrapped
		return nil, nil, err
	}
	return repo, repo.Filesystem(), nil
}

// TestSignature returns the standard test author stamped with the current time.
func TestSignature() git.Signature {
	return git.Signature{Name: TestAuthor, Email: TestEmail, When: time.Now()}
}

// CreateTestCommit creates an empty commit with the standard test author
// and the provided message.
//
// Example:
//
//	commit, err := testutil.CreateTestCommit(repo, "Initial commit")
func CreateTestCommit(repo *git.Repository, message string) (*git.Commit, error) {
	//nolint:wrapcheck // Test utility - errors from git package are already wrapped
	return repo.Commit(message, git.CommitOptions{
		Author:     TestSignature(),
		AllowEmpty: true,
	})
}

// CreateTestFile creates a file with the specified content in the given
// filesystem. If the file already exists, it is truncated and overwritten.
//
// Example:
//
//	err := testutil.CreateTestFile(fs, "README.md", "# Test Repository")
func CreateTestFile(fs billy.Filesystem, path, content string) error {
	file, err := fs.Create(path)
	if err != nil {
		//nolint:wrapcheck // Test utility - simple file operation error
		return err
	}
	defer func() {
		_ = file.Close() // Ignore close error in test utility
	}()

	_, err = file.Write([]byte(content))
	//nolint:wrapcheck // Test utility - simple file operation error
	return err
}

// CreateTestCommitWithFile writes a file, stages it and commits it.
//
// Example:
//
//	commit, err := testutil.CreateTestCommitWithFile(repo, "README.md", "# Test", "Add README")
func CreateTestCommitWithFile(repo *git.Repository, path, content, message string) (*git.Commit, error) {
	if err := CreateTestFile(repo.Filesystem(), path, content); err != nil {
		return nil, err
	}
	if err := repo.Add(path); err != nil {
		//nolint:wrapcheck // Test utility - errors from git package are already wrapped
		return nil, err
	}
	//nolint:wrapcheck // Test utility - errors from git package are already wrapped
	return repo.Commit(message, git.CommitOptions{Author: TestSignature()})
}

// CreateTestTag tags rev. An empty message creates a lightweight tag,
// otherwise an annotated tag by the standard test author.
//
// Example:
//
//	tag, err := testutil.CreateTestTag(repo, "v1.0.0", "HEAD", "Release 1.0.0")
func CreateTestTag(repo *git.Repository, name, rev, message string) (*git.Tag, error) {
	opts := git.TagOptions{}
	if message != "" {
		sig := TestSignature()
		opts.Tagger = &sig
		opts.Message = message
	}
	//nolint:wrapcheck // Test utility - errors from git package are already wrapped
	return repo.CreateTag(name, rev, opts)
}

// CreateTestCommitWithTimestamp creates an empty commit with a specific
// timestamp. This is useful for testing history walks.
//
// Example:
//
//	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
//	commit, err := testutil.CreateTestCommitWithTimestamp(repo, "Old commit", ts)
func CreateTestCommitWithTimestamp(repo *git.Repository, message string, timestamp time.Time) (*git.Commit, error) {
	//nolint:wrapcheck // Test utility - errors from git package are already wrapped
	return repo.Commit(message, git.CommitOptions{
		Author:     git.Signature{Name: TestAuthor, Email: TestEmail, When: timestamp},
		AllowEmpty: true,
	})
}
