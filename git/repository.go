package git

import (
	"context"
	"log/slog"

	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/jmgilman/gitbind/native"
)

// Init creates a new Git repository at the specified path.
//
// By default, Init creates a standard (non-bare) repository on the local
// filesystem. This behavior can be customized using RepositoryOption functions.
//
// Initialising over an existing repository fails with giterr.ErrExists.
//
// Examples:
//
//	// Create a standard repository
//	repo, err := git.Init("/path/to/repo")
//
//	// Create a bare repository
//	repo, err := git.Init("/path/to/repo.git", git.WithBare())
//
//	// Create repository with custom filesystem (for testing)
//	repo, err := git.Init("/repo", git.WithFilesystem(memfs.New()))
func Init(path string, opts ...RepositoryOption) (*Repository, error) {
	o := newOptions(opts)
	repo, code := native.RepositoryInit(o.fs, path, o.bare)
	if code.Failed() {
		return nil, wrapError(classify(o.logger, code, "repository_init"), "failed to initialize repository")
	}
	return o.repository(path, repo), nil
}

// Open opens an existing Git repository at the specified path. A directory
// without a .git subdirectory is opened as a bare repository.
//
// A path holding no repository fails with giterr.ErrNotFound.
//
// Examples:
//
//	// Open a repository from the local filesystem
//	repo, err := git.Open("/path/to/repo")
//
//	// Open with custom filesystem (for testing)
//	repo, err := git.Open("/repo", git.WithFilesystem(fs))
func Open(path string, opts ...RepositoryOption) (*Repository, error) {
	o := newOptions(opts)
	repo, code := native.RepositoryOpen(o.fs, path)
	if code.Failed() {
		return nil, wrapError(classify(o.logger, code, "repository_open"), "failed to open repository")
	}
	return o.repository(path, repo), nil
}

// Clone clones the repository at url into path.
//
// Authentication set with WithAuth is kept as the repository default for
// later Fetch and Push calls.
//
// Examples:
//
//	// Clone a public repository
//	repo, err := git.Clone(ctx, "https://github.com/org/repo", "/src/repo")
//
//	// Shallow clone of one branch
//	repo, err := git.Clone(ctx, "https://github.com/org/repo", "/src/repo",
//	    git.WithDepth(1),
//	    git.WithSingleBranch(),
//	    git.WithBranch("main"))
func Clone(ctx context.Context, url, path string, opts ...RepositoryOption) (*Repository, error) {
	o := newOptions(opts)
	repo, code := native.RepositoryClone(ctx, o.fs, path, native.CloneOptions{
		URL:          url,
		Auth:         o.auth,
		Depth:        o.depth,
		SingleBranch: o.singleBranch,
		Branch:       o.branch,
		Bare:         o.bare,
	})
	if code.Failed() {
		return nil, wrapError(classify(o.logger, code, "clone"), "failed to clone repository")
	}
	o.logger.Debug("cloned repository", "url", url, "path", path)
	return o.repository(path, repo), nil
}

func (o *repositoryOptions) repository(path string, repo *native.Repository) *Repository {
	return &Repository{
		path:   path,
		native: repo,
		logger: o.logger,
		auth:   o.auth,
		retry:  o.retry,
	}
}

// Path returns the path the repository was opened at.
func (r *Repository) Path() string {
	return r.path
}

// IsBare reports whether the repository has no working tree.
func (r *Repository) IsBare() bool {
	return native.RepositoryIsBare(r.native)
}

// Engine returns the engine handle for calls this wrapper does not cover.
// Failures from it can be classified with giterr.Classify.
func (r *Repository) Engine() *native.Repository {
	return r.native
}

// Underlying returns the underlying go-git Repository for advanced operations
// not covered by this wrapper.
func (r *Repository) Underlying() *gogit.Repository {
	return r.native.Underlying()
}

// Filesystem returns the billy.Filesystem scoped to the working tree, or to
// the repository directory for bare repositories.
func (r *Repository) Filesystem() billy.Filesystem {
	return r.native.Filesystem()
}

// Logger returns the repository's logger.
func (r *Repository) Logger() *slog.Logger {
	return r.logger
}
