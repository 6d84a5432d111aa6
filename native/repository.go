package native

import (
	"context"
	"errors"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// Repository is an open repository handle.
type Repository struct {
	path   string
	repo   *gogit.Repository
	fs     billy.Filesystem
	bare   bool
	dir    string // host directory of fs, empty when fs is not on the local disk
}

// Path returns the path the repository was opened at.
func (r *Repository) Path() string { return r.path }

// Underlying returns the go-git repository behind the handle.
func (r *Repository) Underlying() *gogit.Repository { return r.repo }

// Filesystem returns the worktree filesystem, or the repository directory for
// bare repositories.
func (r *Repository) Filesystem() billy.Filesystem { return r.fs }

// RepositoryIsBare reports whether r has no worktree.
func RepositoryIsBare(r *Repository) bool { return r.bare }

// hostDir returns the local directory fs is rooted at. It reports false for
// filesystems that are not backed by the operating system, such as memfs,
// which the git CLI cannot operate on.
func hostDir(fs billy.Filesystem) (string, bool) {
	var base billy.Basic = fs
	for {
		u, ok := base.(interface{ Underlying() billy.Basic })
		if !ok {
			break
		}
		base = u.Underlying()
	}

	switch base.(type) {
	case *osfs.ChrootOS, *osfs.BoundOS:
	default:
		return "", false
	}
	r, ok := fs.(interface{ Root() string })
	if !ok {
		return "", false
	}
	return r.Root(), true
}

// onDisk reports whether the git CLI can run against r.
func (r *Repository) onDisk() bool { return r.dir != "" }

func newRepository(path string, repo *gogit.Repository, scoped billy.Filesystem, bare bool) *Repository {
	dir, _ := hostDir(scoped)
	return &Repository{
		path: path,
		repo: repo,
		fs:   scoped,
		bare: bare,
		dir:  dir,
	}
}

func rootFilesystem(fs billy.Filesystem) billy.Filesystem {
	if fs == nil {
		return osfs.New("/")
	}
	return fs
}

// RepositoryInit creates a repository at path inside fs. A nil fs means the
// local disk, in which case path should be absolute. Initialising over an
// existing repository returns CodeExists.
func RepositoryInit(fs billy.Filesystem, path string, bare bool) (*Repository, Code) {
	begin()
	root := rootFilesystem(fs)

	if err := root.MkdirAll(path, 0o755); err != nil {
		return nil, failErr(ClassOS, err)
	}
	scoped, err := root.Chroot(path)
	if err != nil {
		return nil, failErr(ClassOS, err)
	}

	var repo *gogit.Repository
	if bare {
		repo, err = gogit.Init(filesystem.NewStorage(scoped, cache.NewObjectLRUDefault()), nil)
	} else {
		dotGit, cerr := scoped.Chroot(".git")
		if cerr != nil {
			return nil, failErr(ClassOS, cerr)
		}
		repo, err = gogit.Init(filesystem.NewStorage(dotGit, cache.NewObjectLRUDefault()), scoped)
	}
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryAlreadyExists) {
			return nil, fail(ClassRepository, CodeExists, "'%s' is already a git repository", path)
		}
		return nil, failErr(ClassRepository, err)
	}

	return newRepository(path, repo, scoped, bare), CodeOK
}

// RepositoryOpen opens the repository at path inside fs. A directory with a
// .git subdirectory opens as a standard repository, anything else as bare.
func RepositoryOpen(fs billy.Filesystem, path string) (*Repository, Code) {
	begin()
	root := rootFilesystem(fs)

	scoped, err := root.Chroot(path)
	if err != nil {
		return nil, failErr(ClassOS, err)
	}

	var (
		repo *gogit.Repository
		bare bool
	)
	if st, serr := scoped.Stat(".git"); serr == nil && st.IsDir() {
		dotGit, cerr := scoped.Chroot(".git")
		if cerr != nil {
			return nil, failErr(ClassOS, cerr)
		}
		repo, err = gogit.Open(filesystem.NewStorage(dotGit, cache.NewObjectLRUDefault()), scoped)
	} else {
		bare = true
		repo, err = gogit.Open(filesystem.NewStorage(scoped, cache.NewObjectLRUDefault()), nil)
	}
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fail(ClassRepository, CodeNotFound, "could not find repository at '%s'", path)
		}
		return nil, failErr(ClassRepository, err)
	}

	return newRepository(path, repo, scoped, bare), CodeOK
}

// CloneOptions configures RepositoryClone.
type CloneOptions struct {
	URL          string
	Auth         transport.AuthMethod
	Depth        int
	SingleBranch bool
	Branch       string
	Bare         bool
}

// RepositoryClone clones opts.URL into path inside fs.
func RepositoryClone(ctx context.Context, fs billy.Filesystem, path string, opts CloneOptions) (*Repository, Code) {
	begin()
	if opts.URL == "" {
		return nil, fail(ClassInvalid, CodeInvalid, "cannot clone: empty URL")
	}
	root := rootFilesystem(fs)

	if err := root.MkdirAll(path, 0o755); err != nil {
		return nil, failErr(ClassOS, err)
	}
	scoped, err := root.Chroot(path)
	if err != nil {
		return nil, failErr(ClassOS, err)
	}

	cloneOpts := &gogit.CloneOptions{
		URL:          opts.URL,
		Auth:         opts.Auth,
		Depth:        opts.Depth,
		SingleBranch: opts.SingleBranch,
	}
	if opts.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
	}

	var repo *gogit.Repository
	if opts.Bare {
		repo, err = gogit.CloneContext(ctx, filesystem.NewStorage(scoped, cache.NewObjectLRUDefault()), nil, cloneOpts)
	} else {
		dotGit, cerr := scoped.Chroot(".git")
		if cerr != nil {
			return nil, failErr(ClassOS, cerr)
		}
		repo, err = gogit.CloneContext(ctx, filesystem.NewStorage(dotGit, cache.NewObjectLRUDefault()), scoped, cloneOpts)
	}
	if err != nil {
		return nil, failErr(ClassNet, err)
	}

	return newRepository(path, repo, scoped, opts.Bare), CodeOK
}

// RepositoryHead resolves HEAD to a direct reference. A HEAD that points at
// a branch with no commits returns CodeUnbornBranch.
func RepositoryHead(r *Repository) (*Reference, Code) {
	begin()
	head, err := r.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return nil, failErr(ClassReference, err)
	}

	if head.Type() == plumbing.SymbolicReference {
		if _, err := r.repo.Storer.Reference(head.Target()); errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, fail(ClassReference, CodeUnbornBranch,
				"reference '%s' not found", head.Target().String())
		}
	}

	resolved, err := storer.ResolveReference(r.repo.Storer, plumbing.HEAD)
	if err != nil {
		return nil, failErr(ClassReference, err)
	}
	return newReference(resolved), CodeOK
}

// RepositoryHeadUnborn reports whether HEAD points at a branch with no commits.
func RepositoryHeadUnborn(r *Repository) (bool, Code) {
	begin()
	head, err := r.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return false, failErr(ClassReference, err)
	}
	if head.Type() != plumbing.SymbolicReference {
		return false, CodeOK
	}
	_, err = r.repo.Storer.Reference(head.Target())
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return true, CodeOK
	}
	if err != nil {
		return false, failErr(ClassReference, err)
	}
	return false, CodeOK
}
