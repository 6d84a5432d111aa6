package git

import (
	"log/slog"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/jmgilman/gitbind/native"
)

// Repository wraps an engine repository handle with the binding's logger,
// default credentials and retry policy.
type Repository struct {
	path   string
	native *native.Repository
	logger *slog.Logger
	auth   Auth
	retry  RetryPolicy
}

// Auth is an authentication method for remote operations.
// It is satisfied by go-git's transport.AuthMethod.
type Auth = transport.AuthMethod

// Object is a decoded repository object: *Commit, *Tree, *Blob or *Tag.
type Object interface {
	// ID returns the object's content hash.
	ID() native.Oid

	// Type returns the object's type tag.
	Type() native.ObjectType
}

// Signature identifies the author, committer or tagger of an object.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Commit is a value type containing decoded commit information.
type Commit struct {
	Hash      native.Oid
	Tree      native.Oid
	Parents   []native.Oid
	Author    Signature
	Committer Signature
	Message   string
}

// Tree is a value type listing the entries of a tree object.
type Tree struct {
	Hash    native.Oid
	Entries []TreeEntry
}

// TreeEntry is one named entry of a tree.
type TreeEntry struct {
	Name string
	Mode string // octal mode, e.g. "0100644"
	Hash native.Oid
}

// Blob is a value type holding file content.
type Blob struct {
	Hash native.Oid
	Data []byte
}

// Tag is a value type representing a Git tag.
type Tag struct {
	Name       string
	Hash       native.Oid // the tag object for annotated tags, the target otherwise
	Target     native.Oid
	TargetType native.ObjectType
	Tagger     Signature
	Message    string // Empty for lightweight tags
	Annotated  bool
}

func (c *Commit) ID() native.Oid { return c.Hash }
func (c *Commit) Type() native.ObjectType { return native.ObjectCommit }
func (t *Tree) ID() native.Oid { return t.Hash }
func (t *Tree) Type() native.ObjectType { return native.ObjectTree }
func (b *Blob) ID() native.Oid { return b.Hash }
func (b *Blob) Type() native.ObjectType { return native.ObjectBlob }
func (t *Tag) ID() native.Oid { return t.Hash }
func (t *Tag) Type() native.ObjectType { return native.ObjectTag }

// Reference is a simple value type representing a named reference.
type Reference struct {
	Name     string
	Target   native.Oid
	Symbolic string // target name for symbolic references
}

// Branch is a simple value type representing a Git branch.
type Branch struct {
	Name     string
	Hash     native.Oid
	IsRemote bool
	IsHead   bool
}

// Remote is a simple value type representing a Git remote.
type Remote struct {
	Name string
	URLs []string
}

// DiffStat is the line count summary for one changed path.
type DiffStat struct {
	Path    string
	Added   int
	Deleted int
}

// CommitOptions configures commit creation.
type CommitOptions struct {
	Author     Signature
	Committer  *Signature // defaults to Author
	AllowEmpty bool
	All        bool // stage modified tracked files first
}

// CheckoutOptions configures Checkout.
type CheckoutOptions struct {
	Create bool   // create the branch
	Start  string // revision a created branch starts at; defaults to HEAD
	Force  bool   // discard local changes
}

// TagOptions configures tag creation. A nil Tagger creates a lightweight tag.
type TagOptions struct {
	Tagger  *Signature
	Message string
	Force   bool
}

// MergeOptions configures Merge.
type MergeOptions struct {
	Message   string     // merge commit message; git's default when empty
	Committer *Signature // identity for the merge commit
	FFOnly    bool       // fail instead of creating a merge commit
}

// FetchOptions configures fetch operations.
type FetchOptions struct {
	RefSpecs []string
	Auth     Auth // overrides the repository default
	Depth    int
	Force    bool
}

// PushOptions configures push operations.
type PushOptions struct {
	RefSpecs []string
	Auth     Auth // overrides the repository default
	Force    bool
}

// RetryPolicy bounds the retries of operations that fail with a retryable
// error such as a held lock or a lost compare-and-swap.
type RetryPolicy struct {
	Attempts uint
	Delay    time.Duration
}

// DefaultRetryPolicy is used when WithRetry is not given.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Delay: 100 * time.Millisecond}

// RepositoryOption configures repository creation operations (Init, Open, Clone).
type RepositoryOption func(*repositoryOptions)

// repositoryOptions holds the configuration for repository creation.
type repositoryOptions struct {
	fs           billy.Filesystem
	bare         bool
	auth         Auth
	depth        int
	singleBranch bool
	branch       string
	logger       *slog.Logger
	retry        RetryPolicy
}

func newOptions(opts []RepositoryOption) *repositoryOptions {
	o := &repositoryOptions{
		logger: slog.New(slog.DiscardHandler),
		retry:  DefaultRetryPolicy,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFilesystem sets the billy filesystem the repository lives in.
// If not provided, the path is taken on the local disk.
//
// Example:
//
//	repo, err := git.Init("/repo", git.WithFilesystem(memfs.New()))
func WithFilesystem(fs billy.Filesystem) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.fs = fs
	}
}

// WithBare creates or clones a bare repository (no working tree).
//
// Example:
//
//	repo, err := git.Init("/path/to/repo.git", git.WithBare())
func WithBare() RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.bare = true
	}
}

// WithAuth sets the default authentication for Clone, Fetch and Push.
//
// Example:
//
//	auth, _ := git.SSHKeyFile("git", "~/.ssh/id_ed25519")
//	repo, err := git.Clone(ctx, "git@github.com:org/repo.git", "/src/repo", git.WithAuth(auth))
func WithAuth(auth Auth) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.auth = auth
	}
}

// WithDepth sets the depth for shallow clones.
// A depth of 0 (default) performs a full clone.
func WithDepth(depth int) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.depth = depth
	}
}

// WithSingleBranch limits a clone to a single branch.
func WithSingleBranch() RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.singleBranch = true
	}
}

// WithBranch sets the branch a clone checks out.
func WithBranch(name string) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.branch = name
	}
}

// WithLogger sets the logger that receives classified failures at debug
// level. Logging is discarded by default.
func WithLogger(logger *slog.Logger) RepositoryOption {
	return func(opts *repositoryOptions) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithRetry sets how often retryable failures are attempted and the base
// delay between attempts. One attempt disables retries.
func WithRetry(attempts uint, delay time.Duration) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.retry = RetryPolicy{Attempts: attempts, Delay: delay}
	}
}
