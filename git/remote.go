package git

import (
	"context"
	"fmt"

	"github.com/jmgilman/gitbind/native"
)

// DefaultRemote is used by Fetch and Push when no remote name is given.
const DefaultRemote = "origin"

// AddRemote adds a new remote to the repository configuration.
//
// Fails with giterr.ErrExists if the remote is already configured,
// giterr.ErrInvalidSpec for names git would reject, and giterr.ErrInvalid
// for an empty URL.
//
// Example:
//
//	err := repo.AddRemote("upstream", "https://github.com/upstream/repo")
func (r *Repository) AddRemote(name, url string) error {
	if _, code := native.RemoteCreate(r.native, name, url); code.Failed() {
		return r.fail(code, "remote_create", fmt.Sprintf("failed to add remote %q", name))
	}
	return nil
}

// RemoveRemote removes a remote from the repository configuration.
func (r *Repository) RemoveRemote(name string) error {
	if code := native.RemoteDelete(r.native, name); code.Failed() {
		return r.fail(code, "remote_delete", fmt.Sprintf("failed to remove remote %q", name))
	}
	return nil
}

// Remote looks up a configured remote.
func (r *Repository) Remote(name string) (Remote, error) {
	rem, code := native.RemoteLookup(r.native, name)
	if code.Failed() {
		return Remote{}, r.fail(code, "remote_lookup", fmt.Sprintf("failed to look up remote %q", name))
	}
	return Remote{Name: rem.Name, URLs: rem.URLs}, nil
}

// ListRemotes returns all configured remotes, sorted by name.
func (r *Repository) ListRemotes() ([]Remote, error) {
	names, code := native.RemoteList(r.native)
	if code.Failed() {
		return nil, r.fail(code, "remote_list", "failed to list remotes")
	}
	remotes := make([]Remote, 0, len(names))
	for _, name := range names {
		rem, err := r.Remote(name)
		if err != nil {
			return nil, err
		}
		remotes = append(remotes, rem)
	}
	return remotes, nil
}

// Fetch downloads objects and refs from remote, updating its
// remote-tracking branches. An empty remote means DefaultRemote.
//
// Transient failures (a held lock, a stream cut short) are retried under
// the repository's retry policy. Being already up to date is not an error.
//
// Example:
//
//	err := repo.Fetch(ctx, "origin", git.FetchOptions{Depth: 1})
func (r *Repository) Fetch(ctx context.Context, remote string, opts FetchOptions) error {
	if remote == "" {
		remote = DefaultRemote
	}
	transfer := native.TransferOptions{
		Auth:     r.authFor(opts.Auth),
		RefSpecs: opts.RefSpecs,
		Depth:    opts.Depth,
		Force:    opts.Force,
	}
	return r.withRetry(ctx, "remote_fetch", func() error {
		if code := native.RemoteFetch(ctx, r.native, remote, transfer); code.Failed() {
			return r.fail(code, "remote_fetch", fmt.Sprintf("failed to fetch from %q", remote))
		}
		return nil
	})
}

// Push uploads refs to remote. An empty remote means DefaultRemote, and no
// RefSpecs pushes the current branch to the branch of the same name.
//
// A rejected non-fast-forward update fails with giterr.ErrNonFastForward
// unless Force is set. Transient failures are retried.
//
// Example:
//
//	err := repo.Push(ctx, "origin", git.PushOptions{
//	    RefSpecs: []string{"refs/heads/main:refs/heads/main"},
//	})
func (r *Repository) Push(ctx context.Context, remote string, opts PushOptions) error {
	if remote == "" {
		remote = DefaultRemote
	}
	transfer := native.TransferOptions{
		Auth:     r.authFor(opts.Auth),
		RefSpecs: opts.RefSpecs,
		Force:    opts.Force,
	}
	if len(transfer.RefSpecs) == 0 {
		head, err := r.Head()
		if err != nil {
			return wrapError(err, fmt.Sprintf("failed to push to %q", remote))
		}
		transfer.RefSpecs = []string{head.Name + ":" + head.Name}
	}
	return r.withRetry(ctx, "remote_push", func() error {
		if code := native.RemotePush(ctx, r.native, remote, transfer); code.Failed() {
			return r.fail(code, "remote_push", fmt.Sprintf("failed to push to %q", remote))
		}
		return nil
	})
}

func (r *Repository) authFor(override Auth) Auth {
	if override != nil {
		return override
	}
	return r.auth
}
