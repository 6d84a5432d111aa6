package native

import (
	"context"
	"errors"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Remote is a configured remote.
type Remote struct {
	Name string
	URLs []string
}

// RemoteNameIsValid reports whether name can be used as a remote name.
func RemoteNameIsValid(name string) bool {
	return name != "" && !strings.Contains(name, "/") && ReferenceNameIsValid(remotePrefix+name+"/HEAD")
}

// RemoteCreate adds a remote with the default fetch refspec.
func RemoteCreate(r *Repository, name, url string) (*Remote, Code) {
	begin()
	if !RemoteNameIsValid(name) {
		return nil, fail(ClassConfig, CodeInvalidSpec, "'%s' is not a valid remote name.", name)
	}
	if url == "" {
		return nil, fail(ClassConfig, CodeInvalid, "cannot set empty URL")
	}
	rem, err := r.repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}})
	if err != nil {
		if errors.Is(err, gogit.ErrRemoteExists) {
			return nil, fail(ClassConfig, CodeExists, "remote '%s' already exists", name)
		}
		return nil, failErr(ClassConfig, err)
	}
	return &Remote{Name: rem.Config().Name, URLs: rem.Config().URLs}, CodeOK
}

// RemoteLookup reads the remote called name.
func RemoteLookup(r *Repository, name string) (*Remote, Code) {
	begin()
	return r.lookupRemote(name)
}

func (r *Repository) lookupRemote(name string) (*Remote, Code) {
	if !RemoteNameIsValid(name) {
		return nil, fail(ClassConfig, CodeInvalidSpec, "'%s' is not a valid remote name.", name)
	}
	rem, err := r.repo.Remote(name)
	if err != nil {
		if errors.Is(err, gogit.ErrRemoteNotFound) {
			return nil, fail(ClassConfig, CodeNotFound, "remote '%s' does not exist", name)
		}
		return nil, failErr(ClassConfig, err)
	}
	return &Remote{Name: rem.Config().Name, URLs: rem.Config().URLs}, CodeOK
}

// RemoteDelete removes the remote called name.
func RemoteDelete(r *Repository, name string) Code {
	begin()
	if _, code := r.lookupRemote(name); code.Failed() {
		return code
	}
	if err := r.repo.DeleteRemote(name); err != nil {
		return failErr(ClassConfig, err)
	}
	return CodeOK
}

// RemoteList returns the names of all remotes, sorted.
func RemoteList(r *Repository) ([]string, Code) {
	begin()
	remotes, err := r.repo.Remotes()
	if err != nil {
		return nil, failErr(ClassConfig, err)
	}
	names := make([]string, 0, len(remotes))
	for _, rem := range remotes {
		names = append(names, rem.Config().Name)
	}
	sort.Strings(names)
	return names, CodeOK
}

// TransferOptions configures RemoteFetch and RemotePush.
type TransferOptions struct {
	Auth     transport.AuthMethod
	RefSpecs []string
	Depth    int
	Force    bool
}

func refSpecs(specs []string) ([]config.RefSpec, Code) {
	out := make([]config.RefSpec, 0, len(specs))
	for _, s := range specs {
		rs := config.RefSpec(s)
		if err := rs.Validate(); err != nil {
			return nil, fail(ClassNet, CodeInvalidSpec, "invalid refspec '%s'", s)
		}
		out = append(out, rs)
	}
	return out, CodeOK
}

// RemoteFetch downloads objects and updates remote-tracking references.
// Being already up to date is success.
func RemoteFetch(ctx context.Context, r *Repository, name string, opts TransferOptions) Code {
	begin()
	if _, code := r.lookupRemote(name); code.Failed() {
		return code
	}
	specs, code := refSpecs(opts.RefSpecs)
	if code.Failed() {
		return code
	}
	err := r.repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: name,
		RefSpecs:   specs,
		Auth:       opts.Auth,
		Depth:      opts.Depth,
		Force:      opts.Force,
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return failErr(ClassNet, err)
	}
	return CodeOK
}

// RemotePush uploads references to the remote. Rejected non-fast-forward
// updates return CodeNonFastForward.
func RemotePush(ctx context.Context, r *Repository, name string, opts TransferOptions) Code {
	begin()
	if _, code := r.lookupRemote(name); code.Failed() {
		return code
	}
	specs, code := refSpecs(opts.RefSpecs)
	if code.Failed() {
		return code
	}
	err := r.repo.PushContext(ctx, &gogit.PushOptions{
		RemoteName: name,
		RefSpecs:   specs,
		Auth:       opts.Auth,
		Force:      opts.Force,
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return failErr(ClassNet, err)
	}
	return CodeOK
}
