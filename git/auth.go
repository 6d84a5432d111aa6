package git

import (
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	platformerrors "github.com/jmgilman/gitbind/errors"
)

// SSHKeyOption configures SSH key authentication.
type SSHKeyOption func(*sshKeyOptions)

type sshKeyOptions struct {
	password string
}

// WithSSHPassword sets the password for encrypted SSH keys.
func WithSSHPassword(password string) SSHKeyOption {
	return func(opts *sshKeyOptions) {
		opts.password = password
	}
}

// SSHKeyAuth creates SSH authentication from PEM-encoded key bytes.
//
// Parameters:
//   - user: SSH username (typically "git" for Git hosting services)
//   - pemBytes: PEM-encoded private key bytes
//   - opts: optional configuration (use WithSSHPassword for encrypted keys)
//
// Keys that cannot be parsed fail with errors.CodeInvalidInput.
//
// Example:
//
//	auth, err := git.SSHKeyAuth("git", keyBytes, git.WithSSHPassword("passphrase"))
func SSHKeyAuth(user string, pemBytes []byte, opts ...SSHKeyOption) (Auth, error) {
	options := &sshKeyOptions{}
	for _, opt := range opts {
		opt(options)
	}

	publicKeys, err := ssh.NewPublicKeys(user, pemBytes, options.password)
	if err != nil {
		return nil, platformerrors.Wrap(err, platformerrors.CodeInvalidInput, "failed to parse SSH key")
	}
	return publicKeys, nil
}

// SSHKeyFile creates SSH authentication by reading a key from a file.
// This is a convenience wrapper around SSHKeyAuth that handles file I/O.
//
// Example:
//
//	auth, err := git.SSHKeyFile("git", "/home/ci/.ssh/id_ed25519")
func SSHKeyFile(user string, keyPath string, opts ...SSHKeyOption) (Auth, error) {
	pemBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, platformerrors.WrapWithContext(err, platformerrors.CodeInvalidInput,
			"failed to read SSH key file", map[string]interface{}{"path": keyPath})
	}
	return SSHKeyAuth(user, pemBytes, opts...)
}

// BasicAuth creates HTTP basic authentication, commonly a username and a
// personal access token.
//
// Example:
//
//	auth := git.BasicAuth("myuser", "ghp_mytoken")
func BasicAuth(username, password string) Auth {
	return &http.BasicAuth{
		Username: username,
		Password: password,
	}
}

// EmptyAuth returns nil authentication for public repositories.
// go-git interprets nil Auth as "no authentication needed".
func EmptyAuth() Auth {
	return nil
}
