package native

import (
	"context"
	"crypto/x509"
	"errors"
	"io"
	"io/fs"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage"
)

type sentinel struct {
	err   error
	code  Code
	class ErrorClass
}

// sentinels maps go-git's exported errors to engine codes. Order matters
// only where one error wraps another.
var sentinels = []sentinel{
	{context.Canceled, CodeUser, ClassCallback},
	{context.DeadlineExceeded, CodeTimeout, ClassNet},

	{gogit.ErrRepositoryNotExists, CodeNotFound, ClassRepository},
	{transport.ErrRepositoryNotFound, CodeNotFound, ClassNet},
	{transport.ErrEmptyRemoteRepository, CodeNotFound, ClassNet},
	{plumbing.ErrReferenceNotFound, CodeNotFound, ClassReference},
	{plumbing.ErrObjectNotFound, CodeNotFound, ClassODB},
	{gogit.ErrRemoteNotFound, CodeNotFound, ClassConfig},
	{gogit.ErrTagNotFound, CodeNotFound, ClassTag},
	{gogit.ErrBranchNotFound, CodeNotFound, ClassReference},

	{gogit.ErrRepositoryAlreadyExists, CodeExists, ClassRepository},
	{gogit.ErrRemoteExists, CodeExists, ClassConfig},
	{gogit.ErrTagExists, CodeExists, ClassTag},
	{gogit.ErrBranchExists, CodeExists, ClassReference},

	{transport.ErrAuthenticationRequired, CodeAuth, ClassNet},
	{transport.ErrAuthorizationFailed, CodeAuth, ClassNet},
	{transport.ErrInvalidAuthMethod, CodeAuth, ClassNet},

	{gogit.ErrIsBareRepository, CodeBareRepo, ClassRepository},

	{gogit.ErrWorktreeNotClean, CodeConflict, ClassCheckout},
	{gogit.ErrUnstagedChanges, CodeConflict, ClassCheckout},

	{gogit.ErrNonFastForwardUpdate, CodeNonFastForward, ClassMerge},
	{gogit.ErrFastForwardMergeNotPossible, CodeNonFastForward, ClassMerge},
	{gogit.ErrForceNeeded, CodeNonFastForward, ClassNet},

	{storage.ErrReferenceHasChanged, CodeModified, ClassReference},

	{gogit.ErrMissingURL, CodeInvalid, ClassConfig},
	{gogit.ErrMissingAuthor, CodeInvalid, ClassObject},
	{gogit.ErrMissingName, CodeInvalid, ClassTag},
	{plumbing.ErrInvalidType, CodeInvalid, ClassObject},
	{config.ErrRemoteConfigEmptyURL, CodeInvalid, ClassConfig},
	{config.ErrRemoteConfigEmptyName, CodeInvalidSpec, ClassConfig},

	{io.ErrUnexpectedEOF, CodeEOF, ClassNet},
	{io.EOF, CodeEOF, ClassNet},

	{fs.ErrNotExist, CodeNotFound, ClassOS},
	{fs.ErrExist, CodeExists, ClassOS},
}

type pattern struct {
	substr string
	code   Code
	class  ErrorClass
}

// messagePatterns covers failures go-git only reports as formatted text.
var messagePatterns = []pattern{
	{"non-fast-forward update", CodeNonFastForward, ClassNet},
	{"reference has changed concurrently", CodeModified, ClassReference},
	{"unexpected EOF", CodeEOF, ClassNet},
	{"certificate signed by unknown authority", CodeCertificate, ClassSSL},
}

// translate maps err to an engine code and class. Errors that match nothing
// become CodeError with the caller's class.
func translate(err error, class ErrorClass) (Code, ErrorClass) {
	if err == nil {
		return CodeOK, ClassNone
	}

	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return s.code, s.class
		}
	}

	var unknownAuthority x509.UnknownAuthorityError
	var hostname x509.HostnameError
	var invalidCert x509.CertificateInvalidError
	if errors.As(err, &unknownAuthority) || errors.As(err, &hostname) || errors.As(err, &invalidCert) {
		return CodeCertificate, ClassSSL
	}

	msg := err.Error()
	for _, p := range messagePatterns {
		if strings.Contains(msg, p.substr) {
			return p.code, p.class
		}
	}

	return CodeError, class
}
