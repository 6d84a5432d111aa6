package giterr

import (
	"errors"
	"fmt"

	platformerrors "github.com/jmgilman/gitbind/errors"
	"github.com/jmgilman/gitbind/native"
)

const noMessage = "no error message available"

// ErrorInfo is the native context captured when a call fails.
// It is built once by Classify and never modified.
type ErrorInfo struct {
	// Code is the raw return code of the failing call.
	Code native.Code

	// Operation names the engine call that failed.
	Operation string

	// Class is the engine subsystem that recorded Message.
	Class native.ErrorClass

	// Message is the engine's last-error text. Empty when none was recorded.
	Message string
}

// Error is a classified engine failure.
//
// Every kind except KindUnknownType and KindDiff carries an ErrorInfo. Values
// are built with Classify, ClassifyWith, NewUnknownType or NewDiffError.
//
// A nil *Error or a zero Error{} is unclassified, not a valid classification:
// it reports KindGeneric, Info returns false and Describe returns the
// no-message phrase. Use Classified to tell it apart from a real error.
type Error struct {
	kind    Kind
	info    *ErrorInfo
	objType native.ObjectType
	oid     native.Oid
}

// Classified reports whether e came from one of the constructors. It is
// false for a nil or zero Error.
func (e *Error) Classified() bool {
	if e == nil {
		return false
	}
	return e.info != nil || !e.kind.NativeBacked()
}

// Kind returns the error's category. A nil error reports KindGeneric.
func (e *Error) Kind() Kind {
	if e == nil {
		return KindGeneric
	}
	return e.kind
}

// Info returns the native context. The boolean is false for the
// binding-raised kinds.
func (e *Error) Info() (*ErrorInfo, bool) {
	if e == nil || e.info == nil {
		return nil, false
	}
	return e.info, true
}

// ObjectType returns the unrecognised type tag of a KindUnknownType error.
func (e *Error) ObjectType() native.ObjectType {
	if e == nil {
		return native.ObjectInvalid
	}
	return e.objType
}

// Oid returns the object id of a KindUnknownType error.
func (e *Error) Oid() native.Oid {
	if e == nil {
		return native.ZeroOid
	}
	return e.oid
}

// Describe renders the error for humans. It never panics.
func (e *Error) Describe() string {
	if e == nil {
		return noMessage
	}
	switch e.kind {
	case KindUnknownType:
		return fmt.Sprintf("unknown object type %d for object %s", int(e.objType), e.oid)
	case KindDiff:
		return "diff error"
	}
	if e.info == nil || e.info.Message == "" {
		return noMessage
	}
	return e.info.Message
}

// Error formats as "operation: description (code)" for native-backed errors
// and as the bare description otherwise.
func (e *Error) Error() string {
	if e == nil || e.info == nil {
		return e.Describe()
	}
	if e.info.Operation == "" {
		return fmt.Sprintf("%s (%s)", e.Describe(), e.info.Code)
	}
	return fmt.Sprintf("%s: %s (%s)", e.info.Operation, e.Describe(), e.info.Code)
}

// Is matches the kind sentinels, so errors.Is(err, giterr.ErrNotFound) works
// through any wrapping.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	if s, ok := target.(sentinel); ok {
		return e.kind == Kind(s)
	}
	return false
}

// Code implements errors.PlatformError.
func (e *Error) Code() platformerrors.ErrorCode {
	return e.Kind().ErrorCode()
}

// Classification implements errors.PlatformError. Locked, Modified and EOF
// failures are retryable.
func (e *Error) Classification() platformerrors.ErrorClassification {
	return platformerrors.DefaultClassification(e.Code())
}

// Message implements errors.PlatformError.
func (e *Error) Message() string {
	return e.Describe()
}

// Context implements errors.PlatformError.
func (e *Error) Context() map[string]interface{} {
	if e == nil {
		return nil
	}
	ctx := map[string]interface{}{"kind": e.kind.String()}
	if e.info != nil {
		ctx["native_code"] = int(e.info.Code)
		ctx["native_name"] = e.info.Code.String()
		ctx["class"] = e.info.Class.String()
		if e.info.Operation != "" {
			ctx["operation"] = e.info.Operation
		}
	}
	if e.kind == KindUnknownType {
		ctx["object_type"] = int(e.objType)
		ctx["oid"] = e.oid.String()
	}
	return ctx
}

// Unwrap implements errors.PlatformError. Classified errors are leaves.
func (e *Error) Unwrap() error {
	return nil
}

var _ platformerrors.PlatformError = (*Error)(nil)

// NewUnknownType reports an object whose type tag the binding does not know.
func NewUnknownType(typ native.ObjectType, oid native.Oid) *Error {
	return &Error{kind: KindUnknownType, objType: typ, oid: oid}
}

// NewDiffError reports a diff that could not be computed.
func NewDiffError() *Error {
	return &Error{kind: KindDiff}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.kind, true
	}
	return KindGeneric, false
}

// sentinel is a comparison target for errors.Is.
type sentinel Kind

func (s sentinel) Error() string {
	return "git: " + Kind(s).String()
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrGeneric        error = sentinel(KindGeneric)
	ErrNotFound       error = sentinel(KindNotFound)
	ErrExists         error = sentinel(KindExists)
	ErrAmbiguous      error = sentinel(KindAmbiguous)
	ErrBufferTooShort error = sentinel(KindBufferTooShort)
	ErrUser           error = sentinel(KindUser)
	ErrBareRepo       error = sentinel(KindBareRepo)
	ErrUnbornBranch   error = sentinel(KindUnbornBranch)
	ErrUnmerged       error = sentinel(KindUnmerged)
	ErrNonFastForward error = sentinel(KindNonFastForward)
	ErrInvalidSpec    error = sentinel(KindInvalidSpec)
	ErrConflict       error = sentinel(KindConflict)
	ErrLocked         error = sentinel(KindLocked)
	ErrModified       error = sentinel(KindModified)
	ErrAuth           error = sentinel(KindAuth)
	ErrCertificate    error = sentinel(KindCertificate)
	ErrApplied        error = sentinel(KindApplied)
	ErrPeel           error = sentinel(KindPeel)
	ErrEOF            error = sentinel(KindEOF)
	ErrInvalid        error = sentinel(KindInvalid)
	ErrUncommitted    error = sentinel(KindUncommitted)
	ErrDirectory      error = sentinel(KindDirectory)
	ErrMergeConflict  error = sentinel(KindMergeConflict)
	ErrIterOver       error = sentinel(KindIterOver)
	ErrMismatch       error = sentinel(KindMismatch)
	ErrUnknownType    error = sentinel(KindUnknownType)
	ErrDiff           error = sentinel(KindDiff)
)
