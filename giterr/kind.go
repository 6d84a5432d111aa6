package giterr

import (
	"strconv"

	platformerrors "github.com/jmgilman/gitbind/errors"
	"github.com/jmgilman/gitbind/native"
)

// Kind is the category of a classified error.
type Kind int

const (
	// KindGeneric is the fallback for ERROR, PASSTHROUGH, RETRY and any code
	// without a dedicated kind.
	KindGeneric Kind = iota
	KindNotFound
	KindExists
	KindAmbiguous
	KindBufferTooShort
	KindUser
	KindBareRepo
	KindUnbornBranch
	KindUnmerged
	KindNonFastForward
	KindInvalidSpec
	KindConflict
	KindLocked
	KindModified
	KindAuth
	KindCertificate
	KindApplied
	KindPeel
	KindEOF
	KindInvalid
	KindUncommitted
	KindDirectory
	KindMergeConflict
	KindIterOver
	KindMismatch

	// KindUnknownType is raised by the binding for an object type tag it
	// does not recognise. It carries no native context.
	KindUnknownType

	// KindDiff is raised by the binding when a diff cannot be computed.
	// It carries no native context.
	KindDiff
)

type kindInfo struct {
	name string
	code platformerrors.ErrorCode
}

var kinds = [...]kindInfo{
	KindGeneric:        {"Generic", platformerrors.CodeGeneric},
	KindNotFound:       {"NotFound", platformerrors.CodeNotFound},
	KindExists:         {"Exists", platformerrors.CodeAlreadyExists},
	KindAmbiguous:      {"Ambiguous", platformerrors.CodeAmbiguous},
	KindBufferTooShort: {"BufferTooShort", platformerrors.CodeBufferTooShort},
	KindUser:           {"User", platformerrors.CodeUser},
	KindBareRepo:       {"BareRepo", platformerrors.CodeBareRepo},
	KindUnbornBranch:   {"UnbornBranch", platformerrors.CodeUnbornBranch},
	KindUnmerged:       {"Unmerged", platformerrors.CodeUnmerged},
	KindNonFastForward: {"NonFastForward", platformerrors.CodeNonFastForward},
	KindInvalidSpec:    {"InvalidSpec", platformerrors.CodeInvalidSpec},
	KindConflict:       {"Conflict", platformerrors.CodeCheckoutConflict},
	KindLocked:         {"Locked", platformerrors.CodeLocked},
	KindModified:       {"Modified", platformerrors.CodeModified},
	KindAuth:           {"Auth", platformerrors.CodeAuth},
	KindCertificate:    {"Certificate", platformerrors.CodeCertificate},
	KindApplied:        {"Applied", platformerrors.CodeApplied},
	KindPeel:           {"Peel", platformerrors.CodePeel},
	KindEOF:            {"EOF", platformerrors.CodeEOF},
	KindInvalid:        {"Invalid", platformerrors.CodeInvalidOperation},
	KindUncommitted:    {"Uncommitted", platformerrors.CodeUncommitted},
	KindDirectory:      {"Directory", platformerrors.CodeDirectory},
	KindMergeConflict:  {"MergeConflict", platformerrors.CodeMergeConflict},
	KindIterOver:       {"IterOver", platformerrors.CodeIterOver},
	KindMismatch:       {"Mismatch", platformerrors.CodeMismatch},
	KindUnknownType:    {"UnknownType", platformerrors.CodeUnknownObjectType},
	KindDiff:           {"Diff", platformerrors.CodeDiff},
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(kinds)
}

func (k Kind) String() string {
	if k.valid() {
		return kinds[k].name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ErrorCode returns the structured error code for k.
// Out-of-range kinds map to CodeUnknown.
func (k Kind) ErrorCode() platformerrors.ErrorCode {
	if k.valid() {
		return kinds[k].code
	}
	return platformerrors.CodeUnknown
}

// NativeBacked reports whether errors of this kind carry an ErrorInfo.
func (k Kind) NativeBacked() bool {
	return k != KindUnknownType && k != KindDiff
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	for i := range kinds {
		out[i] = Kind(i)
	}
	return out
}

// codeKinds maps each named native code to its kind. Codes missing here,
// ERROR and PASSTHROUGH among them, fold to KindGeneric.
var codeKinds = map[native.Code]Kind{
	native.CodeNotFound:       KindNotFound,
	native.CodeExists:         KindExists,
	native.CodeAmbiguous:      KindAmbiguous,
	native.CodeBufs:           KindBufferTooShort,
	native.CodeUser:           KindUser,
	native.CodeBareRepo:       KindBareRepo,
	native.CodeUnbornBranch:   KindUnbornBranch,
	native.CodeUnmerged:       KindUnmerged,
	native.CodeNonFastForward: KindNonFastForward,
	native.CodeInvalidSpec:    KindInvalidSpec,
	native.CodeConflict:       KindConflict,
	native.CodeLocked:         KindLocked,
	native.CodeModified:       KindModified,
	native.CodeAuth:           KindAuth,
	native.CodeCertificate:    KindCertificate,
	native.CodeApplied:        KindApplied,
	native.CodePeel:           KindPeel,
	native.CodeEOF:            KindEOF,
	native.CodeInvalid:        KindInvalid,
	native.CodeUncommitted:    KindUncommitted,
	native.CodeDirectory:      KindDirectory,
	native.CodeMergeConflict:  KindMergeConflict,
	native.CodeIterOver:       KindIterOver,
	native.CodeMismatch:       KindMismatch,
}

// KindFor returns the kind Classify would select for code. It does not read
// the last-error slot.
func KindFor(code native.Code) Kind {
	if k, ok := codeKinds[code]; ok {
		return k
	}
	return KindGeneric
}
