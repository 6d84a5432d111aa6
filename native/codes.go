package native

import "strconv"

// Code is the integer every engine call returns. Zero means success, negative
// values name a failure. The values match libgit2's git_error_code so callers
// ported from C keep their constants.
type Code int

const (
	CodeOK             Code = 0
	CodeError          Code = -1
	CodeNotFound       Code = -3
	CodeExists         Code = -4
	CodeAmbiguous      Code = -5
	CodeBufs           Code = -6
	CodeUser           Code = -7
	CodeBareRepo       Code = -8
	CodeUnbornBranch   Code = -9
	CodeUnmerged       Code = -10
	CodeNonFastForward Code = -11
	CodeInvalidSpec    Code = -12
	CodeConflict       Code = -13
	CodeLocked         Code = -14
	CodeModified       Code = -15
	CodeAuth           Code = -16
	CodeCertificate    Code = -17
	CodeApplied        Code = -18
	CodePeel           Code = -19
	CodeEOF            Code = -20
	CodeInvalid        Code = -21
	CodeUncommitted    Code = -22
	CodeDirectory      Code = -23
	CodeMergeConflict  Code = -24
	CodePassthrough    Code = -30
	CodeIterOver       Code = -31
	CodeRetry          Code = -32
	CodeMismatch       Code = -33
	CodeIndexDirty     Code = -34
	CodeApplyFail      Code = -35
	CodeOwner          Code = -36
	CodeTimeout        Code = -37
)

var codeNames = map[Code]string{
	CodeOK:             "GIT_OK",
	CodeError:          "GIT_ERROR",
	CodeNotFound:       "GIT_ENOTFOUND",
	CodeExists:         "GIT_EEXISTS",
	CodeAmbiguous:      "GIT_EAMBIGUOUS",
	CodeBufs:           "GIT_EBUFS",
	CodeUser:           "GIT_EUSER",
	CodeBareRepo:       "GIT_EBAREREPO",
	CodeUnbornBranch:   "GIT_EUNBORNBRANCH",
	CodeUnmerged:       "GIT_EUNMERGED",
	CodeNonFastForward: "GIT_ENONFASTFORWARD",
	CodeInvalidSpec:    "GIT_EINVALIDSPEC",
	CodeConflict:       "GIT_ECONFLICT",
	CodeLocked:         "GIT_ELOCKED",
	CodeModified:       "GIT_EMODIFIED",
	CodeAuth:           "GIT_EAUTH",
	CodeCertificate:    "GIT_ECERTIFICATE",
	CodeApplied:        "GIT_EAPPLIED",
	CodePeel:           "GIT_EPEEL",
	CodeEOF:            "GIT_EEOF",
	CodeInvalid:        "GIT_EINVALID",
	CodeUncommitted:    "GIT_EUNCOMMITTED",
	CodeDirectory:      "GIT_EDIRECTORY",
	CodeMergeConflict:  "GIT_EMERGECONFLICT",
	CodePassthrough:    "GIT_PASSTHROUGH",
	CodeIterOver:       "GIT_ITEROVER",
	CodeRetry:          "GIT_RETRY",
	CodeMismatch:       "GIT_EMISMATCH",
	CodeIndexDirty:     "GIT_EINDEXDIRTY",
	CodeApplyFail:      "GIT_EAPPLYFAIL",
	CodeOwner:          "GIT_EOWNER",
	CodeTimeout:        "GIT_TIMEOUT",
}

// String returns the libgit2 constant name, or the decimal value for codes
// the engine never returns.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return strconv.Itoa(int(c))
}

// Failed reports whether c signals a failure.
func (c Code) Failed() bool {
	return c < 0
}

// KnownCodes returns every code the engine defines, in descending order
// (CodeOK first).
func KnownCodes() []Code {
	return []Code{
		CodeOK, CodeError, CodeNotFound, CodeExists, CodeAmbiguous, CodeBufs,
		CodeUser, CodeBareRepo, CodeUnbornBranch, CodeUnmerged, CodeNonFastForward,
		CodeInvalidSpec, CodeConflict, CodeLocked, CodeModified, CodeAuth,
		CodeCertificate, CodeApplied, CodePeel, CodeEOF, CodeInvalid,
		CodeUncommitted, CodeDirectory, CodeMergeConflict, CodePassthrough,
		CodeIterOver, CodeRetry, CodeMismatch, CodeIndexDirty, CodeApplyFail,
		CodeOwner, CodeTimeout,
	}
}
