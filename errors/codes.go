package errors

// ErrorCode names a failure category.
// Codes are strings so they read well in logs and serialize naturally to JSON.
type ErrorCode string

const (
	// Lookup errors.

	// CodeNotFound indicates a requested object, reference or repository does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates the target of a create operation is already present.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodeAmbiguous indicates a short identifier matched more than one object.
	CodeAmbiguous ErrorCode = "AMBIGUOUS"

	// CodeInvalidSpec indicates a malformed revision or reference name.
	CodeInvalidSpec ErrorCode = "INVALID_SPEC"

	// CodeBufferTooShort indicates an output buffer cannot hold the result.
	CodeBufferTooShort ErrorCode = "BUFFER_TOO_SHORT"

	// Repository state errors.

	// CodeBareRepo indicates an operation needs a working tree but the repository is bare.
	CodeBareRepo ErrorCode = "BARE_REPOSITORY"

	// CodeUnbornBranch indicates HEAD points at a branch with no commits yet.
	CodeUnbornBranch ErrorCode = "UNBORN_BRANCH"

	// CodeUnmerged indicates the index holds unresolved merge entries.
	CodeUnmerged ErrorCode = "UNMERGED"

	// CodeUncommitted indicates local changes block the operation.
	CodeUncommitted ErrorCode = "UNCOMMITTED_CHANGES"

	// CodeCheckoutConflict indicates a checkout would overwrite local changes.
	CodeCheckoutConflict ErrorCode = "CHECKOUT_CONFLICT"

	// CodeMergeConflict indicates a merge stopped on conflicting changes.
	CodeMergeConflict ErrorCode = "MERGE_CONFLICT"

	// CodeLocked indicates a lock file is held by another process.
	CodeLocked ErrorCode = "LOCKED"

	// CodeModified indicates a reference changed between read and update.
	CodeModified ErrorCode = "MODIFIED"

	// CodeDirectory indicates the operation is not valid for a directory.
	CodeDirectory ErrorCode = "INVALID_DIRECTORY"

	// CodeInvalidOperation indicates the engine rejected the requested operation.
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Transport errors.

	// CodeAuth indicates authentication with a remote failed.
	CodeAuth ErrorCode = "AUTH_FAILED"

	// CodeCertificate indicates the remote presented an invalid server certificate.
	CodeCertificate ErrorCode = "INVALID_CERTIFICATE"

	// CodeNonFastForward indicates a reference update would discard commits.
	CodeNonFastForward ErrorCode = "NON_FAST_FORWARD"

	// CodeEOF indicates a stream ended before the engine expected it to.
	CodeEOF ErrorCode = "UNEXPECTED_EOF"

	// Object errors.

	// CodePeel indicates an object cannot be peeled to the requested type.
	CodePeel ErrorCode = "PEEL_FAILED"

	// CodeMismatch indicates stored object content does not match its identifier.
	CodeMismatch ErrorCode = "CHECKSUM_MISMATCH"

	// CodeUnknownObjectType indicates the engine returned an object type tag the binding does not know.
	CodeUnknownObjectType ErrorCode = "UNKNOWN_OBJECT_TYPE"

	// CodeDiff indicates a diff could not be computed.
	CodeDiff ErrorCode = "DIFF_FAILED"

	// Flow control.

	// CodeUser indicates the operation was cancelled by the caller.
	CodeUser ErrorCode = "USER_CANCELLED"

	// CodeIterOver indicates an iterator has no more entries.
	CodeIterOver ErrorCode = "ITERATION_OVER"

	// CodeApplied indicates a patch or merge is already applied.
	CodeApplied ErrorCode = "ALREADY_APPLIED"

	// CodeGeneric indicates an engine failure that has no dedicated category.
	CodeGeneric ErrorCode = "GENERIC"

	// Binding errors.

	// CodeInvalidInput indicates the caller passed invalid arguments.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates configuration could not be loaded or validated.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeExecutionFailed indicates an external command failed.
	CodeExecutionFailed ErrorCode = "EXECUTION_FAILED"

	// CodeInternal indicates a bug in the binding itself.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeNotImplemented indicates the requested functionality is not available.
	CodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// CodeUnknown indicates an error that carries no code at all.
	CodeUnknown ErrorCode = "UNKNOWN"
)
