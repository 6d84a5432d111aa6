// Package errors is the structured error base shared by the gitbind packages.
//
// Every failure that leaves the binding is a PlatformError: it carries a
// string ErrorCode naming the failure category, a classification telling the
// caller whether a retry can help, a human-readable message, optional context
// metadata and the wrapped cause. The package stays compatible with the
// standard library (errors.Is, errors.As, errors.Unwrap).
//
// # Error Codes
//
// The codes mirror the categories a version-control engine reports:
//
//   - Lookup: CodeNotFound, CodeAlreadyExists, CodeAmbiguous, CodeInvalidSpec
//   - Repository state: CodeBareRepo, CodeUnbornBranch, CodeUnmerged,
//     CodeUncommitted, CodeCheckoutConflict, CodeMergeConflict, CodeLocked,
//     CodeModified
//   - Transport: CodeAuth, CodeCertificate, CodeNonFastForward, CodeEOF
//   - Objects: CodePeel, CodeMismatch, CodeUnknownObjectType, CodeDiff
//   - Flow control: CodeUser, CodeIterOver, CodeApplied, CodeBufferTooShort
//   - Catch-all: CodeGeneric for engine failures without a category,
//     CodeUnknown for errors that never passed through this package
//
// Binding-level failures that do not come from the engine use CodeInvalidInput,
// CodeInvalidConfig, CodeExecutionFailed, CodeInternal or CodeNotImplemented.
//
// # Classification
//
// Each code has a default classification. Lock contention, a reference that
// moved underneath a compare-and-swap, and a transport that hung up early are
// retryable; everything else is permanent:
//
//	if errors.IsRetryable(err) {
//	    return retry(op)
//	}
//
// The classification survives wrapping and can be overridden with
// WithClassification.
//
// # Context and JSON
//
// WithContext and WithContextMap attach metadata (the failing engine call, the
// raw return code, ...) without touching the message. ToJSON flattens any
// error into an ErrorResponse for CLI and API output; the cause chain is left
// out on purpose.
package errors
