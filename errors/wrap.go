package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps err with a code and message. The cause stays reachable through
// Unwrap, errors.Is and errors.As.
//
// If err already contains a PlatformError its classification is kept, so a
// retryable engine failure stays retryable however many layers wrap it.
// Returns nil if err is nil.
//
//	if err := repo.Fetch(ctx, opts); err != nil {
//	    return errors.Wrap(err, errors.CodeExecutionFailed, "sync failed")
//	}
func Wrap(err error, code ErrorCode, message string) PlatformError {
	return WrapWithContext(err, code, message, nil)
}

// Wrapf is Wrap with a formatted message. Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps err and attaches a copy of ctx in one step.
// Returns nil if err is nil.
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	classification := DefaultClassification(code)
	var inner PlatformError
	if errors.As(err, &inner) {
		classification = inner.Classification()
	}

	return &platformError{
		code:           code,
		classification: classification,
		message:        message,
		context:        copyContext(ctx),
		cause:          err,
	}
}
