package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode returns the code of the outermost PlatformError in err's chain,
// or CodeUnknown if err is nil or carries none.
//
//	if errors.GetCode(err) == errors.CodeNotFound {
//	    return nil, false
//	}
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}
	var pe PlatformError
	if stderrors.As(err, &pe) {
		return pe.Code()
	}
	return CodeUnknown
}

// GetClassification returns the classification of the outermost PlatformError
// in err's chain. Errors without one are permanent so they never loop a retry.
func GetClassification(err error) ErrorClassification {
	if err == nil {
		return ClassificationPermanent
	}
	var pe PlatformError
	if stderrors.As(err, &pe) {
		return pe.Classification()
	}
	return ClassificationPermanent
}

// IsRetryable reports whether err is classified as retryable.
//
//	err := retry.Do(push, retry.RetryIf(errors.IsRetryable))
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}
