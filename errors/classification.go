package errors

// ErrorClassification tells the caller whether repeating the operation can succeed.
type ErrorClassification string

const (
	// ClassificationRetryable marks transient failures: a held lock, a lost
	// compare-and-swap race, a connection that dropped mid-stream.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent marks failures that will repeat until the
	// repository state or the request changes.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// retryableCodes lists the codes that default to ClassificationRetryable.
// Every other code is permanent.
var retryableCodes = map[ErrorCode]struct{}{
	CodeLocked:   {},
	CodeModified: {},
	CodeEOF:      {},
}

// DefaultClassification returns the classification a code gets when none is
// set explicitly. Unknown codes are permanent so they never trigger retries.
func DefaultClassification(code ErrorCode) ErrorClassification {
	if _, ok := retryableCodes[code]; ok {
		return ClassificationRetryable
	}
	return ClassificationPermanent
}
