package errors

import "errors"

// asPlatform returns the outermost PlatformError in err's chain. Plain errors
// are adopted as CodeUnknown with their text as the message.
func asPlatform(err error) PlatformError {
	var pe PlatformError
	if errors.As(err, &pe) {
		return pe
	}
	return &platformError{
		code:           CodeUnknown,
		classification: ClassificationPermanent,
		message:        err.Error(),
		cause:          err,
	}
}

// derive copies pe, replacing its context and classification.
func derive(pe PlatformError, ctx map[string]interface{}, classification ErrorClassification) PlatformError {
	return &platformError{
		code:           pe.Code(),
		classification: classification,
		message:        pe.Message(),
		context:        ctx,
		cause:          pe.Unwrap(),
	}
}

// WithContext returns a copy of err with one more context field.
// Plain errors are converted to a PlatformError with CodeUnknown first.
// Returns nil if err is nil.
//
//	err = errors.WithContext(err, "operation", "reference_lookup")
func WithContext(err error, key string, value interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return WithContextMap(err, map[string]interface{}{key: value})
}

// WithContextMap returns a copy of err with the fields of ctx merged in.
// Fields in ctx override existing fields with the same key.
// Returns nil if err is nil.
//
//	err = errors.WithContextMap(err, map[string]interface{}{
//	    "operation":   "remote_push",
//	    "native_code": -11,
//	})
func WithContextMap(err error, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	pe := asPlatform(err)
	merged := copyContext(pe.Context())
	if merged == nil {
		merged = make(map[string]interface{}, len(ctx))
	}
	for k, v := range ctx {
		merged[k] = v
	}

	return derive(pe, merged, pe.Classification())
}

// WithClassification returns a copy of err with its classification replaced.
// A checkout conflict is permanent by default, but a caller that just stashed
// the blocking changes may want to mark it retryable.
// Returns nil if err is nil.
func WithClassification(err error, classification ErrorClassification) PlatformError {
	if err == nil {
		return nil
	}
	pe := asPlatform(err)
	return derive(pe, pe.Context(), classification)
}
