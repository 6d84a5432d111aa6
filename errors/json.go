package errors

import (
	"encoding/json"
)

// ErrorResponse is the flat JSON form of an error.
// The cause chain is not included; it may hold file paths and remote URLs.
type ErrorResponse struct {
	// Code is the failure category.
	Code string `json:"code"`

	// Message is the human-readable message.
	Message string `json:"message"`

	// Classification is RETRYABLE or PERMANENT.
	Classification string `json:"classification"`

	// Context holds attached metadata. Omitted when empty.
	Context map[string]interface{} `json:"context,omitempty"`
}

// ToJSON converts any error to an ErrorResponse. Returns nil if err is nil.
//
// PlatformErrors contribute their code, message, classification and context.
// Plain errors become CodeUnknown / PERMANENT with err.Error() as the message.
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	resp := &ErrorResponse{
		Code:           string(GetCode(err)),
		Message:        err.Error(),
		Classification: string(GetClassification(err)),
	}

	var pe PlatformError
	if As(err, &pe) {
		resp.Message = pe.Message()
		resp.Context = pe.Context()
	}
	return resp
}

// MarshalJSON encodes the error as an ErrorResponse.
func (e *platformError) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(&ErrorResponse{
		Code:           string(e.code),
		Message:        e.message,
		Classification: string(e.classification),
		Context:        e.context,
	})
	if err != nil {
		return nil, Wrap(err, CodeInternal, "failed to marshal error response")
	}
	return data, nil
}
