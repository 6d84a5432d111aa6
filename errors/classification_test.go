package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorClassification_IsRetryable(t *testing.T) {
	tests := []struct {
		name           string
		classification ErrorClassification
		want           bool
	}{
		{name: "retryable", classification: ClassificationRetryable, want: true},
		{name: "permanent", classification: ClassificationPermanent, want: false},
		{name: "unrecognized", classification: ErrorClassification("SOMETIMES"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.classification.IsRetryable())
		})
	}
}

func TestDefaultClassification(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want ErrorClassification
	}{
		{code: CodeLocked, want: ClassificationRetryable},
		{code: CodeModified, want: ClassificationRetryable},
		{code: CodeEOF, want: ClassificationRetryable},
		{code: CodeNotFound, want: ClassificationPermanent},
		{code: CodeNonFastForward, want: ClassificationPermanent},
		{code: CodeMergeConflict, want: ClassificationPermanent},
		{code: CodeAuth, want: ClassificationPermanent},
		{code: CodeGeneric, want: ClassificationPermanent},
		{code: CodeUnknownObjectType, want: ClassificationPermanent},
		{code: CodeDiff, want: ClassificationPermanent},
		{code: CodeUnknown, want: ClassificationPermanent},
		{code: ErrorCode("NOT_A_CODE"), want: ClassificationPermanent},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			require.Equal(t, tt.want, DefaultClassification(tt.code))
		})
	}
}
