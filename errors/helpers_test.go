package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIs(t *testing.T) {
	sentinel := New(CodeNotFound, "not found")
	wrapped := Wrap(sentinel, CodeInternal, "lookup failed")

	require.True(t, Is(wrapped, sentinel))
	require.False(t, Is(wrapped, New(CodeNotFound, "not found")))
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("open repository: %w", New(CodeNotFound, "not found"))

	var pe PlatformError
	require.True(t, As(err, &pe))
	require.Equal(t, CodeNotFound, pe.Code())
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "nil", err: nil, want: CodeUnknown},
		{name: "standard error", err: stderrors.New("x"), want: CodeUnknown},
		{name: "platform error", err: New(CodeAmbiguous, "x"), want: CodeAmbiguous},
		{name: "fmt wrapped", err: fmt.Errorf("ctx: %w", New(CodePeel, "x")), want: CodePeel},
		{name: "outermost wins", err: Wrap(New(CodeLocked, "x"), CodeGeneric, "y"), want: CodeGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}

func TestGetClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: ClassificationPermanent},
		{name: "standard error", err: stderrors.New("x"), want: ClassificationPermanent},
		{name: "locked", err: New(CodeLocked, "x"), want: ClassificationRetryable},
		{name: "wrapped locked", err: fmt.Errorf("ctx: %w", New(CodeLocked, "x")), want: ClassificationRetryable},
		{name: "not found", err: New(CodeNotFound, "x"), want: ClassificationPermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, GetClassification(tt.err))
			require.Equal(t, tt.want.IsRetryable(), IsRetryable(tt.err))
		})
	}
}
