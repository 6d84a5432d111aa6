package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithContext(t *testing.T) {
	err := New(CodeNotFound, "reference not found")
	err = WithContext(err, "operation", "reference_lookup")
	err = WithContext(err, "native_code", -3)

	ctx := err.Context()
	require.Len(t, ctx, 2)
	require.Equal(t, "reference_lookup", ctx["operation"])
	require.Equal(t, -3, ctx["native_code"])
}

func TestWithContext_StandardError(t *testing.T) {
	stdErr := stderrors.New("plain failure")
	err := WithContext(stdErr, "key", "value")

	require.Equal(t, CodeUnknown, err.Code())
	require.Equal(t, ClassificationPermanent, err.Classification())
	require.Equal(t, "plain failure", err.Message())
	require.Equal(t, stdErr, err.Unwrap())
	require.Equal(t, "value", err.Context()["key"])
}

func TestWithContext_NilError(t *testing.T) {
	require.Nil(t, WithContext(nil, "key", "value"))
	require.Nil(t, WithContextMap(nil, map[string]interface{}{"key": "value"}))
	require.Nil(t, WithClassification(nil, ClassificationRetryable))
}

func TestWithContext_Immutability(t *testing.T) {
	original := New(CodeLocked, "locked")
	modified := WithContext(original, "path", "HEAD.lock")

	require.Nil(t, original.Context())
	require.NotNil(t, modified.Context())
	require.Equal(t, original.Classification(), modified.Classification())
}

func TestWithContextMap_Override(t *testing.T) {
	err := WithContext(New(CodeGeneric, "failed"), "operation", "old")
	err = WithContextMap(err, map[string]interface{}{
		"operation": "new",
		"class":     "reference",
	})

	ctx := err.Context()
	require.Equal(t, "new", ctx["operation"])
	require.Equal(t, "reference", ctx["class"])
}

func TestWithClassification(t *testing.T) {
	err := New(CodeCheckoutConflict, "worktree contains unstaged changes")
	require.False(t, IsRetryable(err))

	err = WithClassification(err, ClassificationRetryable)
	require.True(t, IsRetryable(err))
	require.Equal(t, CodeCheckoutConflict, err.Code())
}

func TestWithClassification_PreservesContext(t *testing.T) {
	err := WithContext(New(CodeLocked, "locked"), "path", "index.lock")
	err = WithClassification(err, ClassificationPermanent)

	require.Equal(t, "index.lock", err.Context()["path"])
	require.False(t, IsRetryable(err))
}
