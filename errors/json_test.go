package errors

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToJSON(t *testing.T) {
	err := WithContext(New(CodeNonFastForward, "cannot push non-fastforwardable reference"), "operation", "remote_push")
	resp := ToJSON(err)

	require.NotNil(t, resp)
	require.Equal(t, "NON_FAST_FORWARD", resp.Code)
	require.Equal(t, "cannot push non-fastforwardable reference", resp.Message)
	require.Equal(t, "PERMANENT", resp.Classification)
	require.Equal(t, "remote_push", resp.Context["operation"])
}

func TestToJSON_StandardError(t *testing.T) {
	resp := ToJSON(stderrors.New("something went wrong"))

	require.Equal(t, "UNKNOWN", resp.Code)
	require.Equal(t, "something went wrong", resp.Message)
	require.Equal(t, "PERMANENT", resp.Classification)
	require.Nil(t, resp.Context)
}

func TestToJSON_NilError(t *testing.T) {
	require.Nil(t, ToJSON(nil))
}

func TestToJSON_OmitsCauseAndEmptyContext(t *testing.T) {
	cause := stderrors.New("/home/user/.ssh/id_rsa: permission denied")
	err := Wrap(cause, CodeAuth, "authentication failed")

	data, mErr := json.Marshal(ToJSON(err))
	require.NoError(t, mErr)
	require.NotContains(t, string(data), "id_rsa")
	require.NotContains(t, string(data), "context")
}

func TestMarshalJSON(t *testing.T) {
	err := New(CodeLocked, "index locked")

	data, mErr := json.Marshal(err)
	require.NoError(t, mErr)
	require.JSONEq(t, `{"code":"LOCKED","message":"index locked","classification":"RETRYABLE"}`, string(data))
}
