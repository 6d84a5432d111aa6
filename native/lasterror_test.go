package native

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastError_SetAndClear(t *testing.T) {
	ClearError()
	_, ok := Last()
	require.False(t, ok)
	assert.Equal(t, ClassNone, LastErrorClass())

	SetErrorf(ClassReference, "reference '%s' not found", "refs/heads/x")
	last, ok := Last()
	require.True(t, ok)
	assert.Equal(t, ClassReference, last.Class)
	assert.Equal(t, "reference 'refs/heads/x' not found", last.Message)

	msg, ok := LastErrorMessage()
	require.True(t, ok)
	assert.Equal(t, "reference 'refs/heads/x' not found", msg)

	ClearError()
	_, ok = LastErrorMessage()
	assert.False(t, ok)
}

func TestLastError_VerbatimMessage(t *testing.T) {
	SetError(ClassOS, "100% broken")
	msg, ok := LastErrorMessage()
	require.True(t, ok)
	assert.Equal(t, "100% broken", msg)

	SetErrorf(ClassOS, "%d%% broken", 50)
	msg, ok = LastErrorMessage()
	require.True(t, ok)
	assert.Equal(t, "50% broken", msg)
}

func TestLastError_EmptyMessage(t *testing.T) {
	SetError(ClassNet, "")
	_, ok := LastErrorMessage()
	assert.False(t, ok)
	assert.Equal(t, ClassNet, LastErrorClass())
}

func TestLastError_EngineCallClearsSlot(t *testing.T) {
	SetError(ClassOS, "stale")
	dst := make([]byte, OidHexSize)
	require.Equal(t, CodeOK, OidFormat(dst, ZeroOid))
	_, ok := Last()
	assert.False(t, ok)
}

func TestLastError_ConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetError(ClassThread, "worker failed")
		}()
		go func() {
			defer wg.Done()
			_, _ = LastErrorMessage()
		}()
	}
	wg.Wait()
	msg, ok := LastErrorMessage()
	require.True(t, ok)
	assert.Equal(t, "worker failed", msg)
}
