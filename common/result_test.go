package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOKIsOK(t *testing.T) {
	assert.True(t, OK.IsOK())
	assert.False(t, OK.IsError())
}

func TestErrorIsError(t *testing.T) {
	r := Error("boom: %d", 42)
	assert.True(t, r.IsError())
	assert.Equal(t, CodeGenericError, r.Code)
	assert.Equal(t, "boom: 42", r.Message)
}

func TestErrorWithCode(t *testing.T) {
	r := ErrorWithCode(CodeInvalidNonce, "nonce too high: %d", 7)
	assert.Equal(t, CodeInvalidNonce, r.Code)
	assert.True(t, r.IsError())
}

func TestWithErrorCode(t *testing.T) {
	r := OK.WithErrorCode(CodeDuplicateTx)
	assert.Equal(t, CodeDuplicateTx, r.Code)
	assert.True(t, r.IsError())
	assert.True(t, OK.IsOK(), "WithErrorCode must not mutate the shared OK value")
}
