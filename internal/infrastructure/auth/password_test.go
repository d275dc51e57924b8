package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	service := NewPasswordService()

	hash, err := service.Hash("secret123")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, service.Verify(hash, "secret123"))
	assert.False(t, service.Verify(hash, "secret124"))
	assert.False(t, service.Verify("not-a-hash", "secret123"))
}
