package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchKey_DeterministicAndSensitiveToInputs(t *testing.T) {
	k1 := BatchKey("fingerprint-a", []int{1, 5, 20}, 42)
	k2 := BatchKey("fingerprint-a", []int{1, 5, 20}, 42)
	assert.Equal(t, k1, k2)

	k3 := BatchKey("fingerprint-b", []int{1, 5, 20}, 42)
	assert.NotEqual(t, k1, k3)

	k4 := BatchKey("fingerprint-a", []int{1, 5, 21}, 42)
	assert.NotEqual(t, k1, k4)

	k5 := BatchKey("fingerprint-a", []int{1, 5, 20}, 43)
	assert.NotEqual(t, k1, k5)
}

func TestBatchKey_HasSolvePrefix(t *testing.T) {
	k := BatchKey("x", []int{1}, 0)
	assert.Contains(t, k, "solve:")
}

func TestLockKey_DerivedFromBatchKey(t *testing.T) {
	batchKey := BatchKey("x", []int{1}, 0)
	assert.Equal(t, "lock:"+batchKey, LockKey(batchKey))
}
