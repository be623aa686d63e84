package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtomicBoolean(t *testing.T) {
	var b AtomicBoolean
	assert.False(t, b.Get())

	b.Set(true)
	assert.True(t, b.Get())

	assert.True(t, b.GetAndSet(false))
	assert.False(t, b.Get())
	assert.False(t, b.GetAndSet(true))
	assert.True(t, b.Get())
}
