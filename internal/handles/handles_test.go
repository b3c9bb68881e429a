package handles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_PutGetDelete(t *testing.T) {
	r := NewRegistry[string]()

	a := r.Put("alpha")
	b := r.Put("beta")
	require.NotZero(t, a)
	require.NotEqual(t, a, b)

	v, ok := r.Get(a)
	require.True(t, ok)
	assert.Equal(t, "alpha", v)

	r.Delete(a)
	_, ok = r.Get(a)
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ZeroTokenNeverIssued(t *testing.T) {
	r := NewRegistry[int]()
	_, ok := r.Get(0)
	assert.False(t, ok)

	for i := 0; i < 100; i++ {
		assert.NotZero(t, r.Put(i))
	}
}

func TestRegistry_DeleteUnknownIgnored(t *testing.T) {
	r := NewRegistry[int]()
	r.Delete(42)
	assert.Zero(t, r.Len())
}
