package registry

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndGet(t *testing.T) {
	r := New[string]()
	require.NoError(t, r.Register("user", "User"))

	v, ok := r.Get("user")
	assert.True(t, ok)
	assert.Equal(t, "User", v)
	assert.True(t, r.Has("user"))

	_, ok = r.Get("missing")
	assert.False(t, ok)
	assert.False(t, r.Has("missing"))
}

func TestRegister_DuplicateKey(t *testing.T) {
	r := New[string]()
	require.NoError(t, r.Register("user", "first"))

	err := r.Register("user", "second")
	require.Error(t, err)

	var dup *DuplicateKeyError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "user", dup.Key)
	assert.Contains(t, err.Error(), `"user"`)

	v, _ := r.Get("user")
	assert.Equal(t, "first", v)
	assert.Equal(t, 1, r.Len())
}

func TestValues_InsertionOrder(t *testing.T) {
	r := New[int]()
	for i, k := range []string{"c", "a", "b"} {
		require.NoError(t, r.Register(k, i))
	}
	assert.Equal(t, []int{0, 1, 2}, slices.Collect(r.Values()))
}

func TestValues_EarlyStop(t *testing.T) {
	r := New[int]()
	require.NoError(t, r.Register("a", 1))
	require.NoError(t, r.Register("b", 2))

	var seen []int
	for v := range r.Values() {
		seen = append(seen, v)
		break
	}
	assert.Equal(t, []int{1}, seen)
}
