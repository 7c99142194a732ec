package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStore(t *testing.T) {
	t.Run("get after set returns the value", func(t *testing.T) {
		s := NewMemStore()
		require.NoError(t, s.Set("foo", "bar"))

		val, ok := s.Get("foo")
		assert.True(t, ok)
		assert.Equal(t, "bar", val)
	})

	t.Run("missing key is distinct from empty value", func(t *testing.T) {
		s := NewMemStore()
		require.NoError(t, s.Set("empty", ""))

		val, ok := s.Get("empty")
		assert.True(t, ok)
		assert.Equal(t, "", val)

		_, ok = s.Get("missing")
		assert.False(t, ok)
	})

	t.Run("set overwrites and is idempotent", func(t *testing.T) {
		s := NewMemStore()
		require.NoError(t, s.Set("k", "1"))
		require.NoError(t, s.Set("k", "2"))
		require.NoError(t, s.Set("k", "2"))

		val, _ := s.Get("k")
		assert.Equal(t, "2", val)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("delete removes the key", func(t *testing.T) {
		s := NewMemStore()
		require.NoError(t, s.Set("a", "1"))
		require.NoError(t, s.Delete("a"))

		_, ok := s.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("delete of absent key is a no-op", func(t *testing.T) {
		s := NewMemStore()
		require.NoError(t, s.Set("b", "2"))
		require.NoError(t, s.Delete("nope"))

		assert.Equal(t, map[string]string{"b": "2"}, s.Entries())
	})
}

func TestMemStoreEntriesIsACopy(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Set("a", "1"))

	entries := s.Entries()
	entries["a"] = "changed"
	entries["b"] = "2"

	val, _ := s.Get("a")
	assert.Equal(t, "1", val)
	assert.Equal(t, 1, s.Len())
}

func TestNewMemStoreFromCopiesInput(t *testing.T) {
	src := map[string]string{"x": "1", "y": "2"}
	s := NewMemStoreFrom(src)
	src["z"] = "3"

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, map[string]string{"x": "1", "y": "2"}, s.Entries())
}
