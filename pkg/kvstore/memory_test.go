package kvstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storekit/pkg/kvstore"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		s := kvstore.NewMemoryStore()
		require.NoError(t, s.Set(ctx, "k", "v"))

		val, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", val)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		s := kvstore.NewMemoryStore()
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		t.Parallel()

		s := kvstore.NewMemoryStore()
		require.NoError(t, s.Set(ctx, "k", "v"))
		require.NoError(t, s.Delete(ctx, "k"))
		require.NoError(t, s.Delete(ctx, "k"))

		_, err := s.Get(ctx, "k")
		assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
	})

	t.Run("clear removes everything", func(t *testing.T) {
		t.Parallel()

		s := kvstore.NewMemoryStore()
		require.NoError(t, s.Set(ctx, "a", "1"))
		require.NoError(t, s.Set(ctx, "b", "2"))
		require.NoError(t, s.Clear(ctx))

		_, err := s.Get(ctx, "a")
		assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
		_, err = s.Get(ctx, "b")
		assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
	})
}
