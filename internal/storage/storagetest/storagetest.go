// Package storagetest holds the behaviour every storage.Store backend must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/verbum-dei-api/internal/storage"
)

// Run exercises a fresh store returned by newStore.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Run("missing key", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), "verbumDeiHistory")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("put get overwrite", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, "verbumDeiNotes", []byte(`{"João-3-16":"a"}`)))
		got, err := s.Get(ctx, "verbumDeiNotes")
		require.NoError(t, err)
		assert.JSONEq(t, `{"João-3-16":"a"}`, string(got))

		require.NoError(t, s.Put(ctx, "verbumDeiNotes", []byte(`{}`)))
		got, err = s.Get(ctx, "verbumDeiNotes")
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(got))
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, "verbumDeiSaved", []byte(`[]`)))
		require.NoError(t, s.Delete(ctx, "verbumDeiSaved"))
		_, err := s.Get(ctx, "verbumDeiSaved")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		require.NoError(t, s.Delete(ctx, "never-written"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, "a/verbumDeiHistory", []byte(`["fé"]`)))
		require.NoError(t, s.Put(ctx, "b/verbumDeiHistory", []byte(`["esperança"]`)))
		require.NoError(t, s.Delete(ctx, "a/verbumDeiHistory"))

		got, err := s.Get(ctx, "b/verbumDeiHistory")
		require.NoError(t, err)
		assert.Equal(t, `["esperança"]`, string(got))
	})

	t.Run("malformed values round-trip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, "verbumDeiHighlights", []byte(`{not json`)))
		got, err := s.Get(ctx, "verbumDeiHighlights")
		require.NoError(t, err)
		assert.Equal(t, `{not json`, string(got))
	})
}
