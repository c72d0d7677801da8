package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipfetch/clipfetch/internal/extractor"
)

func TestMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	meta := extractor.Metadata{ID: "dQw4w9WgXcQ", Title: "Never Gonna Give You Up"}
	require.NoError(t, store.Put(ctx, 42, "https://youtu.be/dQw4w9WgXcQ", meta))

	s, ok, err := store.Get(ctx, 42)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", s.ActiveURL)
	assert.Equal(t, meta, s.Meta)
	assert.False(t, s.CreatedAt.IsZero())
	assert.False(t, s.LastTouchedAt.IsZero())
}

func TestMemoryStoreAbsent(t *testing.T) {
	_, ok, err := NewMemoryStore().Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, 7, "https://youtu.be/first000001", extractor.Metadata{Title: "first"}))
	require.NoError(t, store.Put(ctx, 7, "https://youtu.be/second00001", extractor.Metadata{Title: "second"}))

	s, ok, err := store.Get(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "https://youtu.be/second00001", s.ActiveURL)
	assert.Equal(t, "second", s.Meta.Title)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, 9, "https://youtu.be/dQw4w9WgXcQ", extractor.Metadata{}))
	require.NoError(t, store.Delete(ctx, 9))

	_, ok, err := store.Get(ctx, 9)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreCount(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, store.Put(ctx, 1, "u1", extractor.Metadata{}))
	require.NoError(t, store.Put(ctx, 2, "u2", extractor.Metadata{}))
	require.NoError(t, store.Put(ctx, 1, "u3", extractor.Metadata{}))

	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
