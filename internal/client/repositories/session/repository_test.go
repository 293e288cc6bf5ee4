package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/psychicstar/internal/client/repositories/metadata"
)

func TestBeginCurrentEnd(t *testing.T) {
	store := metadata.NewMemoryRepository()
	r := NewMetadataRepository(store)
	ctx := context.Background()

	_, ok, err := r.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Begin(ctx, "a@x.io"))
	require.NoError(t, r.Begin(ctx, "b@x.io"))

	email, ok, err := r.Current(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b@x.io", email)

	raw, err := store.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "b@x.io", string(raw))

	require.NoError(t, r.End(ctx))
	require.NoError(t, r.End(ctx))

	_, ok, err = r.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
