package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	_, ok := m.Get(ctx, "/api/skills")
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "/api/skills", []byte("[]"), time.Minute))
	b, ok := m.Get(ctx, "/api/skills")
	require.True(t, ok)
	assert.Equal(t, "[]", string(b))

	require.NoError(t, m.Purge(ctx))
	_, ok = m.Get(ctx, "/api/skills")
	assert.False(t, ok)
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)
	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	_, ok := m.Get(ctx, "k")
	assert.False(t, ok)
}
