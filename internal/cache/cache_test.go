package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	_, ok := c.Get(ctx, "x")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "x", "1"))
	v, ok := c.Get(ctx, "x")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestMemoryCache_Expira(t *testing.T) {
	ctx := context.Background()
	agora := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Minute)
	c.agora = func() time.Time { return agora }

	require.NoError(t, c.Set(ctx, "x", "1"))
	agora = agora.Add(2 * time.Minute)

	_, ok := c.Get(ctx, "x")
	assert.False(t, ok)
}
