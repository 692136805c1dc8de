package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/catalog-api/internal/domain/translation"
)

func TestMemoryCache_RoundTripAndExpiry(t *testing.T) {
	c, err := NewMemoryCache(16, time.Minute)
	require.NoError(t, err)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	fill(t, c, "k", translation.CacheEntry{Text: "Bras", Found: true})
	entry, hit := c.Get(ctx, "k")
	require.True(t, hit)
	assert.Equal(t, "Bras", entry.Text)

	now = now.Add(2 * time.Minute)
	_, hit = c.Get(ctx, "k")
	assert.False(t, hit)
}

func TestMemoryCache_DeleteAndEviction(t *testing.T) {
	c, err := NewMemoryCache(2, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	for i := range 3 {
		fill(t, c, fmt.Sprintf("k%d", i), translation.CacheEntry{})
	}
	_, hit := c.Get(ctx, "k0")
	assert.False(t, hit, "oldest entry is evicted")

	c.Invalidate(ctx, "k1", "k2")
	_, hit = c.Get(ctx, "k2")
	assert.False(t, hit)
}

func TestMemoryCache_FillRacingInvalidateIsDropped(t *testing.T) {
	c, err := NewMemoryCache(16, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	epoch, ok := c.Epoch(ctx, "k")
	require.True(t, ok)
	c.Invalidate(ctx, "other")
	c.Fill(ctx, "k", epoch, translation.CacheEntry{})
	_, hit := c.Get(ctx, "k")
	assert.False(t, hit)

	fill(t, c, "k", translation.CacheEntry{Text: "Jambes", Found: true})
	entry, hit := c.Get(ctx, "k")
	require.True(t, hit)
	assert.Equal(t, "Jambes", entry.Text)
}

func TestNewMemoryCache_RejectsNonPositiveSize(t *testing.T) {
	_, err := NewMemoryCache(0, time.Minute)
	assert.Error(t, err)
}
