package cache

import (
	"context"
	"testing"

	"musicalchairs/repository"

	"github.com/stretchr/testify/assert"
)

func TestListKey(t *testing.T) {
	key := listKey(repository.ListOptions{Page: 2, Limit: 10, SortBy: "created_at", Order: "desc"})
	assert.Equal(t, "audio:list:p2:l10:created_at:desc", key)

	// Distinct page variants must never share a key.
	other := listKey(repository.ListOptions{Page: 3, Limit: 10, SortBy: "created_at", Order: "desc"})
	assert.NotEqual(t, key, other)
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *ListCache
	ctx := context.Background()
	opts := repository.ListOptions{Page: 1, Limit: 10}

	records, ok := c.Get(ctx, opts)
	assert.False(t, ok)
	assert.Nil(t, records)

	// Set and Invalidate are no-ops rather than panics when caching is
	// disabled.
	c.Set(ctx, opts, nil)
	c.Invalidate(ctx)

	assert.Nil(t, NewListCache(nil, 0))
}
