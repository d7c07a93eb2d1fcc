// Package cache keeps recently served listing pages in Redis so the
// browse tab does not hit MongoDB on every reload. The cache is strictly
// an accelerator: every miss or Redis failure falls through to the store.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"musicalchairs/logger"
	"musicalchairs/model"
	"musicalchairs/repository"

	"github.com/redis/go-redis/v9"
)

const listKeyPrefix = "audio:list:"

// ListCache caches pages of /api/audio/list responses. A nil *ListCache
// is valid and disables caching.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache creates a list cache with the given TTL.
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	if client == nil {
		return nil
	}
	return &ListCache{client: client, ttl: ttl}
}

// listKey builds the cache key for one page variant.
func listKey(opts repository.ListOptions) string {
	return fmt.Sprintf("%sp%d:l%d:%s:%s", listKeyPrefix, opts.Page, opts.Limit, opts.SortBy, opts.Order)
}

// Get returns the cached page for the options, or ok=false on a miss.
func (c *ListCache) Get(ctx context.Context, opts repository.ListOptions) ([]*model.AudioRecord, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, listKey(opts)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warn("list cache read failed", logger.ErrorField(err))
		return nil, false
	}

	var records []*model.AudioRecord
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Warn("list cache entry corrupt, dropping", logger.ErrorField(err))
		c.client.Del(ctx, listKey(opts))
		return nil, false
	}
	return records, true
}

// Set stores a page. Failures are logged and swallowed.
func (c *ListCache) Set(ctx context.Context, opts repository.ListOptions, records []*model.AudioRecord) {
	if c == nil {
		return
	}

	data, err := json.Marshal(records)
	if err != nil {
		logger.Warn("failed to marshal list cache entry", logger.ErrorField(err))
		return
	}
	if err := c.client.Set(ctx, listKey(opts), data, c.ttl).Err(); err != nil {
		logger.Warn("list cache write failed", logger.ErrorField(err))
	}
}

// Invalidate drops every cached listing page. Called after any write to
// the metadata collection.
func (c *ListCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, listKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Warn("list cache scan failed", logger.ErrorField(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("list cache invalidation failed", logger.ErrorField(err))
	}
}
