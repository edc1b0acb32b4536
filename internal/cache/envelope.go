// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// envelope.go caches successful CMS delivery responses in Valkey, keyed by
// request URL, so repeated page loads within the TTL skip the round trip.
// Values are raw JSON bodies; view models are still rebuilt per request.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// envelopeKeyPrefix is the Valkey key prefix for cached CMS responses.
	envelopeKeyPrefix = "cms:"

	// DefaultEnvelopeTTL is how long a response stays cached.
	DefaultEnvelopeTTL = time.Minute
)

// EnvelopeCache stores raw CMS responses in Valkey. Errors are logged and
// treated as cache misses.
type EnvelopeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEnvelopeCache creates an envelope cache backed by the given Valkey client.
func NewEnvelopeCache(client *redis.Client, ttl time.Duration) *EnvelopeCache {
	if ttl <= 0 {
		ttl = DefaultEnvelopeTTL
	}
	return &EnvelopeCache{client: client, ttl: ttl}
}

// Key returns the Valkey key for a request URL.
func Key(requestURL string) string {
	sum := sha256.Sum256([]byte(requestURL))
	return envelopeKeyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached body for a request URL.
func (c *EnvelopeCache) Get(ctx context.Context, requestURL string) ([]byte, bool) {
	val, err := c.client.Get(ctx, Key(requestURL)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("envelope cache get error", "error", err)
		return nil, false
	}
	slog.Debug("envelope cache hit", "url", requestURL)
	return val, true
}

// Set stores a response body for a request URL with the configured TTL.
func (c *EnvelopeCache) Set(ctx context.Context, requestURL string, body []byte) {
	if err := c.client.Set(ctx, Key(requestURL), body, c.ttl).Err(); err != nil {
		slog.Warn("envelope cache set error", "error", err)
	}
}

// InvalidateAll removes every cached response by scanning for the prefix.
// Used after provisioning, since any response could be stale.
func (c *EnvelopeCache) InvalidateAll(ctx context.Context) (int, error) {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, envelopeKeyPrefix+"*", 100).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return deleted, err
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("envelope cache cleared", "deleted", deleted)
	}
	return deleted, nil
}
