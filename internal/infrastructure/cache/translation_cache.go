package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/infrastructure/metrics"
)

// TranslationCache stores overlay resolutions in redis. Failures degrade to
// cache misses; the database stays the source of truth. Each key has an epoch
// counter next to it that Invalidate increments and Fill watches.
type TranslationCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	log    zerolog.Logger
}

var _ translation.Cache = (*TranslationCache)(nil)

var errStaleFill = errors.New("translation cache key invalidated during fill")

func epochKey(key string) string {
	return key + ":epoch"
}

// NewTranslationCache wraps an existing client.
func NewTranslationCache(client redis.UniversalClient, ttl time.Duration, log zerolog.Logger) *TranslationCache {
	return &TranslationCache{
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "translation-cache").Logger(),
	}
}

// Connect builds a universal client from a comma separated list of redis URLs and pings it.
func Connect(ctx context.Context, redisURL string) (redis.UniversalClient, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, errors.New("redis URL must be provided")
	}
	opts, err := buildUniversalOptions(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if len(opts.Addrs) > 1 {
		opts.DB = 0
	}

	client := redis.NewUniversalClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func buildUniversalOptions(raw string) (*redis.UniversalOptions, error) {
	opts := &redis.UniversalOptions{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.Contains(part, "://") {
			opts.Addrs = append(opts.Addrs, part)
			continue
		}
		parsed, err := redis.ParseURL(part)
		if err != nil {
			return nil, err
		}
		opts.Addrs = append(opts.Addrs, parsed.Addr)
		if opts.Username == "" {
			opts.Username = parsed.Username
		}
		if opts.Password == "" {
			opts.Password = parsed.Password
		}
		if opts.DB == 0 {
			opts.DB = parsed.DB
		}
		if opts.TLSConfig == nil {
			opts.TLSConfig = parsed.TLSConfig
		}
	}
	if len(opts.Addrs) == 0 {
		return nil, errors.New("no redis address found")
	}
	return opts, nil
}

// Get implements translation.Cache.
func (c *TranslationCache) Get(ctx context.Context, key string) (translation.CacheEntry, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordTranslationCache("miss")
		return translation.CacheEntry{}, false
	}
	if err != nil {
		metrics.RecordTranslationCache("error")
		c.log.Warn().Err(err).Str("key", key).Msg("translation cache read failed")
		return translation.CacheEntry{}, false
	}

	var entry translation.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		metrics.RecordTranslationCache("error")
		return translation.CacheEntry{}, false
	}
	metrics.RecordTranslationCache("hit")
	return entry, true
}

// Epoch implements translation.Cache.
func (c *TranslationCache) Epoch(ctx context.Context, key string) (string, bool) {
	epoch, err := c.client.Get(ctx, epochKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", true
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("translation cache epoch read failed")
		return "", false
	}
	return epoch, true
}

// Fill implements translation.Cache. The write is a MULTI guarded by WATCH on
// the epoch key, so it is dropped when Invalidate ran after epoch was read.
func (c *TranslationCache) Fill(ctx context.Context, key, epoch string, entry translation.CacheEntry) {
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	ek := epochKey(key)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, ek).Result()
		if errors.Is(err, redis.Nil) {
			current, err = "0", nil
		}
		if err != nil {
			return err
		}
		if current != epoch {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, c.ttl)
			return nil
		})
		return err
	}, ek)
	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		c.log.Debug().Str("key", key).Msg("skipped stale translation cache fill")
	default:
		c.log.Warn().Err(err).Str("key", key).Msg("translation cache write failed")
	}
}

// Invalidate implements translation.Cache.
func (c *TranslationCache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		for _, key := range keys {
			pipe.Incr(ctx, epochKey(key))
			if c.ttl > 0 {
				pipe.Expire(ctx, epochKey(key), 2*c.ttl)
			}
		}
		return nil
	})
	if err != nil {
		c.log.Warn().Err(err).Strs("keys", keys).Msg("translation cache invalidation failed")
	}
}
