package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss signals the key is cold; callers fall through to the database.
var ErrCacheMiss = errors.New("cache miss")

// TTL constants
const (
	TTLTip      = 1 * time.Minute  // current-tip rows, invalidated on save anyway
	TTLDocument = 5 * time.Minute  // identity rows
	TTLDefault  = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixTip      = "tip:"
	PrefixDocument = "document:"
)

// DocumentCache caches current-tip content rows keyed by kind and document id.
type DocumentCache interface {
	GetTip(ctx context.Context, kind string, documentID uint64, dest interface{}) error
	SetTip(ctx context.Context, kind string, documentID uint64, value interface{}) error
	InvalidateTip(ctx context.Context, kind string, documentID uint64) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache is the redis-backed implementation.
type redisCache struct {
	client *redis.Client
}

// NewDocumentCache creates a document cache over an established redis client.
func NewDocumentCache(client *redis.Client) DocumentCache {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func tipKey(kind string, documentID uint64) string {
	return fmt.Sprintf("%s%s:%d", PrefixTip, kind, documentID)
}

func (c *redisCache) GetTip(ctx context.Context, kind string, documentID uint64, dest interface{}) error {
	data, err := c.client.Get(ctx, tipKey(kind, documentID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *redisCache) SetTip(ctx context.Context, kind string, documentID uint64, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tipKey(kind, documentID), data, TTLTip).Err()
}

func (c *redisCache) InvalidateTip(ctx context.Context, kind string, documentID uint64) error {
	return c.client.Del(ctx, tipKey(kind, documentID)).Err()
}
