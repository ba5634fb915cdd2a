package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"heron-feed/internal/models"
	"heron-feed/internal/utils"
)

// Redis is the Redis cache backend. Authors are stored as JSON values under
// namespaced keys with a TTL, so the cache stays bounded without explicit
// eviction.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis builds a Redis-backed cache. A zero ttl means entries never
// expire.
func NewRedis(opts *redis.Options, ttl time.Duration) *Redis {
	return &Redis{rdb: redis.NewClient(opts), ttl: ttl}
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

// Ping verifies connectivity. Useful for health checks.
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func authorKey(id string) string {
	return "heron:author:" + id
}

func (r *Redis) Put(ctx context.Context, author *models.Author) error {
	payload, err := json.Marshal(author)
	if err != nil {
		return utils.NewAppError(utils.ErrCache, "failed to serialize author", err)
	}
	if err := r.rdb.Set(ctx, authorKey(author.ID), payload, r.ttl).Err(); err != nil {
		return utils.NewAppError(utils.ErrCache, "failed to write author to Redis", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, id string) (*models.Author, error) {
	payload, err := r.rdb.Get(ctx, authorKey(id)).Bytes()
	if err == redis.Nil {
		return nil, utils.NewAppError(utils.ErrNotFound, "author not cached: "+id, nil)
	}
	if err != nil {
		return nil, utils.NewAppError(utils.ErrCache, "failed to read author from Redis", err)
	}
	var author models.Author
	if err := json.Unmarshal(payload, &author); err != nil {
		return nil, utils.NewAppError(utils.ErrCache, "failed to decode cached author", err)
	}
	return &author, nil
}
