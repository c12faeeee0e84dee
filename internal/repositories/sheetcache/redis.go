package sheetcache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/herosheet/sheet-api/internal/entities/pf"
	"github.com/herosheet/sheet-api/internal/errors"
	redisclient "github.com/herosheet/sheet-api/internal/redis"
)

const (
	sheetKeyPrefix = "sheet:"

	// defaultTTL bounds staleness even if invalidation is missed
	defaultTTL = 24 * time.Hour

	errCharacterIDEmpty = "character ID cannot be empty"
	errSheetNil         = "sheet cannot be nil"
)

// cacheEntry is the stored envelope: the sheet plus the source record's
// update timestamp
type cacheEntry struct {
	Sheet           *pf.CharacterSheet `json:"sheet"`
	RecordUpdatedAt int64              `json:"record_updated_at"`
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// RedisConfig contains configuration for the Redis sheet cache.
type RedisConfig struct {
	Client redisclient.Client

	// TTL overrides the default cache entry lifetime when positive
	TTL time.Duration
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed sheet cache
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
	}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	key := sheetKeyPrefix + input.CharacterID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no cached sheet for character %s", input.CharacterID)
		}
		return nil, errors.Wrapf(err, "failed to get cached sheet")
	}

	var entry cacheEntry
	if err := json.Unmarshal([]byte(result), &entry); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal cached sheet")
	}

	return &GetOutput{
		Sheet:           entry.Sheet,
		RecordUpdatedAt: entry.RecordUpdatedAt,
	}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.Sheet == nil {
		return nil, errors.InvalidArgument(errSheetNil)
	}
	if input.Sheet.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	data, err := json.Marshal(cacheEntry{
		Sheet:           input.Sheet,
		RecordUpdatedAt: input.RecordUpdatedAt,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal sheet")
	}

	key := sheetKeyPrefix + input.Sheet.CharacterID
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store cached sheet")
	}

	return &PutOutput{}, nil
}

func (r *redisRepository) Invalidate(ctx context.Context, input InvalidateInput) (*InvalidateOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	key := sheetKeyPrefix + input.CharacterID
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to invalidate cached sheet")
	}

	return &InvalidateOutput{}, nil
}
