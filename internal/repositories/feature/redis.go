package feature

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/herosheet/sheet-api/internal/entities/pf"
	"github.com/herosheet/sheet-api/internal/errors"
	redisclient "github.com/herosheet/sheet-api/internal/redis"
)

const featureKeyPrefix = "feature:"

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis feature repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed feature repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument("feature name is required")
	}

	key := featureKeyPrefix + pf.FeatureKey(input.Category, input.Name)

	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, errors.NotFoundf("feature %s not found", pf.FeatureKey(input.Category, input.Name)).
			WithMeta("feature_key", pf.FeatureKey(input.Category, input.Name))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get feature")
	}

	var f pf.Feature
	if err := json.Unmarshal([]byte(data), &f); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal feature")
	}

	return &GetOutput{Feature: &f}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.Feature == nil {
		return nil, errors.InvalidArgument("feature is required")
	}
	if input.Feature.Name == "" {
		return nil, errors.InvalidArgument("feature name is required")
	}

	data, err := json.Marshal(input.Feature)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal feature")
	}

	key := featureKeyPrefix + input.Feature.Key()
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store feature")
	}

	return &PutOutput{Feature: input.Feature}, nil
}

func (r *redisRepository) PutBatch(ctx context.Context, input PutBatchInput) (*PutBatchOutput, error) {
	for _, f := range input.Features {
		if f == nil || f.Name == "" {
			return nil, errors.InvalidArgument("every feature needs a name")
		}
	}

	pipe := r.client.TxPipeline()
	for _, f := range input.Features {
		data, err := json.Marshal(f)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal feature %s", f.Key())
		}
		pipe.Set(ctx, featureKeyPrefix+f.Key(), data, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store features")
	}

	return &PutBatchOutput{Count: len(input.Features)}, nil
}
