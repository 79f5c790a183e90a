// Package statuscache remembers the commit status updates already delivered
// so replayed lifecycle events do not post the same status twice.
package statuscache

import (
	"context"
	"time"

	"github.com/LambdaTest/herald/pkg/core"
	"github.com/LambdaTest/herald/pkg/lumber"
)

type statusCache struct {
	redisDB core.RedisDB
	logger  lumber.Logger
}

// New returns a redis backed StatusCache.
func New(redisDB core.RedisDB, logger lumber.Logger) core.StatusCache {
	return &statusCache{redisDB: redisDB, logger: logger}
}

func (s *statusCache) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.redisDB.Client().SetNX(ctx, key, time.Now().Unix(), ttl).Result()
	if err != nil {
		s.logger.Errorf("failed to set status key %s in redis, error: %v", key, err)
		return false, err
	}
	return ok, nil
}

func (s *statusCache) Release(ctx context.Context, key string) error {
	if err := s.redisDB.Client().Del(ctx, key).Err(); err != nil {
		s.logger.Errorf("failed to delete status key %s from redis, error: %v", key, err)
		return err
	}
	return nil
}
