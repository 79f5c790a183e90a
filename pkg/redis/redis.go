// Package redis connects herald to the redis deployment holding the
// de-duplication keys and publication problems.
package redis

import (
	"context"
	"crypto/tls"
	"runtime"
	"strings"
	"time"

	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/constants"
	"github.com/LambdaTest/herald/pkg/core"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/go-redis/redis/v8"
)

const minClusterNodes = 2

type redisDB struct {
	client redis.UniversalClient
}

// New initializes a pool redis client connections.
func New(ctx context.Context, cfg *config.Config, logger lumber.Logger) (core.RedisDB, error) {
	client := redis.NewUniversalClient(options(cfg, logger))

	// ping the redis to check the connection.
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, err
	}
	logger.Infof("Redis connection created successfully.")

	return Wrap(client), nil
}

// Wrap returns a core.RedisDB around an existing client.
func Wrap(client redis.UniversalClient) core.RedisDB {
	return &redisDB{client: client}
}

func options(cfg *config.Config, logger lumber.Logger) *redis.UniversalOptions {
	addrs := strings.Split(cfg.Redis.Addr, ",")
	if len(addrs) >= minClusterNodes {
		logger.Debugf("Creating Redis Cluster Client")
	} else {
		logger.Debugf("Creating Redis Client")
	}

	opts := &redis.UniversalOptions{
		Addrs:              addrs,
		IdleTimeout:        5 * time.Minute,
		IdleCheckFrequency: 1 * time.Minute,
		// 4 connections per CPU, herald only issues a few commands per status update
		PoolSize:   4 * runtime.GOMAXPROCS(0),
		MaxRetries: 3,
	}
	if cfg.Env != constants.Dev {
		opts.Username = cfg.Redis.Username
		opts.Password = cfg.Redis.Password
		if cfg.Redis.TLS {
			opts.TLSConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}
	}
	return opts
}

// Client exposes redis client interface
func (r *redisDB) Client() redis.UniversalClient {
	return r.client
}
