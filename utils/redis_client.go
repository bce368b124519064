package utils

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dchirkov/eventum/config"
)

// Redis backs the public response cache. The client connects lazily on first
// use; an unreachable server only disables caching, every read falls through
// to the database.

var (
	rdb     *redis.Client
	rdbOnce sync.Once
)

// GetRedis returns the shared Redis client, connecting on first call.
func GetRedis() *redis.Client {
	rdbOnce.Do(connectRedis)
	return rdb
}

func connectRedis() {
	cfg := config.Get()

	rdb = redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil && Sugar != nil {
		Sugar.Warnf("redis unreachable, serving without cache: %v", err)
	}
}
