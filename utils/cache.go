package utils

import (
	"context"
	"time"

	"gymdesk/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DirectoryCacheClient backs the shared client-record cache. It stays nil when
// DIRECTORY_REDIS_ENABLED is off.
var DirectoryCacheClient *redis.Client

// InitDirectoryCache connects to Redis for the client-record cache. An
// unreachable Redis is logged and the client left nil, so the directory keeps
// working from memory alone.
func InitDirectoryCache() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDirectoryDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		GetLogger().Warn("Redis (directory cache) unreachable, continuing without it",
			zap.String("addr", config.AppConfig.RedisAddr), zap.Error(err))
		_ = client.Close()
		return
	}
	DirectoryCacheClient = client
}

// GetDirectoryCacheClient returns the directory cache client, connecting on
// first use when it is enabled.
func GetDirectoryCacheClient() *redis.Client {
	if !config.AppConfig.DirectoryRedisEnabled {
		return nil
	}
	if DirectoryCacheClient == nil {
		InitDirectoryCache()
	}
	return DirectoryCacheClient
}
