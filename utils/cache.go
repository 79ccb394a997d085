// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"dairyfront/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionClient is the dedicated client for storefront session state.
	SessionClient *redis.Client
)

// InitSessionCache initializes the Redis client for session storage (using
// the DB number from AppConfig).
func InitSessionCache() {
	SessionClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SessionClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionClient returns the Redis client for session storage.
func GetSessionClient() *redis.Client {
	if SessionClient == nil {
		InitSessionCache()
	}
	return SessionClient
}
