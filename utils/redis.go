package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

var redisClient *redis.Client

func SetRedis(client *redis.Client) {
	redisClient = client
}

func GetRedis() *redis.Client {
	return redisClient
}

func blacklistKey(token string) string {
	return "blacklist:" + token
}

// BlacklistToken кладет токен в черный список до конца его жизни
func BlacklistToken(ctx context.Context, rdb *redis.Client, token string, ttl time.Duration) error {
	if rdb == nil || ttl <= 0 {
		return nil
	}
	return rdb.Set(ctx, blacklistKey(token), "1", ttl).Err()
}

func IsTokenBlacklisted(ctx context.Context, rdb *redis.Client, token string) bool {
	if rdb == nil {
		return false
	}
	_, err := rdb.Get(ctx, blacklistKey(token)).Result()
	return err == nil
}
