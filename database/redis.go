package database

import (
	"context"
	"hackmate-backend/config"
	"log"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

func ConnectRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr: config.AppConfig.RedisURL,
	})

	_, err := Redis.Ping(context.Background()).Result()
	if err != nil {
		log.Println("⚠️  Redis not available, running without rate limiting:", err)
		Redis = nil
		return
	}

	log.Println("✅ Redis connected successfully")
}
