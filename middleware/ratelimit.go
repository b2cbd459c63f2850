package middleware

import (
	"context"
	"fmt"
	"hackmate-backend/database"
	"hackmate-backend/utils"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RateLimit is a fixed-window limiter on redis: INCR a per-caller key, set
// the window expiry on first hit, reject once the count passes the limit.
// Authenticated callers are keyed by user ID, anonymous ones by client IP.
// When redis is down the limiter lets everything through.
func RateLimit(name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.Redis == nil {
			c.Next()
			return
		}

		identifier := c.ClientIP()
		if userID := utils.GetCurrentUserID(c); userID != uuid.Nil {
			identifier = userID.String()
		}
		key := fmt.Sprintf("ratelimit:%s:%s", name, identifier)

		ctx := context.Background()
		count, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("⚠️  Rate limit check failed, allowing request: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			database.Redis.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			utils.TooManyRequests(c, "Too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AuthRateLimit guards credential endpoints: 5 attempts per 15 minutes.
func AuthRateLimit() gin.HandlerFunc {
	return RateLimit("auth", 5, 15*time.Minute)
}

// WriteRateLimit guards creation endpoints: 100 writes per hour.
func WriteRateLimit() gin.HandlerFunc {
	return RateLimit("write", 100, time.Hour)
}
