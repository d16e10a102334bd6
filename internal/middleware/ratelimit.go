package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"imagegram/api/internal/config"
	"imagegram/api/internal/httpx"
)

// RateLimit is a coarse fixed-window admission cap shared by all
// callers: one counter per window, no per-identity fairness. The limiter
// fails open when redis is unreachable.
func RateLimit(cfg config.RateLimitConfig, client *redis.Client, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := windowKey(time.Now(), cfg.Window)

		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(c.Request.Context(), key, cfg.Window)
		}

		if count > int64(cfg.Requests) {
			httpx.Abort(c, http.StatusTooManyRequests, "too many requests, please try again later", "rate_limited")
			return
		}

		c.Next()
	}
}

func windowKey(now time.Time, window time.Duration) string {
	return fmt.Sprintf("ratelimit:%d", now.Unix()/int64(window.Seconds()))
}
