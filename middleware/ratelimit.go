package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/morsechimwai/blog-api/kv"
	"github.com/morsechimwai/blog-api/response"
)

// RateLimit caps each client IP to limit requests per window, counted in the
// shared kv store. When the store is unreachable the request passes: the API
// stays available and the miss is logged.
func RateLimit(store kv.Store, limit int, window time.Duration, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()

		count, err := store.Incr(key, window)
		if err != nil {
			log.Warn("rate limiter unavailable, letting request through", "error", err)
			c.Next()
			return
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Body{
				Success: false,
				Code:    response.CodeTooManyRequests,
				Message: "You have sent too many requests in a given amount of time! Please try again later.",
			})
			return
		}

		c.Next()
	}
}
