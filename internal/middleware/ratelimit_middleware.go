package middleware

import (
	"context"
	"net/http"
	"strconv"

	"chat-history/internal/redis"
	"chat-history/internal/services"
	"chat-history/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// LimitFunc checks and consumes one unit of a per-user quota.
type LimitFunc func(ctx context.Context, userID string) (*redis.RateLimitResult, error)

// ChatRateLimitMiddleware limits chat writes per user.
// Should be applied after auth middleware
func ChatRateLimitMiddleware(limiter *redis.RateLimiter) gin.HandlerFunc {
	return UserRateLimitMiddleware(limiter.AllowChatWrite, "chat rate limit exceeded")
}

// UploadRateLimitMiddleware limits upload credential requests per user.
func UploadRateLimitMiddleware(limiter *redis.RateLimiter) gin.HandlerFunc {
	return UserRateLimitMiddleware(limiter.AllowUpload, "upload rate limit exceeded")
}

func UserRateLimitMiddleware(allow LimitFunc, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := services.UserIDFromContext(c.Request.Context())
		if !ok {
			// No user context, skip rate limiting (auth middleware will handle)
			c.Next()
			return
		}

		result, err := allow(c.Request.Context(), userID)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, httpdto.NewErrorResponse("rate limit error", "INTERNAL_ERROR"))
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httpdto.NewErrorResponse(message, "RATE_LIMITED"))
			return
		}

		c.Next()
	}
}

// setRateLimitHeaders sets standard rate limit response headers
func setRateLimitHeaders(c *gin.Context, result *redis.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}
