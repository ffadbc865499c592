package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "profile-api.backend/internal/domain/errors"
	"profile-api.backend/internal/interfaces/http/response"
	"profile-api.backend/pkg/logger"
	"profile-api.backend/pkg/ratelimit"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

// RateLimit counts requests per client address against limiter. A nil
// limiter disables the check. When the counter store fails the request is
// let through.
func RateLimit(limiter *ratelimit.Limiter, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		res, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn(c.Request.Context(), "Rate limiter unavailable, allowing request",
				zap.String("limiter", limiter.Name),
				zap.Error(err),
			)
			c.Next()
			return
		}

		resetSeconds := strconv.Itoa(int(math.Ceil(res.ResetAfter.Seconds())))
		c.Header(HeaderRateLimitLimit, strconv.Itoa(res.Limit))
		c.Header(HeaderRateLimitRemaining, strconv.Itoa(res.Remaining))
		c.Header(HeaderRateLimitReset, resetSeconds)

		if !res.Allowed {
			c.Header("Retry-After", resetSeconds)
			response.Error(c, domainerrors.TooManyRequests(message))
			return
		}

		c.Next()
	}
}
