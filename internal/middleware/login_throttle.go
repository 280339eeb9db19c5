package middleware

import (
	"strconv"

	"github.com/SukhanRumanov/prac3/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"
)

// NewLoginLimiter builds the per-IP login limiter. With a redis client the
// counters are shared by every process; without one they live in memory.
func NewLoginLimiter(formatted string, rdb *redis.Client) (*limiter.Limiter, error) {
	r, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}

	var store limiter.Store
	if rdb != nil {
		store, err = sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{
			Prefix: "login_throttle",
		})
		if err != nil {
			return nil, err
		}
	} else {
		store = memory.NewStore()
	}

	return limiter.New(store, r), nil
}

// LoginThrottle counts attempts per client IP. A failing store lets the
// request through so a redis outage does not lock everybody out.
func LoginThrottle(l *limiter.Limiter, deny DenyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		lctx, err := l.Get(c.Request.Context(), c.ClientIP())
		if err != nil {
			zap.L().Named("middleware.login_throttle").Warn("login throttle store failed", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			deny(c, apperror.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
