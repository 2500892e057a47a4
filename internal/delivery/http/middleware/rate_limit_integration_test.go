//go:build integration

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"staffing-site-backend/pkg/testutil/containers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	newRouter := func(limiter *RateLimiter) *gin.Engine {
		r := gin.New()
		r.POST("/api/contact", limiter.Middleware(ContactRateLimitConfig(2, time.Minute)), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}
	send := func(r *gin.Engine, ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.RemoteAddr = ip + ":40000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("Should count in Redis and expire the window", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		r := newRouter(NewRateLimiter(rc.Client, discardLogger()))

		assert.Equal(t, http.StatusOK, send(r, "10.0.0.9").Code)
		assert.Equal(t, http.StatusOK, send(r, "10.0.0.9").Code)

		blocked := send(r, "10.0.0.9")
		assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
		retryAfter, err := strconv.Atoi(blocked.Header().Get("Retry-After"))
		require.NoError(t, err)
		assert.InDelta(t, 60, retryAfter, 2)

		count, err := rc.Client.Get(ctx, "rl:contact:10.0.0.9").Int()
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		ttl, err := rc.Client.TTL(ctx, "rl:contact:10.0.0.9").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("Should share counters between limiter instances", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		first := newRouter(NewRateLimiter(rc.Client, discardLogger()))
		second := newRouter(NewRateLimiter(rc.Client, discardLogger()))

		assert.Equal(t, http.StatusOK, send(first, "10.0.0.10").Code)
		assert.Equal(t, http.StatusOK, send(second, "10.0.0.10").Code)
		assert.Equal(t, http.StatusTooManyRequests, send(first, "10.0.0.10").Code)
	})
}
