package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staffing-site-backend/internal/domain"
	"staffing-site-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRateLimiterInMemory(t *testing.T) {
	limiter := NewRateLimiter(nil, discardLogger())
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/api/contact", limiter.Middleware(ContactRateLimitConfig(2, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.RemoteAddr = ip + ":40000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	second := send("10.0.0.1")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	blocked := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))
	assert.Equal(t, false, decode(t, blocked)["success"])

	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code, "limits are per client")

	now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code, "window resets")

	now = now.Add(10 * time.Minute)
	limiter.sweep()
	_, ok := limiter.store.Load("rl:contact:10.0.0.2")
	assert.False(t, ok, "expired entries are swept")
}

func TestRateLimiterFallsBackWhenRedisIsDown(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	var logs bytes.Buffer
	limiter := NewRateLimiter(client, slog.New(slog.NewJSONHandler(&logs, nil)))

	r := gin.New()
	r.POST("/api/contact", limiter.Middleware(ContactRateLimitConfig(1, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.RemoteAddr = "10.0.0.3:40000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send(), "in-memory counters still enforce the limit")
	assert.Contains(t, logs.String(), "Rate limit store unavailable")
}

func TestErrorHandler(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logs, nil))

	r := gin.New()
	r.Use(RequestID(), ErrorHandler(log))
	r.GET("/validation", func(c *gin.Context) {
		_ = c.Error(&domain.ValidationError{Fields: []domain.FieldError{{Field: "email", Message: "Please enter a valid email address"}}})
	})
	r.GET("/app", func(c *gin.Context) {
		_ = c.Error(apperror.New(http.StatusInternalServerError, "Failed to submit contact form", errors.New("pq: connection reset")))
	})
	r.GET("/raw", func(c *gin.Context) {
		_ = c.Error(errors.New("secret detail"))
	})

	t.Run("Should render validation errors with every field", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/validation", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Invalid form data", body["message"])
		assert.Len(t, body["errors"], 1)
	})

	t.Run("Should hide wrapped causes but log them", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
		assert.Equal(t, "Failed to submit contact form", decode(t, w)["message"])
		assert.Contains(t, logs.String(), "pq: connection reset")
	})

	t.Run("Should replace unknown errors with a generic message", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/raw", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "secret detail")
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("RequestID")) })

	t.Run("Should keep a safe inbound id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "edge-1234")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "edge-1234", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "edge-1234", w.Body.String())
	})

	t.Run("Should replace unsafe ids", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "bad id\nInjected: 1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})
}

func TestCORSMiddleware(t *testing.T) {
	handler := func(production bool) *gin.Engine {
		r := gin.New()
		r.Use(CORSMiddleware([]string{"https://pyramidhr.com"}, production))
		r.POST("/api/contact", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	preflight := func(r *gin.Engine, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := preflight(handler(true), "https://pyramidhr.com")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://pyramidhr.com", w.Header().Get("Access-Control-Allow-Origin"))

	assert.Equal(t, http.StatusForbidden, preflight(handler(true), "https://evil.example").Code)
	assert.Equal(t, http.StatusForbidden, preflight(handler(true), "http://localhost:5173").Code)
	assert.Equal(t, http.StatusNoContent, preflight(handler(false), "http://localhost:5173").Code)
}

func TestAdminAuth(t *testing.T) {
	const secret = "test-admin-secret"

	sign := func(t *testing.T, key string, claims jwt.MapClaims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
		require.NoError(t, err)
		return token
	}

	newRouter := func(secret string) *gin.Engine {
		r := gin.New()
		r.Use(ErrorHandler(discardLogger()))
		r.GET("/api/contact-submissions", AdminAuth(secret), func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	serve := func(r *gin.Engine, auth string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/contact-submissions", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
	call := func(r *gin.Engine, auth string) int {
		return serve(r, auth).Code
	}

	exp := time.Now().Add(time.Hour).Unix()

	assert.Equal(t, http.StatusOK, call(newRouter(""), ""), "open when no secret is configured")

	r := newRouter(secret)
	assert.Equal(t, http.StatusUnauthorized, call(r, ""))
	assert.Equal(t, http.StatusUnauthorized, call(r, "Bearer "+sign(t, "wrong", jwt.MapClaims{"role": "admin", "exp": exp})))
	assert.Equal(t, http.StatusUnauthorized, call(r, "Bearer "+sign(t, secret, jwt.MapClaims{"role": "admin", "exp": time.Now().Add(-time.Minute).Unix()})))
	assert.Equal(t, http.StatusUnauthorized, call(r, "Bearer "+sign(t, secret, jwt.MapClaims{"role": "admin"})), "tokens must expire")

	forbidden := serve(r, "Bearer "+sign(t, secret, jwt.MapClaims{"role": "recruiter", "exp": exp}))
	assert.Equal(t, http.StatusForbidden, forbidden.Code)
	assert.Equal(t, "Admin access required", decode(t, forbidden)["message"])
	assert.Equal(t, false, decode(t, forbidden)["success"])
	assert.Equal(t, http.StatusOK, call(r, "Bearer "+sign(t, secret, jwt.MapClaims{"role": "admin", "sub": "ops", "exp": exp})))
}
