package v1

import (
	"log/slog"
	"net/http"
	"time"

	"staffing-site-backend/config"
	"staffing-site-backend/internal/delivery/http/middleware"
	"staffing-site-backend/internal/delivery/http/response"
	"staffing-site-backend/internal/domain"
	"staffing-site-backend/internal/usecase"
	"staffing-site-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC   domain.ContactUsecase
	HealthUC    usecase.HealthUsecase
	RateLimiter *middleware.RateLimiter
	Metrics     http.Handler // Prometheus exposition, omitted when nil
	Config      *config.Config
	Logger      *slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		deps.Logger.Warn("Invalid TRUSTED_PROXIES, trusting no proxy", "error", err)
		_ = r.SetTrustedProxies(nil)
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins, deps.Config.IsRelease())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler(deps.Logger))

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			c.JSON(http.StatusServiceUnavailable, response.Response{Success: false, Message: "Service degraded", Data: status})
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	window := time.Duration(deps.Config.ContactRateWindowSeconds) * time.Second
	NewContactHandler(api,
		deps.ContactUC,
		deps.RateLimiter.Middleware(middleware.ContactRateLimitConfig(deps.Config.ContactRateLimit, window)),
		middleware.AdminAuth(deps.Config.AdminJWTSecret),
	)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("Route not found"))
	})

	return r
}
