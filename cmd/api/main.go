package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staffing-site-backend/config"
	_ "staffing-site-backend/docs" // Important for Swagger
	"staffing-site-backend/internal/delivery/http/middleware"
	v1 "staffing-site-backend/internal/delivery/http/v1"
	"staffing-site-backend/internal/domain"
	"staffing-site-backend/internal/repository/memory"
	"staffing-site-backend/internal/repository/postgres"
	"staffing-site-backend/internal/usecase"
	"staffing-site-backend/pkg/database"
	"staffing-site-backend/pkg/email"
	"staffing-site-backend/pkg/logger"
	"staffing-site-backend/pkg/metrics"
	"staffing-site-backend/pkg/redis"
	"staffing-site-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title           Staffing Site Contact API
// @version         1.0
// @description     Contact form intake for the Pyramid HR marketing site.
// @host            localhost:5000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	appLog := logger.Init(cfg.LogLevel)
	appLog.Info("Starting contact backend", "port", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Storage
	var contactRepo domain.ContactRepository
	if cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			appLog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		pgRepo := postgres.NewContactRepository(dbPool)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			appLog.Error("Failed to prepare database schema", "error", err)
			os.Exit(1)
		}
		contactRepo = pgRepo
		appLog.Info("Database connection established successfully")
	} else {
		contactRepo = memory.NewContactRepository()
	}

	// 4. Setup Redis (optional, rate limiting falls back to memory)
	optional := map[string]usecase.Pinger{"rate_limit_store": nil}
	rateLimiter := middleware.NewRateLimiter(nil, appLog)
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			appLog.Warn("Redis unavailable, rate limiting will use in-memory fallback", "error", err)
		} else {
			defer redisClient.Close()
			rateLimiter = middleware.NewRateLimiter(redisClient, appLog)
			optional["rate_limit_store"] = redis.Health{Client: redisClient}
		}
	}
	rateLimiter.StartCleanup(ctx, 5*time.Minute)

	// 5. Setup Email Service
	var mailer domain.Mailer
	smtpMailer := email.NewSMTPMailer(cfg)
	if smtpMailer.IsConfigured() {
		mailer = smtpMailer
		go func() {
			verifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if err := smtpMailer.Verify(verifyCtx); err != nil {
				appLog.Warn("Email transporter verification failed", "error", err)
				return
			}
			appLog.Info("Email transporter verified", "host", cfg.SMTPHost)
		}()
	} else {
		appLog.Warn("Email service not fully configured - contact emails will be skipped")
	}

	if cfg.AdminJWTSecret == "" {
		appLog.Warn("ADMIN_JWT_SECRET not set - contact submissions listing is publicly readable")
	}

	// 6. Setup UseCases
	registry := prometheus.NewRegistry()
	appMetrics := metrics.New(registry)

	contactUC := usecase.NewContactUsecase(contactRepo, mailer, validation.New(), usecase.MailSettings{
		From:        cfg.FromEmail,
		OperatorTo:  cfg.ToEmail,
		CompanyName: cfg.CompanyName,
	}, appMetrics, appLog)
	healthUC := usecase.NewHealthUsecase(map[string]usecase.Pinger{"storage": contactRepo}, optional)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:   contactUC,
		HealthUC:    healthUC,
		RateLimiter: rateLimiter,
		Metrics:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		Config:      cfg,
		Logger:      appLog,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", "error", err)
	}

	appLog.Info("Server exiting")
}
