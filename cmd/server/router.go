package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"profile-api.backend/internal/config"
	"profile-api.backend/internal/interfaces/http/handlers"
	"profile-api.backend/internal/interfaces/http/middleware"
	"profile-api.backend/pkg/logger"
	"profile-api.backend/pkg/ratelimit"
)

func applyCORSMiddleware(r *gin.Engine, frontendURL string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, middleware.HeaderRateLimitLimit, middleware.HeaderRateLimitRemaining, middleware.HeaderRateLimitReset},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func newRateLimiters(cfg config.RateLimitConfig, store ratelimit.Store) rateLimiters {
	return rateLimiters{
		api:    ratelimit.NewLimiter("api", cfg.Max, cfg.Window, store),
		auth:   ratelimit.NewLimiter("auth", cfg.AuthMax, cfg.Window, store),
		write:  ratelimit.NewLimiter("write", cfg.WriteMax, cfg.Window, store),
		search: ratelimit.NewLimiter("search", cfg.SearchMax, cfg.SearchWindow, store),
	}
}

func buildRouter(cfg *config.Config, d routeDeps, metrics *middleware.Metrics) *gin.Engine {
	handlers.RegisterValidators()

	r := gin.New()
	// Limiters key on ClientIP, so forwarded headers count only from configured proxies
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		logger.Warn(context.Background(), "Invalid TRUSTED_PROXIES, trusting none",
			zap.Strings("trusted_proxies", cfg.Server.TrustedProxies), zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(metrics.Middleware())

	applyCORSMiddleware(r, cfg.CORS.FrontendURL)
	r.NoRoute(middleware.RouteNotFound())

	r.GET("/metrics", metrics.Handler())
	registerAPIRoutes(r, d)
	return r
}
