package main

import (
	"github.com/gin-gonic/gin"
	"profile-api.backend/internal/interfaces/http/handlers"
	"profile-api.backend/internal/interfaces/http/middleware"
	"profile-api.backend/pkg/jwt"
	"profile-api.backend/pkg/ratelimit"
)

type rateLimiters struct {
	api    *ratelimit.Limiter
	auth   *ratelimit.Limiter
	write  *ratelimit.Limiter
	search *ratelimit.Limiter
}

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	profileHandler *handlers.ProfileHandler
	queryHandler   *handlers.QueryHandler
	healthHandler  *handlers.HealthHandler
	jwtService     *jwt.JWTService
	limiters       rateLimiters
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")

	// Health stays outside every limiter
	api.GET("/health", d.healthHandler.Health)

	api.Use(middleware.RateLimit(d.limiters.api, "Too many requests from this IP, please try again later"))
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login",
				middleware.RateLimit(d.limiters.auth, "Too many login attempts, please try again later"),
				d.authHandler.Login)
			auth.GET("/verify", middleware.AuthMiddleware(d.jwtService), d.authHandler.Verify)
		}

		writeLimit := middleware.RateLimit(d.limiters.write, "Too many write requests, please try again later")

		// Reads are public, every other method needs a bearer token
		profile := api.Group("/profile", middleware.RequireAuth(d.jwtService))
		{
			profile.GET("", d.profileHandler.List)
			profile.POST("", writeLimit, d.profileHandler.Create)
			profile.PUT("", writeLimit, d.profileHandler.Replace)
			profile.DELETE("", writeLimit, d.profileHandler.DeleteAll)

			profile.DELETE("/projects/:id", writeLimit, d.profileHandler.DeleteProject)
			profile.DELETE("/work-experience/:id", writeLimit, d.profileHandler.DeleteWorkExperience)

			profile.GET("/:id", d.profileHandler.Get)
			profile.PUT("/:id", writeLimit, d.profileHandler.ReplaceByID)
			profile.DELETE("/:id", writeLimit, d.profileHandler.Delete)
		}

		api.GET("/projects", d.queryHandler.Projects)
		api.GET("/skills", d.queryHandler.Skills)
		api.GET("/skills/top", d.queryHandler.TopSkills)
		api.GET("/search",
			middleware.RateLimit(d.limiters.search, "Too many search requests, please try again later"),
			d.queryHandler.Search)
		api.GET("/stats", d.queryHandler.Stats)
	}
}
