package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"profile-api.backend/internal/config"
	"profile-api.backend/internal/domain/entities"
	domainRepos "profile-api.backend/internal/domain/repositories"
	"profile-api.backend/internal/infrastructure/datasources/postgres"
	"profile-api.backend/internal/infrastructure/jobs"
	"profile-api.backend/internal/infrastructure/messaging"
	"profile-api.backend/internal/infrastructure/models"
	"profile-api.backend/internal/infrastructure/repositories"
	"profile-api.backend/internal/interfaces/http/handlers"
	"profile-api.backend/internal/interfaces/http/middleware"
	"profile-api.backend/internal/interfaces/http/response"
	"profile-api.backend/internal/usecases"
	"profile-api.backend/pkg/crypto"
	"profile-api.backend/pkg/jwt"
	"profile-api.backend/pkg/logger"
	"profile-api.backend/pkg/ratelimit"
	"profile-api.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		if cfg.Driver == "sqlite" {
			return gorm.Open(sqlite.Open(cfg.URL()), &gorm.Config{TranslateError: true})
		}
		return postgres.NewGormDB(cfg)
	}
	dialPublisher = func(url, exchange string) (*messaging.RabbitMQPublisher, error) {
		return messaging.NewRabbitMQPublisher(url, exchange)
	}
	runServer = func(srv *http.Server) error { return srv.ListenAndServe() }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	// Shared counters when redis is configured, process-local otherwise
	var limitStore ratelimit.Store = ratelimit.NewMemoryStore(cfg.RateLimit.Window)
	if cfg.Redis.URL != "" {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer redis.Close()
		limitStore = ratelimit.NewRedisStore()
		logger.Info(ctx, "Redis initialized")
	}

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	response.SetProduction(cfg.Server.IsProduction())

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info(ctx, "Database ready", zap.String("driver", cfg.Database.Driver))

	var publisher domainRepos.ProfileEventPublisher = messaging.NoopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		p, err := dialPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			logger.Warn(ctx, "Profile events disabled", zap.Error(err))
		} else {
			defer p.Close()
			publisher = p
		}
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)
	queryCache := usecases.NewGenerationCache(cfg.Cache.QueryTTL, 2*cfg.Cache.QueryTTL)

	profileRepo := repositories.NewProfileRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	skillRepo := repositories.NewSkillRepository(db)
	workRepo := repositories.NewWorkExperienceRepository(db)
	uow := repositories.NewUnitOfWork(db)

	admin := entities.AdminUser{
		ID:           cfg.Admin.UserID,
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
		Role:         cfg.Admin.Role,
	}
	if err := crypto.ValidateHash(admin.PasswordHash); err != nil {
		logger.Warn(ctx, "ADMIN_PASSWORD_HASH unusable, login is disabled", zap.Error(err))
	}

	authUsecase := usecases.NewAuthUsecase(admin, jwtService)
	profileUsecase := usecases.NewProfileUsecase(profileRepo, projectRepo, workRepo, uow, publisher, queryCache)
	queryUsecase := usecases.NewQueryUsecase(profileRepo, projectRepo, skillRepo, workRepo, queryCache)

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var statsJob *jobs.StatsRefreshJob
	if cfg.Cache.StatsRefresh > 0 {
		statsJob = jobs.NewStatsRefreshJob(queryUsecase, cfg.Cache.StatsRefresh)
		go statsJob.Start(jobCtx)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := buildRouter(cfg, routeDeps{
		authHandler:    handlers.NewAuthHandler(authUsecase),
		profileHandler: handlers.NewProfileHandler(profileUsecase),
		queryHandler:   handlers.NewQueryHandler(queryUsecase),
		healthHandler:  handlers.NewHealthHandler(cfg.Server.Env, cfg.Server.Version),
		jwtService:     jwtService,
		limiters:       newRateLimiters(cfg.RateLimit, limitStore),
	}, middleware.NewMetrics(registry))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(ctx, "Shutting down server")
		if statsJob != nil {
			statsJob.Stop()
		}
		cancel()

		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(ctx, "Profile API starting",
		zap.String("port", cfg.Server.Port),
		zap.String("version", cfg.Server.Version),
	)

	if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
