package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RabbitMQ  RabbitMQConfig
	JWT       JWTConfig
	Admin     AdminConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port    string
	Env     string
	Version string
	// TrustedProxies may set X-Forwarded-For. Empty means the socket address is the client.
	TrustedProxies []string
}

// IsProduction reports whether the server runs in production mode.
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string
	RawURL   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL. DATABASE_URL wins over the split settings.
func (c DatabaseConfig) URL() string {
	if c.RawURL != "" {
		return c.RawURL
	}
	if c.Driver == "sqlite" {
		return c.DBName + ".db"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// RedisConfig holds Redis configuration. An empty URL keeps rate limit counters in process.
type RedisConfig struct {
	URL      string
	Password string
}

// RabbitMQConfig holds RabbitMQ configuration. An empty URL disables profile events.
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// AdminConfig holds the single recognised credential.
type AdminConfig struct {
	UserID       uint
	Username     string
	PasswordHash string
	Role         string
}

// CORSConfig holds the allowed frontend origin.
type CORSConfig struct {
	FrontendURL string
}

// RateLimitConfig holds per route class request budgets.
type RateLimitConfig struct {
	Window       time.Duration
	Max          int
	AuthMax      int
	WriteMax     int
	SearchWindow time.Duration
	SearchMax    int
}

// CacheConfig holds query cache settings.
type CacheConfig struct {
	QueryTTL     time.Duration
	// StatsRefresh is the interval of the background stats refresh. Zero disables it.
	StatsRefresh time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnv("SERVER_PORT", getEnv("PORT", "3001")),
			Env:     getEnv("SERVER_ENV", getEnv("NODE_ENV", "development")),
			Version: getEnv("APP_VERSION", "1.0.0"),

			TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			RawURL:   getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "profile"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      getEnv("RABBITMQ_URL", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "profile_events"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-in-production"),
			Expiry: getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
		},
		Admin: AdminConfig{
			UserID:       uint(getEnvAsInt("ADMIN_USER_ID", 1)),
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			Role:         getEnv("ADMIN_ROLE", "admin"),
		},
		CORS: CORSConfig{
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
		RateLimit: RateLimitConfig{
			Window:       getEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
			Max:          getEnvAsInt("RATE_LIMIT_MAX", 100),
			AuthMax:      getEnvAsInt("AUTH_RATE_LIMIT_MAX", 5),
			WriteMax:     getEnvAsInt("WRITE_RATE_LIMIT_MAX", 20),
			SearchWindow: getEnvAsDuration("SEARCH_RATE_LIMIT_WINDOW", time.Minute),
			SearchMax:    getEnvAsInt("SEARCH_RATE_LIMIT_MAX", 30),
		},
		Cache: CacheConfig{
			QueryTTL:     getEnvAsDuration("QUERY_CACHE_TTL", 5*time.Minute),
			StatsRefresh: getEnvAsDuration("STATS_REFRESH_INTERVAL", time.Minute),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated value, dropping blanks. Unset yields nil.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
