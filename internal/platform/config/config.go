package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	insecureJWTSecret = "a-very-secret-key-should-be-longer-and-random"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	LogLevel           string
	StorageBackend     string
	MigrationsPath     string
	JWTSecret          string
	JWTExpiryDuration  time.Duration
	JWTIssuer          string
	AdminAPIKey        string
	RedisAddr          string
	CatalogCacheTTL    time.Duration
	SweepCron          string
	SweepWorkers       int
	SweepLockTTL       time.Duration
	LoginRateLimit     string
	CORSAllowedOrigins []string
	PosthogAPIKey      string
	PosthogEndpoint    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_BACKEND", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", insecureJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "savings-ledger")
	v.SetDefault("ADMIN_API_KEY", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CATALOG_CACHE_TTL", "10m")
	v.SetDefault("SWEEP_CRON", "5 0 * * *")
	v.SetDefault("SWEEP_WORKERS", 4)
	v.SetDefault("SWEEP_LOCK_TTL", "30m")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:       v.GetString("PGSQL_URL"),
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		LogLevel:          strings.ToLower(v.GetString("LOG_LEVEL")),
		StorageBackend:    strings.ToLower(v.GetString("STORAGE_BACKEND")),
		MigrationsPath:    v.GetString("MIGRATIONS_PATH"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTExpiryDuration: duration(v, "JWT_EXPIRY_DURATION", time.Hour),
		JWTIssuer:         v.GetString("JWT_ISSUER"),
		AdminAPIKey:       v.GetString("ADMIN_API_KEY"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		CatalogCacheTTL:   duration(v, "CATALOG_CACHE_TTL", 10*time.Minute),
		SweepCron:         v.GetString("SWEEP_CRON"),
		SweepWorkers:      v.GetInt("SWEEP_WORKERS"),
		SweepLockTTL:      duration(v, "SWEEP_LOCK_TTL", 30*time.Minute),
		LoginRateLimit:    v.GetString("LOGIN_RATE_LIMIT"),
		PosthogAPIKey:     v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:   v.GetString("POSTHOG_ENDPOINT"),
	}
	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.SweepWorkers <= 0 {
		log.Printf("Warning: Invalid value for SWEEP_WORKERS (%d). Defaulting to 4.\n", cfg.SweepWorkers)
		cfg.SweepWorkers = 4
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("PGSQL_URL is required when STORAGE_BACKEND=postgres")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.JWTSecret == insecureJWTSecret {
		if c.IsProduction {
			return errors.New("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if c.AdminAPIKey == "" {
		log.Println("Warning: ADMIN_API_KEY not set. Admin routes will reject every request.")
	}
	return nil
}

// duration reads a Go duration string, falling back when it is missing or malformed.
func duration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
