package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	TokenStorePostgres = "postgres"
	TokenStoreMongo    = "mongo"
)

type Config struct {
	AppEnv                  string
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	RequestTimeout          time.Duration
	DatabaseURL             string
	DBMaxConns              int32
	DBMinConns              int32
	JWTSecret               string
	SessionLifetime         time.Duration
	StoreTimeout            time.Duration
	TokenStore              string
	MongoURI                string
	MongoDatabase           string
	TokenPurgeInterval      time.Duration
	CORSOrigins             []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	env := strings.ToLower(getEnv("APP_ENV", EnvDevelopment))

	lifetime, err := sessionLifetime(env)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv:                  env,
		ServerPort:              getEnv("SERVER_PORT", getEnv("PORT", "3000")),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_HEADER_TIMEOUT", 10*time.Second),
		ServerWriteTimeout:      getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:       getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:          getDuration("REQUEST_TIMEOUT", 30*time.Second),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:              int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:              int32(getInt("DB_MIN_CONNS", 1)),
		JWTSecret:               jwtSecret(env),
		SessionLifetime:         lifetime,
		StoreTimeout:            getDuration("STORE_TIMEOUT", 5*time.Second),
		TokenStore:              strings.ToLower(getEnv("TOKEN_STORE", TokenStorePostgres)),
		MongoURI:                strings.TrimSpace(os.Getenv("MONGO_URI")),
		MongoDatabase:           getEnv("MONGO_DATABASE", "rentify"),
		TokenPurgeInterval:      getDuration("TOKEN_PURGE_INTERVAL", 0),
		CORSOrigins:             splitCSV(getEnv("CORS_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.AppEnv != EnvDevelopment && c.AppEnv != EnvProduction {
		return fmt.Errorf("APP_ENV must be %q or %q", EnvDevelopment, EnvProduction)
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.SessionLifetime <= 0 {
		return fmt.Errorf("session lifetime must be positive")
	}

	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	switch c.TokenStore {
	case TokenStorePostgres:
	case TokenStoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when TOKEN_STORE=%s", TokenStoreMongo)
		}
	default:
		return fmt.Errorf("TOKEN_STORE must be %q or %q", TokenStorePostgres, TokenStoreMongo)
	}

	return nil
}

// IsDevelopment reports whether error details may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

func jwtSecret(env string) string {
	key := "JWT_SECRET_DEV"
	if env == EnvProduction {
		key = "JWT_SECRET_PROD"
	}

	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return strings.TrimSpace(os.Getenv("JWT_SECRET"))
}

func sessionLifetime(env string) (time.Duration, error) {
	key, fallback := "JWT_EXPIRES_IN_DEV", "1h"
	if env == EnvProduction {
		key, fallback = "JWT_EXPIRES_IN_PROD", "1d"
	}

	raw := getEnv(key, fallback)
	v, err := ParseLifetime(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}

	return v, nil
}

const day = 24 * time.Hour

// maxLifetimeDays is the largest day count that fits in a time.Duration.
const maxLifetimeDays = math.MaxInt64 / int64(day)

// ParseLifetime parses a Go duration string, additionally accepting a whole
// number of days such as "1d" or "7d".
func ParseLifetime(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 || int64(n) > maxLifetimeDays {
			return 0, fmt.Errorf("invalid lifetime %q", raw)
		}
		return time.Duration(n) * day, nil
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid lifetime %q: %w", raw, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid lifetime %q", raw)
	}

	return v, nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := ParseLifetime(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
