// Package config assembles application configuration from the
// environment. A .env file in the working directory is loaded first so
// local development does not need exported variables.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/llm"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/search"
)

// Config is the full application configuration.
type Config struct {
	// ServerAddr is the listen address for the HTTP API.
	ServerAddr string

	// DatabaseURL selects the backing store: a postgres:// DSN in
	// production, anything else is treated as a SQLite path.
	DatabaseURL string

	// JWTSecret signs and verifies access tokens. Tokens themselves are
	// issued by the platform's auth service, not this backend.
	JWTSecret string

	// RedisURL enables the lesson-plan cache when set.
	RedisURL string

	LLM    llm.Config
	Search search.Config
}

// Load reads configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	// Missing .env is the normal case in deployment.
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddr:  getEnv("CURIO_SERVER_ADDR", ":8000"),
		DatabaseURL: getEnv("CURIO_DATABASE_URL", "curiocloud.db"),
		JWTSecret:   getEnv("CURIO_JWT_SECRET", ""),
		RedisURL:    getEnv("CURIO_REDIS_URL", ""),
		LLM:         llm.ConfigFromEnv(),
		Search:      search.ConfigFromEnv(),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("CURIO_JWT_SECRET must be set")
	}
	if err := cfg.LLM.Validate(); err != nil {
		return nil, fmt.Errorf("llm config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
