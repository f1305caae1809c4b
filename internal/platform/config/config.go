// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr         string
	ArtifactsDir string
	FormsDir     string
	DatasetsDir  string

	RedisURL    string
	DatabaseURL string

	JWTSigningKey string

	ArtifactTTLDays int
	ConsentTTLDays  int

	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

// FromEnv reads PATHWAYS_* variables, applying defaults for everything
// optional. Redis, Postgres, and JWT auth are opt-in: empty values select
// the in-memory store, no audit mirror, and open endpoints respectively.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:            envOr("PATHWAYS_ADDR", ":8080"),
		ArtifactsDir:    envOr("PATHWAYS_ARTIFACTS_DIR", "./data"),
		FormsDir:        envOr("PATHWAYS_FORMS_DIR", "./schemas"),
		DatasetsDir:     envOr("PATHWAYS_DATASETS_DIR", "./datasets"),
		RedisURL:        os.Getenv("PATHWAYS_REDIS_URL"),
		DatabaseURL:     os.Getenv("PATHWAYS_DATABASE_URL"),
		JWTSigningKey:   os.Getenv("PATHWAYS_JWT_SIGNING_KEY"),
		ShutdownTimeout: 10 * time.Second,
		RequestTimeout:  30 * time.Second,
	}

	var err error
	if cfg.ArtifactTTLDays, err = envInt("PATHWAYS_ARTIFACT_TTL_DAYS", 30); err != nil {
		return Config{}, err
	}
	if cfg.ConsentTTLDays, err = envInt("PATHWAYS_CONSENT_TTL_DAYS", 30); err != nil {
		return Config{}, err
	}
	if cfg.ArtifactTTLDays <= 0 {
		return Config{}, fmt.Errorf("PATHWAYS_ARTIFACT_TTL_DAYS must be positive")
	}
	if cfg.ConsentTTLDays <= 0 {
		return Config{}, fmt.Errorf("PATHWAYS_CONSENT_TTL_DAYS must be positive")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
