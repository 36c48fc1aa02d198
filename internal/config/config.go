// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package config provides centralized configuration loaded with Koanf v2
// in three layers: built-in defaults, an optional YAML file, and
// environment variables, with environment taking precedence.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Thread Safety: Config is immutable after Load() and safe for
// concurrent read access from multiple goroutines.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	API     APIConfig     `koanf:"api"`
	Models  ModelsConfig  `koanf:"models"`
	Scorer  ScorerConfig  `koanf:"scorer"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_PORT: Listen port (default: 8460)
//   - SERVER_TIMEOUT: Read/write timeout (default: 30s)
//   - ENVIRONMENT: "development" or "production"
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// APIConfig holds request shaping settings for the HTTP API.
//
// Environment Variables:
//   - API_DEFAULT_TOP_K: Result count when a request omits one
//   - API_MAX_CANDIDATES: Upper bound on candidate batch size
//   - RATE_LIMIT_REQS / RATE_LIMIT_WINDOW: Per-IP rate limiting
//   - CORS_ORIGINS: Comma-separated allowed origins
type APIConfig struct {
	DefaultTopK     int           `koanf:"default_top_k"`
	MaxCandidates   int           `koanf:"max_candidates"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// ModelsConfig holds model artifact and training pipeline settings.
//
// Environment Variables:
//   - MODEL_DIR: Artifact store directory (default: /data/models)
//   - MODEL_METRICS_DIR: Training report directory
//   - TRAIN_ON_STARTUP: Bootstrap-train when no artifacts exist
//   - TRAIN_INTERVAL: Periodic retraining cadence, 0 disables
//   - TRAINING_SEED: Seed for synthetic data and stochastic fits
//   - RANKING_ALGORITHM: "boosting" or "bagging"
//   - BUDGET_ALGORITHM: "bagging", "boosting", or "ridge"
type ModelsConfig struct {
	Dir              string        `koanf:"dir"`
	MetricsDir       string        `koanf:"metrics_dir"`
	TrainOnStartup   bool          `koanf:"train_on_startup"`
	TrainInterval    time.Duration `koanf:"train_interval"`
	TrainingSeed     int64         `koanf:"training_seed"`
	RankingAlgorithm string        `koanf:"ranking_algorithm"`
	BudgetAlgorithm  string        `koanf:"budget_algorithm"`
}

// ScorerConfig holds heuristic place scorer settings.
//
// Environment Variables:
//   - SCORER_DEFAULT_LIMIT: Result count when a request omits one
type ScorerConfig struct {
	DefaultLimit int `koanf:"default_limit"`
}

// LoggingConfig holds log output settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: "json" or "console" (default: json)
//   - LOG_CALLER: Include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for values that would fail at
// runtime. Called by Load; exported for tests.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive, got %v", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("environment must be development or production, got %q", c.Server.Environment)
	}

	if c.API.DefaultTopK < 1 {
		return fmt.Errorf("api default_top_k must be positive, got %d", c.API.DefaultTopK)
	}
	if c.API.MaxCandidates < c.API.DefaultTopK {
		return fmt.Errorf("api max_candidates (%d) must be >= default_top_k (%d)",
			c.API.MaxCandidates, c.API.DefaultTopK)
	}
	if c.API.RateLimitReqs < 1 || c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit must be positive: %d reqs / %v",
			c.API.RateLimitReqs, c.API.RateLimitWindow)
	}

	if c.Models.Dir == "" {
		return fmt.Errorf("models dir must not be empty")
	}
	if c.Models.TrainInterval < 0 {
		return fmt.Errorf("train interval must not be negative, got %v", c.Models.TrainInterval)
	}
	switch c.Models.RankingAlgorithm {
	case "boosting", "bagging":
	default:
		return fmt.Errorf("ranking algorithm must be boosting or bagging, got %q", c.Models.RankingAlgorithm)
	}
	switch c.Models.BudgetAlgorithm {
	case "bagging", "boosting", "ridge":
	default:
		return fmt.Errorf("budget algorithm must be bagging, boosting, or ridge, got %q", c.Models.BudgetAlgorithm)
	}

	if c.Scorer.DefaultLimit < 1 {
		return fmt.Errorf("scorer default_limit must be positive, got %d", c.Scorer.DefaultLimit)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// Addr returns the host:port the server binds to.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction reports whether production hardening applies.
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}
