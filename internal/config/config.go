package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"content-analyzer/internal/cache"
	"content-analyzer/internal/hashvec"
	"content-analyzer/internal/relevance"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	DBPath    string
	LogLevel  slog.Level
	LogFormat string // text or json

	// AnalysisMode is used when a request does not name a mode.
	AnalysisMode    relevance.Mode
	HashDimensions  int
	AnalysisWorkers int

	// CacheKeepPerKey is the number of entries kept per cache key; 0 keeps the full history.
	CacheKeepPerKey    int
	CacheMemoryEntries int
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or a parent, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:   getEnv("API_PORT", "9000"),
		DBPath:    getEnv("DB_PATH", "./data/content-analyzer.db"),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.AnalysisMode, err = relevance.ParseMode(getEnv("ANALYSIS_MODE", string(relevance.ModeServer))); err != nil {
		return nil, fmt.Errorf("ANALYSIS_MODE: %w", err)
	}
	if cfg.HashDimensions, err = getPositiveInt("HASH_DIMENSIONS", hashvec.DefaultDimensions); err != nil {
		return nil, err
	}
	if cfg.AnalysisWorkers, err = getPositiveInt("ANALYSIS_WORKERS", runtime.NumCPU()); err != nil {
		return nil, err
	}
	if cfg.CacheKeepPerKey, err = getNonNegativeInt("CACHE_KEEP_PER_KEY", 0); err != nil {
		return nil, err
	}
	if cfg.CacheMemoryEntries, err = getNonNegativeInt("CACHE_MEMORY_ENTRIES", 256); err != nil {
		return nil, err
	}

	// Create the database directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// Retention returns the cache retention policy selected by CacheKeepPerKey.
func (c *Config) Retention() cache.RetentionPolicy {
	return cache.KeepLatest(c.CacheKeepPerKey)
}

// ScoringOptions returns the scorer options selected by the configuration.
func (c *Config) ScoringOptions() relevance.Options {
	return relevance.Options{
		Workers:    c.AnalysisWorkers,
		Dimensions: c.HashDimensions,
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

func getPositiveInt(key string, defaultValue int) (int, error) {
	n, err := getInt(key, defaultValue)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return n, nil
}

func getNonNegativeInt(key string, defaultValue int) (int, error) {
	n, err := getInt(key, defaultValue)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return n, nil
}
