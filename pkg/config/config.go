package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Logging
	LogLevel  string
	LogFormat string // json, console, pretty
	LogFile   LogFileConfig

	// API
	RateLimit RateLimitConfig
	Cache     CacheConfig

	// Scenario
	ScenarioDir string // scenario run 기본 디렉토리
}

// LogFileConfig holds rotating file sink configuration
type LogFileConfig struct {
	Enabled       bool
	Path          string // 로그 디렉토리
	MaxSizeMB     int
	RetentionDays int
}

// RateLimitConfig holds API rate limiter configuration
type RateLimitConfig struct {
	RPS   int
	Burst int
}

// CacheConfig holds API result cache configuration
type CacheConfig struct {
	Enabled    bool
	TTL        time.Duration
	MaxEntries int
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		LogFile: LogFileConfig{
			Enabled:       getEnvAsBool("LOG_FILE_ENABLED", false),
			Path:          getEnv("LOG_FILE_PATH", "logs"),
			MaxSizeMB:     getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			RetentionDays: getEnvAsInt("LOG_RETENTION_DAYS", 14),
		},

		// API
		RateLimit: RateLimitConfig{
			RPS:   getEnvAsInt("RATE_LIMIT_RPS", 50),
			Burst: getEnvAsInt("RATE_LIMIT_BURST", 100),
		},
		Cache: CacheConfig{
			Enabled:    getEnvAsBool("CACHE_ENABLED", true),
			TTL:        getEnvAsDuration("CACHE_TTL", "5m"),
			MaxEntries: getEnvAsInt("CACHE_MAX_ENTRIES", 1024),
		},

		ScenarioDir: getEnv("SCENARIO_DIR", "config/scenarios"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.LogFormat {
	case "json", "console", "pretty":
	default:
		return fmt.Errorf("LOG_FORMAT must be one of: json, console, pretty")
	}

	if c.LogFile.Enabled {
		if c.LogFile.Path == "" {
			return fmt.Errorf("LOG_FILE_PATH is required when LOG_FILE_ENABLED=true")
		}
		if c.LogFile.MaxSizeMB <= 0 {
			return fmt.Errorf("LOG_MAX_SIZE_MB must be > 0")
		}
	}

	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be > 0")
	}

	if c.Cache.Enabled && (c.Cache.MaxEntries <= 0 || c.Cache.TTL <= 0) {
		return fmt.Errorf("CACHE_MAX_ENTRIES and CACHE_TTL must be > 0 when CACHE_ENABLED=true")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
