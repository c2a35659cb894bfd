package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (optional: run history is disabled when URL is empty)
	Database DatabaseConfig

	// Redis (optional: FX rate cache)
	Redis RedisConfig

	// Screening service
	Screener ScreenerConfig

	// Currency reference rates
	FX FXConfig

	// Fallback responder
	Gemini GeminiConfig

	// Scheduled screens
	ScheduleFile string

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
	MetricsPort    string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Enabled reports whether run persistence is configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// ScreenerConfig holds settings for the external screening service
type ScreenerConfig struct {
	BaseURL        string
	Crumb          string        // optional session crumb appended to screener calls
	Timeout        time.Duration // per-submission deadline
	DefaultLimit   int
	MaxConcurrency int // predefined fan-out width
	BreakerEnabled bool
}

// FXConfig holds currency reference-rate settings
type FXConfig struct {
	SourceURL    string
	BaseCurrency string // currency filter values are expressed in
	CacheTTL     time.Duration
	FetchTimeout time.Duration
}

// GeminiConfig holds fallback responder settings
type GeminiConfig struct {
	APIKey        string
	Model         string
	RatePerMinute float64
	Timeout       time.Duration
}

// Enabled reports whether a fallback model is configured
func (g GeminiConfig) Enabled() bool {
	return g.APIKey != ""
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

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Screener: ScreenerConfig{
			BaseURL:        getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			Crumb:          getEnv("YAHOO_CRUMB", ""),
			Timeout:        getEnvAsDuration("SCREENER_TIMEOUT", "15s"),
			DefaultLimit:   getEnvAsInt("SCREENER_DEFAULT_LIMIT", 10),
			MaxConcurrency: getEnvAsInt("SCREENER_MAX_CONCURRENCY", 4),
			BreakerEnabled: getEnvAsBool("SCREENER_BREAKER_ENABLED", true),
		},

		FX: FXConfig{
			SourceURL:    getEnv("FX_SOURCE_URL", "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"),
			BaseCurrency: strings.ToUpper(getEnv("FX_BASE_CURRENCY", "USD")),
			CacheTTL:     getEnvAsDuration("FX_CACHE_TTL", "12h"),
			FetchTimeout: getEnvAsDuration("FX_FETCH_TIMEOUT", "10s"),
		},

		Gemini: GeminiConfig{
			APIKey:        getEnv("GEMINI_API_KEY", ""),
			Model:         getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
			RatePerMinute: getEnvAsFloat("FALLBACK_RATE_PER_MIN", 30),
			Timeout:       getEnvAsDuration("FALLBACK_TIMEOUT", "60s"),
		},

		ScheduleFile: getEnv("SCHEDULE_FILE", ""),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Monitoring
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", false),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
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

	if c.Screener.Timeout <= 0 {
		return fmt.Errorf("SCREENER_TIMEOUT must be positive")
	}

	if c.Screener.DefaultLimit <= 0 {
		return fmt.Errorf("SCREENER_DEFAULT_LIMIT must be positive")
	}

	if c.Screener.MaxConcurrency < 1 {
		return fmt.Errorf("SCREENER_MAX_CONCURRENCY must be at least 1")
	}

	if len(c.FX.BaseCurrency) != 3 {
		return fmt.Errorf("FX_BASE_CURRENCY must be a 3-letter ISO code, got %q", c.FX.BaseCurrency)
	}

	if c.Gemini.RatePerMinute <= 0 {
		return fmt.Errorf("FALLBACK_RATE_PER_MIN must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
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
