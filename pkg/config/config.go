package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Universe / strategy rules file
	UniverseFile string

	// Redis
	Redis RedisConfig

	// Market data
	MarketData MarketDataConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// MarketDataConfig holds market data provider configuration.
type MarketDataConfig struct {
	ChartBaseURL   string
	QuoteBaseURL   string
	LocalPageURL   string // HTML quote pages for the local exchange scraper
	HistoryDays    int
	RatePerSecond  float64 // outbound request rate toward the provider
	RequestTimeout time.Duration

	// Cache TTLs for the raw data layer
	HistoryTTL      time.Duration
	FundamentalsTTL time.Duration
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		UniverseFile: getEnv("UNIVERSE_FILE", "config/universe.yaml"),

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		MarketData: MarketDataConfig{
			ChartBaseURL:    getEnv("MARKETDATA_CHART_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
			QuoteBaseURL:    getEnv("MARKETDATA_QUOTE_URL", "https://query1.finance.yahoo.com/v10/finance/quoteSummary"),
			LocalPageURL:    getEnv("MARKETDATA_LOCAL_PAGE_URL", "https://finance.yahoo.com/quote"),
			HistoryDays:     getEnvAsInt("MARKETDATA_HISTORY_DAYS", 60),
			RatePerSecond:   getEnvAsFloat("MARKETDATA_RATE_PER_SECOND", 4.0),
			RequestTimeout:  getEnvAsDuration("MARKETDATA_REQUEST_TIMEOUT", "15s"),
			HistoryTTL:      getEnvAsDuration("MARKETDATA_HISTORY_TTL", "15m"),
			FundamentalsTTL: getEnvAsDuration("MARKETDATA_FUNDAMENTALS_TTL", "1h"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.UniverseFile == "" {
		return fmt.Errorf("UNIVERSE_FILE is required")
	}

	if c.MarketData.HistoryDays < 30 {
		return fmt.Errorf("MARKETDATA_HISTORY_DAYS must be at least 30")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

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
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
