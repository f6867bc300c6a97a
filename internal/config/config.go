package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
	LogDir      string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	APIKey string // API key for authentication

	// TrustedProxies are proxy IPs whose X-Forwarded-For header is honored.
	TrustedProxies []string

	// RotationSize is the number of items in the daily shop rotation.
	RotationSize int
	// DailyChallengeCount is the number of daily challenges generated per day.
	DailyChallengeCount int

	// Event publishing retry settings. Zero values fall back to the
	// bootstrap defaults.
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	var err error

	cfg := &Config{
		Environment:         getEnv("ENVIRONMENT", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
		LogDir:              getEnv("LOG_DIR", "logs"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBName:              getEnv("DB_NAME", "surgeportal"),
		APIKey:              getEnv("API_KEY", ""),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", ""),
	}

	cfg.EventMaxRetries, err = getEnvInt("EVENT_MAX_RETRIES", 0)
	if err != nil {
		return nil, err
	}
	if delay := getEnv("EVENT_RETRY_DELAY", ""); delay != "" {
		d, derr := time.ParseDuration(delay)
		if derr != nil {
			return nil, fmt.Errorf("invalid EVENT_RETRY_DELAY value: %w", derr)
		}
		cfg.EventRetryDelay = d
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	cfg.RotationSize, err = getEnvInt("ROTATION_SIZE", 20)
	if err != nil {
		return nil, err
	}
	if cfg.RotationSize < 1 {
		return nil, fmt.Errorf("ROTATION_SIZE must be at least 1")
	}

	cfg.DailyChallengeCount, err = getEnvInt("DAILY_CHALLENGE_COUNT", 3)
	if err != nil {
		return nil, err
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
