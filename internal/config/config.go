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
	ServiceName string
	Version     string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	DBMaxConns   int
	DBMaxIdle    time.Duration
	DBMaxLife    time.Duration

	APIKey         string   // admin API key for the ledger/ops surface
	TrustedProxies []string // peers whose X-Forwarded-For is honored

	VerifyDebounce time.Duration // trailing-edge delay for the reward verification sweep

	DiscordWebhookID    string // optional: rare-drop announcements
	DiscordWebhookToken string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		ServiceName: getEnv("SERVICE_NAME", "entroverse-api"),
		Version:     getEnv("VERSION", "dev"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "entroverse"),

		APIKey: getEnv("API_KEY", ""),

		DiscordWebhookID:    getEnv("DISCORD_WEBHOOK_ID", ""),
		DiscordWebhookToken: getEnv("DISCORD_WEBHOOK_TOKEN", ""),
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	maxConns, err := getEnvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxConns = maxConns

	cfg.DBMaxIdle, err = getEnvDuration("DB_MAX_IDLE", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.DBMaxLife, err = getEnvDuration("DB_MAX_LIFE", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.VerifyDebounce, err = getEnvDuration("VERIFY_DEBOUNCE", 2*time.Second)
	if err != nil {
		return nil, err
	}

	if raw := getEnv("TRUSTED_PROXIES", ""); raw != "" {
		for _, proxy := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(proxy); trimmed != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, trimmed)
			}
		}
	}

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

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
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

// DiscordEnabled reports whether rare-drop announcements are configured
func (c *Config) DiscordEnabled() bool {
	return c.DiscordWebhookID != "" && c.DiscordWebhookToken != ""
}
