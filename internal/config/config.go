package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// TokenEnv holds the Telegram bot token.
	TokenEnv = "TELEGRAM_BOT_TOKEN"

	// DBPathEnv holds the SQLite database file path.
	DBPathEnv = "DB_PATH"

	// CheckIntervalEnv holds the poll interval in seconds.
	CheckIntervalEnv = "CHECK_INTERVAL_SECONDS"

	// FetchTimeoutEnv holds the per-request fetch timeout in seconds.
	FetchTimeoutEnv = "FETCH_TIMEOUT_SECONDS"

	// MetricsServerPortEnv holds the metrics server port. Empty disables the server.
	MetricsServerPortEnv = "METRICS_SERVER_PORT"

	// DebugModeEnv enables verbose Telegram API logging.
	DebugModeEnv = "DEBUG_MODE"

	// EnvFilePath points to an optional .env file.
	EnvFilePath = "ENV_PATH"

	// DefaultEnvFilePath is used when ENV_PATH is not set.
	DefaultEnvFilePath = ".env"

	DefaultDBPath        = "products.db"
	DefaultCheckInterval = 30 * time.Minute
	DefaultFetchTimeout  = 15 * time.Second
)

var (
	// ErrMissingConfig is returned when a required value is missing.
	ErrMissingConfig = errors.New("missing config data")
)

// Config is the application configuration.
type Config struct {
	Token             string
	DBPath            string
	CheckInterval     time.Duration
	FetchTimeout      time.Duration
	MetricsServerPort string
	DebugMode         bool
}

// ApplyEnvFile loads environment variables from the given .env files.
func ApplyEnvFile(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// LoadFromEnv reads the configuration from the environment and validates it.
func LoadFromEnv() (*Config, error) {
	envPath := os.Getenv(EnvFilePath)
	if envPath == "" {
		envPath = DefaultEnvFilePath
	}
	if err := ApplyEnvFile(envPath); err != nil {
		// variables may be set another way
		log.Printf("[CONFIG] %v", err)
	}

	interval, err := getEnvAsSeconds(CheckIntervalEnv, DefaultCheckInterval)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvAsSeconds(FetchTimeoutEnv, DefaultFetchTimeout)
	if err != nil {
		return nil, err
	}

	conf := &Config{
		Token:             os.Getenv(TokenEnv),
		DBPath:            getEnv(DBPathEnv, DefaultDBPath),
		CheckInterval:     interval,
		FetchTimeout:      timeout,
		MetricsServerPort: os.Getenv(MetricsServerPortEnv),
		DebugMode:         getEnvAsBool(DebugModeEnv, false),
	}

	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return conf, nil
}

func (c *Config) validate() error {
	if c.Token == "" {
		return fmt.Errorf("%w for key: %s", ErrMissingConfig, TokenEnv)
	}
	if c.MetricsServerPort != "" {
		if _, err := strconv.Atoi(c.MetricsServerPort); err != nil {
			return fmt.Errorf("invalid number for key %s: %w", MetricsServerPortEnv, err)
		}
	}
	return nil
}

func getEnv(name, defaultValue string) string {
	if val := os.Getenv(name); val != "" {
		return val
	}
	return defaultValue
}

func getEnvAsBool(name string, defaultValue bool) bool {
	if val, err := strconv.ParseBool(os.Getenv(name)); err == nil {
		return val
	}
	return defaultValue
}

func getEnvAsSeconds(name string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid number for key %s: %w", name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("value for key %s must be positive, got %d", name, n)
	}
	return time.Duration(n) * time.Second, nil
}
