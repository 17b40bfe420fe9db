package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"invoicing-roi-api/internal/repository"
)

// Config holds the server settings.
type Config struct {
	Port string // HTTP port

	StoreDriver string // postgres or sqlite
	DatabaseURL string // full postgres URL, takes precedence over DB_*
	DBHost      string // Database host
	DBPort      string // Database port
	DBUser      string // Database user
	DBPassword  string // Database password
	DBName      string // Database name
	DBSSLMode   string // postgres sslmode
	SQLitePath  string // SQLite file, used when StoreDriver is sqlite

	RedisAddr     string        // empty means the in-process cache
	RedisPassword string        // Redis password
	RedisDB       int           // Redis database number
	CacheTTL      time.Duration // Lifetime of the cached listing

	ScenariosFile   string       // optional TOML scenario set
	DBCheckSchedule string       // cron spec for connection checks
	CORSOrigin      string       // Allowed CORS origin
	LogLevel        logrus.Level // Minimum log level

	ReadTimeout  time.Duration // HTTP server read timeout
	WriteTimeout time.Duration // HTTP server write timeout
	IdleTimeout  time.Duration // HTTP keep-alive timeout
}

// LoadConfig reads the configuration from the environment, after loading a
// .env file when one exists.
func LoadConfig() (*Config, error) {
	// Load variables from .env when present
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, using environment only")
	}

	// Parse the typed settings
	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	// Build the configuration
	config := &Config{
		Port:            getEnv("PORT", "5000"),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", repository.DriverPostgres)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "roi_simulator"),
		DBSSLMode:       getEnv("DB_SSLMODE", "disable"),
		SQLitePath:      getEnv("SQLITE_PATH", "data/roi.db"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         redisDB,
		CacheTTL:        getDuration("CACHE_TTL", 30*time.Second),
		ScenariosFile:   os.Getenv("SCENARIOS_FILE"),
		DBCheckSchedule: getEnv("DB_CHECK_SCHEDULE", "@every 30s"),
		CORSOrigin:      getEnv("CORS_ORIGIN", "*"),
		LogLevel:        level,
		ReadTimeout:     getDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getDuration("IDLE_TIMEOUT", 60*time.Second),
	}

	// Only the two supported drivers are accepted
	switch config.StoreDriver {
	case repository.DriverPostgres, repository.DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", config.StoreDriver)
	}

	return config, nil
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.StoreDriver == repository.DriverSQLite {
		return c.SQLitePath
	}
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// StoreInfo describes the database for the status endpoints. Credentials are
// never included.
func (c *Config) StoreInfo() repository.Info {
	info := repository.Info{Driver: c.StoreDriver}

	switch {
	case c.StoreDriver == repository.DriverSQLite:
		info.Host = "localhost"
		info.Name = c.SQLitePath
	case c.DatabaseURL != "":
		if u, err := url.Parse(c.DatabaseURL); err == nil {
			info.Host = u.Hostname()
			info.Name = strings.TrimPrefix(u.Path, "/")
		}
	default:
		info.Host = c.DBHost
		info.Name = c.DBName
	}
	return info
}

// getEnv returns the variable or defaultValue when it is unset or empty.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getDuration falls back to defaultValue when the variable does not parse.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logrus.WithField("key", key).WithError(err).Warn("Invalid duration, using default")
		return defaultValue
	}
	return d
}
