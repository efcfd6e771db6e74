package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	HTTPPort    string
	StoreDriver string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	BuildNumber string
	CommitHash  string

	LogLevel string
	LogFile  string

	// The stale order sweep is off unless StaleOrderSchedule is set.
	StaleOrderTTL      time.Duration
	StaleOrderSchedule string
}

var defaults = map[string]string{
	"HTTP_PORT":            "8044",
	"STORE_DRIVER":         StoreMemory,
	"DB_PORT":              "5432",
	"DB_SSLMODE":           "disable",
	"BUILD_NUMBER":         "local",
	"COMMIT_HASH":          "unknown",
	"LOG_LEVEL":            "info",
	"STALE_ORDER_TTL":      "24h",
	"STALE_ORDER_SCHEDULE": "",
}

// LoadDotEnv adds the variables of path to the environment. A missing file
// is not an error; variables already set win over the file.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads the configuration through getenv, usually os.Getenv,
// filling unset variables with defaults.
func LoadConfig(getenv func(string) string) (Config, error) {
	get := func(key string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return defaults[key]
	}

	config := Config{
		HTTPPort:           get("HTTP_PORT"),
		StoreDriver:        strings.ToLower(get("STORE_DRIVER")),
		DBHost:             get("DB_HOST"),
		DBPort:             get("DB_PORT"),
		DBUser:             get("DB_USER"),
		DBPassword:         get("DB_PASSWORD"),
		DBName:             get("DB_NAME"),
		DBSslMode:          get("DB_SSLMODE"),
		BuildNumber:        get("BUILD_NUMBER"),
		CommitHash:         get("COMMIT_HASH"),
		LogLevel:           get("LOG_LEVEL"),
		LogFile:            get("LOG_FILE"),
		StaleOrderSchedule: get("STALE_ORDER_SCHEDULE"),
	}

	ttl, err := time.ParseDuration(get("STALE_ORDER_TTL"))
	if err != nil {
		return Config{}, fmt.Errorf("STALE_ORDER_TTL: %w", err)
	}
	config.StaleOrderTTL = ttl

	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the values LoadConfig cannot default.
func (c Config) Validate() error {
	var errs []error

	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT: %q is not a port", c.HTTPPort))
	}
	if c.StaleOrderTTL < 0 {
		errs = append(errs, fmt.Errorf("STALE_ORDER_TTL: must not be negative, got %s", c.StaleOrderTTL))
	}

	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		for key, value := range map[string]string{
			"DB_HOST": c.DBHost,
			"DB_USER": c.DBUser,
			"DB_NAME": c.DBName,
		} {
			if value == "" {
				errs = append(errs, fmt.Errorf("%s: required when STORE_DRIVER is postgres", key))
			}
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER: %q is not one of %s, %s", c.StoreDriver, StoreMemory, StorePostgres))
	}

	return errors.Join(errs...)
}

// StaleOrderSweepEnabled reports whether the job cancelling stale orders runs.
// An empty STALE_ORDER_SCHEDULE or a zero STALE_ORDER_TTL turns it off.
func (c Config) StaleOrderSweepEnabled() bool {
	return c.StaleOrderSchedule != "" && c.StaleOrderTTL > 0
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return "0.0.0.0:" + c.HTTPPort
}
