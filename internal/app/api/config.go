package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	platformpostgres "github.com/Apurer/pawsitive-drive-server/internal/platform/postgres"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	AutoMigrate       bool
	StoreTimeout      time.Duration
	RequestTimeout    time.Duration
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	Environment       string
}

// LoadEnvFiles loads KEY=VALUE pairs from the given files (".env" when none
// are given) without overriding variables already set. Missing files are skipped.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		AutoMigrate:       isTruthy(envDefault("DB_AUTO_MIGRATE", "true")),
		StoreTimeout:      platformpostgres.DefaultStoreTimeout,
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		Environment:       envDefault("ENVIRONMENT", "local"),
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	timeout, err := positiveMillis("STORE_TIMEOUT_MS")
	if err != nil {
		return Config{}, err
	}
	if timeout > 0 {
		cfg.StoreTimeout = timeout
	}
	if cfg.RequestTimeout, err = positiveMillis("REQUEST_TIMEOUT_MS"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// positiveMillis parses key as a positive millisecond count. Unset yields zero.
func positiveMillis(key string) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
