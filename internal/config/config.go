package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"runner-dashboard/pkg/utils"

	"github.com/joho/godotenv"
)

// Config holds the service configuration loaded from the environment.
type Config struct {
	HTTPAddr         string
	DBDSN            string
	OutputDir        string
	ExportEnabled    bool
	MaxUploadBytes   int64
	MaxDisplayErrors int
	RequestTimeout   time.Duration
	LogLevel         string
}

// Load reads an optional .env file and returns the populated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds the Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		DBDSN:          getEnv("DB_DSN", ""),
		OutputDir:      getEnv("OUTPUT_DIR", "outputs"),
		RequestTimeout: utils.ParseDuration(os.Getenv("REQUEST_TIMEOUT"), 30*time.Second),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.ExportEnabled, err = getEnvAsBool("EXPORT_ENABLED", false); err != nil {
		return nil, err
	}
	maxBytes, err := getEnvAsInt("MAX_UPLOAD_BYTES", 10<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxBytes)
	if cfg.MaxDisplayErrors, err = getEnvAsInt("MAX_DISPLAY_ERRORS", 10); err != nil {
		return nil, err
	}

	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: expected an integer, got '%s'", key, valueStr)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s: expected a boolean, got '%s'", key, valueStr)
	}
	return value, nil
}
