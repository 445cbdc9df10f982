package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Scan     ScanConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver          string // "sqlite" or "pgx"
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	DialTimeout     time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
}

// ScanConfig holds thresholds for the scan workflow.
type ScanConfig struct {
	// OCR average confidence below which items are scored as partial_ocr.
	MinOCRConfidence float64
	// Absolute total difference under which two same-day receipts from the
	// same store count as a similar duplicate.
	SimilarTotalDelta float64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			DSN:             getEnv("DB_URL", "file:pantry.db?_time_format=sqlite"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Scan: ScanConfig{
			MinOCRConfidence:  getEnvAsFloat64("SCAN_MIN_OCR_CONFIDENCE", 0.5),
			SimilarTotalDelta: getEnvAsFloat64("SCAN_SIMILAR_TOTAL_DELTA", 0.50),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.Driver != "sqlite" && c.Database.Driver != "pgx" {
		return NewAppError("CONFIG_ERROR", "DB_DRIVER must be sqlite or pgx", ErrInvalidInput)
	}
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Scan.MinOCRConfidence < 0 || c.Scan.MinOCRConfidence > 1 {
		return NewAppError("CONFIG_ERROR", "SCAN_MIN_OCR_CONFIDENCE must be in [0,1]", ErrInvalidInput)
	}
	return nil
}
