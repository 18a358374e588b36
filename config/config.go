package config

import (
	"os"
	"strconv"

	"github.com/jsphweid/midicoach/constants"
)

// Config holds the runtime configuration of the CLI and HTTP layer. The core
// packages never read it directly.
type Config struct {
	Environment string
	Port        string
	MediaPath   string

	// Observability
	SentryDSN string

	// Upload limit for the HTTP layer
	MaxUploadBytes int64

	// Analysis cache (DynamoDB)
	CacheEnabled   bool
	CacheTable     string
	DynamoEndpoint string
	DynamoRegion   string

	// HarmonySeed is nil when harmonization should alternate deterministically
	HarmonySeed *int64

	ScanWorkers int
}

func Load() *Config {
	return &Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		Port:           getEnv("PORT", "8080"),
		MediaPath:      getEnv("MEDIA_PATH", "."),
		SentryDSN:      getEnv("SENTRY_DSN", ""),
		MaxUploadBytes: getInt64("MAX_UPLOAD_BYTES", constants.MaxUploadBytes),
		CacheEnabled:   getEnv("ANALYSIS_CACHE_ENABLED", "false") == "true",
		CacheTable:     getEnv("ANALYSIS_CACHE_TABLE", "midicoach-analysis"),
		DynamoEndpoint: getEnv("DYNAMODB_ENDPOINT", "http://localhost:8000"),
		DynamoRegion:   getEnv("DYNAMODB_REGION", "localhost"),
		HarmonySeed:    getOptionalInt64("HARMONY_SEED"),
		ScanWorkers:    int(getInt64("SCAN_WORKERS", 4)),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	v, err := strconv.ParseInt(getEnv(key, ""), 10, 64)
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getOptionalInt64(key string) *int64 {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// IsProduction returns true when running with ENVIRONMENT=production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
