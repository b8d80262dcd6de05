package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gluco-mcp/internal/metrics"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Thresholds       metrics.Thresholds
	CategoryMode     metrics.CategoryMode
	IOBDurationHours float64
	DataPath         string
	StorePath        string
	LogDir           string
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try the executable's directory first (highest priority for MCP
	// servers launched by a client with an arbitrary working directory).
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to the current working directory (go run / development).
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	defaults := metrics.DefaultThresholds()
	cfg := &AppConfig{
		Thresholds: metrics.Thresholds{
			VeryLow:  getEnvFloat("GLUCOSE_VERY_LOW", defaults.VeryLow),
			Low:      getEnvFloat("GLUCOSE_LOW", defaults.Low),
			High:     getEnvFloat("GLUCOSE_HIGH", defaults.High),
			VeryHigh: getEnvFloat("GLUCOSE_VERY_HIGH", defaults.VeryHigh),
		},
		CategoryMode:     categoryMode(getEnvInt("RANGE_CATEGORIES", 5)),
		IOBDurationHours: getEnvFloat("IOB_DURATION_HOURS", 5),
		DataPath:         dataPath,
		StorePath:        getEnv("STORE_PATH", filepath.Join(dataPath, "gluco-mcp.db")),
		LogDir:           logDir,
	}

	return cfg, nil
}

func categoryMode(n int) metrics.CategoryMode {
	if n == 3 {
		return metrics.ThreeCategories
	}
	return metrics.FiveCategories
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric configuration value")
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
