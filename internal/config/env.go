// Package config loads environment configuration for the service.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Env holds every environment-derived setting.
type Env struct {
	MistralAPIKey string
	OpenAIAPIKey  string

	DatabaseURL string
	SQLitePath  string

	RedisURL string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	AppEnv string
	Host   string
	Port   string

	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
}

// LoadEnv loads variables from a .env file if one exists. System-wide
// environment variables win; a missing file is fine.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// GetEnv reads the environment into an Env with defaults applied.
func GetEnv() *Env {
	return &Env{
		MistralAPIKey: strings.TrimSpace(os.Getenv("MISTRAL_API_KEY")),
		OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),

		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLitePath:  getEnvOrDefault("SQLITE_PATH", "data/transcriptions.db"),

		RedisURL: strings.TrimSpace(os.Getenv("REDIS_URL")),

		MinioEndpoint:  strings.TrimSpace(os.Getenv("MINIO_ENDPOINT")),
		MinioAccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnvOrDefault("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getEnvOrDefault("MINIO_BUCKET", "transcription-audio"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",

		AppEnv: getEnvOrDefault("APP_ENV", "development"),
		Host:   getEnvOrDefault("HOST", "0.0.0.0"),
		Port:   getEnvOrDefault("PORT", "8080"),

		ServerReadTimeout:  getDurationOrDefault("SERVER_READ_TIMEOUT", 5*time.Minute),
		ServerWriteTimeout: getDurationOrDefault("SERVER_WRITE_TIMEOUT", 5*time.Minute),
		ServerIdleTimeout:  getDurationOrDefault("SERVER_IDLE_TIMEOUT", 2*time.Minute),
	}
}

// RequireTranscriptionKey fails fast when no provider credential is set.
func (e *Env) RequireTranscriptionKey() error {
	if e.MistralAPIKey == "" && e.OpenAIAPIKey == "" {
		return fmt.Errorf("transcription requires MISTRAL_API_KEY or OPENAI_API_KEY in environment or .env file")
	}
	return nil
}

// ArchiveEnabled reports whether object storage archiving is configured.
func (e *Env) ArchiveEnabled() bool {
	return e.MinioEndpoint != ""
}

func getEnvOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getDurationOrDefault(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
