package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"MISTRAL_API_KEY", "OPENAI_API_KEY", "DATABASE_URL", "SQLITE_PATH",
		"REDIS_URL", "MINIO_ENDPOINT", "APP_ENV", "HOST", "PORT",
		"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	env := GetEnv()

	assert.Empty(t, env.MistralAPIKey)
	assert.Equal(t, "data/transcriptions.db", env.SQLitePath)
	assert.Equal(t, "development", env.AppEnv)
	assert.Equal(t, "0.0.0.0", env.Host)
	assert.Equal(t, "8080", env.Port)
	assert.Equal(t, 5*time.Minute, env.ServerReadTimeout)
	assert.False(t, env.ArchiveEnabled())
}

func TestGetEnv_Overrides(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "  mistral-key  ")
	t.Setenv("DATABASE_URL", "postgres://localhost/transcriptions")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("PORT", "9999")
	t.Setenv("SERVER_READ_TIMEOUT", "30s")

	env := GetEnv()

	assert.Equal(t, "mistral-key", env.MistralAPIKey, "keys are trimmed")
	assert.Equal(t, "postgres://localhost/transcriptions", env.DatabaseURL)
	assert.Equal(t, "9999", env.Port)
	assert.Equal(t, 30*time.Second, env.ServerReadTimeout)
	assert.True(t, env.ArchiveEnabled())
}

func TestGetEnv_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "not-a-duration")

	env := GetEnv()
	assert.Equal(t, 5*time.Minute, env.ServerReadTimeout)
}

func TestRequireTranscriptionKey(t *testing.T) {
	tests := []struct {
		name      string
		mistral   string
		openai    string
		expectErr bool
	}{
		{"mistral key only", "key", "", false},
		{"openai key only", "", "sk-key", false},
		{"both keys", "key", "sk-key", false},
		{"no keys", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &Env{MistralAPIKey: tt.mistral, OpenAIAPIKey: tt.openai}
			err := env.RequireTranscriptionKey()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
