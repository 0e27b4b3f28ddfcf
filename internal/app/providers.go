// Package app wires the application graph: provider selection, history
// store, clipboard and the submission flow.
package app

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nocdn/transcriptions-ssr/internal/app/api"
	openaiprovider "github.com/nocdn/transcriptions-ssr/internal/app/api/openai"
	"github.com/nocdn/transcriptions-ssr/internal/app/api/voxtral"
	"github.com/nocdn/transcriptions-ssr/internal/app/clipboard"
	appconfig "github.com/nocdn/transcriptions-ssr/internal/app/config"
	apperrors "github.com/nocdn/transcriptions-ssr/internal/app/errors"
	"github.com/nocdn/transcriptions-ssr/internal/app/repository"
	"github.com/nocdn/transcriptions-ssr/internal/app/repository/pg"
	"github.com/nocdn/transcriptions-ssr/internal/app/repository/sqlite"
	"github.com/nocdn/transcriptions-ssr/internal/app/storage"
	"github.com/nocdn/transcriptions-ssr/internal/config"
)

const providersConfigPath = "configs/providers.yaml"

func provideLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

// provideTranscriber selects the remote provider from the providers config,
// falling back to whichever API key is actually present.
func provideTranscriber(env *config.Env) (api.Transcriber, error) {
	providers, err := appconfig.LoadProvidersConfig(providersConfigPath)
	if err != nil {
		return nil, err
	}

	name := providers.DefaultProvider
	if name == "voxtral" && env.MistralAPIKey == "" && env.OpenAIAPIKey != "" {
		name = "openai"
	}

	switch name {
	case "openai":
		if env.OpenAIAPIKey == "" {
			return nil, apperrors.New("openai provider selected but OPENAI_API_KEY is not set")
		}
		return openaiprovider.NewWhisperTranscriber(env.OpenAIAPIKey), nil
	default:
		if env.MistralAPIKey == "" {
			return nil, apperrors.New("voxtral provider selected but MISTRAL_API_KEY is not set")
		}
		cfg := providers.Provider("voxtral")
		return voxtral.NewClient(voxtral.Config{
			APIKey:  env.MistralAPIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.TimeoutSec,
		}), nil
	}
}

// provideHistoryDAO prefers Postgres when DATABASE_URL is set, otherwise a
// local SQLite file.
func provideHistoryDAO(env *config.Env) (repository.HistoryDAO, error) {
	if env.DatabaseURL != "" {
		return pg.NewPostgresDB(env.DatabaseURL)
	}

	if dir := filepath.Dir(env.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apperrors.Wrap(err, "failed to create database directory")
		}
	}
	return sqlite.NewSQLiteDB(env.SQLitePath)
}

func provideClipboard() clipboard.Writer {
	return clipboard.NewSystemClipboard()
}

// provideArchiver returns a nil Archiver when object storage is not
// configured; callers treat nil as archiving disabled.
func provideArchiver(env *config.Env) (storage.Archiver, error) {
	if !env.ArchiveEnabled() {
		return nil, nil
	}
	return storage.NewMinioArchive(storage.ArchiveConfig{
		Endpoint:  env.MinioEndpoint,
		AccessKey: env.MinioAccessKey,
		SecretKey: env.MinioSecretKey,
		Bucket:    env.MinioBucket,
		UseSSL:    env.MinioUseSSL,
	})
}
