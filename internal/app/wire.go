//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/nocdn/transcriptions-ssr/internal/api/v1/services"
	"github.com/nocdn/transcriptions-ssr/internal/app/flow"
	"github.com/nocdn/transcriptions-ssr/internal/config"
)

// InitializeFlowController assembles the interactive submission flow.
func InitializeFlowController(env *config.Env) (*flow.Controller, error) {
	wire.Build(
		provideLogger,
		provideTranscriber,
		provideHistoryDAO,
		provideClipboard,
		flow.NewController,
	)
	return nil, nil
}

// InitializeTranscriptionService assembles the API-facing service.
func InitializeTranscriptionService(env *config.Env) (services.TranscriptionService, error) {
	wire.Build(
		provideLogger,
		provideTranscriber,
		provideHistoryDAO,
		provideArchiver,
		services.NewTranscriptionService,
	)
	return nil, nil
}
