package serve

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/nocdn/transcriptions-ssr/internal/api/server"
	"github.com/nocdn/transcriptions-ssr/internal/app"
	"github.com/nocdn/transcriptions-ssr/internal/config"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the transcription API server",
	Long: `Run the transcription API server.

- POST /api/v1/transcriptions accepts multipart audio uploads
- GET /api/v1/transcriptions lists recent history
- DELETE /api/v1/transcriptions/:id removes a record`,
	Run: func(cmd *cobra.Command, args []string) {
		env := config.GetEnv()
		if err := env.RequireTranscriptionKey(); err != nil {
			log.Fatalf("Configuration error: %v\n", err)
		}

		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		service, err := app.InitializeTranscriptionService(env)
		if err != nil {
			log.Fatalf("Failed to initialize services: %v\n", err)
		}

		var redisClient *redis.Client
		if env.RedisURL != "" {
			opts, err := redis.ParseURL(env.RedisURL)
			if err != nil {
				log.Fatalf("Invalid REDIS_URL: %v\n", err)
			}
			redisClient = redis.NewClient(opts)
		}

		srv := server.NewServer(server.Config{
			Host:         env.Host,
			Port:         env.Port,
			ReadTimeout:  env.ServerReadTimeout,
			WriteTimeout: env.ServerWriteTimeout,
			IdleTimeout:  env.ServerIdleTimeout,
			Environment:  env.AppEnv,
		}, service, redisClient, logger)

		if err := srv.Start(); err != nil {
			log.Fatalf("Failed to start server: %v\n", err)
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("Shutdown failed: %v\n", err)
		}
	},
}
