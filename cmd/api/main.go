package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"GardenGenie/internal/config"
	"GardenGenie/internal/database"
	"GardenGenie/internal/identify"
	"GardenGenie/internal/llm"
	"GardenGenie/internal/logging"
	"GardenGenie/internal/plantcare"
	"GardenGenie/internal/server"
	"GardenGenie/internal/store"
	"GardenGenie/internal/unsplash"

	"github.com/rs/zerolog/log"
)

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Setup(cfg.AppEnv)

	ctx := context.Background()
	db, err := database.NewService(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}
	defer db.Close()

	llmClient := llm.NewClient(
		cfg.OpenRouterBaseURL,
		cfg.OpenRouterAPIKey,
		cfg.LLMModel,
		time.Duration(cfg.LLMTimeoutSeconds)*time.Second,
	)

	deps := server.Deps{
		Config:     cfg,
		DB:         db,
		Classifier: plantcare.NewClassifier(llmClient, cfg.LLMMaxRetries, cfg.UseStructuredOutputs),
		Generator:  plantcare.NewGenerator(llmClient),
		Store:      store.New(store.NewQuerier(db.Pool())),
		Images: unsplash.NewClient(
			cfg.UnsplashAPIURL,
			cfg.UnsplashAccessKey,
			time.Duration(cfg.UnsplashTimeoutSeconds)*time.Second,
			cfg.UnsplashMaxRetries,
		),
		Identifier: identify.NewService(llmClient, cfg.VisionModel),
	}

	apiServer := server.NewServer(deps)

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(apiServer, done)

	log.Info().Int("port", cfg.Port).Str("env", cfg.AppEnv).Msg("starting api server")
	if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server error")
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info().Msg("graceful shutdown complete")
}
