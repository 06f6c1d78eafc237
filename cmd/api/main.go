package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/voxline-studio/backend/internal/adapters/openai"
	"github.com/voxline-studio/backend/internal/adapters/rest"
	"github.com/voxline-studio/backend/internal/adapters/youtube"
	"github.com/voxline-studio/backend/internal/config"
	"github.com/voxline-studio/backend/internal/core/ports"
	"github.com/voxline-studio/backend/internal/core/services"
)

func main() {
	// Local dev convenience; deployments inject real env vars.
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}
	// Crash early if required config is missing.
	if cfg.Generator.APIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required")
	}

	// Driven adapters.
	generator, err := openai.New(openai.Config{
		APIKey:     cfg.Generator.APIKey,
		BaseURL:    cfg.Generator.BaseURL,
		Model:      cfg.Generator.Model,
		Timeout:    time.Duration(cfg.Generator.TimeoutSeconds) * time.Second,
		MaxRetries: cfg.Generator.MaxRetries,
		Backoff:    time.Duration(cfg.Generator.BackoffMs) * time.Millisecond,
	}, log.Named("openai"))
	if err != nil {
		log.Fatal("failed to initialize generator", zap.Error(err))
	}

	var intel ports.CompetitorIntel
	if cfg.Research.YouTubeAPIKey != "" {
		ytClient, err := youtube.New(context.Background(), cfg.Research.YouTubeAPIKey, log.Named("youtube"))
		if err != nil {
			log.Fatal("failed to initialize competitor intel", zap.Error(err))
		}
		intel = ytClient
	} else {
		log.Info("YOUTUBE_API_KEY not set, competitor enrichment disabled")
	}

	// Core service and driving adapter.
	pipeline := services.NewPipeline(generator, intel, log.Named("pipeline"))
	handler := rest.NewHandler(pipeline, log.Named("rest"))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	log.Info("blueprint API listening", zap.String("addr", cfg.Server.Addr))

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown error", zap.Error(err))
		}
	}
}
