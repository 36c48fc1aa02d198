// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package main is the entry point for the Wayfarer server.
//
// Wayfarer ranks travel destinations and predicts trip budgets. It
// serves three groups of endpoints:
//
//   - /api/v1/places: heuristic recommendation scoring and learned
//     place ranking with per-prediction explanations
//   - /api/v1/budget: trip budget prediction and table-driven daily
//     cost estimates
//   - /api/v1/models: training runs, model status, and evaluation
//     metrics
//
// # Startup
//
// The server initializes components in the following order:
//
//  1. Configuration: environment variables and config file (Koanf v2)
//  2. Model store: gob artifacts under MODEL_DIR, loaded if present
//  3. Trainer: synthetic-data training pipeline with train/test metrics
//  4. HTTP server: Chi router with CORS, rate limiting, and Prometheus
//  5. Supervisor tree: suture v4 keeps the server and the training
//     scheduler running with failure isolation
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, then the config file found at
// CONFIG_PATH or one of the default paths, then built-in defaults.
//
// Common variables:
//
//	export HTTP_PORT=8460
//	export MODEL_DIR=/data/models
//	export TRAIN_ON_STARTUP=true
//	export TRAIN_INTERVAL=24h
//	export LOG_LEVEL=info
//	./wayfarer
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting connections, waits up to 10 seconds for in-flight requests,
// and stops the training scheduler.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/wayfarer/internal/api"
	"github.com/tomtom215/wayfarer/internal/budget"
	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/features"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/ml/storage"
	"github.com/tomtom215/wayfarer/internal/ranking"
	"github.com/tomtom215/wayfarer/internal/recommend"
	"github.com/tomtom215/wayfarer/internal/supervisor"
	"github.com/tomtom215/wayfarer/internal/supervisor/services"
	"github.com/tomtom215/wayfarer/internal/trainer"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("environment", cfg.Server.Environment).
		Str("model_dir", cfg.Models.Dir).
		Msg("Starting Wayfarer")

	engineer := features.NewEngineer(features.DefaultTables())

	store, err := storage.NewStore(cfg.Models.Dir)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize model store")
	}

	tr, err := trainer.New(engineer, store, cfg.Models.MetricsDir)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize trainer")
	}

	scorerConfig := recommend.DefaultConfig()
	scorerConfig.DefaultLimit = cfg.Scorer.DefaultLimit
	scorer, err := recommend.NewScorer(scorerConfig, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize scorer")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	budgetModel, rankModel := loadModels(ctx, engineer, store)

	handler := api.NewHandler(cfg, scorer, budget.DefaultCostIndex(), tr, budgetModel, rankModel)
	router := api.NewRouter(handler)
	server := api.NewServer(cfg, router.Setup())

	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Retrain on startup only when no usable artifacts were loaded.
	trainOnStartup := cfg.Models.TrainOnStartup &&
		(!budgetModel.IsTrained() || !rankModel.IsTrained())
	tree.AddMLService(services.NewTrainingService(handler, services.TrainingServiceConfig{
		TrainOnStartup: trainOnStartup,
		Interval:       cfg.Models.TrainInterval,
		Seed:           cfg.Models.TrainingSeed,
	}))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// loadModels restores persisted model artifacts. Missing artifacts are
// normal on first start; anything else is logged and the model starts
// untrained.
func loadModels(ctx context.Context, engineer *features.Engineer, store *storage.Store) (*budget.Model, *ranking.Model) {
	budgetModel := budget.New()
	if err := budgetModel.Load(ctx, store); err != nil {
		if !errors.Is(err, storage.ErrModelNotFound) {
			metrics.RecordArtifactOp("load", err)
			logging.Warn().Err(err).Msg("Failed to load budget model artifacts")
		}
	} else {
		metrics.RecordArtifactOp("load", nil)
		logging.Info().
			Str("algorithm", budgetModel.Algorithm()).
			Time("trained_at", budgetModel.TrainedAt()).
			Msg("Budget model loaded")
	}

	rankModel := ranking.New(engineer)
	if err := rankModel.Load(ctx, store); err != nil {
		if !errors.Is(err, storage.ErrModelNotFound) {
			metrics.RecordArtifactOp("load", err)
			logging.Warn().Err(err).Msg("Failed to load ranking model artifacts")
		}
	} else {
		metrics.RecordArtifactOp("load", nil)
		logging.Info().
			Str("algorithm", rankModel.Algorithm()).
			Time("trained_at", rankModel.TrainedAt()).
			Msg("Ranking model loaded")
	}

	return budgetModel, rankModel
}
