// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

// Package main is the entry point for the FlavorSense recommendation
// server.
//
// The server initializes components in the following order:
//
//  1. Configuration: layered Koanf v2 load (defaults, YAML file, env)
//  2. Flavor store: curated ingredient dataset with synthetic fallback
//  3. Interaction log: BadgerDB-backed feedback journal
//  4. Recipe catalog: external API client with mock fallback
//  5. Ranking service: model registry load with cosine fallback
//  6. HTTP server: REST API plus Prometheus metrics
//
// Graceful shutdown on SIGINT and SIGTERM: stop accepting connections,
// drain in-flight requests (10s), close the interaction log.
//
// Example:
//
//	export DATA_DIR=/data/flavorsense
//	export CATALOG_BASE_URL=https://cosylab.iiitd.edu.in/recipe2-api
//	export CATALOG_TOKEN=your-api-token
//	./flavorsense
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/hunny0025/Codenova/internal/api"
	"github.com/hunny0025/Codenova/internal/catalog"
	"github.com/hunny0025/Codenova/internal/config"
	"github.com/hunny0025/Codenova/internal/feature"
	"github.com/hunny0025/Codenova/internal/flavor"
	"github.com/hunny0025/Codenova/internal/interactions"
	"github.com/hunny0025/Codenova/internal/logging"
	"github.com/hunny0025/Codenova/internal/mealplan"
	"github.com/hunny0025/Codenova/internal/metrics"
	"github.com/hunny0025/Codenova/internal/profile"
	"github.com/hunny0025/Codenova/internal/ranking"
	"github.com/hunny0025/Codenova/internal/trainer"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
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
		Str("version", version).
		Str("data_dir", cfg.Data.Dir).
		Bool("catalog_live", cfg.Catalog.BaseURL != "" && cfg.Catalog.Token != "").
		Msg("Starting FlavorSense server")

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	if err := os.MkdirAll(cfg.Data.Dir, 0o750); err != nil {
		logging.Fatal().Err(err).Str("dir", cfg.Data.Dir).Msg("Failed to create data directory")
	}

	logger := logging.Logger()

	flavors := flavor.NewStore(cfg.Data.FlavorDataset, logger)
	builder := feature.NewBuilder(flavors)
	profiles := profile.NewStore()

	weights := cfg.Training.ActionWeights
	if len(weights) == 0 {
		weights = interactions.DefaultWeights()
	}
	log, err := interactions.Open(cfg.Data.InteractionLog, weights, logger)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Data.InteractionLog).Msg("Failed to open interaction log")
	}
	defer func() {
		if err := log.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing interaction log")
		}
	}()

	recipes := catalog.NewClient(catalog.ClientConfig{
		BaseURL:           cfg.Catalog.BaseURL,
		Token:             cfg.Catalog.Token,
		Timeout:           cfg.Catalog.Timeout,
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
	}, logger)

	ranker := ranking.NewService(builder, cfg.Model.RegistryPath, cfg.Model.ModelsDir, cfg.Model.TopN, logger)
	planner := mealplan.NewPlanner(ranker)

	trainerCfg := trainer.DefaultConfig(cfg.Data.Dir)
	trainerCfg.RegistryPath = cfg.Model.RegistryPath
	trainerCfg.ModelsDir = cfg.Model.ModelsDir
	trainerCfg.LockPath = cfg.Training.LockPath
	trainerCfg.TestFraction = cfg.Training.TestFraction
	trainerCfg.Seed = cfg.Training.Seed
	trainerCfg.Lambda = cfg.Training.Lambda
	trainerCfg.RetrainThreshold = cfg.Training.RetrainThreshold
	tr := trainer.New(builder, log, trainerCfg, logger)

	handler := api.NewHandler(profiles, recipes, ranker, planner, tr, log, builder)
	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Server.RateLimitReqs,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go publishFlavorStats(ctx, flavors)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("FlavorSense server stopped")
}

// publishFlavorStats exports flavor store counters to Prometheus every
// 15 seconds. The counters are cumulative, so deltas are computed here.
func publishFlavorStats(ctx context.Context, flavors *flavor.Store) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	var lastDataset, lastSynthetic int64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := flavors.Stats()
			metrics.AddFlavorLookups(stats.DatasetHits-lastDataset, stats.SyntheticHits-lastSynthetic)
			metrics.SetFlavorCacheEntries(stats.CacheSize)
			lastDataset, lastSynthetic = stats.DatasetHits, stats.SyntheticHits
		}
	}
}
