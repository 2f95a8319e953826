// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

// Package main is the offline training command.
//
// It reads the interaction log, fits a fresh ridge regression model on
// the joined feature matrix, and publishes the artifact plus updated
// registry for the serving process to hot-reload.
//
// By default training only runs when enough live feedback has
// accumulated since the last run; -force overrides the threshold.
// When the log has no synthetic segment yet, -bootstrap seeds it from
// the built-in demo users.
//
// Example:
//
//	export DATA_DIR=/data/flavorsense
//	./flavorsense-train -bootstrap
//	./flavorsense-train -force
package main

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/hunny0025/Codenova/internal/catalog"
	"github.com/hunny0025/Codenova/internal/config"
	"github.com/hunny0025/Codenova/internal/feature"
	"github.com/hunny0025/Codenova/internal/flavor"
	"github.com/hunny0025/Codenova/internal/interactions"
	"github.com/hunny0025/Codenova/internal/logging"
	"github.com/hunny0025/Codenova/internal/metrics"
	"github.com/hunny0025/Codenova/internal/trainer"
)

func main() {
	force := flag.Bool("force", false, "train even when the retrain threshold is not met")
	bootstrap := flag.Bool("bootstrap", false, "seed the synthetic interaction segment when empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	if err := os.MkdirAll(cfg.Data.Dir, 0o750); err != nil {
		logging.Fatal().Err(err).Str("dir", cfg.Data.Dir).Msg("Failed to create data directory")
	}

	flavors := flavor.NewStore(cfg.Data.FlavorDataset, logger)
	builder := feature.NewBuilder(flavors)

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

	recipes, err := catalog.LoadSnapshot(cfg.Data.RecipeSnapshot)
	if err != nil {
		logging.Warn().Err(err).
			Str("path", cfg.Data.RecipeSnapshot).
			Msg("Recipe snapshot unavailable, training on the mock catalog")
		recipes = catalog.MockRecipes()
	}

	if *bootstrap {
		synthetic, err := log.CountSynthetic()
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to inspect interaction log")
		}
		if synthetic == 0 {
			n, err := trainer.Bootstrap(log, builder, recipes, cfg.Training.Seed)
			if err != nil {
				logging.Fatal().Err(err).Msg("Failed to seed synthetic interactions")
			}
			logging.Info().Int("interactions", n).Msg("Seeded synthetic interaction segment")
		} else {
			logging.Info().Int64("interactions", synthetic).Msg("Synthetic segment already present, skipping bootstrap")
		}
	}

	trainerCfg := trainer.DefaultConfig(cfg.Data.Dir)
	trainerCfg.RegistryPath = cfg.Model.RegistryPath
	trainerCfg.ModelsDir = cfg.Model.ModelsDir
	trainerCfg.LockPath = cfg.Training.LockPath
	trainerCfg.TestFraction = cfg.Training.TestFraction
	trainerCfg.Seed = cfg.Training.Seed
	trainerCfg.Lambda = cfg.Training.Lambda
	trainerCfg.RetrainThreshold = cfg.Training.RetrainThreshold
	tr := trainer.New(builder, log, trainerCfg, logger)

	if !*force && !tr.Recommended() {
		logging.Info().
			Int64("live_interactions", tr.LiveCount()).
			Int64("threshold", cfg.Training.RetrainThreshold).
			Msg("Retrain threshold not met, skipping (use -force to override)")
		return
	}

	start := time.Now()
	entry, err := tr.Train(recipes)
	metrics.RecordTraining(time.Since(start), entry.RMSE, err)
	if err != nil {
		switch {
		case errors.Is(err, trainer.ErrInsufficientData):
			logging.Fatal().Err(err).Msg("Not enough joined samples to train")
		case errors.Is(err, trainer.ErrAlreadyRunning):
			logging.Fatal().Err(err).Msg("Another training run holds the lock")
		default:
			logging.Fatal().Err(err).Msg("Training failed")
		}
	}

	logging.Info().
		Str("version", entry.Version).
		Int("samples", entry.Samples).
		Float64("rmse", entry.RMSE).
		Str("trained_on", entry.TrainedOn).
		Msg("Model trained and published")
}
