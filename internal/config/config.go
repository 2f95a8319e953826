// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

// Package config loads the application configuration with layered
// sources: built-in defaults, an optional YAML file, then environment
// variables, highest priority last.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Data     DataConfig     `koanf:"data"`
	Model    ModelConfig    `koanf:"model"`
	Training TrainingConfig `koanf:"training"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"gte=1"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// CatalogConfig holds the external recipe API settings. An empty
// BaseURL disables the client entirely and serves mock data.
type CatalogConfig struct {
	BaseURL           string        `koanf:"base_url" validate:"omitempty,url"`
	Token             string        `koanf:"token"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
}

// DataConfig holds on-disk data locations.
type DataConfig struct {
	// Dir is the root data directory; the other paths default to
	// locations under it when left empty.
	Dir string `koanf:"dir" validate:"required"`

	// FlavorDataset is the optional curated ingredient-to-vector JSON.
	FlavorDataset string `koanf:"flavor_dataset"`

	// RecipeSnapshot is the cached recipe catalog used for training.
	RecipeSnapshot string `koanf:"recipe_snapshot"`

	// InteractionLog is the BadgerDB directory for the interaction log.
	InteractionLog string `koanf:"interaction_log"`
}

// ModelConfig holds serving-side model settings.
type ModelConfig struct {
	RegistryPath string `koanf:"registry_path"`
	ModelsDir    string `koanf:"models_dir"`
	TopN         int    `koanf:"top_n" validate:"gte=1"`
}

// TrainingConfig holds offline training settings.
type TrainingConfig struct {
	TestFraction     float64            `koanf:"test_fraction" validate:"gt=0,lt=1"`
	Seed             int64              `koanf:"seed"`
	Lambda           float64            `koanf:"lambda" validate:"gte=0"`
	RetrainThreshold int64              `koanf:"retrain_threshold" validate:"gte=1"`
	LockPath         string             `koanf:"lock_path"`
	ActionWeights    map[string]float64 `koanf:"action_weights"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, applied before file and
// environment layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			Timeout:         30 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Catalog: CatalogConfig{
			BaseURL:           "",
			Token:             "",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
		},
		Data: DataConfig{
			Dir: "/data/flavorsense",
		},
		Model: ModelConfig{
			TopN: 5,
		},
		Training: TrainingConfig{
			TestFraction:     0.2,
			Seed:             42,
			Lambda:           1.0,
			RetrainThreshold: 50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// applyPathDefaults fills path fields left empty relative to Data.Dir.
func (c *Config) applyPathDefaults() {
	if c.Data.RecipeSnapshot == "" {
		c.Data.RecipeSnapshot = filepath.Join(c.Data.Dir, "recipes_cache.json")
	}
	if c.Data.InteractionLog == "" {
		c.Data.InteractionLog = filepath.Join(c.Data.Dir, "interactions")
	}
	if c.Model.RegistryPath == "" {
		c.Model.RegistryPath = filepath.Join(c.Data.Dir, "model_registry.json")
	}
	if c.Model.ModelsDir == "" {
		c.Model.ModelsDir = filepath.Join(c.Data.Dir, "models")
	}
	if c.Training.LockPath == "" {
		c.Training.LockPath = filepath.Join(c.Data.Dir, "training.lock")
	}
}

// Validate checks structural constraints on the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for action, weight := range c.Training.ActionWeights {
		if action == "" {
			return fmt.Errorf("invalid configuration: empty action name with weight %f", weight)
		}
	}
	return nil
}
