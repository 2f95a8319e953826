// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package ranking

import (
	"math"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/hunny0025/Codenova/internal/catalog"
	"github.com/hunny0025/Codenova/internal/feature"
	"github.com/hunny0025/Codenova/internal/flavor"
	"github.com/hunny0025/Codenova/internal/profile"
)

// Ranking source labels reported in response metadata.
const (
	SourceModel  = "ml_model"
	SourceCosine = "cosine_fallback"
)

// RankedRecipe is one scored candidate with its explanation.
type RankedRecipe struct {
	Score       float64            `json:"score"`
	Recipe      catalog.Recipe     `json:"recipe"`
	Explanation map[string]float64 `json:"explanation"`
	Confidence  float64            `json:"confidence"`
}

// Metadata describes how a ranking was produced.
type Metadata struct {
	ModelVersion         string  `json:"model_version"`
	FeaturesUsed         int     `json:"features_used"`
	TrainedOn            string  `json:"trained_on"`
	TrainingSamples      int     `json:"training_samples"`
	RankingSource        string  `json:"ranking_source"`
	RecommendationTimeMs float64 `json:"recommendation_time_ms"`
}

// Result is a complete ranking response.
type Result struct {
	Ranked   []RankedRecipe `json:"ranked"`
	Metadata Metadata       `json:"metadata"`
}

// modelState is the immutable serving state swapped atomically on reload.
// model is nil when no trained artifact is available.
type modelState struct {
	model    Model
	version  string
	registry Registry
}

// Service ranks candidates with the current model, falling back to pure
// cosine similarity when no model is loaded. Construction and reload
// never leave the service unable to rank.
type Service struct {
	builder      *feature.Builder
	registryPath string
	modelsDir    string
	defaultTopN  int
	logger       zerolog.Logger

	state atomic.Pointer[modelState]
}

// NewService creates a ranking service and attempts an initial model
// load. A missing or broken registry/artifact is logged and serving
// starts in cosine fallback.
func NewService(builder *feature.Builder, registryPath, modelsDir string, defaultTopN int, logger zerolog.Logger) *Service {
	s := &Service{
		builder:      builder,
		registryPath: registryPath,
		modelsDir:    modelsDir,
		defaultTopN:  defaultTopN,
		logger:       logger.With().Str("component", "ranking").Logger(),
	}
	s.state.Store(&modelState{version: "none"})

	if err := s.Reload(); err != nil {
		s.logger.Warn().Err(err).Msg("No model loaded, serving cosine fallback")
	}
	return s
}

// Reload re-reads the registry and loads the current model artifact,
// swapping it in atomically. On any failure the previous state stays in
// place and the error is returned.
func (s *Service) Reload() error {
	registry, err := ReadRegistry(s.registryPath)
	if err != nil {
		// Corrupt registry keeps the prior state serving.
		return err
	}
	if registry.CurrentModel == "" {
		// Missing or cleared registry is the valid pre-training state.
		s.state.Store(&modelState{version: "none", registry: *registry})
		s.logger.Info().Msg("Registry empty, serving cosine fallback")
		return nil
	}

	model, err := LoadModel(filepath.Join(s.modelsDir, registry.CurrentModel))
	if err != nil {
		return err
	}

	s.state.Store(&modelState{
		model:    model,
		version:  registry.ModelVersion(),
		registry: *registry,
	})
	s.logger.Info().
		Str("model_version", registry.ModelVersion()).
		Int("samples", registry.Samples).
		Float64("rmse", registry.RMSE).
		Msg("Model loaded")
	return nil
}

// Ready reports whether a trained model is serving.
func (s *Service) Ready() bool {
	return s.state.Load().model != nil
}

// Registry returns a copy of the registry backing the current state.
func (s *Service) Registry() Registry {
	return s.state.Load().registry
}

// Metadata returns the serving metadata without performing a ranking.
func (s *Service) Metadata() Metadata {
	return s.metadataFor(s.state.Load())
}

func (s *Service) metadataFor(state *modelState) Metadata {
	trainedOn := state.registry.TrainedOn
	if trainedOn == "" {
		trainedOn = "unknown"
	}
	source := SourceCosine
	if state.model != nil {
		source = SourceModel
	}
	return Metadata{
		ModelVersion:    state.version,
		FeaturesUsed:    feature.Count,
		TrainedOn:       trainedOn,
		TrainingSamples: state.registry.Samples,
		RankingSource:   source,
	}
}

// Rank scores the candidates for the user and returns the top n in
// descending score order. n <= 0 uses the configured default. Rank never
// fails: a model scoring error downgrades the request to cosine fallback.
func (s *Service) Rank(user *profile.Profile, recipes []catalog.Recipe, n int) Result {
	start := time.Now()
	state := s.state.Load()

	if n <= 0 {
		n = s.defaultTopN
	}

	metadata := s.metadataFor(state)
	if len(recipes) == 0 {
		metadata.RecommendationTimeMs = elapsedMs(start)
		return Result{Ranked: []RankedRecipe{}, Metadata: metadata}
	}

	var ranked []RankedRecipe
	if state.model != nil {
		var err error
		ranked, err = s.rankModel(state.model, user, recipes)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Model scoring failed, downgrading to cosine")
			ranked = s.rankCosine(user, recipes)
			metadata.RankingSource = SourceCosine
		}
	} else {
		ranked = s.rankCosine(user, recipes)
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	metadata.RecommendationTimeMs = elapsedMs(start)
	return Result{Ranked: ranked, Metadata: metadata}
}

// rankModel scores with the trained model. Confidence is a batch-relative
// heuristic: predictions far from the batch mean are more decisive, so
// confidence = min(1, |score-mean| / max(std, 0.01) * 0.5). Explanations
// multiply each feature value by the model's importance for it.
func (s *Service) rankModel(model Model, user *profile.Profile, recipes []catalog.Recipe) ([]RankedRecipe, error) {
	matrix := s.builder.BuildBatch(user, recipes)
	scores, err := model.Score(matrix)
	if err != nil {
		return nil, err
	}

	mean, std := meanStd(scores)
	importances := model.FeatureImportances()

	ranked := make([]RankedRecipe, len(recipes))
	for i := range recipes {
		explanation := make(map[string]float64, feature.Count)
		for j, name := range feature.Names {
			explanation[name] = round(matrix[i][j]*importances[j], 4)
		}

		confidence := math.Abs(scores[i]-mean) / math.Max(std, 0.01) * 0.5
		ranked[i] = RankedRecipe{
			Score:       scores[i],
			Recipe:      recipes[i],
			Explanation: explanation,
			Confidence:  round(math.Min(1.0, confidence), 3),
		}
	}
	return ranked, nil
}

// rankCosine scores by flavor similarity alone. The similarity doubles
// as the confidence, and the explanation carries the single feature that
// produced the score.
func (s *Service) rankCosine(user *profile.Profile, recipes []catalog.Recipe) []RankedRecipe {
	ranked := make([]RankedRecipe, len(recipes))
	for i := range recipes {
		sim := flavor.Cosine(user.FlavorVector, s.builder.RecipeFlavor(recipes[i].Ingredients))
		ranked[i] = RankedRecipe{
			Score:       sim,
			Recipe:      recipes[i],
			Explanation: map[string]float64{"flavor_similarity": round(sim, 4)},
			Confidence:  round(sim, 3),
		}
	}
	return ranked
}

func meanStd(values []float64) (mean, std float64) {
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	if len(values) < 2 {
		return mean, 0
	}
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return mean, math.Sqrt(variance / float64(len(values)))
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

func elapsedMs(start time.Time) float64 {
	return round(float64(time.Since(start).Microseconds())/1000.0, 1)
}
