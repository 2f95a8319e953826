// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ranking Metrics
	RankingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ranking_duration_seconds",
			Help:    "Duration of recipe ranking requests in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"source"}, // "ml_model", "cosine_fallback"
	)

	RankingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rankings_total",
			Help: "Total number of ranking requests served",
		},
		[]string{"source"},
	)

	RankingCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ranking_candidates",
			Help:    "Number of candidates entering each ranking request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// Model Metrics
	ModelInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "model_info",
			Help: "Currently serving model version (value is always 1)",
		},
		[]string{"version"},
	)

	ModelReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_reloads_total",
			Help: "Total number of model hot-reload attempts",
		},
		[]string{"result"}, // "success", "failure"
	)

	// Flavor Store Metrics
	FlavorCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flavor_cache_entries",
			Help: "Current number of cached ingredient flavor vectors",
		},
	)

	FlavorLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flavor_lookups_total",
			Help: "Total number of ingredient flavor lookups by origin",
		},
		[]string{"origin"}, // "dataset", "synthetic"
	)

	// Interaction Metrics
	InteractionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_recorded_total",
			Help: "Total number of recorded user interactions",
		},
		[]string{"action"},
	)

	LiveInteractions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "live_interactions",
			Help: "Interactions recorded since the last retrain",
		},
	)

	// Training Metrics
	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "training_runs_total",
			Help: "Total number of training runs",
		},
		[]string{"result"}, // "success", "failure"
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "training_duration_seconds",
			Help:    "Duration of training runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)

	TrainingRMSE = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "training_rmse",
			Help: "Held-out RMSE of the most recent training run",
		},
	)

	// Catalog Client Metrics
	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of catalog API requests",
		},
		[]string{"operation", "result"}, // result: "success", "failure", "fallback"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordRanking records one served ranking request.
func RecordRanking(source string, candidates int, duration time.Duration) {
	RankingDuration.WithLabelValues(source).Observe(duration.Seconds())
	RankingsTotal.WithLabelValues(source).Inc()
	RankingCandidates.Observe(float64(candidates))
}

// RecordModelReload records a hot-reload attempt. On success the info
// gauge is reset to the new version.
func RecordModelReload(version string, err error) {
	if err != nil {
		ModelReloads.WithLabelValues("failure").Inc()
		return
	}
	ModelReloads.WithLabelValues("success").Inc()
	ModelInfo.Reset()
	ModelInfo.WithLabelValues(version).Set(1)
}

// RecordInteraction records one logged interaction and the new live
// count.
func RecordInteraction(action string, liveCount int64) {
	InteractionsRecorded.WithLabelValues(action).Inc()
	LiveInteractions.Set(float64(liveCount))
}

// RecordTraining records the outcome of a training run.
func RecordTraining(duration time.Duration, rmse float64, err error) {
	TrainingDuration.Observe(duration.Seconds())
	if err != nil {
		TrainingRuns.WithLabelValues("failure").Inc()
		return
	}
	TrainingRuns.WithLabelValues("success").Inc()
	TrainingRMSE.Set(rmse)
}

// RecordCatalogRequest records a catalog API call outcome.
func RecordCatalogRequest(operation, result string) {
	CatalogRequests.WithLabelValues(operation, result).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// AddFlavorLookups adds lookup count deltas by origin.
func AddFlavorLookups(dataset, synthetic int64) {
	if dataset > 0 {
		FlavorLookups.WithLabelValues("dataset").Add(float64(dataset))
	}
	if synthetic > 0 {
		FlavorLookups.WithLabelValues("synthetic").Add(float64(synthetic))
	}
}

// SetFlavorCacheEntries publishes the flavor cache size.
func SetFlavorCacheEntries(entries int) {
	FlavorCacheEntries.Set(float64(entries))
}
