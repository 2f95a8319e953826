// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

/*
Package metrics provides Prometheus instrumentation for the
recommendation pipeline.

The package exposes metrics for:
  - Ranking latency and throughput, labeled by serving path
    (ml_model vs cosine_fallback)
  - Model lifecycle: serving version, hot-reload outcomes
  - Flavor store cache size and lookup origins
  - Interaction recording volume and the live count feeding the
    retrain trigger
  - Training run outcomes, duration, and held-out RMSE
  - Catalog API call outcomes, including mock fallbacks
  - HTTP endpoint latency and status codes

Metrics are served at /metrics in Prometheus text format via
promhttp.Handler.

Example PromQL:

	# Share of requests served by the fallback path
	sum(rate(rankings_total{source="cosine_fallback"}[5m]))
	/
	sum(rate(rankings_total[5m]))

	# Ranking p95 latency
	histogram_quantile(0.95, rate(ranking_duration_seconds_bucket[5m]))

	# Live interactions vs retrain threshold
	live_interactions

All recording functions are safe for concurrent use; labels are fixed
low-cardinality sets (no user or recipe ids).
*/
package metrics
