// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

// Package api provides the HTTP surface of the recommendation engine.
//
// Routes are served under /api/v1 with a shared envelope (see the
// models package): recommendation ranking, interaction feedback,
// profile onboarding, weekly meal planning, and model lifecycle
// endpoints, plus health probes and Prometheus metrics at /metrics.
package api
