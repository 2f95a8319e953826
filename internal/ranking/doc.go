// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

// Package ranking serves recipe rankings from the current trained model.
//
// The serving state (model, version, registry snapshot) is an immutable
// value behind an atomic pointer: requests in flight keep the state they
// started with while Reload swaps in a new one, so a hot reload never
// produces a torn read. At most one model is resident per service.
//
// When no artifact is available the service ranks by cosine similarity
// between the user's flavor vector and each recipe's aggregate flavor.
// Responses always disclose which path produced them through the
// ranking_source metadata field.
//
// The package also owns the two on-disk documents shared with the
// offline trainer: the JSON model artifact (LinearModel) and the model
// registry (current pointer plus append-only history).
package ranking
