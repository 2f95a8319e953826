// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

// Package feature derives the numeric feature vector for a (user, recipe)
// pair.
//
// The online ranking path and the offline trainer both build their inputs
// through this package, so the two always see identical feature semantics.
// Names fixes the name-to-index mapping that the ranking component's
// explanation output depends on; any schema change must version both sides
// together.
//
// Build is pure and total: it performs no I/O, never fails, and applies
// documented defaults for missing optional recipe fields. Feature vectors
// are computed fresh per pair and never cached, so they always reflect the
// user's current learned state.
package feature
