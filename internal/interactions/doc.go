// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

// Package interactions persists the user-recipe interaction stream that
// feeds the offline trainer.
//
// The log has two segments: a synthetic segment seeded once to bootstrap
// the first model, and a live segment appended by real traffic. A retrain
// consumes both and truncates the live segment afterwards, so CountLive
// doubles as the retrain-trigger signal.
package interactions
