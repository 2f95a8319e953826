// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

// Package catalog supplies candidate recipes to the ranking pipeline.
//
// External recipe sources expose loosely structured records with varying
// field names (price vs price_approx, nutrition vs nutrition_info, tags vs
// diet_tags). That adaptation happens exactly once, at this boundary, via
// FromRecord; the rest of the system only ever sees the canonical Recipe
// type.
//
// The Client talks to a Foodoscope-style RecipeDB API behind a circuit
// breaker and a client-side rate limiter. Any upstream failure degrades to
// the built-in mock recipe set so the recommendation surface stays usable
// without a token or network access.
package catalog
