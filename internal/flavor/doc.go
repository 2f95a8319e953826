// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

// Package flavor provides the flavor vector store: a deterministic mapping
// from ingredient names to fixed-dimension taste vectors.
//
// Every ingredient resolves to a 5-axis vector (sweet, spicy/salty, sour,
// bitter, umami). Lookups go through three layers in order:
//
//  1. An in-memory memoization cache (write-once per key).
//  2. A curated dataset loaded from a JSON document at startup.
//  3. A synthetic generator that hashes the normalized ingredient name,
//     so unknown ingredients still get a stable, reproducible vector.
//
// The mapping is a pure function of the lowercased, trimmed ingredient name
// and the static dataset: the same string yields the bit-identical vector
// within a process and across restarts. Empty or whitespace-only names yield
// the zero vector without touching any layer.
package flavor
