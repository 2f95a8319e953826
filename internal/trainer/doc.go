// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

// Package trainer fits the recipe relevance model offline.
//
// A training run joins the interaction log against a recipe catalog
// snapshot, rebuilds each row's features through the same builder the
// server uses, fits a ridge regression against the reward targets, and
// publishes a versioned artifact plus updated registry. The serving side
// picks the result up via hot reload; the two processes only share the
// filesystem.
//
// Synthetic bootstrap rows come from a fixed eight-user population whose
// profiles are reconstructed by id at training time. Live rows from
// unknown users fall back to a generic profile, trading per-user
// accuracy for never losing the sample.
package trainer
