// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

// Package profile holds per-user taste state and evolves it from positive
// interactions.
//
// A user's flavor vector is learned as the arithmetic mean of every liked
// recipe's flavor vector, with no decay or recency weighting. That is a
// deliberate, documented limitation of the learning rule, not an oversight.
//
// Once a user has interaction history, the learned flavor vector is
// authoritative: ranking requests may override diet, budget, cuisine, and
// calorie goal per request, but never the flavor vector. Users without
// history (cold start) are built wholesale from submitted onboarding data.
//
// Profiles live in memory for the lifetime of the process. Mutation is
// serialized per user id so concurrent interactions never lose history
// entries.
package profile
