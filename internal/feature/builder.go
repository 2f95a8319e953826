// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package feature

import (
	"strings"

	"github.com/hunny0025/Codenova/internal/catalog"
	"github.com/hunny0025/Codenova/internal/flavor"
	"github.com/hunny0025/Codenova/internal/profile"
)

// Names is the fixed, ordered feature schema. Index positions are part of
// the serving/training contract.
var Names = []string{
	"flavor_similarity",
	"calorie_distance",
	"cuisine_match",
	"diet_match",
	"budget_distance",
	"ingredient_count",
	"price_estimate",
}

// Count is the number of features in the schema.
var Count = len(Names)

// MealsPerDay divides the daily budget into a per-meal budget.
const MealsPerDay = 3.0

// Builder derives feature vectors from user and recipe state. It holds a
// reference to the flavor store for recipe flavor aggregation.
type Builder struct {
	flavors *flavor.Store
}

// NewBuilder creates a feature builder backed by the given flavor store.
func NewBuilder(flavors *flavor.Store) *Builder {
	return &Builder{flavors: flavors}
}

// Build derives the feature vector for one (user, recipe) pair:
//
//	0 flavor_similarity  cosine(user flavor, recipe flavor); 0 when either
//	                     vector has zero norm
//	1 calorie_distance   |goal - calories| / max(goal, 1)
//	2 cuisine_match      1 iff non-empty preference equals recipe cuisine,
//	                     case-insensitively
//	3 diet_match         1 iff diet type appears in recipe tags
//	4 budget_distance    |budget/3 - price| / max(budget/3, 1)
//	5 ingredient_count   raw ingredient count
//	6 price_estimate     recipe price (catalog already defaults missing
//	                     prices to count * 2.5)
func (b *Builder) Build(user *profile.Profile, recipe *catalog.Recipe) []float64 {
	recipeFlavor := b.flavors.RecipeFlavor(recipe.Ingredients)

	features := make([]float64, Count)
	features[0] = flavor.Cosine(user.FlavorVector, recipeFlavor)
	features[1] = normalizedDistance(user.CalorieGoal, recipe.Calories())
	features[2] = cuisineMatch(user.CuisinePreference, recipe.Cuisine)
	features[3] = dietMatch(user.DietType, recipe)
	features[4] = normalizedDistance(user.DailyBudget/MealsPerDay, recipe.Price)
	features[5] = float64(len(recipe.Ingredients))
	features[6] = recipe.Price
	return features
}

// BuildBatch derives the feature matrix for one user against many
// candidates. Row order matches the candidate order.
func (b *Builder) BuildBatch(user *profile.Profile, recipes []catalog.Recipe) [][]float64 {
	matrix := make([][]float64, len(recipes))
	for i := range recipes {
		matrix[i] = b.Build(user, &recipes[i])
	}
	return matrix
}

// RecipeFlavor exposes the aggregate recipe flavor used by feature 0, for
// callers that need the vector itself (interaction recording, fallback
// ranking).
func (b *Builder) RecipeFlavor(ingredients []string) flavor.Vector {
	return b.flavors.RecipeFlavor(ingredients)
}

// normalizedDistance is |target - actual| scaled by the target, with the
// denominator clamped to 1 so small targets don't explode the feature.
func normalizedDistance(target, actual float64) float64 {
	denom := target
	if denom < 1.0 {
		denom = 1.0
	}
	d := target - actual
	if d < 0 {
		d = -d
	}
	return d / denom
}

func cuisineMatch(preference, cuisine string) float64 {
	if preference == "" {
		return 0.0
	}
	if strings.EqualFold(preference, cuisine) {
		return 1.0
	}
	return 0.0
}

func dietMatch(diet string, recipe *catalog.Recipe) float64 {
	if diet == "" {
		return 0.0
	}
	if recipe.HasTag(strings.ToLower(diet)) {
		return 1.0
	}
	return 0.0
}
