// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

// Package constraints applies hard admission rules to recommendation
// candidates before ranking. Everything here is a reject-or-keep decision;
// soft signals (budget closeness, calorie fit) belong to the feature
// schema, not to this package.
package constraints

import (
	"strings"

	"github.com/hunny0025/Codenova/internal/catalog"
	"github.com/hunny0025/Codenova/internal/profile"
)

// Nutrition admission limits for health conditions.
const (
	MaxSugarDiabetes = 10.0
	MaxSodiumHeart   = 500.0
)

// BudgetRejectFraction is the share of the daily budget a single recipe
// may cost before it is rejected outright. Below this, over-budget
// candidates are only penalized through the budget_distance feature.
const BudgetRejectFraction = 0.5

// Filter returns the candidates admissible for the given profile,
// preserving input order. It never fails; recipes with missing nutrition
// fields are treated as passing the health caps.
func Filter(user *profile.Profile, recipes []catalog.Recipe) []catalog.Recipe {
	admitted := make([]catalog.Recipe, 0, len(recipes))
	for i := range recipes {
		if Admits(user, &recipes[i]) {
			admitted = append(admitted, recipes[i])
		}
	}
	return admitted
}

// Admits reports whether a single recipe passes every hard constraint.
func Admits(user *profile.Profile, recipe *catalog.Recipe) bool {
	if !dietAdmits(user.DietType, recipe) {
		return false
	}
	if containsAllergen(user.Allergies, recipe.Ingredients) {
		return false
	}
	if user.DailyBudget > 0 && recipe.Price > user.DailyBudget*BudgetRejectFraction {
		return false
	}
	return healthAdmits(user.HealthConditions, recipe)
}

// dietAdmits requires restrictive diets (veg, vegan, jain) to appear in
// the recipe's tags. Other diet labels, non-veg included, admit anything.
func dietAdmits(diet string, recipe *catalog.Recipe) bool {
	switch strings.ToLower(diet) {
	case "veg", "vegan", "jain":
		return recipe.HasTag(strings.ToLower(diet))
	default:
		return true
	}
}

// containsAllergen matches allergen names as case-insensitive substrings
// of ingredient names. Ingredient identity is free text upstream, so
// substring match is the strongest check available.
func containsAllergen(allergies, ingredients []string) bool {
	for _, allergen := range allergies {
		a := strings.ToLower(strings.TrimSpace(allergen))
		if a == "" {
			continue
		}
		for _, ingredient := range ingredients {
			if strings.Contains(strings.ToLower(ingredient), a) {
				return true
			}
		}
	}
	return false
}

func healthAdmits(conditions []string, recipe *catalog.Recipe) bool {
	for _, condition := range conditions {
		switch strings.ToLower(condition) {
		case "diabetes":
			if recipe.Nutrition["sugar"] > MaxSugarDiabetes {
				return false
			}
		case "heart":
			if recipe.Nutrition["sodium"] > MaxSodiumHeart {
				return false
			}
		}
	}
	return true
}
