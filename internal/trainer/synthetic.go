// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package trainer

import (
	"math/rand"
	"strings"

	"github.com/hunny0025/Codenova/internal/catalog"
	"github.com/hunny0025/Codenova/internal/feature"
	"github.com/hunny0025/Codenova/internal/flavor"
	"github.com/hunny0025/Codenova/internal/interactions"
	"github.com/hunny0025/Codenova/internal/profile"
)

// syntheticUsers is the fixed bootstrap population. Interaction rows from
// these ids reconstruct their exact profiles at training time; any other
// id gets the generic fallback profile.
var syntheticUsers = []profile.Profile{
	{ID: "u1", DietType: "veg", CuisinePreference: "indian", FlavorVector: flavor.Vector{0.3, 0.8, 0.2, 0.1, 0.7}, CalorieGoal: 1800, DailyBudget: 20},
	{ID: "u2", DietType: "non-veg", CuisinePreference: "american", FlavorVector: flavor.Vector{0.5, 0.3, 0.1, 0.0, 0.9}, CalorieGoal: 2500, DailyBudget: 40},
	{ID: "u3", DietType: "vegan", CuisinePreference: "mediterranean", FlavorVector: flavor.Vector{0.7, 0.1, 0.5, 0.2, 0.3}, CalorieGoal: 2000, DailyBudget: 25},
	{ID: "u4", DietType: "veg", CuisinePreference: "italian", FlavorVector: flavor.Vector{0.4, 0.2, 0.3, 0.1, 0.8}, CalorieGoal: 2200, DailyBudget: 30},
	{ID: "u5", DietType: "non-veg", CuisinePreference: "thai", FlavorVector: flavor.Vector{0.2, 0.9, 0.4, 0.3, 0.6}, CalorieGoal: 2000, DailyBudget: 35},
	{ID: "u6", DietType: "veg", CuisinePreference: "chinese", FlavorVector: flavor.Vector{0.3, 0.5, 0.3, 0.1, 0.9}, CalorieGoal: 1900, DailyBudget: 22},
	{ID: "u7", DietType: "jain", CuisinePreference: "indian", FlavorVector: flavor.Vector{0.6, 0.4, 0.1, 0.0, 0.5}, CalorieGoal: 1700, DailyBudget: 18},
	{ID: "u8", DietType: "vegan", CuisinePreference: "chinese", FlavorVector: flavor.Vector{0.4, 0.6, 0.2, 0.1, 0.7}, CalorieGoal: 2100, DailyBudget: 28},
}

// SyntheticUsers returns the bootstrap population.
func SyntheticUsers() []profile.Profile {
	out := make([]profile.Profile, len(syntheticUsers))
	copy(out, syntheticUsers)
	return out
}

// ProfileFor resolves a logged user id to a training profile: the
// synthetic population by id, or the generic fallback for live users
// whose in-memory profile is gone by training time.
func ProfileFor(userID string) *profile.Profile {
	for i := range syntheticUsers {
		if syntheticUsers[i].ID == userID {
			p := syntheticUsers[i]
			return &p
		}
	}
	return &profile.Profile{
		ID:           userID,
		FlavorVector: flavor.Vector{0.5, 0.5, 0.5, 0.5, 0.5},
		DietType:     profile.DefaultDietType,
		CalorieGoal:  profile.DefaultCalorieGoal,
		DailyBudget:  profile.DefaultBudget,
	}
}

// Bootstrap generates one synthetic interaction per (user, recipe) pair
// and seeds the log's synthetic segment. Interaction probability rises
// with diet match, cuisine match, and flavor similarity; rewards are
// graded by similarity. Deterministic for a given seed.
func Bootstrap(log *interactions.Log, builder *feature.Builder, recipes []catalog.Recipe, seed int64) (int, error) {
	rng := rand.New(rand.NewSource(seed))
	weights := log.Weights()

	var records []interactions.Record
	for _, user := range syntheticUsers {
		for _, recipe := range recipes {
			sim := flavor.Cosine(user.FlavorVector, builder.RecipeFlavor(recipe.Ingredients))

			prob := 0.1
			if recipe.HasTag(user.DietType) {
				prob += 0.3
			}
			if user.CuisinePreference != "" && strings.EqualFold(user.CuisinePreference, recipe.Cuisine) {
				prob += 0.2
			}
			prob += sim * 0.3
			if prob > 0.95 {
				prob = 0.95
			}

			var action string
			var reward float64
			switch roll := rng.Float64(); {
			case roll < prob*0.6:
				action = interactions.ActionLike
				reward = weights[interactions.ActionLike] * (0.7 + 0.3*sim)
			case roll < prob*0.85:
				action = interactions.ActionSave
				reward = weights[interactions.ActionSave] * (0.6 + 0.4*sim)
			case roll < prob:
				action = interactions.ActionView
				reward = weights[interactions.ActionView] * (0.5 + 0.5*rng.Float64())
			default:
				// No engagement is still a training signal.
				action = interactions.ActionView
				reward = 0.05
			}

			records = append(records, interactions.Record{
				UserID:   user.ID,
				RecipeID: recipe.ID,
				Action:   action,
				Reward:   reward,
			})
		}
	}

	if err := log.SeedSynthetic(records); err != nil {
		return 0, err
	}
	return len(records), nil
}
