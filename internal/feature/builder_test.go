// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package feature

import (
	"math"
	"testing"

	"github.com/hunny0025/Codenova/internal/catalog"
	"github.com/hunny0025/Codenova/internal/flavor"
	"github.com/hunny0025/Codenova/internal/profile"

	"github.com/rs/zerolog"
)

func newBuilder(t *testing.T) *Builder {
	t.Helper()
	return NewBuilder(flavor.NewStore("", zerolog.Nop()))
}

func testUser() *profile.Profile {
	return &profile.Profile{
		ID:                "u1",
		FlavorVector:      flavor.Vector{0.8, 0.2, 0.1, 0.1, 0.5},
		DietType:          "veg",
		CuisinePreference: "indian",
		CalorieGoal:       2000,
		DailyBudget:       30,
	}
}

func TestBuildSchemaStability(t *testing.T) {
	b := newBuilder(t)
	user := testUser()

	tests := []struct {
		name   string
		recipe catalog.Recipe
	}{
		{
			name: "fully populated recipe",
			recipe: catalog.Recipe{
				ID:          "1",
				Ingredients: []string{"rice", "lentils"},
				Nutrition:   map[string]float64{"calories": 500},
				Cuisine:     "indian",
				Price:       8,
				Tags:        []string{"veg"},
			},
		},
		{name: "empty recipe", recipe: catalog.Recipe{ID: "2"}},
		{
			name:   "no nutrition",
			recipe: catalog.Recipe{ID: "3", Ingredients: []string{"bread"}, Price: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := b.Build(user, &tt.recipe)
			if len(features) != Count {
				t.Fatalf("len = %d, want %d", len(features), Count)
			}
			if len(Names) != Count {
				t.Fatalf("Names length = %d, want %d", len(Names), Count)
			}
		})
	}
}

func TestBuildFlavorSimilarity(t *testing.T) {
	b := newBuilder(t)

	t.Run("zero user vector gives zero similarity", func(t *testing.T) {
		user := testUser()
		user.FlavorVector = flavor.Zero()
		recipe := catalog.Recipe{Ingredients: []string{"avocado"}}

		features := b.Build(user, &recipe)
		if features[0] != 0 {
			t.Errorf("flavor_similarity = %f, want 0 for zero user vector", features[0])
		}
	})

	t.Run("empty ingredient list gives zero similarity", func(t *testing.T) {
		features := b.Build(testUser(), &catalog.Recipe{})
		if features[0] != 0 {
			t.Errorf("flavor_similarity = %f, want 0 for empty recipe", features[0])
		}
	})

	t.Run("similarity within bounds", func(t *testing.T) {
		recipe := catalog.Recipe{Ingredients: []string{"avocado", "bread", "salt"}}
		features := b.Build(testUser(), &recipe)
		if features[0] < -1 || features[0] > 1 {
			t.Errorf("flavor_similarity = %f, out of [-1, 1]", features[0])
		}
	})
}

func TestBuildCalorieDistance(t *testing.T) {
	b := newBuilder(t)

	tests := []struct {
		name     string
		goal     float64
		calories float64
		want     float64
	}{
		{"exact match", 2000, 2000, 0},
		{"quarter off", 2000, 1500, 0.25},
		{"missing calories", 2000, 0, 1.0},
		{"zero goal clamps denominator", 0, 300, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := testUser()
			user.CalorieGoal = tt.goal
			recipe := catalog.Recipe{Nutrition: map[string]float64{"calories": tt.calories}}

			features := b.Build(user, &recipe)
			if math.Abs(features[1]-tt.want) > 1e-9 {
				t.Errorf("calorie_distance = %f, want %f", features[1], tt.want)
			}
		})
	}
}

func TestBuildCuisineAndDietMatch(t *testing.T) {
	b := newBuilder(t)

	tests := []struct {
		name        string
		preference  string
		diet        string
		recipe      catalog.Recipe
		wantCuisine float64
		wantDiet    float64
	}{
		{
			name:        "both match case-insensitively",
			preference:  "Indian",
			diet:        "VEG",
			recipe:      catalog.Recipe{Cuisine: "indian", Tags: []string{"veg"}},
			wantCuisine: 1, wantDiet: 1,
		},
		{
			name:       "empty preference never matches",
			preference: "",
			diet:       "veg",
			recipe:     catalog.Recipe{Cuisine: "", Tags: []string{"non-veg"}},
			wantCuisine: 0, wantDiet: 0,
		},
		{
			name:       "mismatches",
			preference: "thai",
			diet:       "vegan",
			recipe:     catalog.Recipe{Cuisine: "italian", Tags: []string{"veg"}},
			wantCuisine: 0, wantDiet: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := testUser()
			user.CuisinePreference = tt.preference
			user.DietType = tt.diet

			features := b.Build(user, &tt.recipe)
			if features[2] != tt.wantCuisine {
				t.Errorf("cuisine_match = %f, want %f", features[2], tt.wantCuisine)
			}
			if features[3] != tt.wantDiet {
				t.Errorf("diet_match = %f, want %f", features[3], tt.wantDiet)
			}
		})
	}
}

func TestBuildBudgetAndPrice(t *testing.T) {
	b := newBuilder(t)
	user := testUser() // daily budget 30 -> per-meal 10

	recipe := catalog.Recipe{
		Ingredients: []string{"a", "b", "c"},
		Price:       7.5,
	}
	features := b.Build(user, &recipe)

	if math.Abs(features[4]-0.25) > 1e-9 {
		t.Errorf("budget_distance = %f, want 0.25", features[4])
	}
	if features[5] != 3 {
		t.Errorf("ingredient_count = %f, want 3", features[5])
	}
	if features[6] != 7.5 {
		t.Errorf("price_estimate = %f, want 7.5", features[6])
	}
}

func TestBuildBatchRowOrder(t *testing.T) {
	b := newBuilder(t)
	user := testUser()
	recipes := catalog.MockRecipes()

	matrix := b.BuildBatch(user, recipes)
	if len(matrix) != len(recipes) {
		t.Fatalf("rows = %d, want %d", len(matrix), len(recipes))
	}
	for i := range recipes {
		single := b.Build(user, &recipes[i])
		for j := range single {
			if matrix[i][j] != single[j] {
				t.Errorf("row %d col %d = %f, want %f", i, j, matrix[i][j], single[j])
			}
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	b := newBuilder(t)
	user := testUser()
	recipe := catalog.MockRecipes()[0]

	a := b.Build(user, &recipe)
	c := b.Build(user, &recipe)
	for i := range a {
		if a[i] != c[i] {
			t.Errorf("feature %s differs between calls: %f vs %f", Names[i], a[i], c[i])
		}
	}
}
