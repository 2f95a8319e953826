// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFromRecord(t *testing.T) {
	tests := []struct {
		name   string
		raw    map[string]any
		verify func(t *testing.T, r Recipe)
	}{
		{
			name: "canonical fields",
			raw: map[string]any{
				"id":          "42",
				"title":       "Avocado Toast",
				"ingredients": []any{"avocado", "bread"},
				"nutrition":   map[string]any{"calories": 300.0, "sugar": 2.0},
				"price":       5.0,
				"tags":        []any{"veg", "breakfast"},
			},
			verify: func(t *testing.T, r Recipe) {
				if r.ID != "42" || r.Title != "Avocado Toast" {
					t.Errorf("identity fields = %q/%q", r.ID, r.Title)
				}
				if r.Calories() != 300 {
					t.Errorf("Calories() = %f, want 300", r.Calories())
				}
				if r.Price != 5.0 {
					t.Errorf("Price = %f, want 5.0", r.Price)
				}
			},
		},
		{
			name: "legacy field names",
			raw: map[string]any{
				"recipe_id":      "7",
				"recipe_title":   "Dal",
				"ingredients":    []any{"lentils", "turmeric"},
				"nutrition_info": map[string]any{"calories": 250.0},
				"price_approx":   6.5,
				"diet_tags":      []any{"VEG"},
			},
			verify: func(t *testing.T, r Recipe) {
				if r.ID != "7" || r.Title != "Dal" {
					t.Errorf("identity fields = %q/%q", r.ID, r.Title)
				}
				if r.Calories() != 250 {
					t.Errorf("Calories() = %f, want 250", r.Calories())
				}
				if r.Price != 6.5 {
					t.Errorf("Price = %f, want 6.5", r.Price)
				}
				if !r.HasTag("veg") {
					t.Error("expected lowercased veg tag")
				}
			},
		},
		{
			name: "ingredient objects",
			raw: map[string]any{
				"id": "9",
				"ingredients": []any{
					map[string]any{"ingredient": "rice"},
					"beans",
				},
			},
			verify: func(t *testing.T, r Recipe) {
				want := []string{"rice", "beans"}
				if !reflect.DeepEqual(r.Ingredients, want) {
					t.Errorf("Ingredients = %v, want %v", r.Ingredients, want)
				}
			},
		},
		{
			name: "missing price uses ingredient estimate",
			raw: map[string]any{
				"id":          "3",
				"ingredients": []any{"a", "b", "c", "d"},
			},
			verify: func(t *testing.T, r Recipe) {
				if r.Price != 4*PricePerIngredient {
					t.Errorf("Price = %f, want %f", r.Price, 4*PricePerIngredient)
				}
			},
		},
		{
			name: "bare calories and regional diet labels",
			raw: map[string]any{
				"_id":       "x1",
				"calories":  420.0,
				"diet":      "Vegetarian",
				"continent": "Asian",
			},
			verify: func(t *testing.T, r Recipe) {
				if r.ID != "x1" {
					t.Errorf("ID = %q, want x1", r.ID)
				}
				if r.Calories() != 420 {
					t.Errorf("Calories() = %f, want 420", r.Calories())
				}
				if !r.HasTag("vegetarian") || !r.HasTag("asian") {
					t.Errorf("Tags = %v, want vegetarian and asian", r.Tags)
				}
			},
		},
		{
			name: "empty record gets defaults",
			raw:  map[string]any{},
			verify: func(t *testing.T, r Recipe) {
				if r.Title != "Untitled" {
					t.Errorf("Title = %q, want Untitled", r.Title)
				}
				if r.Price != 0 {
					t.Errorf("Price = %f, want 0 for zero ingredients", r.Price)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.verify(t, FromRecord(tt.raw))
		})
	}
}

func TestLoadSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recipes_cache.json")
	doc := `[
		{"id": "1", "title": "A", "ingredients": ["x"], "price": 3.0},
		{"recipe_id": "2", "recipe_title": "B", "ingredients": ["y", "z"]}
	]`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	recipes, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("len = %d, want 2", len(recipes))
	}
	if recipes[0].ID != "1" || recipes[1].ID != "2" {
		t.Errorf("IDs = %q, %q", recipes[0].ID, recipes[1].ID)
	}
	if recipes[1].Price != 2*PricePerIngredient {
		t.Errorf("fallback price = %f, want %f", recipes[1].Price, 2*PricePerIngredient)
	}
}

func TestLoadSnapshotErrors(t *testing.T) {
	if _, err := LoadSnapshot("/nonexistent.json"); err == nil {
		t.Error("expected error for missing file")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{corrupt"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected error for corrupt document")
	}
}

func TestMockRecipes(t *testing.T) {
	recipes := MockRecipes()
	if len(recipes) != 7 {
		t.Fatalf("len = %d, want 7", len(recipes))
	}

	ids := make(map[string]bool)
	for _, r := range recipes {
		if ids[r.ID] {
			t.Errorf("duplicate id %q", r.ID)
		}
		ids[r.ID] = true
		if len(r.Ingredients) == 0 {
			t.Errorf("recipe %q has no ingredients", r.Title)
		}
		if r.Price <= 0 {
			t.Errorf("recipe %q has non-positive price", r.Title)
		}
	}

	// Mutating a returned slice must not leak into later calls.
	recipes[0].Tags[0] = "mutated"
	if MockRecipes()[0].Tags[0] == "mutated" {
		t.Error("MockRecipes shares state between calls")
	}
}
