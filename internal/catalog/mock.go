// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package catalog

// MockRecipes returns the built-in demo catalog used when no live source is
// configured or the upstream API is unavailable. Returned slices are fresh
// copies; callers may mutate them.
func MockRecipes() []Recipe {
	return []Recipe{
		{
			ID:          "1",
			Title:       "Avocado Toast",
			Ingredients: []string{"avocado", "bread", "salt", "pepper"},
			Nutrition:   map[string]float64{"calories": 300, "sugar": 2},
			Price:       5.0,
			Tags:        []string{"veg", "vegan", "breakfast"},
		},
		{
			ID:          "2",
			Title:       "Chicken Curry",
			Ingredients: []string{"chicken", "curry paste", "coconut milk"},
			Nutrition:   map[string]float64{"calories": 600, "sodium": 800},
			Price:       12.0,
			Tags:        []string{"non-veg", "dinner"},
		},
		{
			ID:          "3",
			Title:       "Vegan Salad",
			Ingredients: []string{"lettuce", "tofu", "tomato", "cucumber"},
			Nutrition:   map[string]float64{"calories": 200, "sugar": 3},
			Price:       8.0,
			Tags:        []string{"veg", "vegan", "jain", "lunch"},
		},
		{
			ID:          "4",
			Title:       "Grilled Salmon",
			Ingredients: []string{"salmon", "lemon", "herbs"},
			Nutrition:   map[string]float64{"calories": 500, "sugar": 0, "sodium": 100},
			Price:       15.0,
			Tags:        []string{"non-veg", "dinner"},
		},
		{
			ID:          "5",
			Title:       "Pasta Alfredo",
			Ingredients: []string{"pasta", "cream", "cheese"},
			Nutrition:   map[string]float64{"calories": 800, "sugar": 5, "sodium": 400},
			Price:       10.0,
			Tags:        []string{"veg", "dinner"},
		},
		{
			ID:          "6",
			Title:       "Fruit Bowl",
			Ingredients: []string{"apple", "banana", "berry"},
			Nutrition:   map[string]float64{"calories": 150, "sugar": 20},
			Price:       4.0,
			Tags:        []string{"veg", "vegan", "jain", "breakfast"},
		},
		{
			ID:          "7",
			Title:       "Vegetable Stir Fry",
			Ingredients: []string{"broccoli", "carrot", "soy sauce"},
			Nutrition:   map[string]float64{"calories": 350, "sodium": 600},
			Price:       7.0,
			Tags:        []string{"veg", "vegan", "dinner"},
		},
	}
}
