// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
)

// PricePerIngredient is the fallback price estimate applied when a source
// supplies no price: ingredient count times this constant.
const PricePerIngredient = 2.5

// Recipe is the canonical candidate record consumed by the ranking
// pipeline. All external source shapes are adapted into this type at the
// catalog boundary.
type Recipe struct {
	// ID is the source identifier, kept as a string because upstream
	// catalogs mix numeric and object IDs.
	ID string `json:"id"`

	// Title is the display name.
	Title string `json:"title"`

	// Ingredients is the raw ingredient name list.
	Ingredients []string `json:"ingredients"`

	// Nutrition maps nutrient name to amount. Missing nutrients default
	// to zero on read.
	Nutrition map[string]float64 `json:"nutrition"`

	// Cuisine is the cuisine label, empty when unknown.
	Cuisine string `json:"cuisine,omitempty"`

	// Price is the estimated cost of one serving. When the source supplies
	// none, it defaults to len(Ingredients) * PricePerIngredient.
	Price float64 `json:"price"`

	// Tags holds diet and meal labels (veg, vegan, jain, dinner, ...),
	// lowercased at adaptation time.
	Tags []string `json:"tags"`

	// ImageURL is optional presentation metadata.
	ImageURL string `json:"image_url,omitempty"`
}

// Calories returns the calorie count, zero when unknown.
func (r *Recipe) Calories() float64 {
	return r.Nutrition["calories"]
}

// HasTag reports whether the recipe carries the given tag,
// case-insensitively.
func (r *Recipe) HasTag(tag string) bool {
	tag = strings.ToLower(tag)
	for _, t := range r.Tags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

// FromRecord adapts a loosely structured source record into a canonical
// Recipe. It is the single place where fallback field names and defaults
// are applied:
//
//   - id:         "id", "recipe_id", "_id"
//   - title:      "title", "recipe_title" (default "Untitled")
//   - nutrition:  "nutrition", "nutritional_info", "nutrition_info",
//     or a bare "calories" field
//   - tags:       "tags", "diet_tags", plus "diet" and "continent" labels
//   - price:      "price", "price_approx", else ingredient-count estimate
func FromRecord(raw map[string]any) Recipe {
	r := Recipe{
		ID:          firstString(raw, "id", "recipe_id", "_id"),
		Title:       firstString(raw, "title", "recipe_title"),
		Ingredients: parseIngredients(raw["ingredients"]),
		Nutrition:   parseNutrition(raw),
		Cuisine:     strings.ToLower(firstString(raw, "cuisine")),
		Tags:        parseTags(raw),
		ImageURL:    firstString(raw, "image_url", "img_url"),
	}

	if r.Title == "" {
		r.Title = "Untitled"
	}

	if price, ok := firstNumber(raw, "price", "price_approx"); ok {
		r.Price = price
	} else {
		r.Price = float64(len(r.Ingredients)) * PricePerIngredient
	}

	return r
}

// parseIngredients accepts a list of strings or of objects carrying an
// "ingredient" field.
func parseIngredients(raw any) []string {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case map[string]any:
			if name, ok := v["ingredient"].(string); ok {
				out = append(out, name)
			} else {
				out = append(out, fmt.Sprintf("%v", v))
			}
		default:
			out = append(out, fmt.Sprintf("%v", v))
		}
	}
	return out
}

func parseNutrition(raw map[string]any) map[string]float64 {
	out := make(map[string]float64)

	for _, key := range []string{"nutrition", "nutritional_info", "nutrition_info"} {
		if m, ok := raw[key].(map[string]any); ok {
			for name, val := range m {
				if f, ok := toFloat(val); ok {
					out[strings.ToLower(name)] = f
				}
			}
			return out
		}
	}

	// Some sources expose a bare calories field.
	if f, ok := toFloat(raw["calories"]); ok {
		out["calories"] = f
	}
	return out
}

func parseTags(raw map[string]any) []string {
	var out []string

	for _, key := range []string{"tags", "diet_tags"} {
		if list, ok := raw[key].([]any); ok {
			for _, item := range list {
				if s, ok := item.(string); ok && s != "" {
					out = append(out, strings.ToLower(s))
				}
			}
			break
		}
	}

	// Regional sources label diets under "diet" and "continent".
	for _, key := range []string{"diet", "continent"} {
		if s, ok := raw[key].(string); ok && s != "" {
			out = append(out, strings.ToLower(s))
		}
	}

	return out
}

func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

func firstNumber(raw map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if f, ok := toFloat(raw[key]); ok {
			return f, true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// LoadSnapshot reads a recipe catalog snapshot document (a JSON array of
// source records) and adapts every entry. The offline trainer joins this
// snapshot against the interaction log.
func LoadSnapshot(path string) ([]Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}

	recipes := make([]Recipe, 0, len(raw))
	for _, record := range raw {
		recipes = append(recipes, FromRecord(record))
	}
	return recipes, nil
}
