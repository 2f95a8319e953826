// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

// Package mealplan turns ranked recommendations into a weekly plan and
// an aggregated grocery list.
package mealplan

import (
	"math/rand"
	"strings"

	"github.com/hunny0025/Codenova/internal/catalog"
	"github.com/hunny0025/Codenova/internal/constraints"
	"github.com/hunny0025/Codenova/internal/profile"
	"github.com/hunny0025/Codenova/internal/ranking"
)

// Plan layout.
const (
	MealsPerDay = 3
	PlanDays    = 7
	PoolSize    = MealsPerDay * PlanDays
)

var (
	dayNames  = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	mealNames = []string{"Breakfast", "Lunch", "Dinner"}
)

// Meal is one slot in a day.
type Meal struct {
	Meal   string         `json:"meal"`
	Recipe catalog.Recipe `json:"recipe"`
}

// Day is a named day of meals.
type Day struct {
	Day   string `json:"day"`
	Meals []Meal `json:"meals"`
}

// WeekPlan is the full 7-day plan in day order.
type WeekPlan struct {
	Days []Day `json:"days"`
}

// Planner builds weekly plans from the ranking service's output.
type Planner struct {
	ranker *ranking.Service
}

// NewPlanner creates a planner over the given ranking service.
func NewPlanner(ranker *ranking.Service) *Planner {
	return &Planner{ranker: ranker}
}

// WeeklyPlan ranks the admissible candidates, takes the top 21, and
// spreads them shuffled over 7 days of 3 meals. When fewer than 21
// candidates survive filtering the pool repeats, trading variety for a
// full week. An empty candidate set yields an empty plan.
//
// The shuffle is seeded so the same user and candidate set reproduce the
// same week.
func (p *Planner) WeeklyPlan(user *profile.Profile, candidates []catalog.Recipe, seed int64) WeekPlan {
	admissible := constraints.Filter(user, candidates)
	result := p.ranker.Rank(user, admissible, PoolSize)

	pool := make([]catalog.Recipe, 0, PoolSize)
	for _, r := range result.Ranked {
		pool = append(pool, r.Recipe)
	}
	if len(pool) == 0 {
		return WeekPlan{Days: []Day{}}
	}

	for len(pool) < PoolSize {
		pool = append(pool, pool[:min(len(pool), PoolSize-len(pool))]...)
	}
	rand.New(rand.NewSource(seed)).Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	plan := WeekPlan{Days: make([]Day, 0, PlanDays)}
	idx := 0
	for _, dayName := range dayNames {
		day := Day{Day: dayName, Meals: make([]Meal, 0, MealsPerDay)}
		for _, mealName := range mealNames {
			day.Meals = append(day.Meals, Meal{Meal: mealName, Recipe: pool[idx]})
			idx++
		}
		plan.Days = append(plan.Days, day)
	}
	return plan
}

// GroceryList aggregates a plan's ingredients into lowercased, trimmed
// name to occurrence count.
func GroceryList(plan WeekPlan) map[string]int {
	list := make(map[string]int)
	for _, day := range plan.Days {
		for _, meal := range day.Meals {
			for _, ingredient := range meal.Recipe.Ingredients {
				name := strings.ToLower(strings.TrimSpace(ingredient))
				if name == "" {
					continue
				}
				list[name]++
			}
		}
	}
	return list
}
