// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package profile

import (
	"strings"
	"sync"

	"github.com/hunny0025/Codenova/internal/flavor"
)

// Defaults applied when onboarding data omits a field.
const (
	DefaultDietType    = "non-veg"
	DefaultCalorieGoal = 2000.0
	DefaultBudget      = 30.0
)

// Profile is the per-user taste state consumed by the feature builder.
type Profile struct {
	// ID is the caller-supplied user identifier.
	ID string `json:"user_id"`

	// FlavorVector is the user's taste fingerprint. Learned from history
	// when InteractionCount > 0, otherwise taken from onboarding data.
	FlavorVector flavor.Vector `json:"flavor_vector"`

	// DietType is the diet label (veg, vegan, jain, non-veg).
	DietType string `json:"diet_type"`

	// CuisinePreference is the preferred cuisine, empty for none.
	CuisinePreference string `json:"cuisine_preference"`

	// CalorieGoal is the daily calorie target.
	CalorieGoal float64 `json:"calorie_goal"`

	// DailyBudget is the daily food budget.
	DailyBudget float64 `json:"daily_budget"`

	// Allergies lists allergen names matched against recipe ingredients.
	Allergies []string `json:"allergies"`

	// HealthConditions lists condition labels (diabetes, heart) that
	// tighten nutrition admission limits.
	HealthConditions []string `json:"health_conditions"`

	// LikedFlavorHistory is the ordered sequence of liked recipe flavor
	// vectors. FlavorVector is the mean of this history.
	LikedFlavorHistory []flavor.Vector `json:"liked_recipe_flavors"`

	// InteractionCount is the number of recorded positive interactions.
	InteractionCount int `json:"interaction_count"`
}

// HasHistory reports whether the profile has learned state.
func (p *Profile) HasHistory() bool {
	return len(p.LikedFlavorHistory) > 0
}

// clone returns a deep copy so callers never alias store-owned state.
func (p *Profile) clone() *Profile {
	out := *p
	out.Allergies = append([]string(nil), p.Allergies...)
	out.HealthConditions = append([]string(nil), p.HealthConditions...)
	out.LikedFlavorHistory = append([]flavor.Vector(nil), p.LikedFlavorHistory...)
	return &out
}

// Onboarding carries the request-level fields that can seed or override a
// profile. Pointer fields distinguish "absent" from zero values.
type Onboarding struct {
	FlavorVector      *flavor.Vector
	DietType          *string
	CuisinePreference *string
	CalorieGoal       *float64
	DailyBudget       *float64
	Allergies         []string
	HealthConditions  []string
}

// Store is an in-memory per-user profile store. Mutations for the same user
// are serialized through a per-user mutex; distinct users never contend.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	mu      sync.Mutex
	profile *Profile
}

// NewStore creates an empty profile store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// entryFor returns the entry for a user, creating it on first use.
func (s *Store) entryFor(userID string) *entry {
	s.mu.RLock()
	e, ok := s.entries[userID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[userID]; ok {
		return e
	}
	e = &entry{profile: newProfile(userID)}
	s.entries[userID] = e
	return e
}

func newProfile(userID string) *Profile {
	return &Profile{
		ID:          userID,
		DietType:    DefaultDietType,
		CalorieGoal: DefaultCalorieGoal,
		DailyBudget: DefaultBudget,
	}
}

// Get returns a copy of the stored profile, or nil when the user is
// unknown.
func (s *Store) Get(userID string) *Profile {
	s.mu.RLock()
	e, ok := s.entries[userID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile.clone()
}

// Count returns the number of known users.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Upsert creates or updates a profile wholesale from onboarding fields,
// creating the user on first sight. Fields absent from the onboarding data
// keep their current (or default) values.
func (s *Store) Upsert(userID string, data Onboarding) *Profile {
	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	applyOnboarding(e.profile, data, true)
	return e.profile.clone()
}

// RecordPositiveInteraction appends a liked recipe's flavor vector to the
// user's history and recomputes the learned flavor vector as the mean of
// the full history. The user is created on first interaction.
func (s *Store) RecordPositiveInteraction(userID string, recipeFlavor flavor.Vector) *Profile {
	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.profile
	p.LikedFlavorHistory = append(p.LikedFlavorHistory, recipeFlavor)
	p.InteractionCount++
	p.FlavorVector = flavor.Mean(p.LikedFlavorHistory)
	return p.clone()
}

// ProfileForRanking composes the profile used by a ranking request.
//
// With interaction history, the learned flavor vector is authoritative and
// a submitted flavor preference is ignored; only non-flavor fields (diet,
// budget, cuisine, calorie goal, allergies) are overridden per request.
// Without history, the cold-start path applies the onboarding data
// wholesale.
func (s *Store) ProfileForRanking(userID string, data Onboarding) *Profile {
	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	applyOnboarding(e.profile, data, !e.profile.HasHistory())
	return e.profile.clone()
}

// applyOnboarding merges onboarding fields into a profile. The flavor
// vector is only written when allowFlavor is set (cold start or explicit
// upsert).
func applyOnboarding(p *Profile, data Onboarding, allowFlavor bool) {
	if allowFlavor && data.FlavorVector != nil {
		p.FlavorVector = *data.FlavorVector
	}
	if data.DietType != nil {
		p.DietType = strings.ToLower(*data.DietType)
	}
	if data.CuisinePreference != nil {
		p.CuisinePreference = *data.CuisinePreference
	}
	if data.CalorieGoal != nil {
		p.CalorieGoal = *data.CalorieGoal
	}
	if data.DailyBudget != nil {
		p.DailyBudget = *data.DailyBudget
	}
	if data.Allergies != nil {
		p.Allergies = append([]string(nil), data.Allergies...)
	}
	if data.HealthConditions != nil {
		p.HealthConditions = nil
		for _, c := range data.HealthConditions {
			p.HealthConditions = append(p.HealthConditions, strings.ToLower(c))
		}
	}
}
