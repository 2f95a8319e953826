// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package profile

import (
	"math"
	"sync"
	"testing"

	"github.com/hunny0025/Codenova/internal/flavor"
)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestGetUnknownUser(t *testing.T) {
	s := NewStore()
	if p := s.Get("nobody"); p != nil {
		t.Errorf("Get(nobody) = %+v, want nil", p)
	}
}

func TestUpsertDefaults(t *testing.T) {
	s := NewStore()

	p := s.Upsert("u1", Onboarding{})
	if p.DietType != DefaultDietType {
		t.Errorf("DietType = %q, want %q", p.DietType, DefaultDietType)
	}
	if p.CalorieGoal != DefaultCalorieGoal {
		t.Errorf("CalorieGoal = %f, want %f", p.CalorieGoal, DefaultCalorieGoal)
	}
	if p.DailyBudget != DefaultBudget {
		t.Errorf("DailyBudget = %f, want %f", p.DailyBudget, DefaultBudget)
	}
	if p.InteractionCount != 0 || p.HasHistory() {
		t.Error("fresh profile should have no history")
	}
}

func TestUpsertOverrides(t *testing.T) {
	s := NewStore()
	vec := flavor.Vector{0.8, 0.2, 0.1, 0.1, 0.5}

	p := s.Upsert("u1", Onboarding{
		FlavorVector: &vec,
		DietType:     strPtr("Veg"),
		DailyBudget:  floatPtr(25),
		Allergies:    []string{"peanut"},
	})

	if p.FlavorVector != vec {
		t.Errorf("FlavorVector = %v, want %v", p.FlavorVector, vec)
	}
	if p.DietType != "veg" {
		t.Errorf("DietType = %q, want lowercased veg", p.DietType)
	}
	if p.DailyBudget != 25 {
		t.Errorf("DailyBudget = %f, want 25", p.DailyBudget)
	}
	if len(p.Allergies) != 1 || p.Allergies[0] != "peanut" {
		t.Errorf("Allergies = %v", p.Allergies)
	}
}

func TestRecordPositiveInteractionMean(t *testing.T) {
	s := NewStore()

	p := s.RecordPositiveInteraction("test_u1", flavor.Vector{1, 0, 0, 0, 0})
	if p.InteractionCount != 1 {
		t.Errorf("InteractionCount = %d, want 1", p.InteractionCount)
	}
	if p.FlavorVector != (flavor.Vector{1, 0, 0, 0, 0}) {
		t.Errorf("FlavorVector = %v", p.FlavorVector)
	}

	p = s.RecordPositiveInteraction("test_u1", flavor.Vector{0, 1, 0, 0, 0})
	if p.InteractionCount != 2 {
		t.Errorf("InteractionCount = %d, want 2", p.InteractionCount)
	}
	want := flavor.Vector{0.5, 0.5, 0, 0, 0}
	for i := range want {
		if math.Abs(p.FlavorVector[i]-want[i]) > 1e-9 {
			t.Errorf("FlavorVector = %v, want %v", p.FlavorVector, want)
			break
		}
	}
}

func TestRecordPositiveInteractionMonotonicity(t *testing.T) {
	s := NewStore()
	vectors := []flavor.Vector{
		{1, 0, 0, 0, 0},
		{0, 1, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0.5, 0.5, 0, 0, 0},
	}

	var last *Profile
	for k, v := range vectors {
		last = s.RecordPositiveInteraction("u", v)
		if last.InteractionCount != k+1 {
			t.Fatalf("after %d interactions InteractionCount = %d", k+1, last.InteractionCount)
		}
	}

	want := flavor.Mean(vectors)
	for i := range want {
		if math.Abs(last.FlavorVector[i]-want[i]) > 1e-9 {
			t.Errorf("FlavorVector = %v, want mean %v", last.FlavorVector, want)
			break
		}
	}
}

func TestProfileForRankingColdStart(t *testing.T) {
	s := NewStore()
	vec := flavor.Vector{0.8, 0.2, 0.1, 0.1, 0.5}

	p := s.ProfileForRanking("newbie", Onboarding{
		FlavorVector: &vec,
		DietType:     strPtr("vegan"),
	})

	if p.FlavorVector != vec {
		t.Errorf("cold-start FlavorVector = %v, want onboarding vector", p.FlavorVector)
	}
	if p.DietType != "vegan" {
		t.Errorf("DietType = %q", p.DietType)
	}
}

func TestProfileForRankingOverridePrecedence(t *testing.T) {
	s := NewStore()

	// Build learned state.
	s.RecordPositiveInteraction("u1", flavor.Vector{1, 0, 0, 0, 0})
	s.RecordPositiveInteraction("u1", flavor.Vector{0, 1, 0, 0, 0})
	learned := s.Get("u1").FlavorVector

	// A submitted flavor vector must not displace the learned one, while
	// non-flavor fields are overridden.
	submitted := flavor.Vector{0.9, 0.9, 0.9, 0.9, 0.9}
	p := s.ProfileForRanking("u1", Onboarding{
		FlavorVector: &submitted,
		DailyBudget:  floatPtr(55),
	})

	if p.FlavorVector != learned {
		t.Errorf("FlavorVector = %v, want learned %v", p.FlavorVector, learned)
	}
	if p.DailyBudget != 55 {
		t.Errorf("DailyBudget = %f, want 55", p.DailyBudget)
	}
}

func TestConcurrentInteractionsSameUser(t *testing.T) {
	s := NewStore()
	const n = 100

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RecordPositiveInteraction("u1", flavor.Vector{1, 0, 0, 0, 0})
		}()
	}
	wg.Wait()

	p := s.Get("u1")
	if p.InteractionCount != n {
		t.Errorf("InteractionCount = %d, want %d (lost updates)", p.InteractionCount, n)
	}
	if len(p.LikedFlavorHistory) != n {
		t.Errorf("history length = %d, want %d", len(p.LikedFlavorHistory), n)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore()
	s.RecordPositiveInteraction("u1", flavor.Vector{1, 0, 0, 0, 0})

	p := s.Get("u1")
	p.Allergies = append(p.Allergies, "peanut")
	p.LikedFlavorHistory[0] = flavor.Vector{9, 9, 9, 9, 9}

	fresh := s.Get("u1")
	if len(fresh.Allergies) != 0 {
		t.Error("mutation of returned profile leaked into store")
	}
	if fresh.LikedFlavorHistory[0] != (flavor.Vector{1, 0, 0, 0, 0}) {
		t.Error("mutation of returned history leaked into store")
	}
}
