// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/hunny0025/Codenova/internal/catalog"
	"github.com/hunny0025/Codenova/internal/feature"
	"github.com/hunny0025/Codenova/internal/flavor"
	"github.com/hunny0025/Codenova/internal/interactions"
	"github.com/hunny0025/Codenova/internal/mealplan"
	"github.com/hunny0025/Codenova/internal/models"
	"github.com/hunny0025/Codenova/internal/profile"
	"github.com/hunny0025/Codenova/internal/ranking"
	"github.com/hunny0025/Codenova/internal/trainer"
)

type apiEnv struct {
	handler  *Handler
	server   http.Handler
	profiles *profile.Store
	log      *interactions.Log
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	dir := t.TempDir()
	logger := zerolog.Nop()

	flavors := flavor.NewStore("", logger)
	builder := feature.NewBuilder(flavors)
	profiles := profile.NewStore()

	log, err := interactions.Open(filepath.Join(dir, "interactions"), interactions.DefaultWeights(), logger)
	if err != nil {
		t.Fatalf("open interaction log: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })

	recipes := catalog.NewClient(catalog.ClientConfig{}, logger)
	ranker := ranking.NewService(builder,
		filepath.Join(dir, "model_registry.json"),
		filepath.Join(dir, "models"), 5, logger)
	planner := mealplan.NewPlanner(ranker)
	tr := trainer.New(builder, log, trainer.DefaultConfig(dir), logger)

	handler := NewHandler(profiles, recipes, ranker, planner, tr, log, builder)
	router := NewRouter(handler, &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"*"},
		RateLimitDisabled:  true,
	})

	return &apiEnv{
		handler:  handler,
		server:   router.Setup(),
		profiles: profiles,
		log:      log,
	}
}

func (e *apiEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) models.APIResponse {
	t.Helper()
	raw := struct {
		Status   string           `json:"status"`
		Data     json.RawMessage  `json:"data"`
		Metadata models.Metadata  `json:"metadata"`
		Error    *models.APIError `json:"error"`
	}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode envelope: %v\n%s", err, rec.Body.String())
	}
	if data != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("decode data: %v\n%s", err, raw.Data)
		}
	}
	return models.APIResponse{Status: raw.Status, Metadata: raw.Metadata, Error: raw.Error}
}

func TestRecommendFallbackRanking(t *testing.T) {
	env := newAPIEnv(t)

	veg := "veg"
	rec := env.do(t, http.MethodPost, "/api/v1/recommend", RecommendRequest{
		UserID: "u1",
		TopN:   3,
		OnboardingFields: OnboardingFields{
			FlavorVector: []float64{0.8, 0.2, 0.1, 0.0, 0.4},
			DietType:     &veg,
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", rec.Code, rec.Body.String())
	}

	var resp RecommendResponse
	env2 := decodeEnvelope(t, rec, &resp)
	if env2.Status != "success" {
		t.Fatalf("envelope status = %q", env2.Status)
	}
	if len(resp.Recommendations) == 0 || len(resp.Recommendations) > 3 {
		t.Errorf("got %d recommendations, want 1..3", len(resp.Recommendations))
	}
	if resp.Metadata.RankingSource != ranking.SourceCosine {
		t.Errorf("ranking_source = %q, want %q", resp.Metadata.RankingSource, ranking.SourceCosine)
	}
	if resp.Metadata.ModelVersion != "none" {
		t.Errorf("model_version = %q, want none", resp.Metadata.ModelVersion)
	}
	for i := 1; i < len(resp.Recommendations); i++ {
		if resp.Recommendations[i].Score > resp.Recommendations[i-1].Score {
			t.Errorf("scores not descending at %d", i)
		}
	}
	// Diet constraint: a veg user never sees meat or fish recipes.
	for _, rr := range resp.Recommendations {
		if rr.Recipe.Title == "Grilled Salmon" || rr.Recipe.Title == "Chicken Curry" {
			t.Errorf("veg user recommended %q", rr.Recipe.Title)
		}
	}
}

func TestRecommendValidation(t *testing.T) {
	env := newAPIEnv(t)

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing user_id", RecommendRequest{TopN: 3}},
		{"bad diet", map[string]interface{}{"user_id": "u1", "diet_type": "carnivore"}},
		{"short flavor vector", map[string]interface{}{"user_id": "u1", "flavor_vector": []float64{0.5}}},
		{"flavor out of range", map[string]interface{}{"user_id": "u1", "flavor_vector": []float64{2, 0, 0, 0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/v1/recommend", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400\n%s", rec.Code, rec.Body.String())
			}
			env2 := decodeEnvelope(t, rec, nil)
			if env2.Error == nil || env2.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("error = %+v, want VALIDATION_ERROR", env2.Error)
			}
		})
	}
}

func TestRecommendMalformedJSON(t *testing.T) {
	env := newAPIEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env2 := decodeEnvelope(t, rec, nil)
	if env2.Error == nil || env2.Error.Code != "INVALID_JSON" {
		t.Errorf("error = %+v, want INVALID_JSON", env2.Error)
	}
}

func TestInteractionUpdatesProfile(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/interactions", InteractionRequest{
		UserID:   "u1",
		RecipeID: "1", // mock catalog recipe
		Action:   interactions.ActionLike,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d\n%s", rec.Code, rec.Body.String())
	}

	var resp InteractionResponse
	decodeEnvelope(t, rec, &resp)
	if !resp.ProfileUpdated {
		t.Error("like on known recipe should update the profile")
	}
	if resp.LiveInteractions != 1 {
		t.Errorf("live_interactions = %d, want 1", resp.LiveInteractions)
	}
	if resp.RetrainRecommended {
		t.Error("one interaction should not recommend retraining")
	}
	if resp.Interaction.Reward != 1.0 {
		t.Errorf("like reward = %f, want 1.0", resp.Interaction.Reward)
	}

	p := env.profiles.Get("u1")
	if p == nil || p.InteractionCount != 1 {
		t.Fatalf("profile after like = %+v, want 1 interaction", p)
	}
}

func TestInteractionViewDoesNotUpdateProfile(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/interactions", InteractionRequest{
		UserID:   "u2",
		RecipeID: "1",
		Action:   interactions.ActionView,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d\n%s", rec.Code, rec.Body.String())
	}

	var resp InteractionResponse
	decodeEnvelope(t, rec, &resp)
	if resp.ProfileUpdated {
		t.Error("view must not update the flavor profile")
	}
}

func TestInteractionInvalidAction(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/interactions", InteractionRequest{
		UserID:   "u1",
		RecipeID: "1",
		Action:   "devour",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400\n%s", rec.Code, rec.Body.String())
	}
	env2 := decodeEnvelope(t, rec, nil)
	if env2.Error == nil || env2.Error.Code != "INVALID_ACTION" {
		t.Errorf("error = %+v, want INVALID_ACTION", env2.Error)
	}
}

func TestProfileLifecycle(t *testing.T) {
	env := newAPIEnv(t)

	// Unknown user: 404.
	rec := env.do(t, http.MethodGet, "/api/v1/users/ghost/profile", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	// Onboard.
	vegan := "vegan"
	budget := 25.0
	rec = env.do(t, http.MethodPut, "/api/v1/users/u9/profile", OnboardingFields{
		FlavorVector: []float64{0.1, 0.9, 0.2, 0.0, 0.3},
		DietType:     &vegan,
		DailyBudget:  &budget,
		Allergies:    []string{"peanut"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", rec.Code, rec.Body.String())
	}

	// Read back.
	rec = env.do(t, http.MethodGet, "/api/v1/users/u9/profile", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var p profile.Profile
	decodeEnvelope(t, rec, &p)
	if p.DietType != "vegan" {
		t.Errorf("diet = %q, want vegan", p.DietType)
	}
	if p.DailyBudget != 25.0 {
		t.Errorf("budget = %f, want 25", p.DailyBudget)
	}
	if len(p.Allergies) != 1 || p.Allergies[0] != "peanut" {
		t.Errorf("allergies = %v", p.Allergies)
	}
}

func TestModelStatusBeforeTraining(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/model/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp ModelStatusResponse
	decodeEnvelope(t, rec, &resp)
	if resp.ModelVersion != "none" {
		t.Errorf("model_version = %q, want none", resp.ModelVersion)
	}
	if resp.RankingSource != ranking.SourceCosine {
		t.Errorf("ranking_source = %q, want %q", resp.RankingSource, ranking.SourceCosine)
	}
	if resp.RetrainThresholdOK {
		t.Error("retrain_recommended should be false with no interactions")
	}
}

func TestModelReloadWithoutRegistry(t *testing.T) {
	env := newAPIEnv(t)

	// No registry on disk: reload succeeds into fallback state.
	rec := env.do(t, http.MethodPost, "/api/v1/model/reload", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	decodeEnvelope(t, rec, &resp)
	if resp["model_version"] != "none" {
		t.Errorf("model_version = %v, want none", resp["model_version"])
	}
}

func TestMealPlanEndpoint(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/mealplan", MealPlanRequest{UserID: "u1", Seed: 7})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", rec.Code, rec.Body.String())
	}

	var resp MealPlanResponse
	decodeEnvelope(t, rec, &resp)
	if len(resp.Plan.Days) != mealplan.PlanDays {
		t.Fatalf("plan has %d days, want %d", len(resp.Plan.Days), mealplan.PlanDays)
	}
	for _, day := range resp.Plan.Days {
		if len(day.Meals) != mealplan.MealsPerDay {
			t.Errorf("day %s has %d meals, want %d", day.Day, len(day.Meals), mealplan.MealsPerDay)
		}
	}
	if len(resp.GroceryList) == 0 {
		t.Error("grocery list is empty")
	}
}

func TestGroceryMatchesMealPlan(t *testing.T) {
	env := newAPIEnv(t)

	planRec := env.do(t, http.MethodPost, "/api/v1/mealplan", MealPlanRequest{UserID: "u1", Seed: 7})
	if planRec.Code != http.StatusOK {
		t.Fatalf("mealplan status = %d\n%s", planRec.Code, planRec.Body.String())
	}
	var planResp MealPlanResponse
	decodeEnvelope(t, planRec, &planResp)

	grocRec := env.do(t, http.MethodPost, "/api/v1/grocery", MealPlanRequest{UserID: "u1", Seed: 7})
	if grocRec.Code != http.StatusOK {
		t.Fatalf("grocery status = %d\n%s", grocRec.Code, grocRec.Body.String())
	}
	var grocResp GroceryResponse
	decodeEnvelope(t, grocRec, &grocResp)

	if len(grocResp.GroceryList) == 0 {
		t.Fatal("grocery list is empty")
	}
	if len(grocResp.GroceryList) != len(planResp.GroceryList) {
		t.Errorf("grocery list size = %d, mealplan list size = %d", len(grocResp.GroceryList), len(planResp.GroceryList))
	}
	for ing, count := range planResp.GroceryList {
		if grocResp.GroceryList[ing] != count {
			t.Errorf("ingredient %q count = %d, want %d", ing, grocResp.GroceryList[ing], count)
		}
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newAPIEnv(t)

	for _, path := range []string{"/api/v1/health", "/api/v1/health/live", "/api/v1/health/ready"} {
		rec := env.do(t, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
		}
	}

	rec := env.do(t, http.MethodGet, "/api/v1/health", nil)
	var health map[string]interface{}
	decodeEnvelope(t, rec, &health)
	if health["status"] != "ok" {
		t.Errorf("health status = %v", health["status"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("go_goroutines")) {
		t.Error("/metrics missing standard collectors")
	}
}

func TestRequestIDHeader(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/health/live", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}

	// Upstream ID is honored.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	req.Header.Set("X-Request-ID", "upstream-123")
	rr := httptest.NewRecorder()
	env.server.ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-ID"); got != "upstream-123" {
		t.Errorf("X-Request-ID = %q, want upstream-123", got)
	}
}

func TestSecurityHeaders(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/model/status", nil)
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}
