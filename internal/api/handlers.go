// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hunny0025/Codenova/internal/catalog"
	"github.com/hunny0025/Codenova/internal/constraints"
	"github.com/hunny0025/Codenova/internal/feature"
	"github.com/hunny0025/Codenova/internal/flavor"
	"github.com/hunny0025/Codenova/internal/interactions"
	"github.com/hunny0025/Codenova/internal/logging"
	"github.com/hunny0025/Codenova/internal/mealplan"
	"github.com/hunny0025/Codenova/internal/metrics"
	"github.com/hunny0025/Codenova/internal/profile"
	"github.com/hunny0025/Codenova/internal/ranking"
	"github.com/hunny0025/Codenova/internal/trainer"
)

// defaultCandidateLimit caps the live candidate fetch per request.
const defaultCandidateLimit = 100

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	profiles *profile.Store
	recipes  *catalog.Client
	ranker   *ranking.Service
	planner  *mealplan.Planner
	trainer  *trainer.Trainer
	log      *interactions.Log
	builder  *feature.Builder

	candidateLimit int
	startTime      time.Time
}

// NewHandler creates the handler set.
func NewHandler(
	profiles *profile.Store,
	recipes *catalog.Client,
	ranker *ranking.Service,
	planner *mealplan.Planner,
	tr *trainer.Trainer,
	log *interactions.Log,
	builder *feature.Builder,
) *Handler {
	return &Handler{
		profiles:       profiles,
		recipes:        recipes,
		ranker:         ranker,
		planner:        planner,
		trainer:        tr,
		log:            log,
		builder:        builder,
		candidateLimit: defaultCandidateLimit,
		startTime:      time.Now(),
	}
}

// OnboardingFields are the preference fields a client may submit with a
// ranking request or a profile update. Pointer fields distinguish
// "absent" from zero values so partial updates never clobber state.
type OnboardingFields struct {
	FlavorVector      []float64 `json:"flavor_vector" validate:"omitempty,len=5,dive,gte=0,lte=1"`
	DietType          *string   `json:"diet_type" validate:"omitempty,oneof=veg vegan jain non-veg"`
	CuisinePreference *string   `json:"cuisine_preference"`
	CalorieGoal       *float64  `json:"calorie_goal" validate:"omitempty,gt=0"`
	DailyBudget       *float64  `json:"daily_budget" validate:"omitempty,gt=0"`
	Allergies         []string  `json:"allergies"`
	HealthConditions  []string  `json:"health_conditions" validate:"omitempty,dive,oneof=diabetes heart"`
}

func (f *OnboardingFields) onboarding() profile.Onboarding {
	data := profile.Onboarding{
		DietType:          f.DietType,
		CuisinePreference: f.CuisinePreference,
		CalorieGoal:       f.CalorieGoal,
		DailyBudget:       f.DailyBudget,
		Allergies:         f.Allergies,
		HealthConditions:  f.HealthConditions,
	}
	if len(f.FlavorVector) == flavor.Dimensions {
		v := flavor.FromSlice(f.FlavorVector)
		data.FlavorVector = &v
	}
	return data
}

// RecommendRequest is the body of POST /api/v1/recommend.
type RecommendRequest struct {
	UserID string `json:"user_id" validate:"required"`
	TopN   int    `json:"top_n" validate:"gte=0,lte=100"`
	OnboardingFields
}

// RecommendResponse is the payload of POST /api/v1/recommend.
type RecommendResponse struct {
	UserID          string                 `json:"user_id"`
	Recommendations []ranking.RankedRecipe `json:"recommendations"`
	Metadata        ranking.Metadata       `json:"metadata"`
	CandidateCount  int                    `json:"candidate_count"`
}

// Recommend ranks admissible candidates for a user.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user := h.profiles.ProfileForRanking(req.UserID, req.onboarding())
	candidates := h.recipes.Candidates(r.Context(), user.DietType, h.candidateLimit)
	admissible := constraints.Filter(user, candidates)

	result := h.ranker.Rank(user, admissible, req.TopN)
	metrics.RecordRanking(result.Metadata.RankingSource, len(admissible),
		time.Duration(result.Metadata.RecommendationTimeMs*float64(time.Millisecond)))

	logger := logging.Ctx(r.Context())
	logger.Debug().
		Str("user_id", req.UserID).
		Int("candidates", len(admissible)).
		Str("source", result.Metadata.RankingSource).
		Msg("Ranked recommendations")

	respondJSON(w, r, http.StatusOK, RecommendResponse{
		UserID:          req.UserID,
		Recommendations: result.Ranked,
		Metadata:        result.Metadata,
		CandidateCount:  len(admissible),
	})
}

// InteractionRequest is the body of POST /api/v1/interactions.
type InteractionRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	RecipeID string `json:"recipe_id" validate:"required"`
	Action   string `json:"action" validate:"required"`
}

// InteractionResponse is the payload of POST /api/v1/interactions.
type InteractionResponse struct {
	Interaction        interactions.Record `json:"interaction"`
	ProfileUpdated     bool                `json:"profile_updated"`
	LiveInteractions   int64               `json:"live_interactions"`
	RetrainRecommended bool                `json:"retrain_recommended"`
}

// RecordInteraction appends a feedback event to the interaction log and,
// for positive actions, folds the recipe's flavor into the user profile.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	var req InteractionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rec, err := h.log.Append(req.UserID, req.RecipeID, req.Action)
	if err != nil {
		if errors.Is(err, interactions.ErrInvalidAction) {
			respondError(w, r, http.StatusBadRequest, "INVALID_ACTION", err.Error(), nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record interaction", err)
		return
	}

	profileUpdated := false
	if interactions.IsPositive(rec.Action) {
		if recipe := h.recipes.ByID(r.Context(), rec.RecipeID); recipe != nil {
			h.profiles.RecordPositiveInteraction(rec.UserID, h.builder.RecipeFlavor(recipe.Ingredients))
			profileUpdated = true
		} else {
			logger := logging.Ctx(r.Context())
			logger.Warn().
				Str("recipe_id", rec.RecipeID).
				Msg("Positive interaction for unknown recipe, profile not updated")
		}
	}

	liveCount := h.log.CountLive()
	metrics.RecordInteraction(rec.Action, liveCount)

	respondJSON(w, r, http.StatusCreated, InteractionResponse{
		Interaction:        rec,
		ProfileUpdated:     profileUpdated,
		LiveInteractions:   liveCount,
		RetrainRecommended: h.trainer.Recommended(),
	})
}

// GetProfile returns the stored profile for a user.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	p := h.profiles.Get(userID)
	if p == nil {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Unknown user", nil)
		return
	}
	respondJSON(w, r, http.StatusOK, p)
}

// UpdateProfile creates or updates a user profile from onboarding data.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	var req OnboardingFields
	if !decodeAndValidate(w, r, &req) {
		return
	}
	p := h.profiles.Upsert(userID, req.onboarding())
	respondJSON(w, r, http.StatusOK, p)
}

// ModelStatusResponse is the payload of GET /api/v1/model/status.
type ModelStatusResponse struct {
	ModelVersion       string           `json:"model_version"`
	RankingSource      string           `json:"ranking_source"`
	Registry           ranking.Registry `json:"registry"`
	LiveInteractions   int64            `json:"live_interactions"`
	RetrainThresholdOK bool             `json:"retrain_recommended"`
}

// ModelStatus reports the serving model and retraining state.
func (h *Handler) ModelStatus(w http.ResponseWriter, r *http.Request) {
	meta := h.ranker.Metadata()
	respondJSON(w, r, http.StatusOK, ModelStatusResponse{
		ModelVersion:       meta.ModelVersion,
		RankingSource:      meta.RankingSource,
		Registry:           h.ranker.Registry(),
		LiveInteractions:   h.log.CountLive(),
		RetrainThresholdOK: h.trainer.Recommended(),
	})
}

// ReloadModel re-reads the registry and hot-swaps the serving model.
func (h *Handler) ReloadModel(w http.ResponseWriter, r *http.Request) {
	err := h.ranker.Reload()
	meta := h.ranker.Metadata()
	metrics.RecordModelReload(meta.ModelVersion, err)

	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "MODEL_RELOAD_FAILED",
			"Model reload failed, previous model kept", err)
		return
	}

	logger := logging.Ctx(r.Context())
	logger.Info().
		Str("model_version", meta.ModelVersion).
		Str("ranking_source", meta.RankingSource).
		Msg("Model reloaded")

	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"model_version":  meta.ModelVersion,
		"ranking_source": meta.RankingSource,
	})
}

// MealPlanRequest is the body of POST /api/v1/mealplan.
type MealPlanRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Seed   int64  `json:"seed"`
}

// MealPlanResponse is the payload of POST /api/v1/mealplan.
type MealPlanResponse struct {
	UserID      string            `json:"user_id"`
	Plan        mealplan.WeekPlan `json:"plan"`
	GroceryList map[string]int    `json:"grocery_list"`
}

// MealPlan generates a seven-day plan with its grocery list.
func (h *Handler) MealPlan(w http.ResponseWriter, r *http.Request) {
	var req MealPlanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user := h.profiles.ProfileForRanking(req.UserID, profile.Onboarding{})
	candidates := h.recipes.Candidates(r.Context(), user.DietType, h.candidateLimit)
	plan := h.planner.WeeklyPlan(user, candidates, req.Seed)

	respondJSON(w, r, http.StatusOK, MealPlanResponse{
		UserID:      req.UserID,
		Plan:        plan,
		GroceryList: mealplan.GroceryList(plan),
	})
}

// GroceryResponse is the payload of POST /api/v1/grocery.
type GroceryResponse struct {
	UserID      string         `json:"user_id"`
	GroceryList map[string]int `json:"grocery_list"`
}

// Grocery aggregates the grocery list for a freshly generated weekly plan.
// The same seed yields the same plan, and therefore the same list, as
// POST /api/v1/mealplan.
func (h *Handler) Grocery(w http.ResponseWriter, r *http.Request) {
	var req MealPlanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user := h.profiles.ProfileForRanking(req.UserID, profile.Onboarding{})
	candidates := h.recipes.Candidates(r.Context(), user.DietType, h.candidateLimit)
	plan := h.planner.WeeklyPlan(user, candidates, req.Seed)

	respondJSON(w, r, http.StatusOK, GroceryResponse{
		UserID:      req.UserID,
		GroceryList: mealplan.GroceryList(plan),
	})
}

// Health reports overall service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	meta := h.ranker.Metadata()
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":            "ok",
		"model_version":     meta.ModelVersion,
		"ranking_source":    meta.RankingSource,
		"users":             h.profiles.Count(),
		"live_interactions": h.log.CountLive(),
		"uptime_seconds":    int64(time.Since(h.startTime).Seconds()),
	})
}

// HealthLive is the liveness probe.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe. Cosine fallback counts as ready;
// the service can always rank.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":       "ready",
		"model_loaded": h.ranker.Ready(),
	})
}
