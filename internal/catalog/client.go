// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// ClientConfig configures the external recipe API client.
type ClientConfig struct {
	// BaseURL is the API root, e.g. the Foodoscope recipe2-api endpoint.
	BaseURL string

	// Token is the bearer token. Empty token disables live calls entirely.
	Token string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// RequestsPerSecond caps outbound call rate. Zero means 5 rps.
	RequestsPerSecond float64
}

// Client fetches candidate recipes from an external catalog API, degrading
// to the built-in mock set when the API is unreachable, unauthorized, or
// not configured. All public methods are total: they never return an error,
// matching the "missing data is never fatal" contract of the pipeline.
type Client struct {
	cfg     ClientConfig
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]Recipe]
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewClient creates a catalog client.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	settings := gobreaker.Settings{
		Name:    "recipe-catalog",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker[[]Recipe](settings),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger.With().Str("component", "catalog").Logger(),
	}
}

// IsLive reports whether the client is configured for live API calls.
func (c *Client) IsLive() bool {
	return c.cfg.Token != "" && c.cfg.BaseURL != ""
}

// Candidates returns the candidate set for ranking: live recipes filtered
// by diet when the API is configured, the mock catalog otherwise.
func (c *Client) Candidates(ctx context.Context, diet string, limit int) []Recipe {
	if c.IsLive() && diet != "" {
		if live := c.ByDiet(ctx, diet, limit); len(live) > 0 {
			return live
		}
	}
	return MockRecipes()
}

// ByTitle searches recipes by title.
func (c *Client) ByTitle(ctx context.Context, title string) []Recipe {
	params := url.Values{"title": {title}}
	if recipes := c.fetch(ctx, "/recipe-bytitle/recipeByTitle", params); len(recipes) > 0 {
		return recipes
	}
	return filterByTitle(MockRecipes(), title)
}

// ByDiet returns recipes matching a diet label.
func (c *Client) ByDiet(ctx context.Context, diet string, limit int) []Recipe {
	params := url.Values{"diet": {diet}, "limit": {strconv.Itoa(limit)}}
	if recipes := c.fetch(ctx, "/recipe-diet/recipe-diet", params); len(recipes) > 0 {
		return recipes
	}
	return filterByDiet(MockRecipes(), diet)
}

// ByCuisine returns recipes for a cuisine.
func (c *Client) ByCuisine(ctx context.Context, cuisine string) []Recipe {
	params := url.Values{"cuisine": {cuisine}}
	if recipes := c.fetch(ctx, "/recipe-by-cuisine/recipe-by-cuisine", params); len(recipes) > 0 {
		return recipes
	}
	return MockRecipes()
}

// ByID returns a single recipe, or nil when not found anywhere.
func (c *Client) ByID(ctx context.Context, id string) *Recipe {
	params := url.Values{"id": {id}}
	if recipes := c.fetch(ctx, "/recipe-byid", params); len(recipes) > 0 {
		return &recipes[0]
	}
	for _, r := range MockRecipes() {
		if r.ID == id {
			return &r
		}
	}
	return nil
}

// fetch performs a guarded API call. Any failure (not configured, rate
// limited, breaker open, HTTP error, malformed body) returns nil and is
// logged as a diagnostic only.
func (c *Client) fetch(ctx context.Context, path string, params url.Values) []Recipe {
	if !c.IsLive() {
		return nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil
	}

	recipes, err := c.breaker.Execute(func() ([]Recipe, error) {
		return c.doRequest(ctx, path, params)
	})
	if err != nil {
		c.logger.Warn().
			Str("path", path).
			Err(err).
			Msg("catalog API call failed, falling back to mock data")
		return nil
	}
	return recipes
}

func (c *Client) doRequest(ctx context.Context, path string, params url.Values) ([]Recipe, error) {
	endpoint := c.cfg.BaseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("catalog token rejected")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return parseResponse(body)
}

// parseResponse accepts either a bare array of records or an object
// wrapping the list under results/recipes/data.
func parseResponse(body []byte) ([]Recipe, error) {
	var asList []map[string]any
	if err := json.Unmarshal(body, &asList); err == nil {
		return adaptAll(asList), nil
	}

	var asObject map[string]any
	if err := json.Unmarshal(body, &asObject); err != nil {
		return nil, fmt.Errorf("parse catalog response: %w", err)
	}

	for _, key := range []string{"results", "recipes", "data"} {
		if list, ok := asObject[key].([]any); ok {
			records := make([]map[string]any, 0, len(list))
			for _, item := range list {
				if m, ok := item.(map[string]any); ok {
					records = append(records, m)
				}
			}
			return adaptAll(records), nil
		}
	}

	// Single recipe object.
	return []Recipe{FromRecord(asObject)}, nil
}

func adaptAll(records []map[string]any) []Recipe {
	recipes := make([]Recipe, 0, len(records))
	for _, record := range records {
		recipes = append(recipes, FromRecord(record))
	}
	return recipes
}

func filterByTitle(recipes []Recipe, title string) []Recipe {
	if title == "" {
		return recipes
	}
	var out []Recipe
	for _, r := range recipes {
		if containsFold(r.Title, title) {
			out = append(out, r)
		}
	}
	return out
}

func filterByDiet(recipes []Recipe, diet string) []Recipe {
	if diet == "" {
		return recipes
	}
	var out []Recipe
	for _, r := range recipes {
		if r.HasTag(diet) {
			out = append(out, r)
		}
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
