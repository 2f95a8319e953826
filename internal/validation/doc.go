// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

// Package validation wraps go-playground/validator v10 with a
// thread-safe singleton instance and error translation to the shared
// API error format.
//
//	type RecommendRequest struct {
//	    UserID string `json:"user_id" validate:"required"`
//	    TopN   int    `json:"top_n" validate:"gte=0,lte=100"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // respond 400 with apiErr
//	}
package validation
