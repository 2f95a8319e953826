// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/hunny0025/Codenova/internal/logging"
	"github.com/hunny0025/Codenova/internal/middleware"
	"github.com/hunny0025/Codenova/internal/models"
	"github.com/hunny0025/Codenova/internal/validation"
)

// respondJSON writes a success envelope with the given payload.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	writeEnvelope(w, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: middleware.GetRequestID(r.Context()),
		},
	})
}

// respondError writes an error envelope. err is logged but never leaked
// to the client; message is the client-facing text.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logger := logging.Ctx(r.Context())
		logger.Error().
			Str("code", code).
			Str("path", r.URL.Path).
			Err(err).
			Msg("API error")
	}

	writeEnvelope(w, status, &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: middleware.GetRequestID(r.Context()),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

func writeEnvelope(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// decodeAndValidate decodes the request body into dst and runs struct
// validation. On failure it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_JSON", "Request body is not valid JSON", err)
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		writeEnvelope(w, http.StatusBadRequest, &models.APIResponse{
			Status: "error",
			Metadata: models.Metadata{
				Timestamp: time.Now().UTC(),
				RequestID: middleware.GetRequestID(r.Context()),
			},
			Error: apiErr,
		})
		return false
	}
	return true
}
