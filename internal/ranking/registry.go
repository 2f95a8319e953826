// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package ranking

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
)

// HistoryEntry records one completed training run.
type HistoryEntry struct {
	Version   string  `json:"version"`
	TrainedOn string  `json:"trained_on"`
	Samples   int     `json:"samples"`
	RMSE      float64 `json:"rmse"`
}

// Registry is the model registry document. CurrentModel names the serving
// artifact; History is append-only, one entry per training run.
type Registry struct {
	CurrentModel string         `json:"current_model"`
	TrainedOn    string         `json:"trained_on,omitempty"`
	Samples      int            `json:"samples,omitempty"`
	RMSE         float64        `json:"rmse,omitempty"`
	FeaturesUsed int            `json:"features_used,omitempty"`
	History      []HistoryEntry `json:"history,omitempty"`
}

// NextVersion returns the artifact filename for the next training run.
// Versions are monotonic: one past the number of recorded runs.
func (r *Registry) NextVersion() string {
	return fmt.Sprintf("model_v%d.json", len(r.History)+1)
}

// ModelVersion is the version label of the current model, "none" when the
// registry is empty.
func (r *Registry) ModelVersion() string {
	if r.CurrentModel == "" {
		return "none"
	}
	return strings.TrimSuffix(r.CurrentModel, filepath.Ext(r.CurrentModel))
}

// LoadRegistry reads the registry document leniently: a missing or
// unreadable registry degrades to the empty document. The trainer uses
// this form so a first run starts from an empty history.
func LoadRegistry(path string) *Registry {
	r, err := ReadRegistry(path)
	if err != nil {
		return &Registry{}
	}
	return r
}

// ReadRegistry is the strict form used on hot reload. A missing file is
// the valid pre-training state and yields the empty document; a present
// but undecodable file is an error, so reload can keep the prior model.
func ReadRegistry(path string) (*Registry, error) {
	payload, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Registry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	var r Registry
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	return &r, nil
}

// Save writes the registry atomically.
func (r *Registry) Save(path string) error {
	payload, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create registry dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o640); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename registry: %w", err)
	}
	return nil
}
