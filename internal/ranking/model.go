// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package ranking

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/hunny0025/Codenova/internal/feature"
)

// Model scores feature vectors and exposes per-feature importances for
// explanation output.
type Model interface {
	// Score returns one relevance score per feature row.
	Score(features [][]float64) ([]float64, error)

	// FeatureImportances returns non-negative importances aligned with
	// feature.Names, normalized to sum to 1.
	FeatureImportances() []float64
}

// LinearModel is a trained ridge-regression scorer. It is the artifact
// format the trainer persists and the server loads.
type LinearModel struct {
	Type         string    `json:"type"`
	Weights      []float64 `json:"weights"`
	Intercept    float64   `json:"intercept"`
	FeatureNames []string  `json:"feature_names"`
}

// Score computes intercept + w·x for each row.
func (m *LinearModel) Score(features [][]float64) ([]float64, error) {
	scores := make([]float64, len(features))
	for i, row := range features {
		if len(row) != len(m.Weights) {
			return nil, fmt.Errorf("feature row %d has %d values, model expects %d", i, len(row), len(m.Weights))
		}
		s := m.Intercept
		for j, v := range row {
			s += m.Weights[j] * v
		}
		scores[i] = s
	}
	return scores, nil
}

// FeatureImportances derives importances as normalized absolute weights.
// A degenerate all-zero model yields uniform importances.
func (m *LinearModel) FeatureImportances() []float64 {
	importances := make([]float64, len(m.Weights))
	var total float64
	for i, w := range m.Weights {
		importances[i] = math.Abs(w)
		total += importances[i]
	}
	if total == 0 {
		for i := range importances {
			importances[i] = 1.0 / float64(len(importances))
		}
		return importances
	}
	for i := range importances {
		importances[i] /= total
	}
	return importances
}

// Validate checks that the artifact matches the current feature schema.
func (m *LinearModel) Validate() error {
	if len(m.Weights) != feature.Count {
		return fmt.Errorf("model has %d weights, feature schema has %d", len(m.Weights), feature.Count)
	}
	if len(m.FeatureNames) != 0 && len(m.FeatureNames) != feature.Count {
		return fmt.Errorf("model names %d features, schema has %d", len(m.FeatureNames), feature.Count)
	}
	return nil
}

// Save writes the artifact atomically (temp file plus rename).
func (m *LinearModel) Save(path string) error {
	payload, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create models dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o640); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename model: %w", err)
	}
	return nil
}

// LoadModel reads and validates a model artifact.
func LoadModel(path string) (*LinearModel, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var m LinearModel
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", filepath.Base(path), err)
	}
	return &m, nil
}
