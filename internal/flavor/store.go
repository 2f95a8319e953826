// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package flavor

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Store resolves ingredient names to flavor vectors. It is safe for
// concurrent use. Construct one per process and share it; tests may
// construct isolated instances.
type Store struct {
	logger zerolog.Logger

	// Curated dataset, immutable after construction.
	dataset map[string]Vector

	// Memoization cache. Duplicate recompute of the same key by racing
	// callers is tolerated: the mapping is pure, so both writes carry the
	// identical value.
	mu    sync.RWMutex
	cache map[string]Vector

	datasetHits   atomic.Int64
	syntheticHits atomic.Int64
}

// Stats is a read-only snapshot of store counters for diagnostics.
type Stats struct {
	DatasetHits   int64 `json:"dataset_hits"`
	SyntheticHits int64 `json:"synthetic_hits"`
	CacheSize     int   `json:"cache_size"`
	DatasetSize   int   `json:"dataset_size"`
}

// NewStore creates a flavor vector store with an optional curated dataset.
// An empty datasetPath, a missing file, or a corrupt document all degrade to
// synthetic-only operation with a diagnostic log; construction never fails.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewStore(datasetPath string, logger zerolog.Logger) *Store {
	s := &Store{
		logger:  logger.With().Str("component", "flavor").Logger(),
		dataset: make(map[string]Vector),
		cache:   make(map[string]Vector),
	}

	if datasetPath == "" {
		return s
	}

	dataset, err := loadDataset(datasetPath)
	if err != nil {
		s.logger.Warn().
			Str("path", datasetPath).
			Err(err).
			Msg("curated flavor dataset unavailable, using synthetic vectors only")
		return s
	}

	s.dataset = dataset
	s.logger.Info().
		Str("path", datasetPath).
		Int("ingredients", len(dataset)).
		Msg("loaded curated flavor dataset")
	return s
}

// loadDataset reads a JSON document mapping lowercase ingredient names to
// 5-element numeric arrays.
func loadDataset(path string) (map[string]Vector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var raw map[string][]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	dataset := make(map[string]Vector, len(raw))
	for name, values := range raw {
		key := NormalizeKey(name)
		if key == "" {
			continue
		}
		dataset[key] = FromSlice(values)
	}
	return dataset, nil
}

// NormalizeKey canonicalizes an ingredient name for lookup.
func NormalizeKey(ingredient string) string {
	return strings.ToLower(strings.TrimSpace(ingredient))
}

// VectorFor returns the flavor vector for an ingredient. It is a total
// function: unknown ingredients get a deterministic synthetic vector and
// empty or whitespace-only names get the zero vector.
func (s *Store) VectorFor(ingredient string) Vector {
	key := NormalizeKey(ingredient)
	if key == "" {
		return Zero()
	}

	s.mu.RLock()
	v, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return v
	}

	if v, ok = s.dataset[key]; ok {
		s.datasetHits.Add(1)
	} else {
		v = syntheticVector(key)
		s.syntheticHits.Add(1)
	}

	s.mu.Lock()
	s.cache[key] = v
	s.mu.Unlock()

	return v
}

// RecipeFlavor aggregates the flavor vectors of a recipe's ingredients into
// a single unit-normalized vector. An empty ingredient list, or one whose
// contributions sum to zero, yields the zero vector.
func (s *Store) RecipeFlavor(ingredients []string) Vector {
	var total Vector
	for _, ing := range ingredients {
		total = total.Add(s.VectorFor(ing))
	}
	return total.Normalized()
}

// Stats returns a snapshot of store counters. Read-only, no behavioral
// effect.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	size := len(s.cache)
	s.mu.RUnlock()

	return Stats{
		DatasetHits:   s.datasetHits.Load(),
		SyntheticHits: s.syntheticHits.Load(),
		CacheSize:     size,
		DatasetSize:   len(s.dataset),
	}
}

// syntheticVector derives a deterministic unit vector from the normalized
// ingredient name. Each axis takes four bytes of the SHA-256 digest as a
// big-endian integer scaled to [0, 1], so the result depends only on the
// key and is identical across processes.
func syntheticVector(key string) Vector {
	digest := sha256.Sum256([]byte(key))

	var v Vector
	for i := 0; i < Dimensions; i++ {
		raw := binary.BigEndian.Uint32(digest[i*4 : i*4+4])
		v[i] = float64(raw) / float64(math.MaxUint32)
	}
	return v.Normalized()
}
