// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package interactions

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Supported interaction actions.
const (
	ActionView    = "view"
	ActionLike    = "like"
	ActionSave    = "save"
	ActionDislike = "dislike"
)

// ErrInvalidAction is returned when an action is outside the supported
// vocabulary. It is the one validation error callers are expected to
// branch on.
var ErrInvalidAction = errors.New("invalid action: must be one of view, like, save, dislike")

// DefaultWeights maps each action to its reward used as the training
// target. Dislike carries a negative reward so the model learns to
// demote, not just ignore.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		ActionView:    0.2,
		ActionSave:    0.8,
		ActionLike:    1.0,
		ActionDislike: -0.5,
	}
}

// IsPositive reports whether an action should update the user's learned
// flavor profile.
func IsPositive(action string) bool {
	return action == ActionLike || action == ActionSave
}

// Record is one logged user-recipe interaction.
type Record struct {
	UserID    string    `json:"user_id"`
	RecipeID  string    `json:"recipe_id"`
	Action    string    `json:"action"`
	Reward    float64   `json:"reward"`
	Timestamp time.Time `json:"timestamp"`
}

// Segment key prefixes. Synthetic rows bootstrap the first model; live
// rows accumulate from real traffic and are folded in (then truncated)
// by a retrain.
const (
	prefixSynthetic = "synthetic:"
	prefixLive      = "live:"
)

// Log is an append-only interaction log backed by BadgerDB. Rows are
// keyed by segment prefix plus a monotonic sequence, so iteration order
// is insertion order within each segment.
type Log struct {
	db      *badger.DB
	seq     *badger.Sequence
	weights map[string]float64
	logger  zerolog.Logger

	liveCount atomic.Int64
}

// Open opens (or creates) the interaction log at path. Weights may be
// nil, in which case DefaultWeights applies.
func Open(path string, weights map[string]float64, logger zerolog.Logger) (*Log, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open interaction log: %w", err)
	}

	seq, err := db.GetSequence([]byte("meta:seq"), 128)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open sequence: %w", err)
	}

	if weights == nil {
		weights = DefaultWeights()
	}

	l := &Log{
		db:      db,
		seq:     seq,
		weights: weights,
		logger:  logger.With().Str("component", "interactions").Logger(),
	}

	count, err := l.countPrefix(prefixLive)
	if err != nil {
		l.Close()
		return nil, err
	}
	l.liveCount.Store(count)

	l.logger.Info().
		Str("path", path).
		Int64("live_rows", count).
		Msg("Interaction log opened")
	return l, nil
}

// Close releases the sequence lease and the database.
func (l *Log) Close() error {
	if l.seq != nil {
		if err := l.seq.Release(); err != nil {
			l.logger.Warn().Err(err).Msg("Failed to release sequence")
		}
	}
	return l.db.Close()
}

// Weights returns the action-to-reward map in use.
func (l *Log) Weights() map[string]float64 {
	out := make(map[string]float64, len(l.weights))
	for k, v := range l.weights {
		out[k] = v
	}
	return out
}

// Append validates the action, derives its reward, and appends the
// interaction to the live segment. It returns the stored record.
func (l *Log) Append(userID, recipeID, action string) (Record, error) {
	weight, ok := l.weights[action]
	if !ok {
		return Record{}, fmt.Errorf("%w: got %q", ErrInvalidAction, action)
	}

	rec := Record{
		UserID:    userID,
		RecipeID:  recipeID,
		Action:    action,
		Reward:    weight,
		Timestamp: time.Now().UTC(),
	}
	if err := l.write(prefixLive, rec); err != nil {
		return Record{}, err
	}
	l.liveCount.Add(1)
	return rec, nil
}

// SeedSynthetic writes a batch of bootstrap rows into the synthetic
// segment. Rewards are stored as given; actions are not re-validated so
// generators can encode graded rewards.
func (l *Log) SeedSynthetic(records []Record) error {
	wb := l.db.NewWriteBatch()
	defer wb.Cancel()

	for _, rec := range records {
		num, err := l.seq.Next()
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		key := fmt.Sprintf("%s%016d", prefixSynthetic, num)
		if err := wb.Set([]byte(key), payload); err != nil {
			return fmt.Errorf("batch set: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush synthetic batch: %w", err)
	}

	l.logger.Info().Int("rows", len(records)).Msg("Seeded synthetic interactions")
	return nil
}

// CountLive returns the number of rows in the live segment.
func (l *Log) CountLive() int64 {
	return l.liveCount.Load()
}

// CountSynthetic returns the number of rows in the synthetic segment.
func (l *Log) CountSynthetic() (int64, error) {
	return l.countPrefix(prefixSynthetic)
}

// All returns every logged interaction, synthetic segment first, each
// segment in insertion order.
func (l *Log) All() ([]Record, error) {
	synthetic, err := l.scanPrefix(prefixSynthetic)
	if err != nil {
		return nil, err
	}
	live, err := l.scanPrefix(prefixLive)
	if err != nil {
		return nil, err
	}
	return append(synthetic, live...), nil
}

// TruncateLive deletes the live segment. Called after a successful
// retrain has folded the live rows into a new model.
func (l *Log) TruncateLive() error {
	keys, err := l.keysWithPrefix(prefixLive)
	if err != nil {
		return err
	}

	wb := l.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			return fmt.Errorf("batch delete: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush truncate: %w", err)
	}

	l.liveCount.Store(0)
	l.logger.Info().Int("rows", len(keys)).Msg("Truncated live interaction segment")
	return nil
}

func (l *Log) write(prefix string, rec Record) error {
	num, err := l.seq.Next()
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	key := fmt.Sprintf("%s%016d", prefix, num)

	err = l.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), payload)
	})
	if err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

func (l *Log) scanPrefix(prefix string) ([]Record, error) {
	var records []Record
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("decode record %s: %w", it.Item().Key(), err)
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (l *Log) countPrefix(prefix string) (int64, error) {
	var count int64
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

func (l *Log) keysWithPrefix(prefix string) ([][]byte, error) {
	var keys [][]byte
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(keys, func(i, j int) bool { return string(keys[i]) < string(keys[j]) })
	return keys, nil
}
