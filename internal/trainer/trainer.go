// Codenova - FlavorSense Recipe Recommendation Engine
// Copyright 2026 hunny0025
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hunny0025/Codenova

package trainer

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/hunny0025/Codenova/internal/catalog"
	"github.com/hunny0025/Codenova/internal/feature"
	"github.com/hunny0025/Codenova/internal/interactions"
	"github.com/hunny0025/Codenova/internal/ranking"
)

// Training errors callers branch on.
var (
	// ErrInsufficientData means the joined training set is too small to
	// fit and hold out a test split.
	ErrInsufficientData = errors.New("insufficient training data")

	// ErrAlreadyRunning means another training run holds the lock file.
	ErrAlreadyRunning = errors.New("training already in progress")
)

// MinSamples is the smallest joined training set worth fitting.
const MinSamples = 10

// Config holds training parameters.
type Config struct {
	// RegistryPath is the model registry JSON document.
	RegistryPath string

	// ModelsDir receives versioned model artifacts.
	ModelsDir string

	// LockPath guards against concurrent training runs.
	LockPath string

	// TestFraction is the held-out share for RMSE evaluation.
	TestFraction float64

	// Seed fixes the train/test shuffle, so a run is reproducible.
	Seed int64

	// Lambda is the ridge regularization strength.
	Lambda float64

	// RetrainThreshold is the live-interaction count above which a
	// retrain is recommended.
	RetrainThreshold int64
}

// DefaultConfig returns sensible training defaults rooted at dataDir.
func DefaultConfig(dataDir string) Config {
	return Config{
		RegistryPath:     filepath.Join(dataDir, "model_registry.json"),
		ModelsDir:        filepath.Join(dataDir, "models"),
		LockPath:         filepath.Join(dataDir, "training.lock"),
		TestFraction:     0.2,
		Seed:             42,
		Lambda:           1.0,
		RetrainThreshold: 50,
	}
}

// Trainer fits a ridge-regression scorer from the interaction log and a
// recipe catalog snapshot, then publishes artifact plus registry for the
// serving side to hot-reload.
type Trainer struct {
	builder *feature.Builder
	log     *interactions.Log
	cfg     Config
	logger  zerolog.Logger
}

// New creates a trainer.
func New(builder *feature.Builder, log *interactions.Log, cfg Config, logger zerolog.Logger) *Trainer {
	return &Trainer{
		builder: builder,
		log:     log,
		cfg:     cfg,
		logger:  logger.With().Str("component", "trainer").Logger(),
	}
}

// Recommended reports whether enough live interactions have accumulated
// to justify a retrain. Advisory only; nothing retrains automatically.
func (t *Trainer) Recommended() bool {
	return t.log.CountLive() >= t.cfg.RetrainThreshold
}

// LiveCount returns the current live-interaction count.
func (t *Trainer) LiveCount() int64 {
	return t.log.CountLive()
}

// Train runs one full training pass against the given catalog snapshot:
// join log rows to recipes and profiles, fit, evaluate held-out RMSE,
// persist the versioned artifact, update the registry, and truncate the
// live segment that has now been folded in.
//
// At most one run executes at a time, enforced by an exclusive lock
// file. Rows referencing unknown recipes are skipped, never fatal.
func (t *Trainer) Train(recipes []catalog.Recipe) (ranking.HistoryEntry, error) {
	unlock, err := t.acquireLock()
	if err != nil {
		return ranking.HistoryEntry{}, err
	}
	defer unlock()

	rows, err := t.log.All()
	if err != nil {
		return ranking.HistoryEntry{}, fmt.Errorf("read interaction log: %w", err)
	}

	byID := make(map[string]*catalog.Recipe, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = &recipes[i]
	}

	var features [][]float64
	var targets []float64
	skipped := 0
	for _, row := range rows {
		recipe, ok := byID[row.RecipeID]
		if !ok {
			skipped++
			continue
		}
		features = append(features, t.builder.Build(ProfileFor(row.UserID), recipe))
		targets = append(targets, row.Reward)
	}

	t.logger.Info().
		Int("rows", len(rows)).
		Int("samples", len(features)).
		Int("skipped", skipped).
		Msg("Training set assembled")

	if len(features) < MinSamples {
		return ranking.HistoryEntry{}, fmt.Errorf("%w: %d samples, need %d", ErrInsufficientData, len(features), MinSamples)
	}

	trainX, trainY, testX, testY := split(features, targets, t.cfg.TestFraction, t.cfg.Seed)

	model, err := fitRidge(trainX, trainY, t.cfg.Lambda)
	if err != nil {
		return ranking.HistoryEntry{}, fmt.Errorf("fit model: %w", err)
	}

	rmse, err := evaluate(model, testX, testY)
	if err != nil {
		return ranking.HistoryEntry{}, fmt.Errorf("evaluate model: %w", err)
	}

	registry := ranking.LoadRegistry(t.cfg.RegistryPath)
	version := registry.NextVersion()

	if err := model.Save(filepath.Join(t.cfg.ModelsDir, version)); err != nil {
		return ranking.HistoryEntry{}, err
	}

	entry := ranking.HistoryEntry{
		Version:   version,
		TrainedOn: time.Now().Format("2006-01-02"),
		Samples:   len(features),
		RMSE:      rmse,
	}
	registry.History = append(registry.History, entry)
	registry.CurrentModel = version
	registry.TrainedOn = entry.TrainedOn
	registry.Samples = entry.Samples
	registry.RMSE = entry.RMSE
	registry.FeaturesUsed = feature.Count
	if err := registry.Save(t.cfg.RegistryPath); err != nil {
		return ranking.HistoryEntry{}, err
	}

	if err := t.log.TruncateLive(); err != nil {
		// The model is already published; a leftover live segment only
		// means those rows get trained on twice next run.
		t.logger.Warn().Err(err).Msg("Failed to truncate live segment")
	}

	t.logger.Info().
		Str("version", version).
		Int("samples", entry.Samples).
		Float64("rmse", rmse).
		Msg("Training complete")
	return entry, nil
}

// acquireLock takes the single-instance training lock. A stale lock from
// a crashed run must be removed manually; the file records its owner pid
// to make that diagnosable.
func (t *Trainer) acquireLock() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(t.cfg.LockPath), 0o750); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	f, err := os.OpenFile(t.cfg.LockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: lock file %s exists", ErrAlreadyRunning, t.cfg.LockPath)
		}
		return nil, fmt.Errorf("acquire training lock: %w", err)
	}
	fmt.Fprintf(f, "%d\n", os.Getpid())
	f.Close()

	return func() {
		if err := os.Remove(t.cfg.LockPath); err != nil {
			t.logger.Warn().Err(err).Msg("Failed to remove training lock")
		}
	}, nil
}

// split shuffles deterministically and carves off the test fraction,
// keeping at least one sample on each side.
func split(features [][]float64, targets []float64, testFraction float64, seed int64) (trainX [][]float64, trainY []float64, testX [][]float64, testY []float64) {
	n := len(features)
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	testN := int(float64(n) * testFraction)
	if testN < 1 {
		testN = 1
	}
	if testN >= n {
		testN = n - 1
	}

	for i, idx := range perm {
		if i < testN {
			testX = append(testX, features[idx])
			testY = append(testY, targets[idx])
		} else {
			trainX = append(trainX, features[idx])
			trainY = append(trainY, targets[idx])
		}
	}
	return trainX, trainY, testX, testY
}

// fitRidge solves the regularized normal equations
// (X'X + lambda*I) w = X'y with an unpenalized intercept column.
func fitRidge(features [][]float64, targets []float64, lambda float64) (*ranking.LinearModel, error) {
	n := len(features)
	d := feature.Count
	cols := d + 1 // intercept last

	data := make([]float64, n*cols)
	for i, row := range features {
		copy(data[i*cols:], row)
		data[i*cols+d] = 1.0
	}
	x := mat.NewDense(n, cols, data)
	y := mat.NewVecDense(n, append([]float64(nil), targets...))

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	for j := 0; j < d; j++ {
		xtx.Set(j, j, xtx.At(j, j)+lambda)
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var w mat.VecDense
	if err := w.SolveVec(&xtx, &xty); err != nil {
		return nil, fmt.Errorf("solve normal equations: %w", err)
	}

	weights := make([]float64, d)
	for j := 0; j < d; j++ {
		weights[j] = w.AtVec(j)
	}

	return &ranking.LinearModel{
		Type:         "ridge",
		Weights:      weights,
		Intercept:    w.AtVec(d),
		FeatureNames: feature.Names,
	}, nil
}

// evaluate computes held-out RMSE, rounded to 4 places the way the
// registry reports it.
func evaluate(model *ranking.LinearModel, testX [][]float64, testY []float64) (float64, error) {
	preds, err := model.Score(testX)
	if err != nil {
		return 0, err
	}

	var sse float64
	for i := range preds {
		d := preds[i] - testY[i]
		sse += d * d
	}
	rmse := math.Sqrt(sse / float64(len(preds)))
	return math.Round(rmse*1e4) / 1e4, nil
}
