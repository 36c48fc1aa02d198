// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package trainer orchestrates the model training pipeline: dataset
// assembly, seeded train/test split, fitting, evaluation, and artifact
// persistence, with a metrics report written per run.
package trainer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/wayfarer/internal/budget"
	"github.com/tomtom215/wayfarer/internal/features"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/ml"
	"github.com/tomtom215/wayfarer/internal/ml/storage"
	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/ranking"
)

// DefaultTestFraction is the held-out share for evaluation.
const DefaultTestFraction = 0.2

// splitSeed fixes the train/test partition across runs.
const splitSeed = 42

// Synthetic bootstrap dataset sizes, used when no real data is wired.
const (
	syntheticPlaceCount       = 1000
	syntheticInteractionCount = 5000
	syntheticTripCount        = 2000
)

// Report captures one training run for operators and the metrics API.
type Report struct {
	Model          string      `json:"model_type"`
	Algorithm      string      `json:"algorithm"`
	Train          EvalMetrics `json:"train"`
	Test           EvalMetrics `json:"test"`
	NumFeatures    int         `json:"n_features"`
	TrainSamples   int         `json:"n_train_samples"`
	TestSamples    int         `json:"n_test_samples"`
	TrainedAt      time.Time   `json:"timestamp"`
	DurationMillis int64       `json:"duration_ms"`
}

// Trainer runs the end-to-end pipeline for both models. Safe for
// concurrent use; one training run executes at a time per caller
// discipline, history access is internally locked.
type Trainer struct {
	engineer   *features.Engineer
	store      *storage.Store
	metricsDir string

	mu      sync.Mutex
	history []Report
}

// New creates a trainer that persists artifacts to store and metric
// reports to metricsDir. metricsDir is created if absent; empty
// disables report files.
func New(engineer *features.Engineer, store *storage.Store, metricsDir string) (*Trainer, error) {
	if metricsDir != "" {
		if err := os.MkdirAll(metricsDir, 0o750); err != nil {
			return nil, fmt.Errorf("create metrics dir: %w", err)
		}
	}
	return &Trainer{
		engineer:   engineer,
		store:      store,
		metricsDir: metricsDir,
	}, nil
}

// TrainRankingModel assembles the interaction training set, fits,
// evaluates, and persists the ranking model. Returns the fitted model
// and its run report.
func (t *Trainer) TrainRankingModel(ctx context.Context, places []models.Place, interactions []models.Interaction, algorithm string) (*ranking.Model, *Report, error) {
	start := time.Now()

	frame, targets, err := t.engineer.TrainingDataset(places, interactions)
	if err != nil {
		return nil, nil, fmt.Errorf("assemble ranking dataset: %w", err)
	}

	trainX, testX, trainY, testY, err := Split(frame, targets, DefaultTestFraction, splitSeed)
	if err != nil {
		return nil, nil, err
	}

	model := ranking.New(t.engineer)
	if err := model.Train(trainX, trainY, algorithm); err != nil {
		return nil, nil, err
	}

	report, err := t.finishRun(ctx, runArtifacts{
		name:      "ranking",
		algorithm: algorithm,
		predict:   model.Predict,
		save:      func(ctx context.Context) error { return model.Save(ctx, t.store) },
		trainX:    trainX, testX: testX,
		trainY: trainY, testY: testY,
		start: start,
	})
	if err != nil {
		return nil, nil, err
	}
	return model, report, nil
}

// TrainBudgetModel fits, evaluates, and persists the budget model from
// a trip feature frame and total-cost targets.
func (t *Trainer) TrainBudgetModel(ctx context.Context, trips *ml.Frame, costs []float64, algorithm string) (*budget.Model, *Report, error) {
	start := time.Now()

	trainX, testX, trainY, testY, err := Split(trips, costs, DefaultTestFraction, splitSeed)
	if err != nil {
		return nil, nil, err
	}

	model := budget.New()
	if err := model.Train(trainX, trainY, algorithm); err != nil {
		return nil, nil, err
	}

	report, err := t.finishRun(ctx, runArtifacts{
		name:      "budget",
		algorithm: algorithm,
		predict:   model.Predict,
		save:      func(ctx context.Context) error { return model.Save(ctx, t.store) },
		trainX:    trainX, testX: testX,
		trainY: trainY, testY: testY,
		start: start,
	})
	if err != nil {
		return nil, nil, err
	}
	return model, report, nil
}

// TrainAll bootstraps both models from seeded synthetic data. This is
// the cold-start path; production retraining feeds real records through
// the model-specific entry points instead.
func (t *Trainer) TrainAll(ctx context.Context, seed int64) (*ranking.Model, *budget.Model, error) {
	places := SyntheticPlaces(syntheticPlaceCount, seed)
	interactions := SyntheticInteractions(syntheticInteractionCount, places, seed+1)
	trips, costs := SyntheticTrips(syntheticTripCount, seed+2)

	rankModel, _, err := t.TrainRankingModel(ctx, places, interactions, ml.AlgorithmBoosting)
	if err != nil {
		return nil, nil, fmt.Errorf("train ranking model: %w", err)
	}

	budgetModel, _, err := t.TrainBudgetModel(ctx, trips, costs, ml.AlgorithmBagging)
	if err != nil {
		return nil, nil, fmt.Errorf("train budget model: %w", err)
	}
	return rankModel, budgetModel, nil
}

// History returns all run reports in chronological order.
func (t *Trainer) History() []Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Report(nil), t.history...)
}

// LastReport returns the most recent report for the named model, or
// false if that model has not been trained this process.
func (t *Trainer) LastReport(model string) (Report, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.history) - 1; i >= 0; i-- {
		if t.history[i].Model == model {
			return t.history[i], true
		}
	}
	return Report{}, false
}

// runArtifacts bundles the per-model pieces finishRun needs.
type runArtifacts struct {
	name           string
	algorithm      string
	predict        func(*ml.Frame) ([]float64, error)
	save           func(context.Context) error
	trainX, testX  *ml.Frame
	trainY, testY  []float64
	start          time.Time
}

// finishRun evaluates both splits, persists artifacts, records the
// report, and writes the metrics file.
func (t *Trainer) finishRun(ctx context.Context, run runArtifacts) (*Report, error) {
	trainPred, err := run.predict(run.trainX)
	if err != nil {
		return nil, fmt.Errorf("evaluate train split: %w", err)
	}
	testPred, err := run.predict(run.testX)
	if err != nil {
		return nil, fmt.Errorf("evaluate test split: %w", err)
	}

	report := Report{
		Model:          run.name,
		Algorithm:      run.algorithm,
		Train:          Evaluate(run.trainY, trainPred),
		Test:           Evaluate(run.testY, testPred),
		NumFeatures:    run.trainX.NumCols(),
		TrainSamples:   run.trainX.NumRows(),
		TestSamples:    run.testX.NumRows(),
		TrainedAt:      time.Now().UTC(),
		DurationMillis: time.Since(run.start).Milliseconds(),
	}

	err = run.save(ctx)
	metrics.RecordArtifactOp("save", err)
	if err != nil {
		metrics.RecordTrainingRun(run.name, run.algorithm, time.Since(run.start), 0, err)
		return nil, fmt.Errorf("persist %s model: %w", run.name, err)
	}
	metrics.RecordTrainingRun(run.name, run.algorithm, time.Since(run.start), report.Test.R2, nil)

	t.mu.Lock()
	t.history = append(t.history, report)
	t.mu.Unlock()

	if err := t.writeReport(report); err != nil {
		logging.Warn().
			Str("component", "trainer").
			Str("model", run.name).
			Err(err).
			Msg("metrics report not written")
	}

	logging.Info().
		Str("component", "trainer").
		Str("model", run.name).
		Str("algorithm", run.algorithm).
		Float64("test_r2", report.Test.R2).
		Float64("test_rmse", report.Test.RMSE).
		Int64("duration_ms", report.DurationMillis).
		Msg("training run complete")
	return &report, nil
}

// writeReport stores the run report as <model>_metrics.json.
func (t *Trainer) writeReport(report Report) error {
	if t.metricsDir == "" {
		return nil
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(t.metricsDir, report.Model+"_metrics.json")
	return os.WriteFile(path, data, 0o600)
}
