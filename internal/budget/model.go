// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package budget predicts total trip cost from structured trip attributes
// using a trained regressor, and provides destination cost-index lookups
// for the heuristic daily estimate.
package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/ml"
	"github.com/tomtom215/wayfarer/internal/ml/storage"
	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/validation"
)

// ModelName is the storage name for the budget model's artifact set.
const ModelName = "budget"

// TripFeatureColumns is the canonical feature schema for trip records.
var TripFeatureColumns = []string{
	"num_days",
	"num_people",
	"accommodation_level",
	"destination_cost_index",
	"season_multiplier",
}

// Model is the trainable budget regressor. It accepts the bagging,
// boosting, and ridge algorithms.
type Model struct {
	core ml.Model
}

// New creates an untrained budget model.
func New() *Model { return &Model{} }

// Train fits the model on the frame. The frame's column order becomes
// the immutable inference schema.
func (m *Model) Train(frame *ml.Frame, y []float64, algorithm string) error {
	switch algorithm {
	case ml.AlgorithmBagging, ml.AlgorithmBoosting, ml.AlgorithmRidge:
	default:
		return fmt.Errorf("budget model: %w: %q", ml.ErrUnknownAlgorithm, algorithm)
	}

	if err := m.core.Train(frame, y, algorithm); err != nil {
		return fmt.Errorf("train budget model: %w", err)
	}

	logging.Info().
		Str("component", "budget").
		Str("algorithm", algorithm).
		Int("samples", frame.NumRows()).
		Int("features", frame.NumCols()).
		Msg("budget model trained")
	return nil
}

// Predict scores a frame of trip feature rows. Missing columns zero-fill
// per the stored schema.
func (m *Model) Predict(frame *ml.Frame) ([]float64, error) {
	return m.core.PredictFrame(frame)
}

// PredictTripBudget predicts the total cost for a single trip. The trip
// is validated before the model is consulted; the returned value is the
// raw model output, which callers clamp if negative.
func (m *Model) PredictTripBudget(tf models.TripFeatures) (float64, error) {
	if err := validation.ValidateStruct(&tf); err != nil {
		return 0, err
	}

	preds, err := m.Predict(TripFrame(tf))
	if err != nil {
		return 0, err
	}
	return preds[0], nil
}

// TripFrame builds a one-row frame from a trip record, defaulting the
// optional multipliers.
func TripFrame(tf models.TripFeatures) *ml.Frame {
	tf = tf.Normalized()
	frame := ml.NewFrame(TripFeatureColumns)
	frame.AppendMap(map[string]float64{
		"num_days":               float64(tf.NumDays),
		"num_people":             float64(tf.NumPeople),
		"accommodation_level":    float64(tf.AccommodationLevel),
		"destination_cost_index": tf.DestinationCostIndex,
		"season_multiplier":      tf.SeasonMultiplier,
	})
	return frame
}

// IsTrained reports whether the model can serve predictions.
func (m *Model) IsTrained() bool { return m.core.IsTrained() }

// Algorithm returns the fitted algorithm name.
func (m *Model) Algorithm() string { return m.core.Algorithm() }

// TrainedAt returns when the model was last trained or loaded.
func (m *Model) TrainedAt() time.Time { return m.core.TrainedAt() }

// FeatureImportances returns name-to-importance pairs for the fitted
// model, nil if untrained.
func (m *Model) FeatureImportances() map[string]float64 {
	imp := m.core.Importances()
	if imp == nil {
		return nil
	}
	features := m.core.Features()
	out := make(map[string]float64, len(features))
	for i, name := range features {
		out[name] = imp[i]
	}
	return out
}

// Save persists the model's artifact set under ModelName.
func (m *Model) Save(ctx context.Context, store *storage.Store) error {
	regressor, scaler, features, trainedAt := m.core.Snapshot()
	if regressor == nil {
		return ml.ErrNotTrained
	}
	return store.Save(ctx, ModelName, &storage.ArtifactSet{
		Regressor: regressor,
		Scaler:    scaler,
		Features:  features,
		Metadata:  storage.ModelMetadata{TrainedAt: trainedAt},
	})
}

// Load restores the model from its persisted artifact set.
func (m *Model) Load(ctx context.Context, store *storage.Store) error {
	set, err := store.Load(ctx, ModelName)
	if err != nil {
		return err
	}
	m.core.Restore(set.Regressor, set.Scaler, set.Features, set.Metadata.TrainedAt)
	return nil
}
