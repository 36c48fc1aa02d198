// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package ml

import (
	"fmt"
	"sync"
	"time"
)

// defaultSeed drives all stochastic training steps unless a caller
// overrides it, so repeated training runs on identical data produce
// identical models.
const defaultSeed = 42

// Model couples a regressor with its fitted scaler and feature schema.
// It is the common core of the budget and ranking models: Train fixes the
// feature ordering, PredictFrame reindexes any future input to that
// ordering with zero-fill before scaling and inference.
//
// A Model is effectively immutable once Train or Restore completes and is
// safe for concurrent read use; the mutex only guards the train/predict
// boundary.
type Model struct {
	mu        sync.RWMutex
	regressor Regressor
	scaler    *Scaler
	features  []string
	trainedAt time.Time
}

// Train fits the named algorithm on the frame. The frame's column order
// becomes the model's immutable feature schema.
func (m *Model) Train(frame *Frame, y []float64, algorithm string) error {
	return m.TrainSeeded(frame, y, algorithm, defaultSeed)
}

// TrainSeeded is Train with an explicit seed.
func (m *Model) TrainSeeded(frame *Frame, y []float64, algorithm string, seed int64) error {
	regressor, err := NewRegressor(algorithm, seed)
	if err != nil {
		return err
	}

	scaler := NewScaler()
	scaled, err := scaler.FitTransform(frame.Matrix())
	if err != nil {
		return fmt.Errorf("fit scaler: %w", err)
	}
	if err := regressor.Fit(scaled, y); err != nil {
		return fmt.Errorf("fit %s regressor: %w", algorithm, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.regressor = regressor
	m.scaler = scaler
	m.features = append([]string(nil), frame.Columns...)
	m.trainedAt = time.Now()
	return nil
}

// PredictFrame scores the frame. Input columns are reindexed to the
// stored schema; missing columns are synthesized as zero, a silent
// degradation path rather than an error.
func (m *Model) PredictFrame(frame *Frame) ([]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.regressor == nil {
		return nil, ErrNotTrained
	}

	scaled, err := m.scaler.Transform(frame.Reindex(m.features).Matrix())
	if err != nil {
		return nil, fmt.Errorf("scale input: %w", err)
	}
	return m.regressor.Predict(scaled)
}

// IsTrained reports whether the model can serve predictions.
func (m *Model) IsTrained() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.regressor != nil
}

// Features returns a copy of the stored feature schema.
func (m *Model) Features() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.features...)
}

// Algorithm returns the fitted algorithm name, or empty if untrained.
func (m *Model) Algorithm() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.regressor == nil {
		return ""
	}
	return m.regressor.Algorithm()
}

// TrainedAt returns when the model was last trained or restored.
func (m *Model) TrainedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trainedAt
}

// Importances returns the fitted regressor's per-feature importances
// aligned with Features(), or nil if untrained.
func (m *Model) Importances() []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.regressor == nil {
		return nil
	}
	return m.regressor.Importances()
}

// Snapshot returns the model's persistable state. The caller must treat
// the returned values as read-only.
func (m *Model) Snapshot() (Regressor, *Scaler, []string, time.Time) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.regressor, m.scaler, append([]string(nil), m.features...), m.trainedAt
}

// Restore replaces the model's state with previously persisted artifacts.
func (m *Model) Restore(regressor Regressor, scaler *Scaler, features []string, trainedAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regressor = regressor
	m.scaler = scaler
	m.features = append([]string(nil), features...)
	m.trainedAt = trainedAt
}
