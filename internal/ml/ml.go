// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package ml implements the regression machinery behind the budget and
// ranking models: a fixed-schema feature frame, per-feature
// standardization, and three interchangeable regressor strategies
// (bagging ensemble, gradient boosting, ridge linear).
//
// All regressors are deterministic under a fixed seed so that persisted
// models reproduce identical predictions after a save/load round trip.
package ml

import "errors"

// Algorithm identifiers accepted by NewRegressor.
const (
	AlgorithmBagging  = "bagging"
	AlgorithmBoosting = "boosting"
	AlgorithmRidge    = "ridge"
)

var (
	// ErrNotTrained is returned when Predict is called on a regressor
	// that has not been fitted or loaded.
	ErrNotTrained = errors.New("model not trained")

	// ErrUnknownAlgorithm is returned for an unrecognized algorithm name.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrDimensionMismatch is returned when input dimensions disagree
	// with the fitted model or with each other.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrEmptyTrainingSet is returned when Fit receives no rows.
	ErrEmptyTrainingSet = errors.New("empty training set")
)

// Regressor is the strategy interface shared by all regression variants.
//
// Fit consumes a row-major feature matrix and a target vector of equal
// length. Predict scores a row-major matrix with the same column width the
// model was fitted on. Importances reports per-feature global importance,
// normalized to sum to 1 (nil before fitting).
type Regressor interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) ([]float64, error)
	Importances() []float64
	Algorithm() string
}

// NewRegressor constructs a regressor for the named algorithm with its
// standard hyperparameters. The seed drives bootstrap and subsampling so
// training is reproducible.
func NewRegressor(algorithm string, seed int64) (Regressor, error) {
	switch algorithm {
	case AlgorithmBagging:
		return NewBaggingForest(seed), nil
	case AlgorithmBoosting:
		return NewGradientBoosting(seed), nil
	case AlgorithmRidge:
		return NewRidge(), nil
	default:
		return nil, ErrUnknownAlgorithm
	}
}

// checkTrainingInput validates the shape of a Fit input.
func checkTrainingInput(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return ErrEmptyTrainingSet
	}
	if len(X) != len(y) {
		return ErrDimensionMismatch
	}
	width := len(X[0])
	for _, row := range X {
		if len(row) != width {
			return ErrDimensionMismatch
		}
	}
	return nil
}

// checkPredictInput validates the shape of a Predict input against the
// fitted feature width.
func checkPredictInput(X [][]float64, width int) error {
	for _, row := range X {
		if len(row) != width {
			return ErrDimensionMismatch
		}
	}
	return nil
}
