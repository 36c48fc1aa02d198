// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package ml

import "math"

// Scaler standardizes features to zero mean and unit variance. It is
// fitted on training data only and applied unchanged at inference time.
// Fields are exported for gob persistence.
type Scaler struct {
	Mean   []float64
	Scale  []float64
	Fitted bool
}

// NewScaler returns an unfitted scaler.
func NewScaler() *Scaler { return &Scaler{} }

// Fit computes per-feature mean and standard deviation. A zero-variance
// feature gets unit scale so transformation leaves it centered at zero
// rather than dividing by zero.
func (s *Scaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return ErrEmptyTrainingSet
	}
	width := len(X[0])
	if err := checkPredictInput(X, width); err != nil {
		return err
	}

	s.Mean = make([]float64, width)
	s.Scale = make([]float64, width)

	for _, row := range X {
		for j, v := range row {
			s.Mean[j] += v
		}
	}
	n := float64(len(X))
	for j := range s.Mean {
		s.Mean[j] /= n
	}

	for _, row := range X {
		for j, v := range row {
			d := v - s.Mean[j]
			s.Scale[j] += d * d
		}
	}
	for j := range s.Scale {
		s.Scale[j] = math.Sqrt(s.Scale[j] / n)
		if s.Scale[j] == 0 {
			s.Scale[j] = 1
		}
	}

	s.Fitted = true
	return nil
}

// Transform standardizes X using the fitted statistics.
func (s *Scaler) Transform(X [][]float64) ([][]float64, error) {
	if !s.Fitted {
		return nil, ErrNotTrained
	}
	if err := checkPredictInput(X, len(s.Mean)); err != nil {
		return nil, err
	}

	out := make([][]float64, len(X))
	for i, row := range X {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Mean[j]) / s.Scale[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// FitTransform fits the scaler and returns the standardized training data.
func (s *Scaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
