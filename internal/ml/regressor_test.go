// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package ml

import (
	"errors"
	"math"
	"testing"
)

// linearTrainingSet builds y = 2*x0 + 1 over x0 in [0, n) with a second
// noise-free constant feature.
func linearTrainingSet(n int) ([][]float64, []float64) {
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i)
		X[i] = []float64{x, 1}
		y[i] = 2*x + 1
	}
	return X, y
}

func TestNewRegressor(t *testing.T) {
	tests := []struct {
		algorithm string
		wantErr   bool
	}{
		{AlgorithmBagging, false},
		{AlgorithmBoosting, false},
		{AlgorithmRidge, false},
		{"random_forest", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			reg, err := NewRegressor(tt.algorithm, 42)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownAlgorithm) {
					t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if reg.Algorithm() != tt.algorithm {
				t.Errorf("Algorithm() = %q, want %q", reg.Algorithm(), tt.algorithm)
			}
		})
	}
}

func TestRegressorsFitLinearTarget(t *testing.T) {
	X, y := linearTrainingSet(50)

	for _, algorithm := range []string{AlgorithmBagging, AlgorithmBoosting, AlgorithmRidge} {
		t.Run(algorithm, func(t *testing.T) {
			reg, err := NewRegressor(algorithm, 42)
			if err != nil {
				t.Fatal(err)
			}
			if err := reg.Fit(X, y); err != nil {
				t.Fatalf("Fit: %v", err)
			}

			preds, err := reg.Predict([][]float64{{25, 1}})
			if err != nil {
				t.Fatalf("Predict: %v", err)
			}
			// True value is 51; all three variants should land close on
			// an interior point of noiseless training data.
			if math.Abs(preds[0]-51) > 5 {
				t.Errorf("prediction at x=25: %v, want near 51", preds[0])
			}
		})
	}
}

func TestRegressorPredictBeforeFit(t *testing.T) {
	for _, algorithm := range []string{AlgorithmBagging, AlgorithmBoosting, AlgorithmRidge} {
		t.Run(algorithm, func(t *testing.T) {
			reg, err := NewRegressor(algorithm, 42)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := reg.Predict([][]float64{{1, 1}}); !errors.Is(err, ErrNotTrained) {
				t.Errorf("expected ErrNotTrained, got %v", err)
			}
		})
	}
}

func TestRegressorDeterminism(t *testing.T) {
	X, y := linearTrainingSet(40)
	probe := [][]float64{{3, 1}, {17, 1}, {33, 1}}

	for _, algorithm := range []string{AlgorithmBagging, AlgorithmBoosting} {
		t.Run(algorithm, func(t *testing.T) {
			a, _ := NewRegressor(algorithm, 42)
			b, _ := NewRegressor(algorithm, 42)
			if err := a.Fit(X, y); err != nil {
				t.Fatal(err)
			}
			if err := b.Fit(X, y); err != nil {
				t.Fatal(err)
			}

			pa, _ := a.Predict(probe)
			pb, _ := b.Predict(probe)
			for i := range pa {
				if pa[i] != pb[i] {
					t.Errorf("row %d: same seed produced %v vs %v", i, pa[i], pb[i])
				}
			}
		})
	}
}

func TestRegressorImportances(t *testing.T) {
	X, y := linearTrainingSet(50)

	for _, algorithm := range []string{AlgorithmBagging, AlgorithmBoosting, AlgorithmRidge} {
		t.Run(algorithm, func(t *testing.T) {
			reg, _ := NewRegressor(algorithm, 42)
			if reg.Importances() != nil {
				t.Error("expected nil importances before fit")
			}
			if err := reg.Fit(X, y); err != nil {
				t.Fatal(err)
			}

			imp := reg.Importances()
			if len(imp) != 2 {
				t.Fatalf("got %d importances, want 2", len(imp))
			}
			var total float64
			for _, v := range imp {
				total += v
			}
			if math.Abs(total-1) > 1e-9 {
				t.Errorf("importances sum to %v, want 1", total)
			}
			// The informative feature must dominate the constant one.
			if imp[0] <= imp[1] {
				t.Errorf("informative feature importance %v not above constant %v",
					imp[0], imp[1])
			}
		})
	}
}

func TestBaggingMonotoneTarget(t *testing.T) {
	// On noiseless monotone data a bagging ensemble should not invert
	// the trend between well-separated inputs.
	X, y := linearTrainingSet(60)
	reg := NewBaggingForest(42)
	if err := reg.Fit(X, y); err != nil {
		t.Fatal(err)
	}

	preds, err := reg.Predict([][]float64{{10, 1}, {45, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if preds[1] < preds[0] {
		t.Errorf("prediction decreased on larger input: %v then %v", preds[0], preds[1])
	}
}

func TestFitShapeErrors(t *testing.T) {
	reg := NewRidge()

	if err := reg.Fit(nil, nil); !errors.Is(err, ErrEmptyTrainingSet) {
		t.Errorf("expected ErrEmptyTrainingSet, got %v", err)
	}
	if err := reg.Fit([][]float64{{1}}, []float64{1, 2}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if err := reg.Fit([][]float64{{1}, {1, 2}}, []float64{1, 2}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch for ragged rows, got %v", err)
	}
}

func TestSolveLinearSystem(t *testing.T) {
	// 2x + y = 5, x + 3y = 10 -> x = 1, y = 3
	a := [][]float64{{2, 1}, {1, 3}}
	b := []float64{5, 10}

	x, err := solveLinearSystem(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x[0]-1) > 1e-9 || math.Abs(x[1]-3) > 1e-9 {
		t.Errorf("solution = %v, want [1 3]", x)
	}
}

func TestRegressionTreeStepFunction(t *testing.T) {
	X := [][]float64{{0.1}, {0.2}, {0.3}, {0.7}, {0.8}, {0.9}}
	y := []float64{0, 0, 0, 1, 1, 1}

	tree := NewRegressionTree(3)
	if err := tree.Fit(X, y); err != nil {
		t.Fatal(err)
	}

	if got := tree.PredictRow([]float64{0.15}); got != 0 {
		t.Errorf("low side = %v, want 0", got)
	}
	if got := tree.PredictRow([]float64{0.85}); got != 1 {
		t.Errorf("high side = %v, want 1", got)
	}
}
