// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package trainer

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/wayfarer/internal/features"
	"github.com/tomtom215/wayfarer/internal/ml"
	"github.com/tomtom215/wayfarer/internal/ml/storage"
)

func newTestTrainer(t *testing.T) (*Trainer, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := storage.NewStore(filepath.Join(dir, "models"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	metricsDir := filepath.Join(dir, "metrics")
	tr, err := New(features.NewEngineer(features.DefaultTables()), store, metricsDir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tr, metricsDir
}

func TestSplitSizesAndDeterminism(t *testing.T) {
	frame, y := SyntheticTrips(100, 7)

	trainX, testX, trainY, testY, err := Split(frame, y, 0.2, 42)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if testX.NumRows() != 20 || trainX.NumRows() != 80 {
		t.Errorf("split sizes = %d/%d, want 80/20", trainX.NumRows(), testX.NumRows())
	}
	if len(trainY) != 80 || len(testY) != 20 {
		t.Errorf("target sizes = %d/%d, want 80/20", len(trainY), len(testY))
	}

	_, testX2, _, testY2, err := Split(frame, y, 0.2, 42)
	if err != nil {
		t.Fatalf("Split repeat: %v", err)
	}
	for i := range testY {
		if testY[i] != testY2[i] {
			t.Fatalf("same seed must give same partition, target %d differs", i)
		}
	}
	if testX.NumRows() != testX2.NumRows() {
		t.Fatal("same seed must give same partition size")
	}
}

func TestSplitErrors(t *testing.T) {
	frame := ml.NewFrame([]string{"x"})
	frame.Append([]float64{1})

	if _, _, _, _, err := Split(frame, []float64{1}, 0.2, 1); err == nil {
		t.Error("single sample should not split")
	}
	frame.Append([]float64{2})
	if _, _, _, _, err := Split(frame, []float64{1}, 0.2, 1); err == nil {
		t.Error("row/target mismatch should fail")
	}
	if _, _, _, _, err := Split(frame, []float64{1, 2}, 1.5, 1); err == nil {
		t.Error("fraction outside (0,1) should fail")
	}
}

func TestEvaluatePerfectPredictions(t *testing.T) {
	actual := []float64{100, 200, 300, 400}
	m := Evaluate(actual, actual)

	if m.R2 != 1.0 {
		t.Errorf("R2 = %v, want 1.0", m.R2)
	}
	if m.RMSE != 0 || m.MAE != 0 || m.MAPE != 0 || m.Bias != 0 {
		t.Errorf("error metrics nonzero for perfect fit: %+v", m)
	}
	if m.Within10Pct != 100 {
		t.Errorf("Within10Pct = %v, want 100", m.Within10Pct)
	}
}

func TestEvaluateKnownValues(t *testing.T) {
	actual := []float64{100, 200}
	predicted := []float64{110, 180}
	m := Evaluate(actual, predicted)

	if math.Abs(m.MAE-15) > 1e-9 {
		t.Errorf("MAE = %v, want 15", m.MAE)
	}
	// errors are 10% and 10% exactly
	if math.Abs(m.MAPE-10) > 1e-9 {
		t.Errorf("MAPE = %v, want 10", m.MAPE)
	}
	if m.Overestimates != 1 || m.Underestimate != 1 {
		t.Errorf("over/under = %d/%d, want 1/1", m.Overestimates, m.Underestimate)
	}
	if math.Abs(m.Bias-(-5)) > 1e-9 {
		t.Errorf("Bias = %v, want -5", m.Bias)
	}
}

func TestEvaluateSkipsZeroActuals(t *testing.T) {
	m := Evaluate([]float64{0, 100}, []float64{50, 110})
	if math.IsInf(m.MAPE, 0) || math.IsNaN(m.MAPE) {
		t.Fatalf("MAPE = %v, must skip zero actuals", m.MAPE)
	}
	if math.Abs(m.MAPE-10) > 1e-9 {
		t.Errorf("MAPE = %v, want 10 from the single valid sample", m.MAPE)
	}
}

func TestSyntheticGeneratorsDeterministic(t *testing.T) {
	a := SyntheticPlaces(10, 5)
	b := SyntheticPlaces(10, 5)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("place %d differs across same-seed runs", i)
		}
	}

	fa, ya := SyntheticTrips(10, 5)
	fb, yb := SyntheticTrips(10, 5)
	for i := range ya {
		if ya[i] != yb[i] {
			t.Fatalf("trip cost %d differs across same-seed runs", i)
		}
	}
	if fa.NumRows() != fb.NumRows() {
		t.Fatal("trip frames differ across same-seed runs")
	}
}

func TestTrainBudgetModelEndToEnd(t *testing.T) {
	tr, metricsDir := newTestTrainer(t)

	trips, costs := SyntheticTrips(300, 11)
	model, report, err := tr.TrainBudgetModel(context.Background(), trips, costs, ml.AlgorithmRidge)
	if err != nil {
		t.Fatalf("TrainBudgetModel: %v", err)
	}
	if !model.IsTrained() {
		t.Fatal("model should be trained")
	}
	if report.Test.Samples != 60 {
		t.Errorf("test samples = %d, want 60", report.Test.Samples)
	}
	if report.TrainSamples != 240 {
		t.Errorf("train samples = %d, want 240", report.TrainSamples)
	}

	if _, err := os.Stat(filepath.Join(metricsDir, "budget_metrics.json")); err != nil {
		t.Errorf("metrics report missing: %v", err)
	}
	if _, ok := tr.LastReport("budget"); !ok {
		t.Error("LastReport should find the budget run")
	}
}

func TestTrainRankingModelEndToEnd(t *testing.T) {
	tr, metricsDir := newTestTrainer(t)

	places := SyntheticPlaces(40, 3)
	interactions := SyntheticInteractions(200, places, 4)

	model, report, err := tr.TrainRankingModel(context.Background(), places, interactions, ml.AlgorithmBoosting)
	if err != nil {
		t.Fatalf("TrainRankingModel: %v", err)
	}
	if !model.IsTrained() {
		t.Fatal("model should be trained")
	}
	if report.Model != "ranking" || report.Algorithm != ml.AlgorithmBoosting {
		t.Errorf("report identity = %s/%s", report.Model, report.Algorithm)
	}

	if _, err := os.Stat(filepath.Join(metricsDir, "ranking_metrics.json")); err != nil {
		t.Errorf("metrics report missing: %v", err)
	}
}

func TestLastReportUnknownModel(t *testing.T) {
	tr, _ := newTestTrainer(t)
	if _, ok := tr.LastReport("ranking"); ok {
		t.Error("LastReport should be empty before any run")
	}
}
