// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package budget

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/wayfarer/internal/ml"
	"github.com/tomtom215/wayfarer/internal/ml/storage"
	"github.com/tomtom215/wayfarer/internal/models"
)

// syntheticTrips builds a noiseless monotone cost grid:
// cost = days * people * (50 + 30*accommodation) * index * season.
func syntheticTrips() (*ml.Frame, []float64) {
	frame := ml.NewFrame(TripFeatureColumns)
	var y []float64

	for days := 2; days <= 14; days += 2 {
		for people := 1; people <= 4; people++ {
			for acc := 1; acc <= 5; acc += 2 {
				for _, index := range []float64{0.6, 1.0, 1.5} {
					frame.AppendMap(map[string]float64{
						"num_days":               float64(days),
						"num_people":             float64(people),
						"accommodation_level":    float64(acc),
						"destination_cost_index": index,
						"season_multiplier":      1.0,
					})
					cost := float64(days) * float64(people) * (50 + 30*float64(acc)) * index
					y = append(y, cost)
				}
			}
		}
	}
	return frame, y
}

func trainedModel(t *testing.T, algorithm string) *Model {
	t.Helper()
	frame, y := syntheticTrips()
	m := New()
	if err := m.Train(frame, y, algorithm); err != nil {
		t.Fatalf("Train(%s): %v", algorithm, err)
	}
	return m
}

func TestPredictTripBudgetPositive(t *testing.T) {
	m := trainedModel(t, ml.AlgorithmBagging)

	got, err := m.PredictTripBudget(models.TripFeatures{
		NumDays:              7,
		NumPeople:            2,
		AccommodationLevel:   4,
		DestinationCostIndex: 1.2,
		SeasonMultiplier:     1.1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got <= 0 {
		t.Errorf("predicted budget = %v, want positive", got)
	}
}

func TestPredictTripBudgetMonotoneInDays(t *testing.T) {
	m := trainedModel(t, ml.AlgorithmBagging)

	base := models.TripFeatures{
		NumDays: 4, NumPeople: 2, AccommodationLevel: 3,
		DestinationCostIndex: 1.0, SeasonMultiplier: 1.0,
	}
	doubled := base
	doubled.NumDays = 8

	short, err := m.PredictTripBudget(base)
	if err != nil {
		t.Fatal(err)
	}
	long, err := m.PredictTripBudget(doubled)
	if err != nil {
		t.Fatal(err)
	}
	if long < short {
		t.Errorf("doubling num_days decreased budget: %v -> %v", short, long)
	}
}

func TestPredictTripBudgetValidation(t *testing.T) {
	m := New() // untrained: validation must reject before the model is touched

	tests := []struct {
		name string
		tf   models.TripFeatures
	}{
		{"zero days", models.TripFeatures{NumDays: 0, NumPeople: 2, AccommodationLevel: 3}},
		{"too many days", models.TripFeatures{NumDays: 400, NumPeople: 2, AccommodationLevel: 3}},
		{"too many people", models.TripFeatures{NumDays: 7, NumPeople: 99, AccommodationLevel: 3}},
		{"bad accommodation", models.TripFeatures{NumDays: 7, NumPeople: 2, AccommodationLevel: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.PredictTripBudget(tt.tf)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if errors.Is(err, ml.ErrNotTrained) {
				t.Error("validation must reject before the model is consulted")
			}
		})
	}
}

func TestPredictUntrained(t *testing.T) {
	m := New()
	_, err := m.PredictTripBudget(models.TripFeatures{
		NumDays: 7, NumPeople: 2, AccommodationLevel: 3,
	})
	if !errors.Is(err, ml.ErrNotTrained) {
		t.Errorf("expected ErrNotTrained, got %v", err)
	}
}

func TestTrainUnknownAlgorithm(t *testing.T) {
	frame, y := syntheticTrips()
	m := New()
	if err := m.Train(frame, y, "svm"); !errors.Is(err, ml.ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	m := trainedModel(t, ml.AlgorithmBoosting)
	trip := models.TripFeatures{
		NumDays: 10, NumPeople: 3, AccommodationLevel: 2,
		DestinationCostIndex: 0.8, SeasonMultiplier: 1.0,
	}
	want, err := m.PredictTripBudget(trip)
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Save(ctx, store); err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored := New()
	if err := restored.Load(ctx, store); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, err := restored.PredictTripBudget(trip)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("loaded model predicts %v, original %v", got, want)
	}
}

func TestLoadMissing(t *testing.T) {
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	m := New()
	if err := m.Load(context.Background(), store); !errors.Is(err, storage.ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}

func TestSaveUntrained(t *testing.T) {
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := New().Save(context.Background(), store); !errors.Is(err, ml.ErrNotTrained) {
		t.Errorf("expected ErrNotTrained, got %v", err)
	}
}

func TestFeatureImportances(t *testing.T) {
	m := trainedModel(t, ml.AlgorithmBagging)
	imp := m.FeatureImportances()
	if len(imp) != len(TripFeatureColumns) {
		t.Fatalf("got %d importances, want %d", len(imp), len(TripFeatureColumns))
	}
	// num_days drives the synthetic cost more than season_multiplier,
	// which is constant in the training grid.
	if imp["num_days"] <= imp["season_multiplier"] {
		t.Errorf("num_days importance %v not above constant season_multiplier %v",
			imp["num_days"], imp["season_multiplier"])
	}

	if New().FeatureImportances() != nil {
		t.Error("expected nil importances for untrained model")
	}
}
