// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package ranking

import (
	"context"
	"math"
	"testing"

	"github.com/tomtom215/wayfarer/internal/features"
	"github.com/tomtom215/wayfarer/internal/ml"
	"github.com/tomtom215/wayfarer/internal/ml/storage"
	"github.com/tomtom215/wayfarer/internal/models"
)

func testEngineer() *features.Engineer {
	return features.NewEngineer(features.DefaultTables())
}

func testPlaces() []models.Place {
	return []models.Place{
		{ID: "p1", Name: "City Museum", Category: "museum", Rating: 4.5, ReviewCount: 1200, PriceLevel: 2},
		{ID: "p2", Name: "Harbor Grill", Category: "restaurant", Rating: 4.0, ReviewCount: 300, PriceLevel: 3},
		{ID: "p3", Name: "North Beach", Category: "beach", Rating: 4.8, ReviewCount: 50, PriceLevel: 1},
		{ID: "p4", Name: "Old Town Park", Category: "park", Rating: 3.9, ReviewCount: 80, PriceLevel: 1},
		{ID: "p5", Name: "Night Market", Category: "shopping", Rating: 4.2, ReviewCount: 600, PriceLevel: 2},
	}
}

func testInteractions() []models.Interaction {
	return []models.Interaction{
		{UserID: "u1", PlaceID: "p1", Type: models.InteractionVisit, Rating: 4.5},
		{UserID: "u1", PlaceID: "p2", Type: models.InteractionView, Rating: 3.5},
		{UserID: "u2", PlaceID: "p3", Type: models.InteractionSave, Rating: 4.8},
		{UserID: "u2", PlaceID: "p4", Type: models.InteractionView, Rating: 3.0},
		{UserID: "u3", PlaceID: "p5", Type: models.InteractionVisit, Rating: 4.0},
		{UserID: "u3", PlaceID: "p1", Type: models.InteractionSave, Rating: 4.6},
		{UserID: "u4", PlaceID: "p3", Type: models.InteractionVisit, Rating: 4.9},
		{UserID: "u4", PlaceID: "p2", Type: models.InteractionSave, Rating: 3.8},
	}
}

func trainedModel(t *testing.T) *Model {
	t.Helper()

	engineer := testEngineer()
	frame, targets, err := engineer.TrainingDataset(testPlaces(), testInteractions())
	if err != nil {
		t.Fatalf("TrainingDataset: %v", err)
	}

	m := New(engineer)
	if err := m.Train(frame, targets, ml.AlgorithmBoosting); err != nil {
		t.Fatalf("Train: %v", err)
	}
	return m
}

func TestRankPlacesUntrainedUsesHeuristic(t *testing.T) {
	m := New(testEngineer())

	result, err := m.RankPlaces(testPlaces(), models.UserPreference{Budget: "medium", GroupSize: 2}, 3)
	if err != nil {
		t.Fatalf("RankPlaces: %v", err)
	}
	if result.ScoredBy != ScoredByHeuristic {
		t.Errorf("ScoredBy = %q, want %q", result.ScoredBy, ScoredByHeuristic)
	}
	if len(result.Places) != 3 {
		t.Fatalf("len(Places) = %d, want 3", len(result.Places))
	}
	for i := 1; i < len(result.Places); i++ {
		if result.Places[i].Score > result.Places[i-1].Score {
			t.Errorf("places not sorted descending at %d: %v > %v",
				i, result.Places[i].Score, result.Places[i-1].Score)
		}
	}
}

func TestRankPlacesTrainedUsesModel(t *testing.T) {
	m := trainedModel(t)

	result, err := m.RankPlaces(testPlaces(), models.UserPreference{Budget: "medium", GroupSize: 2}, 10)
	if err != nil {
		t.Fatalf("RankPlaces: %v", err)
	}
	if result.ScoredBy != ScoredByModel {
		t.Errorf("ScoredBy = %q, want %q", result.ScoredBy, ScoredByModel)
	}
	if len(result.Places) != len(testPlaces()) {
		t.Errorf("len(Places) = %d, want %d", len(result.Places), len(testPlaces()))
	}
	if result.Places[0].PlaceID == "" || result.Places[0].Name == "" {
		t.Errorf("result rows missing identity fields: %+v", result.Places[0])
	}
}

func TestRankPlacesEmptyCandidates(t *testing.T) {
	m := New(testEngineer())

	result, err := m.RankPlaces(nil, models.UserPreference{}, 5)
	if err != nil {
		t.Fatalf("RankPlaces(nil): %v", err)
	}
	if len(result.Places) != 0 {
		t.Errorf("got %d places, want empty result", len(result.Places))
	}
	if result.ScoredBy != ScoredByHeuristic {
		t.Errorf("ScoredBy = %q, want %q for untrained model", result.ScoredBy, ScoredByHeuristic)
	}
}

func TestRankPlacesEmptyCandidatesTrained(t *testing.T) {
	m := trainedModel(t)

	result, err := m.RankPlaces([]models.Place{}, models.UserPreference{}, 5)
	if err != nil {
		t.Fatalf("RankPlaces(empty): %v", err)
	}
	if len(result.Places) != 0 {
		t.Errorf("got %d places, want empty result", len(result.Places))
	}
	if result.ScoredBy != ScoredByModel {
		t.Errorf("ScoredBy = %q, want %q for trained model", result.ScoredBy, ScoredByModel)
	}
}

func TestEnsembleEmptyCandidates(t *testing.T) {
	e := NewEnsemble()
	e.Add(New(testEngineer()), 1)

	result, err := e.RankPlaces(nil, models.UserPreference{}, 3)
	if err != nil {
		t.Fatalf("RankPlaces(nil): %v", err)
	}
	if len(result.Places) != 0 {
		t.Errorf("got %d places, want empty result", len(result.Places))
	}
}

func TestRankPlacesTopKDefaults(t *testing.T) {
	m := New(testEngineer())

	result, err := m.RankPlaces(testPlaces(), models.UserPreference{}, 0)
	if err != nil {
		t.Fatalf("RankPlaces: %v", err)
	}
	if len(result.Places) != len(testPlaces()) {
		t.Errorf("topK=0 should default and clamp to batch size, got %d", len(result.Places))
	}
}

func TestFallbackScoreFormula(t *testing.T) {
	m := New(testEngineer())

	// rating/5 + ln(1+reviews)/10 - 0.1*|price-budget| + 0.2*matches
	places := []models.Place{
		{ID: "r", Name: "Grill", Category: "restaurant", Rating: 4.0, ReviewCount: 0, PriceLevel: 2},
	}
	pref := models.UserPreference{Budget: "medium", Interests: []string{"food"}, GroupSize: 1}

	scores := m.fallbackScores(places, pref)
	want := 4.0/5.0 + 0 - 0 + 0.2
	if math.Abs(scores[0]-want) > 1e-12 {
		t.Errorf("fallback score = %v, want %v", scores[0], want)
	}
}

func TestFallbackStableTies(t *testing.T) {
	m := New(testEngineer())

	places := []models.Place{
		{ID: "a", Name: "First", Category: "park", Rating: 4.0, ReviewCount: 10, PriceLevel: 2},
		{ID: "b", Name: "Second", Category: "park", Rating: 4.0, ReviewCount: 10, PriceLevel: 2},
	}
	result, err := m.RankPlaces(places, models.UserPreference{Budget: "medium"}, 2)
	if err != nil {
		t.Fatalf("RankPlaces: %v", err)
	}
	if result.Places[0].PlaceID != "a" || result.Places[1].PlaceID != "b" {
		t.Errorf("equal scores must keep input order, got %q then %q",
			result.Places[0].PlaceID, result.Places[1].PlaceID)
	}
}

func TestTrainRejectsRidge(t *testing.T) {
	m := New(testEngineer())
	frame := ml.NewFrame([]string{"x"})
	frame.Append([]float64{1})
	frame.Append([]float64{2})

	if err := m.Train(frame, []float64{1, 2}, ml.AlgorithmRidge); err == nil {
		t.Fatal("ridge should be rejected for ranking")
	}
}

func TestExplainPrediction(t *testing.T) {
	m := trainedModel(t)

	explanation, err := m.ExplainPrediction(testPlaces()[0], models.UserPreference{Budget: "medium", GroupSize: 2})
	if err != nil {
		t.Fatalf("ExplainPrediction: %v", err)
	}
	if n := len(explanation.TopContributingFeatures); n == 0 || n > 5 {
		t.Fatalf("top features = %d, want 1..5", n)
	}
	for i := 1; i < len(explanation.TopContributingFeatures); i++ {
		prev := explanation.TopContributingFeatures[i-1].Importance
		cur := explanation.TopContributingFeatures[i].Importance
		if cur > prev {
			t.Errorf("importances not descending at %d: %v > %v", i, cur, prev)
		}
	}
}

func TestExplainPredictionUntrained(t *testing.T) {
	m := New(testEngineer())
	if _, err := m.ExplainPrediction(testPlaces()[0], models.UserPreference{}); err != ml.ErrNotTrained {
		t.Fatalf("err = %v, want ErrNotTrained", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	m := trainedModel(t)
	if err := m.Save(context.Background(), store); err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored := New(testEngineer())
	if err := restored.Load(context.Background(), store); err != nil {
		t.Fatalf("Load: %v", err)
	}

	pref := models.UserPreference{Budget: "low", Interests: []string{"beach"}, GroupSize: 1}
	want, err := m.RankPlaces(testPlaces(), pref, 5)
	if err != nil {
		t.Fatalf("RankPlaces original: %v", err)
	}
	got, err := restored.RankPlaces(testPlaces(), pref, 5)
	if err != nil {
		t.Fatalf("RankPlaces restored: %v", err)
	}
	if got.ScoredBy != ScoredByModel {
		t.Fatalf("restored model should score, got %q", got.ScoredBy)
	}
	for i := range want.Places {
		if got.Places[i].PlaceID != want.Places[i].PlaceID || got.Places[i].Score != want.Places[i].Score {
			t.Errorf("row %d differs after reload: got %+v want %+v", i, got.Places[i], want.Places[i])
		}
	}
}

func TestEnsembleEmpty(t *testing.T) {
	e := NewEnsemble()
	if _, err := e.RankPlaces(testPlaces(), models.UserPreference{}, 3); err != ErrEmptyEnsemble {
		t.Fatalf("err = %v, want ErrEmptyEnsemble", err)
	}
}

func TestEnsembleAllUntrainedFallsBack(t *testing.T) {
	e := NewEnsemble()
	e.Add(New(testEngineer()), 1)
	e.Add(New(testEngineer()), 2)

	result, err := e.RankPlaces(testPlaces(), models.UserPreference{Budget: "medium"}, 3)
	if err != nil {
		t.Fatalf("RankPlaces: %v", err)
	}
	if result.ScoredBy != ScoredByHeuristic {
		t.Errorf("ScoredBy = %q, want %q", result.ScoredBy, ScoredByHeuristic)
	}
}

func TestEnsembleSingleTrainedMatchesMember(t *testing.T) {
	trained := trainedModel(t)

	e := NewEnsemble()
	e.Add(trained, 3)
	e.Add(New(testEngineer()), 1)

	pref := models.UserPreference{Budget: "medium", GroupSize: 2}
	want, err := trained.RankPlaces(testPlaces(), pref, 5)
	if err != nil {
		t.Fatalf("member RankPlaces: %v", err)
	}
	got, err := e.RankPlaces(testPlaces(), pref, 5)
	if err != nil {
		t.Fatalf("ensemble RankPlaces: %v", err)
	}
	if got.ScoredBy != ScoredByModel {
		t.Fatalf("ScoredBy = %q, want %q", got.ScoredBy, ScoredByModel)
	}
	for i := range want.Places {
		if math.Abs(got.Places[i].Score-want.Places[i].Score) > 1e-9 {
			t.Errorf("row %d: ensemble score %v, member score %v", i, got.Places[i].Score, want.Places[i].Score)
		}
	}
}
