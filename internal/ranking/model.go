// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package ranking orders candidate places for a user with a trained
// regressor, falling back to a transparent heuristic scorer whenever the
// model cannot serve. Every result carries an explicit provenance tag so
// callers can distinguish model output from the heuristic.
package ranking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/wayfarer/internal/features"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/ml"
	"github.com/tomtom215/wayfarer/internal/ml/storage"
	"github.com/tomtom215/wayfarer/internal/models"
)

// ModelName is the storage name for the ranking model's artifact set.
const ModelName = "ranking"

// DefaultTopK bounds result length when the caller does not specify one.
const DefaultTopK = 10

// Scoring provenance tags. Heuristic means the fallback scorer produced
// the result, either because the model was untrained or because
// inference failed.
const (
	ScoredByModel     = "model"
	ScoredByHeuristic = "heuristic"
)

// RankedPlace is one entry of a ranking result, highest score first.
type RankedPlace struct {
	PlaceID    string  `json:"place_id"`
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
	Rating     float64 `json:"rating"`
	Category   string  `json:"category"`
	PriceLevel int     `json:"price_level"`
}

// Result is a full ranking response with its scoring provenance.
type Result struct {
	Places   []RankedPlace `json:"places"`
	ScoredBy string        `json:"scored_by"`
}

// FeatureContribution pairs a feature with its global importance and the
// explained place's value for it.
type FeatureContribution struct {
	Feature    string  `json:"feature"`
	Value      float64 `json:"value"`
	Importance float64 `json:"importance"`
}

// Explanation describes a single place's predicted score in terms of the
// model's most important features.
type Explanation struct {
	PredictedScore          float64               `json:"predicted_score"`
	TopContributingFeatures []FeatureContribution `json:"top_contributing_features"`
}

// Model is the trainable ranking regressor. It accepts the boosting and
// bagging algorithms; ridge has no place here because interaction
// features are strongly non-linear in the inputs.
type Model struct {
	core     ml.Model
	engineer *features.Engineer
}

// New creates an untrained ranking model using the engineer's lookup
// tables for both feature derivation and fallback scoring.
func New(engineer *features.Engineer) *Model {
	return &Model{engineer: engineer}
}

// Train fits the model on the frame. The frame's column order becomes
// the immutable inference schema.
func (m *Model) Train(frame *ml.Frame, y []float64, algorithm string) error {
	switch algorithm {
	case ml.AlgorithmBoosting, ml.AlgorithmBagging:
	default:
		return fmt.Errorf("ranking model: %w: %q", ml.ErrUnknownAlgorithm, algorithm)
	}

	if err := m.core.Train(frame, y, algorithm); err != nil {
		return fmt.Errorf("train ranking model: %w", err)
	}

	logging.Info().
		Str("component", "ranking").
		Str("algorithm", algorithm).
		Int("samples", frame.NumRows()).
		Int("features", frame.NumCols()).
		Msg("ranking model trained")
	return nil
}

// Predict scores a frame of place feature rows. Missing columns
// zero-fill per the stored schema.
func (m *Model) Predict(frame *ml.Frame) ([]float64, error) {
	return m.core.PredictFrame(frame)
}

// RankPlaces orders the candidate places for the user, best first, and
// truncates to topK. The trained model scores place features broadcast
// with the user's features; if the model is untrained or inference
// fails, the heuristic fallback scores instead and the result is tagged
// accordingly. RankPlaces never fails on well-formed input; an empty
// candidate batch yields an empty result.
func (m *Model) RankPlaces(places []models.Place, pref models.UserPreference, topK int) (*Result, error) {
	if len(places) == 0 {
		return &Result{Places: []RankedPlace{}, ScoredBy: m.scoredBy()}, nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	scores, err := m.modelScores(places, pref)
	scoredBy := ScoredByModel
	if err != nil {
		if err != ml.ErrNotTrained {
			logging.Warn().
				Str("component", "ranking").
				Err(err).
				Msg("model scoring failed, using heuristic fallback")
		}
		scores = m.fallbackScores(places, pref)
		scoredBy = ScoredByHeuristic
	}

	return &Result{
		Places:   rankByScore(places, scores, topK),
		ScoredBy: scoredBy,
	}, nil
}

// scoredBy reports which scoring path a batch would take.
func (m *Model) scoredBy() string {
	if m.core.IsTrained() {
		return ScoredByModel
	}
	return ScoredByHeuristic
}

// modelScores broadcasts the user's features across the place batch and
// runs inference.
func (m *Model) modelScores(places []models.Place, pref models.UserPreference) ([]float64, error) {
	if !m.core.IsTrained() {
		return nil, ml.ErrNotTrained
	}

	frame, err := m.engineer.InteractionFeatures(places, m.engineer.UserFeatures(pref))
	if err != nil {
		return nil, err
	}
	return m.core.PredictFrame(frame)
}

// rankByScore sorts places by score descending and materializes the top
// k result rows. The sort is stable, so equal scores keep input order.
func rankByScore(places []models.Place, scores []float64, topK int) []RankedPlace {
	order := make([]int, len(places))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if topK > len(order) {
		topK = len(order)
	}

	ranked := make([]RankedPlace, topK)
	for i := 0; i < topK; i++ {
		p := places[order[i]]
		ranked[i] = RankedPlace{
			PlaceID:    p.ID,
			Name:       p.Name,
			Score:      scores[order[i]],
			Rating:     p.Rating,
			Category:   p.Category,
			PriceLevel: p.PriceLevel,
		}
	}
	return ranked
}

// ExplainPrediction scores a single place for the user and reports the
// model's five most important features alongside the place's values for
// them. Requires a trained model.
func (m *Model) ExplainPrediction(place models.Place, pref models.UserPreference) (*Explanation, error) {
	if !m.core.IsTrained() {
		return nil, ml.ErrNotTrained
	}

	frame, err := m.engineer.InteractionFeatures([]models.Place{place}, m.engineer.UserFeatures(pref))
	if err != nil {
		return nil, err
	}
	preds, err := m.core.PredictFrame(frame)
	if err != nil {
		return nil, err
	}

	names := m.core.Features()
	importances := m.core.Importances()
	order := make([]int, len(names))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return importances[order[a]] > importances[order[b]]
	})

	top := len(order)
	if top > 5 {
		top = 5
	}

	// Reindex to the model schema so feature values line up with the
	// importance vector even when the input batch lacks some columns.
	reindexed := frame.Reindex(names)

	explanation := &Explanation{
		PredictedScore:          preds[0],
		TopContributingFeatures: make([]FeatureContribution, top),
	}
	for i := 0; i < top; i++ {
		idx := order[i]
		value, _ := reindexed.Value(0, names[idx])
		explanation.TopContributingFeatures[i] = FeatureContribution{
			Feature:    names[idx],
			Value:      value,
			Importance: importances[idx],
		}
	}
	return explanation, nil
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
	names := m.core.Features()
	out := make(map[string]float64, len(names))
	for i, name := range names {
		out[name] = imp[i]
	}
	return out
}

// Save persists the model's artifact set under ModelName.
func (m *Model) Save(ctx context.Context, store *storage.Store) error {
	regressor, scaler, featureNames, trainedAt := m.core.Snapshot()
	if regressor == nil {
		return ml.ErrNotTrained
	}
	return store.Save(ctx, ModelName, &storage.ArtifactSet{
		Regressor: regressor,
		Scaler:    scaler,
		Features:  featureNames,
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
