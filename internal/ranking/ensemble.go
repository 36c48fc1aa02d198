// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package ranking

import (
	"errors"

	"github.com/tomtom215/wayfarer/internal/models"
)

// ErrEmptyEnsemble is returned when an ensemble has no members.
var ErrEmptyEnsemble = errors.New("ranking: ensemble has no members")

// Ensemble blends the predictions of several ranking models with a
// normalized weighted average. Members with non-positive or missing
// weights default to weight 1.
type Ensemble struct {
	members []*Model
	weights []float64
}

// NewEnsemble creates an empty ensemble.
func NewEnsemble() *Ensemble { return &Ensemble{} }

// Add registers a member model with the given blend weight.
func (e *Ensemble) Add(m *Model, weight float64) {
	if weight <= 0 {
		weight = 1
	}
	e.members = append(e.members, m)
	e.weights = append(e.weights, weight)
}

// Len reports the member count.
func (e *Ensemble) Len() int { return len(e.members) }

// RankPlaces scores the candidates with every trained member and blends
// the scores by normalized weight. If no member is trained, the first
// member ranks alone, which routes through its heuristic fallback.
func (e *Ensemble) RankPlaces(places []models.Place, pref models.UserPreference, topK int) (*Result, error) {
	if len(e.members) == 0 {
		return nil, ErrEmptyEnsemble
	}
	if len(places) == 0 {
		return e.members[0].RankPlaces(places, pref, topK)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	var (
		scoresList [][]float64
		usedWeight []float64
	)
	for i, member := range e.members {
		scores, err := member.modelScores(places, pref)
		if err != nil {
			continue
		}
		scoresList = append(scoresList, scores)
		usedWeight = append(usedWeight, e.weights[i])
	}

	if len(scoresList) == 0 {
		return e.members[0].RankPlaces(places, pref, topK)
	}

	total := 0.0
	for _, w := range usedWeight {
		total += w
	}

	blended := make([]float64, len(places))
	for i, scores := range scoresList {
		w := usedWeight[i] / total
		for j, s := range scores {
			blended[j] += w * s
		}
	}

	return &Result{
		Places:   rankByScore(places, blended, topK),
		ScoredBy: ScoredByModel,
	}, nil
}
