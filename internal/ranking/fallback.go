// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package ranking

import (
	"math"
	"strings"

	"github.com/tomtom215/wayfarer/internal/models"
)

// fallbackScores computes the heuristic score for each place. It uses
// only raw record fields, never batch statistics or learned parameters,
// so it cannot fail:
//
//	rating/5 + ln(1+reviews)/10 - 0.1*|price - budget| + 0.2*matches
//
// where matches counts the user's interests served by the place's
// category.
func (m *Model) fallbackScores(places []models.Place, pref models.UserPreference) []float64 {
	budget := m.engineer.BudgetEncoding(pref.Budget)

	interests := make(map[string]bool, len(pref.Interests))
	for _, interest := range pref.Interests {
		interests[interest] = true
	}

	scores := make([]float64, len(places))
	for i, p := range places {
		score := p.Rating/5.0 + math.Log1p(float64(p.ReviewCount))/10.0
		score -= math.Abs(float64(p.PriceLevel)-budget) * 0.1

		matches := 0
		for _, ci := range m.engineer.CategoryInterests()[strings.ToLower(p.Category)] {
			if interests[ci] {
				matches++
			}
		}
		score += float64(matches) * 0.2

		scores[i] = score
	}
	return scores
}
