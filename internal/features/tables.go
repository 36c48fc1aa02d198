// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package features

import "github.com/tomtom215/wayfarer/internal/models"

// Tables holds the fixed lookup data the engineer consumes. It is
// injected at construction so tests can substitute fixture tables; the
// engineer never mutates it.
type Tables struct {
	// BudgetLevels maps budget names to their ordinal encoding.
	BudgetLevels map[string]float64

	// DefaultBudget is the encoding used for unknown budget names.
	DefaultBudget float64

	// PaceLevels maps travel pace names to their ordinal encoding.
	PaceLevels map[string]float64

	// DefaultPace is the encoding used for unknown pace names.
	DefaultPace float64

	// CategoryInterests maps a place category to the interests it
	// satisfies.
	CategoryInterests map[string][]string

	// RelaxedCategories and PackedCategories drive the pace-match
	// feature for the relaxed and packed paces.
	RelaxedCategories map[string]bool
	PackedCategories  map[string]bool

	// InteractionWeights maps interaction types to training weights.
	InteractionWeights map[models.InteractionType]float64
}

// DefaultTables returns the production lookup tables.
func DefaultTables() Tables {
	return Tables{
		BudgetLevels: map[string]float64{
			"low": 1, "medium": 2, "high": 3, "luxury": 4,
		},
		DefaultBudget: 2,
		PaceLevels: map[string]float64{
			"relaxed": 1, "moderate": 2, "packed": 3,
		},
		DefaultPace: 2,
		CategoryInterests: map[string][]string{
			"museum":     {"culture", "history"},
			"restaurant": {"food"},
			"park":       {"nature", "relaxation"},
			"beach":      {"beach", "relaxation"},
			"shopping":   {"shopping"},
			"nightlife":  {"nightlife"},
			"attraction": {"culture", "adventure"},
		},
		RelaxedCategories: map[string]bool{
			"beach": true, "park": true, "spa": true,
		},
		PackedCategories: map[string]bool{
			"attraction": true, "museum": true, "shopping": true,
		},
		InteractionWeights: map[models.InteractionType]float64{
			models.InteractionView:  1,
			models.InteractionSave:  3,
			models.InteractionVisit: 5,
		},
	}
}
