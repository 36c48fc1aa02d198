// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package models

// Interest vocabulary. Unknown interests in a request are ignored, not
// rejected.
const (
	InterestCulture    = "culture"
	InterestNature     = "nature"
	InterestFood       = "food"
	InterestAdventure  = "adventure"
	InterestShopping   = "shopping"
	InterestHistory    = "history"
	InterestBeach      = "beach"
	InterestNightlife  = "nightlife"
	InterestRelaxation = "relaxation"
)

// Interests lists the fixed nine-term interest vocabulary in canonical order.
func Interests() []string {
	return []string{
		InterestCulture, InterestNature, InterestFood,
		InterestAdventure, InterestShopping, InterestHistory,
		InterestBeach, InterestNightlife, InterestRelaxation,
	}
}

// UserPreference is a single ranking request's context. Constructed per
// request, read-only, discarded after scoring.
type UserPreference struct {
	// Budget is the ordinal budget level: low, medium, high, luxury.
	// Unknown values encode as medium.
	Budget string `json:"budget" validate:"omitempty,oneof=low medium high luxury"`

	// Interests holds interest tags drawn from the fixed vocabulary.
	// A nil slice means the user expressed no interests at all, which
	// the scorer treats as neutral rather than as zero affinity.
	Interests []string `json:"interests,omitempty"`

	// TravelPace is relaxed, moderate, or packed. Unknown values encode
	// as moderate.
	TravelPace string `json:"travel_pace" validate:"omitempty,oneof=relaxed moderate packed"`

	// GroupSize is the number of travelers.
	GroupSize int `json:"group_size" validate:"omitempty,min=1"`
}

// TripFeatures is the input to budget prediction. Violations are rejected
// with a validation error before the model is consulted.
type TripFeatures struct {
	NumDays              int     `json:"num_days" validate:"min=1,max=365"`
	NumPeople            int     `json:"num_people" validate:"min=1,max=50"`
	AccommodationLevel   int     `json:"accommodation_level" validate:"min=1,max=5"`
	DestinationCostIndex float64 `json:"destination_cost_index" validate:"omitempty,gt=0"`
	SeasonMultiplier     float64 `json:"season_multiplier" validate:"omitempty,gt=0"`
}

// Normalized returns a copy with the optional multipliers defaulted to 1.0
// when unset.
func (tf TripFeatures) Normalized() TripFeatures {
	if tf.DestinationCostIndex <= 0 {
		tf.DestinationCostIndex = 1.0
	}
	if tf.SeasonMultiplier <= 0 {
		tf.SeasonMultiplier = 1.0
	}
	return tf
}
