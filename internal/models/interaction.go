// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package models

import "time"

// InteractionType classifies how a user engaged with a place.
type InteractionType string

const (
	// InteractionView records that the user viewed the place.
	InteractionView InteractionType = "view"

	// InteractionSave records that the user saved the place to a trip.
	InteractionSave InteractionType = "save"

	// InteractionVisit records a confirmed visit.
	InteractionVisit InteractionType = "visit"
)

// Weight returns the training weight for the interaction type. Stronger
// engagement earns a larger weight in the ranking training target.
func (t InteractionType) Weight() float64 {
	switch t {
	case InteractionView:
		return 1.0
	case InteractionSave:
		return 3.0
	case InteractionVisit:
		return 5.0
	default:
		return 1.0
	}
}

// Valid reports whether the interaction type is one of the known values.
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionView, InteractionSave, InteractionVisit:
		return true
	default:
		return false
	}
}

// Interaction is a single user-place engagement event used for ranking
// model training.
type Interaction struct {
	UserID    string          `json:"user_id" validate:"required"`
	PlaceID   string          `json:"place_id" validate:"required"`
	Type      InteractionType `json:"type" validate:"required,oneof=view save visit"`
	Rating    float64         `json:"rating" validate:"min=0,max=5"`
	Timestamp time.Time       `json:"timestamp"`
}
