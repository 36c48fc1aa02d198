// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package models defines the shared domain types exchanged between the
// feature engineering, scoring, prediction, and API layers.
package models

// Place is a candidate point of interest supplied by an external place
// catalogue. It is immutable for the duration of one ranking request and
// never persisted by the core.
type Place struct {
	// ID uniquely identifies the place within its source catalogue.
	ID string `json:"id" validate:"required"`

	// Name is the display name of the place.
	Name string `json:"name" validate:"required"`

	// Category is the place's enumerated tag, e.g. museum, restaurant,
	// beach, park, shopping, temple, hotel.
	Category string `json:"category"`

	// Latitude and Longitude locate the place.
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`

	// Rating is the aggregate user rating in [0, 5].
	Rating float64 `json:"rating" validate:"min=0,max=5"`

	// ReviewCount is the number of reviews behind Rating.
	ReviewCount int `json:"review_count" validate:"min=0"`

	// PriceLevel is an ordinal price bracket in [1, 5].
	PriceLevel int `json:"price_level" validate:"min=1,max=5"`

	// Presence tags from the map-data source. These stand in for
	// notability when no review data is available.
	HasWikipedia   bool `json:"has_wikipedia,omitempty"`
	HasWebsite     bool `json:"has_website,omitempty"`
	HasDescription bool `json:"has_description,omitempty"`
}
