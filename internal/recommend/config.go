// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import "fmt"

// Config contains all configuration for the place scorer. Lookup tables
// live here rather than as package globals so tests can substitute
// fixture tables.
type Config struct {
	// Weights defines the contribution of each sub-score to the
	// composite. They are applied as-is, not normalized.
	Weights ScoreWeights `json:"weights"`

	// InterestKeywords maps a user interest to the category keywords
	// that satisfy it.
	InterestKeywords map[string][]string `json:"interest_keywords"`

	// DefaultLimit bounds result length when a request does not set one.
	DefaultLimit int `json:"default_limit"`
}

// ScoreWeights defines the composite blend across the five sub-scores.
type ScoreWeights struct {
	Popularity float64 `json:"popularity"`
	Interest   float64 `json:"interest"`
	Season     float64 `json:"season"`
	Distance   float64 `json:"distance"`
	Diversity  float64 `json:"diversity"`
}

// DefaultConfig returns the production configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights: ScoreWeights{
			Popularity: 0.35,
			Interest:   0.25,
			Season:     0.20,
			Distance:   0.10,
			Diversity:  0.10,
		},
		InterestKeywords: map[string][]string{
			"nature":     {"beach", "mountain", "park", "waterfall", "viewpoint"},
			"religious":  {"temple", "monument"},
			"culture":    {"museum", "monument", "tourist_attraction"},
			"adventure":  {"mountain", "viewpoint", "beach"},
			"history":    {"monument", "museum", "tourist_attraction"},
			"relaxation": {"beach", "park"},
			"heritage":   {"monument", "tourist_attraction"},
			"beach":      {"beach"},
			"food":       {"restaurant", "market"},
			"shopping":   {"shopping", "market"},
			"nightlife":  {"nightlife"},
		},
		DefaultLimit: 10,
	}
}

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	w := c.Weights
	for name, v := range map[string]float64{
		"popularity": w.Popularity,
		"interest":   w.Interest,
		"season":     w.Season,
		"distance":   w.Distance,
		"diversity":  w.Diversity,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s must be non-negative, got %v", name, v)
		}
	}
	if w.Popularity+w.Interest+w.Season+w.Distance+w.Diversity <= 0 {
		return fmt.Errorf("weights must not all be zero")
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	return nil
}
