// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"time"

	"github.com/tomtom215/wayfarer/internal/models"
)

// Request describes one scoring invocation over a candidate batch.
type Request struct {
	// Interests are the user's declared interests. Nil or empty means
	// no preference, which scores every candidate neutrally.
	Interests []string `json:"interests"`

	// CenterLat and CenterLon anchor the distance sub-score at the
	// resolved search center.
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`

	// Month overrides the scorer's clock for season fit. Zero means
	// use the clock.
	Month time.Month `json:"month,omitempty"`

	// Limit truncates the ranked result. Non-positive means the
	// configured default.
	Limit int `json:"limit,omitempty"`
}

// ScoreBreakdown carries the per-factor sub-scores behind a composite,
// each rounded to 2 decimals.
type ScoreBreakdown struct {
	Popularity    float64 `json:"popularity"`
	InterestMatch float64 `json:"interest_match"`
	SeasonFit     float64 `json:"season_fit"`
	Distance      float64 `json:"distance"`
	Diversity     float64 `json:"diversity"`
}

// ScoredPlace is one ranked candidate with its explainability data.
type ScoredPlace struct {
	Place     models.Place   `json:"place"`
	Rank      int            `json:"rank"`
	RankScore float64        `json:"rank_score"`
	Breakdown ScoreBreakdown `json:"score_breakdown"`
}

// Summary aggregates a result set for presentation.
type Summary struct {
	TotalPlaces  int            `json:"total_places"`
	Categories   map[string]int `json:"categories"`
	AverageScore float64        `json:"average_score"`
	TopCategory  string         `json:"top_category"`
}
