// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/models"
)

// Scorer ranks map-sourced candidate places. Immutable after
// construction and safe for concurrent use.
type Scorer struct {
	config *Config
	logger zerolog.Logger
	now    func() time.Time
}

// NewScorer creates a scorer. A nil config uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewScorer(cfg *Config, logger zerolog.Logger) (*Scorer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Scorer{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		now:    time.Now,
	}, nil
}

// SetClock replaces the scorer's time source. Intended for tests and
// for callers that pin the season to a trip date rather than today.
func (s *Scorer) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Rank scores every candidate and returns them best first with ranks
// assigned 1..N. Exact score ties keep input order. The result is
// truncated to the request limit.
func (s *Scorer) Rank(places []models.Place, req Request) []ScoredPlace {
	month := req.Month
	if month == 0 {
		month = s.now().Month()
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.config.DefaultLimit
	}

	w := s.config.Weights
	scored := make([]ScoredPlace, len(places))

	// Diversity decays with how many same-category places were already
	// scored, so the counter follows input order, not rank order.
	categoryCounts := make(map[string]int)

	for i, p := range places {
		popularity := s.popularityScore(p)
		interest := s.interestScore(p, req.Interests)
		season := seasonScore(p.Category, month)
		distance := distanceScore(p.Latitude, p.Longitude, req.CenterLat, req.CenterLon)
		diversity := 1.0 / (1.0 + 0.1*float64(categoryCounts[p.Category]))
		categoryCounts[p.Category]++

		composite := w.Popularity*popularity +
			w.Interest*interest +
			w.Season*season +
			w.Distance*distance +
			w.Diversity*diversity

		scored[i] = ScoredPlace{
			Place:     p,
			RankScore: round4(composite),
			Breakdown: ScoreBreakdown{
				Popularity:    round2(popularity),
				InterestMatch: round2(interest),
				SeasonFit:     round2(season),
				Distance:      round2(distance),
				Diversity:     round2(diversity),
			},
		}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].RankScore > scored[b].RankScore
	})
	for i := range scored {
		scored[i].Rank = i + 1
	}

	s.logger.Debug().
		Int("candidates", len(places)).
		Int("interests", len(req.Interests)).
		Int("month", int(month)).
		Msg("ranked candidate batch")

	if limit < len(scored) {
		scored = scored[:limit]
	}
	return scored
}

// RankByCategory restricts the candidate set to one category before
// scoring. Interest matching is skipped because the category is already
// the user's explicit choice.
func (s *Scorer) RankByCategory(places []models.Place, category string, req Request) []ScoredPlace {
	category = strings.ToLower(category)

	filtered := make([]models.Place, 0, len(places))
	for _, p := range places {
		if strings.ToLower(p.Category) == category {
			filtered = append(filtered, p)
		}
	}

	req.Interests = nil
	return s.Rank(filtered, req)
}

// Summarize aggregates a ranked result set. Returns the zero Summary
// for an empty set.
func (s *Scorer) Summarize(ranked []ScoredPlace) Summary {
	if len(ranked) == 0 {
		return Summary{}
	}

	categories := make(map[string]int)
	total := 0.0
	for _, sp := range ranked {
		categories[sp.Place.Category]++
		total += sp.RankScore
	}

	top := ""
	for category, count := range categories {
		if top == "" || count > categories[top] || (count == categories[top] && category < top) {
			top = category
		}
	}

	return Summary{
		TotalPlaces:  len(ranked),
		Categories:   categories,
		AverageScore: round2(total / float64(len(ranked))),
		TopCategory:  top,
	}
}

// popularityScore proxies notability through curated-tag presence. The
// candidate source carries no review data at this layer. Contributions
// are exact tenths, so they accumulate as integers to keep a fully
// tagged place at exactly 1.0.
func (s *Scorer) popularityScore(p models.Place) float64 {
	tenths := 5
	if p.HasWikipedia {
		tenths += 2
	}
	if p.HasWebsite {
		tenths++
	}
	if p.HasDescription {
		tenths++
	}
	if strings.Contains(strings.ToLower(p.Category), "attraction") {
		tenths++
	}
	if tenths > 10 {
		tenths = 10
	}
	return float64(tenths) / 10
}

// interestScore measures interest-to-category affinity. Keyword and
// loose substring matches both contribute, so a category satisfying an
// interest on both paths counts 1.5 shares before the cap.
func (s *Scorer) interestScore(p models.Place, interests []string) float64 {
	if len(interests) == 0 {
		return 0.5
	}

	category := strings.ToLower(p.Category)
	share := 1.0 / float64(len(interests))
	score := 0.0

	for _, interest := range interests {
		interest = strings.ToLower(interest)

		for _, keyword := range s.config.InterestKeywords[interest] {
			if strings.Contains(category, keyword) {
				score += share
				break
			}
		}

		if strings.Contains(category, interest) || strings.Contains(interest, category) {
			score += 0.5 * share
		}
	}
	return math.Min(score, 1.0)
}

// seasonScore rates a category's month fit. Northern-hemisphere season
// windows; categories outside the beach and mountain families are
// season-agnostic.
func seasonScore(category string, month time.Month) float64 {
	category = strings.ToLower(category)

	switch {
	case strings.Contains(category, "beach"):
		switch {
		case month >= time.June && month <= time.August:
			return 1.0
		case month >= time.March && month <= time.May,
			month >= time.September && month <= time.November:
			return 0.7
		default:
			return 0.4
		}
	case strings.Contains(category, "mountain"), strings.Contains(category, "hill"):
		if (month >= time.March && month <= time.May) ||
			(month >= time.September && month <= time.November) {
			return 1.0
		}
		return 0.7
	default:
		return 0.8
	}
}

// distanceScore buckets Euclidean degree-distance from the search
// center. Coarse but adequate at city scale; 0.5 degrees is roughly
// 55km.
func distanceScore(lat, lon, centerLat, centerLon float64) float64 {
	distance := math.Hypot(lat-centerLat, lon-centerLon)

	switch {
	case distance < 0.1:
		return 1.0
	case distance < 0.3:
		return 0.8
	case distance < 0.5:
		return 0.6
	default:
		return 0.4
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
