// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package trainer

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tomtom215/wayfarer/internal/budget"
	"github.com/tomtom215/wayfarer/internal/ml"
	"github.com/tomtom215/wayfarer/internal/models"
)

// Synthetic data generators for bootstrap training when no real
// interaction history exists yet. All are seeded and deterministic.

var syntheticCategories = []string{"museum", "restaurant", "park", "beach", "shopping"}

// SyntheticPlaces generates n plausible place records clustered around
// one metro area.
func SyntheticPlaces(n int, seed int64) []models.Place {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic fixtures, not cryptography

	places := make([]models.Place, n)
	for i := range places {
		places[i] = models.Place{
			ID:             fmt.Sprintf("place_%04d", i),
			Name:           fmt.Sprintf("Place %d", i),
			Category:       syntheticCategories[rng.Intn(len(syntheticCategories))],
			Rating:         3.5 + rng.Float64()*1.5,
			ReviewCount:    10 + rng.Intn(4990),
			PriceLevel:     1 + rng.Intn(4),
			Latitude:       40.0 + rng.Float64(),
			Longitude:      -74.0 + rng.Float64(),
			HasWikipedia:   rng.Float64() < 0.2,
			HasWebsite:     rng.Float64() < 0.5,
			HasDescription: rng.Float64() < 0.4,
		}
	}
	return places
}

// SyntheticInteractions generates n engagement events against the given
// places, weighted 60% view, 30% save, 10% visit.
func SyntheticInteractions(n int, places []models.Place, seed int64) []models.Interaction {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic fixtures, not cryptography

	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	interactions := make([]models.Interaction, n)
	for i := range interactions {
		var typ models.InteractionType
		switch roll := rng.Float64(); {
		case roll < 0.6:
			typ = models.InteractionView
		case roll < 0.9:
			typ = models.InteractionSave
		default:
			typ = models.InteractionVisit
		}

		interactions[i] = models.Interaction{
			UserID:    fmt.Sprintf("user_%03d", rng.Intn(200)),
			PlaceID:   places[rng.Intn(len(places))].ID,
			Type:      typ,
			Rating:    3.0 + rng.Float64()*2.0,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return interactions
}

// SyntheticTrips generates n trip samples whose cost follows a monotone
// multiplicative formula plus Gaussian noise:
//
//	days * people * (50 + 30*accommodation) * cost_index * season
func SyntheticTrips(n int, seed int64) (*ml.Frame, []float64) {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic fixtures, not cryptography

	frame := ml.NewFrame(budget.TripFeatureColumns)
	costs := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		days := float64(2 + rng.Intn(13))
		people := float64(1 + rng.Intn(5))
		accommodation := float64(1 + rng.Intn(5))
		costIndex := 0.5 + rng.Float64()*1.5
		season := 0.8 + rng.Float64()*0.6

		frame.AppendMap(map[string]float64{
			"num_days":               days,
			"num_people":             people,
			"accommodation_level":    accommodation,
			"destination_cost_index": costIndex,
			"season_multiplier":      season,
		})
		costs = append(costs, days*people*(50+accommodation*30)*costIndex*season+rng.NormFloat64()*100)
	}
	return frame, costs
}
