// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package budget

import (
	"math"
	"strings"
)

// CostIndex resolves destination names to cost-of-living multipliers
// relative to a 1.0 baseline. The tables are injected at construction so
// tests can substitute fixtures.
type CostIndex struct {
	cities    map[string]float64
	countries map[string]float64
}

// NewCostIndex creates a resolver over the given city and country tables.
func NewCostIndex(cities, countries map[string]float64) *CostIndex {
	return &CostIndex{cities: cities, countries: countries}
}

// DefaultCostIndex returns the production cost tables.
func DefaultCostIndex() *CostIndex {
	return NewCostIndex(cityCostIndex, countryCostIndex)
}

// IndexFor resolves a destination to its cost index. Exact city match
// wins, then exact country, then substring fallback in the same order.
// Unknown destinations default to 1.0.
func (c *CostIndex) IndexFor(destination string) float64 {
	dest := strings.ToLower(strings.TrimSpace(destination))

	if index, ok := c.cities[dest]; ok {
		return index
	}
	if index, ok := c.countries[dest]; ok {
		return index
	}
	for city, index := range c.cities {
		if strings.Contains(dest, city) {
			return index
		}
	}
	for country, index := range c.countries {
		if strings.Contains(dest, country) {
			return index
		}
	}
	return 1.0
}

// DailyEstimate is the heuristic per-day cost breakdown for a
// destination, independent of any trained model.
type DailyEstimate struct {
	Destination   string             `json:"destination"`
	TotalDaily    float64            `json:"total_daily_cost"`
	Breakdown     map[string]float64 `json:"breakdown"`
	Accommodation string             `json:"accommodation_level"`
}

// accommodationMultipliers rescales the accommodation share of the daily
// estimate by lodging tier.
var accommodationMultipliers = map[string]float64{
	"hostel":       0.3,
	"budget_hotel": 0.5,
	"mid_range":    1.0,
	"upscale":      1.8,
	"luxury":       3.0,
}

// EstimateDaily computes the heuristic daily cost for a destination at
// the given accommodation tier. Unknown tiers fall back to mid-range.
func (c *CostIndex) EstimateDaily(destination, accommodationLevel string) DailyEstimate {
	const baseCost = 100.0
	destMultiplier := c.IndexFor(destination)

	accMult, ok := accommodationMultipliers[accommodationLevel]
	if !ok {
		accMult = 1.0
		accommodationLevel = "mid_range"
	}

	accommodation := baseCost * 0.4 * destMultiplier * accMult
	food := baseCost * 0.3 * destMultiplier
	transport := baseCost * 0.15 * destMultiplier
	activities := baseCost * 0.12 * destMultiplier
	misc := baseCost * 0.03 * destMultiplier

	total := accommodation + food + transport + activities + misc

	return DailyEstimate{
		Destination:   destination,
		TotalDaily:    round2(total),
		Accommodation: accommodationLevel,
		Breakdown: map[string]float64{
			"accommodation":  round2(accommodation),
			"food":           round2(food),
			"transportation": round2(transport),
			"activities":     round2(activities),
			"miscellaneous":  round2(misc),
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// cityCostIndex holds per-city multipliers relative to the 1.0 baseline.
var cityCostIndex = map[string]float64{
	// Asia, budget friendly
	"bangkok": 0.55, "hanoi": 0.45, "ho chi minh": 0.50, "manila": 0.50,
	"jakarta": 0.48, "kuala lumpur": 0.52, "delhi": 0.42, "mumbai": 0.48,
	"bangalore": 0.50, "kathmandu": 0.40, "colombo": 0.45,

	// Asia, moderate
	"beijing": 0.75, "shanghai": 0.80, "seoul": 1.15, "taipei": 0.85,
	"osaka": 1.10, "kyoto": 1.05, "dubai": 1.25,

	// Asia, expensive
	"tokyo": 1.45, "hong kong": 1.50, "singapore": 1.55,

	// Europe, budget friendly
	"sofia": 0.55, "bucharest": 0.58, "budapest": 0.65, "prague": 0.75,
	"warsaw": 0.70, "lisbon": 0.80, "athens": 0.78, "barcelona": 0.95,

	// Europe, moderate
	"rome": 1.05, "milan": 1.10, "berlin": 0.95, "vienna": 1.00,
	"amsterdam": 1.20, "dublin": 1.15,

	// Europe, expensive
	"london": 1.40, "paris": 1.35, "zurich": 1.75, "oslo": 1.60,
	"copenhagen": 1.55, "stockholm": 1.45,

	// North America
	"mexico city": 0.60, "toronto": 1.10, "vancouver": 1.15,
	"new york": 1.50, "san francisco": 1.60, "los angeles": 1.35,
	"miami": 1.05, "chicago": 1.20,

	// South America
	"buenos aires": 0.62, "santiago": 0.70, "rio de janeiro": 0.68,
	"lima": 0.55, "bogota": 0.52,

	// Oceania
	"sydney": 1.35, "melbourne": 1.30, "auckland": 1.25,
}

// countryCostIndex is the country-level fallback table.
var countryCostIndex = map[string]float64{
	"thailand": 0.55, "vietnam": 0.48, "india": 0.45, "indonesia": 0.48,
	"china": 0.75, "japan": 1.25, "singapore": 1.55, "south korea": 1.15,
	"spain": 0.92, "italy": 1.05, "france": 1.30, "germany": 1.00,
	"uk": 1.35, "switzerland": 1.72, "norway": 1.60,
	"usa": 1.25, "canada": 1.10, "mexico": 0.60,
	"australia": 1.30, "new zealand": 1.22,
}
