// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package features derives the numeric feature vectors that the budget
// and ranking models consume from raw place, preference, and interaction
// records.
//
// Batch-relative statistics (median review count, max log-reviews) are
// computed within a single call over one coherent batch and never cached:
// each ranking request is its own statistical context.
package features

import (
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/wayfarer/internal/ml"
	"github.com/tomtom215/wayfarer/internal/models"
)

// Base place feature columns, in schema order. One-hot category columns
// follow these, sorted by category name for determinism.
var placeColumns = []string{
	"rating_normalized",
	"has_rating",
	"rating_quality",
	"log_reviews",
	"popularity_score",
	"is_popular",
	"review_count",
	"price_level",
	"price_level_normalized",
	"is_budget_friendly",
	"is_luxury",
	"latitude",
	"longitude",
	"lat_rounded",
	"lon_rounded",
	"quality_score",
}

// Interaction feature columns appended by InteractionFeatures.
var interactionColumns = []string{
	"budget_match",
	"interest_match",
	"pace_match",
	"compatibility_score",
}

// UserFeatureColumns lists the user feature schema in canonical order.
func UserFeatureColumns() []string {
	cols := []string{"budget_encoded", "budget_normalized"}
	for _, interest := range models.Interests() {
		cols = append(cols, "interest_"+interest)
	}
	return append(cols, "travel_pace", "group_size", "is_solo", "is_group")
}

// Engineer turns raw records into feature frames. Stateless apart from
// its injected lookup tables; safe for concurrent use.
type Engineer struct {
	tables Tables
}

// NewEngineer creates an engineer with the given lookup tables.
func NewEngineer(tables Tables) *Engineer {
	return &Engineer{tables: tables}
}

// PlaceFeatures derives the per-place feature frame for one batch. Output
// row count equals input row count and row order is preserved.
func (e *Engineer) PlaceFeatures(places []models.Place) (*ml.Frame, error) {
	if len(places) == 0 {
		return nil, ml.ErrEmptyTrainingSet
	}

	medianReviews := medianReviewCount(places)

	maxLogReviews := 0.0
	for _, p := range places {
		if lr := math.Log1p(float64(p.ReviewCount)); lr > maxLogReviews {
			maxLogReviews = lr
		}
	}

	frame := ml.NewFrame(append(append([]string(nil), placeColumns...), categoryColumns(places)...))
	for _, p := range places {
		frame.AppendMap(e.placeRow(p, medianReviews, maxLogReviews))
	}
	return frame, nil
}

// placeRow computes one place's features given the batch statistics.
func (e *Engineer) placeRow(p models.Place, medianReviews, maxLogReviews float64) map[string]float64 {
	logReviews := math.Log1p(float64(p.ReviewCount))

	row := map[string]float64{
		"rating_normalized":      p.Rating / 5.0,
		"has_rating":             boolToFloat(p.Rating > 0),
		"rating_quality":         ratingQuality(p.Rating),
		"log_reviews":            logReviews,
		"popularity_score":       p.Rating * logReviews,
		"is_popular":             boolToFloat(float64(p.ReviewCount) > medianReviews),
		"review_count":           float64(p.ReviewCount),
		"price_level":            float64(p.PriceLevel),
		"price_level_normalized": float64(p.PriceLevel) / 4.0,
		"is_budget_friendly":     boolToFloat(p.PriceLevel <= 2),
		"is_luxury":              boolToFloat(p.PriceLevel >= 3),
		"latitude":               p.Latitude,
		"longitude":              p.Longitude,
		"lat_rounded":            math.Round(p.Latitude*100) / 100,
		"lon_rounded":            math.Round(p.Longitude*100) / 100,
		"cat_" + p.Category:      1,
	}

	// quality_score: the log-review term contributes 0 when the whole
	// batch has zero reviews.
	quality := 0.4 * (p.Rating / 5.0)
	if maxLogReviews > 0 {
		quality += 0.3 * (logReviews / maxLogReviews)
	}
	quality += 0.3 * (float64(5-p.PriceLevel) / 4.0)
	row["quality_score"] = quality

	return row
}

// UserFeatures derives the feature map for one preference record.
// Unknown budget and pace names encode to their defaults; unknown
// interests are ignored.
func (e *Engineer) UserFeatures(pref models.UserPreference) map[string]float64 {
	budget, ok := e.tables.BudgetLevels[pref.Budget]
	if !ok {
		budget = e.tables.DefaultBudget
	}
	pace, ok := e.tables.PaceLevels[pref.TravelPace]
	if !ok {
		pace = e.tables.DefaultPace
	}

	interests := make(map[string]bool, len(pref.Interests))
	for _, interest := range pref.Interests {
		interests[interest] = true
	}

	groupSize := pref.GroupSize
	if groupSize < 1 {
		groupSize = 1
	}

	features := map[string]float64{
		"budget_encoded":    budget,
		"budget_normalized": budget / 4.0,
		"travel_pace":       pace,
		"group_size":        float64(groupSize),
		"is_solo":           boolToFloat(groupSize == 1),
		"is_group":          boolToFloat(groupSize >= 4),
	}
	for _, interest := range models.Interests() {
		features["interest_"+interest] = boolToFloat(interests[interest])
	}
	return features
}

// InteractionFeatures extends a place batch with user-place interaction
// features. The returned frame carries the place features plus
// budget_match, interest_match, pace_match, and compatibility_score.
//
// budget_match is deliberately unclamped and can go negative for a
// maximal price/budget mismatch, penalizing compatibility_score harder
// than any other term.
func (e *Engineer) InteractionFeatures(places []models.Place, userFeatures map[string]float64) (*ml.Frame, error) {
	placeFrame, err := e.PlaceFeatures(places)
	if err != nil {
		return nil, err
	}

	userBudget := userFeatures["budget_encoded"]
	userPace := userFeatures["travel_pace"]

	var userInterests []string
	for _, interest := range models.Interests() {
		if userFeatures["interest_"+interest] == 1 {
			userInterests = append(userInterests, interest)
		}
	}

	frame := ml.NewFrame(append(append([]string(nil), placeFrame.Columns...), interactionColumns...))
	for i, p := range places {
		budgetMatch := 1 - math.Abs(float64(p.PriceLevel)-userBudget)/4.0
		interestMatch := e.interestMatch(p.Category, userInterests)
		paceMatch := e.paceMatch(p.Category, userPace)

		quality, _ := placeFrame.Value(i, "quality_score")
		compatibility := 0.3*budgetMatch + 0.4*interestMatch + 0.3*quality

		row := append(append([]float64(nil), placeFrame.Rows[i]...),
			budgetMatch, interestMatch, paceMatch, compatibility)
		if err := frame.Append(row); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

// interestMatch is the share of the user's interests satisfied by the
// category's interest mapping.
func (e *Engineer) interestMatch(category string, userInterests []string) float64 {
	categoryInterests := e.tables.CategoryInterests[category]
	matches := 0
	for _, ui := range userInterests {
		for _, ci := range categoryInterests {
			if ui == ci {
				matches++
				break
			}
		}
	}
	return float64(matches) / math.Max(float64(len(userInterests)), 1)
}

// paceMatch scores category fit for the user's pace. Moderate pace is
// neutral for every category.
func (e *Engineer) paceMatch(category string, pace float64) float64 {
	switch pace {
	case 1:
		return boolToFloat(e.tables.RelaxedCategories[category])
	case 3:
		return boolToFloat(e.tables.PackedCategories[category])
	default:
		return 0.5
	}
}

// TrainingDataset joins interactions to place features by place ID and
// produces the ranking training frame and target vector. An interaction
// referencing an unknown place is an error; identifiers, timestamps, and
// the label never enter the feature columns.
func (e *Engineer) TrainingDataset(places []models.Place, interactions []models.Interaction) (*ml.Frame, []float64, error) {
	if len(interactions) == 0 {
		return nil, nil, ml.ErrEmptyTrainingSet
	}

	placeFrame, err := e.PlaceFeatures(places)
	if err != nil {
		return nil, nil, err
	}
	rowByID := make(map[string]int, len(places))
	for i, p := range places {
		rowByID[p.ID] = i
	}

	frame := ml.NewFrame(placeFrame.Columns)
	targets := make([]float64, 0, len(interactions))

	for _, interaction := range interactions {
		row, ok := rowByID[interaction.PlaceID]
		if !ok {
			return nil, nil, fmt.Errorf("interaction references unknown place %q", interaction.PlaceID)
		}

		weight, ok := e.tables.InteractionWeights[interaction.Type]
		if !ok {
			weight = 1
		}

		if err := frame.Append(append([]float64(nil), placeFrame.Rows[row]...)); err != nil {
			return nil, nil, err
		}
		targets = append(targets, interaction.Rating*weight)
	}
	return frame, targets, nil
}

// CategoryInterests exposes the injected category-to-interest mapping for
// callers that share it, such as the ranking fallback scorer.
func (e *Engineer) CategoryInterests() map[string][]string {
	return e.tables.CategoryInterests
}

// BudgetEncoding returns the ordinal encoding for a budget name.
func (e *Engineer) BudgetEncoding(budget string) float64 {
	if v, ok := e.tables.BudgetLevels[budget]; ok {
		return v
	}
	return e.tables.DefaultBudget
}

// ratingQuality buckets a rating into low (0), medium (1), high (2).
// Boundaries are (0,3], (3,4], (4,5]; non-positive ratings land in low.
func ratingQuality(rating float64) float64 {
	switch {
	case rating <= 3:
		return 0
	case rating <= 4:
		return 1
	default:
		return 2
	}
}

// medianReviewCount returns the batch median, averaging the middle pair
// for even-sized batches.
func medianReviewCount(places []models.Place) float64 {
	counts := make([]int, len(places))
	for i, p := range places {
		counts[i] = p.ReviewCount
	}
	sort.Ints(counts)

	mid := len(counts) / 2
	if len(counts)%2 == 1 {
		return float64(counts[mid])
	}
	return float64(counts[mid-1]+counts[mid]) / 2
}

// categoryColumns returns the sorted one-hot column names for the
// categories observed in the batch.
func categoryColumns(places []models.Place) []string {
	seen := make(map[string]bool)
	for _, p := range places {
		seen[p.Category] = true
	}
	cols := make([]string, 0, len(seen))
	for category := range seen {
		cols = append(cols, "cat_"+category)
	}
	sort.Strings(cols)
	return cols
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
