// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/ml"
	"github.com/tomtom215/wayfarer/internal/models"
)

// BudgetPredictRequest is the body of POST /api/v1/budget/predict.
// The destination resolves to a cost index server-side; clients never
// supply the index directly.
type BudgetPredictRequest struct {
	Destination        string  `json:"destination" validate:"required,min=1,max=100"`
	NumDays            int     `json:"num_days" validate:"min=1,max=365"`
	NumPeople          int     `json:"num_people" validate:"min=1,max=50"`
	AccommodationLevel int     `json:"accommodation_level" validate:"min=1,max=5"`
	SeasonMultiplier   float64 `json:"season_multiplier" validate:"omitempty,gt=0"`
}

// budgetShares apportions a predicted total across spending categories.
var budgetShares = map[string]float64{
	"accommodation": 0.35,
	"food":          0.30,
	"activities":    0.20,
	"transport":     0.15,
}

// BudgetPrediction is the response payload of POST /api/v1/budget/predict.
type BudgetPrediction struct {
	Destination string             `json:"destination"`
	TotalBudget float64            `json:"total_budget"`
	Currency    string             `json:"currency"`
	PerPerson   float64            `json:"per_person"`
	PerDay      float64            `json:"per_day"`
	Breakdown   map[string]float64 `json:"breakdown"`
	CostIndex   float64            `json:"destination_cost_index"`
	Algorithm   string             `json:"algorithm"`
}

// PredictBudget handles POST /api/v1/budget/predict.
func (h *Handler) PredictBudget(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req BudgetPredictRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	budgetModel, _ := h.Models()
	if !budgetModel.IsTrained() {
		metrics.RecordBudgetPrediction("error", 0)
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeModelNotTrained,
			"Budget model has not been trained yet", nil)
		return
	}

	costIndex := h.costIndex.IndexFor(req.Destination)
	tf := models.TripFeatures{
		NumDays:              req.NumDays,
		NumPeople:            req.NumPeople,
		AccommodationLevel:   req.AccommodationLevel,
		DestinationCostIndex: costIndex,
		SeasonMultiplier:     req.SeasonMultiplier,
	}.Normalized()

	predicted, err := budgetModel.PredictTripBudget(tf)
	if err != nil {
		metrics.RecordBudgetPrediction("error", 0)
		if errors.Is(err, ml.ErrNotTrained) {
			respondError(w, http.StatusServiceUnavailable, models.ErrCodeModelNotTrained,
				"Budget model has not been trained yet", err)
			return
		}
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal,
			"Budget prediction failed", err)
		return
	}

	// Tree ensembles can extrapolate below zero on extreme inputs;
	// the magnitude is still the best available estimate.
	outcome := "ok"
	if predicted < 0 {
		predicted = math.Abs(predicted)
		outcome = "clamped"
	}
	metrics.RecordBudgetPrediction(outcome, predicted)

	breakdown := make(map[string]float64, len(budgetShares))
	for category, share := range budgetShares {
		breakdown[category] = roundCents(predicted * share)
	}

	respondSuccess(w, http.StatusOK, BudgetPrediction{
		Destination: req.Destination,
		TotalBudget: roundCents(predicted),
		Currency:    "USD",
		PerPerson:   roundCents(predicted / float64(tf.NumPeople)),
		PerDay:      roundCents(predicted / float64(tf.NumDays)),
		Breakdown:   breakdown,
		CostIndex:   costIndex,
		Algorithm:   budgetModel.Algorithm(),
	}, start)
}

// BudgetEstimate is the response payload of GET /api/v1/budget/estimate.
// It is a table-driven heuristic, available before any training run.
type BudgetEstimate struct {
	Destination        string             `json:"destination"`
	NumDays            int                `json:"num_days"`
	NumPeople          int                `json:"num_people"`
	AccommodationLevel string             `json:"accommodation_level"`
	DailyCost          float64            `json:"daily_cost"`
	TotalCost          float64            `json:"total_cost"`
	PerPerson          float64            `json:"per_person"`
	Currency           string             `json:"currency"`
	DailyBreakdown     map[string]float64 `json:"daily_breakdown"`
}

// EstimateBudget handles GET /api/v1/budget/estimate/{destination}.
func (h *Handler) EstimateBudget(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	destination := chi.URLParam(r, "destination")
	if destination == "" {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation,
			"Destination is required", nil)
		return
	}

	numDays := getIntParam(r, "num_days", 7)
	if numDays < 1 || numDays > 365 {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation,
			"num_days must be between 1 and 365", nil)
		return
	}
	numPeople := getIntParam(r, "num_people", 2)
	if numPeople < 1 || numPeople > 50 {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation,
			"num_people must be between 1 and 50", nil)
		return
	}
	accommodation := r.URL.Query().Get("accommodation_level")
	if accommodation == "" {
		accommodation = "mid_range"
	}

	estimate := h.costIndex.EstimateDaily(destination, accommodation)
	total := estimate.TotalDaily * float64(numDays) * float64(numPeople)

	respondSuccess(w, http.StatusOK, BudgetEstimate{
		Destination:        destination,
		NumDays:            numDays,
		NumPeople:          numPeople,
		AccommodationLevel: estimate.Accommodation,
		DailyCost:          estimate.TotalDaily,
		TotalCost:          roundCents(total),
		PerPerson:          roundCents(total / float64(numPeople)),
		Currency:           "USD",
		DailyBreakdown:     estimate.Breakdown,
	}, start)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
