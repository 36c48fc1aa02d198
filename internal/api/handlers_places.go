// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/ml"
	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/recommend"
)

// RecommendRequest is the body of POST /api/v1/places/recommend. The
// optional category narrows candidates before scoring.
type RecommendRequest struct {
	Places    []models.Place `json:"places" validate:"required,min=1,dive"`
	Interests []string       `json:"interests,omitempty"`
	CenterLat float64        `json:"center_lat" validate:"omitempty,latitude"`
	CenterLon float64        `json:"center_lon" validate:"omitempty,longitude"`
	Month     int            `json:"month,omitempty" validate:"omitempty,min=1,max=12"`
	Limit     int            `json:"limit,omitempty" validate:"omitempty,min=1"`
	Category  string         `json:"category,omitempty"`
}

// RecommendResponse pairs the ranked places with their batch summary.
type RecommendResponse struct {
	Places  []recommend.ScoredPlace `json:"places"`
	Summary recommend.Summary       `json:"summary"`
}

// RecommendPlaces handles POST /api/v1/places/recommend.
func (h *Handler) RecommendPlaces(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RecommendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}
	if !h.checkCandidateLimit(w, len(req.Places)) {
		return
	}

	scoreReq := recommend.Request{
		Interests: req.Interests,
		CenterLat: req.CenterLat,
		CenterLon: req.CenterLon,
		Month:     time.Month(req.Month),
		Limit:     req.Limit,
	}

	var ranked []recommend.ScoredPlace
	if req.Category != "" {
		ranked = h.scorer.RankByCategory(req.Places, req.Category, scoreReq)
	} else {
		ranked = h.scorer.Rank(req.Places, scoreReq)
	}
	metrics.RecordScorerBatch(time.Since(start))

	respondSuccess(w, http.StatusOK, RecommendResponse{
		Places:  ranked,
		Summary: h.scorer.Summarize(ranked),
	}, start)
}

// RankRequest is the body of POST /api/v1/places/rank.
type RankRequest struct {
	Places      []models.Place        `json:"places" validate:"required,min=1,dive"`
	Preferences models.UserPreference `json:"preferences"`
	TopK        int                   `json:"top_k,omitempty" validate:"omitempty,min=1"`
}

// RankPlaces handles POST /api/v1/places/rank. An untrained model is not
// an error here; the heuristic result carries scored_by=heuristic.
func (h *Handler) RankPlaces(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RankRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}
	if !h.checkCandidateLimit(w, len(req.Places)) {
		return
	}

	topK := req.TopK
	if topK <= 0 {
		topK = h.config.API.DefaultTopK
	}

	_, rankModel := h.Models()
	result, err := rankModel.RankPlaces(req.Places, req.Preferences, topK)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal,
			"Place ranking failed", err)
		return
	}
	metrics.RecordRankingRequest(result.ScoredBy, len(req.Places))

	respondSuccess(w, http.StatusOK, result, start)
}

// ExplainRequest is the body of POST /api/v1/places/explain.
type ExplainRequest struct {
	Place       models.Place          `json:"place" validate:"required"`
	Preferences models.UserPreference `json:"preferences"`
}

// ExplainRanking handles POST /api/v1/places/explain. Explanations need
// model feature importances, so an untrained model is a hard failure.
func (h *Handler) ExplainRanking(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ExplainRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req.Place) {
		return
	}

	_, rankModel := h.Models()
	explanation, err := rankModel.ExplainPrediction(req.Place, req.Preferences)
	if err != nil {
		if errors.Is(err, ml.ErrNotTrained) {
			respondError(w, http.StatusServiceUnavailable, models.ErrCodeModelNotTrained,
				"Ranking model has not been trained yet", err)
			return
		}
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal,
			"Explanation failed", err)
		return
	}

	respondSuccess(w, http.StatusOK, explanation, start)
}

// checkCandidateLimit rejects batches above the configured bound.
func (h *Handler) checkCandidateLimit(w http.ResponseWriter, n int) bool {
	maxCandidates := h.config.API.MaxCandidates
	if maxCandidates > 0 && n > maxCandidates {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation,
			fmt.Sprintf("Too many candidate places: %d exceeds the limit of %d", n, maxCandidates), nil)
		return false
	}
	return true
}
