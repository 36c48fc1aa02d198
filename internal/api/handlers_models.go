// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/trainer"
)

// TrainRequest is the optional body of POST /api/v1/models/train. A zero
// seed uses the configured training seed.
type TrainRequest struct {
	Seed int64 `json:"seed,omitempty" validate:"omitempty,min=0"`
}

// TrainResponse acknowledges an accepted training run.
type TrainResponse struct {
	Status string `json:"status"`
	Seed   int64  `json:"seed"`
}

// TrainModels handles POST /api/v1/models/train. Training runs in the
// background; concurrent requests are rejected rather than queued.
func (h *Handler) TrainModels(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req TrainRequest
	if r.ContentLength > 0 {
		if !decodeBody(w, r, &req) {
			return
		}
	}

	seed := req.Seed
	if seed == 0 {
		seed = h.config.Models.TrainingSeed
	}

	if !h.training.CompareAndSwap(false, true) {
		respondError(w, http.StatusConflict, models.ErrCodeTrainingInProgress,
			"A training run is already in progress", nil)
		return
	}

	go h.runTraining(seed)

	respondSuccess(w, http.StatusAccepted, TrainResponse{
		Status: "training_started",
		Seed:   seed,
	}, start)
}

// runTraining executes a background training run. The caller holds the
// training flag; failures leave the previous models serving.
func (h *Handler) runTraining(seed int64) {
	defer h.training.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := h.train(ctx, seed); err != nil {
		logging.Error().Err(err).Int64("seed", seed).Msg("Training run failed")
		return
	}
	logging.Info().Int64("seed", seed).Msg("Training run completed, models swapped in")
}

// ModelStatus describes one model's current state.
type ModelStatus struct {
	Trained            bool               `json:"trained"`
	Algorithm          string             `json:"algorithm,omitempty"`
	TrainedAt          string             `json:"trained_at,omitempty"`
	FeatureImportances map[string]float64 `json:"feature_importances,omitempty"`
}

// ModelsStatusResponse is the payload of GET /api/v1/models/status.
type ModelsStatusResponse struct {
	Training bool                   `json:"training_in_progress"`
	Models   map[string]ModelStatus `json:"models"`
}

// ModelsStatus handles GET /api/v1/models/status.
func (h *Handler) ModelsStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	budgetModel, rankModel := h.Models()

	respondSuccess(w, http.StatusOK, ModelsStatusResponse{
		Training: h.TrainingInProgress(),
		Models: map[string]ModelStatus{
			"budget": {
				Trained:            budgetModel.IsTrained(),
				Algorithm:          budgetModel.Algorithm(),
				TrainedAt:          formatTrainedAt(budgetModel.IsTrained(), budgetModel.TrainedAt()),
				FeatureImportances: budgetModel.FeatureImportances(),
			},
			"ranking": {
				Trained:            rankModel.IsTrained(),
				Algorithm:          rankModel.Algorithm(),
				TrainedAt:          formatTrainedAt(rankModel.IsTrained(), rankModel.TrainedAt()),
				FeatureImportances: rankModel.FeatureImportances(),
			},
		},
	}, start)
}

func formatTrainedAt(trained bool, at time.Time) string {
	if !trained {
		return ""
	}
	return at.UTC().Format(time.RFC3339)
}

// ModelsMetricsResponse is the payload of GET /api/v1/models/metrics.
type ModelsMetricsResponse struct {
	Reports []trainer.Report `json:"reports"`
}

// ModelsMetrics handles GET /api/v1/models/metrics. With ?model=budget
// or ?model=ranking only the latest report for that model is returned.
func (h *Handler) ModelsMetrics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if model := r.URL.Query().Get("model"); model != "" {
		report, ok := h.trainer.LastReport(model)
		if !ok {
			respondError(w, http.StatusNotFound, models.ErrCodeModelNotFound,
				"No training report for model "+sanitizeLogValue(model), nil)
			return
		}
		respondSuccess(w, http.StatusOK, ModelsMetricsResponse{Reports: []trainer.Report{report}}, start)
		return
	}

	respondSuccess(w, http.StatusOK, ModelsMetricsResponse{Reports: h.trainer.History()}, start)
}
