// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"net/http"
	"time"
)

// ModelHealth reports one model's readiness.
type ModelHealth struct {
	Trained   bool   `json:"trained"`
	Algorithm string `json:"algorithm,omitempty"`
	TrainedAt string `json:"trained_at,omitempty"`
}

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status        string                 `json:"status"`
	Version       string                 `json:"version"`
	Environment   string                 `json:"environment"`
	UptimeSeconds int64                  `json:"uptime_seconds"`
	Training      bool                   `json:"training_in_progress"`
	Models        map[string]ModelHealth `json:"models"`
}

// Health handles GET /health. It reports degraded when neither model is
// trained, since the budget endpoint cannot serve at all in that state.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	budgetModel, rankModel := h.Models()

	status := "ok"
	if !budgetModel.IsTrained() && !rankModel.IsTrained() {
		status = "degraded"
	}

	payload := HealthStatus{
		Status:        status,
		Version:       Version,
		Environment:   h.config.Server.Environment,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Training:      h.TrainingInProgress(),
		Models: map[string]ModelHealth{
			"budget":  modelHealth(budgetModel.IsTrained(), budgetModel.Algorithm(), budgetModel.TrainedAt()),
			"ranking": modelHealth(rankModel.IsTrained(), rankModel.Algorithm(), rankModel.TrainedAt()),
		},
	}

	respondSuccess(w, http.StatusOK, payload, start)
}

func modelHealth(trained bool, algorithm string, trainedAt time.Time) ModelHealth {
	mh := ModelHealth{Trained: trained}
	if trained {
		mh.Algorithm = algorithm
		mh.TrainedAt = trainedAt.UTC().Format(time.RFC3339)
	}
	return mh
}
