// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package api provides the HTTP surface over the budget, ranking, and
// recommendation cores using the Chi router.
package api

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/wayfarer/internal/budget"
	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/ranking"
	"github.com/tomtom215/wayfarer/internal/recommend"
	"github.com/tomtom215/wayfarer/internal/trainer"
)

// Version is the API version reported by the health endpoint.
const Version = "1.0.0"

// ErrTrainingInProgress is returned by Train when a run is already
// active. Runs are rejected rather than queued.
var ErrTrainingInProgress = errors.New("training already in progress")

// Handler serves all API endpoints. Model pointers are swapped whole
// after a retraining run, so reads take the lock briefly and never see
// a half-updated pair.
type Handler struct {
	config    *config.Config
	scorer    *recommend.Scorer
	costIndex *budget.CostIndex
	trainer   *trainer.Trainer
	startTime time.Time

	mu          sync.RWMutex
	budgetModel *budget.Model
	rankModel   *ranking.Model

	training atomic.Bool
}

// NewHandler creates a handler. Models may be untrained; the ranking
// path degrades to its heuristic and the budget path reports
// MODEL_NOT_TRAINED until a training run completes.
func NewHandler(cfg *config.Config, scorer *recommend.Scorer, costIndex *budget.CostIndex,
	tr *trainer.Trainer, budgetModel *budget.Model, rankModel *ranking.Model) *Handler {
	return &Handler{
		config:      cfg,
		scorer:      scorer,
		costIndex:   costIndex,
		trainer:     tr,
		startTime:   time.Now(),
		budgetModel: budgetModel,
		rankModel:   rankModel,
	}
}

// Models returns the current model pair.
func (h *Handler) Models() (*budget.Model, *ranking.Model) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.budgetModel, h.rankModel
}

// SetModels atomically replaces the model pair after retraining.
func (h *Handler) SetModels(budgetModel *budget.Model, rankModel *ranking.Model) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.budgetModel = budgetModel
	h.rankModel = rankModel
}

// TrainingInProgress reports whether a training run is active.
func (h *Handler) TrainingInProgress() bool {
	return h.training.Load()
}

// Train runs a full synchronous training pass and swaps the new models
// in on success. Only one run may be active at a time.
func (h *Handler) Train(ctx context.Context, seed int64) error {
	if !h.training.CompareAndSwap(false, true) {
		return ErrTrainingInProgress
	}
	defer h.training.Store(false)
	return h.train(ctx, seed)
}

// train executes one training pass. The caller must hold the training
// flag.
func (h *Handler) train(ctx context.Context, seed int64) error {
	rankModel, budgetModel, err := h.trainer.TrainAll(ctx, seed)
	if err != nil {
		return err
	}
	h.SetModels(budgetModel, rankModel)
	return nil
}
