// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package metrics exposes Prometheus instrumentation for the API
// surface, the prediction and ranking paths, and the training pipeline.
// All collectors are registered on the default registry and served at
// /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Budget Prediction Metrics
	BudgetPredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budget_predictions_total",
			Help: "Total number of budget predictions",
		},
		[]string{"outcome"}, // "ok", "clamped", "error"
	)

	BudgetPredictedAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "budget_predicted_amount",
			Help:    "Distribution of predicted trip budgets",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100 .. ~51k
		},
	)

	// Ranking Metrics
	RankingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_requests_total",
			Help: "Total number of place ranking requests",
		},
		[]string{"scored_by"}, // "model", "heuristic"
	)

	RankingCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ranking_candidate_batch_size",
			Help:    "Candidate batch sizes submitted for ranking",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// Heuristic Scorer Metrics
	ScorerBatchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scorer_batches_total",
			Help: "Total number of heuristic scorer batches",
		},
	)

	ScorerBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scorer_batch_duration_seconds",
			Help:    "Heuristic scorer batch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Training Pipeline Metrics
	TrainingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "training_runs_total",
			Help: "Total number of model training runs",
		},
		[]string{"model", "algorithm", "success"},
	)

	TrainingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "training_duration_seconds",
			Help:    "Model training run duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"model"},
	)

	TrainingTestR2 = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "training_test_r2",
			Help: "Held-out R2 of the most recent training run",
		},
		[]string{"model"},
	)

	ModelTrainedTimestamp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "model_trained_timestamp_seconds",
			Help: "Unix time the model was last trained or loaded",
		},
		[]string{"model"},
	)

	// Model Artifact Storage Metrics
	ModelArtifactOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_artifact_operations_total",
			Help: "Total number of model artifact save/load operations",
		},
		[]string{"operation", "success"},
	)
)

// RecordAPIRequest records one served API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records one rate limit rejection for an endpoint.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordBudgetPrediction records one budget prediction outcome.
func RecordBudgetPrediction(outcome string, amount float64) {
	BudgetPredictionsTotal.WithLabelValues(outcome).Inc()
	if outcome != "error" {
		BudgetPredictedAmount.Observe(amount)
	}
}

// RecordRankingRequest records one ranking request and its provenance.
func RecordRankingRequest(scoredBy string, candidates int) {
	RankingRequestsTotal.WithLabelValues(scoredBy).Inc()
	RankingCandidates.Observe(float64(candidates))
}

// RecordScorerBatch records one heuristic scorer invocation.
func RecordScorerBatch(duration time.Duration) {
	ScorerBatchesTotal.Inc()
	ScorerBatchDuration.Observe(duration.Seconds())
}

// RecordTrainingRun records a completed or failed training run.
func RecordTrainingRun(model, algorithm string, duration time.Duration, testR2 float64, err error) {
	success := "true"
	if err != nil {
		success = "false"
	}
	TrainingRunsTotal.WithLabelValues(model, algorithm, success).Inc()
	if err == nil {
		TrainingDuration.WithLabelValues(model).Observe(duration.Seconds())
		TrainingTestR2.WithLabelValues(model).Set(testR2)
		ModelTrainedTimestamp.WithLabelValues(model).SetToCurrentTime()
	}
}

// RecordArtifactOp records a model artifact save or load.
func RecordArtifactOp(operation string, err error) {
	success := "true"
	if err != nil {
		success = "false"
	}
	ModelArtifactOps.WithLabelValues(operation, success).Inc()
}
