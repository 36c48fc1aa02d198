// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/models/status", "200"))
	RecordAPIRequest("GET", "/api/v1/models/status", 200, 5*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/models/status", "200"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("gauge after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("gauge after dec = %v, want %v", got, before)
	}
}

func TestRecordBudgetPredictionOutcomes(t *testing.T) {
	for _, outcome := range []string{"ok", "clamped", "error"} {
		before := testutil.ToFloat64(BudgetPredictionsTotal.WithLabelValues(outcome))
		RecordBudgetPrediction(outcome, 1500)
		after := testutil.ToFloat64(BudgetPredictionsTotal.WithLabelValues(outcome))
		if after != before+1 {
			t.Errorf("outcome %q: counter = %v, want %v", outcome, after, before+1)
		}
	}
}

func TestRecordTrainingRun(t *testing.T) {
	RecordTrainingRun("budget", "bagging", 2*time.Second, 0.95, nil)
	if got := testutil.ToFloat64(TrainingTestR2.WithLabelValues("budget")); got != 0.95 {
		t.Errorf("test R2 gauge = %v, want 0.95", got)
	}

	before := testutil.ToFloat64(TrainingRunsTotal.WithLabelValues("budget", "bagging", "false"))
	RecordTrainingRun("budget", "bagging", time.Second, 0, errors.New("boom"))
	after := testutil.ToFloat64(TrainingRunsTotal.WithLabelValues("budget", "bagging", "false"))
	if after != before+1 {
		t.Errorf("failed-run counter = %v, want %v", after, before+1)
	}
	// A failed run must not overwrite the last good R2.
	if got := testutil.ToFloat64(TrainingTestR2.WithLabelValues("budget")); got != 0.95 {
		t.Errorf("test R2 gauge after failure = %v, want 0.95", got)
	}
}

func TestRecordRankingRequest(t *testing.T) {
	before := testutil.ToFloat64(RankingRequestsTotal.WithLabelValues("heuristic"))
	RecordRankingRequest("heuristic", 25)
	after := testutil.ToFloat64(RankingRequestsTotal.WithLabelValues("heuristic"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}
