// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package trainer

import (
	"math"
	"sort"
)

// EvalMetrics summarizes regression quality on one dataset. Percentage
// metrics skip samples whose actual value is zero to avoid division
// blowups.
type EvalMetrics struct {
	R2            float64 `json:"r2_score"`
	RMSE          float64 `json:"rmse"`
	MAE           float64 `json:"mae"`
	MAPE          float64 `json:"mape"`
	MedAPE        float64 `json:"medape"`
	Within10Pct   float64 `json:"within_10_percent"`
	Within15Pct   float64 `json:"within_15_percent"`
	Within20Pct   float64 `json:"within_20_percent"`
	Bias          float64 `json:"bias"`
	Overestimates int     `json:"overestimations"`
	Underestimate int     `json:"underestimations"`
	MeanPredicted float64 `json:"mean_predicted"`
	MeanActual    float64 `json:"mean_actual"`
	Samples       int     `json:"total_predictions"`
}

// Evaluate computes the full metric set for predictions against ground
// truth. Slices must be the same non-zero length; a mismatch yields the
// zero value.
func Evaluate(actual, predicted []float64) EvalMetrics {
	n := len(actual)
	if n == 0 || n != len(predicted) {
		return EvalMetrics{}
	}

	meanActual := mean(actual)
	meanPred := mean(predicted)

	var (
		ssRes, ssTot, absSum, sqSum, biasSum float64
		pctErrors                            []float64
		over, under                          int
	)
	for i := range actual {
		diff := predicted[i] - actual[i]
		ssRes += diff * diff
		dev := actual[i] - meanActual
		ssTot += dev * dev
		absSum += math.Abs(diff)
		sqSum += diff * diff
		biasSum += diff

		if diff > 0 {
			over++
		} else if diff < 0 {
			under++
		}
		if actual[i] != 0 {
			pctErrors = append(pctErrors, math.Abs(diff/actual[i])*100)
		}
	}

	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	m := EvalMetrics{
		R2:            r2,
		RMSE:          math.Sqrt(sqSum / float64(n)),
		MAE:           absSum / float64(n),
		Bias:          biasSum / float64(n),
		Overestimates: over,
		Underestimate: under,
		MeanPredicted: meanPred,
		MeanActual:    meanActual,
		Samples:       n,
	}

	if len(pctErrors) > 0 {
		within10, within15, within20 := 0, 0, 0
		total := 0.0
		for _, pe := range pctErrors {
			total += pe
			if pe <= 10 {
				within10++
			}
			if pe <= 15 {
				within15++
			}
			if pe <= 20 {
				within20++
			}
		}
		count := float64(len(pctErrors))
		m.MAPE = total / count
		m.MedAPE = median(pctErrors)
		m.Within10Pct = float64(within10) / count * 100
		m.Within15Pct = float64(within15) / count * 100
		m.Within20Pct = float64(within20) / count * 100
	}
	return m
}

func mean(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total / float64(len(xs))
}

func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
