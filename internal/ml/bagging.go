// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package ml

import "math/rand"

// Bagging ensemble hyperparameters.
const (
	baggingTrees    = 100
	baggingMaxDepth = 10
)

// BaggingForest is a bootstrap-aggregated ensemble of regression trees.
// Each tree trains on a bootstrap sample of the rows; predictions average
// across trees. Fields are exported for gob persistence.
type BaggingForest struct {
	NumTrees     int
	MaxDepth     int
	Seed         int64
	Trees        []*RegressionTree
	FeatureCount int
}

// NewBaggingForest creates an unfitted forest with standard
// hyperparameters.
func NewBaggingForest(seed int64) *BaggingForest {
	return &BaggingForest{
		NumTrees: baggingTrees,
		MaxDepth: baggingMaxDepth,
		Seed:     seed,
	}
}

// Algorithm returns the algorithm identifier.
func (f *BaggingForest) Algorithm() string { return AlgorithmBagging }

// Fit trains every tree on its own bootstrap sample. Deterministic for a
// fixed seed.
func (f *BaggingForest) Fit(X [][]float64, y []float64) error {
	if err := checkTrainingInput(X, y); err != nil {
		return err
	}

	n := len(X)
	f.FeatureCount = len(X[0])
	f.Trees = make([]*RegressionTree, 0, f.NumTrees)
	rng := rand.New(rand.NewSource(f.Seed))

	for t := 0; t < f.NumTrees; t++ {
		sample := make([]int, n)
		for i := range sample {
			sample[i] = rng.Intn(n)
		}

		tree := NewRegressionTree(f.MaxDepth)
		if err := tree.FitIndices(X, y, sample); err != nil {
			return err
		}
		f.Trees = append(f.Trees, tree)
	}
	return nil
}

// Predict averages the member tree predictions.
func (f *BaggingForest) Predict(X [][]float64) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, ErrNotTrained
	}
	if err := checkPredictInput(X, f.FeatureCount); err != nil {
		return nil, err
	}

	out := make([]float64, len(X))
	for i, row := range X {
		var sum float64
		for _, tree := range f.Trees {
			sum += tree.PredictRow(row)
		}
		out[i] = sum / float64(len(f.Trees))
	}
	return out, nil
}

// Importances averages per-tree split gains, normalized to sum to 1.
func (f *BaggingForest) Importances() []float64 {
	if len(f.Trees) == 0 {
		return nil
	}
	return aggregateGains(f.Trees, f.FeatureCount)
}

// aggregateGains sums split gains across trees and normalizes. Shared by
// both tree ensembles.
func aggregateGains(trees []*RegressionTree, featureCount int) []float64 {
	imp := make([]float64, featureCount)
	var total float64
	for _, tree := range trees {
		for j, g := range tree.Gains {
			imp[j] += g
			total += g
		}
	}
	if total > 0 {
		for j := range imp {
			imp[j] /= total
		}
	}
	return imp
}
