// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package ml

import "math/rand"

// Gradient boosting hyperparameters.
const (
	boostingTrees        = 100
	boostingMaxDepth     = 5
	boostingLearningRate = 0.1
	boostingSubsample    = 0.8
)

// GradientBoosting fits regression trees sequentially on the residuals of
// the running prediction, with row subsampling per stage. Fields are
// exported for gob persistence.
type GradientBoosting struct {
	NumTrees     int
	MaxDepth     int
	LearningRate float64
	Subsample    float64
	Seed         int64

	InitValue    float64
	Trees        []*RegressionTree
	FeatureCount int
}

// NewGradientBoosting creates an unfitted booster with standard
// hyperparameters.
func NewGradientBoosting(seed int64) *GradientBoosting {
	return &GradientBoosting{
		NumTrees:     boostingTrees,
		MaxDepth:     boostingMaxDepth,
		LearningRate: boostingLearningRate,
		Subsample:    boostingSubsample,
		Seed:         seed,
	}
}

// Algorithm returns the algorithm identifier.
func (g *GradientBoosting) Algorithm() string { return AlgorithmBoosting }

// Fit trains the stage trees. Deterministic for a fixed seed.
func (g *GradientBoosting) Fit(X [][]float64, y []float64) error {
	if err := checkTrainingInput(X, y); err != nil {
		return err
	}

	n := len(X)
	g.FeatureCount = len(X[0])
	g.Trees = make([]*RegressionTree, 0, g.NumTrees)
	rng := rand.New(rand.NewSource(g.Seed))

	// Initial prediction is the target mean.
	var sum float64
	for _, v := range y {
		sum += v
	}
	g.InitValue = sum / float64(n)

	current := make([]float64, n)
	for i := range current {
		current[i] = g.InitValue
	}

	residual := make([]float64, n)
	sampleSize := int(g.Subsample * float64(n))
	if sampleSize < 1 {
		sampleSize = 1
	}

	for t := 0; t < g.NumTrees; t++ {
		for i := range residual {
			residual[i] = y[i] - current[i]
		}

		sample := rng.Perm(n)[:sampleSize]

		tree := NewRegressionTree(g.MaxDepth)
		if err := tree.FitIndices(X, residual, sample); err != nil {
			return err
		}
		g.Trees = append(g.Trees, tree)

		for i, row := range X {
			current[i] += g.LearningRate * tree.PredictRow(row)
		}
	}
	return nil
}

// Predict sums the stage contributions on top of the initial value.
func (g *GradientBoosting) Predict(X [][]float64) ([]float64, error) {
	if len(g.Trees) == 0 {
		return nil, ErrNotTrained
	}
	if err := checkPredictInput(X, g.FeatureCount); err != nil {
		return nil, err
	}

	out := make([]float64, len(X))
	for i, row := range X {
		score := g.InitValue
		for _, tree := range g.Trees {
			score += g.LearningRate * tree.PredictRow(row)
		}
		out[i] = score
	}
	return out, nil
}

// Importances aggregates per-tree split gains, normalized to sum to 1.
func (g *GradientBoosting) Importances() []float64 {
	if len(g.Trees) == 0 {
		return nil
	}
	return aggregateGains(g.Trees, g.FeatureCount)
}
