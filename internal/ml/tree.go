// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package ml

import "sort"

// TreeNode is one node of a fitted regression tree. A node with nil
// children is a leaf and predicts Value. Fields are exported for gob
// persistence.
type TreeNode struct {
	Feature   int
	Threshold float64
	Value     float64
	Left      *TreeNode
	Right     *TreeNode
}

// RegressionTree is a CART-style regression tree splitting on variance
// reduction. It is the base learner for both ensemble regressors and is
// not itself exposed as a Regressor.
type RegressionTree struct {
	MaxDepth        int
	MinSamplesSplit int
	FeatureCount    int
	Root            *TreeNode

	// Gains accumulates the total variance reduction contributed by each
	// feature across all splits, the raw material for importances.
	Gains []float64
}

// NewRegressionTree creates an unfitted tree with the given depth limit.
func NewRegressionTree(maxDepth int) *RegressionTree {
	return &RegressionTree{MaxDepth: maxDepth, MinSamplesSplit: 2}
}

// Fit builds the tree on the full input.
func (t *RegressionTree) Fit(X [][]float64, y []float64) error {
	return t.FitIndices(X, y, nil)
}

// FitIndices builds the tree on the subset of rows named by idx. A nil
// idx means all rows. Ensembles use this to train on bootstrap or
// subsampled row sets without copying the matrix.
func (t *RegressionTree) FitIndices(X [][]float64, y []float64, idx []int) error {
	if err := checkTrainingInput(X, y); err != nil {
		return err
	}
	if idx == nil {
		idx = make([]int, len(X))
		for i := range idx {
			idx[i] = i
		}
	}
	if len(idx) == 0 {
		return ErrEmptyTrainingSet
	}

	t.FeatureCount = len(X[0])
	t.Gains = make([]float64, t.FeatureCount)
	t.Root = t.build(X, y, idx, 0)
	return nil
}

func (t *RegressionTree) build(X [][]float64, y []float64, idx []int, depth int) *TreeNode {
	node := &TreeNode{Value: meanAt(y, idx)}
	if depth >= t.MaxDepth || len(idx) < t.MinSamplesSplit {
		return node
	}

	feature, threshold, gain, ok := t.bestSplit(X, y, idx)
	if !ok {
		return node
	}
	t.Gains[feature] += gain

	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return node
	}

	node.Feature = feature
	node.Threshold = threshold
	node.Left = t.build(X, y, left, depth+1)
	node.Right = t.build(X, y, right, depth+1)
	return node
}

// bestSplit scans every feature for the threshold that maximizes the
// reduction in sum of squared errors, using prefix sums over the
// value-sorted rows.
func (t *RegressionTree) bestSplit(X [][]float64, y []float64, idx []int) (feature int, threshold, gain float64, ok bool) {
	n := len(idx)

	var totalSum, totalSumSq float64
	for _, i := range idx {
		totalSum += y[i]
		totalSumSq += y[i] * y[i]
	}
	parentSSE := totalSumSq - totalSum*totalSum/float64(n)

	order := make([]int, n)
	bestGain := 0.0

	for j := 0; j < t.FeatureCount; j++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool {
			return X[order[a]][j] < X[order[b]][j]
		})

		var leftSum, leftSumSq float64
		for k := 0; k < n-1; k++ {
			i := order[k]
			leftSum += y[i]
			leftSumSq += y[i] * y[i]

			// Only split between distinct feature values.
			if X[order[k]][j] == X[order[k+1]][j] {
				continue
			}

			nl := float64(k + 1)
			nr := float64(n - k - 1)
			rightSum := totalSum - leftSum
			rightSumSq := totalSumSq - leftSumSq

			leftSSE := leftSumSq - leftSum*leftSum/nl
			rightSSE := rightSumSq - rightSum*rightSum/nr
			g := parentSSE - leftSSE - rightSSE

			if g > bestGain {
				bestGain = g
				feature = j
				threshold = (X[order[k]][j] + X[order[k+1]][j]) / 2
				ok = true
			}
		}
	}

	return feature, threshold, bestGain, ok
}

// PredictRow returns the tree's prediction for a single feature row.
func (t *RegressionTree) PredictRow(row []float64) float64 {
	node := t.Root
	for node.Left != nil && node.Right != nil {
		if row[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

func meanAt(y []float64, idx []int) float64 {
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}
