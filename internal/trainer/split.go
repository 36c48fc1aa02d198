// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package trainer

import (
	"fmt"
	"math/rand"

	"github.com/tomtom215/wayfarer/internal/ml"
)

// Split partitions a dataset into train and test subsets with a seeded
// shuffle, so a given seed always yields the same partition. Both
// subsets are guaranteed non-empty.
func Split(frame *ml.Frame, y []float64, testFraction float64, seed int64) (trainX, testX *ml.Frame, trainY, testY []float64, err error) {
	n := frame.NumRows()
	if n != len(y) {
		return nil, nil, nil, nil, fmt.Errorf("split: %d rows but %d targets", n, len(y))
	}
	if n < 2 {
		return nil, nil, nil, nil, fmt.Errorf("split: need at least 2 samples, got %d", n)
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, nil, nil, fmt.Errorf("split: test fraction must be in (0,1), got %v", testFraction)
	}

	testSize := int(float64(n) * testFraction)
	if testSize < 1 {
		testSize = 1
	}
	if testSize >= n {
		testSize = n - 1
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible shuffling, not cryptography
	perm := rng.Perm(n)

	trainX = ml.NewFrame(frame.Columns)
	testX = ml.NewFrame(frame.Columns)
	trainY = make([]float64, 0, n-testSize)
	testY = make([]float64, 0, testSize)

	for i, idx := range perm {
		row := append([]float64(nil), frame.Rows[idx]...)
		if i < testSize {
			if err := testX.Append(row); err != nil {
				return nil, nil, nil, nil, err
			}
			testY = append(testY, y[idx])
		} else {
			if err := trainX.Append(row); err != nil {
				return nil, nil, nil, nil, err
			}
			trainY = append(trainY, y[idx])
		}
	}
	return trainX, testX, trainY, testY, nil
}
