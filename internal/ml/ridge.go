// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package ml

import "math"

// ridgeAlpha is the L2 regularization strength.
const ridgeAlpha = 1.0

// Ridge is a closed-form ridge linear regressor: it centers the data and
// solves (X'X + alpha*I) w = X'y directly. Fields are exported for gob
// persistence.
type Ridge struct {
	Alpha        float64
	Coefficients []float64
	Intercept    float64
	Trained      bool
}

// NewRidge creates an unfitted ridge regressor with standard alpha.
func NewRidge() *Ridge {
	return &Ridge{Alpha: ridgeAlpha}
}

// Algorithm returns the algorithm identifier.
func (r *Ridge) Algorithm() string { return AlgorithmRidge }

// Fit solves the regularized normal equations.
func (r *Ridge) Fit(X [][]float64, y []float64) error {
	if err := checkTrainingInput(X, y); err != nil {
		return err
	}

	n := len(X)
	d := len(X[0])

	// Center features and target so the intercept falls out of the solve.
	meanX := make([]float64, d)
	for _, row := range X {
		for j, v := range row {
			meanX[j] += v
		}
	}
	for j := range meanX {
		meanX[j] /= float64(n)
	}
	var meanY float64
	for _, v := range y {
		meanY += v
	}
	meanY /= float64(n)

	// Gram matrix X'X + alpha*I and moment vector X'y on centered data.
	gram := make([][]float64, d)
	for j := range gram {
		gram[j] = make([]float64, d)
		gram[j][j] = r.Alpha
	}
	moment := make([]float64, d)

	for i, row := range X {
		yc := y[i] - meanY
		for j := 0; j < d; j++ {
			xj := row[j] - meanX[j]
			moment[j] += xj * yc
			for k := j; k < d; k++ {
				gram[j][k] += xj * (row[k] - meanX[k])
			}
		}
	}
	for j := 0; j < d; j++ {
		for k := 0; k < j; k++ {
			gram[j][k] = gram[k][j]
		}
	}

	coef, err := solveLinearSystem(gram, moment)
	if err != nil {
		return err
	}

	r.Coefficients = coef
	r.Intercept = meanY
	for j, c := range coef {
		r.Intercept -= c * meanX[j]
	}
	r.Trained = true
	return nil
}

// Predict applies the fitted linear form.
func (r *Ridge) Predict(X [][]float64) ([]float64, error) {
	if !r.Trained {
		return nil, ErrNotTrained
	}
	if err := checkPredictInput(X, len(r.Coefficients)); err != nil {
		return nil, err
	}

	out := make([]float64, len(X))
	for i, row := range X {
		score := r.Intercept
		for j, v := range row {
			score += r.Coefficients[j] * v
		}
		out[i] = score
	}
	return out, nil
}

// Importances reports normalized absolute coefficient magnitudes.
func (r *Ridge) Importances() []float64 {
	if !r.Trained {
		return nil
	}
	imp := make([]float64, len(r.Coefficients))
	var total float64
	for j, c := range r.Coefficients {
		imp[j] = math.Abs(c)
		total += imp[j]
	}
	if total > 0 {
		for j := range imp {
			imp[j] /= total
		}
	}
	return imp
}

// solveLinearSystem solves Ax = b via Gaussian elimination with partial
// pivoting. Near-singular pivots are nudged to preserve numerical
// stability. A is modified in place.
func solveLinearSystem(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	x := append([]float64(nil), b...)

	for col := 0; col < n; col++ {
		// Partial pivoting: move the largest magnitude pivot into place.
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if pivot != col {
			a[col], a[pivot] = a[pivot], a[col]
			x[col], x[pivot] = x[pivot], x[col]
		}

		if math.Abs(a[col][col]) < 1e-10 {
			a[col][col] += 1e-10
		}

		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= factor * a[col][k]
			}
			x[row] -= factor * x[col]
		}
	}

	// Back substitution.
	for col := n - 1; col >= 0; col-- {
		for k := col + 1; k < n; k++ {
			x[col] -= a[col][k] * x[k]
		}
		x[col] /= a[col][col]
	}
	return x, nil
}
