// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package ml

import (
	"errors"
	"testing"
)

func TestFrameAppend(t *testing.T) {
	f := NewFrame([]string{"a", "b"})

	if err := f.Append([]float64{1, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Append([]float64{1}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
	if f.NumRows() != 1 {
		t.Errorf("expected 1 row, got %d", f.NumRows())
	}
}

func TestFrameAppendMap(t *testing.T) {
	f := NewFrame([]string{"rating", "reviews"})
	f.AppendMap(map[string]float64{
		"rating":  4.5,
		"reviews": 120,
		"unknown": 9,
	})

	if got, _ := f.Value(0, "rating"); got != 4.5 {
		t.Errorf("rating = %v, want 4.5", got)
	}
	if got, _ := f.Value(0, "reviews"); got != 120 {
		t.Errorf("reviews = %v, want 120", got)
	}
	if _, ok := f.Value(0, "unknown"); ok {
		t.Error("unknown column should not exist")
	}
}

func TestFrameReindex(t *testing.T) {
	f := NewFrame([]string{"a", "b", "c"})
	if err := f.Append([]float64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		columns []string
		want    []float64
	}{
		{"reorder", []string{"c", "a"}, []float64{3, 1}},
		{"zero fill missing", []string{"a", "missing"}, []float64{1, 0}},
		{"identity", []string{"a", "b", "c"}, []float64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Reindex(tt.columns)
			if got.NumCols() != len(tt.columns) {
				t.Fatalf("got %d columns, want %d", got.NumCols(), len(tt.columns))
			}
			for j, want := range tt.want {
				if got.Rows[0][j] != want {
					t.Errorf("column %d = %v, want %v", j, got.Rows[0][j], want)
				}
			}
		})
	}
}

func TestFrameColumn(t *testing.T) {
	f := NewFrame([]string{"x"})
	_ = f.Append([]float64{1})
	_ = f.Append([]float64{2})

	col, ok := f.Column("x")
	if !ok || len(col) != 2 || col[0] != 1 || col[1] != 2 {
		t.Errorf("Column(x) = %v, %v", col, ok)
	}
	if _, ok := f.Column("y"); ok {
		t.Error("expected missing column")
	}
}
