// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package ml

import "fmt"

// Frame is a row-major feature matrix with a fixed, ordered column schema.
// It replaces ad-hoc feature maps so that "missing feature" handling is an
// explicit Reindex operation rather than a silent map lookup.
type Frame struct {
	Columns []string
	Rows    [][]float64

	index map[string]int
}

// NewFrame creates an empty frame with the given column order.
func NewFrame(columns []string) *Frame {
	f := &Frame{Columns: append([]string(nil), columns...)}
	f.rebuildIndex()
	return f
}

func (f *Frame) rebuildIndex() {
	f.index = make(map[string]int, len(f.Columns))
	for i, c := range f.Columns {
		f.index[c] = i
	}
}

// Append adds a row. The row length must match the column count.
func (f *Frame) Append(row []float64) error {
	if len(row) != len(f.Columns) {
		return fmt.Errorf("append row width %d to frame width %d: %w",
			len(row), len(f.Columns), ErrDimensionMismatch)
	}
	f.Rows = append(f.Rows, row)
	return nil
}

// AppendMap adds a row from a name-to-value map. Names absent from the
// schema are ignored; schema columns absent from the map are zero.
func (f *Frame) AppendMap(values map[string]float64) {
	row := make([]float64, len(f.Columns))
	for name, v := range values {
		if i, ok := f.index[name]; ok {
			row[i] = v
		}
	}
	f.Rows = append(f.Rows, row)
}

// NumRows returns the row count.
func (f *Frame) NumRows() int { return len(f.Rows) }

// NumCols returns the column count.
func (f *Frame) NumCols() int { return len(f.Columns) }

// ColumnIndex returns the position of the named column.
func (f *Frame) ColumnIndex(name string) (int, bool) {
	i, ok := f.index[name]
	return i, ok
}

// Column returns a copy of the named column's values.
func (f *Frame) Column(name string) ([]float64, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(f.Rows))
	for r, row := range f.Rows {
		out[r] = row[i]
	}
	return out, true
}

// Value returns the cell at (row, named column).
func (f *Frame) Value(row int, name string) (float64, bool) {
	i, ok := f.index[name]
	if !ok || row < 0 || row >= len(f.Rows) {
		return 0, false
	}
	return f.Rows[row][i], true
}

// Reindex returns a new frame with exactly the requested columns in the
// requested order. Columns the frame does not have are synthesized as
// zero; extra columns are dropped. This is the typed zero-fill contract
// trained models rely on at inference time.
func (f *Frame) Reindex(columns []string) *Frame {
	out := NewFrame(columns)
	out.Rows = make([][]float64, len(f.Rows))
	for r, row := range f.Rows {
		newRow := make([]float64, len(columns))
		for c, name := range columns {
			if i, ok := f.index[name]; ok {
				newRow[c] = row[i]
			}
		}
		out.Rows[r] = newRow
	}
	return out
}

// Matrix returns the underlying row-major matrix. The result shares
// storage with the frame; callers must not mutate it while the frame is
// in use.
func (f *Frame) Matrix() [][]float64 { return f.Rows }
