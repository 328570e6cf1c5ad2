// SPDX-License-Identifier: MIT

// Package sparse - constructors.
//
// Purpose:
//   - Provide the only ways to obtain a *CSR: Zeros, Identity, FromTriplets, FromDense.
//   - Canonicalize once at the boundary (sort, merge duplicates, drop zeros) so that
//     kernels may assume canonical inputs and produce canonical outputs.

package sparse

import (
	"cmp"
	"fmt"
	"slices"
)

// Triplet is one (row, col, value) entry in coordinate form.
type Triplet struct {
	Row, Col int
	Val      complex128
}

// Zeros returns an explicit r×c zero matrix (no stored entries).
// Returns ErrInvalidDimensions if r<=0 or c<=0.
// Complexity: O(r).
func Zeros(r, c int) (*CSR, error) {
	if r <= 0 || c <= 0 {
		return nil, sparseErrorf(opZeros, ErrInvalidDimensions)
	}

	return zeros(r, c), nil
}

// zeros builds a zero matrix without validation; callers guarantee r,c > 0.
func zeros(r, c int) *CSR {
	return &CSR{r: r, c: c, indptr: make([]int, r+1)}
}

// Identity returns the n×n identity.
// Complexity: O(n).
func Identity(n int) (*CSR, error) {
	if n <= 0 {
		return nil, sparseErrorf(opIdentity, ErrInvalidDimensions)
	}
	m := &CSR{
		r:       n,
		c:       n,
		indptr:  make([]int, n+1),
		indices: make([]int, n),
		data:    make([]complex128, n),
	}
	for i := 0; i < n; i++ {
		m.indptr[i+1] = i + 1
		m.indices[i] = i
		m.data[i] = 1
	}

	return m, nil
}

// FromTriplets assembles an r×c matrix from coordinate entries.
// Duplicate coordinates are summed; entries that end up exactly zero are dropped.
// The input slice is not modified.
//
// Errors:
//   - ErrInvalidDimensions if r<=0 or c<=0.
//   - ErrOutOfRange if any coordinate is outside the shape.
//   - ErrNaNInf if any value has a NaN or infinite component.
//
// Complexity: O(k log k) for k triplets.
func FromTriplets(r, c int, ts []Triplet) (*CSR, error) {
	if r <= 0 || c <= 0 {
		return nil, sparseErrorf(opTriplets, ErrInvalidDimensions)
	}
	for _, t := range ts {
		if t.Row < 0 || t.Row >= r || t.Col < 0 || t.Col >= c {
			return nil, sparseErrorf(opTriplets, fmt.Errorf("(%d,%d): %w", t.Row, t.Col, ErrOutOfRange))
		}
		if !finite(t.Val) {
			return nil, sparseErrorf(opTriplets, fmt.Errorf("(%d,%d): %w", t.Row, t.Col, ErrNaNInf))
		}
	}

	sorted := slices.Clone(ts)
	slices.SortStableFunc(sorted, func(a, b Triplet) int {
		if d := cmp.Compare(a.Row, b.Row); d != 0 {
			return d
		}
		return cmp.Compare(a.Col, b.Col)
	})

	m := &CSR{r: r, c: c, indptr: make([]int, r+1)}
	for k := 0; k < len(sorted); {
		row, col := sorted[k].Row, sorted[k].Col
		var sum complex128
		for ; k < len(sorted) && sorted[k].Row == row && sorted[k].Col == col; k++ {
			sum += sorted[k].Val
		}
		if sum == 0 {
			continue
		}
		m.indices = append(m.indices, col)
		m.data = append(m.data, sum)
		m.indptr[row+1]++
	}
	for i := 0; i < r; i++ {
		m.indptr[i+1] += m.indptr[i]
	}

	return m, nil
}

// FromDense builds a CSR from a rectangular row-major slice, skipping zeros.
// Returns ErrInvalidDimensions for empty input and ErrDimensionMismatch for
// ragged rows.
func FromDense(rows [][]complex128) (*CSR, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, sparseErrorf(opDense, ErrInvalidDimensions)
	}
	r, c := len(rows), len(rows[0])
	m := &CSR{r: r, c: c, indptr: make([]int, r+1)}
	for i, row := range rows {
		if len(row) != c {
			return nil, sparseErrorf(opDense, fmt.Errorf("row %d has %d cols, want %d: %w", i, len(row), c, ErrDimensionMismatch))
		}
		for j, v := range row {
			if !finite(v) {
				return nil, sparseErrorf(opDense, fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
			}
			if v == 0 {
				continue
			}
			m.indices = append(m.indices, j)
			m.data = append(m.data, v)
		}
		m.indptr[i+1] = len(m.data)
	}

	return m, nil
}

// Diag builds a square diagonal matrix from d, skipping zero entries.
func Diag(d []complex128) (*CSR, error) {
	ts := make([]Triplet, 0, len(d))
	for i, v := range d {
		ts = append(ts, Triplet{Row: i, Col: i, Val: v})
	}

	return FromTriplets(len(d), len(d), ts)
}
