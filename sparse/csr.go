// SPDX-License-Identifier: MIT

// Package sparse - CSR storage & read-only accessors.
//
// Purpose:
//   - Hold a complex128 matrix as (indptr, indices, data) in canonical row-major order.
//   - Guarantee safety at the public surface: At returns errors instead of panicking.
//   - Never expose the backing slices; accessors return copies.
//
// Complexity quicksheet:
//   - Rows/Cols/NNZ: O(1); At: O(log nnz_row); Do/ToDense: O(nnz) / O(r*c).

package sparse

import (
	"fmt"
	"math/cmplx"
	"sort"
	"strings"
)

// CSR is an immutable r×c complex matrix in compressed sparse row layout.
//   - indptr has length r+1; row i occupies indices[indptr[i]:indptr[i+1]].
//   - indices hold column numbers, strictly increasing inside each row.
//   - data holds the matching non-zero values.
type CSR struct {
	r, c    int
	indptr  []int
	indices []int
	data    []complex128
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*CSR)(nil)

// Rows returns the number of rows.
func (m *CSR) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *CSR) Cols() int { return m.c }

// Dims returns (rows, cols).
func (m *CSR) Dims() (int, int) { return m.r, m.c }

// NNZ returns the number of stored (non-zero) entries.
func (m *CSR) NNZ() int { return len(m.data) }

// At returns the element at (i, j); absent entries read as 0.
// Returns ErrOutOfRange for invalid coordinates.
// Complexity: O(log k) where k is the number of stored entries in row i.
func (m *CSR) At(i, j int) (complex128, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, fmt.Errorf("%s(%d,%d): %w", opAt, i, j, ErrOutOfRange)
	}
	lo, hi := m.indptr[i], m.indptr[i+1]
	row := m.indices[lo:hi]
	k := sort.SearchInts(row, j)
	if k < len(row) && row[k] == j {
		return m.data[lo+k], nil
	}

	return 0, nil
}

// Do calls fn for every stored entry in canonical order (row ascending,
// column ascending within a row).
func (m *CSR) Do(fn func(i, j int, v complex128)) {
	for i := 0; i < m.r; i++ {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			fn(i, m.indices[k], m.data[k])
		}
	}
}

// RowPtr returns a copy of the row pointer array (length Rows()+1).
func (m *CSR) RowPtr() []int { return append([]int(nil), m.indptr...) }

// ColIndices returns a copy of the column index array (length NNZ()).
func (m *CSR) ColIndices() []int { return append([]int(nil), m.indices...) }

// Values returns a copy of the stored values (length NNZ()).
func (m *CSR) Values() []complex128 { return append([]complex128(nil), m.data...) }

// Diagonal returns the main diagonal as a dense slice of length min(r, c).
func (m *CSR) Diagonal() []complex128 {
	n := min(m.r, m.c)
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		out[i], _ = m.At(i, i) // i is in range by construction
	}

	return out
}

// IsReal reports whether every stored entry has a zero imaginary part.
func (m *CSR) IsReal() bool {
	for _, v := range m.data {
		if imag(v) != 0 {
			return false
		}
	}

	return true
}

// ToDense materializes the matrix as a row-major [][]complex128.
// Complexity: O(r*c) memory; intended for tests and small operators.
func (m *CSR) ToDense() [][]complex128 {
	out := make([][]complex128, m.r)
	for i := range out {
		out[i] = make([]complex128, m.c)
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			out[i][m.indices[k]] = m.data[k]
		}
	}

	return out
}

// String lists the stored entries one per line, e.g. "(0, 1) (1+0i)".
func (m *CSR) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CSR %dx%d nnz=%d\n", m.r, m.c, len(m.data))
	m.Do(func(i, j int, v complex128) {
		fmt.Fprintf(&sb, "(%d, %d) %v\n", i, j, v)
	})

	return sb.String()
}

// finite reports whether both components of v are finite.
func finite(v complex128) bool {
	return !cmplx.IsNaN(v) && !cmplx.IsInf(v)
}
