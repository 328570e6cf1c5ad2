// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"math/cmplx"
	"slices"
)

// Equal reports exact equality: same shape, same structure, same values.
// Because every *CSR is canonical, structural comparison is sufficient.
// Two nil matrices are equal; nil and non-nil are not.
func Equal(a, b *CSR) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.r == b.r && a.c == b.c &&
		slices.Equal(a.indptr, b.indptr) &&
		slices.Equal(a.indices, b.indices) &&
		slices.Equal(a.data, b.data)
}

// AllClose checks |a[i,j] - b[i,j]| <= tol for every coordinate.
// Returns (false, nil) on a value difference and an error only for nil
// operands or differing shapes.
// Complexity: O(r + nnz(a) + nnz(b)).
func AllClose(a, b *CSR, tol float64) (bool, error) {
	if err := validateBinary(a, b); err != nil {
		return false, sparseErrorf(opAllClose, err)
	}
	if a.r != b.r || a.c != b.c {
		return false, sparseErrorf(opAllClose, fmt.Errorf("%dx%d vs %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}
	if tol < 0 {
		tol = -tol
	}
	negB, err := Scale(b, -1)
	if err != nil {
		return false, sparseErrorf(opAllClose, err)
	}
	diff, err := Add(a, negB)
	if err != nil {
		return false, sparseErrorf(opAllClose, err)
	}

	return MaxAbs(diff) <= tol, nil
}

// MaxAbs returns max |m[i,j]| over stored entries (0 for an empty matrix).
func MaxAbs(m *CSR) float64 {
	var best float64
	for _, v := range m.data {
		if a := cmplx.Abs(v); a > best {
			best = a
		}
	}

	return best
}

// IsHermitian reports whether m is square and m == m† within tol.
// Nothing is repaired; callers decide what to do with a non-Hermitian input.
func IsHermitian(m *CSR, tol float64) bool {
	if m == nil || m.r != m.c {
		return false
	}
	adj, err := Adjoint(m)
	if err != nil {
		return false
	}
	ok, err := AllClose(m, adj, tol)

	return err == nil && ok
}
