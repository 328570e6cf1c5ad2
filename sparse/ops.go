// SPDX-License-Identifier: MIT

// Package sparse - operator kernels.
//
// Purpose:
//   - Canonical-in / canonical-out kernels used by operator assembly:
//     Add, Sum, Scale, Mul, Kron, Adjoint, MatVec.
//   - Fail fast with sentinel errors on nil or non-conformable operands.
//
// Determinism:
//   - Fixed row-major loop orders; no map iteration anywhere, so floating-point
//     rounding is reproducible for identical inputs.

package sparse

import (
	"fmt"
	"math/cmplx"
	"slices"
)

// validateBinary checks both operands are non-nil.
func validateBinary(a, b *CSR) error {
	if a == nil || b == nil {
		return ErrNilMatrix
	}

	return nil
}

// Add returns a + b for identically shaped operands.
// Entries that cancel exactly are dropped to keep the result canonical.
//
// Implementation:
//   - Stage 1: validate non-nil and same shape.
//   - Stage 2: per row, two-pointer merge of the sorted column lists.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r + nnz(a) + nnz(b)).
func Add(a, b *CSR) (*CSR, error) {
	if err := validateBinary(a, b); err != nil {
		return nil, sparseErrorf(opAdd, err)
	}
	if a.r != b.r || a.c != b.c {
		return nil, sparseErrorf(opAdd, fmt.Errorf("%dx%d vs %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}

	out := &CSR{
		r:       a.r,
		c:       a.c,
		indptr:  make([]int, a.r+1),
		indices: make([]int, 0, len(a.data)+len(b.data)),
		data:    make([]complex128, 0, len(a.data)+len(b.data)),
	}
	var ka, kb, ea, eb, col int
	var v complex128
	for i := 0; i < a.r; i++ {
		ka, ea = a.indptr[i], a.indptr[i+1]
		kb, eb = b.indptr[i], b.indptr[i+1]
		for ka < ea || kb < eb {
			switch {
			case kb >= eb || (ka < ea && a.indices[ka] < b.indices[kb]):
				col, v = a.indices[ka], a.data[ka]
				ka++
			case ka >= ea || b.indices[kb] < a.indices[ka]:
				col, v = b.indices[kb], b.data[kb]
				kb++
			default: // same column
				col, v = a.indices[ka], a.data[ka]+b.data[kb]
				ka++
				kb++
			}
			if v == 0 {
				continue
			}
			out.indices = append(out.indices, col)
			out.data = append(out.data, v)
		}
		out.indptr[i+1] = len(out.data)
	}

	return out, nil
}

// Sum folds Add over ms left to right. At least one operand is required.
func Sum(ms ...*CSR) (*CSR, error) {
	if len(ms) == 0 || ms[0] == nil {
		return nil, sparseErrorf(opAdd, ErrNilMatrix)
	}
	acc := ms[0]
	var err error
	for _, m := range ms[1:] {
		if acc, err = Add(acc, m); err != nil {
			return nil, err
		}
	}

	return acc, nil
}

// Scale returns alpha*m. Scaling by zero yields an explicit zero matrix of
// the same shape.
//
// Errors: ErrNilMatrix, ErrNaNInf (non-finite alpha).
// Complexity: O(r + nnz).
func Scale(m *CSR, alpha complex128) (*CSR, error) {
	if m == nil {
		return nil, sparseErrorf(opScale, ErrNilMatrix)
	}
	if !finite(alpha) {
		return nil, sparseErrorf(opScale, ErrNaNInf)
	}
	if alpha == 0 {
		return zeros(m.r, m.c), nil
	}
	out := &CSR{
		r:       m.r,
		c:       m.c,
		indptr:  slices.Clone(m.indptr),
		indices: slices.Clone(m.indices),
		data:    make([]complex128, len(m.data)),
	}
	for k, v := range m.data {
		out.data[k] = alpha * v
	}

	return out, nil
}

// Mul returns the matrix product a·b.
//
// Implementation:
//   - Gustavson row-by-row product with a dense accumulator of width b.Cols()
//     and a stamp array, so each output row costs O(flops + k log k).
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (a.Cols() != b.Rows()).
// Complexity: O(flops + Σ_rows k log k), Space O(b.Cols()).
//
// AI-Hints:
//   - Products of single-site Pauli strings stay permutation-like (one entry
//     per row), so the accumulator never grows beyond a handful of columns.
func Mul(a, b *CSR) (*CSR, error) {
	if err := validateBinary(a, b); err != nil {
		return nil, sparseErrorf(opMul, err)
	}
	if a.c != b.r {
		return nil, sparseErrorf(opMul, fmt.Errorf("%dx%d · %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}

	out := &CSR{r: a.r, c: b.c, indptr: make([]int, a.r+1)}
	acc := make([]complex128, b.c)
	stamp := make([]int, b.c) // stamp[j] == i+1 ⇔ column j touched in row i
	cols := make([]int, 0, 16)
	for i := 0; i < a.r; i++ {
		cols = cols[:0]
		for ka := a.indptr[i]; ka < a.indptr[i+1]; ka++ {
			av, arow := a.data[ka], a.indices[ka]
			for kb := b.indptr[arow]; kb < b.indptr[arow+1]; kb++ {
				j := b.indices[kb]
				if stamp[j] != i+1 {
					stamp[j] = i + 1
					acc[j] = 0
					cols = append(cols, j)
				}
				acc[j] += av * b.data[kb]
			}
		}
		slices.Sort(cols)
		for _, j := range cols {
			if acc[j] == 0 {
				continue
			}
			out.indices = append(out.indices, j)
			out.data = append(out.data, acc[j])
		}
		out.indptr[i+1] = len(out.data)
	}

	return out, nil
}

// Kron returns the Kronecker product a ⊗ b of shape (a.r·b.r)×(a.c·b.c).
// a is the outer (most significant) factor: row i·b.r+k, col j·b.c+l holds
// a[i,j]·b[k,l].
//
// Errors: ErrNilMatrix.
// Complexity: O(a.r·b.r + nnz(a)·nnz(b)); output is canonical by construction
// because a's columns ascend in the outer loop and b's in the inner loop.
func Kron(a, b *CSR) (*CSR, error) {
	if err := validateBinary(a, b); err != nil {
		return nil, sparseErrorf(opKron, err)
	}
	r, c := a.r*b.r, a.c*b.c
	nnz := len(a.data) * len(b.data)
	out := &CSR{
		r:       r,
		c:       c,
		indptr:  make([]int, r+1),
		indices: make([]int, 0, nnz),
		data:    make([]complex128, 0, nnz),
	}
	row := 0
	for i := 0; i < a.r; i++ {
		for k := 0; k < b.r; k++ {
			for ka := a.indptr[i]; ka < a.indptr[i+1]; ka++ {
				base, av := a.indices[ka]*b.c, a.data[ka]
				for kb := b.indptr[k]; kb < b.indptr[k+1]; kb++ {
					v := av * b.data[kb]
					if v == 0 {
						continue // underflow only
					}
					out.indices = append(out.indices, base+b.indices[kb])
					out.data = append(out.data, v)
				}
			}
			row++
			out.indptr[row] = len(out.data)
		}
	}

	return out, nil
}

// Adjoint returns the conjugate transpose m†.
// Implementation: counting sort by column; rows are visited in ascending
// order, so each output row is already sorted.
// Complexity: O(r + c + nnz).
func Adjoint(m *CSR) (*CSR, error) {
	if m == nil {
		return nil, sparseErrorf(opAdjoint, ErrNilMatrix)
	}
	out := &CSR{
		r:       m.c,
		c:       m.r,
		indptr:  make([]int, m.c+1),
		indices: make([]int, len(m.data)),
		data:    make([]complex128, len(m.data)),
	}
	for _, j := range m.indices {
		out.indptr[j+1]++
	}
	for j := 0; j < m.c; j++ {
		out.indptr[j+1] += out.indptr[j]
	}
	next := slices.Clone(out.indptr[:m.c])
	for i := 0; i < m.r; i++ {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			j := m.indices[k]
			out.indices[next[j]] = i
			out.data[next[j]] = cmplx.Conj(m.data[k])
			next[j]++
		}
	}

	return out, nil
}

// MatVec returns y = m·x.
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols()).
// Complexity: O(r + nnz).
func MatVec(m *CSR, x []complex128) ([]complex128, error) {
	if m == nil {
		return nil, sparseErrorf(opMatVec, ErrNilMatrix)
	}
	if len(x) != m.c {
		return nil, sparseErrorf(opMatVec, fmt.Errorf("len(x)=%d, cols=%d: %w", len(x), m.c, ErrDimensionMismatch))
	}
	y := make([]complex128, m.r)
	m.mulVecTo(y, x)

	return y, nil
}

// mulVecTo writes m·x into y without validation; len(y)==r, len(x)==c.
func (m *CSR) mulVecTo(y, x []complex128) {
	var s complex128
	for i := 0; i < m.r; i++ {
		s = 0
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			s += m.data[k] * x[m.indices[k]]
		}
		y[i] = s
	}
}

// MulVecTo is the allocation-free variant of MatVec for iterative solvers.
// It panics if the slice lengths do not match the shape (programmer error).
func (m *CSR) MulVecTo(y, x []complex128) {
	if len(y) != m.r || len(x) != m.c {
		panic(fmt.Sprintf("sparse: MulVecTo: len(y)=%d len(x)=%d for %dx%d", len(y), len(x), m.r, m.c))
	}
	m.mulVecTo(y, x)
}
