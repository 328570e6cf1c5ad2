// SPDX-License-Identifier: MIT

package spin

import (
	"fmt"
	"math/cmplx"
	"slices"

	"github.com/katalvlaran/qham/sparse"
)

// SingleSiteTerm represents H = Σ_i h[i] σ^axis_i.
// It is transient: build it, call Matrix, drop it.
type SingleSiteTerm struct {
	f    *Factory
	axis Axis
	h    []complex128
}

// NewSingleSiteTerm validates and captures a field term; h is copied.
// Errors: ErrNilFactory, ErrUnknownAxis, ErrFieldLength, ErrNonFinite.
func NewSingleSiteTerm(f *Factory, axis Axis, h []complex128) (*SingleSiteTerm, error) {
	if f == nil {
		return nil, ErrNilFactory
	}
	if !axis.Valid() {
		return nil, fmt.Errorf("%v: %w", axis, ErrUnknownAxis)
	}
	if len(h) != f.n {
		return nil, fmt.Errorf("len(h)=%d, N=%d: %w", len(h), f.n, ErrFieldLength)
	}
	for i, v := range h {
		if !finite(v) {
			return nil, fmt.Errorf("h[%d]=%v: %w", i, v, ErrNonFinite)
		}
	}

	return &SingleSiteTerm{f: f, axis: axis, h: slices.Clone(h)}, nil
}

// Matrix sums h[i]·σ^axis_i over non-zero h[i]. An all-zero field yields an
// explicit 2^N×2^N zero matrix.
func (t *SingleSiteTerm) Matrix() (*sparse.CSR, error) {
	acc, err := sparse.Zeros(t.f.dim, t.f.dim)
	if err != nil {
		return nil, err
	}
	for i, coeff := range t.h {
		if coeff == 0 {
			continue
		}
		sigma, err := t.f.Get(t.axis, i)
		if err != nil {
			return nil, err
		}
		scaled, err := sparse.Scale(sigma, coeff)
		if err != nil {
			return nil, fmt.Errorf("spin: h[%d]: %w", i, err)
		}
		if acc, err = sparse.Add(acc, scaled); err != nil {
			return nil, err
		}
	}

	return acc, nil
}

// TwoSiteTerm represents H = Σ_{i<j} J[i,j] σ^ops[0]_i σ^ops[1]_j.
// Only the strict upper triangle of J is read.
type TwoSiteTerm struct {
	f   *Factory
	ops Ops
	j   [][]complex128
}

// NewTwoSiteTerm validates and captures a coupling term; J is deep-copied.
// Errors: ErrNilFactory, ErrUnknownAxis, ErrCouplingShape (J not N×N),
// ErrNonFinite (NaN or Inf in the strict upper triangle).
func NewTwoSiteTerm(f *Factory, ops Ops, J [][]complex128) (*TwoSiteTerm, error) {
	if f == nil {
		return nil, ErrNilFactory
	}
	for _, a := range ops {
		if !a.Valid() {
			return nil, fmt.Errorf("%v: %w", a, ErrUnknownAxis)
		}
	}
	if len(J) != f.n {
		return nil, fmt.Errorf("J has %d rows, N=%d: %w", len(J), f.n, ErrCouplingShape)
	}
	cp := make([][]complex128, f.n)
	for i, row := range J {
		if len(row) != f.n {
			return nil, fmt.Errorf("J row %d has %d cols, N=%d: %w", i, len(row), f.n, ErrCouplingShape)
		}
		for j := i + 1; j < f.n; j++ {
			if !finite(row[j]) {
				return nil, fmt.Errorf("J[%d][%d]=%v: %w", i, j, row[j], ErrNonFinite)
			}
		}
		cp[i] = slices.Clone(row)
	}

	return &TwoSiteTerm{f: f, ops: ops, j: cp}, nil
}

// Matrix sums J[i,j]·σ_i·σ_j for i<j and J[i,j] != 0. Each product is the
// sparse product of the two cached single-site operators, then scaled.
func (t *TwoSiteTerm) Matrix() (*sparse.CSR, error) {
	acc, err := sparse.Zeros(t.f.dim, t.f.dim)
	if err != nil {
		return nil, err
	}
	n := t.f.n
	for i := 0; i < n-1; i++ {
		var sigmaI *sparse.CSR // fetched lazily: a row of zeros costs nothing
		for j := i + 1; j < n; j++ {
			coeff := t.j[i][j]
			if coeff == 0 {
				continue
			}
			if sigmaI == nil {
				if sigmaI, err = t.f.Get(t.ops[0], i); err != nil {
					return nil, err
				}
			}
			sigmaJ, err := t.f.Get(t.ops[1], j)
			if err != nil {
				return nil, err
			}
			prod, err := sparse.Mul(sigmaI, sigmaJ)
			if err != nil {
				return nil, err
			}
			if prod, err = sparse.Scale(prod, coeff); err != nil {
				return nil, fmt.Errorf("spin: J[%d][%d]: %w", i, j, err)
			}
			if acc, err = sparse.Add(acc, prod); err != nil {
				return nil, err
			}
		}
	}

	return acc, nil
}

func finite(v complex128) bool { return !cmplx.IsNaN(v) && !cmplx.IsInf(v) }
