// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
	"sort"
)

// MatVec computes y = m·x.
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols).
// Complexity: O(r*c).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	if d, ok := m.(*Dense); ok {
		for i := 0; i < d.r; i++ {
			base := i * d.c
			var acc float64
			for j, xv := range x {
				if xv != 0 {
					acc += d.data[base+j] * xv
				}
			}
			y[i] = acc
		}

		return y, nil
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += v * x[j]
		}
	}

	return y, nil
}

// Eigen computes all eigenpairs of a symmetric matrix by cyclic Jacobi sweeps.
//
// Implementation:
//   - Stage 1: Validate symmetric square input within tol; copy it into a
//     working *Dense so the input is never mutated.
//   - Stage 2: Sweep the strict upper triangle in fixed p→q order, rotating
//     away every |A[p,q]| > tol; accumulate rotations into Q.
//   - Stage 3: Stop when max|A[p,q]| ≤ tol, else fail after maxSweeps.
//   - Stage 4: Sort eigenvalues ascending and permute Q's columns to match.
//
// Inputs:
//   - m: symmetric Matrix (within tol), n := m.Rows().
//   - tol: absolute off-diagonal threshold; also the symmetry tolerance.
//   - maxSweeps: cap on full sweeps. Each sweep is n(n-1)/2 rotations.
//
// Returns:
//   - []float64: eigenvalues in ascending order.
//   - *Dense: Q whose column k is the unit eigenvector of values[k].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrNaNInf (via ValidateSymmetric).
//   - ErrMatrixEigenFailed if the off-diagonal mass is still above tol.
//
// Determinism:
//   - Fixed sweep order and a stable sort give identical output for identical input.
//
// Complexity:
//   - Time O(sweeps·n³), Space O(n²). Quadratic convergence means a handful
//     of sweeps (typically 6..10) for well-scaled float64 input.
//
// Notes:
//   - Degenerate eigenvalues get an arbitrary orthonormal basis of their eigenspace.
func Eigen(m Matrix, tol float64, maxSweeps int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	tol = math.Abs(tol)
	n := m.Rows()

	a, err := toDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	q, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	for sweep := 0; sweep < maxSweeps && maxOffDiagonal(a) > tol; sweep++ {
		for p := 0; p < n-1; p++ {
			for r := p + 1; r < n; r++ {
				if math.Abs(a.data[p*n+r]) > tol {
					rotate(a, q, p, r)
				}
			}
		}
	}
	if maxOffDiagonal(a) > tol {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	return sortEigen(a, q)
}

// rotate applies the Jacobi rotation that zeroes A[p,q] and accumulates it into Q.
func rotate(a, q *Dense, p, r int) {
	n := a.r
	app, arr, apr := a.data[p*n+p], a.data[r*n+r], a.data[p*n+r]

	theta := (arr - app) / (2 * apr)
	t := math.Copysign(1/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
	c := 1 / math.Sqrt(t*t+1)
	s := t * c

	for i := 0; i < n; i++ {
		if i == p || i == r {
			continue
		}
		aip, air := a.data[i*n+p], a.data[i*n+r]
		newP := c*aip - s*air
		newR := s*aip + c*air
		a.data[i*n+p], a.data[p*n+i] = newP, newP
		a.data[i*n+r], a.data[r*n+i] = newR, newR
	}
	a.data[p*n+p] = c*c*app - 2*c*s*apr + s*s*arr
	a.data[r*n+r] = s*s*app + 2*c*s*apr + c*c*arr
	a.data[p*n+r], a.data[r*n+p] = 0, 0

	for i := 0; i < n; i++ {
		qip, qir := q.data[i*n+p], q.data[i*n+r]
		q.data[i*n+p] = c*qip - s*qir
		q.data[i*n+r] = s*qip + c*qir
	}
}

func maxOffDiagonal(a *Dense) float64 {
	n := a.r
	var maxOff float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			maxOff = math.Max(maxOff, math.Abs(a.data[i*n+j]))
		}
	}

	return maxOff
}

func sortEigen(a, q *Dense) ([]float64, *Dense, error) {
	n := a.r
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return a.data[order[x]*n+order[x]] < a.data[order[y]*n+order[y]]
	})

	values := make([]float64, n)
	vectors, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	for k, src := range order {
		values[k] = a.data[src*n+src]
		for i := 0; i < n; i++ {
			vectors.data[i*n+k] = q.data[i*n+src]
		}
	}

	return values, vectors, nil
}

// toDense copies any Matrix into a fresh *Dense.
func toDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d.Clone().(*Dense), nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	for i := 0; i < out.r; i++ {
		for j := 0; j < out.c; j++ {
			if out.data[i*out.c+j], err = m.At(i, j); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
