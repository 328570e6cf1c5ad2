// SPDX-License-Identifier: MIT

package spectrum

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/katalvlaran/qham/matrix"
	"github.com/katalvlaran/qham/sparse"
)

// checkEvery is the number of Lanczos steps between convergence checks.
const checkEvery = 8

// lanczosEigen runs Lanczos with full reorthogonalization.
//
// Every step stores its basis vector, so memory is O(m·dim) for a Krylov
// dimension m ≤ WithMaxIter. Convergence is declared when the residual
// ‖H·y − θ·y‖ = |β_m·s_m| of each of the k lowest Ritz pairs is ≤ tol·scale,
// or when the Krylov space becomes invariant (β ≈ 0).
func lanczosEigen(ctx context.Context, h *sparse.CSR, o options, scale float64) (*Result, error) {
	n := h.Rows()
	k := o.k
	if k == 0 {
		k = DefaultEigenCount
	}
	k = min(k, n)
	m := min(o.maxIter, n)
	resTol := o.tol * scale
	breakdown := math.Min(o.tol, 1e-12) * scale

	basis := [][]complex128{startVector(n, o.seed, h.IsReal())}
	var alpha, beta []float64
	w := make([]complex128, n)

	for j := 0; j < m; j++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h.MulVecTo(w, basis[j])
		alpha = append(alpha, real(dot(basis[j], w)))
		// two Gram–Schmidt passes against the whole basis
		project(basis, w)
		project(basis, w)
		b := norm(w)

		steps := j + 1
		invariant := b <= breakdown
		if invariant || steps == m || (steps >= k && steps%checkEvery == 0) {
			theta, s, err := tridiagEigen(alpha, beta)
			if err != nil {
				return nil, err
			}
			want := min(k, steps)
			if invariant || ritzConverged(s, b, want, resTol) {
				return ritzResult(basis, theta, s, want)
			}
		}
		if steps == m {
			break
		}

		beta = append(beta, b)
		next := make([]complex128, n)
		copy(next, w)
		scaleTo(next, complex(1/b, 0))
		basis = append(basis, next)
	}

	return nil, fmt.Errorf("spectrum: lanczos after %d steps: %w", m, ErrNoConvergence)
}

// startVector returns a seeded random unit vector, real when the matrix is real.
func startVector(n int, seed int64, isReal bool) []complex128 {
	rng := rand.New(rand.NewSource(seed))
	v := make([]complex128, n)
	for i := range v {
		if isReal {
			v[i] = complex(rng.NormFloat64(), 0)
		} else {
			v[i] = complex(rng.NormFloat64(), rng.NormFloat64())
		}
	}
	scaleTo(v, complex(1/norm(v), 0))

	return v
}

// tridiagEigen diagonalizes T = tridiag(beta, alpha, beta) with matrix.Eigen.
func tridiagEigen(alpha, beta []float64) ([]float64, *matrix.Dense, error) {
	m := len(alpha)
	t, err := matrix.NewDense(m, m)
	if err != nil {
		return nil, nil, err
	}
	tnorm := 1.0
	for i, a := range alpha {
		if err = t.Set(i, i, a); err != nil {
			return nil, nil, err
		}
		tnorm = math.Max(tnorm, math.Abs(a))
	}
	for i, b := range beta[:m-1] {
		if err = t.Set(i, i+1, b); err != nil {
			return nil, nil, err
		}
		if err = t.Set(i+1, i, b); err != nil {
			return nil, nil, err
		}
		tnorm = math.Max(tnorm, b)
	}

	theta, s, err := matrix.Eigen(t, 1e-13*tnorm, jacobiSweeps)
	if err != nil {
		return nil, nil, fmt.Errorf("spectrum: tridiagonal: %w", err)
	}

	return theta, s, nil
}

func ritzConverged(s *matrix.Dense, b float64, want int, tol float64) bool {
	last := s.Rows() - 1
	for i := 0; i < want; i++ {
		si, err := s.At(last, i)
		if err != nil || math.Abs(b*si) > tol {
			return false
		}
	}

	return true
}

// ritzResult forms y_i = V·s_i for the want lowest Ritz pairs.
func ritzResult(basis [][]complex128, theta []float64, s *matrix.Dense, want int) (*Result, error) {
	n := len(basis[0])
	res := &Result{Method: Lanczos, Dim: n, Values: make([]float64, want), Vectors: make([][]complex128, want)}
	for i := 0; i < want; i++ {
		col, err := s.Col(i)
		if err != nil {
			return nil, err
		}
		y := make([]complex128, n)
		for j, c := range col {
			axpy(complex(c, 0), basis[j], y)
		}
		scaleTo(y, complex(1/norm(y), 0))
		res.Values[i], res.Vectors[i] = theta[i], y
	}

	return res, nil
}

// dot returns x†·y.
func dot(x, y []complex128) complex128 {
	var s complex128
	for i := range x {
		s += cmplx.Conj(x[i]) * y[i]
	}

	return s
}

func norm(x []complex128) float64 {
	var s float64
	for _, v := range x {
		s += real(v)*real(v) + imag(v)*imag(v)
	}

	return math.Sqrt(s)
}

// axpy computes y += a·x.
func axpy(a complex128, x, y []complex128) {
	for i := range x {
		y[i] += a * x[i]
	}
}

func scaleTo(x []complex128, a complex128) {
	for i := range x {
		x[i] *= a
	}
}

// project removes from w its components along the orthonormal vectors in basis.
func project(basis [][]complex128, w []complex128) {
	for _, v := range basis {
		axpy(-dot(v, w), v, w)
	}
}
