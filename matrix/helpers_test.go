package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qham/matrix"
)

// MustDense creates an r×c zero matrix or fails the test.
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return m
}

// MustRows builds a Dense from rows or fails the test.
func MustRows(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

// RandomSymmetric fills an n×n symmetric matrix deterministically from seed.
func RandomSymmetric(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m := MustDense(t, n, n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := rng.Float64()*2 - 1
			require.NoError(t, m.Set(i, j, v))
			require.NoError(t, m.Set(j, i, v))
		}
	}

	return m
}

// propOrthonormal checks QᵀQ ≈ I.
func propOrthonormal(t *testing.T, q *matrix.Dense, tol float64) {
	t.Helper()
	n := q.Cols()
	for a := 0; a < n; a++ {
		ca, err := q.Col(a)
		require.NoError(t, err)
		for b := a; b < n; b++ {
			cb, err := q.Col(b)
			require.NoError(t, err)
			var dot float64
			for i := range ca {
				dot += ca[i] * cb[i]
			}
			want := 0.0
			if a == b {
				want = 1
			}
			require.InDelta(t, want, dot, tol, "QᵀQ[%d,%d]", a, b)
		}
	}
}

// propEigenEquation checks A·q_k ≈ λ_k·q_k for every column.
func propEigenEquation(t *testing.T, a matrix.Matrix, q *matrix.Dense, vals []float64, tol float64) {
	t.Helper()
	for k, lambda := range vals {
		v, err := q.Col(k)
		require.NoError(t, err)
		av, err := matrix.MatVec(a, v)
		require.NoError(t, err)
		for i := range v {
			require.LessOrEqual(t, math.Abs(av[i]-lambda*v[i]), tol, "k=%d i=%d", k, i)
		}
	}
}
