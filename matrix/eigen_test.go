package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qham/matrix"
)

func nan() float64 { return math.NaN() }

// TestEigenErrors verifies error paths: non-square, non-symmetric and forced non-convergence.
func TestEigenErrors(t *testing.T) {
	t.Parallel()

	_, _, err := matrix.Eigen(MustDense(t, 3, 4), 1e-10, 50)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	asym := MustRows(t, [][]float64{{0, 1, 0}, {2, 0, 0}, {0, 0, 0}})
	_, _, err = matrix.Eigen(asym, 1e-12, 50)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	sym := MustRows(t, [][]float64{{2, 1, 0}, {1, 3, 0}, {0, 0, 4}})
	_, _, err = matrix.Eigen(sym, 1e-12, 0)
	require.ErrorIs(t, err, matrix.ErrMatrixEigenFailed)
}

// TestEigenDiagonal returns the sorted diagonal and a permutation of I.
func TestEigenDiagonal(t *testing.T) {
	t.Parallel()
	a := MustRows(t, [][]float64{{1, 0, 0, 0}, {0, -2, 0, 0}, {0, 0, 5, 0}, {0, 0, 0, 3}})

	vals, q, err := matrix.Eigen(a, 0, 10)
	require.NoError(t, err)
	require.Equal(t, []float64{-2, 1, 3, 5}, vals)
	col, _ := q.Col(0)
	require.Equal(t, []float64{0, 1, 0, 0}, col)
	propOrthonormal(t, q, 0)
}

// TestEigen2x2Analytic: [[2,1],[1,2]] has eigenvalues {1,3}.
func TestEigen2x2Analytic(t *testing.T) {
	t.Parallel()
	a := MustRows(t, [][]float64{{2, 1}, {1, 2}})

	vals, q, err := matrix.Eigen(a, 1e-12, 50)
	require.NoError(t, err)
	require.InDelta(t, 1.0, vals[0], 1e-12)
	require.InDelta(t, 3.0, vals[1], 1e-12)
	propOrthonormal(t, q, 1e-12)
	propEigenEquation(t, a, q, vals, 1e-10)

	v, _ := a.At(0, 1)
	require.Equal(t, 1.0, v, "input must not be mutated")
}

// TestEigenDegenerate: block diag([2], [[3,1],[1,3]]) has eigenvalues {2,2,4}.
func TestEigenDegenerate(t *testing.T) {
	t.Parallel()
	a := MustRows(t, [][]float64{{2, 0, 0}, {0, 3, 1}, {0, 1, 3}})

	vals, q, err := matrix.Eigen(a, 1e-12, 100)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{2, 2, 4}, vals, 1e-12)
	propOrthonormal(t, q, 1e-12)
	propEigenEquation(t, a, q, vals, 1e-10)
}

// TestEigenRandomSymmetric checks the eigen equation, orthonormality and the
// trace on a dense random matrix.
func TestEigenRandomSymmetric(t *testing.T) {
	t.Parallel()
	const n = 24
	a := RandomSymmetric(t, n, 42)

	vals, q, err := matrix.Eigen(a, 1e-12, 60)
	require.NoError(t, err)
	require.Len(t, vals, n)
	for k := 1; k < n; k++ {
		require.LessOrEqual(t, vals[k-1], vals[k])
	}
	propOrthonormal(t, q, 1e-9)
	propEigenEquation(t, a, q, vals, 1e-9)

	var trace, sum float64
	for i := 0; i < n; i++ {
		v, _ := a.At(i, i)
		trace += v
		sum += vals[i]
	}
	require.InDelta(t, trace, sum, 1e-9)
}
