// SPDX-License-Identifier: MIT

package spectrum

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/qham/matrix"
	"github.com/katalvlaran/qham/sparse"
)

// Result holds eigenpairs in ascending eigenvalue order.
type Result struct {
	Method Method
	Dim    int
	Values []float64
	// Vectors[k] is the unit eigenvector of Values[k].
	Vectors [][]complex128
}

// Diagonalize computes eigenpairs of a Hermitian sparse matrix.
//
// Stages:
//  1. Reject nil, non-square and non-Hermitian input (tolerance scaled by max|h|).
//  2. Choose Dense or Lanczos (WithMethod, or by WithDenseThreshold).
//  3. Truncate to WithEigenCount when set.
//
// ctx is honored between Lanczos iterations.
func Diagonalize(ctx context.Context, h *sparse.CSR, opts ...Option) (*Result, error) {
	if h == nil {
		return nil, fmt.Errorf("spectrum: %w", sparse.ErrNilMatrix)
	}
	if h.Rows() != h.Cols() {
		return nil, fmt.Errorf("%dx%d: %w", h.Rows(), h.Cols(), ErrNotSquare)
	}
	o := gatherOptions(opts...)
	scale := math.Max(1, sparse.MaxAbs(h))
	if !sparse.IsHermitian(h, o.tol*scale) {
		return nil, ErrNotHermitian
	}

	n := h.Rows()
	method := o.method
	if method == Auto {
		method = Lanczos
		if n <= o.denseThreshold {
			method = Dense
		}
	}
	log := o.logger.With(zap.Int("dim", n), zap.String("method", string(method)))
	log.Debug("diagonalizing", zap.Int("nnz", h.NNZ()), zap.Bool("real", h.IsReal()))

	var (
		res *Result
		err error
	)
	switch method {
	case Dense:
		res, err = denseEigen(h, scale)
	default:
		res, err = lanczosEigen(ctx, h, o, scale)
	}
	if err != nil {
		return nil, err
	}
	if o.k > 0 && o.k < len(res.Values) {
		res.Values = res.Values[:o.k]
		res.Vectors = res.Vectors[:o.k]
	}
	if len(res.Values) > 0 {
		log.Debug("diagonalized", zap.Int("pairs", len(res.Values)), zap.Float64("ground", res.Values[0]))
	}

	return res, nil
}

// denseEigen runs Jacobi on the upper triangle of h, directly for real input
// and through the real symmetric embedding otherwise.
func denseEigen(h *sparse.CSR, scale float64) (*Result, error) {
	n := h.Rows()
	jtol := 1e-12 * scale

	if h.IsReal() {
		a, err := matrix.NewFromRows(realUpper(h))
		if err != nil {
			return nil, err
		}
		vals, q, err := matrix.Eigen(a, jtol, jacobiSweeps)
		if err != nil {
			return nil, fmt.Errorf("spectrum: %w", err)
		}
		if err := checkResiduals(a, vals, q, scale); err != nil {
			return nil, err
		}
		vecs := make([][]complex128, n)
		for k := range vecs {
			col, err := q.Col(k)
			if err != nil {
				return nil, err
			}
			vecs[k] = make([]complex128, n)
			for i, x := range col {
				vecs[k][i] = complex(x, 0)
			}
		}

		return &Result{Method: Dense, Dim: n, Values: vals, Vectors: vecs}, nil
	}

	a, err := matrix.NewFromRows(realEmbedding(h))
	if err != nil {
		return nil, err
	}
	vals, q, err := matrix.Eigen(a, jtol, jacobiSweeps)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}
	if err := checkResiduals(a, vals, q, scale); err != nil {
		return nil, err
	}

	return unembed(h, vals, q)
}

// denseResidual bounds ‖A·q_k − λ_k·q_k‖ relative to max(1, max|h|).
const denseResidual = 1e-8

// checkResiduals confirms every Jacobi pair satisfies A·q = λ·q.
func checkResiduals(a *matrix.Dense, vals []float64, q *matrix.Dense, scale float64) error {
	for k, lambda := range vals {
		col, err := q.Col(k)
		if err != nil {
			return err
		}
		aq, err := matrix.MatVec(a, col)
		if err != nil {
			return fmt.Errorf("spectrum: %w", err)
		}
		var r2 float64
		for i, x := range aq {
			d := x - lambda*col[i]
			r2 += d * d
		}
		if r := math.Sqrt(r2); r > denseResidual*scale {
			return fmt.Errorf("spectrum: dense pair %d residual %.3g: %w", k, r, ErrNoConvergence)
		}
	}

	return nil
}

// realUpper reads the upper triangle of h into a dense symmetric array.
func realUpper(h *sparse.CSR) [][]float64 {
	n := h.Rows()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}
	h.Do(func(i, j int, v complex128) {
		if i <= j {
			rows[i][j], rows[j][i] = real(v), real(v)
		}
	})

	return rows
}

// realEmbedding builds M = [[Re, −Im], [Im, Re]] from the upper triangle of h.
// Every eigenvalue λ of h appears twice in M, with eigenvectors [x; y] and
// [−y; x] for the complex eigenvector x + iy.
func realEmbedding(h *sparse.CSR) [][]float64 {
	n := h.Rows()
	rows := make([][]float64, 2*n)
	for i := range rows {
		rows[i] = make([]float64, 2*n)
	}
	h.Do(func(i, j int, v complex128) {
		if i > j {
			return
		}
		x, y := real(v), imag(v)
		rows[i][j], rows[j][i] = x, x
		rows[n+i][n+j], rows[n+j][n+i] = x, x
		if i == j {
			return
		}
		rows[i][n+j], rows[n+j][i] = -y, -y
		rows[j][n+i], rows[n+i][j] = y, y
	})

	return rows
}

type eigenPair struct {
	value  float64
	vector []complex128
}

// dependentResidual is the norm below which a candidate is treated as a
// complex multiple of vectors already kept.
const dependentResidual = 1e-3

// unembed maps the doubled spectrum of the embedding back to n complex
// eigenpairs. Within each cluster of (numerically) equal eigenvalues the
// candidates x + iy are orthonormalized greedily, largest residual first,
// keeping half of the cluster. Values are recomputed as Rayleigh quotients.
func unembed(h *sparse.CSR, vals []float64, q *matrix.Dense) (*Result, error) {
	n := h.Rows()
	ctol := 1e-8 * math.Max(1, math.Max(math.Abs(vals[0]), math.Abs(vals[len(vals)-1])))

	pairs := make([]eigenPair, 0, n)
	hz := make([]complex128, n)
	for start := 0; start < len(vals); {
		end := start + 1
		for end < len(vals) && vals[end]-vals[end-1] <= ctol {
			end++
		}
		cands := make([][]complex128, 0, end-start)
		for c := start; c < end; c++ {
			col, err := q.Col(c)
			if err != nil {
				return nil, err
			}
			z := make([]complex128, n)
			for i := range z {
				z[i] = complex(col[i], col[n+i])
			}
			cands = append(cands, z)
		}

		for _, z := range orthonormalize(cands, (end-start+1)/2) {
			h.MulVecTo(hz, z)
			pairs = append(pairs, eigenPair{value: real(dot(z, hz)), vector: z})
		}
		start = end
	}
	if len(pairs) != n {
		return nil, fmt.Errorf("spectrum: recovered %d of %d eigenvectors: %w", len(pairs), n, ErrNoConvergence)
	}
	sort.SliceStable(pairs, func(a, b int) bool { return pairs[a].value < pairs[b].value })

	res := &Result{Method: Dense, Dim: n, Values: make([]float64, n), Vectors: make([][]complex128, n)}
	for k, p := range pairs {
		res.Values[k], res.Vectors[k] = p.value, p.vector
	}

	return res, nil
}

// orthonormalize picks up to want complex-independent unit vectors from
// cands, always taking the candidate with the largest residual next.
func orthonormalize(cands [][]complex128, want int) [][]complex128 {
	var basis [][]complex128
	used := make([]bool, len(cands))
	for len(basis) < want {
		best, bestNorm := -1, dependentResidual
		var bestVec []complex128
		for c, z := range cands {
			if used[c] {
				continue
			}
			r := append([]complex128(nil), z...)
			project(basis, r)
			if nrm := norm(r); nrm > bestNorm {
				best, bestNorm, bestVec = c, nrm, r
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		scaleTo(bestVec, complex(1/bestNorm, 0))
		basis = append(basis, bestVec)
	}

	return basis
}
