// SPDX-License-Identifier: MIT

package spectrum

import (
	"fmt"

	"go.uber.org/zap"
)

// Method names the eigensolver used for a Result.
type Method string

const (
	// Auto selects Dense up to the dense threshold and Lanczos above it.
	Auto Method = "auto"
	// Dense computes the full spectrum by Jacobi sweeps.
	Dense Method = "dense"
	// Lanczos computes the k lowest eigenpairs iteratively.
	Lanczos Method = "lanczos"
)

// Defaults.
const (
	// DefaultDenseThreshold is the largest dimension handled densely.
	DefaultDenseThreshold = 256

	// DefaultEigenCount is the number of eigenpairs Lanczos returns when no
	// count is configured.
	DefaultEigenCount = 6

	// DefaultTolerance bounds the Hermiticity defect and the relative residual.
	DefaultTolerance = 1e-10

	// DefaultMaxIter caps the Krylov dimension of a Lanczos run.
	DefaultMaxIter = 300

	// DefaultSeed seeds the Lanczos start vector.
	DefaultSeed int64 = 1

	jacobiSweeps = 100
)

// Option configures Diagonalize. Constructors panic on nonsensical values.
type Option func(*options)

type options struct {
	method         Method
	denseThreshold int
	k              int
	tol            float64
	maxIter        int
	seed           int64
	logger         *zap.Logger
}

// WithMethod forces a method; Auto (the default) chooses by dimension.
func WithMethod(m Method) Option {
	switch m {
	case Auto, Dense, Lanczos:
	default:
		panic(fmt.Sprintf("spectrum: unknown method %q", string(m)))
	}
	return func(o *options) { o.method = m }
}

// WithDenseThreshold sets the largest dimension diagonalized densely.
func WithDenseThreshold(n int) Option {
	if n < 0 {
		panic("spectrum: dense threshold must be >= 0")
	}
	return func(o *options) { o.denseThreshold = n }
}

// WithEigenCount limits the result to the k lowest eigenpairs. Zero means
// the full spectrum for Dense and DefaultEigenCount for Lanczos.
func WithEigenCount(k int) Option {
	if k < 0 {
		panic("spectrum: eigen count must be >= 0")
	}
	return func(o *options) { o.k = k }
}

// WithTolerance sets the Hermiticity and convergence tolerance.
func WithTolerance(tol float64) Option {
	if !(tol > 0) {
		panic("spectrum: tolerance must be > 0")
	}
	return func(o *options) { o.tol = tol }
}

// WithMaxIter caps the Lanczos Krylov dimension.
func WithMaxIter(n int) Option {
	if n <= 0 {
		panic("spectrum: max iterations must be > 0")
	}
	return func(o *options) { o.maxIter = n }
}

// WithSeed seeds the Lanczos start vector.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithLogger sets the logger; nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherOptions(user ...Option) options {
	o := options{
		method:         Auto,
		denseThreshold: DefaultDenseThreshold,
		tol:            DefaultTolerance,
		maxIter:        DefaultMaxIter,
		seed:           DefaultSeed,
		logger:         zap.NewNop(),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
