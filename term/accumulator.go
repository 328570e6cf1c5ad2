// SPDX-License-Identifier: MIT

// Package term provides the generic term accumulator: a list of descriptors
// bound to one term type and one output shape, whose matrices are summed and
// cached until the next Add.
//
// Lifecycle:
//
//	acc, _ := term.NewAccumulator("field", dim, dim, newField)
//	_ = acc.Add(desc1)   // validated now, marks the cache dirty
//	_ = acc.Add(desc2)
//	h, _ := acc.Build()  // sums fresh Term objects, caches the sum
//	h2, _ := acc.Build() // same pointer, no work
//
// Accumulators are not safe for concurrent use.
package term

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/katalvlaran/qham"
	"github.com/katalvlaran/qham/sparse"
)

// ErrTermShape is returned when a term produces a matrix whose shape differs
// from the accumulator's declared shape.
var ErrTermShape = fmt.Errorf("term: matrix shape differs from accumulator shape: %w", qham.ErrShapeMismatch)

// Term is anything that contributes one additive matrix.
type Term interface {
	Matrix() (*sparse.CSR, error)
}

// Constructor turns a descriptor into a transient Term. Arguments shared by
// every term of the type (factory, mode) are captured by the closure.
type Constructor[D any] func(D) (Term, error)

// Accumulator sums the matrices of every registered descriptor.
//
// Invariant: cached is valid iff dirty == false.
type Accumulator[D any] struct {
	name       string
	rows, cols int
	newTerm    Constructor[D]
	descr      []D
	dirty      bool
	cached     *sparse.CSR
	log        *zap.Logger
}

// NewAccumulator binds an accumulator to a term constructor and an output shape.
// Errors: sparse.ErrInvalidDimensions for non-positive shapes; qham.ErrInvalidArgument
// for a nil constructor.
func NewAccumulator[D any](name string, rows, cols int, newTerm Constructor[D], opts ...Option) (*Accumulator[D], error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("term %s: %dx%d: %w", name, rows, cols, sparse.ErrInvalidDimensions)
	}
	if newTerm == nil {
		return nil, fmt.Errorf("term %s: nil constructor: %w", name, qham.ErrInvalidArgument)
	}
	o := gatherOptions(opts...)

	return &Accumulator[D]{
		name:    name,
		rows:    rows,
		cols:    cols,
		newTerm: newTerm,
		dirty:   true,
		log:     o.logger.With(zap.String("accumulator", name)),
	}, nil
}

// Add registers one descriptor. The descriptor is validated eagerly by
// constructing (and discarding) its Term, so input defects surface here
// rather than in Build. On error nothing is registered and the cache stays valid.
func (a *Accumulator[D]) Add(d D) error {
	if _, err := a.newTerm(d); err != nil {
		return fmt.Errorf("term %s: add: %w", a.name, err)
	}
	a.descr = append(a.descr, d)
	a.dirty = true

	return nil
}

// Build returns the sum of every registered term's matrix.
//
// Implementation:
//   - Stage 1: return the cached sum if clean.
//   - Stage 2: start from an explicit zero of the declared shape, add each term
//     in insertion order, checking every term's shape.
//   - Stage 3: cache, mark clean.
//
// A failing term aborts the build; no partial sum is returned or cached.
func (a *Accumulator[D]) Build() (*sparse.CSR, error) {
	if !a.dirty && a.cached != nil {
		return a.cached, nil
	}

	acc, err := sparse.Zeros(a.rows, a.cols)
	if err != nil {
		return nil, err
	}
	for i, d := range a.descr {
		t, err := a.newTerm(d)
		if err != nil {
			return nil, fmt.Errorf("term %s[%d]: %w", a.name, i, err)
		}
		m, err := t.Matrix()
		if err != nil {
			return nil, fmt.Errorf("term %s[%d]: matrix: %w", a.name, i, err)
		}
		if m.Rows() != a.rows || m.Cols() != a.cols {
			return nil, fmt.Errorf("term %s[%d]: got %dx%d, want %dx%d: %w",
				a.name, i, m.Rows(), m.Cols(), a.rows, a.cols, ErrTermShape)
		}
		if acc, err = sparse.Add(acc, m); err != nil {
			return nil, fmt.Errorf("term %s[%d]: %w", a.name, i, err)
		}
	}

	a.cached = acc
	a.dirty = false
	a.log.Debug("accumulator rebuilt",
		zap.Int("terms", len(a.descr)),
		zap.Int("nnz", acc.NNZ()))

	return acc, nil
}

// Name returns the label given at construction.
func (a *Accumulator[D]) Name() string { return a.name }

// Shape returns the declared output shape.
func (a *Accumulator[D]) Shape() (int, int) { return a.rows, a.cols }

// Len returns the number of registered descriptors.
func (a *Accumulator[D]) Len() int { return len(a.descr) }

// Dirty reports whether the next Build will recompute.
func (a *Accumulator[D]) Dirty() bool { return a.dirty }

// Descriptors returns the registered descriptors in insertion order (shallow copy).
func (a *Accumulator[D]) Descriptors() []D { return slices.Clone(a.descr) }
