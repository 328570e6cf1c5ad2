// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// All kernels return these sentinels (optionally wrapped with an op tag via
// sparseErrorf); tests match them with errors.Is. Dimension problems also
// match qham.ErrShapeMismatch, index problems qham.ErrInvalidArgument.

package sparse

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/qham"
)

var (
	// ErrInvalidDimensions indicates that requested dimensions are non-positive.
	ErrInvalidDimensions = fmt.Errorf("sparse: dimensions must be > 0: %w", qham.ErrShapeMismatch)

	// ErrDimensionMismatch indicates incompatible operand shapes, e.g. Add of
	// different shapes or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = fmt.Errorf("sparse: dimension mismatch: %w", qham.ErrShapeMismatch)

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = fmt.Errorf("sparse: index out of range: %w", qham.ErrInvalidArgument)

	// ErrNaNInf signals a NaN or ±Inf component in an ingested value.
	ErrNaNInf = fmt.Errorf("sparse: NaN or Inf encountered: %w", qham.ErrInvalidArgument)

	// ErrNilMatrix indicates that a nil *CSR was passed to a kernel.
	ErrNilMatrix = errors.New("sparse: nil matrix")
)

// Operation tags for uniform error wrapping.
const (
	opZeros    = "Zeros"
	opIdentity = "Identity"
	opTriplets = "FromTriplets"
	opDense    = "FromDense"
	opAt       = "At"
	opAdd      = "Add"
	opScale    = "Scale"
	opMul      = "Mul"
	opKron     = "Kron"
	opAdjoint  = "Adjoint"
	opMatVec   = "MatVec"
	opAllClose = "AllClose"
)

// sparseErrorf wraps err with an operation tag, preserving it for errors.Is.
// Call only with a non-nil err.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
