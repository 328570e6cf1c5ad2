// SPDX-License-Identifier: MIT

// Package spinboson couples a truncated bosonic mode to the collective spin
// of a chain:
//
//	H = g · (O_b ⊗ Σ_i σ^axis_i)
//
// The boson factor is the outer (most significant) tensor factor and the spin
// factor the inner one. Every joint-space operator in this module uses the
// same order, so matrices from different term types can be summed directly.
package spinboson

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/qham"
	"github.com/katalvlaran/qham/boson"
	"github.com/katalvlaran/qham/sparse"
	"github.com/katalvlaran/qham/spin"
)

var (
	// ErrNilOperand is returned when the factory or the mode is missing.
	ErrNilOperand = fmt.Errorf("spinboson: nil factory or mode: %w", qham.ErrInvalidArgument)

	// ErrCoupling is returned for a NaN or infinite coupling strength.
	ErrCoupling = fmt.Errorf("spinboson: coupling must be finite: %w", qham.ErrInvalidArgument)
)

// CouplingTerm represents g·(O_b ⊗ Σ_i σ^axis_i) on the joint space of
// dimension d_b·2^N.
type CouplingTerm struct {
	f     *spin.Factory
	mode  *boson.Mode
	label boson.Label
	axis  spin.Axis
	g     float64
}

// NewCouplingTerm validates a coupling term.
// Errors: ErrNilOperand, boson.ErrUnknownLabel, spin.ErrUnknownAxis, ErrCoupling.
func NewCouplingTerm(f *spin.Factory, mode *boson.Mode, label boson.Label, axis spin.Axis, g float64) (*CouplingTerm, error) {
	if f == nil || mode == nil {
		return nil, ErrNilOperand
	}
	if !label.Valid() {
		return nil, fmt.Errorf("%q: %w", string(label), boson.ErrUnknownLabel)
	}
	if !axis.Valid() {
		return nil, fmt.Errorf("%v: %w", axis, spin.ErrUnknownAxis)
	}
	if math.IsNaN(g) || math.IsInf(g, 0) {
		return nil, fmt.Errorf("%v: %w", g, ErrCoupling)
	}

	return &CouplingTerm{f: f, mode: mode, label: label, axis: axis, g: g}, nil
}

// Dim returns the joint dimension d_b·2^N.
func (t *CouplingTerm) Dim() int { return t.mode.Dim() * t.f.Dim() }

// Matrix builds the collective spin operator with unit coefficients, tensors
// the boson operator in front of it and scales by g.
func (t *CouplingTerm) Matrix() (*sparse.CSR, error) {
	if t.g == 0 {
		return sparse.Zeros(t.Dim(), t.Dim())
	}
	ob, err := t.mode.Op(t.label)
	if err != nil {
		return nil, err
	}
	collective, err := spin.NewSingleSiteTerm(t.f, t.axis, ones(t.f.Sites()))
	if err != nil {
		return nil, err
	}
	sum, err := collective.Matrix()
	if err != nil {
		return nil, err
	}
	joint, err := sparse.Kron(ob, sum)
	if err != nil {
		return nil, fmt.Errorf("spinboson: %s ⊗ Σσ^%v: %w", t.label, t.axis, err)
	}

	return sparse.Scale(joint, complex(t.g, 0))
}

func ones(n int) []complex128 {
	return slices.Repeat([]complex128{1}, n)
}
