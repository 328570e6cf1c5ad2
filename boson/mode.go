// SPDX-License-Identifier: MIT

package boson

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qham"
	"github.com/katalvlaran/qham/sparse"
)

var (
	// ErrUnknownLabel is returned for operator labels outside {a, adag, n, I}.
	ErrUnknownLabel = fmt.Errorf("boson: unknown operator label: %w", qham.ErrInvalidArgument)

	// ErrTruncation is returned for a negative n_max.
	ErrTruncation = fmt.Errorf("boson: n_max must be >= 0: %w", qham.ErrInvalidArgument)

	// ErrNilMode is returned when a term is constructed without a mode.
	ErrNilMode = fmt.Errorf("boson: nil mode: %w", qham.ErrInvalidArgument)

	// ErrStrength is returned for NaN or infinite strengths.
	ErrStrength = fmt.Errorf("boson: strength must be finite: %w", qham.ErrInvalidArgument)
)

// Label names one of the mode operators.
type Label string

const (
	A    Label = "a"    // annihilation
	Adag Label = "adag" // creation
	N    Label = "n"    // number
	I    Label = "I"    // identity
)

// ParseLabel validates s as a Label.
func ParseLabel(s string) (Label, error) {
	l := Label(s)
	if !l.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownLabel)
	}

	return l, nil
}

// Valid reports whether l is one of a, adag, n, I.
func (l Label) Valid() bool {
	switch l {
	case A, Adag, N, I:
		return true
	}

	return false
}

// Mode holds the eagerly built operators of one truncated bosonic mode.
// All matrices are immutable and may be shared freely.
type Mode struct {
	nMax int
	ops  map[Label]*sparse.CSR
}

// NewMode builds a, a†, n and I for truncation nMax (dimension nMax+1).
// Errors: ErrTruncation for nMax < 0.
// Complexity: O(nMax).
func NewMode(nMax int) (*Mode, error) {
	if nMax < 0 {
		return nil, fmt.Errorf("n_max=%d: %w", nMax, ErrTruncation)
	}
	d := nMax + 1

	ts := make([]sparse.Triplet, 0, nMax)
	for i := 1; i < d; i++ {
		ts = append(ts, sparse.Triplet{Row: i - 1, Col: i, Val: complex(math.Sqrt(float64(i)), 0)})
	}
	a, err := sparse.FromTriplets(d, d, ts)
	if err != nil {
		return nil, fmt.Errorf("boson: build a: %w", err)
	}
	adag, err := sparse.Adjoint(a)
	if err != nil {
		return nil, fmt.Errorf("boson: build adag: %w", err)
	}
	n, err := sparse.Mul(adag, a)
	if err != nil {
		return nil, fmt.Errorf("boson: build n: %w", err)
	}
	id, err := sparse.Identity(d)
	if err != nil {
		return nil, fmt.Errorf("boson: build I: %w", err)
	}

	return &Mode{
		nMax: nMax,
		ops:  map[Label]*sparse.CSR{A: a, Adag: adag, N: n, I: id},
	}, nil
}

// NMax returns the truncation.
func (m *Mode) NMax() int { return m.nMax }

// Dim returns n_max+1.
func (m *Mode) Dim() int { return m.nMax + 1 }

// Op returns the operator for label.
// Errors: ErrUnknownLabel.
func (m *Mode) Op(label Label) (*sparse.CSR, error) {
	op, ok := m.ops[label]
	if !ok {
		return nil, fmt.Errorf("%q: %w", string(label), ErrUnknownLabel)
	}

	return op, nil
}
