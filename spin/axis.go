// SPDX-License-Identifier: MIT

package spin

import (
	"fmt"

	"github.com/katalvlaran/qham/sparse"
)

// Axis names a single-site spin-½ operator.
type Axis uint8

const (
	X     Axis = iota // σ^X
	Y                 // σ^Y
	Z                 // σ^Z
	Plus              // σ^+ = |↑⟩⟨↓|
	Minus             // σ^- = |↓⟩⟨↑|

	numAxes
)

var axisNames = [numAxes]string{X: "X", Y: "Y", Z: "Z", Plus: "+", Minus: "-"}

// String returns the canonical label ("X", "Y", "Z", "+", "-").
func (a Axis) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}

	return axisNames[a]
}

// Valid reports whether a is one of the five known axes.
func (a Axis) Valid() bool { return a < numAxes }

// ParseAxis converts a label into an Axis.
func ParseAxis(s string) (Axis, error) {
	for a, name := range axisNames {
		if s == name {
			return Axis(a), nil
		}
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownAxis)
}

// Ops is the ordered operator pair of a two-site term: Ops[0] acts on the
// lower site i, Ops[1] on the higher site j.
type Ops [2]Axis

// String returns the two labels concatenated, e.g. "ZZ" or "+-".
func (o Ops) String() string { return o[0].String() + o[1].String() }

// ParseOps parses a two-character label such as "XX", "ZZ" or "+-".
func ParseOps(s string) (Ops, error) {
	if len(s) != 2 {
		return Ops{}, fmt.Errorf("ops %q: want two axis labels: %w", s, ErrUnknownAxis)
	}
	a, err := ParseAxis(s[:1])
	if err != nil {
		return Ops{}, err
	}
	b, err := ParseAxis(s[1:])
	if err != nil {
		return Ops{}, err
	}

	return Ops{a, b}, nil
}

// Single-site 2×2 operators, built once at package initialization and
// shared read-only by every factory.
var (
	identity2 = mustDense([][]complex128{{1, 0}, {0, 1}})
	pauli2    = [numAxes]*sparse.CSR{
		X:     mustDense([][]complex128{{0, 1}, {1, 0}}),
		Y:     mustDense([][]complex128{{0, -1i}, {1i, 0}}),
		Z:     mustDense([][]complex128{{1, 0}, {0, -1}}),
		Plus:  mustDense([][]complex128{{0, 1}, {0, 0}}),
		Minus: mustDense([][]complex128{{0, 0}, {1, 0}}),
	}
)

// Pauli2 returns the shared 2×2 operator for a. The result must not be
// modified (CSR values are immutable anyway).
func Pauli2(a Axis) (*sparse.CSR, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%v: %w", a, ErrUnknownAxis)
	}

	return pauli2[a], nil
}

// mustDense panics on malformed literals; only used for package constants.
func mustDense(rows [][]complex128) *sparse.CSR {
	m, err := sparse.FromDense(rows)
	if err != nil {
		panic("spin: bad operator literal: " + err.Error())
	}

	return m
}
