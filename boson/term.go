// SPDX-License-Identifier: MIT

package boson

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qham/sparse"
)

// Term represents H = strength · O_label on the boson space alone.
type Term struct {
	mode     *Mode
	label    Label
	strength float64
}

// NewTerm validates a boson term.
// Errors: ErrNilMode, ErrUnknownLabel, ErrStrength.
func NewTerm(mode *Mode, label Label, strength float64) (*Term, error) {
	if mode == nil {
		return nil, ErrNilMode
	}
	if !label.Valid() {
		return nil, fmt.Errorf("%q: %w", string(label), ErrUnknownLabel)
	}
	if math.IsNaN(strength) || math.IsInf(strength, 0) {
		return nil, fmt.Errorf("%v: %w", strength, ErrStrength)
	}

	return &Term{mode: mode, label: label, strength: strength}, nil
}

// Matrix returns strength·O as a d_b×d_b matrix; zero strength gives an
// explicit zero matrix.
func (t *Term) Matrix() (*sparse.CSR, error) {
	op, err := t.mode.Op(t.label)
	if err != nil {
		return nil, err
	}

	return sparse.Scale(op, complex(t.strength, 0))
}
