// SPDX-License-Identifier: MIT

package model

import (
	"github.com/katalvlaran/qham/boson"
	"github.com/katalvlaran/qham/spin"
	"github.com/katalvlaran/qham/spinboson"
	"github.com/katalvlaran/qham/term"
)

// Field describes Σ_i H[i]·σ^Axis_i.
type Field struct {
	Axis spin.Axis
	H    []complex128
}

// Bond describes Σ_{i<j} J[i][j]·σ^Ops[0]_i σ^Ops[1]_j.
type Bond struct {
	Ops spin.Ops
	J   [][]complex128
}

// Drive describes Strength·O_Label on the boson mode.
type Drive struct {
	Label    boson.Label
	Strength float64
}

// Coupling describes G·(O_Boson ⊗ Σ_i σ^Axis_i).
type Coupling struct {
	Boson boson.Label
	Axis  spin.Axis
	G     float64
}

func fieldTerms(f *spin.Factory) term.Constructor[Field] {
	return func(d Field) (term.Term, error) {
		return spin.NewSingleSiteTerm(f, d.Axis, d.H)
	}
}

func bondTerms(f *spin.Factory) term.Constructor[Bond] {
	return func(d Bond) (term.Term, error) {
		return spin.NewTwoSiteTerm(f, d.Ops, d.J)
	}
}

func driveTerms(m *boson.Mode) term.Constructor[Drive] {
	return func(d Drive) (term.Term, error) {
		return boson.NewTerm(m, d.Label, d.Strength)
	}
}

func couplingTerms(f *spin.Factory, m *boson.Mode) term.Constructor[Coupling] {
	return func(d Coupling) (term.Term, error) {
		return spinboson.NewCouplingTerm(f, m, d.Boson, d.Axis, d.G)
	}
}
