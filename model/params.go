// SPDX-License-Identifier: MIT

package model

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/qham"
	"github.com/katalvlaran/qham/boson"
	"github.com/katalvlaran/qham/spin"
	"github.com/katalvlaran/qham/spinboson"
)

var (
	// ErrNoBosonMode is returned when boson or coupling terms are given without n_max.
	ErrNoBosonMode = fmt.Errorf("model: boson terms need n_max: %w", qham.ErrInvalidArgument)

	// ErrNoRuns is returned by DecodeParams for a document with an empty runs list.
	ErrNoRuns = fmt.Errorf("model: no runs in parameter file: %w", qham.ErrInvalidArgument)
)

// FieldParams is a generic single-site field entry.
type FieldParams struct {
	Axis string    `yaml:"axis" json:"axis"`
	H    []float64 `yaml:"h" json:"h"`
}

// BondParams is a generic two-site coupling entry; Ops is a two-letter label
// such as "XZ" or "+-".
type BondParams struct {
	Ops string      `yaml:"ops" json:"ops"`
	J   [][]float64 `yaml:"j" json:"j"`
}

// BosonParams is a boson-only term.
type BosonParams struct {
	Label    string  `yaml:"label" json:"label"`
	Strength float64 `yaml:"strength" json:"strength"`
}

// CouplingParams is a spin–boson coupling term.
type CouplingParams struct {
	Boson string  `yaml:"boson" json:"boson"`
	Axis  string  `yaml:"axis" json:"axis"`
	G     float64 `yaml:"g" json:"g"`
}

// Params describes one Hamiltonian. Absent arrays contribute nothing and
// all-zero arrays are skipped. NMax == nil selects the spin-only builder.
//
// Name labels a run in the CLI and is not part of the physics; it is left
// out of the JSON form used as a storage key.
type Params struct {
	Name     string           `yaml:"name,omitempty" json:"-"`
	N        int              `yaml:"n" json:"n"`
	NMax     *int             `yaml:"n_max,omitempty" json:"n_max,omitempty"`
	JXX      [][]float64      `yaml:"jxx,omitempty" json:"jxx,omitempty"`
	JYY      [][]float64      `yaml:"jyy,omitempty" json:"jyy,omitempty"`
	JZZ      [][]float64      `yaml:"jzz,omitempty" json:"jzz,omitempty"`
	HX       []float64        `yaml:"hx,omitempty" json:"hx,omitempty"`
	HY       []float64        `yaml:"hy,omitempty" json:"hy,omitempty"`
	HZ       []float64        `yaml:"hz,omitempty" json:"hz,omitempty"`
	Fields   []FieldParams    `yaml:"fields,omitempty" json:"fields,omitempty"`
	Bonds    []BondParams     `yaml:"bonds,omitempty" json:"bonds,omitempty"`
	Boson    []BosonParams    `yaml:"boson,omitempty" json:"boson,omitempty"`
	Coupling []CouplingParams `yaml:"coupling,omitempty" json:"coupling,omitempty"`
}

// field and bond are the normalized forms of every spin entry in Params.
type field struct {
	axis spin.Axis
	h    []float64
}

type bond struct {
	ops spin.Ops
	j   [][]float64
}

// spinFields lists the axis-specific shorthands followed by the generic entries.
func (p Params) spinFields() ([]field, error) {
	out := []field{{spin.X, p.HX}, {spin.Y, p.HY}, {spin.Z, p.HZ}}
	for i, fp := range p.Fields {
		a, err := spin.ParseAxis(fp.Axis)
		if err != nil {
			return nil, fmt.Errorf("model: fields[%d]: %w", i, err)
		}
		out = append(out, field{a, fp.H})
	}

	return out, nil
}

func (p Params) spinBonds() ([]bond, error) {
	out := []bond{
		{spin.Ops{spin.X, spin.X}, p.JXX},
		{spin.Ops{spin.Y, spin.Y}, p.JYY},
		{spin.Ops{spin.Z, spin.Z}, p.JZZ},
	}
	for i, bp := range p.Bonds {
		ops, err := spin.ParseOps(bp.Ops)
		if err != nil {
			return nil, fmt.Errorf("model: bonds[%d]: %w", i, err)
		}
		out = append(out, bond{ops, bp.J})
	}

	return out, nil
}

// Validate checks every label, shape and value against N without building
// anything. Only the strict upper triangle of a coupling matrix must be finite.
func (p Params) Validate() error {
	if p.N < 1 || p.N > spin.MaxSites {
		return fmt.Errorf("model: n=%d: %w", p.N, spin.ErrSiteCount)
	}
	if p.NMax != nil && *p.NMax < 0 {
		return fmt.Errorf("model: n_max=%d: %w", *p.NMax, boson.ErrTruncation)
	}

	fields, err := p.spinFields()
	if err != nil {
		return err
	}
	for _, f := range fields {
		if f.h != nil && len(f.h) != p.N {
			return fmt.Errorf("model: h%v has length %d, n=%d: %w", f.axis, len(f.h), p.N, spin.ErrFieldLength)
		}
		for i, v := range f.h {
			if !finite(v) {
				return fmt.Errorf("model: h%v[%d]=%v: %w", f.axis, i, v, spin.ErrNonFinite)
			}
		}
	}
	bonds, err := p.spinBonds()
	if err != nil {
		return err
	}
	for _, b := range bonds {
		if b.j == nil {
			continue
		}
		if len(b.j) != p.N {
			return fmt.Errorf("model: J%v has %d rows, n=%d: %w", b.ops, len(b.j), p.N, spin.ErrCouplingShape)
		}
		for i, row := range b.j {
			if len(row) != p.N {
				return fmt.Errorf("model: J%v row %d has %d cols, n=%d: %w", b.ops, i, len(row), p.N, spin.ErrCouplingShape)
			}
			for j := i + 1; j < p.N; j++ {
				if !finite(row[j]) {
					return fmt.Errorf("model: J%v[%d][%d]=%v: %w", b.ops, i, j, row[j], spin.ErrNonFinite)
				}
			}
		}
	}

	if p.NMax == nil && (len(p.Boson) > 0 || len(p.Coupling) > 0) {
		return ErrNoBosonMode
	}
	for i, bp := range p.Boson {
		if _, err := boson.ParseLabel(bp.Label); err != nil {
			return fmt.Errorf("model: boson[%d]: %w", i, err)
		}
		if !finite(bp.Strength) {
			return fmt.Errorf("model: boson[%d]: %v: %w", i, bp.Strength, boson.ErrStrength)
		}
	}
	for i, cp := range p.Coupling {
		if _, err := boson.ParseLabel(cp.Boson); err != nil {
			return fmt.Errorf("model: coupling[%d]: %w", i, err)
		}
		if _, err := spin.ParseAxis(cp.Axis); err != nil {
			return fmt.Errorf("model: coupling[%d]: %w", i, err)
		}
		if !finite(cp.G) {
			return fmt.Errorf("model: coupling[%d]: %v: %w", i, cp.G, spinboson.ErrCoupling)
		}
	}

	return nil
}

// spinAdder is satisfied by both builders.
type spinAdder interface {
	AddSpinField(axis spin.Axis, h []complex128) error
	AddSpinCoupling(ops spin.Ops, J [][]complex128) error
}

// Build validates p, creates a fresh factory (and mode) and registers every
// non-zero entry. The returned builder is a *SpinModel when p.NMax is nil and a
// *SpinBosonModel otherwise; call Build on it to obtain the matrix.
func Build(p Params, opts ...Option) (Hamiltonian, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)
	f, err := spin.NewFactory(p.N, o.spinOptions()...)
	if err != nil {
		return nil, err
	}

	var (
		h     Hamiltonian
		adder spinAdder
		joint *SpinBosonModel
	)
	if p.NMax == nil {
		sm, err := NewSpinModel(f, opts...)
		if err != nil {
			return nil, err
		}
		h, adder = sm, sm
	} else {
		mode, err := boson.NewMode(*p.NMax)
		if err != nil {
			return nil, err
		}
		if joint, err = NewSpinBosonModel(f, mode, opts...); err != nil {
			return nil, err
		}
		h, adder = joint, joint
	}

	if err := registerSpin(p, adder); err != nil {
		return nil, err
	}
	if joint != nil {
		if err := registerBoson(p, joint); err != nil {
			return nil, err
		}
	}

	return h, nil
}

func registerSpin(p Params, m spinAdder) error {
	fields, err := p.spinFields()
	if err != nil {
		return err
	}
	for _, f := range fields {
		if allZero(f.h) {
			continue
		}
		if err := m.AddSpinField(f.axis, toComplex(f.h)); err != nil {
			return err
		}
	}

	bonds, err := p.spinBonds()
	if err != nil {
		return err
	}
	for _, b := range bonds {
		if allZero2(b.j) {
			continue
		}
		if err := m.AddSpinCoupling(b.ops, toComplex2(b.j)); err != nil {
			return err
		}
	}

	return nil
}

func registerBoson(p Params, m *SpinBosonModel) error {
	for _, bp := range p.Boson {
		if bp.Strength == 0 {
			continue
		}
		if err := m.AddBosonTerm(boson.Label(bp.Label), bp.Strength); err != nil {
			return err
		}
	}
	for _, cp := range p.Coupling {
		if cp.G == 0 {
			continue
		}
		axis, err := spin.ParseAxis(cp.Axis)
		if err != nil {
			return err
		}
		if err := m.AddSpinBoson(boson.Label(cp.Boson), axis, cp.G); err != nil {
			return err
		}
	}

	return nil
}

// DecodeParams reads a YAML document of the form
//
//	runs:
//	  - name: ising
//	    n: 4
//	    jzz: [[0, 1, 0, 0], ...]
//
// Unknown keys are rejected. Every run is validated.
func DecodeParams(r io.Reader) ([]Params, error) {
	var doc struct {
		Runs []Params `yaml:"runs"`
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRuns
		}
		return nil, fmt.Errorf("model: decode params: %w", err)
	}
	if len(doc.Runs) == 0 {
		return nil, ErrNoRuns
	}
	for i, p := range doc.Runs {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("run %d (%s): %w", i, p.Name, err)
		}
	}

	return doc.Runs, nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func allZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}

	return true
}

func allZero2(m [][]float64) bool {
	for _, row := range m {
		if !allZero(row) {
			return false
		}
	}

	return true
}

func toComplex(v []float64) []complex128 {
	out := make([]complex128, len(v))
	for i, x := range v {
		out[i] = complex(x, 0)
	}

	return out
}

func toComplex2(m [][]float64) [][]complex128 {
	out := make([][]complex128, len(m))
	for i, row := range m {
		out[i] = toComplex(row)
	}

	return out
}
