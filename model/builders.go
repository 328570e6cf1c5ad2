// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/katalvlaran/qham"
	"github.com/katalvlaran/qham/boson"
	"github.com/katalvlaran/qham/sparse"
	"github.com/katalvlaran/qham/spin"
	"github.com/katalvlaran/qham/term"
)

// ErrNilOperand is returned when a builder is created without a factory or mode.
var ErrNilOperand = fmt.Errorf("model: nil factory or mode: %w", qham.ErrInvalidArgument)

// Hamiltonian is the capability shared by both builders.
type Hamiltonian interface {
	Build() (*sparse.CSR, error)
	Dim() int
}

// spinPart holds the two spin-space accumulators shared by both builders.
type spinPart struct {
	fields *term.Accumulator[Field]
	bonds  *term.Accumulator[Bond]
}

func newSpinPart(f *spin.Factory, o options) (spinPart, error) {
	dim := f.Dim()
	fields, err := term.NewAccumulator[Field]("spin-field", dim, dim, fieldTerms(f), o.termOptions()...)
	if err != nil {
		return spinPart{}, err
	}
	bonds, err := term.NewAccumulator[Bond]("spin-bond", dim, dim, bondTerms(f), o.termOptions()...)
	if err != nil {
		return spinPart{}, err
	}

	return spinPart{fields: fields, bonds: bonds}, nil
}

func (p spinPart) addField(axis spin.Axis, h []complex128) error {
	return p.fields.Add(Field{Axis: axis, H: slices.Clone(h)})
}

func (p spinPart) addBond(ops spin.Ops, J [][]complex128) error {
	cp := make([][]complex128, len(J))
	for i, row := range J {
		cp[i] = slices.Clone(row)
	}

	return p.bonds.Add(Bond{Ops: ops, J: cp})
}

func (p spinPart) build() (*sparse.CSR, error) {
	hf, err := p.fields.Build()
	if err != nil {
		return nil, err
	}
	hb, err := p.bonds.Build()
	if err != nil {
		return nil, err
	}

	return sparse.Add(hf, hb)
}

// SpinModel builds H = Σ fields + Σ bonds on the 2^N spin space.
// Not safe for concurrent use.
type SpinModel struct {
	f      *spin.Factory
	spin   spinPart
	dirty  bool
	cached *sparse.CSR
	log    *zap.Logger
}

// NewSpinModel binds a spin-only builder to f.
func NewSpinModel(f *spin.Factory, opts ...Option) (*SpinModel, error) {
	if f == nil {
		return nil, ErrNilOperand
	}
	o := gatherOptions(opts...)
	sp, err := newSpinPart(f, o)
	if err != nil {
		return nil, err
	}

	return &SpinModel{
		f:     f,
		spin:  sp,
		dirty: true,
		log:   o.logger.With(zap.String("model", "spin"), zap.Int("sites", f.Sites())),
	}, nil
}

// AddSpinField registers Σ_i h[i]·σ^axis_i. h must have length N; it is copied.
func (m *SpinModel) AddSpinField(axis spin.Axis, h []complex128) error {
	if err := m.spin.addField(axis, h); err != nil {
		return err
	}
	m.dirty = true

	return nil
}

// AddSpinCoupling registers Σ_{i<j} J[i][j]·σ^ops[0]_i σ^ops[1]_j.
// Only the strict upper triangle of J contributes; J must be N×N and is copied.
func (m *SpinModel) AddSpinCoupling(ops spin.Ops, J [][]complex128) error {
	if err := m.spin.addBond(ops, J); err != nil {
		return err
	}
	m.dirty = true

	return nil
}

// Build returns the cached Hamiltonian or recomputes it after a mutation.
func (m *SpinModel) Build() (*sparse.CSR, error) {
	if !m.dirty && m.cached != nil {
		return m.cached, nil
	}
	h, err := m.spin.build()
	if err != nil {
		return nil, err
	}
	m.cached, m.dirty = h, false
	m.log.Debug("hamiltonian built", zap.Int("dim", h.Rows()), zap.Int("nnz", h.NNZ()))

	return h, nil
}

// Dim returns 2^N.
func (m *SpinModel) Dim() int { return m.f.Dim() }

// Factory returns the operator factory the builder draws from.
func (m *SpinModel) Factory() *spin.Factory { return m.f }

// Dirty reports whether the next Build will recompute.
func (m *SpinModel) Dirty() bool { return m.dirty }

// SpinBosonModel builds
//
//	H = I_b ⊗ H_s + H_b ⊗ I_s + H_coupling
//
// on the joint space of dimension d_b·2^N (boson outer, spin inner).
// Not safe for concurrent use.
type SpinBosonModel struct {
	f         *spin.Factory
	mode      *boson.Mode
	spin      spinPart
	drives    *term.Accumulator[Drive]
	couplings *term.Accumulator[Coupling]
	idB, idS  *sparse.CSR
	dirty     bool
	cached    *sparse.CSR
	log       *zap.Logger
}

// NewSpinBosonModel binds a joint builder to a spin factory and a boson mode.
func NewSpinBosonModel(f *spin.Factory, mode *boson.Mode, opts ...Option) (*SpinBosonModel, error) {
	if f == nil || mode == nil {
		return nil, ErrNilOperand
	}
	o := gatherOptions(opts...)
	sp, err := newSpinPart(f, o)
	if err != nil {
		return nil, err
	}
	db, ds := mode.Dim(), f.Dim()
	drives, err := term.NewAccumulator[Drive]("boson", db, db, driveTerms(mode), o.termOptions()...)
	if err != nil {
		return nil, err
	}
	couplings, err := term.NewAccumulator[Coupling]("spin-boson", db*ds, db*ds, couplingTerms(f, mode), o.termOptions()...)
	if err != nil {
		return nil, err
	}
	idB, err := sparse.Identity(db)
	if err != nil {
		return nil, err
	}
	idS, err := sparse.Identity(ds)
	if err != nil {
		return nil, err
	}

	return &SpinBosonModel{
		f:         f,
		mode:      mode,
		spin:      sp,
		drives:    drives,
		couplings: couplings,
		idB:       idB,
		idS:       idS,
		dirty:     true,
		log: o.logger.With(zap.String("model", "spin-boson"),
			zap.Int("sites", f.Sites()), zap.Int("n_max", mode.NMax())),
	}, nil
}

// AddSpinField registers Σ_i h[i]·σ^axis_i on the spin factor.
func (m *SpinBosonModel) AddSpinField(axis spin.Axis, h []complex128) error {
	if err := m.spin.addField(axis, h); err != nil {
		return err
	}
	m.dirty = true

	return nil
}

// AddSpinCoupling registers Σ_{i<j} J[i][j]·σ^ops[0]_i σ^ops[1]_j on the spin
// factor. Only the strict upper triangle of J contributes.
func (m *SpinBosonModel) AddSpinCoupling(ops spin.Ops, J [][]complex128) error {
	if err := m.spin.addBond(ops, J); err != nil {
		return err
	}
	m.dirty = true

	return nil
}

// AddBosonTerm registers strength·O_label on the boson factor.
func (m *SpinBosonModel) AddBosonTerm(label boson.Label, strength float64) error {
	if err := m.drives.Add(Drive{Label: label, Strength: strength}); err != nil {
		return err
	}
	m.dirty = true

	return nil
}

// AddSpinBoson registers g·(O_label ⊗ Σ_i σ^axis_i).
func (m *SpinBosonModel) AddSpinBoson(label boson.Label, axis spin.Axis, g float64) error {
	if err := m.couplings.Add(Coupling{Boson: label, Axis: axis, G: g}); err != nil {
		return err
	}
	m.dirty = true

	return nil
}

// Build returns the cached joint Hamiltonian or recomputes it.
//
// Stages:
//  1. H_s from the spin accumulators, embedded as I_b ⊗ H_s.
//  2. H_b from the boson accumulator, embedded as H_b ⊗ I_s.
//  3. H_coupling, already in the joint space.
//  4. Sum, cache, mark clean.
func (m *SpinBosonModel) Build() (*sparse.CSR, error) {
	if !m.dirty && m.cached != nil {
		return m.cached, nil
	}

	hs, err := m.spin.build()
	if err != nil {
		return nil, err
	}
	hsJoint, err := sparse.Kron(m.idB, hs)
	if err != nil {
		return nil, err
	}

	hb, err := m.drives.Build()
	if err != nil {
		return nil, err
	}
	hbJoint, err := sparse.Kron(hb, m.idS)
	if err != nil {
		return nil, err
	}

	hc, err := m.couplings.Build()
	if err != nil {
		return nil, err
	}

	h, err := sparse.Sum(hsJoint, hbJoint, hc)
	if err != nil {
		return nil, err
	}
	m.cached, m.dirty = h, false
	m.log.Debug("hamiltonian built", zap.Int("dim", h.Rows()), zap.Int("nnz", h.NNZ()))

	return h, nil
}

// Dim returns d_b·2^N.
func (m *SpinBosonModel) Dim() int { return m.mode.Dim() * m.f.Dim() }

// Factory returns the spin operator factory.
func (m *SpinBosonModel) Factory() *spin.Factory { return m.f }

// Mode returns the boson mode.
func (m *SpinBosonModel) Mode() *boson.Mode { return m.mode }

// Dirty reports whether the next Build will recompute.
func (m *SpinBosonModel) Dirty() bool { return m.dirty }
