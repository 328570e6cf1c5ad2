package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qham"
	"github.com/katalvlaran/qham/boson"
	"github.com/katalvlaran/qham/model"
	"github.com/katalvlaran/qham/sparse"
	"github.com/katalvlaran/qham/spin"
)

func mustFactory(t testing.TB, n int) *spin.Factory {
	t.Helper()
	f, err := spin.NewFactory(n)
	require.NoError(t, err)

	return f
}

func mustMode(t testing.TB, nMax int) *boson.Mode {
	t.Helper()
	m, err := boson.NewMode(nMax)
	require.NoError(t, err)

	return m
}

// TestSpinModelEmpty ensures an empty builder yields the 2^N zero matrix.
func TestSpinModelEmpty(t *testing.T) {
	m, err := model.NewSpinModel(mustFactory(t, 3))
	require.NoError(t, err)
	require.Equal(t, 8, m.Dim())

	h, err := m.Build()
	require.NoError(t, err)
	require.Equal(t, 8, h.Rows())
	require.Zero(t, h.NNZ())
}

// TestSpinModelZZScenario pins N=2, JZZ=[[0,1],[0,0]], hX=[0,0] to diag(1,-1,-1,1).
func TestSpinModelZZScenario(t *testing.T) {
	m, err := model.NewSpinModel(mustFactory(t, 2))
	require.NoError(t, err)
	require.NoError(t, m.AddSpinCoupling(spin.Ops{spin.Z, spin.Z}, [][]complex128{{0, 1}, {0, 0}}))
	require.NoError(t, m.AddSpinField(spin.X, []complex128{0, 0}))

	h, err := m.Build()
	require.NoError(t, err)
	want, err := sparse.Diag([]complex128{1, -1, -1, 1})
	require.NoError(t, err)
	require.True(t, sparse.Equal(want, h), "got\n%v", h)
}

// TestSpinModelIdempotentAndInvalidated checks the cache pointer and its
// invalidation by each Add method.
func TestSpinModelIdempotentAndInvalidated(t *testing.T) {
	m, err := model.NewSpinModel(mustFactory(t, 2))
	require.NoError(t, err)
	require.NoError(t, m.AddSpinField(spin.Z, []complex128{1, 0}))

	first, err := m.Build()
	require.NoError(t, err)
	second, err := m.Build()
	require.NoError(t, err)
	require.Same(t, first, second)
	require.False(t, m.Dirty())

	require.NoError(t, m.AddSpinCoupling(spin.Ops{spin.X, spin.X}, [][]complex128{{0, 1}, {0, 0}}))
	require.True(t, m.Dirty())
	third, err := m.Build()
	require.NoError(t, err)
	require.NotSame(t, first, third)
	require.Greater(t, third.NNZ(), first.NNZ())

	require.NoError(t, m.AddSpinField(spin.Z, []complex128{0, 1}))
	fourth, err := m.Build()
	require.NoError(t, err)
	require.Equal(t, []complex128{2, 0, 0, -2}, fourth.Diagonal())
}

// TestSpinModelFailFast ensures shape errors surface at registration and
// leave the cache untouched.
func TestSpinModelFailFast(t *testing.T) {
	_, err := model.NewSpinModel(nil)
	require.ErrorIs(t, err, model.ErrNilOperand)

	m, err := model.NewSpinModel(mustFactory(t, 2))
	require.NoError(t, err)
	h, err := m.Build()
	require.NoError(t, err)

	err = m.AddSpinField(spin.Z, []complex128{1, 2, 3})
	require.ErrorIs(t, err, qham.ErrShapeMismatch)
	err = m.AddSpinCoupling(spin.Ops{spin.Z, spin.Z}, [][]complex128{{0, 1}})
	require.ErrorIs(t, err, spin.ErrCouplingShape)
	err = m.AddSpinField(spin.Axis(99), []complex128{1, 2})
	require.ErrorIs(t, err, qham.ErrInvalidArgument)

	require.False(t, m.Dirty())
	again, err := m.Build()
	require.NoError(t, err)
	require.Same(t, h, again)
}

// TestSpinModelRejectsNonFinite ensures NaN or Inf coefficients fail at
// registration and leave the builder usable.
func TestSpinModelRejectsNonFinite(t *testing.T) {
	m, err := model.NewSpinModel(mustFactory(t, 2))
	require.NoError(t, err)
	require.NoError(t, m.AddSpinField(spin.Z, []complex128{1, 0}))

	err = m.AddSpinField(spin.Z, []complex128{complex(math.NaN(), 0), 1})
	require.ErrorIs(t, err, spin.ErrNonFinite)
	err = m.AddSpinCoupling(spin.Ops{spin.X, spin.X}, [][]complex128{{0, complex(0, math.Inf(1))}, {0, 0}})
	require.ErrorIs(t, err, qham.ErrInvalidArgument)

	h, err := m.Build()
	require.NoError(t, err)
	require.Equal(t, []complex128{1, 1, -1, -1}, h.Diagonal())
}

// TestSpinModelCopiesInput ensures caller mutation after Add does not leak.
func TestSpinModelCopiesInput(t *testing.T) {
	m, err := model.NewSpinModel(mustFactory(t, 2))
	require.NoError(t, err)
	J := [][]complex128{{0, 1}, {0, 0}}
	require.NoError(t, m.AddSpinCoupling(spin.Ops{spin.Z, spin.Z}, J))
	J[0][1] = 7

	h, err := m.Build()
	require.NoError(t, err)
	require.Equal(t, []complex128{1, -1, -1, 1}, h.Diagonal())
}

// TestSpinBosonEmbeddingLaw checks N=1, n_max=1, hZ=[1]: I_b ⊗ σ^Z = diag(1,-1,1,-1).
func TestSpinBosonEmbeddingLaw(t *testing.T) {
	m, err := model.NewSpinBosonModel(mustFactory(t, 1), mustMode(t, 1))
	require.NoError(t, err)
	require.Equal(t, 4, m.Dim())
	require.NoError(t, m.AddSpinField(spin.Z, []complex128{1}))

	h, err := m.Build()
	require.NoError(t, err)
	want, err := sparse.FromDense([][]complex128{
		{1, 0, 0, 0},
		{0, -1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, -1},
	})
	require.NoError(t, err)
	require.True(t, sparse.Equal(want, h), "got\n%v", h)
}

// TestSpinBosonBosonEmbedding checks ω·n ⊗ I_s: the boson factor is outer.
func TestSpinBosonBosonEmbedding(t *testing.T) {
	m, err := model.NewSpinBosonModel(mustFactory(t, 1), mustMode(t, 2))
	require.NoError(t, err)
	require.NoError(t, m.AddBosonTerm(boson.N, 0.5))

	h, err := m.Build()
	require.NoError(t, err)
	require.Equal(t, 6, h.Rows())
	got := h.Diagonal()
	want := []float64{0, 0, 0.5, 0.5, 1, 1}
	for i := range want {
		require.InDelta(t, want[i], real(got[i]), 1e-12, "index %d", i)
	}
}

// TestSpinBosonRabi builds a single-mode Rabi model and checks structure.
func TestSpinBosonRabi(t *testing.T) {
	f := mustFactory(t, 1)
	mode := mustMode(t, 3)
	m, err := model.NewSpinBosonModel(f, mode)
	require.NoError(t, err)
	require.NoError(t, m.AddBosonTerm(boson.N, 1))
	require.NoError(t, m.AddSpinField(spin.Z, []complex128{0.5}))
	require.NoError(t, m.AddSpinBoson(boson.A, spin.X, 0.2))
	require.NoError(t, m.AddSpinBoson(boson.Adag, spin.X, 0.2))

	h, err := m.Build()
	require.NoError(t, err)
	require.Equal(t, 8, h.Rows())
	require.True(t, sparse.IsHermitian(h, 1e-12))

	// ⟨n=0,↑| H |n=1,↓⟩ = g·√1
	v, err := h.At(0, 3)
	require.NoError(t, err)
	require.InDelta(t, 0.2, real(v), 1e-12)

	same, err := m.Build()
	require.NoError(t, err)
	require.Same(t, h, same)

	require.NoError(t, m.AddBosonTerm(boson.I, 1))
	shifted, err := m.Build()
	require.NoError(t, err)
	require.NotSame(t, h, shifted)
	d0, _ := h.At(0, 0)
	d1, _ := shifted.At(0, 0)
	require.InDelta(t, real(d0)+1, real(d1), 1e-12)
}

// TestSpinBosonErrors covers the registration errors of the joint builder.
func TestSpinBosonErrors(t *testing.T) {
	_, err := model.NewSpinBosonModel(mustFactory(t, 1), nil)
	require.ErrorIs(t, err, model.ErrNilOperand)

	m, err := model.NewSpinBosonModel(mustFactory(t, 2), mustMode(t, 1))
	require.NoError(t, err)
	require.ErrorIs(t, m.AddBosonTerm("b", 1), boson.ErrUnknownLabel)
	require.ErrorIs(t, m.AddSpinBoson(boson.A, spin.Axis(12), 1), spin.ErrUnknownAxis)
	require.ErrorIs(t, m.AddSpinField(spin.X, []complex128{1}), spin.ErrFieldLength)

	h, err := m.Build()
	require.NoError(t, err)
	require.Equal(t, 8, h.Rows())
	require.Zero(t, h.NNZ())
}
