package model_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qham"
	"github.com/katalvlaran/qham/boson"
	"github.com/katalvlaran/qham/model"
	"github.com/katalvlaran/qham/sparse"
	"github.com/katalvlaran/qham/spin"
)

func intPtr(v int) *int { return &v }

// TestBuildSpinOnly pins the ZZ scenario through the parameter path.
func TestBuildSpinOnly(t *testing.T) {
	h, err := model.Build(model.Params{
		N:   2,
		JZZ: [][]float64{{0, 1}, {0, 0}},
		HX:  []float64{0, 0},
	})
	require.NoError(t, err)
	sm, ok := h.(*model.SpinModel)
	require.True(t, ok)
	require.Zero(t, sm.Factory().Cached(), "registration builds no operators")

	mat, err := h.Build()
	require.NoError(t, err)
	want, _ := sparse.Diag([]complex128{1, -1, -1, 1})
	require.True(t, sparse.Equal(want, mat))
	require.Equal(t, 2, sm.Factory().Cached(), "all-zero hX is skipped")
}

// TestBuildJoint selects the joint builder when n_max is present.
func TestBuildJoint(t *testing.T) {
	h, err := model.Build(model.Params{
		N:        1,
		NMax:     intPtr(1),
		HZ:       []float64{1},
		Boson:    []model.BosonParams{{Label: "n", Strength: 0}},
		Coupling: []model.CouplingParams{{Boson: "a", Axis: "X", G: 0}},
	})
	require.NoError(t, err)
	_, ok := h.(*model.SpinBosonModel)
	require.True(t, ok)
	require.Equal(t, 4, h.Dim())

	mat, err := h.Build()
	require.NoError(t, err)
	require.Equal(t, []complex128{1, -1, 1, -1}, mat.Diagonal())
}

// TestBuildGenericEntries covers fields/bonds given by label.
func TestBuildGenericEntries(t *testing.T) {
	p := model.Params{
		N:      2,
		Fields: []model.FieldParams{{Axis: "Z", H: []float64{1, 0}}},
		Bonds:  []model.BondParams{{Ops: "+-", J: [][]float64{{0, 1}, {0, 0}}}},
	}
	h, err := model.Build(p)
	require.NoError(t, err)
	mat, err := h.Build()
	require.NoError(t, err)

	// σ^+_0 σ^-_1 maps |10⟩ to |01⟩: entry (1,2).
	v, err := mat.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, complex(1, 0), v)
	require.False(t, sparse.IsHermitian(mat, 0), "a lone +- bond is not Hermitian")
}

// TestValidate checks that shape and label errors fail before any matrix work.
func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		p    model.Params
		want error
	}{
		{"zero sites", model.Params{N: 0}, spin.ErrSiteCount},
		{"too many sites", model.Params{N: spin.MaxSites + 1}, qham.ErrInvalidArgument},
		{"negative n_max", model.Params{N: 1, NMax: intPtr(-1)}, boson.ErrTruncation},
		{"short hz", model.Params{N: 3, HZ: []float64{1}}, spin.ErrFieldLength},
		{"jxx rows", model.Params{N: 2, JXX: [][]float64{{0, 1}}}, spin.ErrCouplingShape},
		{"jyy cols", model.Params{N: 2, JYY: [][]float64{{0, 1}, {0}}}, qham.ErrShapeMismatch},
		{"field axis", model.Params{N: 1, Fields: []model.FieldParams{{Axis: "W", H: []float64{1}}}}, spin.ErrUnknownAxis},
		{"bond ops", model.Params{N: 1, Bonds: []model.BondParams{{Ops: "X", J: [][]float64{{0}}}}}, spin.ErrUnknownAxis},
		{"boson without mode", model.Params{N: 1, Boson: []model.BosonParams{{Label: "n", Strength: 1}}}, model.ErrNoBosonMode},
		{"boson label", model.Params{N: 1, NMax: intPtr(2), Boson: []model.BosonParams{{Label: "b"}}}, boson.ErrUnknownLabel},
		{"coupling axis", model.Params{N: 1, NMax: intPtr(2), Coupling: []model.CouplingParams{{Boson: "a", Axis: "Q"}}}, spin.ErrUnknownAxis},
		{"nan field", model.Params{N: 2, HZ: []float64{math.NaN(), 1}}, spin.ErrNonFinite},
		{"inf generic field", model.Params{N: 1, Fields: []model.FieldParams{{Axis: "+", H: []float64{math.Inf(-1)}}}}, qham.ErrInvalidArgument},
		{"inf bond", model.Params{N: 2, JZZ: [][]float64{{0, math.Inf(1)}, {0, 0}}}, spin.ErrNonFinite},
		{"nan boson strength", model.Params{N: 1, NMax: intPtr(1), Boson: []model.BosonParams{{Label: "n", Strength: math.NaN()}}}, boson.ErrStrength},
		{"inf coupling", model.Params{N: 1, NMax: intPtr(1), Coupling: []model.CouplingParams{{Boson: "a", Axis: "X", G: math.Inf(1)}}}, qham.ErrInvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.p.Validate(), tc.want)
			_, err := model.Build(tc.p)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestDecodeParams reads a two-run YAML document.
func TestDecodeParams(t *testing.T) {
	const doc = `
runs:
  - name: ising
    n: 2
    jzz: [[0, 1], [0, 0]]
    hx: [0.5, 0.5]
  - name: rabi
    n: 1
    n_max: 4
    hz: [0.5]
    boson:
      - {label: n, strength: 1}
    coupling:
      - {boson: a, axis: X, g: 0.1}
      - {boson: adag, axis: X, g: 0.1}
`
	runs, err := model.DecodeParams(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "ising", runs[0].Name)
	require.Nil(t, runs[0].NMax)
	require.Equal(t, [][]float64{{0, 1}, {0, 0}}, runs[0].JZZ)
	require.NotNil(t, runs[1].NMax)
	require.Equal(t, 4, *runs[1].NMax)
	require.Len(t, runs[1].Coupling, 2)

	h, err := model.Build(runs[1])
	require.NoError(t, err)
	require.Equal(t, 10, h.Dim())
}

// TestDecodeParamsRejects covers unknown keys, invalid runs and empty documents.
func TestDecodeParamsRejects(t *testing.T) {
	_, err := model.DecodeParams(strings.NewReader("runs:\n  - n: 1\n    hq: [1]\n"))
	require.Error(t, err)

	_, err = model.DecodeParams(strings.NewReader("runs:\n  - n: 2\n    hz: [1]\n"))
	require.ErrorIs(t, err, spin.ErrFieldLength)

	_, err = model.DecodeParams(strings.NewReader("runs:\n  - n: 2\n    hz: [.nan, 1]\n"))
	require.ErrorIs(t, err, spin.ErrNonFinite)

	_, err = model.DecodeParams(strings.NewReader(""))
	require.ErrorIs(t, err, model.ErrNoRuns)

	_, err = model.DecodeParams(strings.NewReader("runs: []\n"))
	require.ErrorIs(t, err, model.ErrNoRuns)
}
