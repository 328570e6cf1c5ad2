// Package sparse_test contains unit tests for the CSR type and its kernels.
package sparse_test

import (
	"testing"

	"github.com/katalvlaran/qham"
	"github.com/katalvlaran/qham/sparse"
	"github.com/stretchr/testify/require"
)

// mustDense builds a CSR from a literal or fails the test.
func mustDense(t testing.TB, rows [][]complex128) *sparse.CSR {
	t.Helper()
	m, err := sparse.FromDense(rows)
	require.NoError(t, err)

	return m
}

// TestZerosInvalidDimensions ensures Zeros rejects non-positive shapes.
func TestZerosInvalidDimensions(t *testing.T) {
	_, err := sparse.Zeros(0, 3)
	require.ErrorIs(t, err, sparse.ErrInvalidDimensions)
	require.ErrorIs(t, err, qham.ErrShapeMismatch) // category is preserved

	_, err = sparse.Zeros(3, -1)
	require.ErrorIs(t, err, sparse.ErrInvalidDimensions)
}

// TestZerosShape verifies an explicit zero matrix has the declared shape and no entries.
func TestZerosShape(t *testing.T) {
	z, err := sparse.Zeros(4, 2)
	require.NoError(t, err)

	r, c := z.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 2, c)
	require.Zero(t, z.NNZ())
	require.Len(t, z.RowPtr(), 5)
}

// TestIdentity checks ones on the diagonal and nothing else.
func TestIdentity(t *testing.T) {
	id, err := sparse.Identity(3)
	require.NoError(t, err)
	require.Equal(t, [][]complex128{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, id.ToDense())
}

// TestFromTripletsMergesAndDrops verifies duplicate summation and zero pruning.
func TestFromTripletsMergesAndDrops(t *testing.T) {
	m, err := sparse.FromTriplets(2, 2, []sparse.Triplet{
		{Row: 1, Col: 1, Val: 2},
		{Row: 0, Col: 1, Val: 1},
		{Row: 1, Col: 1, Val: 3},
		{Row: 1, Col: 0, Val: 4},
		{Row: 1, Col: 0, Val: -4}, // cancels
	})
	require.NoError(t, err)
	require.Equal(t, 2, m.NNZ())
	require.Equal(t, [][]complex128{{0, 1}, {0, 5}}, m.ToDense())
	require.Equal(t, []int{0, 1, 2}, m.RowPtr())
	require.Equal(t, []int{1, 1}, m.ColIndices())
}

// TestFromTripletsOutOfRange ensures bad coordinates are rejected.
func TestFromTripletsOutOfRange(t *testing.T) {
	_, err := sparse.FromTriplets(2, 2, []sparse.Triplet{{Row: 2, Col: 0, Val: 1}})
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	require.ErrorIs(t, err, qham.ErrInvalidArgument)
}

// TestFromDenseRagged ensures ragged input is a dimension mismatch.
func TestFromDenseRagged(t *testing.T) {
	_, err := sparse.FromDense([][]complex128{{1, 2}, {3}})
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)
}

// TestAtBounds verifies At returns stored values, zeros for absent entries, and errors outside.
func TestAtBounds(t *testing.T) {
	m := mustDense(t, [][]complex128{{0, 2i}, {3, 0}})

	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 2i, v)

	v, err = m.At(0, 0)
	require.NoError(t, err)
	require.Zero(t, v)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	_, err = m.At(0, -1)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
}

// TestAccessorsReturnCopies ensures callers cannot mutate the backing storage.
func TestAccessorsReturnCopies(t *testing.T) {
	m := mustDense(t, [][]complex128{{1, 0}, {0, 2}})
	vals := m.Values()
	vals[0] = 99

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, complex(1, 0), v)
}

// TestDoOrder verifies canonical row-major iteration.
func TestDoOrder(t *testing.T) {
	m := mustDense(t, [][]complex128{{0, 1, 2}, {3, 0, 0}})
	var got [][2]int
	m.Do(func(i, j int, _ complex128) { got = append(got, [2]int{i, j}) })
	require.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 0}}, got)
}

// TestDiagonalAndIsReal covers the small inspection helpers.
func TestDiagonalAndIsReal(t *testing.T) {
	m := mustDense(t, [][]complex128{{1, 1i}, {-1i, -1}})
	require.Equal(t, []complex128{1, -1}, m.Diagonal())
	require.False(t, m.IsReal())

	r := mustDense(t, [][]complex128{{1, 0}, {0, 2}})
	require.True(t, r.IsReal())
}
