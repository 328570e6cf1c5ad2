package spin_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/qham"
	"github.com/katalvlaran/qham/sparse"
	"github.com/katalvlaran/qham/spin"
	"github.com/stretchr/testify/require"
)

// mustFactory creates a factory or fails the test.
func mustFactory(t testing.TB, n int) *spin.Factory {
	t.Helper()
	f, err := spin.NewFactory(n)
	require.NoError(t, err)

	return f
}

// TestNewFactorySiteCount ensures N outside [1, MaxSites] is rejected.
func TestNewFactorySiteCount(t *testing.T) {
	for _, n := range []int{0, -1, spin.MaxSites + 1} {
		_, err := spin.NewFactory(n)
		require.ErrorIs(t, err, spin.ErrSiteCount, "n=%d", n)
		require.ErrorIs(t, err, qham.ErrInvalidArgument)
	}
	f := mustFactory(t, 3)
	require.Equal(t, 3, f.Sites())
	require.Equal(t, 8, f.Dim())
}

// TestGetInvalidArguments covers unknown axes and out-of-range sites.
func TestGetInvalidArguments(t *testing.T) {
	f := mustFactory(t, 2)

	_, err := f.Get(spin.Axis(42), 0)
	require.ErrorIs(t, err, spin.ErrUnknownAxis)

	_, err = f.Get(spin.Z, 2)
	require.ErrorIs(t, err, spin.ErrSiteOutOfRange)
	_, err = f.Get(spin.Z, -1)
	require.ErrorIs(t, err, spin.ErrSiteOutOfRange)
	require.ErrorIs(t, err, qham.ErrInvalidArgument)
	require.Zero(t, f.Cached(), "failed lookups must not populate the cache")
}

// TestGetCachedIdentity verifies repeated lookups return the same pointer.
func TestGetCachedIdentity(t *testing.T) {
	for n := 1; n <= 4; n++ {
		f := mustFactory(t, n)
		for site := 0; site < n; site++ {
			for _, axis := range []spin.Axis{spin.X, spin.Y, spin.Z, spin.Plus, spin.Minus} {
				first, err := f.Get(axis, site)
				require.NoError(t, err)
				second, err := f.Get(axis, site)
				require.NoError(t, err)
				require.Same(t, first, second, "n=%d %v_%d", n, axis, site)
				require.Equal(t, f.Dim(), first.Rows())
				require.Equal(t, f.Dim(), first.Cols())
			}
		}
		require.Equal(t, 5*n, f.Cached())
	}
}

// TestGetZDiagonalBitPattern checks σ^Z_i = ±1 following bit i counted from
// the most significant end of the basis index.
func TestGetZDiagonalBitPattern(t *testing.T) {
	for n := 1; n <= 5; n++ {
		f := mustFactory(t, n)
		for site := 0; site < n; site++ {
			t.Run(fmt.Sprintf("n=%d/site=%d", n, site), func(t *testing.T) {
				z, err := f.Get(spin.Z, site)
				require.NoError(t, err)
				require.Equal(t, f.Dim(), z.NNZ(), "Z must be diagonal and fully populated")

				diag := z.Diagonal()
				shift := n - 1 - site
				for idx, v := range diag {
					want := complex(1, 0)
					if (idx>>shift)&1 == 1 {
						want = -1
					}
					require.Equal(t, want, v, "basis %0*b", n, idx)
				}
			})
		}
	}
}

// TestGetMatchesExplicitKron pins σ^X_1 on three sites to I ⊗ X ⊗ I.
func TestGetMatchesExplicitKron(t *testing.T) {
	f := mustFactory(t, 3)
	got, err := f.Get(spin.X, 1)
	require.NoError(t, err)

	id, _ := sparse.Identity(2)
	x, _ := spin.Pauli2(spin.X)
	left, err := sparse.Kron(id, x)
	require.NoError(t, err)
	want, err := sparse.Kron(left, id)
	require.NoError(t, err)
	require.True(t, sparse.Equal(want, got))
}

// TestRaisingLowering checks σ^+ = (σ^X + iσ^Y)/2 and (σ^+)† = σ^-.
func TestRaisingLowering(t *testing.T) {
	f := mustFactory(t, 2)
	x, _ := f.Get(spin.X, 1)
	y, _ := f.Get(spin.Y, 1)
	plus, _ := f.Get(spin.Plus, 1)
	minus, _ := f.Get(spin.Minus, 1)

	iy, err := sparse.Scale(y, 1i)
	require.NoError(t, err)
	sum, err := sparse.Add(x, iy)
	require.NoError(t, err)
	half, err := sparse.Scale(sum, 0.5)
	require.NoError(t, err)
	require.True(t, sparse.Equal(plus, half))

	adj, err := sparse.Adjoint(plus)
	require.NoError(t, err)
	require.True(t, sparse.Equal(minus, adj))
}

// TestParseAxisAndOps covers label parsing.
func TestParseAxisAndOps(t *testing.T) {
	for _, s := range []string{"X", "Y", "Z", "+", "-"} {
		a, err := spin.ParseAxis(s)
		require.NoError(t, err)
		require.Equal(t, s, a.String())
	}
	_, err := spin.ParseAxis("x")
	require.ErrorIs(t, err, spin.ErrUnknownAxis)

	ops, err := spin.ParseOps("+-")
	require.NoError(t, err)
	require.Equal(t, spin.Ops{spin.Plus, spin.Minus}, ops)
	require.Equal(t, "+-", ops.String())

	_, err = spin.ParseOps("ZZZ")
	require.ErrorIs(t, err, spin.ErrUnknownAxis)
	_, err = spin.ParseOps("ZQ")
	require.ErrorIs(t, err, spin.ErrUnknownAxis)
}

// TestPauliYHermitian checks σ^Y = [[0,-i],[i,0]] and that every embedded
// σ^Y_i stays Hermitian.
func TestPauliYHermitian(t *testing.T) {
	y, err := spin.Pauli2(spin.Y)
	require.NoError(t, err)
	v, err := y.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, complex(0, -1), v)
	v, err = y.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, complex(0, 1), v)
	require.False(t, y.IsReal())

	f := mustFactory(t, 3)
	for site := 0; site < 3; site++ {
		op, err := f.Get(spin.Y, site)
		require.NoError(t, err)
		require.True(t, sparse.IsHermitian(op, 0), "site %d", site)
	}

	_, err = spin.Pauli2(spin.Axis(9))
	require.ErrorIs(t, err, spin.ErrUnknownAxis)
}
