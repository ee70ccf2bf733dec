package lattice_test

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/codeforms/code"
	"github.com/katalvlaran/codeforms/gf2"
	"github.com/katalvlaran/codeforms/lattice"
	"github.com/katalvlaran/codeforms/perm"
	"github.com/katalvlaran/codeforms/qseries"
)

func ints(m lattice.IntMatrix) [][]int64 {
	out := make([][]int64, len(m))
	for i, row := range m {
		out[i] = make([]int64, len(row))
		for j, v := range row {
			out[i][j] = v.Int64()
		}
	}

	return out
}

func e8(t *testing.T) *lattice.Lattice {
	t.Helper()
	c, err := code.Named("e8")
	require.NoError(t, err)
	l, err := lattice.FromCode(c)
	require.NoError(t, err)

	return l
}

func TestHNFAndKernel(t *testing.T) {
	h := lattice.HNF(lattice.FromInt64([][]int64{{4, 6}, {2, 3}}))
	require.Empty(t, cmp.Diff([][]int64{{2, 3}}, ints(h)))

	h = lattice.HNF(lattice.FromInt64([][]int64{{3, 1}, {1, 1}}))
	require.Empty(t, cmp.Diff([][]int64{{1, 1}, {0, 2}}, ints(h)))

	k := lattice.IntegerKernel(lattice.FromInt64([][]int64{{1}, {2}}))
	require.Empty(t, cmp.Diff([][]int64{{2, -1}}, ints(k)))

	require.Nil(t, lattice.IntegerKernel(lattice.FromInt64([][]int64{{1, 0}, {0, 1}})))
}

func TestConstructionA(t *testing.T) {
	l := e8(t)
	require.Equal(t, 8, l.Rank())
	require.Equal(t, 8, l.Dim())
	even, err := l.IsEven()
	require.NoError(t, err)
	require.True(t, even)
	uni, err := l.IsUnimodular()
	require.NoError(t, err)
	require.True(t, uni)
	require.True(t, l.Contains(gf2.Word(0b00001111)))
	require.False(t, l.Contains(gf2.Word(0b00000011)))
}

func TestGramDet(t *testing.T) {
	a2, err := lattice.FromGram(lattice.FromInt64([][]int64{{2, -1}, {-1, 2}}))
	require.NoError(t, err)
	d, err := a2.Det()
	require.NoError(t, err)
	require.Equal(t, int64(3), d.Int64())

	a1, err := lattice.FromGram(lattice.FromInt64([][]int64{{2}}))
	require.NoError(t, err)
	sum, err := lattice.OrthogonalSum(a1, a2)
	require.NoError(t, err)
	d, err = sum.Det()
	require.NoError(t, err)
	require.Equal(t, int64(6), d.Int64())

	_, err = lattice.FromGram(lattice.FromInt64([][]int64{{2, 1}, {0, 2}}))
	require.ErrorIs(t, err, lattice.ErrShape)

	_, err = lattice.New(lattice.FromInt64([][]int64{{1, 0}}), 2)
	require.ErrorIs(t, err, lattice.ErrNotIntegral)
	_, err = lattice.New(lattice.FromInt64([][]int64{{1, 1}, {2, 2}}), 1)
	require.ErrorIs(t, err, lattice.ErrDegenerate)
}

func TestLLL(t *testing.T) {
	l, err := lattice.New(lattice.FromInt64([][]int64{{1, 0}, {7, 1}}), 1)
	require.NoError(t, err)
	r, err := lattice.LLL(l)
	require.NoError(t, err)
	g, err := r.Gram()
	require.NoError(t, err)
	require.Equal(t, int64(1), g[0][0].Int64())
	require.Equal(t, int64(1), g[1][1].Int64())
	require.Equal(t, int64(0), g[0][1].Int64())
	d, err := r.Det()
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1), d)
}

func TestThetaE8(t *testing.T) {
	r := qseries.NewRing(qseries.WithPrecision(6))
	th, err := lattice.ThetaSeries(r, e8(t))
	require.NoError(t, err)
	require.Equal(t, 1, th.Den)
	require.Equal(t, []int64{1, 240, 2160, 6720, 17520, 30240}, th.Int64s())

	_, err = lattice.ThetaSeries(r, e8(t), lattice.WithMaxVectors(10))
	require.ErrorIs(t, err, lattice.ErrEnumerationBudget)
}

func TestThetaOdd(t *testing.T) {
	r := qseries.NewRing(qseries.WithPrecision(3))
	z, err := lattice.FromGram(lattice.FromInt64([][]int64{{1}}))
	require.NoError(t, err)
	th, err := lattice.ThetaSeries(r, z)
	require.NoError(t, err)
	require.Equal(t, 2, th.Den)
	require.Equal(t, []int64{1, 2, 0, 0, 2, 0}, th.Int64s())
}

func TestFixedLattice(t *testing.T) {
	l := e8(t)
	g, err := perm.ParseSigned(8, "() neg[1]")
	require.NoError(t, err)
	fix, err := lattice.Fixed(l, g.Matrix())
	require.NoError(t, err)
	require.Equal(t, 7, fix.Rank())
	d, err := fix.Det()
	require.NoError(t, err)
	require.Equal(t, int64(2), d.Int64())

	r := qseries.NewRing(qseries.WithPrecision(5))
	th, err := lattice.ThetaSeries(r, fix)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 126, 756, 2072, 4158}, th.Int64s())

	minus, err := perm.ParseSigned(8, "() neg[1,2,3,4,5,6,7,8]")
	require.NoError(t, err)
	none, err := lattice.Fixed(l, minus.Matrix())
	require.NoError(t, err)
	require.Nil(t, none)

	_, err = lattice.Fixed(l, [][]int64{{1}})
	require.ErrorIs(t, err, lattice.ErrShape)
}

func TestPreserves(t *testing.T) {
	l := e8(t)
	g, err := perm.ParseSigned(8, "(1,2)(3,4) neg[5]")
	require.NoError(t, err)
	require.True(t, l.Preserves(g.Matrix()))

	bad, err := perm.ParseSigned(8, "(1,5)")
	require.NoError(t, err)
	require.False(t, l.Preserves(bad.Matrix()))
}
