package gf2_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/codeforms/gf2"
	"github.com/stretchr/testify/require"
)

// hamming8 returns the generator rows of the extended Hamming [8,4,4] code.
func hamming8(t *testing.T) *gf2.Matrix {
	t.Helper()
	lits := []string{"11110000", "00001111", "11001100", "10101010"}
	rows := make([]gf2.Word, 0, len(lits))
	for _, l := range lits {
		w, n, err := gf2.Parse(l)
		require.NoError(t, err)
		require.Equal(t, 8, n)
		rows = append(rows, w)
	}
	m, err := gf2.NewMatrix(8, rows...)
	require.NoError(t, err)

	return m
}

func TestParseFormatRoundTrip(t *testing.T) {
	w, n, err := gf2.Parse("1100 1010_01")
	require.NoError(t, err)
	require.Equal(t, 10, n)
	require.Equal(t, "1100101001", w.Format(n))
	require.Equal(t, []int{0, 1, 4, 6, 9}, w.Support())
	require.Equal(t, 5, w.Weight())

	_, _, err = gf2.Parse("10x1")
	require.ErrorIs(t, err, gf2.ErrBadLiteral)
	_, _, err = gf2.Parse("")
	require.ErrorIs(t, err, gf2.ErrBadLiteral)
}

func TestFromSupport(t *testing.T) {
	w, err := gf2.FromSupport([]int{0, 3, 63})
	require.NoError(t, err)
	require.True(t, w.Has(63))
	require.Equal(t, 3, w.Weight())

	_, err = gf2.FromSupport([]int{64})
	require.ErrorIs(t, err, gf2.ErrTooWide)
}

func TestRankAndKernel(t *testing.T) {
	m := hamming8(t)
	require.Equal(t, 4, m.Rank())

	ker := m.Kernel()
	require.Len(t, ker, 4)
	for _, x := range ker {
		require.Zero(t, m.MulVec(x), "kernel vector %s", x.Format(8))
	}
	// The extended Hamming code is self-dual: its kernel spans the code itself.
	for _, x := range ker {
		require.True(t, m.Contains(x))
	}
}

func TestNewMatrixShape(t *testing.T) {
	_, err := gf2.NewMatrix(0)
	require.ErrorIs(t, err, gf2.ErrBadShape)
	_, err = gf2.NewMatrix(65)
	require.ErrorIs(t, err, gf2.ErrTooWide)
}

func TestSpanWeights(t *testing.T) {
	m := hamming8(t)
	dist := map[int]int{}
	require.NoError(t, m.Span(func(w gf2.Word) bool {
		dist[w.Weight()]++
		return true
	}))
	if diff := cmp.Diff(map[int]int{0: 1, 4: 14, 8: 1}, dist); diff != "" {
		t.Fatalf("weight distribution mismatch (-want +got):\n%s", diff)
	}
}

func TestSpanEarlyStop(t *testing.T) {
	m := hamming8(t)
	seen := 0
	require.NoError(t, m.Span(func(gf2.Word) bool {
		seen++
		return seen < 3
	}))
	require.Equal(t, 3, seen)
}

func TestFormPolarizeLinear(t *testing.T) {
	// f(u) = u0 + u2 over three variables.
	f := func(u gf2.Word) bool { return u.Has(0) != u.Has(2) }
	form, err := gf2.Polarize(3, f)
	require.NoError(t, err)
	require.True(t, form.IsLinear())
	for u := gf2.Word(0); u < 8; u++ {
		require.Equal(t, f(u), form.Eval(u))
	}

	zeros, ok, err := form.Zeros()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, zeros, 2)
	for _, z := range zeros {
		require.False(t, form.Eval(z))
	}
}

func TestFormQuadratic(t *testing.T) {
	// f(u) = u0·u1 + u2.
	f := func(u gf2.Word) bool { return (u.Has(0) && u.Has(1)) != u.Has(2) }
	form, err := gf2.Polarize(3, f)
	require.NoError(t, err)
	require.False(t, form.IsLinear())
	for u := gf2.Word(0); u < 8; u++ {
		require.Equal(t, f(u), form.Eval(u))
	}

	_, _, err = form.Zeros()
	require.ErrorIs(t, err, gf2.ErrNonLinear)
}

func TestFormZeroAndConstant(t *testing.T) {
	zero, err := gf2.NewForm(4)
	require.NoError(t, err)
	require.True(t, zero.IsZero())
	basis, ok, err := zero.Zeros()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, basis, 4)

	one, err := gf2.Polarize(2, func(gf2.Word) bool { return true })
	require.NoError(t, err)
	_, ok, err = one.Zeros()
	require.NoError(t, err)
	require.False(t, ok)
}
