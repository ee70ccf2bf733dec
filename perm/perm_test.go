package perm_test

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/codeforms/gf2"
	"github.com/katalvlaran/codeforms/perm"
)

func mustCycles(t *testing.T, n int, s string) perm.Perm {
	t.Helper()
	p, err := perm.ParseCycles(n, s)
	require.NoError(t, err)

	return p
}

func TestParseAndString(t *testing.T) {
	p := mustCycles(t, 5, "(1,2,3)(4 5)")
	require.Equal(t, perm.Perm{1, 2, 0, 4, 3}, p)
	require.Equal(t, "(1,2,3)(4,5)", p.String())
	require.Equal(t, "()", perm.Identity(3).String())

	_, err := perm.ParseCycles(3, "(1,1)")
	require.ErrorIs(t, err, perm.ErrBadCycles)
	_, err = perm.ParseCycles(3, "(1,4)")
	require.ErrorIs(t, err, perm.ErrBadCycles)
	_, err = perm.New([]int{0, 0, 1})
	require.ErrorIs(t, err, perm.ErrNotPermutation)
}

func TestThenInverseOrder(t *testing.T) {
	p := mustCycles(t, 6, "(1,2,3)(4,5)")
	q := mustCycles(t, 6, "(1,4)")

	// p first: 1 -> 2, then q fixes 2.
	require.Equal(t, 1, p.Then(q)[0])
	require.True(t, p.Then(p.Inverse()).IsIdentity())
	require.Equal(t, 6, p.Order())
	require.True(t, p.Pow(6).IsIdentity())
	require.True(t, p.Pow(-1).Equal(p.Inverse()))
	require.Equal(t, []int{1, 2, 3}, p.CycleType())
}

func TestApplyWord(t *testing.T) {
	p := mustCycles(t, 4, "(1,2)")
	w := gf2.Bit(0) | gf2.Bit(2)
	require.Equal(t, gf2.Bit(1)|gf2.Bit(2), p.Apply(w))
}

func TestSymmetricGroups(t *testing.T) {
	cases := []struct {
		n       int
		order   int64
		classes int
	}{
		{3, 6, 3},
		{4, 24, 5},
		{5, 120, 7},
	}
	for _, tc := range cases {
		cyc := perm.Identity(tc.n)
		for i := range cyc {
			cyc[i] = (i + 1) % tc.n
		}
		sw := mustCycles(t, tc.n, "(1,2)")
		g, err := perm.NewGroup(tc.n, cyc, sw)
		require.NoError(t, err)
		require.Equal(t, big.NewInt(tc.order), g.Order())

		cls := perm.ConjugacyClasses(g)
		require.Len(t, cls, tc.classes)
		total := new(big.Int)
		for _, c := range cls {
			require.True(t, c.Exact)
			total.Add(total, c.Size)
		}
		require.Equal(t, big.NewInt(tc.order), total)
		require.True(t, cls[0].Rep.IsIdentity())

		sampled := perm.ConjugacyClasses(g, perm.WithExactLimit(0), perm.WithSeed(7))
		require.Len(t, sampled, tc.classes)
		require.False(t, sampled[0].Exact)
	}
}

func TestElementsAndContains(t *testing.T) {
	a := mustCycles(t, 4, "(1,2)(3,4)")
	b := mustCycles(t, 4, "(1,3)(2,4)")
	g, err := perm.NewGroup(4, a, b)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(4), g.Order())

	seen := map[string]bool{}
	g.Elements(func(p perm.Perm) bool {
		seen[p.Key()] = true
		require.True(t, g.Contains(p))
		return true
	})
	require.Len(t, seen, 4)
	require.False(t, g.Contains(mustCycles(t, 4, "(1,2)")))
}

func TestMathieu24Order(t *testing.T) {
	gens := [][]int{
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 0, 23},
		{0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19, 21, 23},
		{23, 22, 11, 15, 17, 9, 19, 13, 20, 5, 16, 2, 21, 7, 18, 3, 10, 4, 14, 6, 8, 12, 1, 0},
		{0, 18, 6, 3, 2, 21, 1, 5, 16, 12, 7, 19, 8, 9, 17, 15, 13, 11, 4, 22, 10, 20, 14, 23},
	}
	ps := make([]perm.Perm, len(gens))
	for i, im := range gens {
		p, err := perm.New(im)
		require.NoError(t, err)
		ps[i] = p
	}
	g, err := perm.NewGroup(24, ps...)
	require.NoError(t, err)
	require.Equal(t, "244823040", g.Order().String())
}

func TestSignedAlgebra(t *testing.T) {
	g, err := perm.ParseSigned(4, "(1,2,3) neg[1]")
	require.NoError(t, err)
	require.Equal(t, "(1,2,3) neg[1]", g.String())
	require.Equal(t, 6, g.Order())
	require.Equal(t, []int{-3, 1}, g.SignedCycleType())

	h, err := perm.ParseSigned(4, "(3,4) neg[2,4]")
	require.NoError(t, err)

	gh := g.Then(h)
	x := []int64{1, 2, 3, 4}
	require.Equal(t, h.ApplyInts(g.ApplyInts(x)), gh.ApplyInts(x))
	require.True(t, g.Then(g.Inverse()).IsIdentity())
	require.True(t, g.Pow(6).IsIdentity())
	require.False(t, g.Pow(3).IsIdentity())

	// Lift is a homomorphism and SignedFromLift inverts it.
	require.True(t, gh.Lift().Equal(g.Lift().Then(h.Lift())))
	back, err := perm.SignedFromLift(gh.Lift())
	require.NoError(t, err)
	require.True(t, back.Equal(gh))

	_, err = perm.SignedFromLift(perm.Perm{1, 0, 2, 3})
	require.ErrorIs(t, err, perm.ErrNotSignedLift)
}

func TestSignedMatrix(t *testing.T) {
	g, err := perm.ParseSigned(3, "(1,2) neg[2]")
	require.NoError(t, err)
	want := [][]int64{
		{0, -1, 0},
		{1, 0, 0},
		{0, 0, 1},
	}
	if diff := cmp.Diff(want, g.Matrix()); diff != "" {
		t.Fatalf("matrix mismatch (-want +got):\n%s", diff)
	}
}

func TestSignedClasses(t *testing.T) {
	// Hyperoctahedral group of degree 2 acting on ±e_1, ±e_2: order 8, five classes.
	sw := perm.Plain(mustCycles(t, 2, "(1,2)")).Lift()
	neg := perm.Signed{P: perm.Identity(2), Neg: gf2.Bit(0)}.Lift()
	g, err := perm.NewGroup(4, sw, neg)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(8), g.Order())
	require.Len(t, perm.ConjugacyClasses(g), 5)

	sampled := perm.ConjugacyClasses(g, perm.WithExactLimit(0), perm.WithInvariant(perm.SignedInvariant))
	require.Len(t, sampled, 5)
}
