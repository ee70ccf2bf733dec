package orbit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/codeforms/gf2"
	"github.com/katalvlaran/codeforms/orbit"
	"github.com/katalvlaran/codeforms/perm"
)

func signed(t *testing.T, n int, s string) perm.Signed {
	t.Helper()
	g, err := perm.ParseSigned(n, s)
	require.NoError(t, err)

	return g
}

func TestClassifyElementTypes(t *testing.T) {
	g := signed(t, 10, "(1,2,3)(4,5)(6,7)(8,9,10) neg[4,8]")
	c := orbit.ClassifyElement(g)

	require.Equal(t, []int{2, 2, 3, 3}, c.Lengths())
	require.Equal(t, []orbit.Type{orbit.TypeIV, orbit.TypeII, orbit.TypeI, orbit.TypeIV}, c.Types())
	require.Equal(t, g.Order(), c.Order())
	require.Equal(t, "2:IV 2:II 3:I 3:IV", c.String())
}

func TestPartitionProperty(t *testing.T) {
	gens := []perm.Signed{
		signed(t, 12, "(1,2)(5,6,7) neg[1]"),
		signed(t, 12, "(2,3)(9,10) neg[9,10]"),
	}
	c, err := orbit.Classify(12, gens...)
	require.NoError(t, err)

	seen := map[int]int{}
	total := 0
	for _, o := range c.Orbits {
		total += o.Len()
		for _, p := range o.Points {
			seen[p]++
		}
	}
	require.Equal(t, 12, total)
	require.Len(t, seen, 12)
	for p, k := range seen {
		require.Equalf(t, 1, k, "point %d", p)
	}

	again, err := orbit.Classify(12, gens...)
	require.NoError(t, err)
	require.Equal(t, c, again)
}

func TestSignedGraphBalance(t *testing.T) {
	// (1,2) with sign on 1 and (1,2) with signs on both generate a group with no
	// fixed vector on {1,2}; the second alone fixes e_1 - e_2.
	a := signed(t, 2, "(1,2) neg[1]")
	b := signed(t, 2, "(1,2) neg[1,2]")

	c := orbit.ClassifyElement(b)
	require.False(t, c.Orbits[0].Twisted)
	require.Equal(t, []int64{1, -1}, c.Orbits[0].FixedVector(2))
	require.Equal(t, gf2.Bit(1), c.Orbits[0].Signs)

	c, err := orbit.Classify(2, a, b)
	require.NoError(t, err)
	require.True(t, c.Orbits[0].Twisted)
	require.Nil(t, c.Orbits[0].FixedVector(2))
}

func TestReferenceUnion(t *testing.T) {
	// Negating whole orbits: inside X gives III or IV by parity, and only the odd
	// orbits inside X are twisted.
	g := signed(t, 7, "(1,2,3)(4,5)(6,7) neg[1,2,3,4,5]")
	c := orbit.ClassifyElement(g)
	require.Equal(t, []orbit.Type{orbit.TypeIII, orbit.TypeII, orbit.TypeIV}, c.Types())
	require.Equal(t, []bool{true, false, true}, []bool{c.Orbits[0].Inside, c.Orbits[1].Inside, c.Orbits[2].Inside})
	require.False(t, c.Orbits[0].Twisted)
	require.True(t, c.Orbits[2].Twisted)
}

func TestTypeBySubsetAndParity(t *testing.T) {
	cases := []struct {
		n    int
		elem string
		want orbit.Type
	}{
		{2, "(1,2)", orbit.TypeII},
		{2, "(1,2) neg[1,2]", orbit.TypeIII},
		{1, "() neg[1]", orbit.TypeIV},
		{3, "(1,2,3) neg[1,2,3]", orbit.TypeIV},
		{3, "(1,2,3)", orbit.TypeI},
		// X cuts the orbit: the twist decides IV, otherwise parity.
		{2, "(1,2) neg[1]", orbit.TypeIV},
		{3, "(1,2,3) neg[1,2]", orbit.TypeI},
		{4, "(1,2,3,4) neg[1,3]", orbit.TypeII},
	}
	for _, tc := range cases {
		c := orbit.ClassifyElement(signed(t, tc.n, tc.elem))
		require.Len(t, c.Orbits, 1, tc.elem)
		require.Equal(t, tc.want, c.Orbits[0].Type(), tc.elem)
	}

	// A group: inside means inside the negated set of every generator.
	c, err := orbit.Classify(4,
		signed(t, 4, "(1,2)(3,4) neg[1,2]"),
		signed(t, 4, "(1,2) neg[1,2,3,4]"))
	require.NoError(t, err)
	require.Equal(t, []orbit.Type{orbit.TypeIII, orbit.TypeIV}, c.Types())
}

func TestDegreeMismatch(t *testing.T) {
	_, err := orbit.Classify(3, perm.SignedIdentity(2))
	require.ErrorIs(t, err, orbit.ErrDegree)
}
