package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/codeforms/assemble"
	"github.com/katalvlaran/codeforms/code"
	"github.com/katalvlaran/codeforms/engine"
	"github.com/katalvlaran/codeforms/gf2"
	"github.com/katalvlaran/codeforms/perm"
	"github.com/katalvlaran/codeforms/qseries"
)

func engines(t *testing.T, prec int) []engine.Engine {
	t.Helper()
	c, err := code.Named("e8")
	require.NoError(t, err)
	r := qseries.NewRing(qseries.WithPrecision(prec))
	ce, err := engine.NewCode(c, engine.WithRing(r))
	require.NoError(t, err)
	le, err := engine.NewLattice(c, engine.WithRing(r))
	require.NoError(t, err)

	return []engine.Engine{ce, le}
}

func signed(t *testing.T, s string) perm.Signed {
	t.Helper()
	g, err := perm.ParseSigned(8, s)
	require.NoError(t, err)

	return g
}

func TestKnownQuotients(t *testing.T) {
	cases := []struct {
		elem  string
		frame string
		order string
		coeff []int64
		rank  int
	}{
		{"()", "1^8", "-1/3", []int64{1, 248, 4124, 34752, 213126, 1057504}, 8},
		{"() neg[1,2,3,4,5,6,7,8]", "2^8/1^8", "-1/3", []int64{1, -8, 28, -64, 134, -288}, 0},
		{"() neg[1]", "1^6 2^1", "-1/3", []int64{1, 132, 1540, 10240, 51206, 213520}, 7},
	}
	for _, e := range engines(t, 6) {
		for _, tc := range cases {
			t.Run(e.Name()+"/"+tc.elem, func(t *testing.T) {
				inv, err := e.Element(signed(t, tc.elem))
				require.NoError(t, err)
				require.Equal(t, tc.frame, inv.Frame.String())
				require.Equal(t, tc.order, inv.Quotient.Order.RatString())
				require.Equal(t, tc.coeff, inv.Quotient.S.Int64s())
				require.Equal(t, tc.rank, inv.FixedRank)
			})
		}
	}
}

func TestStrategiesAgree(t *testing.T) {
	es := engines(t, 4)
	c := es[0].Code()
	g, err := c.AutGroup()
	require.NoError(t, err)
	signs := []gf2.Word{0, gf2.Bit(0), gf2.Mask(8), gf2.Bit(0) | gf2.Bit(1)}
	for _, cls := range perm.ConjugacyClasses(g) {
		for _, neg := range signs {
			el := perm.Signed{P: cls.Rep, Neg: neg}
			a, err := es[0].Element(el)
			require.NoError(t, err)
			b, err := es[1].Element(el)
			require.NoError(t, err)
			require.True(t, engine.Agree(a, b), "%s: %s vs %s", el, a.Theta, b.Theta)
			require.Equal(t, a.Quotient.S.Int64s(), b.Quotient.S.Int64s())
		}
	}
}

func TestEtaIdentityBasis(t *testing.T) {
	c, err := code.Named("e8")
	require.NoError(t, err)
	r := qseries.NewRing(qseries.WithPrecision(5))
	direct, err := engine.NewCode(c, engine.WithRing(r))
	require.NoError(t, err)
	viaEta, err := engine.NewCode(c, engine.WithRing(r), engine.WithThetaBasis(assemble.EtaIdentity))
	require.NoError(t, err)
	el := signed(t, "(1,2)(3,4) neg[5]")
	a, err := direct.Element(el)
	require.NoError(t, err)
	b, err := viaEta.Element(el)
	require.NoError(t, err)
	require.True(t, a.Theta.Equal(b.Theta))
}

func TestRejectsNonAutomorphism(t *testing.T) {
	for _, e := range engines(t, 3) {
		_, err := e.Element(signed(t, "(1,5)"))
		require.ErrorIs(t, err, engine.ErrNotAutomorphism, e.Name())
	}

	bad, err := code.Parse("bad", "1100", "0011")
	require.NoError(t, err)
	_, err = engine.NewCode(bad)
	require.ErrorIs(t, err, code.ErrNotDoublyEven)
	_, err = engine.NewLattice(bad)
	require.ErrorIs(t, err, code.ErrNotDoublyEven)
}

func TestSubgroup(t *testing.T) {
	c, err := code.Named("e8")
	require.NoError(t, err)
	e, err := engine.NewCode(c, engine.WithRing(qseries.NewRing(qseries.WithPrecision(3))))
	require.NoError(t, err)
	sub, err := e.Subgroup(signed(t, "() neg[1]"), signed(t, "() neg[2]"))
	require.NoError(t, err)
	require.Equal(t, 6, sub.FixedRank)
	require.Equal(t, []int64{1, 60, 252}, sub.Theta.Int64s())
}

func TestLatticeGroupOrder(t *testing.T) {
	c, err := code.Named("e8")
	require.NoError(t, err)
	le, err := engine.NewLattice(c)
	require.NoError(t, err)
	g, err := le.Group()
	require.NoError(t, err)
	require.Equal(t, "344064", g.Order().String())
}
