package voa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/codeforms/assemble"
	"github.com/katalvlaran/codeforms/code"
	"github.com/katalvlaran/codeforms/config"
	"github.com/katalvlaran/codeforms/driver"
	"github.com/katalvlaran/codeforms/engine"
	"github.com/katalvlaran/codeforms/lattice"
	"github.com/katalvlaran/codeforms/perm"
	"github.com/katalvlaran/codeforms/qseries"
	"github.com/katalvlaran/codeforms/voa"
)

type fixture struct {
	code *code.Code
	lat  *lattice.Lattice
	asm  *assemble.Assembler
}

func setup(t *testing.T) fixture {
	t.Helper()
	c, err := code.Named("e8")
	require.NoError(t, err)
	l, err := lattice.FromCode(c)
	require.NoError(t, err)

	return fixture{code: c, lat: l, asm: assemble.New(qseries.NewRing(qseries.WithPrecision(6)))}
}

func signed(t *testing.T, s string) perm.Signed {
	t.Helper()
	g, err := perm.ParseSigned(8, s)
	require.NoError(t, err)

	return g
}

func TestOrderDoubles(t *testing.T) {
	f := setup(t)
	ok, err := voa.OrderDoubles(f.lat, signed(t, "() neg[1]"))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = voa.OrderDoubles(f.lat, signed(t, "() neg[1,2,3,4,5,6,7,8]"))
	require.NoError(t, err)
	require.False(t, ok)

	_, err = voa.OrderDoubles(f.lat, signed(t, "(1,2,3)"))
	require.ErrorIs(t, err, voa.ErrOddOrder)
	require.ErrorIs(t, err, voa.ErrNoOrderDoubling)
}

func TestKernelPreconditions(t *testing.T) {
	f := setup(t)
	eps := signed(t, "() neg[1]")

	_, err := voa.NewKernel(f.code, eps, 1)
	require.ErrorIs(t, err, voa.ErrOddPower)
	require.ErrorIs(t, err, voa.ErrNoOrderDoubling)

	_, err = voa.NewKernel(f.code, signed(t, "(1,2,3)"), 2)
	require.ErrorIs(t, err, voa.ErrOddOrder)

	_, err = voa.NewKernel(f.code, signed(t, "() neg[1,2,3,4,5,6,7,8]"), 2)
	require.ErrorIs(t, err, voa.ErrTrivialCharacter)
	require.ErrorIs(t, err, voa.ErrNoOrderDoubling)

	_, err = voa.NewKernel(f.code, eps, 0)
	require.ErrorIs(t, err, voa.ErrBadPower)
	require.NotErrorIs(t, err, voa.ErrNoOrderDoubling)

	k, err := voa.NewKernel(f.code, eps, 2)
	require.NoError(t, err)
	require.True(t, k.Character.IsLinear())
	require.Len(t, k.OrbitCode.Rows, 4)
	require.Len(t, k.Sub.Rows, 3)
}

func TestTrace(t *testing.T) {
	f := setup(t)
	eps := signed(t, "() neg[1]")

	ch, err := voa.Trace(f.asm, f.code, eps, 2)
	require.NoError(t, err)
	require.False(t, ch.Fallback)
	require.Equal(t, []int64{1, 128, 1008, 3584, 8304, 16128}, ch.ThetaK.Int64s())
	require.Equal(t, "-1/3", ch.Value.Order.RatString())
	require.Equal(t, []int64{1, 24, 28, 192, 134, 864}, ch.Value.S.Int64s())

	ch, err = voa.Trace(f.asm, f.code, eps, 1)
	require.NoError(t, err)
	require.True(t, ch.Fallback)
	require.ErrorIs(t, ch.Reason, voa.ErrOddPower)
	require.Equal(t, []int64{1, 132, 1540, 10240, 51206, 213520}, ch.Value.S.Int64s())
}

func TestCharacters(t *testing.T) {
	f := setup(t)
	chars, doubles, err := voa.Characters(f.asm, f.code, f.lat, signed(t, "() neg[1]"))
	require.NoError(t, err)
	require.True(t, doubles)
	require.Len(t, chars, 4)
	require.False(t, chars[1].Fallback)

	chars, doubles, err = voa.Characters(f.asm, f.code, f.lat, signed(t, "() neg[1,2,3,4,5,6,7,8]"))
	require.NoError(t, err)
	require.False(t, doubles)
	require.Len(t, chars, 2)
	for _, ch := range chars {
		require.True(t, ch.Fallback)
	}
	require.Equal(t, []int64{1, -8, 28, -64, 134, -288}, chars[0].Value.S.Int64s())
	require.Equal(t, []int64{1, 248, 4124, 34752, 213126, 1057504}, chars[1].Value.S.Int64s())
}

// Every class of M24, with and without the total negation.
func TestGolayClasses(t *testing.T) {
	if testing.Short() {
		t.Skip("runs every class of M24")
	}
	c, err := code.Named("g24")
	require.NoError(t, err)
	l, err := lattice.FromCode(c)
	require.NoError(t, err)
	r := qseries.NewRing(qseries.WithPrecision(3))
	ce, err := engine.NewCode(c, engine.WithRing(r))
	require.NoError(t, err)
	g, err := c.AutGroup()
	require.NoError(t, err)

	runs, doubling := 0, 0
	for _, cls := range perm.ConjugacyClasses(g) {
		for _, neg := range driver.SignPatterns(cls.Rep, config.SignsNegate) {
			el := perm.Signed{P: cls.Rep, Neg: neg}
			inv, err := ce.Element(el)
			require.NoError(t, err, el.String())
			require.True(t, inv.Quotient.Integral(), "%s: %s", el, inv.Quotient)

			chars, doubles, err := voa.Characters(ce.Assembler(), c, l, el)
			require.NoError(t, err, el.String())
			want := el.Order()
			if doubles {
				want *= 2
				doubling++
			}
			require.Len(t, chars, want, el.String())
			runs++
		}
	}
	require.GreaterOrEqual(t, runs, 2*10)
	require.Positive(t, doubling)
}
