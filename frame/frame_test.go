package frame_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/codeforms/frame"
	"github.com/katalvlaran/codeforms/orbit"
	"github.com/katalvlaran/codeforms/perm"
	"github.com/katalvlaran/codeforms/qseries"
)

func bigMatrix(m [][]int64) [][]*big.Int {
	out := make([][]*big.Int, len(m))
	for i, row := range m {
		out[i] = make([]*big.Int, len(row))
		for j, v := range row {
			out[i][j] = big.NewInt(v)
		}
	}

	return out
}

func TestCyclotomic(t *testing.T) {
	cases := map[int]string{
		1:  "x - 1",
		2:  "x + 1",
		4:  "x^2 + 1",
		6:  "x^2 - x + 1",
		12: "x^4 - x^2 + 1",
	}
	for d, want := range cases {
		require.Equal(t, want, frame.Cyclotomic(d).String(), "Φ_%d", d)
	}
}

func TestCharPolyToShape(t *testing.T) {
	cases := []struct {
		elem string
		n    int
		want frame.Shape
		text string
	}{
		{"()", 8, frame.Shape{1: 8}, "1^8"},
		{"() neg[1,2,3,4,5,6,7,8]", 8, frame.Shape{2: 8, 1: -8}, "2^8/1^8"},
		{"() neg[1]", 8, frame.Shape{2: 1, 1: 6}, "1^6 2^1"},
		{"(1,2,3) neg[1]", 4, frame.Shape{6: 1, 3: -1, 1: 1}, "1^1 6^1/3^1"},
		{"(1,2,3,4)(5,6)", 8, frame.Shape{1: 2, 2: 1, 4: 1}, "1^2 2^1 4^1"},
	}
	for _, tc := range cases {
		g, err := perm.ParseSigned(tc.n, tc.elem)
		require.NoError(t, err)

		p, err := frame.CharPoly(bigMatrix(g.Matrix()))
		require.NoError(t, err)
		got, err := frame.FromCharPoly(p)
		require.NoError(t, err)
		require.Truef(t, tc.want.Equal(got), "%s: got %v", tc.elem, got)

		fromOrbits := frame.FromClassification(orbit.ClassifyElement(g))
		require.True(t, tc.want.Equal(fromOrbits))
		require.Equal(t, tc.n, got.Degree())
		require.Equal(t, tc.text, got.String())
	}
}

func TestNotCyclotomic(t *testing.T) {
	p, err := frame.CharPoly(bigMatrix([][]int64{{2}}))
	require.NoError(t, err)
	require.Equal(t, "x - 2", p.String())
	_, err = frame.FromCharPoly(p)
	require.ErrorIs(t, err, frame.ErrNotCyclotomic)

	_, err = frame.CharPoly(bigMatrix([][]int64{{1, 2}}))
	require.ErrorIs(t, err, frame.ErrNotSquare)
}

func TestRelativeAndWeight(t *testing.T) {
	id := frame.Shape{1: 8}
	require.Empty(t, id.Relative(8))
	require.Equal(t, "1", id.Relative(8).String())
	require.Equal(t, "4", id.Weight().RatString())
	require.Equal(t, "0", frame.Shape{2: 8, 1: -8}.Weight().RatString())
}

func TestShapeEtaProduct(t *testing.T) {
	r := qseries.NewRing(qseries.WithPrecision(4))
	e, err := frame.Shape{1: 24}.EtaProduct(r)
	require.NoError(t, err)
	require.Equal(t, []int64{1, -24, 252, -1472}, e.S.Int64s())
}

func TestDivMod(t *testing.T) {
	q, r, err := frame.PolyFromInts(-1, 0, 0, 1).DivMod(frame.PolyFromInts(-1, 1))
	require.NoError(t, err)
	require.Equal(t, "x^2 + x + 1", q.String())
	require.Equal(t, -1, r.Degree())

	_, _, err = frame.PolyFromInts(1, 1).DivMod(frame.PolyFromInts(1, 2))
	require.ErrorIs(t, err, frame.ErrNotMonic)
}
