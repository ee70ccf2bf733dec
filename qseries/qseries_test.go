package qseries_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/codeforms/qseries"
)

func TestThetaDirect(t *testing.T) {
	r := qseries.NewRing()
	require.Equal(t, 10, r.Precision())
	require.Equal(t, []int64{1, 2, 0, 0, 2, 0, 0, 0, 0, 2}, r.Theta3(1).Int64s())
	require.Equal(t, []int64{1, -2, 0, 0, 2, 0, 0, 0, 0, -2}, r.Theta4(1).Int64s())
	require.Equal(t, "1 + 2q + 2q^4 + 2q^9 + O(q^10)", r.Theta3(1).String())

	small := qseries.NewRing(qseries.WithPrecision(3))
	require.Equal(t, "2q^(1/4) + 2q^(9/4) + O(q^3)", small.Theta2(1).String())
	_, err := small.Theta2(1).Collapse()
	require.ErrorIs(t, err, qseries.ErrFractionalExponent)
}

func TestThetaFromEtaMatchesDirect(t *testing.T) {
	r := qseries.NewRing(qseries.WithPrecision(16))
	for _, m := range []int{1, 2, 3} {
		for _, tc := range []struct {
			kind   qseries.ThetaKind
			direct *qseries.Series
		}{
			{qseries.Jacobi2, r.Theta2(m)},
			{qseries.Jacobi3, r.Theta3(m)},
			{qseries.Jacobi4, r.Theta4(m)},
		} {
			got, err := r.ThetaFromEta(tc.kind, m)
			require.NoError(t, err)
			require.Truef(t, tc.direct.Equal(got), "kind %d m %d: %s vs %s", tc.kind, m, tc.direct, got)
		}
	}
}

func TestDiscriminant(t *testing.T) {
	r := qseries.NewRing()
	delta, err := r.EtaProduct(map[int]int{1: 24})
	require.NoError(t, err)
	require.Equal(t, "1", delta.Order.RatString())
	want := []int64{1, -24, 252, -1472, 4830, -6048, -16744, 84480, -113643, -115920}
	if diff := cmp.Diff(want, delta.S.Int64s()); diff != "" {
		t.Fatalf("tau (-want +got):\n%s", diff)
	}
}

func TestEtaString(t *testing.T) {
	r := qseries.NewRing()
	require.Equal(t, "q^(1/24) * (1 - q - q^2 + q^5 + q^7 + O(q^10))", r.Eta(1).String())
}

func TestJacobiIdentity(t *testing.T) {
	r := qseries.NewRing(qseries.WithPrecision(12))
	t2, err := r.Theta2(1).Pow(4)
	require.NoError(t, err)
	t3, err := r.Theta3(1).Pow(4)
	require.NoError(t, err)
	t4, err := r.Theta4(1).Pow(4)
	require.NoError(t, err)
	sum, err := t2.Add(t4)
	require.NoError(t, err)
	require.True(t, sum.Equal(t3))
}

func TestE8FromThetas(t *testing.T) {
	r := qseries.NewRing(qseries.WithPrecision(6))
	var parts []*qseries.Series
	for _, s := range []*qseries.Series{r.Theta2(1), r.Theta3(1), r.Theta4(1)} {
		p, err := s.Pow(8)
		require.NoError(t, err)
		parts = append(parts, p)
	}
	sum, err := parts[0].Add(parts[1])
	require.NoError(t, err)
	sum, err = sum.Add(parts[2])
	require.NoError(t, err)
	flat, err := sum.Collapse()
	require.NoError(t, err)
	require.Equal(t, []int64{2, 480, 4320, 13440, 35040, 60480}, flat.Int64s())
}

func TestInverseAndPow(t *testing.T) {
	r := qseries.NewRing(qseries.WithPrecision(5))
	oneMinusQ := r.FromInts(1, 1, -1)
	inv, err := oneMinusQ.Inverse()
	require.NoError(t, err)
	require.Equal(t, []int64{1, 1, 1, 1, 1}, inv.Int64s())

	sq, err := oneMinusQ.Pow(-2)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3, 4, 5}, sq.Int64s())

	_, err = r.FromInts(1, 2, 1).Inverse()
	require.ErrorIs(t, err, qseries.ErrNotUnit)

	require.Equal(t, []int64{1, 0, -1, 0, 0}, oneMinusQ.Dilate(2).Int64s())
	require.Equal(t, []int64{0, 0, 1, -1, 0}, oneMinusQ.Shift(2).Int64s())
}

func TestPrecisionMismatch(t *testing.T) {
	a := qseries.NewRing(qseries.WithPrecision(4)).One()
	b := qseries.NewRing(qseries.WithPrecision(5)).One()
	_, err := a.Add(b)
	require.ErrorIs(t, err, qseries.ErrPrecisionMismatch)
}

func TestWithPrecisionPanics(t *testing.T) {
	require.Panics(t, func() { qseries.WithPrecision(0) })
}
