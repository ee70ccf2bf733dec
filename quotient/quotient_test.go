package quotient_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/codeforms/frame"
	"github.com/katalvlaran/codeforms/qseries"
	"github.com/katalvlaran/codeforms/quotient"
)

var e8Theta = []int64{1, 240, 2160, 6720, 17520, 30240}

func TestIdentityQuotient(t *testing.T) {
	r := qseries.NewRing(qseries.WithPrecision(6))
	th := r.FromInts(1, e8Theta...)

	q, err := quotient.Shape(r, th, frame.Shape{1: 8})
	require.NoError(t, err)
	require.Equal(t, "-1/3", q.Order.RatString())
	require.Equal(t, []int64{1, 248, 4124, 34752, 213126, 1057504}, q.S.Int64s())

	rel, err := quotient.Relative(r, th, frame.Shape{1: 8}, 8)
	require.NoError(t, err)
	require.Equal(t, 0, rel.Order.Sign())
	require.Equal(t, e8Theta, rel.S.Int64s())
}

func TestNegationQuotient(t *testing.T) {
	r := qseries.NewRing(qseries.WithPrecision(6))
	q, err := quotient.Shape(r, r.One(), frame.Shape{2: 8, 1: -8})
	require.NoError(t, err)
	require.Equal(t, "-1/3", q.Order.RatString())
	require.Equal(t, []int64{1, -8, 28, -64, 134, -288}, q.S.Int64s())
}

func TestNonIntegral(t *testing.T) {
	r := qseries.NewRing(qseries.WithPrecision(4))
	eta := r.Eta(1)
	_, err := quotient.Evaluate(r.Theta2(1), eta)
	require.ErrorIs(t, err, quotient.ErrNonIntegral)
}
