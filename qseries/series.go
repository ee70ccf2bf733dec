// SPDX-License-Identifier: MIT

package qseries

import (
	"fmt"
	"math/big"
	"strings"
)

// Series is Σ C[i] q^{i/Den}, truncated to i/Den < Prec.
type Series struct {
	Den  int
	Prec int
	C    []*big.Int
}

// Clone returns a deep copy.
func (s *Series) Clone() *Series {
	c := make([]*big.Int, len(s.C))
	for i, v := range s.C {
		c[i] = new(big.Int).Set(v)
	}

	return &Series{Den: s.Den, Prec: s.Prec, C: c}
}

func (s *Series) empty(den int) *Series {
	c := make([]*big.Int, s.Prec*den)
	for i := range c {
		c[i] = new(big.Int)
	}

	return &Series{Den: den, Prec: s.Prec, C: c}
}

// Refine rewrites s over the denominator den, a multiple of s.Den.
func (s *Series) Refine(den int) (*Series, error) {
	if den <= 0 || den%s.Den != 0 {
		return nil, seriesErrorf("Refine", ErrDenominator)
	}
	step := den / s.Den
	out := s.empty(den)
	for i, v := range s.C {
		out.C[i*step].Set(v)
	}

	return out, nil
}

// Collapse rewrites s over denominator 1; it fails if a fractional exponent carries a
// non-zero coefficient.
func (s *Series) Collapse() (*Series, error) {
	out := s.empty(1)
	for i, v := range s.C {
		if v.Sign() == 0 {
			continue
		}
		if i%s.Den != 0 {
			return nil, seriesErrorf("Collapse", fmt.Errorf("%w: q^(%d/%d)", ErrFractionalExponent, i, s.Den))
		}
		out.C[i/s.Den].Set(v)
	}

	return out, nil
}

// align brings a and b to a common denominator.
func align(a, b *Series) (*Series, *Series, error) {
	if a.Prec != b.Prec {
		return nil, nil, ErrPrecisionMismatch
	}
	if a.Den == b.Den {
		return a, b, nil
	}
	den := lcm(a.Den, b.Den)
	ra, err := a.Refine(den)
	if err != nil {
		return nil, nil, err
	}
	rb, err := b.Refine(den)
	if err != nil {
		return nil, nil, err
	}

	return ra, rb, nil
}

// Add returns s + t.
func (s *Series) Add(t *Series) (*Series, error) {
	a, b, err := align(s, t)
	if err != nil {
		return nil, seriesErrorf("Add", err)
	}
	out := a.empty(a.Den)
	for i := range out.C {
		out.C[i].Add(a.C[i], b.C[i])
	}

	return out, nil
}

// Sub returns s − t.
func (s *Series) Sub(t *Series) (*Series, error) {
	a, b, err := align(s, t)
	if err != nil {
		return nil, seriesErrorf("Sub", err)
	}
	out := a.empty(a.Den)
	for i := range out.C {
		out.C[i].Sub(a.C[i], b.C[i])
	}

	return out, nil
}

// Scale returns k·s.
func (s *Series) Scale(k int64) *Series {
	out := s.empty(s.Den)
	bk := big.NewInt(k)
	for i, v := range s.C {
		out.C[i].Mul(v, bk)
	}

	return out
}

// Mul returns s·t truncated.
//
// Complexity: O(L²) big-integer products with L = Prec·Den.
func (s *Series) Mul(t *Series) (*Series, error) {
	a, b, err := align(s, t)
	if err != nil {
		return nil, seriesErrorf("Mul", err)
	}
	out := a.empty(a.Den)
	tmp := new(big.Int)
	n := len(out.C)
	for i, x := range a.C {
		if x.Sign() == 0 {
			continue
		}
		for j := 0; i+j < n; j++ {
			if b.C[j].Sign() == 0 {
				continue
			}
			out.C[i+j].Add(out.C[i+j], tmp.Mul(x, b.C[j]))
		}
	}

	return out, nil
}

// Inverse returns 1/s for a constant term ±1.
//
// Implementation:
//   - b_0 = 1/a_0; b_n = −a_0 · Σ_{k=1..n} a_k b_{n−k} (a_0 = ±1 is its own inverse).
func (s *Series) Inverse() (*Series, error) {
	a0 := s.C[0]
	if !a0.IsInt64() || (a0.Int64() != 1 && a0.Int64() != -1) {
		return nil, seriesErrorf("Inverse", ErrNotUnit)
	}
	out := s.empty(s.Den)
	out.C[0].Set(a0)
	acc, tmp := new(big.Int), new(big.Int)
	for n := 1; n < len(out.C); n++ {
		acc.SetInt64(0)
		for k := 1; k <= n; k++ {
			if s.C[k].Sign() == 0 {
				continue
			}
			acc.Add(acc, tmp.Mul(s.C[k], out.C[n-k]))
		}
		out.C[n].Mul(acc, a0)
		out.C[n].Neg(out.C[n])
	}

	return out, nil
}

// Div returns s/t for t with unit constant term.
func (s *Series) Div(t *Series) (*Series, error) {
	inv, err := t.Inverse()
	if err != nil {
		return nil, seriesErrorf("Div", err)
	}

	return s.Mul(inv)
}

// Pow returns s^k; negative k inverts first.
func (s *Series) Pow(k int) (*Series, error) {
	base := s
	if k < 0 {
		inv, err := s.Inverse()
		if err != nil {
			return nil, seriesErrorf("Pow", err)
		}
		base, k = inv, -k
	}
	out := s.empty(s.Den)
	out.C[0].SetInt64(1)
	var err error
	for k > 0 {
		if k&1 == 1 {
			if out, err = out.Mul(base); err != nil {
				return nil, err
			}
		}
		k >>= 1
		if k > 0 {
			if base, err = base.Mul(base); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// Dilate substitutes q → q^m.
func (s *Series) Dilate(m int) *Series {
	out := s.empty(s.Den)
	for i, v := range s.C {
		if i*m >= len(out.C) {
			break
		}
		out.C[i*m].Set(v)
	}

	return out
}

// Shift multiplies by q^{a/Den}, a ≥ 0.
func (s *Series) Shift(a int) *Series {
	out := s.empty(s.Den)
	for i := 0; i+a < len(out.C); i++ {
		out.C[i+a].Set(s.C[i])
	}

	return out
}

// Coeff returns the coefficient of q^{i/Den}; out-of-range indices give nil.
func (s *Series) Coeff(i int) *big.Int {
	if i < 0 || i >= len(s.C) {
		return nil
	}

	return s.C[i]
}

// Valuation returns the first index with a non-zero coefficient, or -1 for zero.
func (s *Series) Valuation() int {
	for i, v := range s.C {
		if v.Sign() != 0 {
			return i
		}
	}

	return -1
}

// IsZero reports whether every coefficient vanishes.
func (s *Series) IsZero() bool { return s.Valuation() < 0 }

// Equal compares two series after aligning denominators.
func (s *Series) Equal(t *Series) bool {
	a, b, err := align(s, t)
	if err != nil {
		return false
	}
	for i := range a.C {
		if a.C[i].Cmp(b.C[i]) != 0 {
			return false
		}
	}

	return true
}

// Int64s returns the coefficients as int64 values; callers use it for small series.
func (s *Series) Int64s() []int64 {
	out := make([]int64, len(s.C))
	for i, v := range s.C {
		out[i] = v.Int64()
	}

	return out
}

// String renders e.g. "1 + 240q + 2160q^2 + O(q^10)".
func (s *Series) String() string {
	var sb strings.Builder
	for i, v := range s.C {
		if v.Sign() == 0 {
			continue
		}
		writeTerm(&sb, v, big.NewRat(int64(i), int64(s.Den)))
	}
	if sb.Len() == 0 {
		sb.WriteString("0")
	}
	fmt.Fprintf(&sb, " + O(q^%d)", s.Prec)

	return sb.String()
}

func writeTerm(sb *strings.Builder, c *big.Int, exp *big.Rat) {
	abs := new(big.Int).Abs(c)
	switch {
	case sb.Len() == 0 && c.Sign() < 0:
		sb.WriteString("-")
	case sb.Len() > 0 && c.Sign() < 0:
		sb.WriteString(" - ")
	case sb.Len() > 0:
		sb.WriteString(" + ")
	}
	if exp.Sign() == 0 || abs.Cmp(big.NewInt(1)) != 0 {
		sb.WriteString(abs.String())
	}
	if exp.Sign() == 0 {
		return
	}
	sb.WriteString("q")
	switch {
	case exp.IsInt() && exp.Num().Cmp(big.NewInt(1)) == 0:
	case exp.IsInt():
		sb.WriteString("^" + exp.Num().String())
	default:
		sb.WriteString("^(" + exp.RatString() + ")")
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func lcm(a, b int) int { return a / gcd(a, b) * b }
