// SPDX-License-Identifier: MIT

package perm

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/codeforms/gf2"
)

// Signed is the monomial map ε_X σ on Z^N: e_i ↦ s_i e_{σ(i)} with s_i = -1 exactly
// when i ∈ Neg. With Neg = 0 it is the plain coordinate permutation σ.
type Signed struct {
	P   Perm
	Neg gf2.Word
}

// Plain wraps p without sign changes.
func Plain(p Perm) Signed { return Signed{P: p} }

// SignedIdentity returns the identity of degree n.
func SignedIdentity(n int) Signed { return Signed{P: Identity(n)} }

// Degree returns N.
func (g Signed) Degree() int { return len(g.P) }

// Sign returns s_i.
func (g Signed) Sign(i int) int {
	if g.Neg.Has(i) {
		return -1
	}

	return 1
}

// Then returns "g first, then h".
func (g Signed) Then(h Signed) Signed {
	// sign at i is s_i · t_{σ(i)}
	return Signed{P: g.P.Then(h.P), Neg: g.Neg ^ g.P.Inverse().Apply(h.Neg)}
}

// Inverse returns g^-1.
func (g Signed) Inverse() Signed {
	return Signed{P: g.P.Inverse(), Neg: g.P.Apply(g.Neg)}
}

// Pow returns g^k; negative k uses the inverse.
func (g Signed) Pow(k int) Signed {
	base := g
	if k < 0 {
		base = g.Inverse()
		k = -k
	}
	out := SignedIdentity(g.Degree())
	for k > 0 {
		if k&1 == 1 {
			out = out.Then(base)
		}
		base = base.Then(base)
		k >>= 1
	}

	return out
}

// IsIdentity reports whether g is the identity matrix.
func (g Signed) IsIdentity() bool { return g.Neg == 0 && g.P.IsIdentity() }

// Equal reports whether g and h are the same signed permutation.
func (g Signed) Equal(h Signed) bool { return g.Neg == h.Neg && g.P.Equal(h.P) }

// Order returns the order of g as a matrix: a cycle of length ℓ carrying an odd number
// of sign changes contributes 2ℓ, otherwise ℓ.
func (g Signed) Order() int {
	ord := 1
	for _, c := range g.P.Cycles() {
		l := len(c)
		if g.CycleTwisted(c) {
			l *= 2
		}
		ord = lcm(ord, l)
	}

	return ord
}

// CycleTwisted reports whether the cycle c of g.P carries an odd number of sign changes.
func (g Signed) CycleTwisted(c []int) bool {
	odd := false
	for _, i := range c {
		if g.Neg.Has(i) {
			odd = !odd
		}
	}

	return odd
}

// SignedCycleType returns the cycle lengths of g with twisted cycles encoded as
// negative numbers, sorted ascending.
func (g Signed) SignedCycleType() []int {
	cs := g.P.Cycles()
	out := make([]int, len(cs))
	for i, c := range cs {
		out[i] = len(c)
		if g.CycleTwisted(c) {
			out[i] = -out[i]
		}
	}
	sortInts(out)

	return out
}

// ApplyInts returns g·x for an integer coordinate vector x.
func (g Signed) ApplyInts(x []int64) []int64 {
	out := make([]int64, len(x))
	for i, v := range x {
		out[g.P[i]] = int64(g.Sign(i)) * v
	}

	return out
}

// Matrix returns the N×N integer matrix of g acting on column vectors:
// column i has the single entry s_i in row σ(i).
func (g Signed) Matrix() [][]int64 {
	n := g.Degree()
	m := make([][]int64, n)
	for r := range m {
		m[r] = make([]int64, n)
	}
	for i := 0; i < n; i++ {
		m[g.P[i]][i] = int64(g.Sign(i))
	}

	return m
}

// Lift returns the permutation of the 2N vectors ±e_i induced by g: point i stands for
// +e_i and point i+N for -e_i.
func (g Signed) Lift() Perm {
	n := g.Degree()
	out := make(Perm, 2*n)
	for i := 0; i < n; i++ {
		j := g.P[i]
		if g.Neg.Has(i) {
			out[i], out[i+n] = j+n, j
		} else {
			out[i], out[i+n] = j, j+n
		}
	}

	return out
}

// SignedFromLift inverts Lift; it fails unless p commutes with i ↔ i+N.
func SignedFromLift(p Perm) (Signed, error) {
	if len(p)%2 != 0 {
		return Signed{}, permErrorf("SignedFromLift", ErrNotSignedLift)
	}
	n := len(p) / 2
	g := Signed{P: make(Perm, n)}
	for i := 0; i < n; i++ {
		a, b := p[i], p[i+n]
		switch {
		case a < n && b == a+n:
			g.P[i] = a
		case a >= n && b == a-n:
			g.P[i] = b
			g.Neg |= gf2.Bit(i)
		default:
			return Signed{}, permErrorf("SignedFromLift", ErrNotSignedLift)
		}
	}

	return g, nil
}

// String renders the permutation in cycle notation followed by the negated
// coordinates, e.g. "(1,2,3) neg[1,4]". Coordinates are 1-based.
func (g Signed) String() string {
	if g.Neg == 0 {
		return g.P.String()
	}
	var sb strings.Builder
	sb.WriteString(g.P.String())
	sb.WriteString(" neg[")
	for k, i := range g.Neg.Support() {
		if k > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(i + 1))
	}
	sb.WriteByte(']')

	return sb.String()
}

// ParseSigned reads the String form. The neg[...] part is optional.
func ParseSigned(n int, s string) (Signed, error) {
	cyc, neg := s, ""
	if k := strings.Index(s, "neg["); k >= 0 {
		end := strings.IndexByte(s[k:], ']')
		if end < 0 {
			return Signed{}, permErrorf("ParseSigned", ErrBadCycles)
		}
		cyc, neg = s[:k], s[k+4:k+end]
	}
	p, err := ParseCycles(n, cyc)
	if err != nil {
		return Signed{}, err
	}
	g := Signed{P: p}
	for _, f := range strings.FieldsFunc(neg, func(r rune) bool { return r == ',' || r == ' ' }) {
		v, err := strconv.Atoi(f)
		if err != nil || v < 1 || v > n {
			return Signed{}, permErrorf("ParseSigned", ErrBadCycles)
		}
		g.Neg |= gf2.Bit(v - 1)
	}

	return g, nil
}
