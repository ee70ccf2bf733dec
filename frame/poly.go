// SPDX-License-Identifier: MIT

package frame

import (
	"math/big"
	"strings"
)

// Poly is an integer polynomial; C[i] is the coefficient of x^i. The zero polynomial
// has no coefficients.
type Poly struct {
	C []*big.Int
}

func newPoly(deg int) Poly {
	c := make([]*big.Int, deg+1)
	for i := range c {
		c[i] = new(big.Int)
	}

	return Poly{C: c}
}

// PolyFromInts builds a polynomial from ascending coefficients.
func PolyFromInts(coeffs ...int64) Poly {
	p := newPoly(len(coeffs) - 1)
	for i, v := range coeffs {
		p.C[i].SetInt64(v)
	}

	return p.trim()
}

func (p Poly) trim() Poly {
	n := len(p.C)
	for n > 0 && p.C[n-1].Sign() == 0 {
		n--
	}

	return Poly{C: p.C[:n]}
}

// Degree returns deg p, or -1 for zero.
func (p Poly) Degree() int { return len(p.trim().C) - 1 }

// IsOne reports whether p = 1.
func (p Poly) IsOne() bool {
	q := p.trim()

	return len(q.C) == 1 && q.C[0].Cmp(big.NewInt(1)) == 0
}

// Equal compares coefficients.
func (p Poly) Equal(q Poly) bool {
	a, b := p.trim(), q.trim()
	if len(a.C) != len(b.C) {
		return false
	}
	for i := range a.C {
		if a.C[i].Cmp(b.C[i]) != 0 {
			return false
		}
	}

	return true
}

// Mul returns p·q.
func (p Poly) Mul(q Poly) Poly {
	a, b := p.trim(), q.trim()
	if len(a.C) == 0 || len(b.C) == 0 {
		return Poly{}
	}
	out := newPoly(len(a.C) + len(b.C) - 2)
	tmp := new(big.Int)
	for i, x := range a.C {
		for j, y := range b.C {
			out.C[i+j].Add(out.C[i+j], tmp.Mul(x, y))
		}
	}

	return out
}

// DivMod divides p by a monic d over Z.
func (p Poly) DivMod(d Poly) (quo, rem Poly, err error) {
	d = d.trim()
	if len(d.C) == 0 || d.C[len(d.C)-1].Cmp(big.NewInt(1)) != 0 {
		return Poly{}, Poly{}, frameErrorf("DivMod", ErrNotMonic)
	}
	r := newPoly(len(p.C) - 1)
	for i, v := range p.C {
		r.C[i].Set(v)
	}
	r = r.trim()
	dd := len(d.C) - 1
	if len(r.C)-1 < dd {
		return Poly{}, r, nil
	}
	q := newPoly(len(r.C) - 1 - dd)
	tmp := new(big.Int)
	for k := len(r.C) - 1; k >= dd; k-- {
		c := r.C[k]
		if c.Sign() == 0 {
			continue
		}
		lead := new(big.Int).Set(c)
		q.C[k-dd].Set(lead)
		for j, dv := range d.C {
			r.C[k-dd+j].Sub(r.C[k-dd+j], tmp.Mul(lead, dv))
		}
	}

	return q.trim(), r.trim(), nil
}

// String renders e.g. "x^2 - 1".
func (p Poly) String() string {
	q := p.trim()
	if len(q.C) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i := len(q.C) - 1; i >= 0; i-- {
		c := q.C[i]
		if c.Sign() == 0 {
			continue
		}
		abs := new(big.Int).Abs(c)
		switch {
		case sb.Len() == 0 && c.Sign() < 0:
			sb.WriteString("-")
		case sb.Len() > 0 && c.Sign() < 0:
			sb.WriteString(" - ")
		case sb.Len() > 0:
			sb.WriteString(" + ")
		}
		if i == 0 || abs.Cmp(big.NewInt(1)) != 0 {
			sb.WriteString(abs.String())
		}
		switch {
		case i == 1:
			sb.WriteString("x")
		case i > 1:
			sb.WriteString("x^" + big.NewInt(int64(i)).String())
		}
	}

	return sb.String()
}

// CharPoly returns det(xI − A) of a square integer matrix.
//
// Implementation (Faddeev–LeVerrier):
//   - M_0 = 0, c_n = 1;
//   - M_k = A·M_{k−1} + c_{n−k+1}·I, c_{n−k} = −tr(A·M_k)/k.
//
// Every division is exact over Z; a remainder yields ErrInexact.
//
// Complexity:
//   - O(n^4) big-integer operations.
func CharPoly(a [][]*big.Int) (Poly, error) {
	n := len(a)
	for _, row := range a {
		if len(row) != n {
			return Poly{}, frameErrorf("CharPoly", ErrNotSquare)
		}
	}
	out := newPoly(n)
	out.C[n].SetInt64(1)

	m := zeroMat(n)
	tmp, rem := new(big.Int), new(big.Int)
	for k := 1; k <= n; k++ {
		// M_k = A·M_{k-1} + c_{n-k+1} I
		next := mulMat(a, m)
		for i := 0; i < n; i++ {
			next[i][i].Add(next[i][i], out.C[n-k+1])
		}
		m = next
		am := mulMat(a, m)
		tr := new(big.Int)
		for i := 0; i < n; i++ {
			tr.Add(tr, am[i][i])
		}
		tmp.SetInt64(int64(k))
		tr.QuoRem(tr, tmp, rem)
		if rem.Sign() != 0 {
			return Poly{}, frameErrorf("CharPoly", ErrInexact)
		}
		out.C[n-k].Neg(tr)
	}

	return out, nil
}

func zeroMat(n int) [][]*big.Int {
	m := make([][]*big.Int, n)
	for i := range m {
		m[i] = make([]*big.Int, n)
		for j := range m[i] {
			m[i][j] = new(big.Int)
		}
	}

	return m
}

func mulMat(a, b [][]*big.Int) [][]*big.Int {
	n := len(a)
	out := zeroMat(n)
	tmp := new(big.Int)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			if a[i][k].Sign() == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				if b[k][j].Sign() == 0 {
					continue
				}
				out[i][j].Add(out[i][j], tmp.Mul(a[i][k], b[k][j]))
			}
		}
	}

	return out
}

// Cyclotomic returns Φ_d = (x^d − 1) / ∏_{e|d, e<d} Φ_e.
func Cyclotomic(d int) Poly {
	cycloMu.Lock()
	defer cycloMu.Unlock()

	return cyclotomic(d)
}

func cyclotomic(d int) Poly {
	if p, ok := cycloCache[d]; ok {
		return p
	}
	num := newPoly(d)
	num.C[0].SetInt64(-1)
	num.C[d].SetInt64(1)
	for e := 1; e < d; e++ {
		if d%e != 0 {
			continue
		}
		q, _, err := num.DivMod(cyclotomic(e))
		if err != nil {
			panic(err)
		}
		num = q
	}
	cycloCache[d] = num

	return num
}
