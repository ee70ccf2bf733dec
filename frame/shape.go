// SPDX-License-Identifier: MIT

// Package frame - frame shapes (generalised cycle types).
//
// A finite-order matrix g has det(xI − g) = ∏_ℓ (x^ℓ − 1)^{r_ℓ} for unique integers r_ℓ;
// the formal product ∏ ℓ^{r_ℓ} is its frame shape and ∏ η(ℓτ)^{r_ℓ} its eta product.
// A signed permutation has r_ℓ = +1 for every cycle of length ℓ with an even number
// of sign changes, and r_{2ℓ} = +1, r_ℓ = −1 for every cycle with an odd number.
package frame

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/katalvlaran/codeforms/orbit"
	"github.com/katalvlaran/codeforms/qseries"
)

var (
	cycloMu    sync.Mutex
	cycloCache = map[int]Poly{}
)

// Shape maps ℓ to r_ℓ; zero exponents are never stored.
type Shape map[int]int

func (s Shape) add(l, r int) {
	s[l] += r
	if s[l] == 0 {
		delete(s, l)
	}
}

// FromClassification reads the frame shape off the orbit types of a cyclic group.
func FromClassification(c *orbit.Classification) Shape {
	s := Shape{}
	for _, o := range c.Orbits {
		if o.Twisted {
			s.add(2*o.Len(), 1)
			s.add(o.Len(), -1)
			continue
		}
		s.add(o.Len(), 1)
	}

	return s
}

// FromCharPoly decomposes p = ∏ Φ_d^{m_d} and inverts m_d = Σ_{d|ℓ} r_ℓ by Möbius
// inversion: r_ℓ = Σ_j μ(j)·m_{jℓ}.
func FromCharPoly(p Poly) (Shape, error) {
	rest := p.trim()
	mult := map[int]int{}
	maxD := 0
	// φ(d) ≥ √(d/2), so no cyclotomic factor of degree ≤ n has d > 2n².
	bound := 2*p.Degree()*p.Degree() + 2
	for d := 1; rest.Degree() > 0 && d <= bound; d++ {
		if totient(d) > rest.Degree() {
			continue
		}
		phi := Cyclotomic(d)
		for {
			q, r, err := rest.DivMod(phi)
			if err != nil {
				return nil, frameErrorf("FromCharPoly", err)
			}
			if r.Degree() >= 0 {
				break
			}
			rest = q
			mult[d]++
			maxD = d
		}
	}
	if !rest.IsOne() {
		return nil, frameErrorf("FromCharPoly", ErrNotCyclotomic)
	}

	s := Shape{}
	for l := 1; l <= maxD; l++ {
		r := 0
		for j := 1; j*l <= maxD; j++ {
			r += mobius(j) * mult[j*l]
		}
		if r != 0 {
			s[l] = r
		}
	}

	return s, nil
}

// Degree returns Σ ℓ·r_ℓ, the dimension acted on.
func (s Shape) Degree() int {
	d := 0
	for l, r := range s {
		d += l * r
	}

	return d
}

// Weight returns the weight Σ r_ℓ / 2 of the eta product.
func (s Shape) Weight() *big.Rat {
	w := 0
	for _, r := range s {
		w += r
	}

	return big.NewRat(int64(w), 2)
}

// Equal compares two shapes.
func (s Shape) Equal(t Shape) bool {
	if len(s) != len(t) {
		return false
	}
	for l, r := range s {
		if t[l] != r {
			return false
		}
	}

	return true
}

// Relative returns s / 1^n: the shape divided by the identity frame of degree n.
// The identity's relative shape is empty.
func (s Shape) Relative(n int) Shape {
	out := Shape{}
	for l, r := range s {
		out[l] = r
	}
	out.add(1, -n)

	return out
}

// EtaProduct expands ∏ η(ℓτ)^{r_ℓ} in r.
func (s Shape) EtaProduct(r *qseries.Ring) (qseries.Expansion, error) {
	return r.EtaProduct(map[int]int(s))
}

// String renders positive exponents over negative ones, e.g. "1^8" or "2^8/1^8".
// The empty shape is "1".
func (s Shape) String() string {
	keys := make([]int, 0, len(s))
	for l := range s {
		keys = append(keys, l)
	}
	sort.Ints(keys)
	var num, den []string
	for _, l := range keys {
		r := s[l]
		if r > 0 {
			num = append(num, strconv.Itoa(l)+"^"+strconv.Itoa(r))
		} else {
			den = append(den, strconv.Itoa(l)+"^"+strconv.Itoa(-r))
		}
	}
	top := strings.Join(num, " ")
	if top == "" {
		top = "1"
	}
	if len(den) == 0 {
		return top
	}

	return top + "/" + strings.Join(den, " ")
}

func totient(n int) int {
	out, m := n, n
	for p := 2; p*p <= m; p++ {
		if m%p == 0 {
			for m%p == 0 {
				m /= p
			}
			out -= out / p
		}
	}
	if m > 1 {
		out -= out / m
	}

	return out
}

func mobius(n int) int {
	mu := 1
	for p := 2; p*p <= n; p++ {
		if n%p != 0 {
			continue
		}
		n /= p
		if n%p == 0 {
			return 0
		}
		mu = -mu
	}
	if n > 1 {
		mu = -mu
	}

	return mu
}
