// SPDX-License-Identifier: MIT

package qseries

import (
	"fmt"
	"math/big"
	"sort"
)

// EulerProduct returns ∏_{n≥1} (1 − q^{mn}) = Σ_{k∈Z} (−1)^k q^{m·k(3k−1)/2}.
// Results are cached per m.
func (r *Ring) EulerProduct(m int) *Series {
	if s, ok := r.euler[m]; ok {
		return s.Clone()
	}
	s := r.Zero(1)
	s.C[0].SetInt64(1)
	for k := 1; ; k++ {
		sign := int64(1)
		if k%2 == 1 {
			sign = -1
		}
		a := m * k * (3*k - 1) / 2
		b := m * k * (3*k + 1) / 2
		if a >= r.prec {
			break
		}
		s.C[a].SetInt64(sign)
		if b < r.prec {
			s.C[b].SetInt64(sign)
		}
	}
	r.euler[m] = s

	return s.Clone()
}

// Eta returns η(mτ) = q^{m/24} ∏ (1 − q^{mn}).
func (r *Ring) Eta(m int) Expansion {
	return Expansion{Order: big.NewRat(int64(m), 24), S: r.EulerProduct(m)}
}

// EtaProduct returns ∏_ℓ η(ℓτ)^{r_ℓ}; the leading order is Σ ℓ·r_ℓ / 24.
func (r *Ring) EtaProduct(frame map[int]int) (Expansion, error) {
	keys := make([]int, 0, len(frame))
	for l := range frame {
		if l <= 0 {
			return Expansion{}, seriesErrorf("EtaProduct", fmt.Errorf("%w: cycle length %d", ErrDenominator, l))
		}
		keys = append(keys, l)
	}
	sort.Ints(keys)

	out := r.One()
	order := new(big.Rat)
	for _, l := range keys {
		e := frame[l]
		if e == 0 {
			continue
		}
		p, err := r.EulerProduct(l).Pow(e)
		if err != nil {
			return Expansion{}, seriesErrorf("EtaProduct", err)
		}
		if out, err = out.Mul(p); err != nil {
			return Expansion{}, seriesErrorf("EtaProduct", err)
		}
		order.Add(order, big.NewRat(int64(l*e), 24))
	}

	return Expansion{Order: order, S: out}, nil
}

// Theta3 returns θ3(q^m) = Σ_{n∈Z} q^{m n²}.
func (r *Ring) Theta3(m int) *Series {
	s := r.Zero(1)
	s.C[0].SetInt64(1)
	for n := 1; m*n*n < r.prec; n++ {
		s.C[m*n*n].SetInt64(2)
	}

	return s
}

// Theta4 returns θ4(q^m) = Σ_{n∈Z} (−1)^n q^{m n²}.
func (r *Ring) Theta4(m int) *Series {
	s := r.Zero(1)
	s.C[0].SetInt64(1)
	for n := 1; m*n*n < r.prec; n++ {
		v := int64(2)
		if n%2 == 1 {
			v = -2
		}
		s.C[m*n*n].SetInt64(v)
	}

	return s
}

// Theta2 returns θ2(q^m) = Σ_{n∈Z} q^{m(n+1/2)²} over denominator 4.
func (r *Ring) Theta2(m int) *Series {
	s := r.Zero(4)
	for n := 0; m*(2*n+1)*(2*n+1) < len(s.C); n++ {
		s.C[m*(2*n+1)*(2*n+1)].SetInt64(2)
	}

	return s
}

// ThetaKind selects a Jacobi theta constant.
type ThetaKind int

const (
	Jacobi2 ThetaKind = 2
	Jacobi3 ThetaKind = 3
	Jacobi4 ThetaKind = 4
)

// ThetaFromEta builds θ_kind(q^m) from eta products:
//
//	θ3 = η(2τ)^5 / (η(τ)² η(4τ)²),  θ2 = 2 η(4τ)² / η(2τ),  θ4 = η(τ)² / η(2τ).
func (r *Ring) ThetaFromEta(kind ThetaKind, m int) (*Series, error) {
	var (
		frame map[int]int
		scale int64 = 1
	)
	switch kind {
	case Jacobi2:
		frame, scale = map[int]int{4 * m: 2, 2 * m: -1}, 2
	case Jacobi3:
		frame = map[int]int{2 * m: 5, m: -2, 4 * m: -2}
	case Jacobi4:
		frame = map[int]int{m: 2, 2 * m: -1}
	default:
		return nil, seriesErrorf("ThetaFromEta", fmt.Errorf("unknown theta kind %d", kind))
	}
	e, err := r.EtaProduct(frame)
	if err != nil {
		return nil, err
	}
	e.S = e.S.Scale(scale)
	den := 1
	if kind == Jacobi2 {
		den = 4
	}

	return e.ToSeries(den)
}
