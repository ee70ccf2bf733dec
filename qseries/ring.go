// SPDX-License-Identifier: MIT

package qseries

import "math/big"

// DefaultPrecision is the number of integral exponents kept (q^0 .. q^{P-1}).
const DefaultPrecision = 10

const panicPrecisionInvalid = "qseries: WithPrecision: precision must be positive"

// Option configures a Ring.
type Option func(*Ring)

// WithPrecision sets the truncation: exponents < p are kept.
func WithPrecision(p int) Option {
	if p <= 0 {
		panic(panicPrecisionInvalid)
	}

	return func(r *Ring) { r.prec = p }
}

// Ring creates series of one fixed precision and caches the modular building blocks.
// A Ring is not safe for concurrent use.
type Ring struct {
	prec  int
	euler map[int]*Series
}

// NewRing returns a ring with the given options applied over the defaults.
func NewRing(opts ...Option) *Ring {
	r := &Ring{prec: DefaultPrecision, euler: make(map[int]*Series)}
	for _, fn := range opts {
		fn(r)
	}

	return r
}

// Precision returns P.
func (r *Ring) Precision() int { return r.prec }

// Zero returns the zero series with exponent denominator den.
func (r *Ring) Zero(den int) *Series {
	if den <= 0 {
		den = 1
	}
	c := make([]*big.Int, r.prec*den)
	for i := range c {
		c[i] = new(big.Int)
	}

	return &Series{Den: den, Prec: r.prec, C: c}
}

// One returns the constant series 1.
func (r *Ring) One() *Series {
	s := r.Zero(1)
	s.C[0].SetInt64(1)

	return s
}

// FromInts builds a series from the coefficients of q^{i/den}; extra values are dropped.
func (r *Ring) FromInts(den int, coeffs ...int64) *Series {
	s := r.Zero(den)
	for i, v := range coeffs {
		if i >= len(s.C) {
			break
		}
		s.C[i].SetInt64(v)
	}

	return s
}
