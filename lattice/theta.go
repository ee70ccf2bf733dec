// SPDX-License-Identifier: MIT

package lattice

import (
	"math"
	"math/big"

	"github.com/katalvlaran/codeforms/matrix"
	"github.com/katalvlaran/codeforms/qseries"
)

// DefaultMaxVectors bounds the number of lattice vectors a theta enumeration visits.
const DefaultMaxVectors = 5_000_000

// maxResidual bounds |L·D·Lᵀ − G| before the float enumeration bounds are trusted.
const maxResidual = 1e-6

const panicMaxVectors = "lattice: WithMaxVectors: limit must be positive"

// ThetaOption configures ThetaSeries.
type ThetaOption func(*thetaOptions)

type thetaOptions struct {
	maxVectors int
	numeric    []matrix.Option
}

// WithMaxVectors caps the enumeration; exceeding it yields ErrEnumerationBudget.
func WithMaxVectors(n int) ThetaOption {
	if n <= 0 {
		panic(panicMaxVectors)
	}

	return func(o *thetaOptions) { o.maxVectors = n }
}

// WithNumeric forwards matrix options (epsilon policy) to the LDL factorisation.
func WithNumeric(opts ...matrix.Option) ThetaOption {
	return func(o *thetaOptions) { o.numeric = append(o.numeric, opts...) }
}

// ThetaSeries returns Σ_{v ∈ L} q^{⟨v,v⟩/2} to the ring precision. Even lattices give
// an integral series; odd ones come back with denominator 2.
//
// Implementation:
//   - Stage 1: LDLᵀ of the Gram matrix in float64 gives
//     Q(x) = Σ_i D_i (x_i + Σ_{j>i} L_ji x_j)².
//     The factorisation must reproduce G to within 1e-6, else ErrNumeric.
//   - Stage 2: Fincke–Pohst depth-first enumeration of Q(x) < 2·precision with a
//     widened float bound.
//   - Stage 3: every candidate's norm is recomputed exactly in int64 and binned.
func ThetaSeries(r *qseries.Ring, l *Lattice, opts ...ThetaOption) (*qseries.Series, error) {
	o := thetaOptions{maxVectors: DefaultMaxVectors}
	for _, fn := range opts {
		fn(&o)
	}
	g, err := l.Gram()
	if err != nil {
		return nil, latticeErrorf("ThetaSeries", err)
	}
	n := len(g)
	gi := make([][]int64, n)
	for i := range g {
		gi[i] = make([]int64, n)
		for j := range g[i] {
			if !g[i][j].IsInt64() {
				return nil, latticeErrorf("ThetaSeries", ErrTooLarge)
			}
			gi[i][j] = g[i][j].Int64()
		}
	}
	dense, err := matrix.FromInts(gi)
	if err != nil {
		return nil, latticeErrorf("ThetaSeries", err)
	}
	lo, d, err := matrix.LDL(dense, o.numeric...)
	if err != nil {
		return nil, latticeErrorf("ThetaSeries", err)
	}
	if res, err := matrix.Residual(dense, lo, d); err != nil || res > maxResidual {
		return nil, latticeErrorf("ThetaSeries", ErrNumeric)
	}
	coef := make([][]float64, n) // coef[i][j] = L_ji for j > i
	for i := 0; i < n; i++ {
		coef[i] = make([]float64, n)
		for j := i + 1; j < n; j++ {
			if coef[i][j], err = lo.At(j, i); err != nil {
				return nil, latticeErrorf("ThetaSeries", err)
			}
		}
	}

	prec := r.Precision()
	limit := int64(2 * prec) // exclusive bound on ⟨v,v⟩
	counts := make([]int64, limit)
	x := make([]int64, n)
	visited := 0
	bound := float64(limit-1) + 0.5

	var walk func(i int, rem float64) error
	walk = func(i int, rem float64) error {
		c := 0.0
		for j := i + 1; j < n; j++ {
			c -= coef[i][j] * float64(x[j])
		}
		span := math.Sqrt(math.Max(rem, 0) / d[i])
		lo := int64(math.Ceil(c - span - 1e-6))
		hi := int64(math.Floor(c + span + 1e-6))
		for v := lo; v <= hi; v++ {
			x[i] = v
			t := float64(v) - c
			next := rem - d[i]*t*t
			if next < -1e-6 {
				continue
			}
			if i > 0 {
				if err := walk(i-1, next); err != nil {
					return err
				}
				continue
			}
			visited++
			if visited > o.maxVectors {
				return ErrEnumerationBudget
			}
			if norm := quadForm(gi, x); norm >= 0 && norm < limit {
				counts[norm]++
			}
		}
		x[i] = 0

		return nil
	}
	if err = walk(n-1, bound); err != nil {
		return nil, latticeErrorf("ThetaSeries", err)
	}

	s := r.Zero(2)
	for k, c := range counts {
		s.C[k] = big.NewInt(c)
	}
	if even, err := s.Collapse(); err == nil {
		return even, nil
	}

	return s, nil
}

func quadForm(g [][]int64, x []int64) int64 {
	var s int64
	for i := range x {
		if x[i] == 0 {
			continue
		}
		var row int64
		for j := range x {
			row += g[i][j] * x[j]
		}
		s += x[i] * row
	}

	return s
}
