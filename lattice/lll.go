// SPDX-License-Identifier: MIT

package lattice

import "math/big"

// lllDelta is the Lovász constant.
var lllDelta = big.NewRat(3, 4)

// LLL returns an LLL-reduced basis of l (δ = 3/4), computed exactly over the
// rationals from the Gram matrix. The ambient basis, when present, undergoes the same
// unimodular transformation.
//
// Implementation:
//   - Stage 1: Gram–Schmidt coefficients μ and squared lengths B from the Gram matrix.
//   - Stage 2: size-reduce b_k against b_{k-1}; test the Lovász condition.
//   - Stage 3: swap and step back, or finish size reduction and advance.
//
// Complexity:
//   - Polynomial in rank and entry size; Gram–Schmidt is recomputed after each swap,
//     which is cheap at the ranks used here (≤ 24).
func LLL(l *Lattice) (*Lattice, error) {
	g0, err := l.Gram()
	if err != nil {
		return nil, latticeErrorf("LLL", err)
	}
	g := g0.Clone()
	n := len(g)
	var basis IntMatrix
	if len(l.Basis) > 0 {
		basis = l.Basis.Clone()
	}
	if n < 2 {
		return &Lattice{Basis: basis, Scale: l.Scale, gram: g}, nil
	}

	mu, b, err := gramSchmidt(g)
	if err != nil {
		return nil, latticeErrorf("LLL", err)
	}
	reduce := func(k, j int, r *big.Int) {
		// b_k ← b_k − r·b_j
		row := make([]*big.Int, n)
		tmp := new(big.Int)
		for i := 0; i < n; i++ {
			row[i] = new(big.Int).Sub(g[k][i], tmp.Mul(r, g[j][i]))
		}
		kk := new(big.Int).Sub(row[k], tmp.Mul(r, row[j]))
		for i := 0; i < n; i++ {
			if i == k {
				continue
			}
			g[k][i].Set(row[i])
			g[i][k].Set(row[i])
		}
		g[k][k].Set(kk)
		if basis != nil {
			for c := range basis[k] {
				basis[k][c].Sub(basis[k][c], tmp.Mul(r, basis[j][c]))
			}
		}
		rr := new(big.Rat).SetInt(r)
		t := new(big.Rat)
		for i := 0; i < j; i++ {
			mu[k][i].Sub(mu[k][i], t.Mul(rr, mu[j][i]))
		}
		mu[k][j].Sub(mu[k][j], rr)
	}

	k := 1
	lhs, rhs := new(big.Rat), new(big.Rat)
	for k < n {
		if r := roundRat(mu[k][k-1]); r.Sign() != 0 {
			reduce(k, k-1, r)
		}
		// B_k < (δ − μ²) B_{k−1}
		rhs.Mul(mu[k][k-1], mu[k][k-1])
		rhs.Sub(lllDelta, rhs)
		rhs.Mul(rhs, b[k-1])
		lhs.Set(b[k])
		if lhs.Cmp(rhs) < 0 {
			g[k], g[k-1] = g[k-1], g[k]
			for i := 0; i < n; i++ {
				g[i][k], g[i][k-1] = g[i][k-1], g[i][k]
			}
			if basis != nil {
				basis[k], basis[k-1] = basis[k-1], basis[k]
			}
			if mu, b, err = gramSchmidt(g); err != nil {
				return nil, latticeErrorf("LLL", err)
			}
			if k > 1 {
				k--
			}
			continue
		}
		for j := k - 2; j >= 0; j-- {
			if r := roundRat(mu[k][j]); r.Sign() != 0 {
				reduce(k, j, r)
			}
		}
		k++
	}

	return &Lattice{Basis: basis, Scale: l.Scale, gram: g}, nil
}

func gramSchmidt(g IntMatrix) ([][]*big.Rat, []*big.Rat, error) {
	n := len(g)
	mu := make([][]*big.Rat, n)
	b := make([]*big.Rat, n)
	t := new(big.Rat)
	for i := 0; i < n; i++ {
		mu[i] = make([]*big.Rat, n)
		for j := 0; j < i; j++ {
			v := new(big.Rat).SetInt(g[i][j])
			for l := 0; l < j; l++ {
				v.Sub(v, t.Mul(t.Mul(mu[j][l], mu[i][l]), b[l]))
			}
			mu[i][j] = v.Quo(v, b[j])
		}
		for j := i; j < n; j++ {
			mu[i][j] = new(big.Rat)
		}
		v := new(big.Rat).SetInt(g[i][i])
		for l := 0; l < i; l++ {
			v.Sub(v, t.Mul(t.Mul(mu[i][l], mu[i][l]), b[l]))
		}
		if v.Sign() <= 0 {
			return nil, nil, ErrDegenerate
		}
		b[i] = v
	}

	return mu, b, nil
}

// roundRat returns ⌊x + 1/2⌋.
func roundRat(x *big.Rat) *big.Int {
	h := new(big.Rat).Add(x, big.NewRat(1, 2))
	q := new(big.Int)
	m := new(big.Int)
	q.DivMod(h.Num(), h.Denom(), m)

	return q
}
