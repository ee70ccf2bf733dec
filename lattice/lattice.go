// SPDX-License-Identifier: MIT

// Package lattice implements exact integral lattices: Construction A, Hermite normal
// forms, integer kernels, fixed sublattices, LLL reduction and theta series by
// Fincke–Pohst enumeration.
//
// A Lattice is spanned by integer row vectors in Z^n and carries the bilinear form
// ⟨x, y⟩ = x·y / Scale. Lattices known only through a Gram matrix (root lattices from
// a catalogue) have no basis and work the same way for every Gram-based operation.
package lattice

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/codeforms/code"
	"github.com/katalvlaran/codeforms/gf2"
)

// Lattice is an integral lattice given by a basis, a Gram matrix or both.
type Lattice struct {
	Basis IntMatrix
	Scale int64
	gram  IntMatrix
}

// New builds a lattice from integer basis rows and a positive scale.
// The rows must be linearly independent with integral inner products.
func New(basis IntMatrix, scale int64) (*Lattice, error) {
	if scale <= 0 || len(basis) == 0 {
		return nil, latticeErrorf("New", ErrShape)
	}
	n := len(basis[0])
	for _, row := range basis {
		if len(row) != n {
			return nil, latticeErrorf("New", ErrShape)
		}
	}
	l := &Lattice{Basis: basis, Scale: scale}
	if _, err := l.Gram(); err != nil {
		return nil, latticeErrorf("New", err)
	}
	if len(HNF(basis)) != len(basis) {
		return nil, latticeErrorf("New", ErrDegenerate)
	}

	return l, nil
}

// FromGram builds a basis-free lattice from a symmetric integer Gram matrix.
func FromGram(g IntMatrix) (*Lattice, error) {
	if len(g) == 0 {
		return nil, latticeErrorf("FromGram", ErrShape)
	}
	for i := range g {
		if len(g[i]) != len(g) {
			return nil, latticeErrorf("FromGram", ErrShape)
		}
		for j := range g {
			if g[i][j].Cmp(g[j][i]) != 0 {
				return nil, latticeErrorf("FromGram", ErrShape)
			}
		}
	}

	return &Lattice{Scale: 1, gram: g.Clone()}, nil
}

// FromCode returns the Construction A lattice (1/√2){x ∈ Z^n : x mod 2 ∈ C}.
// Its basis is the Hermite normal form of the codeword rows together with 2e_i.
func FromCode(c *code.Code) (*Lattice, error) {
	gens := NewIntMatrix(c.Dim()+c.N, c.N)
	for r, w := range c.Rows() {
		for i := 0; i < c.N; i++ {
			if w.Has(i) {
				gens[r][i].SetInt64(1)
			}
		}
	}
	for i := 0; i < c.N; i++ {
		gens[c.Dim()+i][i].SetInt64(2)
	}

	return New(HNF(gens), 2)
}

// Rank returns the number of basis vectors.
func (l *Lattice) Rank() int {
	if l.gram != nil {
		return len(l.gram)
	}

	return len(l.Basis)
}

// Dim returns the ambient dimension, or the rank for a Gram-only lattice.
func (l *Lattice) Dim() int {
	if len(l.Basis) == 0 {
		return l.Rank()
	}

	return len(l.Basis[0])
}

// Gram returns ⟨b_i, b_j⟩. It fails with ErrNotIntegral when some x·y is not a
// multiple of Scale.
func (l *Lattice) Gram() (IntMatrix, error) {
	if l.gram != nil {
		return l.gram, nil
	}
	r := len(l.Basis)
	g := NewIntMatrix(r, r)
	scale := big.NewInt(l.Scale)
	rem := new(big.Int)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			dot(g[i][j], l.Basis[i], l.Basis[j])
			g[i][j].QuoRem(g[i][j], scale, rem)
			if rem.Sign() != 0 {
				return nil, latticeErrorf("Gram", ErrNotIntegral)
			}
			g[j][i].Set(g[i][j])
		}
	}
	l.gram = g

	return g, nil
}

// Det returns the determinant of the Gram matrix.
func (l *Lattice) Det() (*big.Int, error) {
	g, err := l.Gram()
	if err != nil {
		return nil, err
	}

	return bareiss(g.Clone()), nil
}

// IsEven reports whether every vector has even norm.
func (l *Lattice) IsEven() (bool, error) {
	g, err := l.Gram()
	if err != nil {
		return false, err
	}
	for i := range g {
		if g[i][i].Bit(0) != 0 {
			return false, nil
		}
	}

	return true, nil
}

// IsUnimodular reports det = 1.
func (l *Lattice) IsUnimodular() (bool, error) {
	d, err := l.Det()
	if err != nil {
		return false, err
	}

	return d.IsInt64() && d.Int64() == 1, nil
}

// Fixed returns the sublattice {v ∈ L : Mv = v} for an n×n integer matrix M acting
// on column vectors of the ambient space, LLL-reduced. A zero lattice is reported
// as (nil, nil).
func Fixed(l *Lattice, m [][]int64) (*Lattice, error) {
	n := l.Dim()
	if len(l.Basis) == 0 || len(m) != n {
		return nil, latticeErrorf("Fixed", ErrShape)
	}
	// y·B·(M−I)^T = 0
	a := NewIntMatrix(len(l.Basis), n)
	tmp := new(big.Int)
	for i, b := range l.Basis {
		for c := 0; c < n; c++ {
			if len(m[c]) != n {
				return nil, latticeErrorf("Fixed", ErrShape)
			}
			for j := 0; j < n; j++ {
				coef := m[c][j]
				if c == j {
					coef--
				}
				if coef != 0 {
					a[i][c].Add(a[i][c], tmp.Mul(b[j], big.NewInt(coef)))
				}
			}
		}
	}
	ker := IntegerKernel(a)
	if len(ker) == 0 {
		return nil, nil
	}
	basis := mulInt(ker, l.Basis)
	fixed := &Lattice{Basis: basis, Scale: l.Scale}
	if _, err := fixed.Gram(); err != nil {
		return nil, latticeErrorf("Fixed", err)
	}

	return LLL(fixed)
}

// Preserves reports whether M (acting on ambient column vectors) maps l into itself.
func (l *Lattice) Preserves(m [][]int64) bool {
	n := l.Dim()
	if len(l.Basis) == 0 || len(m) != n {
		return false
	}
	rows := l.Basis.Clone()
	tmp := new(big.Int)
	for _, b := range l.Basis {
		img := make([]*big.Int, n)
		for c := 0; c < n; c++ {
			if len(m[c]) != n {
				return false
			}
			img[c] = new(big.Int)
			for j, v := range m[c] {
				if v != 0 {
					img[c].Add(img[c], tmp.Mul(big.NewInt(v), b[j]))
				}
			}
		}
		rows = append(rows, img)
	}

	return sameIndex(HNF(l.Basis), HNF(rows))
}

// OrthogonalSum returns the Gram-only lattice a ⊕ b.
func OrthogonalSum(a, b *Lattice) (*Lattice, error) {
	ga, err := a.Gram()
	if err != nil {
		return nil, err
	}
	gb, err := b.Gram()
	if err != nil {
		return nil, err
	}
	n := len(ga) + len(gb)
	g := NewIntMatrix(n, n)
	for i := range ga {
		for j := range ga {
			g[i][j].Set(ga[i][j])
		}
	}
	off := len(ga)
	for i := range gb {
		for j := range gb {
			g[off+i][off+j].Set(gb[i][j])
		}
	}

	return &Lattice{Scale: 1, gram: g}, nil
}

// Vector returns the ambient coordinates of Σ y_i b_i.
func (l *Lattice) Vector(y []int64) ([]*big.Int, error) {
	if len(l.Basis) == 0 || len(y) != len(l.Basis) {
		return nil, latticeErrorf("Vector", ErrShape)
	}
	out := make([]*big.Int, l.Dim())
	tmp := new(big.Int)
	for c := range out {
		out[c] = new(big.Int)
		for i, b := range l.Basis {
			out[c].Add(out[c], tmp.Mul(big.NewInt(y[i]), b[c]))
		}
	}

	return out, nil
}

// Contains reports whether a codeword, read as a 0/1 vector, lies in l.
// It is a cheap sanity check for Construction A lattices.
func (l *Lattice) Contains(w gf2.Word) bool {
	if len(l.Basis) == 0 {
		return false
	}
	v := NewIntMatrix(1, l.Dim())
	for i := 0; i < l.Dim(); i++ {
		if w.Has(i) {
			v[0][i].SetInt64(1)
		}
	}
	rows := append(l.Basis.Clone(), v[0])

	return sameIndex(HNF(l.Basis), HNF(rows))
}

func (l *Lattice) String() string {
	d, err := l.Det()
	if err != nil {
		return fmt.Sprintf("lattice(rank %d, %v)", l.Rank(), err)
	}

	return fmt.Sprintf("lattice(rank %d, det %s)", l.Rank(), d)
}

func sameIndex(a, b IntMatrix) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j].Cmp(b[i][j]) != 0 {
				return false
			}
		}
	}

	return true
}

func dot(dst *big.Int, x, y []*big.Int) *big.Int {
	dst.SetInt64(0)
	tmp := new(big.Int)
	for i := range x {
		dst.Add(dst, tmp.Mul(x[i], y[i]))
	}

	return dst
}

func mulInt(a, b IntMatrix) IntMatrix {
	out := NewIntMatrix(len(a), b.cols())
	tmp := new(big.Int)
	for i := range a {
		for k := range b {
			if a[i][k].Sign() == 0 {
				continue
			}
			for j := range b[k] {
				out[i][j].Add(out[i][j], tmp.Mul(a[i][k], b[k][j]))
			}
		}
	}

	return out
}

// bareiss computes an integer determinant by fraction-free elimination.
// It overwrites m.
func bareiss(m IntMatrix) *big.Int {
	n := len(m)
	if n == 0 {
		return big.NewInt(1)
	}
	sign := 1
	prev := big.NewInt(1)
	t1, t2 := new(big.Int), new(big.Int)
	for k := 0; k < n-1; k++ {
		if m[k][k].Sign() == 0 {
			p := -1
			for i := k + 1; i < n; i++ {
				if m[i][k].Sign() != 0 {
					p = i
					break
				}
			}
			if p < 0 {
				return new(big.Int)
			}
			m[k], m[p] = m[p], m[k]
			sign = -sign
		}
		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				t1.Mul(m[i][j], m[k][k])
				t2.Mul(m[i][k], m[k][j])
				m[i][j].Sub(t1, t2)
				m[i][j].Quo(m[i][j], prev)
			}
		}
		prev = m[k][k]
	}
	d := new(big.Int).Set(m[n-1][n-1])
	if sign < 0 {
		d.Neg(d)
	}

	return d
}
