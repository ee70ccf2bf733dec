// SPDX-License-Identifier: MIT

package engine

import (
	"math/big"

	"github.com/katalvlaran/codeforms/code"
	"github.com/katalvlaran/codeforms/frame"
	"github.com/katalvlaran/codeforms/gf2"
	"github.com/katalvlaran/codeforms/lattice"
	"github.com/katalvlaran/codeforms/orbit"
	"github.com/katalvlaran/codeforms/perm"
	"github.com/katalvlaran/codeforms/qseries"
)

// Lattice is the lattice strategy.
type Lattice struct {
	code       *code.Code
	ring       *qseries.Ring
	lat        *lattice.Lattice
	maxVectors int
}

var _ Engine = (*Lattice)(nil)

// NewLattice validates c, builds L_C and returns its lattice-strategy engine.
func NewLattice(c *code.Code, opts ...Option) (*Lattice, error) {
	if err := c.Validate(); err != nil {
		return nil, engineErrorf("NewLattice", err)
	}
	o := gatherOptions(opts...)
	l, err := lattice.FromCode(c)
	if err != nil {
		return nil, engineErrorf("NewLattice", err)
	}

	return &Lattice{code: c, ring: o.ring, lat: l, maxVectors: o.maxVectors}, nil
}

// Name implements Engine.
func (e *Lattice) Name() string { return "lattice" }

// Code implements Engine.
func (e *Lattice) Code() *code.Code { return e.code }

// Ring implements Engine.
func (e *Lattice) Ring() *qseries.Ring { return e.ring }

// Lattice returns L_C.
func (e *Lattice) Lattice() *lattice.Lattice { return e.lat }

// Group returns 2^N:Aut(C) as a permutation group on the 2N vectors ±e_i: the lifts of
// Aut(C) generators together with every coordinate sign change.
func (e *Lattice) Group(opts ...code.SearchOption) (*perm.Group, error) {
	gens, err := e.code.AutGenerators(opts...)
	if err != nil {
		return nil, engineErrorf("Lattice.Group", err)
	}
	n := e.code.N
	lifts := make([]perm.Perm, 0, len(gens)+n)
	for _, p := range gens {
		lifts = append(lifts, perm.Plain(p).Lift())
	}
	for i := 0; i < n; i++ {
		lifts = append(lifts, perm.Signed{P: perm.Identity(n), Neg: gf2.Bit(i)}.Lift())
	}
	g, err := perm.NewGroup(2*n, lifts...)
	if err != nil {
		return nil, engineErrorf("Lattice.Group", err)
	}

	return g, nil
}

// Element implements Engine.
func (e *Lattice) Element(g perm.Signed) (*Invariant, error) {
	m := g.Matrix()
	if g.Degree() != e.code.N || !e.lat.Preserves(m) {
		return nil, engineErrorf("Lattice.Element", ErrNotAutomorphism)
	}
	cp, err := frame.CharPoly(bigMatrix(m))
	if err != nil {
		return nil, engineErrorf("Lattice.Element", err)
	}
	shape, err := frame.FromCharPoly(cp)
	if err != nil {
		return nil, engineErrorf("Lattice.Element", err)
	}
	inv := &Invariant{
		Element:        g,
		Order:          g.Order(),
		Classification: orbit.ClassifyElement(g),
		Frame:          shape,
	}
	if inv.Fixed, err = lattice.Fixed(e.lat, m); err != nil {
		return nil, engineErrorf("Lattice.Element", err)
	}
	if inv.Fixed == nil {
		inv.Theta = e.ring.One()
	} else if inv.Theta, err = lattice.ThetaSeries(e.ring, inv.Fixed, lattice.WithMaxVectors(e.maxVectors)); err != nil {
		return nil, engineErrorf("Lattice.Element", err)
	}
	if err = finish(e.ring, inv); err != nil {
		return nil, engineErrorf("Lattice.Element", err)
	}

	return inv, nil
}

func bigMatrix(m [][]int64) [][]*big.Int {
	a := make([][]*big.Int, len(m))
	for i, row := range m {
		a[i] = make([]*big.Int, len(row))
		for j, v := range row {
			a[i][j] = big.NewInt(v)
		}
	}

	return a
}
