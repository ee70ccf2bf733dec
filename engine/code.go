// SPDX-License-Identifier: MIT

package engine

import (
	"github.com/katalvlaran/codeforms/assemble"
	"github.com/katalvlaran/codeforms/code"
	"github.com/katalvlaran/codeforms/lattice"
	"github.com/katalvlaran/codeforms/orbit"
	"github.com/katalvlaran/codeforms/perm"
	"github.com/katalvlaran/codeforms/qseries"
)

// Code is the code strategy.
type Code struct {
	code *code.Code
	asm  *assemble.Assembler
}

var _ Engine = (*Code)(nil)

// NewCode validates c and returns its code-strategy engine.
func NewCode(c *code.Code, opts ...Option) (*Code, error) {
	if err := c.Validate(); err != nil {
		return nil, engineErrorf("NewCode", err)
	}
	o := gatherOptions(opts...)

	return &Code{code: c, asm: assemble.New(o.ring, assemble.WithThetaBasis(o.basis))}, nil
}

// Name implements Engine.
func (e *Code) Name() string { return "code" }

// Code implements Engine.
func (e *Code) Code() *code.Code { return e.code }

// Ring implements Engine.
func (e *Code) Ring() *qseries.Ring { return e.asm.Ring() }

// Assembler exposes the series assembler for callers building on the same cache.
func (e *Code) Assembler() *assemble.Assembler { return e.asm }

func (e *Code) check(g perm.Signed) error {
	if g.Degree() != e.code.N || !e.code.IsAutomorphism(g.P) {
		return ErrNotAutomorphism
	}

	return nil
}

// Element implements Engine.
func (e *Code) Element(g perm.Signed) (*Invariant, error) {
	if err := e.check(g); err != nil {
		return nil, engineErrorf("Code.Element", err)
	}
	cl := orbit.ClassifyElement(g)
	inv := &Invariant{Element: g, Order: g.Order(), Classification: cl, Frame: assemble.Frame(cl)}
	var err error
	if inv.Theta, err = e.asm.Theta(e.code, cl); err != nil {
		return nil, engineErrorf("Code.Element", err)
	}
	if inv.Fixed, err = assemble.FixedLattice(e.code, cl); err != nil {
		return nil, engineErrorf("Code.Element", err)
	}
	if err = finish(e.Ring(), inv); err != nil {
		return nil, engineErrorf("Code.Element", err)
	}

	return inv, nil
}

// SubgroupInvariant is the fixed-lattice data of a subgroup ⟨gens⟩.
type SubgroupInvariant struct {
	Generators     []perm.Signed
	Classification *orbit.Classification
	Theta          *qseries.Series
	Fixed          *lattice.Lattice
	FixedRank      int
}

// Subgroup returns θ_{L^H} for H = ⟨gens⟩.
func (e *Code) Subgroup(gens ...perm.Signed) (*SubgroupInvariant, error) {
	for _, g := range gens {
		if err := e.check(g); err != nil {
			return nil, engineErrorf("Code.Subgroup", err)
		}
	}
	cl, err := orbit.Classify(e.code.N, gens...)
	if err != nil {
		return nil, engineErrorf("Code.Subgroup", err)
	}
	th, err := e.asm.Theta(e.code, cl)
	if err != nil {
		return nil, engineErrorf("Code.Subgroup", err)
	}

	fixed, err := assemble.FixedLattice(e.code, cl)
	if err != nil {
		return nil, engineErrorf("Code.Subgroup", err)
	}

	return &SubgroupInvariant{
		Generators:     gens,
		Classification: cl,
		Theta:          th,
		Fixed:          fixed,
		FixedRank:      len(cl.Untwisted()),
	}, nil
}
