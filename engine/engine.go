// SPDX-License-Identifier: MIT

// Package engine computes the modular invariants of one automorphism ε_X σ of L_C.
//
// Two strategies implement the same Engine interface:
//   - Code works on codewords and orbit data (assemble), never touching lattice vectors
//     except to report the fixed lattice's rank and determinant.
//   - Lattice acts on a Z-basis of L_C, takes the fixed sublattice by an integer kernel,
//     enumerates it for the theta series and reads the frame shape off the
//     characteristic polynomial.
//
// Both must agree on every element; the tests check this.
package engine

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/katalvlaran/codeforms/code"
	"github.com/katalvlaran/codeforms/frame"
	"github.com/katalvlaran/codeforms/lattice"
	"github.com/katalvlaran/codeforms/orbit"
	"github.com/katalvlaran/codeforms/perm"
	"github.com/katalvlaran/codeforms/qseries"
	"github.com/katalvlaran/codeforms/quotient"
)

// ErrNotAutomorphism is returned for a signed permutation that does not preserve L_C.
var ErrNotAutomorphism = errors.New("engine: not an automorphism of the code lattice")

func engineErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Invariant collects everything computed for one element.
type Invariant struct {
	Element        perm.Signed
	Order          int
	Classification *orbit.Classification
	Frame          frame.Shape
	Theta          *qseries.Series
	EtaProduct     qseries.Expansion
	Quotient       qseries.Expansion
	// Fixed is nil when the fixed sublattice is zero.
	Fixed     *lattice.Lattice
	FixedRank int
	FixedDet  *big.Int
}

// Engine evaluates invariants of elements of Aut(L_C) of monomial form.
type Engine interface {
	Name() string
	Code() *code.Code
	Ring() *qseries.Ring
	Element(g perm.Signed) (*Invariant, error)
}

// finish fills the shared tail: eta product, quotient and fixed-lattice numbers.
func finish(r *qseries.Ring, inv *Invariant) error {
	eta, err := inv.Frame.EtaProduct(r)
	if err != nil {
		return err
	}
	inv.EtaProduct = eta
	if inv.Quotient, err = quotient.Evaluate(inv.Theta, eta); err != nil {
		return err
	}
	inv.FixedDet = big.NewInt(1)
	if inv.Fixed != nil {
		inv.FixedRank = inv.Fixed.Rank()
		if inv.FixedDet, err = inv.Fixed.Det(); err != nil {
			return err
		}
	}

	return nil
}

// Agree reports whether two invariants of the same element match on frame shape,
// theta series and fixed-lattice rank and determinant.
func Agree(a, b *Invariant) bool {
	return a.Frame.Equal(b.Frame) &&
		a.Theta.Equal(b.Theta) &&
		a.FixedRank == b.FixedRank &&
		a.FixedDet.Cmp(b.FixedDet) == 0
}
