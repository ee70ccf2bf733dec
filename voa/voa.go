// SPDX-License-Identifier: MIT

// Package voa computes characters Tr(ĝ^k | V_L) of lifts of lattice automorphisms to the
// lattice vertex operator algebra.
//
// A lift ĝ of g (order n) has order 2n exactly when ⟨x, g^{n/2}x⟩ is odd for some
// x ∈ L. For even k the trace of ĝ^k is (2θ_K − θ_{L^{g^k}})/η_{g^k}, where K is the
// index-2 sublattice of L^{g^k} on which ⟨x, g^{k/2}x⟩ is even. Otherwise, the trace
// is the plain eta quotient θ_{L^{g^k}}/η_{g^k}.
package voa

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/katalvlaran/codeforms/assemble"
	"github.com/katalvlaran/codeforms/code"
	"github.com/katalvlaran/codeforms/gf2"
	"github.com/katalvlaran/codeforms/lattice"
	"github.com/katalvlaran/codeforms/orbit"
	"github.com/katalvlaran/codeforms/perm"
	"github.com/katalvlaran/codeforms/qseries"
	"github.com/katalvlaran/codeforms/quotient"
)

var (
	// ErrNoOrderDoubling is the umbrella for every reason the kernel construction does
	// not apply; Character falls back to the plain eta quotient on it.
	ErrNoOrderDoubling = errors.New("voa: no order doubling")

	// ErrOddOrder: the automorphism has odd order.
	ErrOddOrder = fmt.Errorf("%w: odd order", ErrNoOrderDoubling)

	// ErrOddPower: the requested power is odd.
	ErrOddPower = fmt.Errorf("%w: odd power", ErrNoOrderDoubling)

	// ErrTrivialCharacter: ⟨x, g^{k/2}x⟩ is even on the whole fixed lattice.
	ErrTrivialCharacter = fmt.Errorf("%w: trivial parity character", ErrNoOrderDoubling)

	// ErrBadPower is returned for k ≤ 0.
	ErrBadPower = errors.New("voa: power must be positive")
)

func voaErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// OrderDoubles reports whether lifts of g have twice its order, testing the parity of
// ⟨b, g^{n/2}b⟩ on a basis of l. Odd n yields ErrOddOrder.
func OrderDoubles(l *lattice.Lattice, g perm.Signed) (bool, error) {
	n := g.Order()
	if n%2 == 1 {
		return false, voaErrorf("OrderDoubles", ErrOddOrder)
	}
	if len(l.Basis) == 0 || l.Dim() != g.Degree() {
		return false, voaErrorf("OrderDoubles", lattice.ErrShape)
	}
	h := g.Pow(n / 2)
	scale := big.NewInt(l.Scale)
	v := make([]int64, l.Dim())
	for _, b := range l.Basis {
		for i, x := range b {
			if !x.IsInt64() {
				return false, voaErrorf("OrderDoubles", lattice.ErrTooLarge)
			}
			v[i] = x.Int64()
		}
		ip := new(big.Int).Quo(big.NewInt(dot(v, h.ApplyInts(v))), scale)
		if ip.Bit(0) == 1 {
			return true, nil
		}
	}

	return false, nil
}

// Kernel is the index-2 sublattice K ⊂ L^{g^k} of a doubling lift, described through the
// orbit code of g^k.
type Kernel struct {
	Power          int
	Element        perm.Signed
	Classification *orbit.Classification
	// OrbitCode is a basis of D for g^k.
	OrbitCode *gf2.Matrix
	// Character is χ(u) = ⟨α_d, g^{k/2}α_d⟩ mod 2 with d = Σ u_i D_i.
	Character *gf2.Form
	// Sub is a basis of {d ∈ D : χ(d) = 0} over the untwisted orbits.
	Sub *gf2.Matrix
}

// NewKernel builds the kernel sublattice for ĝ^k.
//
// Implementation:
//   - Stage 1: preconditions; odd order → ErrOddOrder, odd k → ErrOddPower.
//   - Stage 2: orbit code D of g^k and the parity χ on its basis coordinates,
//     recovered as a GF(2) form by polarisation.
//   - Stage 3: solve χ = 0; a zero form → ErrTrivialCharacter, a quadratic part
//     → gf2.ErrNonLinear (unexpected, propagated as is).
func NewKernel(c *code.Code, g perm.Signed, k int) (*Kernel, error) {
	if k <= 0 {
		return nil, voaErrorf("NewKernel", ErrBadPower)
	}
	if g.Order()%2 == 1 {
		return nil, voaErrorf("NewKernel", ErrOddOrder)
	}
	if k%2 == 1 {
		return nil, voaErrorf("NewKernel", ErrOddPower)
	}
	gk := g.Pow(k)
	h := g.Pow(k / 2)
	cl := orbit.ClassifyElement(gk)
	d, err := assemble.OrbitCode(c, cl)
	if err != nil {
		return nil, voaErrorf("NewKernel", err)
	}
	un := cl.Untwisted()
	fixed := make([][]int64, len(un))
	for j, o := range un {
		fixed[j] = o.FixedVector(c.N)
	}
	toOrbits := func(u gf2.Word) gf2.Word {
		var w gf2.Word
		for i, r := range d.Rows {
			if u.Has(i) {
				w ^= r
			}
		}

		return w
	}
	chi := func(u gf2.Word) bool {
		alpha := make([]int64, c.N)
		w := toOrbits(u)
		for j := range un {
			if !w.Has(j) {
				continue
			}
			for i, x := range fixed[j] {
				alpha[i] += x
			}
		}
		// ⟨x, y⟩ = x·y/2 on L_C
		return (dot(alpha, h.ApplyInts(alpha))/2)%2 != 0
	}
	form, err := gf2.Polarize(len(d.Rows), chi)
	if err != nil {
		return nil, voaErrorf("NewKernel", err)
	}
	if form.IsZero() {
		return nil, voaErrorf("NewKernel", ErrTrivialCharacter)
	}
	zeros, ok, err := form.Zeros()
	if err != nil {
		return nil, voaErrorf("NewKernel", err)
	}
	if !ok {
		return nil, voaErrorf("NewKernel", gf2.ErrNonLinear)
	}
	sub := &gf2.Matrix{Cols: d.Cols, Rows: make([]gf2.Word, len(zeros))}
	for i, u := range zeros {
		sub.Rows[i] = toOrbits(u)
	}

	return &Kernel{
		Power:          k,
		Element:        g,
		Classification: cl,
		OrbitCode:      d,
		Character:      form,
		Sub:            sub,
	}, nil
}

// Character is Tr(ĝ^k | V_L) as an expansion.
type Character struct {
	Power int
	Value qseries.Expansion
	// ThetaK is θ_K when the kernel construction applied.
	ThetaK *qseries.Series
	// Fallback records that the plain eta quotient was used, with the reason.
	Fallback bool
	Reason   error
}

// Trace computes the character of ĝ^k. Failures in the ErrNoOrderDoubling family
// select the plain eta quotient; any other error is returned.
func Trace(a *assemble.Assembler, c *code.Code, g perm.Signed, k int) (*Character, error) {
	cl := orbit.ClassifyElement(g.Pow(k))
	theta, err := a.Theta(c, cl)
	if err != nil {
		return nil, voaErrorf("Trace", err)
	}
	eta, err := a.EtaProduct(cl)
	if err != nil {
		return nil, voaErrorf("Trace", err)
	}

	ker, err := NewKernel(c, g, k)
	switch {
	case errors.Is(err, ErrNoOrderDoubling):
		q, qerr := quotient.Evaluate(theta, eta)
		if qerr != nil {
			return nil, voaErrorf("Trace", qerr)
		}

		return &Character{Power: k, Value: q, Fallback: true, Reason: err}, nil
	case err != nil:
		return nil, voaErrorf("Trace", err)
	}

	thetaK, err := a.ThetaOver(ker.Classification, ker.Sub)
	if err != nil {
		return nil, voaErrorf("Trace", err)
	}
	num, err := thetaK.Scale(2).Sub(theta)
	if err != nil {
		return nil, voaErrorf("Trace", err)
	}
	q, err := quotient.Evaluate(num, eta)
	if err != nil {
		return nil, voaErrorf("Trace", err)
	}

	return &Character{Power: k, Value: q, ThetaK: thetaK}, nil
}

// Characters lists the characters of ĝ^k for k = 1..order(ĝ), where order(ĝ) is 2n
// when g doubles and n otherwise. It also returns whether doubling occurred.
func Characters(a *assemble.Assembler, c *code.Code, l *lattice.Lattice, g perm.Signed) ([]*Character, bool, error) {
	n := g.Order()
	doubles, err := OrderDoubles(l, g)
	if err != nil && !errors.Is(err, ErrNoOrderDoubling) {
		return nil, false, voaErrorf("Characters", err)
	}
	order := n
	if doubles {
		order = 2 * n
	}
	out := make([]*Character, 0, order)
	for k := 1; k <= order; k++ {
		ch, err := Trace(a, c, g, k)
		if err != nil {
			return nil, doubles, voaErrorf("Characters", err)
		}
		out = append(out, ch)
	}

	return out, doubles, nil
}

func dot(x, y []int64) int64 {
	var s int64
	for i := range x {
		s += x[i] * y[i]
	}

	return s
}
