// SPDX-License-Identifier: MIT

// Package assemble turns an orbit classification into q-series: the theta series of
// the fixed sublattice and the eta product of the frame shape.
//
// A fixed vector of L_C supported on an untwisted orbit O of length ℓ is m·f_O with
// f_O = Σ ±e_x, of norm m²ℓ/2, so it contributes q^{ℓm²/4}. Summing over even m gives
// θ3(q^ℓ), over odd m gives θ2(q^ℓ). Twisted orbits carry no fixed vector. The parity
// pattern of (m_O) must be a word of the orbit code D = {d : ∪_{O∈d} O ∈ C}, hence
//
//	θ_{L^H} = Σ_{d∈D} ∏_{O∈d} Odd(O) ∏_{O∉d} Even(O).
package assemble

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/codeforms/code"
	"github.com/katalvlaran/codeforms/frame"
	"github.com/katalvlaran/codeforms/gf2"
	"github.com/katalvlaran/codeforms/lattice"
	"github.com/katalvlaran/codeforms/orbit"
	"github.com/katalvlaran/codeforms/qseries"
)

var (
	// ErrLength is returned when a classification and a code disagree on N.
	ErrLength = errors.New("assemble: classification length differs from code length")

	// ErrSubcode is returned when a filter basis is not over the untwisted orbits.
	ErrSubcode = errors.New("assemble: subcode width mismatch")
)

func assembleErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Piece is one theta factor an orbit can contribute.
type Piece int

const (
	PieceZero   Piece = iota // 0
	PieceOne                 // 1
	PieceTheta3              // θ3(q^ℓ)
	PieceTheta2              // θ2(q^ℓ)
)

// Factor is the contribution of one orbit of a given type: its theta factor for an
// even and an odd coefficient, and its frame-shape factor.
type Factor struct {
	Even  Piece
	Odd   Piece
	Frame func(l int) frame.Shape
}

func untwistedFrame(l int) frame.Shape { return frame.Shape{l: 1} }

func twistedFrame(l int) frame.Shape { return frame.Shape{2 * l: 1, l: -1} }

// Factors is the dispatch table from orbit type to contribution. TypeIV orbits are
// exactly the twisted ones.
var Factors = map[orbit.Type]Factor{
	orbit.TypeI:   {Even: PieceTheta3, Odd: PieceTheta2, Frame: untwistedFrame},
	orbit.TypeII:  {Even: PieceTheta3, Odd: PieceTheta2, Frame: untwistedFrame},
	orbit.TypeIII: {Even: PieceTheta3, Odd: PieceTheta2, Frame: untwistedFrame},
	orbit.TypeIV:  {Even: PieceOne, Odd: PieceZero, Frame: twistedFrame},
}

// ThetaBasis selects how θ2 and θ3 are expanded.
type ThetaBasis int

const (
	// Direct sums the lattice series Σ q^{ℓn²}.
	Direct ThetaBasis = iota
	// EtaIdentity goes through the Jacobi theta–eta identities.
	EtaIdentity
)

func (b ThetaBasis) String() string {
	if b == EtaIdentity {
		return "eta-identity"
	}

	return "direct"
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithThetaBasis picks the θ2/θ3 expansion.
func WithThetaBasis(b ThetaBasis) Option {
	return func(a *Assembler) { a.basis = b }
}

type pieceKey struct {
	p Piece
	l int
}

// Assembler caches theta pieces for one ring. It is not safe for concurrent use.
type Assembler struct {
	ring  *qseries.Ring
	basis ThetaBasis
	cache map[pieceKey]*qseries.Series
}

// New returns an Assembler over r.
func New(r *qseries.Ring, opts ...Option) *Assembler {
	a := &Assembler{ring: r, cache: map[pieceKey]*qseries.Series{}}
	for _, fn := range opts {
		fn(a)
	}

	return a
}

// Ring returns the series ring.
func (a *Assembler) Ring() *qseries.Ring { return a.ring }

// Piece returns the factor p for an orbit of length l over denominator 4.
func (a *Assembler) Piece(p Piece, l int) (*qseries.Series, error) {
	k := pieceKey{p, l}
	if s, ok := a.cache[k]; ok {
		return s, nil
	}
	var (
		s   *qseries.Series
		err error
	)
	switch {
	case p == PieceZero:
		s = a.ring.Zero(4)
	case p == PieceOne:
		s, err = a.ring.One().Refine(4)
	case a.basis == EtaIdentity && p == PieceTheta3:
		if s, err = a.ring.ThetaFromEta(qseries.Jacobi3, l); err == nil {
			s, err = s.Refine(4)
		}
	case a.basis == EtaIdentity:
		s, err = a.ring.ThetaFromEta(qseries.Jacobi2, l)
	case p == PieceTheta3:
		s, err = a.ring.Theta3(l).Refine(4)
	default:
		s = a.ring.Theta2(l)
	}
	if err != nil {
		return nil, assembleErrorf("Piece", err)
	}
	a.cache[k] = s

	return s, nil
}

// Frame reads the frame shape of a cyclic group off its orbit types.
func Frame(cl *orbit.Classification) frame.Shape {
	s := frame.Shape{}
	for _, o := range cl.Orbits {
		for l, r := range Factors[o.Type()].Frame(o.Len()) {
			s[l] += r
			if s[l] == 0 {
				delete(s, l)
			}
		}
	}

	return s
}

// EtaProduct returns η_g for the cyclic group classified by cl.
func (a *Assembler) EtaProduct(cl *orbit.Classification) (qseries.Expansion, error) {
	e, err := Frame(cl).EtaProduct(a.ring)
	if err != nil {
		return qseries.Expansion{}, assembleErrorf("EtaProduct", err)
	}

	return e, nil
}

// OrbitCode returns a basis of D over the untwisted orbits of cl (bit j = the j-th
// entry of cl.Untwisted()). Since C is self-dual, d ∈ D iff every generator row meets
// ∪_{O∈d} O evenly.
func OrbitCode(c *code.Code, cl *orbit.Classification) (*gf2.Matrix, error) {
	if cl.N != c.N {
		return nil, assembleErrorf("OrbitCode", ErrLength)
	}
	un := cl.Untwisted()
	if len(un) == 0 {
		return &gf2.Matrix{}, nil
	}
	rows := make([]gf2.Word, 0, c.Dim())
	for _, h := range c.Rows() {
		var r gf2.Word
		for j, o := range un {
			if (h & o.Mask()).Weight()%2 == 1 {
				r |= gf2.Bit(j)
			}
		}
		rows = append(rows, r)
	}
	a, err := gf2.NewMatrix(len(un), rows...)
	if err != nil {
		return nil, assembleErrorf("OrbitCode", err)
	}

	return gf2.NewMatrix(len(un), a.Kernel()...)
}

// Theta returns θ_{L^H} for the group classified by cl.
func (a *Assembler) Theta(c *code.Code, cl *orbit.Classification) (*qseries.Series, error) {
	d, err := OrbitCode(c, cl)
	if err != nil {
		return nil, assembleErrorf("Theta", err)
	}

	return a.ThetaOver(cl, d)
}

// ThetaOver sums the theta products over the span of sub, a set of independent words
// of the orbit code. Words are grouped by their orbit-length profile so every distinct
// product is expanded once.
//
// Implementation:
//   - Stage 1: walk span(sub) in Gray-code order and count profiles.
//   - Stage 2: expand each profile as ∏ piece^count and add it with its multiplicity.
//   - Stage 3: collapse to integral exponents; a survivor at q^{k/4} is an error.
func (a *Assembler) ThetaOver(cl *orbit.Classification, sub *gf2.Matrix) (*qseries.Series, error) {
	un := cl.Untwisted()
	if sub.Cols != len(un) {
		return nil, assembleErrorf("ThetaOver", ErrSubcode)
	}
	// fixed part: twisted orbits always take their Even piece
	base := profile{}
	for _, o := range cl.Orbits {
		if o.Twisted {
			base.add(Factors[o.Type()].Even, o.Len())
		}
	}

	counts := map[string]int64{}
	profiles := map[string]profile{}
	err := sub.Span(func(d gf2.Word) bool {
		p := base.clone()
		for j, o := range un {
			f := Factors[o.Type()]
			if d.Has(j) {
				p.add(f.Odd, o.Len())
			} else {
				p.add(f.Even, o.Len())
			}
		}
		k := p.key()
		if _, ok := profiles[k]; !ok {
			profiles[k] = p
		}
		counts[k]++

		return true
	})
	if err != nil {
		return nil, assembleErrorf("ThetaOver", err)
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	sum := a.ring.Zero(4)
	for _, k := range keys {
		term, err := a.expand(profiles[k])
		if err != nil {
			return nil, assembleErrorf("ThetaOver", err)
		}
		if sum, err = sum.Add(term.Scale(counts[k])); err != nil {
			return nil, assembleErrorf("ThetaOver", err)
		}
	}
	out, err := sum.Collapse()
	if err != nil {
		return nil, assembleErrorf("ThetaOver", err)
	}

	return out, nil
}

func (a *Assembler) expand(p profile) (*qseries.Series, error) {
	out, err := a.ring.One().Refine(4)
	if err != nil {
		return nil, err
	}
	for _, k := range p.sorted() {
		piece, err := a.Piece(k.p, k.l)
		if err != nil {
			return nil, err
		}
		pw, err := piece.Pow(p[k])
		if err != nil {
			return nil, err
		}
		if out, err = out.Mul(pw); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// FixedLattice returns an LLL-reduced basis of L^H spanned by 2f_O for every untwisted
// orbit and Σ_{O∈d} f_O for every basis word d of the orbit code. A group without
// untwisted orbits has the zero fixed lattice, reported as (nil, nil).
func FixedLattice(c *code.Code, cl *orbit.Classification) (*lattice.Lattice, error) {
	d, err := OrbitCode(c, cl)
	if err != nil {
		return nil, assembleErrorf("FixedLattice", err)
	}
	un := cl.Untwisted()
	if len(un) == 0 {
		return nil, nil
	}
	fixed := make([][]int64, len(un))
	for j, o := range un {
		fixed[j] = o.FixedVector(c.N)
	}
	gens := make([][]int64, 0, len(un)+len(d.Rows))
	for j := range un {
		v := make([]int64, c.N)
		for i, x := range fixed[j] {
			v[i] = 2 * x
		}
		gens = append(gens, v)
	}
	for _, w := range d.Rows {
		v := make([]int64, c.N)
		for j := range un {
			if !w.Has(j) {
				continue
			}
			for i, x := range fixed[j] {
				v[i] += x
			}
		}
		gens = append(gens, v)
	}
	l, err := lattice.New(lattice.HNF(lattice.FromInt64(gens)), 2)
	if err != nil {
		return nil, assembleErrorf("FixedLattice", err)
	}

	return lattice.LLL(l)
}

// profile counts pieces by (piece, length).
type profile map[pieceKey]int

func (p profile) add(pc Piece, l int) { p[pieceKey{pc, l}]++ }

func (p profile) clone() profile {
	out := make(profile, len(p))
	for k, v := range p {
		out[k] = v
	}

	return out
}

func (p profile) sorted() []pieceKey {
	keys := make([]pieceKey, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].p != keys[j].p {
			return keys[i].p < keys[j].p
		}

		return keys[i].l < keys[j].l
	})

	return keys
}

func (p profile) key() string {
	var sb strings.Builder
	for _, k := range p.sorted() {
		sb.WriteString(strconv.Itoa(int(k.p)))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(k.l))
		sb.WriteByte('^')
		sb.WriteString(strconv.Itoa(p[k]))
		sb.WriteByte(' ')
	}

	return sb.String()
}
