// SPDX-License-Identifier: MIT

package code

import (
	"fmt"

	"github.com/katalvlaran/codeforms/gf2"
	"github.com/katalvlaran/codeforms/perm"
)

// Strategy selects how lattice automorphisms are enumerated.
type Strategy int

const (
	// MonomialSubgroup: L_C may have roots beyond ±2e_i/√2, so the monomial group
	// 2^N:Aut(C) is only a subgroup of Aut(L_C).
	MonomialSubgroup Strategy = iota
	// FrameComplete: minimum weight > 4, the 2N frame vectors are the only norm-2
	// vectors and Aut(L_C) = 2^N:Aut(C).
	FrameComplete
)

func (s Strategy) String() string {
	if s == FrameComplete {
		return "frame-complete"
	}

	return "monomial-subgroup"
}

// Code is a binary linear code of length N ≤ 64.
type Code struct {
	Name string
	N    int

	gen    *gf2.Matrix // reduced, independent rows
	pivots []int
	known  []perm.Perm

	dist []int // weight distribution, lazily filled
}

// New builds the code spanned by rows; dependent rows are dropped.
func New(name string, n int, rows ...gf2.Word) (*Code, error) {
	if n <= 0 || n > gf2.MaxBits {
		return nil, codeErrorf("New", ErrLength)
	}
	for _, r := range rows {
		if r&^gf2.Mask(n) != 0 {
			return nil, codeErrorf("New", ErrLength)
		}
	}
	m, err := gf2.NewMatrix(n, rows...)
	if err != nil {
		return nil, codeErrorf("New", err)
	}
	red, piv := m.RREF()
	if len(red.Rows) == 0 {
		return nil, codeErrorf("New", ErrEmpty)
	}

	return &Code{Name: name, N: n, gen: red, pivots: piv}, nil
}

// Parse builds a code from row literals such as "11110000" (coordinate 1 first).
func Parse(name string, literals ...string) (*Code, error) {
	if len(literals) == 0 {
		return nil, codeErrorf("Parse", ErrEmpty)
	}
	var (
		rows []gf2.Word
		n    int
	)
	for i, lit := range literals {
		w, width, err := gf2.Parse(lit)
		if err != nil {
			return nil, codeErrorf("Parse", err)
		}
		if i > 0 && width != n {
			return nil, codeErrorf("Parse", fmt.Errorf("%w: row %d has %d bits, want %d", ErrLength, i+1, width, n))
		}
		n = width
		rows = append(rows, w)
	}

	return New(name, n, rows...)
}

// Dim returns k.
func (c *Code) Dim() int { return len(c.gen.Rows) }

// Rows returns the reduced generator rows.
func (c *Code) Rows() []gf2.Word {
	out := make([]gf2.Word, len(c.gen.Rows))
	copy(out, c.gen.Rows)

	return out
}

// Generator returns the reduced generator matrix.
func (c *Code) Generator() *gf2.Matrix { return c.gen.Clone() }

// Contains reports whether w is a codeword.
func (c *Code) Contains(w gf2.Word) bool {
	if w&^gf2.Mask(c.N) != 0 {
		return false
	}
	for i, p := range c.pivots {
		if w.Has(p) {
			w ^= c.gen.Rows[i]
		}
	}

	return w == 0
}

// Each visits every codeword; returning false stops early.
func (c *Code) Each(visit func(gf2.Word) bool) error {
	return c.gen.Span(visit)
}

// Codewords returns all 2^k codewords.
func (c *Code) Codewords() ([]gf2.Word, error) {
	out := make([]gf2.Word, 0, 1<<uint(min(c.Dim(), gf2.MaxSpanDim)))
	err := c.Each(func(w gf2.Word) bool {
		out = append(out, w)
		return true
	})
	if err != nil {
		return nil, codeErrorf("Codewords", err)
	}

	return out, nil
}

// WeightDistribution returns A_0..A_N.
func (c *Code) WeightDistribution() ([]int, error) {
	if c.dist != nil {
		return c.dist, nil
	}
	dist := make([]int, c.N+1)
	err := c.Each(func(w gf2.Word) bool {
		dist[w.Weight()]++
		return true
	})
	if err != nil {
		return nil, codeErrorf("WeightDistribution", err)
	}
	c.dist = dist

	return dist, nil
}

// MinWeight returns the least non-zero weight.
func (c *Code) MinWeight() (int, error) {
	dist, err := c.WeightDistribution()
	if err != nil {
		return 0, err
	}
	for w := 1; w <= c.N; w++ {
		if dist[w] > 0 {
			return w, nil
		}
	}

	return 0, codeErrorf("MinWeight", ErrEmpty)
}

// IsSelfOrthogonal reports whether C ⊆ C^⊥.
func (c *Code) IsSelfOrthogonal() bool {
	for i, a := range c.gen.Rows {
		for _, b := range c.gen.Rows[i:] {
			if gf2.Dot(a, b) {
				return false
			}
		}
	}

	return true
}

// IsSelfDual reports whether C = C^⊥.
func (c *Code) IsSelfDual() bool { return 2*c.Dim() == c.N && c.IsSelfOrthogonal() }

// IsDoublyEven reports whether every codeword weight is divisible by 4. For a
// self-orthogonal code it is enough to check the generators.
func (c *Code) IsDoublyEven() bool {
	for _, r := range c.gen.Rows {
		if r.Weight()%4 != 0 {
			return false
		}
	}

	return c.IsSelfOrthogonal()
}

// Validate checks the Construction A preconditions: self-dual and doubly even, so
// L_C is even unimodular.
func (c *Code) Validate() error {
	if !c.IsSelfDual() {
		return codeErrorf("Validate", ErrNotSelfDual)
	}
	if !c.IsDoublyEven() {
		return codeErrorf("Validate", ErrNotDoublyEven)
	}

	return nil
}

// Support returns the 1-based positions of w.
func Support(w gf2.Word) []int {
	s := w.Support()
	for i := range s {
		s[i]++
	}

	return s
}

// IsAutomorphism reports whether p maps C onto itself.
func (c *Code) IsAutomorphism(p perm.Perm) bool {
	if len(p) != c.N {
		return false
	}
	for _, r := range c.gen.Rows {
		if !c.Contains(p.Apply(r)) {
			return false
		}
	}

	return true
}

// Strategy picks FrameComplete for minimum weight > 4.
func (c *Code) Strategy() (Strategy, error) {
	d, err := c.MinWeight()
	if err != nil {
		return MonomialSubgroup, err
	}
	if d > 4 {
		return FrameComplete, nil
	}

	return MonomialSubgroup, nil
}

// String summarises the code as "name [n,k]".
func (c *Code) String() string {
	return fmt.Sprintf("%s [%d,%d]", c.Name, c.N, c.Dim())
}
