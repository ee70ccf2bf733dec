// SPDX-License-Identifier: MIT

// Package orbit partitions coordinates into orbits of a group of signed permutations
// and classifies each orbit by type.
//
// An orbit O of H = ⟨gens⟩ is twisted when the subgroup admits no non-zero fixed vector
// supported on O: walking the Schreier graph from the smallest point, the sign forced
// on a point by one path disagrees with another. For a single element this is an odd
// number of negated coordinates on the cycle; when the negated set X is a union of
// orbits it is "O lies in X and |O| is odd".
//
// Types, for X a union of orbits (X is the negated set of every generator):
//
//	TypeI    O ⊄ X, odd length
//	TypeII   O ⊄ X, even length
//	TypeIII  O ⊆ X, even length
//	TypeIV   O ⊆ X, odd length (exactly the twisted orbits)
//
// When X cuts an orbit, the orbit is TypeIV if twisted and otherwise TypeI or TypeII
// by parity.
package orbit

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/codeforms/gf2"
	"github.com/katalvlaran/codeforms/perm"
)

// ErrDegree is returned when a generator does not act on n points.
var ErrDegree = errors.New("orbit: generator degree mismatch")

// Type is the orbit type.
type Type int

const (
	TypeI Type = iota + 1
	TypeII
	TypeIII
	TypeIV
)

// TypeOf returns the type of an orbit from its twist, whether it lies inside the
// negated set, and its length.
func TypeOf(twisted, inside bool, length int) Type {
	switch {
	case twisted:
		return TypeIV
	case inside && length%2 == 0:
		return TypeIII
	case length%2 == 1:
		return TypeI
	default:
		return TypeII
	}
}

func (t Type) String() string {
	switch t {
	case TypeI:
		return "I"
	case TypeII:
		return "II"
	case TypeIII:
		return "III"
	case TypeIV:
		return "IV"
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// Orbit is one block of the partition.
type Orbit struct {
	// Points in ascending order, 0-based.
	Points []int
	// Twisted: no non-zero fixed vector lives on the orbit.
	Twisted bool
	// Inside: every generator negates every point of the orbit.
	Inside bool
	// Signs marks the points where the fixed vector Σ ±e_x has coefficient -1; it is
	// meaningful only for untwisted orbits.
	Signs gf2.Word
}

// Len returns |O|.
func (o Orbit) Len() int { return len(o.Points) }

// Type returns the orbit type.
func (o Orbit) Type() Type { return TypeOf(o.Twisted, o.Inside, len(o.Points)) }

// Mask returns the support of the orbit as a word.
func (o Orbit) Mask() gf2.Word {
	var w gf2.Word
	for _, p := range o.Points {
		w |= gf2.Bit(p)
	}

	return w
}

// FixedVector returns the ±1 fixed vector of an untwisted orbit as an integer vector of
// length n, or nil for twisted orbits.
func (o Orbit) FixedVector(n int) []int64 {
	if o.Twisted {
		return nil
	}
	v := make([]int64, n)
	for _, p := range o.Points {
		v[p] = 1
		if o.Signs.Has(p) {
			v[p] = -1
		}
	}

	return v
}

// Classification is the ordered orbit partition of {0..N-1}.
type Classification struct {
	N      int
	Orbits []Orbit
}

// Classify partitions {0..n-1} into orbits of ⟨gens⟩.
//
// Implementation:
//   - BFS over the Schreier graph (edges x → σ(x) for every generator) from each unseen
//     point, in ascending order, propagating the fixed-vector sign c_{σ(x)} = s_x·c_x.
//   - An edge reaching an already signed point with the opposite sign twists the orbit.
//   - Orbits are sorted stably by length, ties keeping ascending smallest point.
//
// Complexity:
//   - O(n·|gens|) time, O(n) space.
func Classify(n int, gens ...perm.Signed) (*Classification, error) {
	for _, g := range gens {
		if g.Degree() != n {
			return nil, fmt.Errorf("Classify: %w", ErrDegree)
		}
	}

	var (
		seen = make([]bool, n)
		neg  = make([]bool, n)
		out  []Orbit
	)
	for start := 0; start < n; start++ {
		if seen[start] {
			continue
		}
		seen[start] = true
		queue := []int{start}
		twisted := false
		for q := 0; q < len(queue); q++ {
			x := queue[q]
			for _, g := range gens {
				y := g.P[x]
				want := neg[x] != g.Neg.Has(x)
				if !seen[y] {
					seen[y] = true
					neg[y] = want
					queue = append(queue, y)
					continue
				}
				if neg[y] != want {
					twisted = true
				}
			}
		}
		sort.Ints(queue)
		o := Orbit{Points: queue, Twisted: twisted, Inside: len(gens) > 0}
		for _, p := range queue {
			for _, g := range gens {
				if !g.Neg.Has(p) {
					o.Inside = false
				}
			}
		}
		if !twisted {
			for _, p := range queue {
				if neg[p] {
					o.Signs |= gf2.Bit(p)
				}
			}
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Len() < out[j].Len() })

	return &Classification{N: n, Orbits: out}, nil
}

// ClassifyElement classifies the cyclic group ⟨g⟩.
func ClassifyElement(g perm.Signed) *Classification {
	c, _ := Classify(g.Degree(), g)

	return c
}

// Types returns the orbit types in orbit order.
func (c *Classification) Types() []Type {
	out := make([]Type, len(c.Orbits))
	for i, o := range c.Orbits {
		out[i] = o.Type()
	}

	return out
}

// Lengths returns the orbit lengths in orbit order.
func (c *Classification) Lengths() []int {
	out := make([]int, len(c.Orbits))
	for i, o := range c.Orbits {
		out[i] = o.Len()
	}

	return out
}

// Untwisted returns the untwisted orbits in orbit order.
func (c *Classification) Untwisted() []Orbit {
	var out []Orbit
	for _, o := range c.Orbits {
		if !o.Twisted {
			out = append(out, o)
		}
	}

	return out
}

// Order returns the lcm of ℓ over untwisted and 2ℓ over twisted orbits; for a cyclic
// group this is the order of its generator.
func (c *Classification) Order() int {
	ord := 1
	for _, o := range c.Orbits {
		l := o.Len()
		if o.Twisted {
			l *= 2
		}
		ord = ord / gcd(ord, l) * l
	}

	return ord
}

// String renders e.g. "1:I 1:I 2:III 4:II".
func (c *Classification) String() string {
	parts := make([]string, len(c.Orbits))
	for i, o := range c.Orbits {
		parts[i] = fmt.Sprintf("%d:%s", o.Len(), o.Type())
	}

	return strings.Join(parts, " ")
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
