// SPDX-License-Identifier: MIT

// Package perm - stabilizer chains.
//
// Purpose:
//   - Turn a generating set into a base and strong generating set (Schreier–Sims).
//   - Answer Order, Contains, Elements and uniform Random from the chain.
//
// Conventions:
//   - Every element factors uniquely as g = u_{k-1}·…·u_0 (applied left to right),
//     where u_i is a transversal element of level i.
//   - Sifting strips levels from the top: g ← g·u_i^{-1} with u_i chosen by g(b_i).
//
// Determinism:
//   - Base points are the smallest moved points; transversals are built by BFS over
//     generators in insertion order. The same generators always give the same chain.
package perm

import (
	"math/big"
	"math/rand"
)

type level struct {
	point int
	gens  []Perm
	orbit []int // BFS order, orbit[0] == point
	trans []Perm
}

// Group is a permutation group of degree n held as a stabilizer chain.
type Group struct {
	n      int
	gens   []Perm
	strong []Perm
	levels []*level
}

// NewGroup runs Schreier–Sims on gens. An empty generating set yields the trivial group.
//
// Implementation:
//   - Stage 1: seed the base with a moved point of every generator not yet moving it.
//   - Stage 2: from the deepest level up, sift every Schreier generator u_x·s·u_{s(x)}^{-1}
//     through the levels below; a non-trivial residue becomes a new strong generator
//     (extending the base when it fixes all of it) and the scan restarts at its level.
//
// Complexity:
//   - Polynomial in n and |S|; fine for degrees up to a few hundred.
func NewGroup(n int, gens ...Perm) (*Group, error) {
	g := &Group{n: n}
	for _, p := range gens {
		if len(p) != n {
			return nil, permErrorf("NewGroup", ErrDegreeMismatch)
		}
		if _, err := New(p); err != nil {
			return nil, permErrorf("NewGroup", err)
		}
		if p.IsIdentity() {
			continue
		}
		g.gens = append(g.gens, p)
		if g.fixesBase(p) {
			g.extendBase(p)
		}
		g.strong = append(g.strong, p)
	}
	g.refilter()

	for i := len(g.levels) - 1; i >= 0; {
		if j, ok := g.checkLevel(i); !ok {
			i = j
			continue
		}
		i--
	}

	return g, nil
}

func (g *Group) fixesBase(p Perm) bool {
	for _, lv := range g.levels {
		if p[lv.point] != lv.point {
			return false
		}
	}

	return true
}

func (g *Group) extendBase(p Perm) {
	for x := 0; x < g.n; x++ {
		if p[x] != x {
			g.levels = append(g.levels, &level{point: x})
			return
		}
	}
}

// checkLevel verifies every Schreier generator of level i. On failure it records the
// new strong generator and returns the level to resume from.
func (g *Group) checkLevel(i int) (int, bool) {
	lv := g.levels[i]
	for _, x := range lv.orbit {
		ux := lv.trans[x]
		for _, s := range lv.gens {
			h := ux.Then(s).Then(lv.trans[s[x]].Inverse())
			r, j := g.sift(h, i+1)
			if r.IsIdentity() {
				continue
			}
			if j == len(g.levels) {
				g.extendBase(r)
			}
			g.strong = append(g.strong, r)
			g.refilter()

			return j, false
		}
	}

	return 0, true
}

// refilter recomputes level generators and transversals from the strong set.
func (g *Group) refilter() {
	for i, lv := range g.levels {
		lv.gens = lv.gens[:0]
		for _, s := range g.strong {
			fix := true
			for _, prev := range g.levels[:i] {
				if s[prev.point] != prev.point {
					fix = false
					break
				}
			}
			if fix {
				lv.gens = append(lv.gens, s)
			}
		}
		lv.buildTransversal(g.n)
	}
}

func (lv *level) buildTransversal(n int) {
	lv.trans = make([]Perm, n)
	lv.trans[lv.point] = Identity(n)
	lv.orbit = append(lv.orbit[:0], lv.point)
	for q := 0; q < len(lv.orbit); q++ {
		x := lv.orbit[q]
		for _, s := range lv.gens {
			y := s[x]
			if lv.trans[y] == nil {
				lv.trans[y] = lv.trans[x].Then(s)
				lv.orbit = append(lv.orbit, y)
			}
		}
	}
}

// sift strips levels start.. from p; it returns the residue and the level where
// stripping stopped (len(levels) when it went through).
func (g *Group) sift(p Perm, start int) (Perm, int) {
	for i := start; i < len(g.levels); i++ {
		lv := g.levels[i]
		y := p[lv.point]
		if lv.trans[y] == nil {
			return p, i
		}
		p = p.Then(lv.trans[y].Inverse())
	}

	return p, len(g.levels)
}

// Degree returns n.
func (g *Group) Degree() int { return g.n }

// Generators returns the non-identity input generators.
func (g *Group) Generators() []Perm { return g.gens }

// StrongGenerators returns the strong generating set.
func (g *Group) StrongGenerators() []Perm { return g.strong }

// Base returns the base points.
func (g *Group) Base() []int {
	out := make([]int, len(g.levels))
	for i, lv := range g.levels {
		out[i] = lv.point
	}

	return out
}

// Order returns |G| as the product of the basic orbit lengths.
func (g *Group) Order() *big.Int {
	out := big.NewInt(1)
	for _, lv := range g.levels {
		out.Mul(out, big.NewInt(int64(len(lv.orbit))))
	}

	return out
}

// Contains reports whether p lies in the group.
func (g *Group) Contains(p Perm) bool {
	if len(p) != g.n {
		return false
	}
	r, j := g.sift(p, 0)

	return j == len(g.levels) && r.IsIdentity()
}

// Orbit returns the orbit of x under the generators in BFS order.
func (g *Group) Orbit(x int) []int {
	seen := make([]bool, g.n)
	seen[x] = true
	out := []int{x}
	for q := 0; q < len(out); q++ {
		for _, s := range g.gens {
			if y := s[out[q]]; !seen[y] {
				seen[y] = true
				out = append(out, y)
			}
		}
	}

	return out
}

// Elements visits every element exactly once, identity first. Returning false stops
// the walk.
func (g *Group) Elements(visit func(Perm) bool) {
	var walk func(i int, acc Perm) bool
	walk = func(i int, acc Perm) bool {
		if i < 0 {
			return visit(acc)
		}
		lv := g.levels[i]
		for _, x := range lv.orbit {
			if !walk(i-1, acc.Then(lv.trans[x])) {
				return false
			}
		}

		return true
	}
	walk(len(g.levels)-1, Identity(g.n))
}

// Random returns a uniformly distributed element.
func (g *Group) Random(rng *rand.Rand) Perm {
	acc := Identity(g.n)
	for i := len(g.levels) - 1; i >= 0; i-- {
		lv := g.levels[i]
		acc = acc.Then(lv.trans[lv.orbit[rng.Intn(len(lv.orbit))]])
	}

	return acc
}
