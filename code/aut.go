// SPDX-License-Identifier: MIT

package code

import (
	"github.com/katalvlaran/codeforms/gf2"
	"github.com/katalvlaran/codeforms/perm"
)

// DefaultSearchBudget bounds the number of backtracking nodes of one search.
const DefaultSearchBudget = 5_000_000

const panicBudgetInvalid = "code: WithSearchBudget: budget must be positive"

// SearchOption configures AutGenerators.
type SearchOption func(*searchOptions)

type searchOptions struct {
	budget int
	force  bool
}

// WithSearchBudget sets the node budget of the backtracking search.
func WithSearchBudget(nodes int) SearchOption {
	if nodes <= 0 {
		panic(panicBudgetInvalid)
	}

	return func(o *searchOptions) { o.budget = nodes }
}

// WithForcedSearch ignores known generators and always searches.
func WithForcedSearch() SearchOption {
	return func(o *searchOptions) { o.force = true }
}

// AutGenerators returns generators of Aut(C).
func (c *Code) AutGenerators(opts ...SearchOption) ([]perm.Perm, error) {
	o := searchOptions{budget: DefaultSearchBudget}
	for _, fn := range opts {
		fn(&o)
	}
	if len(c.known) > 0 && !o.force {
		return c.known, nil
	}
	s, err := newSearch(c, o.budget)
	if err != nil {
		return nil, err
	}

	return s.run()
}

// AutGroup returns Aut(C) as a permutation group.
func (c *Code) AutGroup(opts ...SearchOption) (*perm.Group, error) {
	gens, err := c.AutGenerators(opts...)
	if err != nil {
		return nil, err
	}

	return perm.NewGroup(c.N, gens...)
}

// search finds a strong generating set of Aut(C) level by level: at level i it looks for
// σ fixing 0..i-1 with σ(i) = y for every y outside the orbit of i already reached.
//
// Pruning uses the set W of minimum-weight words, which Aut(C) permutes:
//   - deg[p]: number of words of W through p; σ preserves it;
//   - pair[p][q]: number of words through both; σ preserves it;
//   - byMax[p]: words whose largest point is p must map into W once p is assigned.
type search struct {
	c      *Code
	n      int
	budget int
	nodes  int

	words map[gf2.Word]bool
	deg   []int
	pair  [][]int
	byMax [][]gf2.Word
}

func newSearch(c *Code, budget int) (*search, error) {
	d, err := c.MinWeight()
	if err != nil {
		return nil, err
	}
	s := &search{
		c:      c,
		n:      c.N,
		budget: budget,
		words:  make(map[gf2.Word]bool),
		deg:    make([]int, c.N),
		pair:   make([][]int, c.N),
		byMax:  make([][]gf2.Word, c.N),
	}
	for i := range s.pair {
		s.pair[i] = make([]int, c.N)
	}
	err = c.Each(func(w gf2.Word) bool {
		if w.Weight() != d {
			return true
		}
		s.words[w] = true
		sup := w.Support()
		for _, p := range sup {
			s.deg[p]++
			for _, q := range sup {
				s.pair[p][q]++
			}
		}
		s.byMax[sup[len(sup)-1]] = append(s.byMax[sup[len(sup)-1]], w)
		return true
	})
	if err != nil {
		return nil, codeErrorf("AutGenerators", err)
	}

	return s, nil
}

func (s *search) run() ([]perm.Perm, error) {
	var found []perm.Perm
	for i := s.n - 1; i >= 0; i-- {
		orbit := s.orbit(found, i)
		for y := i + 1; y < s.n; y++ {
			if orbit[y] || s.deg[y] != s.deg[i] {
				continue
			}
			img := make([]int, s.n)
			for j := range img {
				img[j] = -1
			}
			for j := 0; j < i; j++ {
				img[j] = j
			}
			img[i] = y
			used := make([]bool, s.n)
			for j := 0; j < i; j++ {
				used[j] = true
			}
			used[y] = true

			ok := s.pairsMatch(img, i) && s.wordsMatch(img, i)
			if ok {
				var err error
				ok, err = s.extend(img, used, i+1)
				if err != nil {
					return nil, err
				}
			}
			if ok {
				found = append(found, perm.Perm(img))
				orbit = s.orbit(found, i)
			}
		}
	}

	return found, nil
}

// orbit marks the orbit of i under the found generators fixing 0..i-1.
func (s *search) orbit(gens []perm.Perm, i int) []bool {
	var stab []perm.Perm
	for _, g := range gens {
		fix := true
		for j := 0; j < i; j++ {
			if g[j] != j {
				fix = false
				break
			}
		}
		if fix {
			stab = append(stab, g)
		}
	}
	seen := make([]bool, s.n)
	seen[i] = true
	queue := []int{i}
	for q := 0; q < len(queue); q++ {
		for _, g := range stab {
			if y := g[queue[q]]; !seen[y] {
				seen[y] = true
				queue = append(queue, y)
			}
		}
	}

	return seen
}

func (s *search) extend(img []int, used []bool, p int) (bool, error) {
	s.nodes++
	if s.nodes > s.budget {
		return false, codeErrorf("AutGenerators", ErrSearchBudget)
	}
	if p == s.n {
		return s.c.IsAutomorphism(perm.Perm(img)), nil
	}
	for y := 0; y < s.n; y++ {
		if used[y] || s.deg[y] != s.deg[p] {
			continue
		}
		img[p] = y
		if s.pairsMatch(img, p) && s.wordsMatch(img, p) {
			used[y] = true
			ok, err := s.extend(img, used, p+1)
			used[y] = false
			if err != nil || ok {
				return ok, err
			}
		}
		img[p] = -1
	}

	return false, nil
}

// pairsMatch compares pair incidences of p with every assigned point below it.
func (s *search) pairsMatch(img []int, p int) bool {
	for q := 0; q < p; q++ {
		if s.pair[p][q] != s.pair[img[p]][img[q]] {
			return false
		}
	}

	return true
}

func (s *search) wordsMatch(img []int, p int) bool {
	for _, w := range s.byMax[p] {
		var out gf2.Word
		for _, x := range w.Support() {
			out |= gf2.Bit(img[x])
		}
		if !s.words[out] {
			return false
		}
	}

	return true
}
