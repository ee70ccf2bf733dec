// SPDX-License-Identifier: MIT

package perm

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/codeforms/gf2"
)

// Perm is a permutation of {0..n-1}; p[i] is the image of i.
type Perm []int

// Identity returns the identity permutation of degree n.
func Identity(n int) Perm {
	p := make(Perm, n)
	for i := range p {
		p[i] = i
	}

	return p
}

// New validates images and returns them as a Perm.
func New(images []int) (Perm, error) {
	seen := make([]bool, len(images))
	for _, x := range images {
		if x < 0 || x >= len(images) || seen[x] {
			return nil, permErrorf("New", ErrNotPermutation)
		}
		seen[x] = true
	}
	p := make(Perm, len(images))
	copy(p, images)

	return p, nil
}

// Degree returns n.
func (p Perm) Degree() int { return len(p) }

// Then returns the permutation "p first, then q".
func (p Perm) Then(q Perm) Perm {
	out := make(Perm, len(p))
	for i, x := range p {
		out[i] = q[x]
	}

	return out
}

// Inverse returns p^-1.
func (p Perm) Inverse() Perm {
	out := make(Perm, len(p))
	for i, x := range p {
		out[x] = i
	}

	return out
}

// Pow returns p^k; negative k uses the inverse.
func (p Perm) Pow(k int) Perm {
	base := p
	if k < 0 {
		base = p.Inverse()
		k = -k
	}
	out := Identity(len(p))
	for k > 0 {
		if k&1 == 1 {
			out = out.Then(base)
		}
		base = base.Then(base)
		k >>= 1
	}

	return out
}

// Conjugate returns s^-1 p s.
func (p Perm) Conjugate(s Perm) Perm {
	return s.Inverse().Then(p).Then(s)
}

// IsIdentity reports whether p fixes every point.
func (p Perm) IsIdentity() bool {
	for i, x := range p {
		if i != x {
			return false
		}
	}

	return true
}

// Equal reports whether p and q are the same permutation.
func (p Perm) Equal(q Perm) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}

	return true
}

// Cycles returns all cycles including fixed points; each cycle starts at its smallest
// point and cycles are ordered by that point.
func (p Perm) Cycles() [][]int {
	seen := make([]bool, len(p))
	var out [][]int
	for i := range p {
		if seen[i] {
			continue
		}
		var cyc []int
		for j := i; !seen[j]; j = p[j] {
			seen[j] = true
			cyc = append(cyc, j)
		}
		out = append(out, cyc)
	}

	return out
}

// CycleType returns the multiset of cycle lengths in ascending order.
func (p Perm) CycleType() []int {
	cs := p.Cycles()
	out := make([]int, len(cs))
	for i, c := range cs {
		out[i] = len(c)
	}
	sort.Ints(out)

	return out
}

// Order returns the least k > 0 with p^k = 1.
func (p Perm) Order() int {
	ord := 1
	for _, c := range p.Cycles() {
		ord = lcm(ord, len(c))
	}

	return ord
}

// Apply returns the image of the support of w.
func (p Perm) Apply(w gf2.Word) gf2.Word {
	var out gf2.Word
	for _, i := range w.Support() {
		out |= gf2.Bit(p[i])
	}

	return out
}

// Key returns a compact map key.
func (p Perm) Key() string {
	b := make([]byte, len(p))
	for i, x := range p {
		b[i] = byte(x)
	}

	return string(b)
}

// String renders p in 1-based cycle notation, omitting fixed points.
func (p Perm) String() string {
	var sb strings.Builder
	for _, c := range p.Cycles() {
		if len(c) == 1 {
			continue
		}
		sb.WriteByte('(')
		for i, x := range c {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(x + 1))
		}
		sb.WriteByte(')')
	}
	if sb.Len() == 0 {
		return "()"
	}

	return sb.String()
}

// ParseCycles reads 1-based cycle notation such as "(1,2,3)(4,5)" into a permutation
// of degree n. Whitespace may replace commas.
func ParseCycles(n int, s string) (Perm, error) {
	p := Identity(n)
	seen := make([]bool, n)
	rest := strings.TrimSpace(s)
	for rest != "" {
		if rest[0] != '(' {
			return nil, permErrorf("ParseCycles", ErrBadCycles)
		}
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return nil, permErrorf("ParseCycles", ErrBadCycles)
		}
		fields := strings.FieldsFunc(rest[1:end], func(r rune) bool { return r == ',' || r == ' ' })
		pts := make([]int, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil || v < 1 || v > n || seen[v-1] {
				return nil, permErrorf("ParseCycles", fmt.Errorf("%w: %q", ErrBadCycles, f))
			}
			seen[v-1] = true
			pts = append(pts, v-1)
		}
		for i, x := range pts {
			p[x] = pts[(i+1)%len(pts)]
		}
		rest = strings.TrimSpace(rest[end+1:])
	}

	return p, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func lcm(a, b int) int { return a / gcd(a, b) * b }

func sortInts(a []int) { sort.Ints(a) }
