// SPDX-License-Identifier: MIT

package perm

import (
	"fmt"
	"math/big"
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

// Defaults for ConjugacyClasses.
const (
	// DefaultExactLimit is the largest group order enumerated exactly.
	DefaultExactLimit = 500000

	// DefaultSamples is the number of uniform draws in sampled mode.
	DefaultSamples = 20000

	// defaultRNGSeed replaces a zero seed.
	defaultRNGSeed int64 = 1
)

const (
	panicExactLimitInvalid = "perm: WithExactLimit: limit must be non-negative"
	panicSamplesInvalid    = "perm: WithSamples: samples must be positive"
	panicInvariantNil      = "perm: WithInvariant: invariant must be non-nil"
)

// Invariant maps an element to a class fingerprint used in sampled mode.
type Invariant func(Perm) string

// ClassOption configures ConjugacyClasses.
type ClassOption func(*classOptions)

type classOptions struct {
	exactLimit int64
	samples    int
	seed       int64
	invariant  Invariant
}

// WithExactLimit sets the largest order for exact enumeration; 0 forces sampling.
func WithExactLimit(limit int64) ClassOption {
	if limit < 0 {
		panic(panicExactLimitInvalid)
	}

	return func(o *classOptions) { o.exactLimit = limit }
}

// WithSamples sets the number of random draws used in sampled mode.
func WithSamples(n int) ClassOption {
	if n <= 0 {
		panic(panicSamplesInvalid)
	}

	return func(o *classOptions) { o.samples = n }
}

// WithSeed fixes the sampling stream; 0 selects the default seed.
func WithSeed(seed int64) ClassOption {
	return func(o *classOptions) { o.seed = seed }
}

// WithInvariant replaces the cycle-type fingerprint of sampled mode.
func WithInvariant(inv Invariant) ClassOption {
	if inv == nil {
		panic(panicInvariantNil)
	}

	return func(o *classOptions) { o.invariant = inv }
}

// CycleTypeInvariant is the default sampled-mode fingerprint.
func CycleTypeInvariant(p Perm) string { return formatType(p.CycleType()) }

// SignedInvariant fingerprints a lift of a signed permutation by its signed cycle type.
func SignedInvariant(p Perm) string {
	g, err := SignedFromLift(p)
	if err != nil {
		return CycleTypeInvariant(p)
	}

	return formatType(g.SignedCycleType())
}

// Class is one conjugacy class, or in sampled mode one fingerprint class.
type Class struct {
	Rep       Perm
	Order     int
	CycleType []int
	// Size is the class length; nil in sampled mode.
	Size *big.Int
	// Hits counts the draws that landed in the class in sampled mode.
	Hits  int
	Exact bool
}

// ConjugacyClasses lists the classes of g sorted by (order, cycle type, representative).
//
// Exact mode (|G| ≤ limit) closes every element under conjugation by the generators.
// Sampled mode draws uniform elements and keeps one representative per distinct
// fingerprint; classes sharing a fingerprint are merged and rare classes may be missed.
func ConjugacyClasses(g *Group, opts ...ClassOption) []Class {
	o := classOptions{
		exactLimit: DefaultExactLimit,
		samples:    DefaultSamples,
		invariant:  CycleTypeInvariant,
	}
	for _, fn := range opts {
		fn(&o)
	}

	var out []Class
	if ord := g.Order(); ord.IsInt64() && ord.Int64() <= o.exactLimit {
		out = exactClasses(g)
	} else {
		out = sampledClasses(g, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		if c := compareInts(a.CycleType, b.CycleType); c != 0 {
			return c < 0
		}

		return compareInts(a.Rep, b.Rep) < 0
	})

	return out
}

func exactClasses(g *Group) []Class {
	seen := make(map[string]bool)
	var out []Class
	g.Elements(func(p Perm) bool {
		if seen[p.Key()] {
			return true
		}
		seen[p.Key()] = true
		queue := []Perm{p}
		for q := 0; q < len(queue); q++ {
			for _, s := range g.gens {
				c := queue[q].Conjugate(s)
				if !seen[c.Key()] {
					seen[c.Key()] = true
					queue = append(queue, c)
				}
			}
		}
		out = append(out, Class{
			Rep:       p,
			Order:     p.Order(),
			CycleType: p.CycleType(),
			Size:      big.NewInt(int64(len(queue))),
			Exact:     true,
		})

		return true
	})

	return out
}

func sampledClasses(g *Group, o classOptions) []Class {
	rng := rngFromSeed(o.seed)
	index := make(map[string]int)
	var out []Class
	add := func(p Perm) {
		key := o.invariant(p)
		if k, ok := index[key]; ok {
			out[k].Hits++
			return
		}
		index[key] = len(out)
		out = append(out, Class{Rep: p, Order: p.Order(), CycleType: p.CycleType(), Hits: 1})
	}
	add(Identity(g.n))
	for _, s := range g.gens {
		add(s)
	}
	for i := 0; i < o.samples; i++ {
		add(g.Random(rng))
	}

	return out
}

func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

func compareInts(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}

	return len(a) - len(b)
}

// formatType renders a cycle type in exponent notation, e.g. "1^8" or "1^2 2^3 -4^1".
func formatType(t []int) string {
	var (
		sb    strings.Builder
		count = map[int]int{}
		keys  []int
	)
	for _, l := range t {
		if count[l] == 0 {
			keys = append(keys, l)
		}
		count[l]++
	}
	sort.Ints(keys)
	for i, l := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(l))
		sb.WriteByte('^')
		sb.WriteString(strconv.Itoa(count[l]))
	}

	return sb.String()
}

// FormatCycleType renders a cycle type in exponent notation.
func FormatCycleType(t []int) string { return formatType(t) }

// String renders the class in one line.
func (c Class) String() string {
	return fmt.Sprintf("order %d, type %s, rep %s", c.Order, formatType(c.CycleType), c.Rep)
}
