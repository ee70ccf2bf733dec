// SPDX-License-Identifier: MIT

// Package latdb is a small bundled database of named lattices (root lattices, their
// orthogonal sums and rescalings) used to name fixed sublattices.
//
// Matching is by fingerprint: rank, determinant and a short theta prefix (by default
// the norms below 2·DefaultPrecision). Entries sharing a fingerprint are all reported.
package latdb

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/codeforms/lattice"
	"github.com/katalvlaran/codeforms/qseries"
)

//go:embed lattices.yaml
var bundled []byte

var (
	// ErrBadComponent is returned for an unknown or malformed root system name.
	ErrBadComponent = errors.New("latdb: bad component")

	// ErrDuplicate is returned when two entries share a name.
	ErrDuplicate = errors.New("latdb: duplicate entry")
)

func latdbErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

type file struct {
	Lattices []Entry `yaml:"lattices"`
}

// Entry is one named lattice.
type Entry struct {
	Name       string   `yaml:"name"`
	Components []string `yaml:"components"`
	Scale      int64    `yaml:"scale"`

	lat *lattice.Lattice
	det *big.Int
}

// Lattice returns the entry's Gram-only lattice.
func (e *Entry) Lattice() *lattice.Lattice { return e.lat }

// Rank returns the rank.
func (e *Entry) Rank() int { return e.lat.Rank() }

// Det returns the determinant.
func (e *Entry) Det() *big.Int { return e.det }

// DefaultPrecision is the theta prefix length used for fingerprints.
const DefaultPrecision = 3

const panicPrecision = "latdb: WithPrecision: precision must be positive"

// DB is a loaded database. Entry theta prefixes are computed on first use or all at
// once by Warm. It is not safe for concurrent use.
type DB struct {
	entries    []*Entry
	ring       *qseries.Ring
	theta      map[string]*qseries.Series
	maxVectors int
}

// Option configures a DB.
type Option func(*DB)

// WithPrecision sets the fingerprint theta prefix length.
func WithPrecision(p int) Option {
	if p <= 0 {
		panic(panicPrecision)
	}

	return func(db *DB) { db.ring = qseries.NewRing(qseries.WithPrecision(p)) }
}

// WithMaxVectors bounds the enumeration of each theta prefix.
func WithMaxVectors(n int) Option {
	return func(db *DB) { db.maxVectors = n }
}

// Load parses the bundled catalogue.
func Load(opts ...Option) (*DB, error) {
	return Parse(bundled, opts...)
}

// Parse reads a catalogue in the bundled YAML format.
func Parse(data []byte, opts ...Option) (*DB, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, latdbErrorf("Parse", err)
	}
	db := &DB{
		ring:       qseries.NewRing(qseries.WithPrecision(DefaultPrecision)),
		theta:      map[string]*qseries.Series{},
		maxVectors: lattice.DefaultMaxVectors,
	}
	for _, fn := range opts {
		fn(db)
	}
	seen := map[string]bool{}
	for i := range f.Lattices {
		e := f.Lattices[i]
		if seen[e.Name] {
			return nil, latdbErrorf("Parse", fmt.Errorf("%w: %s", ErrDuplicate, e.Name))
		}
		seen[e.Name] = true
		l, err := Build(e.Components, e.Scale)
		if err != nil {
			return nil, latdbErrorf("Parse", fmt.Errorf("%s: %w", e.Name, err))
		}
		e.lat = l
		if e.det, err = l.Det(); err != nil {
			return nil, latdbErrorf("Parse", err)
		}
		db.entries = append(db.entries, &e)
	}

	return db, nil
}

// Entries lists the catalogue in file order.
func (db *DB) Entries() []*Entry { return db.entries }

// Get returns the entry with the given name, or nil.
func (db *DB) Get(name string) *Entry {
	for _, e := range db.entries {
		if e.Name == name {
			return e
		}
	}

	return nil
}

// Ring returns the fingerprint ring.
func (db *DB) Ring() *qseries.Ring { return db.ring }

// Theta returns the entry's theta prefix.
func (db *DB) Theta(e *Entry) (*qseries.Series, error) {
	if s, ok := db.theta[e.Name]; ok {
		return s, nil
	}
	s, err := lattice.ThetaSeries(db.ring, e.lat, lattice.WithMaxVectors(db.maxVectors))
	if err != nil {
		return nil, latdbErrorf("Theta", fmt.Errorf("%s: %w", e.Name, err))
	}
	db.theta[e.Name] = s

	return s, nil
}

// Warm computes every missing theta prefix with at most workers enumerations in
// flight (0 means unbounded). Prefixes finished before an error are kept.
// Each enumeration gets its own ring, since a Ring caches into unguarded maps.
func (db *DB) Warm(ctx context.Context, workers int) error {
	prec := db.ring.Precision()
	var pending []*Entry
	for _, e := range db.entries {
		if _, ok := db.theta[e.Name]; !ok {
			pending = append(pending, e)
		}
	}
	out := make([]*qseries.Series, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, e := range pending {
		i, e := i, e
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r := qseries.NewRing(qseries.WithPrecision(prec))
			s, err := lattice.ThetaSeries(r, e.lat, lattice.WithMaxVectors(db.maxVectors))
			if err != nil {
				return fmt.Errorf("%s: %w", e.Name, err)
			}
			out[i] = s

			return nil
		})
	}
	err := g.Wait()
	for i, s := range out {
		if s != nil {
			db.theta[pending[i].Name] = s
		}
	}
	if err != nil {
		return latdbErrorf("Warm", err)
	}

	return nil
}

// Lookup returns the names of entries matching l's rank, determinant and theta
// prefix. The zero lattice (nil) matches nothing.
func (db *DB) Lookup(l *lattice.Lattice) ([]string, error) {
	if l == nil {
		return nil, nil
	}
	det, err := l.Det()
	if err != nil {
		return nil, latdbErrorf("Lookup", err)
	}
	var (
		names []string
		theta *qseries.Series
	)
	for _, e := range db.entries {
		if e.Rank() != l.Rank() || e.det.Cmp(det) != 0 {
			continue
		}
		if theta == nil {
			if theta, err = lattice.ThetaSeries(db.ring, l, lattice.WithMaxVectors(db.maxVectors)); err != nil {
				return nil, latdbErrorf("Lookup", err)
			}
		}
		s, err := db.Theta(e)
		if err != nil {
			return nil, err
		}
		if s.Equal(theta) {
			names = append(names, e.Name)
		}
	}

	return names, nil
}

// Build returns the orthogonal sum of the named root lattices with the Gram matrix
// multiplied by scale (0 means 1).
func Build(components []string, scale int64) (*lattice.Lattice, error) {
	if scale == 0 {
		scale = 1
	}
	if scale < 0 || len(components) == 0 {
		return nil, ErrBadComponent
	}
	var out *lattice.Lattice
	for _, c := range components {
		name, count := c, 1
		if k := strings.IndexByte(c, '^'); k >= 0 {
			v, err := strconv.Atoi(c[k+1:])
			if err != nil || v <= 0 {
				return nil, fmt.Errorf("%w: %q", ErrBadComponent, c)
			}
			name, count = c[:k], v
		}
		g, err := Cartan(name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < count; i++ {
			l, err := lattice.FromGram(scaled(g, scale))
			if err != nil {
				return nil, err
			}
			if out == nil {
				out = l
				continue
			}
			if out, err = lattice.OrthogonalSum(out, l); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// Cartan returns the Cartan matrix of A_n (n ≥ 1), D_n (n ≥ 3) or E_n (n = 6, 7, 8).
func Cartan(name string) (lattice.IntMatrix, error) {
	if len(name) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrBadComponent, name)
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrBadComponent, name)
	}
	var edges [][2]int
	switch name[0] {
	case 'A':
		for i := 0; i+1 < n; i++ {
			edges = append(edges, [2]int{i, i + 1})
		}
	case 'D':
		if n < 3 {
			return nil, fmt.Errorf("%w: %q", ErrBadComponent, name)
		}
		for i := 0; i+1 < n-1; i++ {
			edges = append(edges, [2]int{i, i + 1})
		}
		edges = append(edges, [2]int{n - 3, n - 1})
	case 'E':
		if n < 6 || n > 8 {
			return nil, fmt.Errorf("%w: %q", ErrBadComponent, name)
		}
		for i := 0; i+1 < n-1; i++ {
			edges = append(edges, [2]int{i, i + 1})
		}
		edges = append(edges, [2]int{2, n - 1})
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadComponent, name)
	}
	g := lattice.NewIntMatrix(n, n)
	for i := 0; i < n; i++ {
		g[i][i].SetInt64(2)
	}
	for _, e := range edges {
		g[e[0]][e[1]].SetInt64(-1)
		g[e[1]][e[0]].SetInt64(-1)
	}

	return g, nil
}

func scaled(g lattice.IntMatrix, s int64) lattice.IntMatrix {
	out := g.Clone()
	if s == 1 {
		return out
	}
	k := big.NewInt(s)
	for _, row := range out {
		for _, v := range row {
			v.Mul(v, k)
		}
	}

	return out
}
