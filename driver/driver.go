// SPDX-License-Identifier: MIT

// Package driver runs a full computation: it builds the code, enumerates conjugacy
// classes, evaluates every class with the configured strategy and collects the rows
// that package report renders.
package driver

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/codeforms/assemble"
	"github.com/katalvlaran/codeforms/code"
	"github.com/katalvlaran/codeforms/config"
	"github.com/katalvlaran/codeforms/engine"
	"github.com/katalvlaran/codeforms/gf2"
	"github.com/katalvlaran/codeforms/latdb"
	"github.com/katalvlaran/codeforms/lattice"
	"github.com/katalvlaran/codeforms/perm"
	"github.com/katalvlaran/codeforms/qseries"
	"github.com/katalvlaran/codeforms/voa"
)

// ErrDisagree is returned when the two strategies disagree on an element.
var ErrDisagree = errors.New("driver: strategies disagree")

// Row is the result for one class representative.
type Row struct {
	Label     string
	Class     perm.Class
	Invariant *engine.Invariant
	// Check holds the lattice strategy's result when both strategies run.
	Check *engine.Invariant
	// VOA data; Doubles is false when the order is odd.
	Doubles    bool
	Characters []*voa.Character
	Matches    []string
}

// SubgroupRow is the result for one configured subgroup.
type SubgroupRow struct {
	Invariant *engine.SubgroupInvariant
	Matches   []string
}

// Report is everything a run produced.
type Report struct {
	Code      *code.Code
	MinWeight int
	AutOrder  *big.Int
	Strategy  code.Strategy
	Engine    string
	Precision int
	Signs     string
	Rows      []Row
	Subgroups []SubgroupRow
	Skipped   int
	Terms     int
}

// Driver carries the logger.
type Driver struct {
	log *zap.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// New returns a Driver.
func New(opts ...Option) *Driver {
	d := &Driver{log: zap.NewNop()}
	for _, fn := range opts {
		fn(d)
	}

	return d
}

// BuildCode returns the code named or listed in cfg.
func BuildCode(cfg *config.Config) (*code.Code, error) {
	if cfg.Code.Name != "" {
		return code.Named(cfg.Code.Name)
	}

	return code.Parse("custom", cfg.Code.Generators...)
}

// run holds per-run state.
type run struct {
	cfg   *config.Config
	log   *zap.Logger
	code  *code.Code
	ring  *qseries.Ring
	main  engine.Engine
	check engine.Engine
	asm   *assemble.Assembler
	lat   *lattice.Lattice
	db    *latdb.DB
	seen  map[string]bool
}

// Run executes cfg. Cancellation is honoured between classes.
func (d *Driver) Run(ctx context.Context, cfg *config.Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, err := BuildCode(cfg)
	if err != nil {
		return nil, err
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	r := &run{
		cfg:  cfg,
		log:  d.log.With(zap.String("code", c.Name)),
		code: c,
		ring: qseries.NewRing(qseries.WithPrecision(cfg.Precision)),
		seen: map[string]bool{},
	}
	rep := &Report{Code: c, Engine: cfg.Strategy, Precision: cfg.Precision, Signs: cfg.Signs, Terms: cfg.Output.Terms}
	if rep.MinWeight, err = c.MinWeight(); err != nil {
		return nil, err
	}
	if rep.Strategy, err = c.Strategy(); err != nil {
		return nil, err
	}
	if err = r.setup(); err != nil {
		return nil, err
	}
	if r.db != nil {
		if err := r.db.Warm(ctx, runtime.GOMAXPROCS(0)); err != nil {
			r.log.Warn("lattice database incomplete", zap.Error(err))
		}
	}

	elements, autOrder, err := r.elements()
	if err != nil {
		return nil, err
	}
	rep.AutOrder = autOrder
	r.log.Info("classes enumerated",
		zap.Int("elements", len(elements)),
		zap.String("aut_order", autOrder.String()),
		zap.Stringer("strategy", rep.Strategy))

	perOrder := map[int]int{}
	for _, el := range elements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if cfg.Classes.Max > 0 && len(rep.Rows) >= cfg.Classes.Max {
			break
		}
		row, skip, err := r.evaluate(el)
		if err != nil {
			return nil, err
		}
		if skip {
			rep.Skipped++
			continue
		}
		if row == nil {
			continue
		}
		ord := row.Invariant.Order
		row.Label = fmt.Sprintf("%d%s", ord, classLetter(perOrder[ord]))
		perOrder[ord]++
		rep.Rows = append(rep.Rows, *row)
	}

	for _, gens := range cfg.Subgroups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sr, err := r.subgroup(gens)
		if err != nil {
			return nil, err
		}
		rep.Subgroups = append(rep.Subgroups, *sr)
	}

	return rep, nil
}

func (r *run) setup() error {
	codeEngine, err := engine.NewCode(r.code, engine.WithRing(r.ring))
	if err != nil {
		return err
	}
	r.asm = codeEngine.Assembler()
	if r.lat, err = lattice.FromCode(r.code); err != nil {
		return err
	}
	switch r.cfg.Strategy {
	case config.StrategyCode:
		r.main = codeEngine
	case config.StrategyLattice, config.StrategyBoth:
		le, err := engine.NewLattice(r.code, engine.WithRing(r.ring), engine.WithMaxVectors(r.cfg.MaxVectors))
		if err != nil {
			return err
		}
		if r.cfg.Strategy == config.StrategyLattice {
			r.main = le
		} else {
			r.main, r.check = codeEngine, le
		}
	}
	if r.cfg.Lookup {
		if r.db, err = latdb.Load(latdb.WithMaxVectors(r.cfg.MaxVectors)); err != nil {
			return err
		}
	}

	return nil
}

type element struct {
	class perm.Class
	g     perm.Signed
}

func (r *run) classOptions() []perm.ClassOption {
	cc := r.cfg.Classes
	return []perm.ClassOption{perm.WithExactLimit(cc.ExactLimit), perm.WithSamples(cc.Samples), perm.WithSeed(cc.Seed)}
}

// elements lists the representatives to evaluate and the order of the group they
// come from.
func (r *run) elements() ([]element, *big.Int, error) {
	if le, ok := r.main.(*engine.Lattice); ok {
		g, err := le.Group()
		if err != nil {
			return nil, nil, err
		}
		opts := append(r.classOptions(), perm.WithInvariant(perm.SignedInvariant))
		var out []element
		for _, cl := range perm.ConjugacyClasses(g, opts...) {
			s, err := perm.SignedFromLift(cl.Rep)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, element{class: cl, g: s})
		}

		return out, g.Order(), nil
	}

	g, err := r.code.AutGroup()
	if err != nil {
		return nil, nil, err
	}
	var out []element
	for _, cl := range perm.ConjugacyClasses(g, r.classOptions()...) {
		for _, neg := range SignPatterns(cl.Rep, r.cfg.Signs) {
			out = append(out, element{class: cl, g: perm.Signed{P: cl.Rep, Neg: neg}})
		}
	}

	return out, g.Order(), nil
}

// SignPatterns returns the negated sets paired with σ in a sign mode. In "all" mode a
// pattern twists the first t cycles of each length for every choice of t, so cycles
// of equal length are treated as interchangeable.
func SignPatterns(p perm.Perm, mode string) []gf2.Word {
	switch mode {
	case config.SignsNone:
		return []gf2.Word{0}
	case config.SignsNegate:
		return []gf2.Word{0, gf2.Mask(p.Degree())}
	}
	byLen := map[int][]int{} // length → first point of each cycle
	for _, c := range p.Cycles() {
		byLen[len(c)] = append(byLen[len(c)], c[0])
	}
	lens := make([]int, 0, len(byLen))
	for l := range byLen {
		lens = append(lens, l)
	}
	sort.Ints(lens)
	out := []gf2.Word{0}
	for _, l := range lens {
		heads := byLen[l]
		next := make([]gf2.Word, 0, len(out)*(len(heads)+1))
		for _, w := range out {
			acc := w
			next = append(next, acc)
			for _, h := range heads {
				acc |= gf2.Bit(h)
				next = append(next, acc)
			}
		}
		out = next
	}

	return out
}

// evaluate computes one row. skip reports a class dropped for a resource budget; a
// nil row without skip is a duplicate.
func (r *run) evaluate(el element) (*Row, bool, error) {
	log := r.log.With(zap.Stringer("element", el.g))
	inv, err := r.main.Element(el.g)
	if err != nil {
		if budget(err) {
			log.Warn("class skipped", zap.Error(err))
			return nil, true, nil
		}

		return nil, false, err
	}
	key := dedupKey(inv)
	if r.seen[key] {
		log.Debug("duplicate invariant", zap.String("key", key))
		return nil, false, nil
	}
	r.seen[key] = true
	row := &Row{Class: el.class, Invariant: inv}
	log.Debug("class evaluated",
		zap.Int("order", inv.Order),
		zap.Stringer("frame", inv.Frame),
		zap.Int("fixed_rank", inv.FixedRank))

	if r.check != nil {
		chk, err := r.check.Element(el.g)
		switch {
		case budget(err):
			log.Warn("cross-check skipped", zap.Error(err))
		case err != nil:
			return nil, false, err
		case !engine.Agree(inv, chk):
			return nil, false, fmt.Errorf("%w: %s", ErrDisagree, el.g)
		default:
			row.Check = chk
		}
	}

	if r.cfg.VOA {
		chars, doubles, err := voa.Characters(r.asm, r.code, r.lat, el.g)
		switch {
		case budget(err):
			log.Warn("characters skipped", zap.Error(err))
		case err != nil:
			return nil, false, err
		default:
			row.Doubles, row.Characters = doubles, chars
			for _, ch := range chars {
				if ch.Fallback && ch.Power%2 == 0 {
					log.Info("eta quotient fallback", zap.Int("power", ch.Power), zap.NamedError("reason", ch.Reason))
				}
			}
		}
	}

	if r.db != nil {
		if row.Matches, err = r.db.Lookup(inv.Fixed); err != nil {
			log.Warn("lookup failed", zap.Error(err))
		}
	}

	return row, false, nil
}

func (r *run) subgroup(literals []string) (*SubgroupRow, error) {
	gens := make([]perm.Signed, 0, len(literals))
	for _, s := range literals {
		g, err := perm.ParseSigned(r.code.N, s)
		if err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}
	ce, err := engine.NewCode(r.code, engine.WithRing(r.ring))
	if err != nil {
		return nil, err
	}
	inv, err := ce.Subgroup(gens...)
	if err != nil {
		return nil, err
	}
	out := &SubgroupRow{Invariant: inv}
	if r.db != nil {
		if out.Matches, err = r.db.Lookup(inv.Fixed); err != nil {
			r.log.Warn("lookup failed", zap.Strings("generators", literals), zap.Error(err))
		}
	}

	return out, nil
}

func budget(err error) bool {
	return errors.Is(err, lattice.ErrEnumerationBudget) || errors.Is(err, gf2.ErrSpanTooLarge)
}

// dedupKey identifies elements with identical computed invariants.
func dedupKey(inv *engine.Invariant) string {
	var sb strings.Builder
	sb.WriteString(perm.FormatCycleType(inv.Element.SignedCycleType()))
	sb.WriteByte('|')
	sb.WriteString(inv.Frame.String())
	sb.WriteByte('|')
	sb.WriteString(inv.Theta.String())

	return sb.String()
}

// classLetter gives A, B, ..., Z, AA, AB, ... for a running index.
func classLetter(i int) string {
	s := ""
	for i++; i > 0; i = (i - 1) / 26 {
		s = string(rune('A'+(i-1)%26)) + s
	}

	return s
}
