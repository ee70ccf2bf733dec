// SPDX-License-Identifier: MIT

// Package report renders driver results as console text, styled with lipgloss unless
// plain output is requested.
package report

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/codeforms/code"
	"github.com/katalvlaran/codeforms/driver"
	"github.com/katalvlaran/codeforms/engine"
	"github.com/katalvlaran/codeforms/perm"
	"github.com/katalvlaran/codeforms/qseries"
	"github.com/katalvlaran/codeforms/voa"
)

var (
	accent  = lipgloss.Color("#8BC34A")
	info    = lipgloss.Color("#2196F3")
	warning = lipgloss.Color("#FFC107")
	muted   = lipgloss.Color("#7A8699")
)

// Renderer writes reports.
type Renderer struct {
	plain  bool
	terms  int
	title  lipgloss.Style
	label  lipgloss.Style
	key    lipgloss.Style
	note   lipgloss.Style
	header lipgloss.Style
}

// Option configures a Renderer.
type Option func(*Renderer)

// Plain disables styling.
func Plain(on bool) Option { return func(r *Renderer) { r.plain = on } }

// Terms limits printed series to their first n exponents; 0 prints everything.
func Terms(n int) Option { return func(r *Renderer) { r.terms = n } }

// New returns a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, fn := range opts {
		fn(r)
	}
	r.title = lipgloss.NewStyle().Bold(true).Foreground(accent)
	r.header = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1)
	r.label = lipgloss.NewStyle().Bold(true).Foreground(info)
	r.key = lipgloss.NewStyle().Foreground(muted)
	r.note = lipgloss.NewStyle().Foreground(warning)

	return r
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.plain {
		return text
	}

	return s.Render(text)
}

func (r *Renderer) field(sb *strings.Builder, k, v string) {
	sb.WriteString("  ")
	sb.WriteString(r.style(r.key, fmt.Sprintf("%-10s", k)))
	sb.WriteString(" ")
	sb.WriteString(v)
	sb.WriteByte('\n')
}

// Series renders s cut to the renderer's term count.
func (r *Renderer) Series(s *qseries.Series) string {
	if s == nil {
		return "-"
	}
	if r.terms <= 0 || r.terms >= s.Prec {
		return s.String()
	}

	return (&qseries.Series{Den: s.Den, Prec: r.terms, C: s.C[:r.terms*s.Den]}).String()
}

// Expansion renders e cut to the renderer's term count.
func (r *Renderer) Expansion(e qseries.Expansion) string {
	if e.S == nil {
		return "-"
	}
	cut := qseries.Expansion{Order: e.Order, S: e.S}
	if r.terms > 0 && r.terms < e.S.Prec {
		cut.S = &qseries.Series{Den: e.S.Den, Prec: r.terms, C: e.S.C[:r.terms*e.S.Den]}
	}

	return cut.String()
}

// Report writes a full driver report.
func (r *Renderer) Report(w io.Writer, rep *driver.Report) error {
	var sb strings.Builder
	head := fmt.Sprintf("%s  N=%d k=%d d=%d  |Aut|=%s  %s  strategy=%s  precision=%d  signs=%s",
		rep.Code.Name, rep.Code.N, rep.Code.Dim(), rep.MinWeight, rep.AutOrder, rep.Strategy, rep.Engine, rep.Precision, rep.Signs)
	if r.plain {
		sb.WriteString(head)
	} else {
		sb.WriteString(r.header.Render(r.title.Render(head)))
	}
	sb.WriteString("\n\n")

	for i := range rep.Rows {
		r.row(&sb, &rep.Rows[i])
	}
	for i, s := range rep.Subgroups {
		sb.WriteString(r.style(r.label, fmt.Sprintf("subgroup %d", i+1)))
		sb.WriteByte('\n')
		gens := make([]string, len(s.Invariant.Generators))
		for j, g := range s.Invariant.Generators {
			gens[j] = g.String()
		}
		r.field(&sb, "gens", strings.Join(gens, "; "))
		r.field(&sb, "orbits", s.Invariant.Classification.String())
		r.field(&sb, "rank", fmt.Sprint(s.Invariant.FixedRank))
		r.field(&sb, "theta", r.Series(s.Invariant.Theta))
		r.field(&sb, "lattice", matches(s.Matches))
		sb.WriteByte('\n')
	}
	if rep.Skipped > 0 {
		sb.WriteString(r.style(r.note, fmt.Sprintf("%d class(es) skipped: enumeration budget", rep.Skipped)))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())

	return err
}

func (r *Renderer) row(sb *strings.Builder, row *driver.Row) {
	inv := row.Invariant
	title := fmt.Sprintf("%s  %s", row.Label, inv.Element)
	if row.Class.Size != nil {
		title += fmt.Sprintf("  (class size %s)", row.Class.Size)
	}
	sb.WriteString(r.style(r.label, title))
	sb.WriteByte('\n')
	r.invariant(sb, inv)
	if row.Check != nil {
		r.field(sb, "check", "lattice strategy agrees")
	}
	if len(row.Characters) > 0 {
		r.field(sb, "doubling", yesNo(row.Doubles))
		for _, ch := range row.Characters {
			r.field(sb, fmt.Sprintf("ĝ^%d", ch.Power), r.character(ch))
		}
	}
	r.field(sb, "lattice", matches(row.Matches))
	sb.WriteByte('\n')
}

func (r *Renderer) character(ch *voa.Character) string {
	s := r.Expansion(ch.Value)
	if ch.Fallback {
		return s + r.style(r.note, "  [eta quotient]")
	}

	return s
}

func (r *Renderer) invariant(sb *strings.Builder, inv *engine.Invariant) {
	r.field(sb, "order", fmt.Sprint(inv.Order))
	r.field(sb, "type", perm.FormatCycleType(inv.Element.SignedCycleType()))
	r.field(sb, "orbits", inv.Classification.String())
	r.field(sb, "frame", inv.Frame.String())
	r.field(sb, "fixed", fmt.Sprintf("rank %d det %s", inv.FixedRank, detString(inv.FixedDet)))
	r.field(sb, "theta", r.Series(inv.Theta))
	r.field(sb, "quotient", r.Expansion(inv.Quotient))
}

// Invariant writes the result for a single element.
func (r *Renderer) Invariant(w io.Writer, inv *engine.Invariant, names []string) error {
	var sb strings.Builder
	sb.WriteString(r.style(r.label, inv.Element.String()))
	sb.WriteByte('\n')
	r.invariant(&sb, inv)
	r.field(&sb, "lattice", matches(names))
	_, err := io.WriteString(w, sb.String())

	return err
}

// CodeSummary is one line of the code listing.
type CodeSummary struct {
	Code      *code.Code
	MinWeight int
	AutOrder  *big.Int
	Strategy  code.Strategy
}

// Codes writes the built-in code listing.
func (r *Renderer) Codes(w io.Writer, codes []CodeSummary) error {
	var sb strings.Builder
	sb.WriteString(r.style(r.title, fmt.Sprintf("%-6s %4s %4s %4s %12s  %s", "name", "N", "k", "d", "|Aut|", "strategy")))
	sb.WriteByte('\n')
	for _, c := range codes {
		fmt.Fprintf(&sb, "%-6s %4d %4d %4d %12s  %s\n", c.Code.Name, c.Code.N, c.Code.Dim(), c.MinWeight, c.AutOrder, c.Strategy)
	}
	_, err := io.WriteString(w, sb.String())

	return err
}

// Classes writes a conjugacy class listing.
func (r *Renderer) Classes(w io.Writer, classes []perm.Class) error {
	var sb strings.Builder
	for i, c := range classes {
		sb.WriteString(r.style(r.key, fmt.Sprintf("%3d ", i+1)))
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())

	return err
}

func matches(names []string) string {
	if len(names) == 0 {
		return "-"
	}

	return strings.Join(names, ", ")
}

func detString(d *big.Int) string {
	if d == nil {
		return "-"
	}

	return d.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
