// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/codeforms/code"
	"github.com/katalvlaran/codeforms/config"
	"github.com/katalvlaran/codeforms/driver"
	"github.com/katalvlaran/codeforms/engine"
	"github.com/katalvlaran/codeforms/latdb"
	"github.com/katalvlaran/codeforms/perm"
	"github.com/katalvlaran/codeforms/qseries"
	"github.com/katalvlaran/codeforms/report"
)

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "List the built-in codes with their invariants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		var rows []report.CodeSummary
		for _, name := range code.Names() {
			c, err := code.Named(name)
			if err != nil {
				return errors.Wrap(err, name)
			}
			row, err := summarize(c)
			if err != nil {
				return errors.Wrap(err, name)
			}
			rows = append(rows, row)
		}

		return renderer(cfg).Codes(cmd.OutOrStdout(), rows)
	},
}

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List conjugacy classes of Aut(C)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := driver.BuildCode(cfg)
		if err != nil {
			return errors.Wrap(err, "build code")
		}
		g, err := c.AutGroup()
		if err != nil {
			return errors.Wrap(err, "automorphism group")
		}
		classes := perm.ConjugacyClasses(g,
			perm.WithExactLimit(cfg.Classes.ExactLimit),
			perm.WithSamples(cfg.Classes.Samples),
			perm.WithSeed(cfg.Classes.Seed))
		fmt.Fprintf(cmd.OutOrStdout(), "%s: |Aut| = %s, %d classes\n", c.Name, g.Order(), len(classes))

		return renderer(cfg).Classes(cmd.OutOrStdout(), classes)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate every conjugacy class",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rep, err := driver.New(driver.WithLogger(logger)).Run(cmd.Context(), cfg)
		if err != nil {
			return errors.Wrap(err, "run")
		}

		return renderer(cfg).Report(cmd.OutOrStdout(), rep)
	},
}

var elementCmd = &cobra.Command{
	Use:   "element <cycles> [neg[i,j,...]]",
	Short: "Evaluate one automorphism, e.g. \"(1,2)(3,4) neg[5]\"",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := driver.BuildCode(cfg)
		if err != nil {
			return errors.Wrap(err, "build code")
		}
		g, err := perm.ParseSigned(c.N, strings.Join(args, " "))
		if err != nil {
			return errors.Wrap(err, "parse element")
		}
		r := qseries.NewRing(qseries.WithPrecision(cfg.Precision))
		var e engine.Engine
		if cfg.Strategy == config.StrategyLattice {
			e, err = engine.NewLattice(c, engine.WithRing(r), engine.WithMaxVectors(cfg.MaxVectors))
		} else {
			e, err = engine.NewCode(c, engine.WithRing(r))
		}
		if err != nil {
			return errors.Wrap(err, "engine")
		}
		inv, err := e.Element(g)
		if err != nil {
			return errors.Wrap(err, "evaluate")
		}
		var names []string
		if cfg.Lookup {
			db, err := latdb.Load(latdb.WithMaxVectors(cfg.MaxVectors))
			if err != nil {
				return errors.Wrap(err, "load lattice database")
			}
			if names, err = db.Lookup(inv.Fixed); err != nil {
				logger.Warn("lookup failed", zap.Error(err))
			}
		}

		return renderer(cfg).Invariant(cmd.OutOrStdout(), inv, names)
	},
}

var subgroupCmd = &cobra.Command{
	Use:   "subgroup <generator>...",
	Short: "Fixed-lattice theta series of the subgroup generated by the arguments",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := driver.BuildCode(cfg)
		if err != nil {
			return errors.Wrap(err, "build code")
		}
		gens := make([]perm.Signed, len(args))
		for i, a := range args {
			if gens[i], err = perm.ParseSigned(c.N, a); err != nil {
				return errors.Wrapf(err, "parse generator %q", a)
			}
		}
		ce, err := engine.NewCode(c, engine.WithRing(qseries.NewRing(qseries.WithPrecision(cfg.Precision))))
		if err != nil {
			return errors.Wrap(err, "engine")
		}
		sub, err := ce.Subgroup(gens...)
		if err != nil {
			return errors.Wrap(err, "subgroup")
		}
		rr := renderer(cfg)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "orbits  %s\nrank    %d\ntheta   %s\n", sub.Classification, sub.FixedRank, rr.Series(sub.Theta))
		if cfg.Lookup {
			db, err := latdb.Load(latdb.WithMaxVectors(cfg.MaxVectors))
			if err != nil {
				return errors.Wrap(err, "load lattice database")
			}
			names, err := db.Lookup(sub.Fixed)
			if err != nil {
				return errors.Wrap(err, "lookup")
			}
			fmt.Fprintf(out, "lattice %s\n", strings.Join(names, ", "))
		}

		return nil
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [name]",
	Short: "List lattice database entries",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		db, err := latdb.Load()
		if err != nil {
			return errors.Wrap(err, "load lattice database")
		}
		out := cmd.OutOrStdout()
		for _, e := range db.Entries() {
			if len(args) == 1 && e.Name != args[0] {
				continue
			}
			th, err := db.Theta(e)
			if err != nil {
				return errors.Wrap(err, e.Name)
			}
			fmt.Fprintf(out, "%-10s rank %2d det %5s  %s\n", e.Name, e.Rank(), e.Det(), th)
		}

		return nil
	},
}

// summarize computes the listing row of c.
func summarize(c *code.Code) (report.CodeSummary, error) {
	d, err := c.MinWeight()
	if err != nil {
		return report.CodeSummary{}, err
	}
	g, err := c.AutGroup()
	if err != nil {
		return report.CodeSummary{}, err
	}
	st, err := c.Strategy()
	if err != nil {
		return report.CodeSummary{}, err
	}

	return report.CodeSummary{Code: c, MinWeight: d, AutOrder: g.Order(), Strategy: st}, nil
}
