// SPDX-License-Identifier: MIT

// Command codeforms computes theta series, frame shapes, eta quotients and VOA
// characters for automorphisms of doubly-even self-dual binary codes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/codeforms/config"
	"github.com/katalvlaran/codeforms/report"
)

var (
	configPath string
	verbose    bool
	plain      bool
	precision  int
	codeName   string
	generators []string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "codeforms",
	Short: "Modular invariants of code lattice automorphisms",
	Long: `codeforms builds the Construction A lattice of a doubly-even self-dual binary code
and, for automorphisms ε_X·σ, prints orbit types, frame shapes, fixed-lattice theta
series, eta quotients and lattice VOA characters.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		if logger, err = zc.Build(); err != nil {
			return errors.Wrap(err, "initialize logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML run configuration")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging and error stack traces")
	pf.BoolVar(&plain, "plain", false, "disable styled output")
	pf.IntVar(&precision, "precision", 0, "series precision (overrides the config)")
	pf.StringVar(&codeName, "code", "", "built-in code name (overrides the config)")
	pf.StringSliceVar(&generators, "generators", nil, "generator rows as binary literals (overrides the config)")

	rootCmd.AddCommand(codesCmd, classesCmd, runCmd, elementCmd, subgroupCmd, lookupCmd)
}

// loadConfig reads --config and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if cmd.Flags().Changed("precision") {
		cfg.Precision = precision
	}
	if cmd.Flags().Changed("code") || cmd.Flags().Changed("generators") {
		cfg.Code = config.CodeConfig{Name: codeName, Generators: generators}
	}
	if cmd.Flags().Changed("plain") {
		cfg.Output.Plain = plain
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}

	return cfg, nil
}

func renderer(cfg *config.Config) *report.Renderer {
	return report.New(report.Plain(cfg.Output.Plain), report.Terms(cfg.Output.Terms))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
