// SPDX-License-Identifier: MIT

// Package config holds the run configuration of the codeforms CLI, read from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/codeforms/lattice"
	"github.com/katalvlaran/codeforms/perm"
	"github.com/katalvlaran/codeforms/qseries"
)

// Strategy names.
const (
	StrategyCode    = "code"
	StrategyLattice = "lattice"
	StrategyBoth    = "both"
)

// Sign modes: which negation patterns accompany each permutation class.
const (
	// SignsNone keeps plain permutations.
	SignsNone = "none"
	// SignsNegate adds ε_{1..N}·σ.
	SignsNegate = "negate"
	// SignsAll adds one negation pattern per subset of σ's cycles.
	SignsAll = "all"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the full run configuration.
type Config struct {
	Code       CodeConfig    `yaml:"code"`
	Strategy   string        `yaml:"strategy"`
	Precision  int           `yaml:"precision"`
	Signs      string        `yaml:"signs"`
	Classes    ClassesConfig `yaml:"classes"`
	VOA        bool          `yaml:"voa"`
	Lookup     bool          `yaml:"lookup"`
	MaxVectors int           `yaml:"max_vectors"`
	// Subgroups lists generator sets in signed cycle notation, e.g. "(1,2)(3,4) neg[5]".
	Subgroups [][]string   `yaml:"subgroups"`
	Output    OutputConfig `yaml:"output"`
}

// CodeConfig selects a built-in code or gives generator rows.
type CodeConfig struct {
	Name       string   `yaml:"name"`
	Generators []string `yaml:"generators"`
}

// ClassesConfig bounds conjugacy class enumeration.
type ClassesConfig struct {
	ExactLimit int64 `yaml:"exact_limit"`
	Samples    int   `yaml:"samples"`
	Seed       int64 `yaml:"seed"`
	// Max caps the number of classes processed; 0 means all.
	Max int `yaml:"max"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Plain bool `yaml:"plain"`
	// Terms is the number of series coefficients printed; 0 prints all.
	Terms int `yaml:"terms"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Code:       CodeConfig{Name: "e8"},
		Strategy:   StrategyCode,
		Precision:  qseries.DefaultPrecision,
		Signs:      SignsNegate,
		Classes:    ClassesConfig{ExactLimit: perm.DefaultExactLimit, Samples: perm.DefaultSamples, Seed: 1},
		VOA:        true,
		Lookup:     true,
		MaxVectors: lattice.DefaultMaxVectors,
		Output:     OutputConfig{Terms: 6},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes YAML into cfg, keeping fields the document leaves out. A `code`
// section replaces cfg.Code as a whole, so generators given in a file are not
// combined with the default code name.
func Parse(data []byte, cfg *Config) error {
	var sections struct {
		Code *yaml.Node `yaml:"code"`
	}
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if sections.Code != nil {
		cfg.Code = CodeConfig{}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	return nil
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	switch c.Strategy {
	case StrategyCode, StrategyLattice, StrategyBoth:
	default:
		return fmt.Errorf("%w: strategy %q", ErrInvalid, c.Strategy)
	}
	switch c.Signs {
	case SignsNone, SignsNegate, SignsAll:
	default:
		return fmt.Errorf("%w: signs %q", ErrInvalid, c.Signs)
	}
	if c.Precision <= 0 {
		return fmt.Errorf("%w: precision %d", ErrInvalid, c.Precision)
	}
	if c.Code.Name == "" && len(c.Code.Generators) == 0 {
		return fmt.Errorf("%w: no code given", ErrInvalid)
	}
	if c.Code.Name != "" && len(c.Code.Generators) > 0 {
		return fmt.Errorf("%w: both a code name and generators given", ErrInvalid)
	}
	if c.Classes.ExactLimit < 0 || c.Classes.Samples <= 0 || c.Classes.Max < 0 {
		return fmt.Errorf("%w: class limits", ErrInvalid)
	}
	if c.MaxVectors <= 0 {
		return fmt.Errorf("%w: max_vectors %d", ErrInvalid, c.MaxVectors)
	}
	if c.Output.Terms < 0 {
		return fmt.Errorf("%w: output terms %d", ErrInvalid, c.Output.Terms)
	}

	return nil
}
