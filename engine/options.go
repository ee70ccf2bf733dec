// SPDX-License-Identifier: MIT

package engine

import (
	"github.com/katalvlaran/codeforms/assemble"
	"github.com/katalvlaran/codeforms/lattice"
	"github.com/katalvlaran/codeforms/qseries"
)

// Option configures either engine; options that do not apply are ignored.
type Option func(*options)

type options struct {
	ring       *qseries.Ring
	basis      assemble.ThetaBasis
	maxVectors int
}

func gatherOptions(opts ...Option) options {
	o := options{basis: assemble.Direct, maxVectors: lattice.DefaultMaxVectors}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.ring == nil {
		o.ring = qseries.NewRing()
	}

	return o
}

// WithRing sets the series ring (and so the precision).
func WithRing(r *qseries.Ring) Option {
	return func(o *options) { o.ring = r }
}

// WithThetaBasis selects the θ2/θ3 expansion of the code engine.
func WithThetaBasis(b assemble.ThetaBasis) Option {
	return func(o *options) { o.basis = b }
}

// WithMaxVectors bounds the lattice engine's enumeration.
func WithMaxVectors(n int) Option {
	return func(o *options) { o.maxVectors = n }
}
