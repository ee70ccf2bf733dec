// SPDX-License-Identifier: MIT

// Package matrix: functional configuration of the numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

// DefaultEpsilon defines the non-negative tolerance used by structural checks
// (symmetry) and by LDL's positive-pivot test.
const DefaultEpsilon = 1e-9

const panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	eps float64 // >= 0; DefaultEpsilon
}

// WithEpsilon sets the numeric tolerance eps.
// Implementation:
//   - Stage 1: validate eps is finite and ≥ 0.
//   - Stage 2: return a setter that writes eps into Options.
//
// Errors:
//   - Panics with a stable message when eps is invalid.
//
// AI-Hints:
//   - Gram matrices of integral lattices are exact in float64 up to rank ~64; 1e-9
//     only has to separate a zero pivot from a genuine one.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// gatherOptions resolves setters over the defaults.
// Complexity: O(len(opts)).
func gatherOptions(opts ...Option) Options {
	o := Options{eps: DefaultEpsilon}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
