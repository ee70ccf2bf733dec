// SPDX-License-Identifier: MIT

// Package quotient divides theta series by eta products.
package quotient

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/katalvlaran/codeforms/frame"
	"github.com/katalvlaran/codeforms/qseries"
)

// ErrNonIntegral is returned when a quotient keeps a fractional exponent step, which
// no eta quotient of an even unimodular lattice automorphism can.
var ErrNonIntegral = errors.New("quotient: non-integral q-expansion")

// Evaluate returns θ/η truncated to the ring precision. The leading power of η moves to
// the result's Order; its series part must have integral exponent steps.
func Evaluate(theta *qseries.Series, eta qseries.Expansion) (qseries.Expansion, error) {
	num := qseries.Expansion{Order: new(big.Rat), S: theta}
	q, err := num.Div(eta)
	if err != nil {
		return qseries.Expansion{}, fmt.Errorf("Evaluate: %w", err)
	}
	if !q.Integral() {
		return qseries.Expansion{}, fmt.Errorf("Evaluate: %w", ErrNonIntegral)
	}
	s, err := q.S.Collapse()
	if err != nil {
		return qseries.Expansion{}, fmt.Errorf("Evaluate: %w", ErrNonIntegral)
	}
	q.S = s

	return q, nil
}

// Shape evaluates θ/η_s for a frame shape s.
func Shape(r *qseries.Ring, theta *qseries.Series, s frame.Shape) (qseries.Expansion, error) {
	eta, err := s.EtaProduct(r)
	if err != nil {
		return qseries.Expansion{}, fmt.Errorf("Shape: %w", err)
	}

	return Evaluate(theta, eta)
}

// Relative evaluates θ divided by the eta product of s relative to 1^n. For the
// identity of an n-dimensional lattice the divisor is 1 and the result is θ itself.
func Relative(r *qseries.Ring, theta *qseries.Series, s frame.Shape, n int) (qseries.Expansion, error) {
	return Shape(r, theta, s.Relative(n))
}
