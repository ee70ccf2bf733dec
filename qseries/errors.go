// SPDX-License-Identifier: MIT

package qseries

import (
	"errors"
	"fmt"
)

var (
	// ErrDenominator is returned for non-positive or incompatible exponent denominators.
	ErrDenominator = errors.New("qseries: invalid exponent denominator")

	// ErrPrecisionMismatch is returned when series from different rings meet.
	ErrPrecisionMismatch = errors.New("qseries: precision mismatch")

	// ErrNotUnit is returned when inverting a series whose constant term is not ±1.
	ErrNotUnit = errors.New("qseries: constant term is not a unit")

	// ErrFractionalExponent is returned by Collapse when a coefficient survives at a
	// non-integral exponent.
	ErrFractionalExponent = errors.New("qseries: fractional exponent")

	// ErrZeroSeries is returned when normalising an expansion of the zero series.
	ErrZeroSeries = errors.New("qseries: zero series")
)

func seriesErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
