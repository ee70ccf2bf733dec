// SPDX-License-Identifier: MIT

package lattice

import (
	"errors"
	"fmt"
)

var (
	// ErrNotIntegral is returned when x·y/Scale is not an integer for basis vectors.
	ErrNotIntegral = errors.New("lattice: inner products not integral")

	// ErrShape is returned for ragged or mismatched integer matrices.
	ErrShape = errors.New("lattice: shape mismatch")

	// ErrDegenerate is returned when the basis is linearly dependent.
	ErrDegenerate = errors.New("lattice: degenerate basis")

	// ErrEnumerationBudget is returned when theta enumeration exceeds its vector budget.
	ErrEnumerationBudget = errors.New("lattice: enumeration budget exhausted")

	// ErrNumeric is returned when the float factorisation driving enumeration does not
	// reproduce the Gram matrix.
	ErrNumeric = errors.New("lattice: Gram factorisation numerically unreliable")

	// ErrTooLarge is returned when a Gram entry does not fit in int64.
	ErrTooLarge = errors.New("lattice: entry exceeds int64")
)

func latticeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
