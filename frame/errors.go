// SPDX-License-Identifier: MIT

package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSquare is returned by CharPoly for a non-square matrix.
	ErrNotSquare = errors.New("frame: matrix not square")

	// ErrInexact is returned when an integer division leaves a remainder.
	ErrInexact = errors.New("frame: inexact integer division")

	// ErrNotMonic is returned by DivMod for a non-monic divisor.
	ErrNotMonic = errors.New("frame: divisor not monic")

	// ErrNotCyclotomic is returned when a characteristic polynomial is not a product
	// of cyclotomic polynomials, so the matrix has infinite order.
	ErrNotCyclotomic = errors.New("frame: polynomial is not a product of cyclotomic factors")
)

func frameErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
