// SPDX-License-Identifier: MIT

package gf2

import (
	"errors"
	"fmt"
)

var (
	// ErrTooWide is returned when a vector or matrix needs more than MaxBits columns.
	ErrTooWide = errors.New("gf2: more than 64 columns")

	// ErrBadShape is returned for non-positive column counts.
	ErrBadShape = errors.New("gf2: invalid shape")

	// ErrBadLiteral is returned by Parse for characters other than 0, 1 and separators.
	ErrBadLiteral = errors.New("gf2: invalid binary literal")

	// ErrSpanTooLarge is returned when a row space has more than 2^MaxSpanDim words.
	ErrSpanTooLarge = errors.New("gf2: span too large to enumerate")

	// ErrNonLinear is returned when a Form has a non-vanishing quadratic part
	// where a linear functional was required.
	ErrNonLinear = errors.New("gf2: form is not linear")
)

// gf2Errorf attaches an operation tag while keeping the sentinel matchable.
func gf2Errorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
