// SPDX-License-Identifier: MIT

package perm

import (
	"errors"
	"fmt"
)

var (
	// ErrNotPermutation is returned when an images slice is not a bijection.
	ErrNotPermutation = errors.New("perm: not a permutation")

	// ErrDegreeMismatch is returned when permutations of different degrees meet.
	ErrDegreeMismatch = errors.New("perm: degree mismatch")

	// ErrBadCycles is returned by ParseCycles on malformed input.
	ErrBadCycles = errors.New("perm: malformed cycle notation")

	// ErrNotSignedLift is returned when a permutation of 2N points does not
	// commute with negation and so is not the lift of a signed permutation.
	ErrNotSignedLift = errors.New("perm: not a signed permutation lift")

	// ErrTooLarge is returned when an exact enumeration would exceed its limit.
	ErrTooLarge = errors.New("perm: group too large for exact enumeration")
)

func permErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
