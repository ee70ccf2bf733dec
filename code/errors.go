// SPDX-License-Identifier: MIT

package code

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCode is returned by Named for an unregistered name.
	ErrUnknownCode = errors.New("code: unknown code name")

	// ErrLength is returned for lengths outside 1..64 or rows of the wrong width.
	ErrLength = errors.New("code: invalid length")

	// ErrEmpty is returned when the generator rows span only zero.
	ErrEmpty = errors.New("code: zero code")

	// ErrNotSelfDual is returned by Validate when C ≠ C^⊥.
	ErrNotSelfDual = errors.New("code: not self-dual")

	// ErrNotDoublyEven is returned by Validate when some codeword weight is not 0 mod 4.
	ErrNotDoublyEven = errors.New("code: not doubly even")

	// ErrSearchBudget is returned when the automorphism search exceeds its node budget.
	ErrSearchBudget = errors.New("code: automorphism search budget exhausted")
)

func codeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
