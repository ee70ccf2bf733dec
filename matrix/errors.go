// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels return these sentinels, optionally wrapped with an operation tag via
// matrixErrorf; tests match them with errors.Is. Panics are reserved for invalid
// functional options (programmer error).

package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Mul where a.Cols != b.Rows, or a non-square input to a factorisation.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the configured epsilon.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrSingular is returned when a zero pivot is encountered during LU
	// in a non-pivoting scheme.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrNotPositiveDefinite is returned by LDL when a pivot is ≤ eps.
	ErrNotPositiveDefinite = errors.New("matrix: matrix is not positive definite")
)
