// SPDX-License-Identifier: MIT

package lattice

import "math/big"

// IntMatrix is a row-major integer matrix.
type IntMatrix [][]*big.Int

// NewIntMatrix allocates a zero r×c matrix.
func NewIntMatrix(r, c int) IntMatrix {
	m := make(IntMatrix, r)
	for i := range m {
		m[i] = make([]*big.Int, c)
		for j := range m[i] {
			m[i][j] = new(big.Int)
		}
	}

	return m
}

// FromInt64 converts an int64 matrix.
func FromInt64(a [][]int64) IntMatrix {
	m := make(IntMatrix, len(a))
	for i, row := range a {
		m[i] = make([]*big.Int, len(row))
		for j, v := range row {
			m[i][j] = big.NewInt(v)
		}
	}

	return m
}

// Clone returns a deep copy.
func (m IntMatrix) Clone() IntMatrix {
	out := make(IntMatrix, len(m))
	for i, row := range m {
		out[i] = make([]*big.Int, len(row))
		for j, v := range row {
			out[i][j] = new(big.Int).Set(v)
		}
	}

	return out
}

func (m IntMatrix) cols() int {
	if len(m) == 0 {
		return 0
	}

	return len(m[0])
}

// HNF returns the row Hermite normal form of m with zero rows dropped: pivots move
// strictly right, pivots are positive and entries above a pivot lie in [0, pivot).
//
// Implementation:
//   - Stage 1: for each column, Euclid on the rows at or below the current one
//     (repeatedly pick the smallest non-zero entry and reduce the others by it).
//   - Stage 2: normalise the pivot sign and reduce the rows above it.
//
// Complexity:
//   - Polynomial; entries stay bounded by the pivots thanks to Stage 2.
func HNF(m IntMatrix) IntMatrix {
	h, _ := echelon(m.Clone(), m.cols(), nil)

	return h
}

// IntegerKernel returns a basis of the left kernel {y ∈ Z^r : y·m = 0} of an r×c
// matrix, in Hermite normal form.
func IntegerKernel(m IntMatrix) IntMatrix {
	r := len(m)
	track := NewIntMatrix(r, r)
	for i := 0; i < r; i++ {
		track[i][i].SetInt64(1)
	}
	_, zero := echelon(m.Clone(), m.cols(), track)
	if len(zero) == 0 {
		return nil
	}

	return HNF(zero)
}

// echelon brings rows of a to echelon form in columns 0..cols-1, applying every row
// operation to track as well. It returns the non-zero rows of a and the tracked rows
// whose a-part became zero.
func echelon(a IntMatrix, cols int, track IntMatrix) (IntMatrix, IntMatrix) {
	swap := func(i, j int) {
		a[i], a[j] = a[j], a[i]
		if track != nil {
			track[i], track[j] = track[j], track[i]
		}
	}
	// addMul: row i -= q · row j
	tmp := new(big.Int)
	addMul := func(i, j int, q *big.Int) {
		for c := range a[i] {
			a[i][c].Sub(a[i][c], tmp.Mul(q, a[j][c]))
		}
		if track != nil {
			for c := range track[i] {
				track[i][c].Sub(track[i][c], tmp.Mul(q, track[j][c]))
			}
		}
	}
	negate := func(i int) {
		for _, v := range a[i] {
			v.Neg(v)
		}
		if track != nil {
			for _, v := range track[i] {
				v.Neg(v)
			}
		}
	}

	row := 0
	q := new(big.Int)
	for col := 0; col < cols && row < len(a); col++ {
		for {
			best := -1
			for i := row; i < len(a); i++ {
				if a[i][col].Sign() == 0 {
					continue
				}
				if best < 0 || new(big.Int).Abs(a[i][col]).Cmp(new(big.Int).Abs(a[best][col])) < 0 {
					best = i
				}
			}
			if best < 0 {
				break
			}
			swap(row, best)
			done := true
			for i := row + 1; i < len(a); i++ {
				if a[i][col].Sign() == 0 {
					continue
				}
				q.Quo(a[i][col], a[row][col])
				addMul(i, row, q)
				if a[i][col].Sign() != 0 {
					done = false
				}
			}
			if done {
				break
			}
		}
		if a[row][col].Sign() == 0 {
			continue
		}
		if a[row][col].Sign() < 0 {
			negate(row)
		}
		for i := 0; i < row; i++ {
			// Euclidean division: the pivot is positive, so the entry lands in [0, pivot)
			q.Div(a[i][col], a[row][col])
			if q.Sign() != 0 {
				addMul(i, row, q)
			}
		}
		row++
	}

	var zero IntMatrix
	if track != nil {
		zero = track[row:]
	}

	return a[:row], zero
}
