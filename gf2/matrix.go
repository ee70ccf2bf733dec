// SPDX-License-Identifier: MIT

// Package gf2 - row-packed binary matrices.
//
// Purpose:
//   - Hold generator and parity-check matrices as one Word per row.
//   - Provide elimination (RREF), null spaces and row-space enumeration.
//
// Determinism:
//   - Pivot columns are chosen in ascending order; ties never depend on map order.
package gf2

import (
	"math/bits"
	"strings"
)

// MaxSpanDim bounds Span: at most 2^MaxSpanDim words are visited.
const MaxSpanDim = 30

// Matrix is a binary matrix stored row-wise; only the low Cols bits of each row are used.
type Matrix struct {
	Rows []Word
	Cols int
}

// NewMatrix builds a matrix with the given column count. Bits above cols are masked.
func NewMatrix(cols int, rows ...Word) (*Matrix, error) {
	if cols <= 0 {
		return nil, gf2Errorf("NewMatrix", ErrBadShape)
	}
	if cols > MaxBits {
		return nil, gf2Errorf("NewMatrix", ErrTooWide)
	}
	mask := Mask(cols)
	out := &Matrix{Rows: make([]Word, len(rows)), Cols: cols}
	for i, r := range rows {
		out.Rows[i] = r & mask
	}

	return out, nil
}

// Clone returns an independent copy.
func (m *Matrix) Clone() *Matrix {
	rows := make([]Word, len(m.Rows))
	copy(rows, m.Rows)

	return &Matrix{Rows: rows, Cols: m.Cols}
}

// RREF returns the reduced row echelon form of m (zero rows dropped) and the pivot
// column of every returned row.
//
// Implementation:
//   - Stage 1: copy rows; walk columns 0..Cols-1.
//   - Stage 2: for each column pick the first remaining row with a one, swap it up
//     and clear that column in every other row.
//
// Complexity:
//   - Time O(Cols·Rows), Space O(Rows).
func (m *Matrix) RREF() (*Matrix, []int) {
	rows := make([]Word, len(m.Rows))
	copy(rows, m.Rows)

	var (
		pivots = make([]int, 0, len(rows))
		rank   int
	)
	for col := 0; col < m.Cols && rank < len(rows); col++ {
		sel := -1
		for r := rank; r < len(rows); r++ {
			if rows[r].Has(col) {
				sel = r
				break
			}
		}
		if sel < 0 {
			continue
		}
		rows[rank], rows[sel] = rows[sel], rows[rank]
		for r := range rows {
			if r != rank && rows[r].Has(col) {
				rows[r] ^= rows[rank]
			}
		}
		pivots = append(pivots, col)
		rank++
	}

	return &Matrix{Rows: rows[:rank], Cols: m.Cols}, pivots
}

// Rank returns the GF(2) rank.
func (m *Matrix) Rank() int {
	_, piv := m.RREF()

	return len(piv)
}

// Kernel returns a basis of the right null space {x : r·x = 0 for every row r}.
// Basis vectors are listed by ascending free column.
func (m *Matrix) Kernel() []Word {
	red, piv := m.RREF()
	isPivot := make([]bool, m.Cols)
	for _, p := range piv {
		isPivot[p] = true
	}

	out := make([]Word, 0, m.Cols-len(piv))
	for f := 0; f < m.Cols; f++ {
		if isPivot[f] {
			continue
		}
		x := Bit(f)
		for i, row := range red.Rows {
			if row.Has(f) {
				x |= Bit(piv[i])
			}
		}
		out = append(out, x)
	}

	return out
}

// Contains reports whether w lies in the row space of m.
func (m *Matrix) Contains(w Word) bool {
	red, piv := m.RREF()
	w &= Mask(m.Cols)
	for i, p := range piv {
		if w.Has(p) {
			w ^= red.Rows[i]
		}
	}

	return w == 0
}

// MulVec returns the word whose bit r is the inner product of row r with x.
func (m *Matrix) MulVec(x Word) Word {
	var out Word
	for r, row := range m.Rows {
		if Dot(row, x) {
			out |= Bit(r)
		}
	}

	return out
}

// Span visits every word of the row space in Gray-code order, starting at zero.
// The rows are assumed independent; use RREF first otherwise. Returning false from
// visit stops the walk early.
func (m *Matrix) Span(visit func(Word) bool) error {
	k := len(m.Rows)
	if k > MaxSpanDim {
		return gf2Errorf("Span", ErrSpanTooLarge)
	}
	cur := Word(0)
	if !visit(cur) {
		return nil
	}
	total := uint64(1) << uint(k)
	for i := uint64(1); i < total; i++ {
		cur ^= m.Rows[bits.TrailingZeros64(i)]
		if !visit(cur) {
			return nil
		}
	}

	return nil
}

// String renders one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	for _, r := range m.Rows {
		sb.WriteString(r.Format(m.Cols))
		sb.WriteByte('\n')
	}

	return sb.String()
}
