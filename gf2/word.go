// SPDX-License-Identifier: MIT

package gf2

import (
	"math/bits"
	"strings"
)

// MaxBits is the widest vector a Word can carry.
const MaxBits = 64

// Word is a binary vector of length at most 64; bit i is coordinate i.
type Word uint64

// Bit returns the unit vector e_i.
func Bit(i int) Word { return Word(1) << uint(i) }

// Has reports whether coordinate i is set.
func (w Word) Has(i int) bool { return w>>uint(i)&1 == 1 }

// Weight returns the Hamming weight of w.
func (w Word) Weight() int { return bits.OnesCount64(uint64(w)) }

// Support returns the set coordinates of w in ascending order (0-based).
func (w Word) Support() []int {
	out := make([]int, 0, w.Weight())
	for x := uint64(w); x != 0; x &= x - 1 {
		out = append(out, bits.TrailingZeros64(x))
	}

	return out
}

// Dot returns the GF(2) inner product a·b.
func Dot(a, b Word) bool { return bits.OnesCount64(uint64(a&b))&1 == 1 }

// FromSupport builds the word with ones exactly at the given 0-based positions.
func FromSupport(points []int) (Word, error) {
	var w Word
	for _, p := range points {
		if p < 0 || p >= MaxBits {
			return 0, gf2Errorf("FromSupport", ErrTooWide)
		}
		w |= Bit(p)
	}

	return w, nil
}

// Parse reads a literal such as "1111 0000" (coordinate 0 first) and returns the
// word and its length. Spaces, underscores and dots are ignored.
func Parse(s string) (Word, int, error) {
	var (
		w Word
		n int
	)
	for _, r := range s {
		switch r {
		case ' ', '_', '.', '\t':
			continue
		case '0', '1':
			if n >= MaxBits {
				return 0, 0, gf2Errorf("Parse", ErrTooWide)
			}
			if r == '1' {
				w |= Bit(n)
			}
			n++
		default:
			return 0, 0, gf2Errorf("Parse", ErrBadLiteral)
		}
	}
	if n == 0 {
		return 0, 0, gf2Errorf("Parse", ErrBadLiteral)
	}

	return w, n, nil
}

// Format renders the first n coordinates of w as a 0/1 string.
func (w Word) Format(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		if w.Has(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}

// Mask returns the word with the first n coordinates set.
func Mask(n int) Word {
	if n >= MaxBits {
		return ^Word(0)
	}

	return Bit(n) - 1
}
