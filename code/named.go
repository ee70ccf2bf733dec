// SPDX-License-Identifier: MIT

package code

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/codeforms/gf2"
	"github.com/katalvlaran/codeforms/perm"
)

// hamming8 rows: bit i is coordinate i.
var hamming8 = []gf2.Word{0b00001111, 0b11110000, 0b00110011, 0b01010101}

// golayPoly lists the exponents of the generator polynomial of the binary Golay code
// of length 23.
var golayPoly = []int{0, 2, 4, 5, 6, 10, 11}

// m24Gens generate M24 on the extended Golay code: x ↦ x+1, x ↦ 2x, x ↦ -1/x and
// Conway's δ on PSL(2,23) ∪ {∞}; point 23 is ∞.
var m24Gens = [][]int{
	{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 0, 23},
	{0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19, 21, 23},
	{23, 22, 11, 15, 17, 9, 19, 13, 20, 5, 16, 2, 21, 7, 18, 3, 10, 4, 14, 6, 8, 12, 1, 0},
	{0, 18, 6, 3, 2, 21, 1, 5, 16, 12, 7, 19, 8, 9, 17, 15, 13, 11, 4, 22, 10, 20, 14, 23},
}

type builder func() (*Code, error)

var registry = map[string]builder{
	"e8":   func() (*Code, error) { return New("e8", 8, hamming8...) },
	"e8e8": e8e8,
	"d16":  d16,
	"g24":  golay,
}

// Names lists the built-in codes in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Named returns a built-in code.
func Named(name string) (*Code, error) {
	b, ok := registry[name]
	if !ok {
		return nil, codeErrorf("Named", fmt.Errorf("%w: %q", ErrUnknownCode, name))
	}

	return b()
}

func e8e8() (*Code, error) {
	rows := make([]gf2.Word, 0, 8)
	for _, r := range hamming8 {
		rows = append(rows, r, r<<8)
	}

	return New("e8e8", 16, rows...)
}

// d16 is d16+: the even-weight words supported on coordinate pairs, glued with
// 0101...01.
func d16() (*Code, error) {
	rows := make([]gf2.Word, 0, 8)
	for i := 0; i < 7; i++ {
		rows = append(rows, gf2.Word(0b1111)<<uint(2*i))
	}
	var glue gf2.Word
	for i := 0; i < 16; i += 2 {
		glue |= gf2.Bit(i)
	}

	return New("d16", 16, append(rows, glue)...)
}

func golay() (*Code, error) {
	rows := make([]gf2.Word, 12)
	for i := range rows {
		for _, e := range golayPoly {
			rows[i] |= gf2.Bit((e + i) % 23)
		}
		rows[i] |= gf2.Bit(23)
	}
	c, err := New("g24", 24, rows...)
	if err != nil {
		return nil, err
	}
	for _, im := range m24Gens {
		p, err := perm.New(im)
		if err != nil {
			return nil, err
		}
		if !c.IsAutomorphism(p) {
			return nil, codeErrorf("golay", fmt.Errorf("generator %s is not an automorphism", p))
		}
		c.known = append(c.known, p)
	}

	return c, nil
}
