// Package gf2 provides bit-packed linear algebra over the field with two elements.
//
// A Word holds up to 64 coordinates (bit i is coordinate i, 0-based). Binary codes,
// orbit codes and coefficient vectors of lattice bases are all expressed as Words,
// which keeps every kernel a handful of XOR/popcount instructions.
//
// The package offers:
//
//   - Word helpers: Weight, Support, FromSupport, Parse, Format, Dot.
//   - Matrix: reduced row echelon form, Rank, Kernel (right null space), Contains,
//     MulVec and Span (Gray-code enumeration of the row space).
//   - Form: quadratic polynomials over GF(2) with an explicit linear and polar part,
//     used to solve the small polynomial systems that define kernel sublattices.
//
// All routines are deterministic: pivots are chosen by ascending column index and
// Span visits words in Gray-code order.
package gf2
