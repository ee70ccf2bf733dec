// Package matrix provides the float64 kernels behind lattice-vector enumeration.
//
// The package provides:
//
//   - Dense, a row-major matrix with bounds-checked At/Set and a NaN/Inf guard.
//   - Mul and Transpose for small dense products, and Residual to check a
//     factorisation against its input.
//   - LU (Doolittle, no pivoting) and LDL, the symmetric positive-definite
//     factorisation G = L·D·Lᵀ whose entries are the Fincke–Pohst coefficients
//     q_ii = D_i and q_ij = L_ji.
//
// Exact arithmetic lives elsewhere (math/big in package lattice); this package is
// only used where a floating-point bound is acceptable and is re-checked exactly.
//
// Numeric policy (epsilon, NaN/Inf validation) is configured per call through
// functional options; see options.go.
package matrix
