// SPDX-License-Identifier: MIT
// Package matrix provides dense products and factorisations on row-major Dense
// matrices. All functions perform strict fail-fast validation and return clear errors
// on dimension mismatches.
//
// Purpose:
//   - Kernels used by lattice enumeration: Mul, Transpose, LU, LDL, Residual.
//   - Operation tags and shared constants for determinism and error reporting.

package matrix

import (
	"fmt"
	"math"
)

// ZeroPivot is the sentinel for detecting a zero pivot in LU.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opLU        = "LU"
	opLDL       = "LDL"
	opResidual  = "Residual"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul returns the product a·b.
//
// Implementation:
//   - Stage 1: reject nil operands and a.Cols != b.Rows.
//   - Stage 2: accumulate row i of the result as Σ_k a[i,k]·(row k of b), skipping
//     zero a[i,k]; unit-triangular factors are mostly zeros.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opMul, ErrNilMatrix)
	}
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(a.r, b.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	for i := 0; i < a.r; i++ {
		out := res.data[i*b.c : (i+1)*b.c]
		for k, av := range a.data[i*a.c : (i+1)*a.c] {
			if av == 0 {
				continue
			}
			for j, bv := range b.data[k*b.c : (k+1)*b.c] {
				out[j] += av * bv
			}
		}
	}

	return res, nil
}

// Transpose returns mᵀ.
// Complexity: O(r*c).
func Transpose(m *Dense) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opTranspose, ErrNilMatrix)
	}
	res, err := NewDense(m.c, m.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			res.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return res, nil
}

// LU computes the Doolittle factorisation m = L·U without pivoting.
//
// Implementation:
//   - For each row i: U[i][j≥i] = m[i][j] − Σ_{k<i} L[i][k]·U[k][j], then guard the
//     pivot U[i][i], then L[j>i][i] = (m[j][i] − Σ_{k<i} L[j][k]·U[k][i]) / U[i][i].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular (exact zero pivot).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - Symmetric positive-definite inputs never need pivoting; LDL builds on this.
func LU(m *Dense) (*Dense, *Dense, error) {
	if m == nil {
		return nil, nil, matrixErrorf(opLU, ErrNilMatrix)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	n := m.r
	l, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	u, _ := NewDense(n, n)

	dot := func(row, col, upto int) float64 {
		sum := 0.0
		for k := 0; k < upto; k++ {
			sum += l.data[row*n+k] * u.data[k*n+col]
		}

		return sum
	}
	for i := 0; i < n; i++ {
		l.data[i*n+i] = 1
		for j := i; j < n; j++ {
			u.data[i*n+j] = m.data[i*n+j] - dot(i, j, i)
		}
		pivot := u.data[i*n+i]
		if pivot == ZeroPivot {
			return nil, nil, matrixErrorf(opLU, ErrSingular)
		}
		for j := i + 1; j < n; j++ {
			l.data[j*n+i] = (m.data[j*n+i] - dot(j, i, i)) / pivot
		}
	}

	return l, u, nil
}

// LDL factors a symmetric positive-definite matrix as G = L·D·Lᵀ with L unit lower
// triangular and D > 0 diagonal.
//
// Implementation:
//   - Stage 1: ValidateSymmetric(G, eps).
//   - Stage 2: G = L·U by LU; for SPD input U = D·Lᵀ, so D_i = U[i][i].
//   - Stage 3: reject any D_i ≤ eps.
//
// Returns:
//   - *Dense: L (unit lower triangular).
//   - []float64: the diagonal D.
//
// Errors:
//   - ErrDimensionMismatch, ErrAsymmetry, ErrSingular, ErrNotPositiveDefinite.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// Notes:
//   - Fincke–Pohst reads its coefficients directly: q_ii = D_i and q_ij = L[j][i]
//     for j > i, so that x·G·x = Σ_i q_ii (x_i + Σ_{j>i} q_ij x_j)².
func LDL(g *Dense, opts ...Option) (*Dense, []float64, error) {
	if g == nil {
		return nil, nil, matrixErrorf(opLDL, ErrNilMatrix)
	}
	o := gatherOptions(opts...)
	if err := ValidateSymmetric(g, o.eps); err != nil {
		return nil, nil, matrixErrorf(opLDL, err)
	}
	l, u, err := LU(g)
	if err != nil {
		return nil, nil, matrixErrorf(opLDL, err)
	}
	n := g.r
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		d[i] = u.data[i*n+i]
		if d[i] <= o.eps || math.IsNaN(d[i]) {
			return nil, nil, matrixErrorf(opLDL, ErrNotPositiveDefinite)
		}
	}

	return l, d, nil
}

// Residual returns max_ij |(L·diag(D)·Lᵀ − G)_ij|, the reconstruction error of an LDL
// factorisation.
//
// Errors:
//   - ErrNilMatrix, or ErrDimensionMismatch when the shapes of g, l and len(d) disagree.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Residual(g, l *Dense, d []float64) (float64, error) {
	if g == nil || l == nil {
		return 0, matrixErrorf(opResidual, ErrNilMatrix)
	}
	if err := ValidateSquare(g); err != nil {
		return 0, matrixErrorf(opResidual, err)
	}
	n := g.r
	if l.r != n || l.c != n || len(d) != n {
		return 0, matrixErrorf(opResidual, ErrDimensionMismatch)
	}
	ld := &Dense{r: n, c: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			ld.data[i*n+j] = l.data[i*n+j] * d[j]
		}
	}
	lt, err := Transpose(l)
	if err != nil {
		return 0, matrixErrorf(opResidual, err)
	}
	back, err := Mul(ld, lt)
	if err != nil {
		return 0, matrixErrorf(opResidual, err)
	}
	worst := 0.0
	for k, v := range back.data {
		worst = math.Max(worst, math.Abs(v-g.data[k]))
	}

	return worst, nil
}
