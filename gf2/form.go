// SPDX-License-Identifier: MIT

package gf2

// Form is a polynomial of degree at most two over GF(2) in Vars variables u_0..u_{k-1}:
//
//	F(u) = Const + Σ Lin_i u_i + Σ_{i<j} Quad_ij u_i u_j
//
// u_i² = u_i, so no squared terms are stored. Quad[i] holds the coefficients
// of u_i u_j for j > i; bits at or below i are ignored.
type Form struct {
	Vars  int
	Const bool
	Lin   Word
	Quad  []Word
}

// NewForm returns the zero form in vars variables.
func NewForm(vars int) (*Form, error) {
	if vars < 0 {
		return nil, gf2Errorf("NewForm", ErrBadShape)
	}
	if vars > MaxBits {
		return nil, gf2Errorf("NewForm", ErrTooWide)
	}

	return &Form{Vars: vars, Quad: make([]Word, vars)}, nil
}

// Polarize recovers the unique form agreeing with f on 0, on every e_i and on every
// e_i+e_j. When f is itself of degree ≤ 2 the result equals f everywhere.
//
// Implementation:
//   - Const = f(0); Lin_i = f(e_i) + f(0);
//   - Quad_ij = f(e_i+e_j) + f(e_i) + f(e_j) + f(0) (the polar form).
//
// Complexity:
//   - O(k²) evaluations of f.
func Polarize(vars int, f func(u Word) bool) (*Form, error) {
	out, err := NewForm(vars)
	if err != nil {
		return nil, err
	}
	f0 := f(0)
	single := make([]bool, vars)
	out.Const = f0
	for i := 0; i < vars; i++ {
		single[i] = f(Bit(i))
		if single[i] != f0 {
			out.Lin |= Bit(i)
		}
	}
	for i := 0; i < vars; i++ {
		for j := i + 1; j < vars; j++ {
			if f(Bit(i)|Bit(j)) != (single[i] != (single[j] != f0)) {
				out.Quad[i] |= Bit(j)
			}
		}
	}

	return out, nil
}

// Eval returns F(u).
func (f *Form) Eval(u Word) bool {
	v := f.Const != Dot(f.Lin, u)
	for i := 0; i < f.Vars; i++ {
		if u.Has(i) && Dot(f.Quad[i]&^Mask(i+1), u) {
			v = !v
		}
	}

	return v
}

// IsLinear reports whether every quadratic coefficient vanishes.
func (f *Form) IsLinear() bool {
	for i, q := range f.Quad {
		if q&^Mask(i+1) != 0 {
			return false
		}
	}

	return true
}

// IsZero reports whether F is identically zero.
func (f *Form) IsZero() bool {
	return !f.Const && f.Lin&Mask(f.Vars) == 0 && f.IsLinear()
}

// Zeros returns a basis of the solution space {u : F(u) = 0}. The solution set is a
// subspace only for homogeneous linear forms; any quadratic term yields ErrNonLinear.
// A constant-one form has no solutions and yields an empty basis with ok == false.
func (f *Form) Zeros() (basis []Word, ok bool, err error) {
	if !f.IsLinear() {
		return nil, false, gf2Errorf("Zeros", ErrNonLinear)
	}
	if f.Vars == 0 {
		return nil, !f.Const, nil
	}
	if f.Const {
		// F(u) = 1 + ℓ(u): zeros form a coset, not a subspace.
		return nil, false, nil
	}
	m, err := NewMatrix(f.Vars, f.Lin)
	if err != nil {
		return nil, false, err
	}

	return m.Kernel(), true, nil
}
