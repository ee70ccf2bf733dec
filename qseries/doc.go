// Package qseries implements truncated q-expansions with exact integer coefficients.
//
// A Series holds the coefficients of q^{i/Den} for 0 ≤ i/Den < Prec. Den is 1 for
// ordinary series and 4 for the θ2 family, whose exponents live in (1/4)Z. All series
// are created by a Ring, which fixes the precision once at construction:
//
//	r := qseries.NewRing(qseries.WithPrecision(12))
//	theta := r.Theta3(1)
//
// An Expansion is q^Order · Series with a rational Order, the shape of eta products
// (leading power Σ ℓ r_ℓ / 24) and of eta quotients.
//
// Building blocks:
//   - EulerProduct(m) = ∏_{n≥1} (1 − q^{mn}) from the pentagonal number theorem;
//   - EtaProduct(frame) = ∏ η(ℓτ)^{r_ℓ};
//   - Theta2/3/4 by direct lattice sums, and ThetaFromEta by the eta identities
//     θ3 = η(2τ)^5/(η(τ)²η(4τ)²), θ2 = 2η(4τ)²/η(2τ), θ4 = η(τ)²/η(2τ).
package qseries
