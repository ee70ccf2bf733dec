// SPDX-License-Identifier: MIT

package qseries

import (
	"math/big"
)

// Expansion is q^Order · S with a rational leading power.
type Expansion struct {
	Order *big.Rat
	S     *Series
}

// Mul returns e·f.
func (e Expansion) Mul(f Expansion) (Expansion, error) {
	s, err := e.S.Mul(f.S)
	if err != nil {
		return Expansion{}, seriesErrorf("Expansion.Mul", err)
	}

	return Expansion{Order: new(big.Rat).Add(e.Order, f.Order), S: s}, nil
}

// Div returns e/f; f.S must have constant term ±1.
func (e Expansion) Div(f Expansion) (Expansion, error) {
	s, err := e.S.Div(f.S)
	if err != nil {
		return Expansion{}, seriesErrorf("Expansion.Div", err)
	}

	return Expansion{Order: new(big.Rat).Sub(e.Order, f.Order), S: s}, nil
}

// Integral reports whether the series part has integral exponent steps.
func (e Expansion) Integral() bool {
	_, err := e.S.Collapse()

	return err == nil
}

// ToSeries writes e as a plain series over den. Order·den must be a non-negative
// integer.
func (e Expansion) ToSeries(den int) (*Series, error) {
	shift := new(big.Rat).Mul(e.Order, big.NewRat(int64(den), 1))
	if !shift.IsInt() || shift.Sign() < 0 {
		return nil, seriesErrorf("ToSeries", ErrDenominator)
	}
	s, err := e.S.Refine(lcm(den, e.S.Den))
	if err != nil {
		return nil, seriesErrorf("ToSeries", err)
	}
	if s.Den != den {
		return nil, seriesErrorf("ToSeries", ErrDenominator)
	}

	return s.Shift(int(shift.Num().Int64())), nil
}

// String renders "q^(-1/3) * (1 + 248q + ... + O(q^10))", or just the series part for
// order 0.
func (e Expansion) String() string {
	if e.Order == nil || e.Order.Sign() == 0 {
		return e.S.String()
	}
	ord := e.Order.RatString()
	if !e.Order.IsInt() {
		ord = "(" + ord + ")"
	}

	return "q^" + ord + " * (" + e.S.String() + ")"
}
