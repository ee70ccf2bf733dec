// Package code holds binary linear codes and their automorphism groups.
//
// A Code is stored as a reduced generator matrix over GF(2) (package gf2). Built-in
// codes cover the usual Construction A inputs:
//
//	e8    extended Hamming [8,4,4]
//	e8e8  e8 ⊕ e8          [16,8,4]
//	d16   d16+             [16,8,4]
//	g24   extended Golay   [24,12,8]
//
// Automorphisms are coordinate permutations (package perm). Named codes may carry
// known generators; every other code gets a backtracking search that builds a
// stabilizer chain level by level, pruned with minimum-weight words.
package code
