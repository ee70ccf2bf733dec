// Package codeforms computes modular invariants of automorphisms of doubly-even
// self-dual binary codes and of their Construction A lattices.
//
// For g = ε_X·σ acting on L_C = (C + 2Z^N)/√2 it produces:
//
//	• the orbit classification of ⟨g⟩ on the coordinates (types I–IV)
//	• the frame shape of g as an eta product
//	• the theta series of the fixed lattice L_C^g
//	• the eta quotient θ_{L^g}(τ) / η_g(τ) as an exact q-expansion
//	• for lattice VOAs V_{L_C}, whether the lift ĝ doubles the order and the
//	  twisted trace characters of ĝ^k
//
// Two independent strategies agree on every element: the code strategy assembles
// theta series from orbit codes and Jacobi theta constants, the lattice strategy
// enumerates vectors of the fixed lattice directly.
//
// Packages, bottom-up:
//
//	gf2/       bit-packed vectors, matrices and quadratic forms over F_2
//	perm/      permutations, signed permutations, Schreier–Sims, conjugacy classes
//	code/      binary codes, weight distributions, automorphism groups
//	orbit/     orbit decomposition and types I–IV
//	qseries/   exact truncated q-series, eta products, Jacobi theta constants
//	frame/     frame shapes and characteristic polynomials
//	matrix/    dense float matrices and LDLᵀ used by vector enumeration
//	lattice/   integral lattices, HNF, LLL, fixed sublattices, theta series
//	assemble/  orbit codes and the per-type theta factor table
//	quotient/  eta quotients
//	engine/    the code and lattice strategies behind one interface
//	voa/       order doubling and twisted trace characters
//	latdb/     embedded catalogue of root and scaled lattices for identification
//	config/    YAML run configuration
//	driver/    per-class evaluation, cross-checking and subgroup runs
//	report/    console rendering
//
// Quick start:
//
//	go run ./cmd/codeforms element --code e8 "neg[1]"
//	go run ./cmd/codeforms run --code g24 --precision 6
package codeforms
