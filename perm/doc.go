// Package perm implements permutations, signed permutations and permutation groups.
//
// Points are 0-based integers; every textual form (String, ParseCycles) is 1-based
// so output lines up with the usual {1..N} coordinate labels of a code.
//
// Composition reads left to right: p.Then(q) applies p first and q second.
//
//   - Perm: images slice with cycle, order and power helpers.
//   - Signed: ε_X σ acting on Z^N by e_i ↦ ±e_{σ(i)}; lifts to a permutation of
//     the 2N vectors ±e_i so that lattice automorphism groups are ordinary
//     permutation groups.
//   - Group: deterministic Schreier–Sims stabilizer chain: Order, Contains,
//     Elements, Random.
//   - ConjugacyClasses: exact for small groups, by cycle-type sampling otherwise.
package perm
