// SPDX-License-Identifier: MIT

// Package oracle is the narrow optimisation-oracle surface used by the
// axiom checker and the committee search engine.
//
// What:
//
//   - Model declares binary, bounded-integer and [lb,ub] "continuous" variables,
//     linear constraints with integer coefficients and an optional linear objective.
//   - Solve returns a tri-state Result: Optimal (value + assignment), Infeasible,
//     or Error (detail wrapped around ErrSolver).
//   - NewPB is the default backend: a pseudo-boolean encoding solved by
//     github.com/crillab/gophersat.
//
// Why:
//
//   - Core algorithms never touch solver-native types; swapping the backend only
//     requires another Factory.
//   - Infeasibility is a definite negative answer and is returned as a value;
//     solver failures (panics, cancellation, deadlines) are never confused with it.
//
// Encoding (PB backend):
//
//   - Binary variable → one SAT variable.
//   - Integer variable in [lb,ub] → lb + Σ 2^b·bit_b with an extra upper-bound
//     constraint when ub−lb is not of the form 2^w−1.
//   - Continuous variable in [lb,ub] → integer variable in [⌈lb⌉,⌊ub⌋]. This is
//     sound only for models whose constraints force integral values at every
//     feasible point (true for the coverage indicators built by package search).
//   - Objectives over bit-encoded integers are valid but can stall the PB
//     optimisation loop; package search keeps its objectives on 0/1 terms.
//
// Cancellation (PB backend):
//
//   - Solve returns Status Error as soon as ctx is done. gophersat has no
//     interrupt hook, so the abandoned search keeps running in its goroutine
//     until it ends on its own.
//
// Complexity:
//
//   - Encoding: O(T·log U) where T is the number of terms and U the widest integer range.
//   - Solving: exponential in the worst case (delegated to the SAT engine).
//
// Errors:
//
//   - ErrSolver: the backend failed (panic, cancellation, deadline, bad encoding).
//   - ErrUnknownVar: an expression referenced a variable of another model.
//   - Result.Failure wraps ErrSolver for every result that is not a definite
//     answer, including a bare Error result with a nil Err.
package oracle
