// SPDX-License-Identifier: MIT

// Package search finds committees whose coverage and approval score fall in a
// requested region, optionally constrained by a proportionality axiom.
//
// What:
//
//   - BuildBase assembles the shared constraint model: candidate indicators,
//     voter coverage indicators, the committee size, coverage and approval
//     score variables with their bounds, and optionally the cohesiveness
//     constraint that makes every feasible committee satisfy JR.
//   - Engine.Compute solves the base model once for a chosen Goal.
//   - Engine.ComputeEJRorPJR runs a counterexample-guided loop: solve, check the
//     committee with package axiom, and on failure exclude exactly that
//     committee with a no-good cut before solving again.
//   - Engine.ComputePAV maximises (or pins) the PAV satisfaction.
//   - Engine.ComputeStats derives the coverage/approval extremes used to clip
//     a mesh before a rule is evaluated.
//
// Soundness: every committee reported by ComputeEJRorPJR passed the axiom
// checker. Completeness: a not-found answer is only produced once the oracle
// proves that no remaining committee satisfies the base constraints.
//
// Errors:
//
//   - ErrInvalidConfiguration and its refinements (ErrInvalidGoal,
//     ErrInvalidAxiom, ErrCommitteeSize, ErrNilMatrix) are raised before the
//     oracle is touched.
//   - oracle.ErrSolver is propagated and stops every loop immediately.
//   - Inverted bounds are not an error; the query is simply infeasible.
package search
