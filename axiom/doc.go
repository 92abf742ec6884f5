// SPDX-License-Identifier: MIT

// Package axiom decides Justified Representation (JR), Proportional JR (PJR)
// and Extended JR (EJR) for a fixed committee.
//
// What:
//
//   - IsJR is combinatorial: drop every voter the committee covers, then ask
//     whether some candidate is approved by at least n/k of the rest.
//   - IsPJR / IsEJR search, for ell = 1..k, for a cohesive blocking group of
//     ⌈ell·n/k⌉ voters sharing ell commonly approved candidates that the
//     committee under-represents. Each ell is one oracle feasibility query;
//     the first witness is decisive.
//   - Check returns the (JR, EJR, PJR) triple, cheapest test first.
//
// Under-representation criteria:
//
//   - PJR: at most ell−1 committee members are approved by any selected voter.
//   - EJR: some selected voter approves fewer than ell members, encoded as
//     m·(1 − x_i) ≥ |A_i ∩ W| − ell + 1 for every voter i.
//
// The two encodings are intentionally not symmetric: PJR is a group criterion,
// EJR an individual one.
//
// Invariant: EJR ⇒ PJR ⇒ JR for every matrix and committee.
//
// Errors:
//
//   - ErrEmptyCommittee, ErrDuplicateMember, approval.ErrUnknownCandidate:
//     raised before any oracle call.
//   - oracle.ErrSolver: propagated unmodified (wrapped with context), never
//     read as "axiom fails".
package axiom
