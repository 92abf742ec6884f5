// Package phragmen enumerates every committee Sequential Phragmén can return
// when all ties are explored.
//
// What:
//
//   - Voters carry a load, initially 0. Adding candidate c to a partial
//     committee sets the load of each approver of c to
//     (Σ loads of c's approvers + 1) / |approvers(c)|.
//   - Every partial committee branches on each non-member whose resulting
//     load is minimal for that committee (local arg-min).
//   - After each round only the committees whose maximum voter load equals the
//     round minimum survive (global cut-off).
//   - Partial committees are keyed by their sorted member tuple, so different
//     orders reaching the same set merge. When they disagree on loads the
//     lower maximum load wins, then the earlier one.
//
// Loads are exact rationals. A candidate nobody approves gets the sentinel
// load m·n and is never chosen while an approved candidate remains.
//
// Errors:
//
//   - ErrCommitteeSize: k < 1.
//   - ErrNotEnoughApproved: fewer than k candidates are approved by anyone.
//   - ErrTimeLimit: the WithTimeLimit budget expired.
//
// Complexity: O(k · B · m · n) rational operations where B is the number of
// surviving tied committees per round (1 without ties).
package phragmen
