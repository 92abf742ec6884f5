// SPDX-License-Identifier: MIT

// Package approval holds the election input: candidates, approval ballots and
// the immutable voter×candidate approval matrix every other package reads.
//
// What:
//
//   - Profile maps voters to their approved candidates (ballots are sets).
//   - Matrix is the derived n×m binary relation, stored row-major in a flat
//     slice, with per-candidate approval counts precomputed.
//   - Committee is a set of candidates; Score reports its coverage and
//     approval score.
//
// Determinism:
//
//   - Rows follow ascending VoterID; columns follow Profile.Candidates order.
//   - Committee.Key sorts before formatting, so equal sets share one key.
//
// Complexity:
//
//   - NewMatrix: O(n·m) time and memory.
//   - Approves / ApprovalCount: O(1).
//   - Score: O(n·k).
package approval
