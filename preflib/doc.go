// SPDX-License-Identifier: MIT

// Package preflib reads PrefLib partial-order election files (.toc, .soi and
// the like) into approval profiles.
//
// Two layouts are accepted:
//
//   - Legacy: a candidate count, one "id,name" line per candidate, a
//     "voters,sum,unique" header line, then ballot lines
//     "count,g1,g2,{a,b},...".
//   - Current: "# KEY: value" metadata lines (NUMBER ALTERNATIVES and
//     ALTERNATIVE NAME i are read) followed by ballot lines
//     "count: g1,{a,b},...".
//
// A ballot is a sequence of indifference groups, best first. The first
// groupsApproved groups are approved. Every ballot line is expanded into count
// voters with consecutive ids. Candidate ids are shifted from PrefLib's 1-based
// numbering to 0-based approval.Candidate values.
//
// Ballot and header lines are parsed with a participle grammar.
package preflib
