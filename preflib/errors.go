// SPDX-License-Identifier: MIT

package preflib

import "errors"

var (
	// ErrSyntax indicates a line that does not match the grammar.
	ErrSyntax = errors.New("preflib: syntax error")
	// ErrHeader indicates a missing or inconsistent header.
	ErrHeader = errors.New("preflib: bad header")
	// ErrCandidate indicates a candidate id outside 1..m.
	ErrCandidate = errors.New("preflib: candidate out of range")
	// ErrGroups indicates groupsApproved < 1.
	ErrGroups = errors.New("preflib: at least one group must be approved")
)
