// SPDX-License-Identifier: MIT

package approval

import "errors"

var (
	// ErrNoCandidates is returned when a profile declares no candidates.
	ErrNoCandidates = errors.New("approval: profile has no candidates")

	// ErrNoVoters is returned when a profile has no ballots.
	ErrNoVoters = errors.New("approval: profile has no voters")

	// ErrDuplicateCandidate is returned when a candidate is declared twice.
	ErrDuplicateCandidate = errors.New("approval: duplicate candidate")

	// ErrUnknownCandidate is returned when a ballot or committee names a
	// candidate that is not part of the profile.
	ErrUnknownCandidate = errors.New("approval: unknown candidate")

	// ErrOutOfRange indicates a voter row or candidate column outside the matrix.
	ErrOutOfRange = errors.New("approval: index out of range")

	// ErrNonRectangular indicates rows of differing lengths in FromRows.
	ErrNonRectangular = errors.New("approval: all rows must have the same length")

	// ErrNonBinary indicates a FromRows entry other than 0 or 1.
	ErrNonBinary = errors.New("approval: matrix entries must be 0 or 1")
)
