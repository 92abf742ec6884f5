// SPDX-License-Identifier: MIT

package approval

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Candidate is an opaque candidate identifier.
type Candidate int

// VoterID identifies a voter (ballot) in a Profile.
type VoterID int

// Profile is an approval election: an ordered candidate set and one ballot per
// voter. A ballot is a set; duplicates inside a ballot are ignored.
type Profile struct {
	Candidates []Candidate
	Voters     map[VoterID][]Candidate
}

// VoterIDs returns the voter identifiers in ascending order.
// Complexity: O(n log n).
func (p Profile) VoterIDs() []VoterID {
	ids := make([]VoterID, 0, len(p.Voters))
	for id := range p.Voters {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })

	return ids
}

// Validate checks the profile shape.
// Stage 1: candidates non-empty and unique.
// Stage 2: voters non-empty and every ballot references known candidates.
// Complexity: O(m + Σ|ballot|).
func (p Profile) Validate() error {
	if len(p.Candidates) == 0 {
		return ErrNoCandidates
	}
	known := make(map[Candidate]struct{}, len(p.Candidates))
	for _, c := range p.Candidates {
		if _, dup := known[c]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateCandidate, c)
		}
		known[c] = struct{}{}
	}
	if len(p.Voters) == 0 {
		return ErrNoVoters
	}
	for id, ballot := range p.Voters {
		for _, c := range ballot {
			if _, ok := known[c]; !ok {
				return fmt.Errorf("%w: %d on ballot of voter %d", ErrUnknownCandidate, c, id)
			}
		}
	}

	return nil
}

// DistinctApproved counts the candidates approved on at least one ballot.
func (p Profile) DistinctApproved() int {
	seen := make(map[Candidate]struct{})
	for _, ballot := range p.Voters {
		for _, c := range ballot {
			seen[c] = struct{}{}
		}
	}

	return len(seen)
}

// Committee is a set of candidates.
type Committee []Candidate

// Sorted returns a sorted copy of the committee.
func (w Committee) Sorted() Committee {
	out := append(Committee(nil), w...)
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })

	return out
}

// Key returns an order-independent string key, e.g. "0,2,5".
func (w Committee) Key() string {
	s := w.Sorted()
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = strconv.Itoa(int(c))
	}

	return strings.Join(parts, ",")
}

// Contains reports whether c is a member of w.
func (w Committee) Contains(c Candidate) bool {
	for _, x := range w {
		if x == c {
			return true
		}
	}

	return false
}

// String implements fmt.Stringer.
func (w Committee) String() string {
	return "{" + w.Key() + "}"
}
