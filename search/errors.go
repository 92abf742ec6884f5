// SPDX-License-Identifier: MIT

package search

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is the umbrella for request errors detected
	// before any oracle call.
	ErrInvalidConfiguration = errors.New("search: invalid configuration")

	// ErrInvalidGoal indicates an unknown Goal value.
	ErrInvalidGoal = fmt.Errorf("%w: unknown goal", ErrInvalidConfiguration)

	// ErrInvalidAxiom indicates a refinement target other than PJR or EJR.
	ErrInvalidAxiom = fmt.Errorf("%w: axiom must be PJR or EJR", ErrInvalidConfiguration)

	// ErrCommitteeSize indicates k < 1, k > m, or k larger than the number of
	// approved candidates when that is required.
	ErrCommitteeSize = fmt.Errorf("%w: bad committee size", ErrInvalidConfiguration)

	// ErrNilMatrix indicates a request without an approval matrix.
	ErrNilMatrix = fmt.Errorf("%w: nil matrix", ErrInvalidConfiguration)

	// ErrRefinementLimit is returned when ComputeEJRorPJR exhausts the
	// configured number of no-good refinements.
	ErrRefinementLimit = errors.New("search: refinement limit reached")

	// ErrNoCommittee is returned by ComputeStats when no committee of the
	// requested size satisfies even the unconstrained base model.
	ErrNoCommittee = errors.New("search: no feasible committee")
)
