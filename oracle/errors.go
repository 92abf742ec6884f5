// SPDX-License-Identifier: MIT

package oracle

import "errors"

var (
	// ErrSolver marks any failure of the optimisation backend that is not a
	// definite infeasibility answer. Callers match it with errors.Is.
	ErrSolver = errors.New("oracle: solver error")

	// ErrUnknownVar indicates an expression referencing a variable index that the
	// model never declared.
	ErrUnknownVar = errors.New("oracle: unknown variable")

	// ErrBadBounds indicates a variable declared with lb > ub.
	ErrBadBounds = errors.New("oracle: variable bounds are empty")
)
