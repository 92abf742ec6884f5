package mesh

import "errors"

// Sentinel errors for mesh operations.
var (
	// ErrBadShape indicates non-positive dimensions or k > m.
	ErrBadShape = errors.New("mesh: invalid mesh shape")
	// ErrTooManyParts indicates an axis split into more parts than it has values.
	ErrTooManyParts = errors.New("mesh: more parts than values on an axis")
	// ErrOutOfRange indicates a (coverage, approval) point outside every cell.
	ErrOutOfRange = errors.New("mesh: point outside the mesh")
	// ErrUnknownCell indicates a Cell that does not belong to the mesh.
	ErrUnknownCell = errors.New("mesh: unknown cell")
)
