// SPDX-License-Identifier: MIT

package rules

import "errors"

var (
	// ErrUnknownRule indicates a name with no registered Strategy.
	ErrUnknownRule = errors.New("rules: unknown rule")

	// ErrMeshMismatch indicates a mesh whose voter count or committee size
	// differs from the environment's.
	ErrMeshMismatch = errors.New("rules: mesh does not match the profile")
)
