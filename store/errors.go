// SPDX-License-Identifier: MIT

package store

import "errors"

var (
	// ErrCorruptEntry indicates a value that does not decode as an outcome.
	ErrCorruptEntry = errors.New("store: corrupt entry")
	// ErrClosed indicates use of a closed store.
	ErrClosed = errors.New("store: closed")
)
