// SPDX-License-Identifier: MIT

// Package store caches per-cell committee query results in Badger so that a
// re-run over the same profile, committee size and rule skips solved cells.
//
// Keys are
//
//	"cell/" | digest(8, big endian) | rule | 0x00 | covLo covHi appLo appHi (uvarints)
//
// where digest is the xxhash64 of the approval matrix and k (see Digest).
// Values are a compact uvarint record of search.Outcome.
//
// An empty path opens an in-memory database.
package store
