// Package mesh partitions the (coverage, approval score) plane of an approval
// election into a rectangular grid of cells and records one marker rune per
// cell.
//
// What:
//
//   - Coverage [1, n] is split into CoverageParts contiguous ranges and the
//     approval score [1, k·n] into ApprovalParts ranges. Each range has width
//     ⌊max/parts⌋ except the last, which absorbs the remainder, so the ranges
//     of each axis cover the axis exactly once.
//   - Row 0 holds the highest coverage range; columns grow with approval.
//     Cells are always listed in that order (coverage descending, approval
//     ascending), which is also the depiction order.
//   - Cells can be clipped (excluded from evaluation) by value or by
//     coordinate. Clipping only ever adds clipped cells; Unclip is the single
//     way back.
//   - Regions groups equally marked cells into 4- or 8-connected islands.
//
// Coordinates:
//
//   - Coordinate(cell) returns (row, column), both 1-based, where the row
//     counts from the bottom: the highest coverage range has row CoverageParts.
//
// Errors:
//
//   - ErrBadShape: non-positive sizes or a committee larger than the
//     candidate set.
//   - ErrTooManyParts: more parts than values on an axis.
//   - ErrOutOfRange: CellAt outside the mesh.
//   - ErrUnknownCell: a Cell that is not part of this mesh.
//
// A Mesh is not safe for concurrent mutation.
package mesh
