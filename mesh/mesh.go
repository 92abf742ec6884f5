package mesh

import (
	"fmt"
	"io"
	"strings"
)

// Mesh is a CoverageParts × ApprovalParts grid of cells over the
// (coverage, approval score) plane.
// Width and Height follow the grid convention: Width = ApprovalParts columns,
// Height = CoverageParts rows, row 0 holding the highest coverage.
type Mesh struct {
	CandidatesNr  int
	VotersNr      int
	CommitteeSize int
	CoverageParts int
	ApprovalParts int

	initial  rune
	covSpans []span // ascending
	appSpans []span // ascending
	values   []rune // row-major, see index
	clipped  []bool
	lookup   map[Cell]int
}

// New builds a mesh for m candidates, n voters and committees of size k.
// Coverage ranges over [1, n] and the approval score over [1, k·n].
// Returns ErrBadShape for non-positive sizes or k > m and ErrTooManyParts when
// an axis has fewer values than parts.
// Complexity: O(P·Q) for P coverage and Q approval parts.
func New(candidatesNr, votersNr, committeeSize, coverageParts, approvalParts int, opts ...Option) (*Mesh, error) {
	if candidatesNr < 1 || votersNr < 1 || committeeSize < 1 || coverageParts < 1 || approvalParts < 1 {
		return nil, fmt.Errorf("%w: m=%d n=%d k=%d parts=%dx%d", ErrBadShape,
			candidatesNr, votersNr, committeeSize, coverageParts, approvalParts)
	}
	if committeeSize > candidatesNr {
		return nil, fmt.Errorf("%w: k=%d > m=%d", ErrBadShape, committeeSize, candidatesNr)
	}
	covSpans, err := ranges(votersNr, coverageParts)
	if err != nil {
		return nil, fmt.Errorf("coverage: %w", err)
	}
	appSpans, err := ranges(committeeSize*votersNr, approvalParts)
	if err != nil {
		return nil, fmt.Errorf("approval: %w", err)
	}

	m := &Mesh{
		CandidatesNr:  candidatesNr,
		VotersNr:      votersNr,
		CommitteeSize: committeeSize,
		CoverageParts: coverageParts,
		ApprovalParts: approvalParts,
		initial:       DefaultValue,
		covSpans:      covSpans,
		appSpans:      appSpans,
	}
	for _, opt := range opts {
		opt(m)
	}
	size := coverageParts * approvalParts
	m.values = make([]rune, size)
	m.clipped = make([]bool, size)
	m.lookup = make(map[Cell]int, size)
	for idx := range m.values {
		m.values[idx] = m.initial
		m.lookup[m.cellAt(idx)] = idx
	}

	return m, nil
}

// ranges splits [1, upper] into exactly parts contiguous spans of width
// ⌊upper/parts⌋; the last span extends to upper.
func ranges(upper, parts int) ([]span, error) {
	step := upper / parts
	if step == 0 {
		return nil, fmt.Errorf("%w: %d parts over [1,%d]", ErrTooManyParts, parts, upper)
	}
	out := make([]span, parts)
	for t := range out {
		lo := 1 + t*step
		out[t] = span{lo: lo, hi: lo + step - 1}
	}
	out[parts-1].hi = upper

	return out, nil
}

// index maps (x, y) to a row-major index: y·Width + x, with x the approval
// column and y the row counted from the highest coverage.
// Complexity: O(1).
func (m *Mesh) index(x, y int) int {
	return y*m.ApprovalParts + x
}

// position converts a row-major index back to (x, y).
func (m *Mesh) position(idx int) (x, y int) {
	return idx % m.ApprovalParts, idx / m.ApprovalParts
}

// cellAt returns the cell stored at a row-major index.
func (m *Mesh) cellAt(idx int) Cell {
	x, y := m.position(idx)
	c := m.covSpans[m.CoverageParts-1-y]
	a := m.appSpans[x]

	return Cell{CovLo: c.lo, CovHi: c.hi, AppLo: a.lo, AppHi: a.hi}
}

// find returns the row-major index of cell.
func (m *Mesh) find(cell Cell) (int, error) {
	idx, ok := m.lookup[cell]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownCell, cell)
	}

	return idx, nil
}

// All returns every cell, coverage descending then approval ascending.
// Complexity: O(P·Q).
func (m *Mesh) All() []Cell {
	out := make([]Cell, len(m.values))
	for idx := range out {
		out[idx] = m.cellAt(idx)
	}

	return out
}

// Value returns the marker of cell.
func (m *Mesh) Value(cell Cell) (rune, error) {
	idx, err := m.find(cell)
	if err != nil {
		return 0, err
	}

	return m.values[idx], nil
}

// SetValue stores v in cell. Clipped cells may be written too.
func (m *Mesh) SetValue(cell Cell, v rune) error {
	idx, err := m.find(cell)
	if err != nil {
		return err
	}
	m.values[idx] = v

	return nil
}

// CellAt returns the unique cell containing (coverage, approvalScore).
// Complexity: O(P + Q).
func (m *Mesh) CellAt(coverage, approvalScore int) (Cell, error) {
	y, x := -1, -1
	for t, s := range m.covSpans {
		if s.lo <= coverage && coverage <= s.hi {
			y = m.CoverageParts - 1 - t
			break
		}
	}
	for t, s := range m.appSpans {
		if s.lo <= approvalScore && approvalScore <= s.hi {
			x = t
			break
		}
	}
	if x < 0 || y < 0 {
		return Cell{}, fmt.Errorf("%w: coverage=%d approval=%d", ErrOutOfRange, coverage, approvalScore)
	}

	return m.cellAt(m.index(x, y)), nil
}

// SetValueAt stores v in the cell containing (coverage, approvalScore).
func (m *Mesh) SetValueAt(coverage, approvalScore int, v rune) error {
	cell, err := m.CellAt(coverage, approvalScore)
	if err != nil {
		return err
	}

	return m.SetValue(cell, v)
}

// Coordinate returns the 1-based (row, column) of cell, rows counted from the
// lowest coverage range.
func (m *Mesh) Coordinate(cell Cell) (row, col int, err error) {
	idx, err := m.find(cell)
	if err != nil {
		return 0, 0, err
	}
	x, y := m.position(idx)

	return m.CoverageParts - y, x + 1, nil
}

// Depict writes one rune per cell in All order and a newline after every
// ApprovalParts cells.
// Complexity: O(P·Q).
func (m *Mesh) Depict(w io.Writer) error {
	var b strings.Builder
	b.Grow(len(m.values) + m.CoverageParts)
	for idx, v := range m.values {
		b.WriteRune(v)
		if (idx+1)%m.ApprovalParts == 0 {
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())

	return err
}

// String returns the depiction as a string.
func (m *Mesh) String() string {
	var b strings.Builder
	_ = m.Depict(&b)

	return b.String()
}

// Rows returns the markers row by row, top row first. The CLI uses it to
// style individual cells.
func (m *Mesh) Rows() [][]rune {
	out := make([][]rune, m.CoverageParts)
	for y := range out {
		out[y] = append([]rune(nil), m.values[m.index(0, y):m.index(0, y)+m.ApprovalParts]...)
	}

	return out
}
