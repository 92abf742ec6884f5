package mesh

// Clip excludes cell from Unclipped.
func (m *Mesh) Clip(cell Cell) error {
	idx, err := m.find(cell)
	if err != nil {
		return err
	}
	m.clipped[idx] = true

	return nil
}

// Unclip re-activates cell.
func (m *Mesh) Unclip(cell Cell) error {
	idx, err := m.find(cell)
	if err != nil {
		return err
	}
	m.clipped[idx] = false

	return nil
}

// IsClipped reports whether cell is clipped. Unknown cells report false.
func (m *Mesh) IsClipped(cell Cell) bool {
	idx, err := m.find(cell)

	return err == nil && m.clipped[idx]
}

// ClipByValues clips every cell lying entirely outside
// [minC, maxC] × [minA, maxA]. A region wider than the mesh clips nothing;
// minC > maxC (or minA > maxA) clips everything.
// Complexity: O(P·Q).
func (m *Mesh) ClipByValues(minC, maxC, minA, maxA int) {
	for idx := range m.values {
		c := m.cellAt(idx)
		if c.CovHi < minC || c.CovLo > maxC || c.AppHi < minA || c.AppLo > maxA || minC > maxC || minA > maxA {
			m.clipped[idx] = true
		}
	}
}

// ClipByCoordinates clips the fromDownC lowest and fromUpC highest coverage
// rows, and the fromDownA leftmost and fromUpA rightmost approval columns.
// Complexity: O(P·Q).
func (m *Mesh) ClipByCoordinates(fromDownC, fromUpC, fromDownA, fromUpA int) {
	var row, col int
	for idx := range m.values {
		x, y := m.position(idx)
		row, col = m.CoverageParts-y, x+1
		if row <= fromDownC || row+fromUpC > m.CoverageParts ||
			col <= fromDownA || col+fromUpA > m.ApprovalParts {
			m.clipped[idx] = true
		}
	}
}

// Unclipped returns the active cells in All order.
func (m *Mesh) Unclipped() []Cell {
	return m.filter(false)
}

// Clipped returns the clipped cells in All order.
func (m *Mesh) Clipped() []Cell {
	return m.filter(true)
}

func (m *Mesh) filter(clipped bool) []Cell {
	out := make([]Cell, 0, len(m.values))
	for idx, c := range m.clipped {
		if c == clipped {
			out = append(out, m.cellAt(idx))
		}
	}

	return out
}
