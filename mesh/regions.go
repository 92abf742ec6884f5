package mesh

// Connectivity selects which cells count as adjacent in Regions.
type Connectivity int

const (
	// Conn4 joins cells sharing an edge.
	Conn4 Connectivity = iota
	// Conn8 also joins diagonal neighbours.
	Conn8
)

func (c Connectivity) offsets() [][2]int {
	if c == Conn8 {
		return [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	}

	return [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
}

// Regions groups the cells holding v into contiguous regions. Regions are
// ordered by their first cell in All order; cells inside a region follow
// breadth-first discovery. Clipped cells take part like any other.
//
// Time:   O(P·Q·d), d = 4 or 8.
// Memory: O(P·Q).
func (m *Mesh) Regions(v rune, conn Connectivity) [][]Cell {
	var (
		seen    = make([]bool, len(m.values))
		offsets = conn.offsets()
		out     [][]Cell
	)
	for start, val := range m.values {
		if val != v || seen[start] {
			continue
		}
		queue := []int{start}
		seen[start] = true
		var region []Cell
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			region = append(region, m.cellAt(u))
			ux, uy := m.position(u)
			for _, d := range offsets {
				vx, vy := ux+d[0], uy+d[1]
				if vx < 0 || vx >= m.ApprovalParts || vy < 0 || vy >= m.CoverageParts {
					continue
				}
				w := m.index(vx, vy)
				if !seen[w] && m.values[w] == v {
					seen[w] = true
					queue = append(queue, w)
				}
			}
		}
		out = append(out, region)
	}

	return out
}
