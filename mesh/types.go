package mesh

import "fmt"

// DefaultValue is the marker of a fresh cell.
const DefaultValue = '.'

// Cell is an inclusive (coverage, approval score) rectangle.
type Cell struct {
	CovLo, CovHi int
	AppLo, AppHi int
}

// Contains reports whether the point lies inside the cell.
// Complexity: O(1).
func (c Cell) Contains(coverage, approvalScore int) bool {
	return c.CovLo <= coverage && coverage <= c.CovHi &&
		c.AppLo <= approvalScore && approvalScore <= c.AppHi
}

// String renders the cell as "cov[lo,hi] app[lo,hi]".
func (c Cell) String() string {
	return fmt.Sprintf("cov[%d,%d] app[%d,%d]", c.CovLo, c.CovHi, c.AppLo, c.AppHi)
}

// span is one inclusive range of an axis.
type span struct {
	lo, hi int
}

// Option configures a Mesh at construction.
type Option func(*Mesh)

// WithInitialValue sets the marker every cell starts with.
func WithInitialValue(v rune) Option {
	return func(m *Mesh) {
		m.initial = v
	}
}
