// SPDX-License-Identifier: MIT

package approval

import (
	"fmt"
	"strings"
)

// matrixErrorf wraps an underlying error with Matrix method context.
func matrixErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Matrix.%s(%d,%d): %w", method, row, col, err)
}

// Matrix is the immutable n×m approval relation V[i][j] = 1 iff voter i
// approves candidate j. Rows follow ascending VoterID, columns follow the
// profile's candidate order.
type Matrix struct {
	n, m       int               // voters, candidates
	data       []uint8           // flat row-major storage, len == n*m
	counts     []int             // approvals per column
	candidates []Candidate       // column → candidate
	voters     []VoterID         // row → voter
	column     map[Candidate]int // candidate → column
}

// NewMatrix derives the approval matrix of a profile.
// Stage 1 (Validate): profile shape via Profile.Validate.
// Stage 2 (Prepare): column index and row order.
// Stage 3 (Fill): one pass over every ballot.
// Complexity: O(n·m) time and memory.
func NewMatrix(p Profile) (*Matrix, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	voters := p.VoterIDs()
	mx := &Matrix{
		n:          len(voters),
		m:          len(p.Candidates),
		data:       make([]uint8, len(voters)*len(p.Candidates)),
		counts:     make([]int, len(p.Candidates)),
		candidates: append([]Candidate(nil), p.Candidates...),
		voters:     voters,
		column:     make(map[Candidate]int, len(p.Candidates)),
	}
	for j, c := range mx.candidates {
		mx.column[c] = j
	}
	for i, id := range voters {
		for _, c := range p.Voters[id] {
			j := mx.column[c]
			if mx.data[i*mx.m+j] == 0 { // ballots are sets
				mx.data[i*mx.m+j] = 1
				mx.counts[j]++
			}
		}
	}

	return mx, nil
}

// FromRows builds a matrix from explicit 0/1 rows. Candidates are 0..m−1 and
// voters 0..n−1. Handy for tests and for callers that already hold V.
// Complexity: O(n·m).
func FromRows(rows [][]int) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, ErrNoVoters
	}
	if len(rows[0]) == 0 {
		return nil, ErrNoCandidates
	}
	m := len(rows[0])
	p := Profile{Candidates: make([]Candidate, m), Voters: make(map[VoterID][]Candidate, len(rows))}
	for j := 0; j < m; j++ {
		p.Candidates[j] = Candidate(j)
	}
	for i, row := range rows {
		if len(row) != m {
			return nil, ErrNonRectangular
		}
		ballot := make([]Candidate, 0, m)
		for j, x := range row {
			switch x {
			case 0:
			case 1:
				ballot = append(ballot, Candidate(j))
			default:
				return nil, matrixErrorf("FromRows", i, j, ErrNonBinary)
			}
		}
		p.Voters[VoterID(i)] = ballot
	}

	return NewMatrix(p)
}

// Rows returns the number of voters n.
func (mx *Matrix) Rows() int { return mx.n }

// Cols returns the number of candidates m.
func (mx *Matrix) Cols() int { return mx.m }

// At returns V[row][col] or ErrOutOfRange.
// Complexity: O(1).
func (mx *Matrix) At(row, col int) (int, error) {
	if row < 0 || row >= mx.n || col < 0 || col >= mx.m {
		return 0, matrixErrorf("At", row, col, ErrOutOfRange)
	}

	return int(mx.data[row*mx.m+col]), nil
}

// Approves reports V[row][col] == 1; out-of-range indices report false.
// Complexity: O(1).
func (mx *Matrix) Approves(row, col int) bool {
	if row < 0 || row >= mx.n || col < 0 || col >= mx.m {
		return false
	}

	return mx.data[row*mx.m+col] == 1
}

// ApprovalCount returns how many voters approve column col.
func (mx *Matrix) ApprovalCount(col int) int {
	if col < 0 || col >= mx.m {
		return 0
	}

	return mx.counts[col]
}

// Candidate returns the candidate at column col.
func (mx *Matrix) Candidate(col int) Candidate { return mx.candidates[col] }

// Candidates returns a copy of the column order.
func (mx *Matrix) Candidates() []Candidate {
	return append([]Candidate(nil), mx.candidates...)
}

// Voter returns the voter at row i.
func (mx *Matrix) Voter(row int) VoterID { return mx.voters[row] }

// Column returns the column of candidate c.
func (mx *Matrix) Column(c Candidate) (int, bool) {
	j, ok := mx.column[c]

	return j, ok
}

// Columns maps a committee to column indices, rejecting unknown candidates.
// Complexity: O(k).
func (mx *Matrix) Columns(w Committee) ([]int, error) {
	cols := make([]int, len(w))
	for t, c := range w {
		j, ok := mx.column[c]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownCandidate, c)
		}
		cols[t] = j
	}

	return cols, nil
}

// Committee maps column indices back to candidates.
func (mx *Matrix) Committee(cols []int) Committee {
	w := make(Committee, len(cols))
	for t, j := range cols {
		w[t] = mx.candidates[j]
	}

	return w
}

// Approvers returns the rows approving column col, ascending.
// Complexity: O(n).
func (mx *Matrix) Approvers(col int) []int {
	out := make([]int, 0, mx.ApprovalCount(col))
	for i := 0; i < mx.n; i++ {
		if mx.data[i*mx.m+col] == 1 {
			out = append(out, i)
		}
	}

	return out
}

// Ballot returns the columns approved by row i, ascending.
// Complexity: O(m).
func (mx *Matrix) Ballot(row int) []int {
	out := make([]int, 0, mx.m)
	for j := 0; j < mx.m; j++ {
		if mx.data[row*mx.m+j] == 1 {
			out = append(out, j)
		}
	}

	return out
}

// CountApproved returns how many of cols row i approves.
func (mx *Matrix) CountApproved(row int, cols []int) int {
	var cnt int
	for _, j := range cols {
		if mx.data[row*mx.m+j] == 1 {
			cnt++
		}
	}

	return cnt
}

// DistinctApproved counts columns approved by at least one voter.
func (mx *Matrix) DistinctApproved() int {
	var cnt int
	for _, c := range mx.counts {
		if c > 0 {
			cnt++
		}
	}

	return cnt
}

// ScoreColumns returns the coverage (voters approving at least one of cols)
// and the approval score (Σ over cols of their approval counts).
// Complexity: O(n·k).
func (mx *Matrix) ScoreColumns(cols []int) (coverage, approvals int) {
	for _, j := range cols {
		approvals += mx.counts[j]
	}
	for i := 0; i < mx.n; i++ {
		if mx.CountApproved(i, cols) > 0 {
			coverage++
		}
	}

	return coverage, approvals
}

// Score is ScoreColumns for a committee of candidates.
func (mx *Matrix) Score(w Committee) (coverage, approvals int, err error) {
	cols, err := mx.Columns(w)
	if err != nil {
		return 0, 0, err
	}
	coverage, approvals = mx.ScoreColumns(cols)

	return coverage, approvals, nil
}

// String renders the matrix one row per line, e.g. "[1 0 1]".
func (mx *Matrix) String() string {
	var b strings.Builder
	for i := 0; i < mx.n; i++ {
		b.WriteByte('[')
		for j := 0; j < mx.m; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte('0' + mx.data[i*mx.m+j])
		}
		b.WriteString("]\n")
	}

	return b.String()
}
