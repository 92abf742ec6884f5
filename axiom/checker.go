// SPDX-License-Identifier: MIT

package axiom

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/katalvlaran/jrmesh/approval"
	"github.com/katalvlaran/jrmesh/oracle"
)

// MostPopular returns the column approved by the most of the given rows and
// that count. Ties go to the lowest column; with no approvals it returns (-1, 0).
// Complexity: O(|rows|·m).
func MostPopular(mx *approval.Matrix, rows []int) (col, count int) {
	col = -1
	var j, c int
	for j = 0; j < mx.Cols(); j++ {
		c = 0
		for _, i := range rows {
			if mx.Approves(i, j) {
				c++
			}
		}
		if c > count {
			col, count = j, c
		}
	}

	return col, count
}

// RemoveVoters returns the rows of the given set that do not approve col.
func RemoveVoters(mx *approval.Matrix, rows []int, col int) []int {
	out := make([]int, 0, len(rows))
	for _, i := range rows {
		if !mx.Approves(i, col) {
			out = append(out, i)
		}
	}

	return out
}

// committeeColumns validates w and maps it to columns.
func committeeColumns(mx *approval.Matrix, w approval.Committee) ([]int, error) {
	if len(w) == 0 {
		return nil, ErrEmptyCommittee
	}
	cols, err := mx.Columns(w)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]struct{}, len(cols))
	for _, j := range cols {
		if _, dup := seen[j]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateMember, mx.Candidate(j))
		}
		seen[j] = struct{}{}
	}

	return cols, nil
}

// IsJR reports whether committee w satisfies Justified Representation.
// Stage 1: drop every voter approving a member of w.
// Stage 2: if nobody is left, JR holds trivially.
// Stage 3: JR holds iff the most popular candidate among the rest is approved
// by strictly fewer than n/k of them (compared as count·k < n).
// Complexity: O(n·(k+m)).
func IsJR(mx *approval.Matrix, w approval.Committee) (bool, error) {
	cols, err := committeeColumns(mx, w)
	if err != nil {
		return false, err
	}

	return isJRColumns(mx, cols), nil
}

func isJRColumns(mx *approval.Matrix, cols []int) bool {
	rows := make([]int, mx.Rows())
	for i := range rows {
		rows[i] = i
	}
	for _, j := range cols {
		rows = RemoveVoters(mx, rows, j)
	}
	if len(rows) == 0 {
		return true
	}
	_, count := MostPopular(mx, rows)

	return count*len(cols) < mx.Rows()
}

// IsPJR reports whether w satisfies Proportional Justified Representation.
func (c *Checker) IsPJR(ctx context.Context, mx *approval.Matrix, w approval.Committee) (bool, error) {
	v, err := c.Witness(ctx, mx, w, PJR)

	return v == nil && err == nil, err
}

// IsEJR reports whether w satisfies Extended Justified Representation.
func (c *Checker) IsEJR(ctx context.Context, mx *approval.Matrix, w approval.Committee) (bool, error) {
	v, err := c.Witness(ctx, mx, w, EJR)

	return v == nil && err == nil, err
}

// Satisfies dispatches on kind.
func (c *Checker) Satisfies(ctx context.Context, mx *approval.Matrix, w approval.Committee, kind Kind) (bool, error) {
	switch kind {
	case JR:
		return IsJR(mx, w)
	case PJR:
		return c.IsPJR(ctx, mx, w)
	case EJR:
		return c.IsEJR(ctx, mx, w)
	}

	return false, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
}

// Check returns the (JR, EJR, PJR) triple. JR is tested first and a failure
// short-circuits to all false; a passing EJR implies PJR and skips it.
func (c *Checker) Check(ctx context.Context, mx *approval.Matrix, w approval.Committee) (Result, error) {
	jr, err := IsJR(mx, w)
	if err != nil || !jr {
		return Result{}, err
	}
	ejr, err := c.IsEJR(ctx, mx, w)
	if err != nil {
		return Result{}, err
	}
	if ejr {
		return Result{JR: true, EJR: true, PJR: true}, nil
	}
	pjr, err := c.IsPJR(ctx, mx, w)
	if err != nil {
		return Result{}, err
	}

	return Result{JR: true, PJR: pjr}, nil
}

// Witness searches ell = 1..k in ascending order for a cohesive group that w
// under-represents according to kind (PJR or EJR). It returns nil when w
// satisfies the axiom. For JR the witness is the uncovered most popular
// candidate together with its uncovered approvers.
func (c *Checker) Witness(ctx context.Context, mx *approval.Matrix, w approval.Committee, kind Kind) (*Violation, error) {
	cols, err := committeeColumns(mx, w)
	if err != nil {
		return nil, err
	}
	switch kind {
	case JR:
		return jrWitness(mx, cols), nil
	case PJR, EJR:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}

	var ell int
	for ell = 1; ell <= len(cols); ell++ {
		v, err := c.witnessAt(ctx, mx, cols, ell, kind)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}

	return nil, nil
}

// jrWitness rebuilds the JR decision with its evidence.
func jrWitness(mx *approval.Matrix, cols []int) *Violation {
	if isJRColumns(mx, cols) {
		return nil
	}
	rows := make([]int, mx.Rows())
	for i := range rows {
		rows[i] = i
	}
	for _, j := range cols {
		rows = RemoveVoters(mx, rows, j)
	}
	top, _ := MostPopular(mx, rows)
	v := &Violation{Kind: JR, Ell: 1, Candidates: approval.Committee{mx.Candidate(top)}}
	for _, i := range rows {
		if mx.Approves(i, top) {
			v.Voters = append(v.Voters, mx.Voter(i))
		}
	}

	return v
}

// witnessAt builds and solves the cohesive-group model for one ell.
//
//	x_i ∈ {0,1}  voter i in the group,  Σx = ⌈ell·n/k⌉
//	y_j ∈ {0,1}  candidate j witnesses, Σy = ell
//	y_j ≤ V[i][j] + 1 − x_i                       (group approves all witnesses)
//
// plus the PJR or EJR under-representation constraints.
func (c *Checker) witnessAt(ctx context.Context, mx *approval.Matrix, cols []int, ell int, kind Kind) (*Violation, error) {
	var (
		n, m, k = mx.Rows(), mx.Cols(), len(cols)
		i, j    int
		model   = c.factory(fmt.Sprintf("%s-ell%d", kind, ell))
		x       = make([]oracle.Var, n)
		y       = make([]oracle.Var, m)
	)
	for i = 0; i < n; i++ {
		x[i] = model.AddBinaryVar(fmt.Sprintf("x%d", i))
	}
	for j = 0; j < m; j++ {
		y[j] = model.AddBinaryVar(fmt.Sprintf("y%d", j))
	}
	model.AddConstraint(oracle.Sum(x...), oracle.Equal, ceilDiv(ell*n, k))
	model.AddConstraint(oracle.Sum(y...), oracle.Equal, ell)
	for i = 0; i < n; i++ {
		for j = 0; j < m; j++ {
			if !mx.Approves(i, j) {
				model.AddConstraint(oracle.Sum(y[j], x[i]), oracle.LessEq, 1)
			}
		}
	}

	switch kind {
	case PJR:
		// w_t = 1 iff some selected voter approves member t; at most ell−1 such.
		members := make([]oracle.Var, k)
		for t, col := range cols {
			members[t] = model.AddBinaryVar(fmt.Sprintf("w%d", t))
			supporters := make([]oracle.Var, 0, mx.ApprovalCount(col))
			for _, i = range mx.Approvers(col) {
				supporters = append(supporters, x[i])
				model.AddConstraint(oracle.Sum(members[t]).Minus(oracle.Sum(x[i])), oracle.GreaterEq, 0)
			}
			model.AddConstraint(oracle.Sum(supporters...).Minus(oracle.Sum(members[t])), oracle.GreaterEq, 0)
		}
		model.AddConstraint(oracle.Sum(members...), oracle.LessEq, ell-1)
	case EJR:
		// m·(1 − x_i) ≥ approvals_i(W) − ell + 1
		for i = 0; i < n; i++ {
			a := mx.CountApproved(i, cols)
			model.AddConstraint(oracle.Sum(x[i]).Scale(m), oracle.LessEq, m-a+ell-1)
		}
	}

	res := model.Solve(ctx)
	switch res.Status {
	case oracle.Infeasible:
		return nil, nil
	case oracle.Optimal:
		v := &Violation{Kind: kind, Ell: ell}
		for i = 0; i < n; i++ {
			if res.ValueOf(x[i]) == 1 {
				v.Voters = append(v.Voters, mx.Voter(i))
			}
		}
		for j = 0; j < m; j++ {
			if res.ValueOf(y[j]) == 1 {
				v.Candidates = append(v.Candidates, mx.Candidate(j))
			}
		}

		return v, nil
	default:
		return nil, errors.Wrapf(res.Failure(), "%s check at ell=%d", kind, ell)
	}
}

// ceilDiv returns ⌈a/b⌉ for a ≥ 0, b > 0.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
