// SPDX-License-Identifier: MIT

package search

import (
	"fmt"

	"github.com/katalvlaran/jrmesh/approval"
	"github.com/katalvlaran/jrmesh/oracle"
)

// Base is the shared committee model with handles to its named variables.
type Base struct {
	Model oracle.Model
	// Candidates[j] is 1 iff column j is in the committee.
	Candidates []oracle.Var
	// Voters[i] is 1 iff row i approves some member.
	Voters   []oracle.Var
	CoreSize oracle.Var
	Coverage oracle.Var
	Approval oracle.Var

	mx *approval.Matrix
	k  int
}

// BuildBase assembles the base model for req and goal.
//
//	cc_j ∈ {0,1}, vr_i ∈ [0,1]
//	vr_i ≤ Σ_{j∈A_i} cc_j,  vr_i ≥ cc_j  ∀ j∈A_i
//	Σ cc = coreSize (= k unless goal is CoreMin)
//	coverage = Σ vr,  approval = Σ_j |approvers(j)|·cc_j, both bounded by req
//	requireJR: Σ_{i approves j}(1 − vr_i) ≤ ⌈n/k⌉ − 1  ∀ j
//
// Complexity: O(n·m) constraints of constant width plus O(m) of width O(n).
func BuildBase(factory oracle.Factory, req Request, goal Goal, requireJR bool) (*Base, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !goal.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoal, goal)
	}

	var (
		mx   = req.Matrix
		n, m = mx.Rows(), mx.Cols()
		k    = req.CommitteeSize
		i, j int
		b    = &Base{
			Model:      factory(fmt.Sprintf("base-%s", goal)),
			Candidates: make([]oracle.Var, m),
			Voters:     make([]oracle.Var, n),
			mx:         mx,
			k:          k,
		}
		model = b.Model
	)

	// Stage 1: variables.
	for j = 0; j < m; j++ {
		b.Candidates[j] = model.AddBinaryVar(fmt.Sprintf("cc%d", j))
	}
	for i = 0; i < n; i++ {
		b.Voters[i] = model.AddContinuousVar(fmt.Sprintf("vr%d", i), 0, 1)
	}
	b.CoreSize = model.AddIntegerVar("coreSize", 0, k)
	b.Coverage = model.AddIntegerVar("coverage", 1, n)
	b.Approval = model.AddIntegerVar("approvalScore", 1, k*n)

	// Stage 2: committee size and coverage linking.
	if goal != CoreMin {
		model.AddConstraint(oracle.Sum(b.CoreSize), oracle.Equal, k)
	}
	model.AddConstraint(oracle.Sum(b.Candidates...).Minus(oracle.Sum(b.CoreSize)), oracle.Equal, 0)
	for i = 0; i < n; i++ {
		ballot := mx.Ballot(i)
		approved := make([]oracle.Var, len(ballot))
		for t, col := range ballot {
			approved[t] = b.Candidates[col]
			model.AddConstraint(oracle.Sum(b.Voters[i]).Minus(oracle.Sum(b.Candidates[col])), oracle.GreaterEq, 0)
		}
		model.AddConstraint(oracle.Sum(b.Voters[i]).Minus(oracle.Sum(approved...)), oracle.LessEq, 0)
	}

	// Stage 3: cohesiveness, i.e. JR as a linear constraint.
	if requireJR {
		limit := ceilDiv(n, k) - 1
		for j = 0; j < m; j++ {
			approvers := mx.Approvers(j)
			covered := make([]oracle.Var, len(approvers))
			for t, row := range approvers {
				covered[t] = b.Voters[row]
			}
			// Σ(1 − vr_i) ≤ limit  ⇔  Σ vr_i ≥ |approvers| − limit
			model.AddConstraint(oracle.Sum(covered...), oracle.GreaterEq, len(approvers)-limit)
		}
	}

	// Stage 4: scores and their bounds.
	model.AddConstraint(oracle.Sum(b.Voters...).Minus(oracle.Sum(b.Coverage)), oracle.Equal, 0)
	score := oracle.Expr{}
	for j = 0; j < m; j++ {
		if c := mx.ApprovalCount(j); c > 0 {
			score = score.Plus(b.Candidates[j], c)
		}
	}
	model.AddConstraint(score.Minus(oracle.Sum(b.Approval)), oracle.Equal, 0)
	model.AddConstraint(oracle.Sum(b.Coverage), oracle.GreaterEq, req.Coverage.Lo)
	model.AddConstraint(oracle.Sum(b.Coverage), oracle.LessEq, req.Coverage.Hi)
	model.AddConstraint(oracle.Sum(b.Approval), oracle.GreaterEq, req.Approval.Lo)
	model.AddConstraint(oracle.Sum(b.Approval), oracle.LessEq, req.Approval.Hi)

	// Stage 5: objective. It ranges over the 0/1 terms behind each aggregate;
	// the bit-encoded aggregates only link the bounds above.
	var (
		size     = oracle.Sum(b.Candidates...)
		coverage = oracle.Sum(b.Voters...)
	)
	switch goal {
	case CommitteeOfSize, CoreMin:
		model.SetObjective(size, oracle.Minimize)
	case ApprovalMax:
		model.SetObjective(score, oracle.Maximize)
	case ApprovalMin:
		model.SetObjective(score, oracle.Minimize)
	case CoverageMax:
		model.SetObjective(coverage, oracle.Maximize)
	case CoverageMin:
		model.SetObjective(coverage, oracle.Minimize)
	}

	return b, nil
}

// Committee reads the selected candidates from an optimal result.
func (b *Base) Committee(res oracle.Result) approval.Committee {
	cols := make([]int, 0, b.k)
	for j, v := range b.Candidates {
		if res.ValueOf(v) == 1 {
			cols = append(cols, j)
		}
	}

	return b.mx.Committee(cols)
}

// Exclude posts the no-good cut Σ_{j∈w} cc_j ≤ |w| − 1.
func (b *Base) Exclude(w approval.Committee) error {
	cols, err := b.mx.Columns(w)
	if err != nil {
		return err
	}
	vars := make([]oracle.Var, len(cols))
	for t, j := range cols {
		vars[t] = b.Candidates[j]
	}
	b.Model.AddConstraint(oracle.Sum(vars...), oracle.LessEq, len(vars)-1)

	return nil
}

// outcome converts an optimal result to an Outcome.
func (b *Base) outcome(res oracle.Result) Outcome {
	return Outcome{
		Found:     true,
		Objective: res.Value,
		Committee: b.Committee(res),
		Coverage:  res.ValueOf(b.Coverage),
		Approval:  res.ValueOf(b.Approval),
	}
}

// ceilDiv returns ⌈a/b⌉ for a ≥ 0, b > 0.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
