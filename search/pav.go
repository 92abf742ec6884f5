// SPDX-License-Identifier: MIT

package search

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/katalvlaran/jrmesh/oracle"
)

// HarmonicScale returns lcm(1..k). PAV satisfactions are reported multiplied
// by this factor so that the harmonic weights 1/r become integers.
func HarmonicScale(k int) int {
	l := 1
	for r := 2; r <= k; r++ {
		l = l / gcd(l, r) * r
	}

	return l
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

// ComputePAV searches the base model (without cohesiveness) for a committee
// with maximal PAV satisfaction, or with satisfaction exactly *level when
// level is non-nil. Satisfactions are scaled by HarmonicScale(k); the value
// is returned in Outcome.Objective.
//
//	s_{i,r} ∈ {0,1}  voter i has at least r approved members
//	s_{i,r} ≥ s_{i,r+1},  Σ_r s_{i,r} = Σ_{j∈A_i} cc_j
//	satisfaction = Σ_i Σ_r (L/r)·s_{i,r}
//
// Complexity: O(n·k) extra variables and constraints.
func (e *Engine) ComputePAV(ctx context.Context, req Request, level *int) (Outcome, error) {
	base, err := BuildBase(e.factory, req, CommitteeOfSize, false)
	if err != nil {
		return Outcome{}, err
	}

	var (
		mx           = req.Matrix
		k            = req.CommitteeSize
		scale        = HarmonicScale(k)
		model        = base.Model
		satisfaction oracle.Expr
	)
	for i := 0; i < mx.Rows(); i++ {
		ballot := mx.Ballot(i)
		ranks := len(ballot)
		if ranks > k {
			ranks = k
		}
		if ranks == 0 {
			continue
		}
		approved := make([]oracle.Var, len(ballot))
		for t, col := range ballot {
			approved[t] = base.Candidates[col]
		}
		s := make([]oracle.Var, ranks)
		for r := range s {
			s[r] = model.AddBinaryVar(fmt.Sprintf("s%d_%d", i, r+1))
			satisfaction = satisfaction.Plus(s[r], scale/(r+1))
			if r > 0 {
				model.AddConstraint(oracle.Sum(s[r-1]).Minus(oracle.Sum(s[r])), oracle.GreaterEq, 0)
			}
		}
		model.AddConstraint(oracle.Sum(s...).Minus(oracle.Sum(approved...)), oracle.Equal, 0)
	}

	if level == nil {
		model.SetObjective(satisfaction, oracle.Maximize)
	} else {
		model.AddConstraint(satisfaction, oracle.Equal, *level)
		model.SetObjective(satisfaction, oracle.Minimize)
	}

	res := e.solve(ctx, model)
	switch res.Status {
	case oracle.Optimal:
		out := base.outcome(res)
		out.Objective = res.Eval(satisfaction)

		return out, nil
	case oracle.Infeasible:
		return Outcome{}, nil
	}

	return Outcome{}, errors.Wrap(res.Failure(), "compute PAV")
}
