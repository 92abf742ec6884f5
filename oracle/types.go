// SPDX-License-Identifier: MIT

package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Var is a handle to a variable declared on a Model.
// Handles are only meaningful for the model that issued them.
type Var int

// Term is a single coefficient·variable product.
type Term struct {
	Var  Var
	Coef int
}

// Expr is a linear expression Σ Coef·Var + Const with integer coefficients.
// The zero value is the constant 0.
type Expr struct {
	Terms []Term
	Const int
}

// Sum returns the expression Σ vars (unit coefficients).
// Complexity: O(len(vars)).
func Sum(vars ...Var) Expr {
	terms := make([]Term, len(vars))
	for i, v := range vars {
		terms[i] = Term{Var: v, Coef: 1}
	}

	return Expr{Terms: terms}
}

// Plus returns a copy of e with coef·v appended.
func (e Expr) Plus(v Var, coef int) Expr {
	out := Expr{Terms: make([]Term, len(e.Terms), len(e.Terms)+1), Const: e.Const}
	copy(out.Terms, e.Terms)
	out.Terms = append(out.Terms, Term{Var: v, Coef: coef})

	return out
}

// PlusConst returns a copy of e with c added to the constant part.
func (e Expr) PlusConst(c int) Expr {
	out := Expr{Terms: make([]Term, len(e.Terms)), Const: e.Const + c}
	copy(out.Terms, e.Terms)

	return out
}

// Scale returns a copy of e multiplied by k.
func (e Expr) Scale(k int) Expr {
	out := Expr{Terms: make([]Term, len(e.Terms)), Const: e.Const * k}
	for i, t := range e.Terms {
		out.Terms[i] = Term{Var: t.Var, Coef: t.Coef * k}
	}

	return out
}

// Minus returns e − f.
func (e Expr) Minus(f Expr) Expr {
	out := Expr{Terms: make([]Term, 0, len(e.Terms)+len(f.Terms)), Const: e.Const - f.Const}
	out.Terms = append(out.Terms, e.Terms...)
	for _, t := range f.Terms {
		out.Terms = append(out.Terms, Term{Var: t.Var, Coef: -t.Coef})
	}

	return out
}

// String renders the expression for debugging, e.g. "2·v0 - v3 + 1".
func (e Expr) String() string {
	var b strings.Builder
	for i, t := range e.Terms {
		switch {
		case i == 0 && t.Coef < 0:
			b.WriteString("-")
		case i > 0 && t.Coef < 0:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		c := t.Coef
		if c < 0 {
			c = -c
		}
		if c != 1 {
			fmt.Fprintf(&b, "%d·", c)
		}
		fmt.Fprintf(&b, "v%d", int(t.Var))
	}
	if e.Const != 0 || len(e.Terms) == 0 {
		if len(e.Terms) > 0 {
			b.WriteString(" + ")
		}
		fmt.Fprintf(&b, "%d", e.Const)
	}

	return b.String()
}

// Relation is the comparison operator of a linear constraint.
type Relation int

const (
	// LessEq is expr ≤ bound.
	LessEq Relation = iota
	// GreaterEq is expr ≥ bound.
	GreaterEq
	// Equal is expr = bound.
	Equal
)

// String implements fmt.Stringer.
func (r Relation) String() string {
	switch r {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "=="
	}

	return fmt.Sprintf("Relation(%d)", int(r))
}

// Direction selects minimisation or maximisation of the objective.
type Direction int

const (
	// Minimize the objective expression.
	Minimize Direction = iota
	// Maximize the objective expression.
	Maximize
)

// Status is the tri-state outcome of a solve.
type Status int

const (
	// Optimal means a feasible assignment was found and, when an objective was
	// set, proven optimal.
	Optimal Status = iota
	// Infeasible means the constraints admit no assignment.
	Infeasible
	// Error means the backend failed; Result.Err carries the detail.
	Error
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Error:
		return "error"
	}

	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is returned by Model.Solve.
type Result struct {
	// Status is Optimal, Infeasible or Error.
	Status Status
	// Value is the objective value (0 when no objective was set).
	Value int
	// Err wraps ErrSolver when Status == Error; nil otherwise.
	Err error

	assignment []int // per declared Var; nil unless Optimal
}

// ValueOf returns the assigned value of v. It returns 0 for non-optimal results
// or unknown handles.
// Complexity: O(1).
func (r Result) ValueOf(v Var) int {
	if r.Status != Optimal || int(v) < 0 || int(v) >= len(r.assignment) {
		return 0
	}

	return r.assignment[v]
}

// Eval evaluates e under the assignment of r.
func (r Result) Eval(e Expr) int {
	total := e.Const
	for _, t := range e.Terms {
		total += t.Coef * r.ValueOf(t.Var)
	}

	return total
}

// Failure returns the error carried by a result that is neither Optimal nor
// Infeasible. The returned error always wraps ErrSolver, also for a bare
// Error result with a nil Err or for an unknown Status.
// Failure returns nil for Optimal and Infeasible.
func (r Result) Failure() error {
	switch r.Status {
	case Optimal, Infeasible:
		return nil
	}
	if r.Err == nil {
		return fmt.Errorf("%w: %v result without detail", ErrSolver, r.Status)
	}
	if errors.Is(r.Err, ErrSolver) {
		return r.Err
	}

	return fmt.Errorf("%w: %w", ErrSolver, r.Err)
}

// Model is the oracle surface consumed by the core packages.
// Implementations are not safe for concurrent use; construct one model per
// goroutine via a Factory.
type Model interface {
	// Name returns the label given at construction.
	Name() string
	// AddBinaryVar declares a 0/1 variable.
	AddBinaryVar(name string) Var
	// AddIntegerVar declares an integer variable in [lb, ub].
	AddIntegerVar(name string, lb, ub int) Var
	// AddContinuousVar declares a variable in [lb, ub].
	AddContinuousVar(name string, lb, ub float64) Var
	// AddConstraint posts expr rel bound.
	AddConstraint(expr Expr, rel Relation, bound int)
	// SetObjective replaces the objective.
	SetObjective(expr Expr, dir Direction)
	// Solve runs the backend. The model stays usable: more constraints may be
	// added and Solve called again.
	Solve(ctx context.Context) Result
}

// Factory constructs independent models.
type Factory func(name string) Model
