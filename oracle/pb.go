// SPDX-License-Identifier: MIT

package oracle

import (
	"context"
	"fmt"
	"math"
	"math/bits"
	"sort"

	"github.com/crillab/gophersat/solver"
	"github.com/pkg/errors"
)

// pbVar is a declared variable and its bit expansion (LSB first, 1-based SAT ids).
type pbVar struct {
	name   string
	lb, ub int
	bits   []int
}

// pbConstr is a normalised Σ weight·lit ≥ atLeast with positive weights.
type pbConstr struct {
	lits    []int
	weights []int
	atLeast int
}

// PBModel is the gophersat-backed Model. Every declared variable is expanded
// into SAT variables; every constraint becomes one or two pseudo-boolean
// constraints. PBModel is not safe for concurrent use.
type PBModel struct {
	name    string
	vars    []pbVar
	nbBits  int
	constrs []pbConstr

	// trivially unsatisfiable constraint seen at post time
	unsat bool
	// first declaration/expression error; reported by Solve
	declErr error

	objective    Expr
	hasObjective bool
	dir          Direction
}

// NewPB returns an empty PBModel. It has the Factory signature.
func NewPB(name string) Model {
	return &PBModel{name: name}
}

// compile-time check
var _ Factory = NewPB

// Name returns the model label.
func (m *PBModel) Name() string { return m.name }

// Size reports the number of declared variables, SAT variables and posted
// pseudo-boolean constraints.
func (m *PBModel) Size() (vars, satVars, constraints int) {
	return len(m.vars), m.nbBits, len(m.constrs)
}

// AddBinaryVar declares a 0/1 variable.
// Complexity: O(1).
func (m *PBModel) AddBinaryVar(name string) Var {
	return m.declare(name, 0, 1)
}

// AddIntegerVar declares an integer variable in [lb, ub].
// Complexity: O(log(ub−lb)).
func (m *PBModel) AddIntegerVar(name string, lb, ub int) Var {
	return m.declare(name, lb, ub)
}

// AddContinuousVar declares a variable in [lb, ub], encoded as an integer in
// [⌈lb⌉, ⌊ub⌋]; see the package documentation for when this is sound.
func (m *PBModel) AddContinuousVar(name string, lb, ub float64) Var {
	return m.declare(name, int(math.Ceil(lb)), int(math.Floor(ub)))
}

// declare allocates SAT bits for a variable and bounds its binary expansion.
func (m *PBModel) declare(name string, lb, ub int) Var {
	if lb > ub {
		if m.declErr == nil {
			m.declErr = errors.Wrapf(ErrBadBounds, "%s: [%d,%d]", name, lb, ub)
		}
		ub = lb
	}
	span := ub - lb
	width := bits.Len(uint(span))
	v := pbVar{name: name, lb: lb, ub: ub, bits: make([]int, width)}
	for b := range v.bits {
		m.nbBits++
		v.bits[b] = m.nbBits
	}
	m.vars = append(m.vars, v)

	// Σ 2^b·bit_b ≤ span unless every bit pattern is within range.
	if width > 0 && span != (1<<width)-1 {
		w := make(map[int]int, width)
		for b, id := range v.bits {
			w[id] = 1 << b
		}
		m.addGtEq(negate(w), -span)
	}

	return Var(len(m.vars) - 1)
}

// AddConstraint posts expr rel bound.
// Complexity: O(T·log U).
func (m *PBModel) AddConstraint(expr Expr, rel Relation, bound int) {
	w, c, err := m.linearize(expr)
	if err != nil {
		if m.declErr == nil {
			m.declErr = err
		}
		return
	}
	rhs := bound - c
	switch rel {
	case GreaterEq:
		m.addGtEq(w, rhs)
	case LessEq:
		m.addGtEq(negate(w), -rhs)
	case Equal:
		m.addGtEq(w, rhs)
		m.addGtEq(negate(w), -rhs)
	default:
		if m.declErr == nil {
			m.declErr = errors.Wrapf(ErrSolver, "unsupported relation %v", rel)
		}
	}
}

// SetObjective replaces the objective.
func (m *PBModel) SetObjective(expr Expr, dir Direction) {
	m.objective = expr
	m.hasObjective = true
	m.dir = dir
}

// linearize expands integer terms into weighted SAT literals.
// It returns the weight per SAT id and the accumulated constant.
func (m *PBModel) linearize(e Expr) (map[int]int, int, error) {
	w := make(map[int]int, len(e.Terms))
	c := e.Const
	for _, t := range e.Terms {
		if int(t.Var) < 0 || int(t.Var) >= len(m.vars) {
			return nil, 0, errors.Wrapf(ErrUnknownVar, "v%d in model %q", int(t.Var), m.name)
		}
		v := m.vars[t.Var]
		c += t.Coef * v.lb
		for b, id := range v.bits {
			w[id] += t.Coef << b
		}
	}

	return w, c, nil
}

// negate flips every weight.
func negate(w map[int]int) map[int]int {
	out := make(map[int]int, len(w))
	for id, x := range w {
		out[id] = -x
	}

	return out
}

// addGtEq normalises Σ w·x ≥ rhs to positive weights and stores it.
// Trivially true constraints are dropped, trivially false ones mark the model
// infeasible without calling the backend.
func (m *PBModel) addGtEq(w map[int]int, rhs int) {
	ids := make([]int, 0, len(w))
	for id, x := range w {
		if x != 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	c := pbConstr{
		lits:    make([]int, 0, len(ids)),
		weights: make([]int, 0, len(ids)),
		atLeast: rhs,
	}
	var sum int
	for _, id := range ids {
		x, lit := w[id], id
		if x < 0 {
			// x·v = x + |x|·¬v
			x, lit = -x, -id
			c.atLeast += x
		}
		c.lits = append(c.lits, lit)
		c.weights = append(c.weights, x)
		sum += x
	}
	if c.atLeast <= 0 {
		return
	}
	if c.atLeast > sum {
		m.unsat = true
		return
	}
	m.constrs = append(m.constrs, c)
}

// costFunc converts the objective into a non-negative cost over SAT literals.
func (m *PBModel) costFunc() ([]solver.Lit, []int, error) {
	if !m.hasObjective {
		return nil, nil, nil
	}
	w, _, err := m.linearize(m.objective)
	if err != nil {
		return nil, nil, err
	}
	if m.dir == Maximize {
		w = negate(w)
	}
	ids := make([]int, 0, len(w))
	for id, x := range w {
		if x != 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	lits := make([]solver.Lit, 0, len(ids))
	weights := make([]int, 0, len(ids))
	for _, id := range ids {
		x, lit := w[id], id
		if x < 0 {
			x, lit = -x, -id
		}
		lits = append(lits, solver.IntToLit(int32(lit)))
		weights = append(weights, x)
	}

	return lits, weights, nil
}

// solveOutcome carries the backend result out of the worker goroutine.
type solveOutcome struct {
	res      solver.Result
	panicked interface{}
}

// Solve encodes the model, runs gophersat and decodes the assignment.
// A cancelled or expired ctx yields Status Error, never Infeasible, and Solve
// returns as soon as ctx is done. The backend cannot be interrupted, so the
// worker goroutine of an abandoned solve outlives the call and keeps its CPU
// until the search finishes on its own.
func (m *PBModel) Solve(ctx context.Context) (out Result) {
	if m.declErr != nil {
		return errorResult(m.declErr)
	}
	if err := ctx.Err(); err != nil {
		return errorResult(errors.Wrap(err, "before solve"))
	}
	if m.unsat {
		return Result{Status: Infeasible}
	}
	defer func() {
		if r := recover(); r != nil {
			out = errorResult(fmt.Errorf("encoding panic: %v", r))
		}
	}()

	// Stage 1: encode. Zero-threshold unit constraints register every SAT id
	// so that unconstrained bits still exist in the backend.
	constrs := make([]solver.PBConstr, 0, m.nbBits+len(m.constrs))
	for id := 1; id <= m.nbBits; id++ {
		constrs = append(constrs, solver.GtEq([]int{id}, []int{1}, 0))
	}
	for _, c := range m.constrs {
		lits := append([]int(nil), c.lits...)
		weights := append([]int(nil), c.weights...)
		constrs = append(constrs, solver.GtEq(lits, weights, c.atLeast))
	}
	if m.nbBits == 0 {
		return m.decode(nil)
	}
	pb := solver.ParsePBConstrs(constrs)
	lits, weights, err := m.costFunc()
	if err != nil {
		return errorResult(err)
	}
	if len(lits) > 0 {
		pb.SetCostFunc(lits, weights)
	}

	// Stage 2: solve on a worker so ctx can interrupt the search.
	s := solver.New(pb)
	stop := make(chan struct{})
	done := make(chan solveOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- solveOutcome{panicked: r}
			}
		}()
		done <- solveOutcome{res: s.Optimal(nil, stop)}
	}()

	var so solveOutcome
	select {
	case so = <-done:
	case <-ctx.Done():
		// gophersat never reads stop; the worker runs on until its search ends
		// and its send lands in the buffered done.
		close(stop)

		return errorResult(errors.Wrap(ctx.Err(), "solve interrupted"))
	}
	if so.panicked != nil {
		return errorResult(fmt.Errorf("backend panic: %v", so.panicked))
	}
	// An expired deadline may leave a feasible but unproven incumbent.
	if err = ctx.Err(); err != nil {
		return errorResult(errors.Wrap(err, "solve interrupted"))
	}

	// Stage 3: decode.
	switch so.res.Status {
	case solver.Sat:
		return m.decode(so.res.Model)
	case solver.Unsat:
		return Result{Status: Infeasible}
	default:
		return errorResult(errors.New("solver stopped without an answer"))
	}
}

// decode maps SAT bits back to declared variables and evaluates the objective.
func (m *PBModel) decode(model []bool) Result {
	assignment := make([]int, len(m.vars))
	for i, v := range m.vars {
		val := v.lb
		for b, id := range v.bits {
			if id-1 < len(model) && model[id-1] {
				val += 1 << b
			}
		}
		assignment[i] = val
	}
	r := Result{Status: Optimal, assignment: assignment}
	if m.hasObjective {
		r.Value = r.Eval(m.objective)
	}

	return r
}

// errorResult wraps err with ErrSolver.
func errorResult(err error) Result {
	if errors.Is(err, ErrSolver) {
		return Result{Status: Error, Err: err}
	}

	return Result{Status: Error, Err: fmt.Errorf("%w: %w", ErrSolver, err)}
}
