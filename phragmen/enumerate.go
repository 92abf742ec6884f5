package phragmen

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/katalvlaran/jrmesh/approval"
)

// Result is one tied Sequential Phragmén committee.
type Result struct {
	Committee approval.Committee
	// MaxLoad is the largest voter load after the last seat.
	MaxLoad *big.Rat
	// Coverage and Approval are the committee's scores.
	Coverage int
	Approval int
}

// Option configures Enumerate.
type Option func(*engine)

// WithTimeLimit sets a soft time budget, counted from the start of
// Enumerate and checked once per partial committee. 0 disables it.
func WithTimeLimit(d time.Duration) Option {
	return func(e *engine) {
		if d > 0 {
			e.budget = d
		}
	}
}

// WithContext makes Enumerate stop with ctx.Err() once ctx is done. It is
// checked at the same points as the time budget.
func WithContext(ctx context.Context) Option {
	return func(e *engine) {
		if ctx != nil {
			e.ctx = ctx
		}
	}
}

// state is one partial committee: sorted member columns and per-voter loads.
type state struct {
	cols  []int
	loads []*big.Rat
	max   *big.Rat
}

// engine holds the per-run data.
type engine struct {
	mx      *approval.Matrix
	weights []int    // |approvers(c)| per column
	voters  [][]int  // approvers(c) per column
	zero    *big.Rat // shared 0 load
	never   *big.Rat // sentinel load m·n

	ctx         context.Context
	budget      time.Duration
	useDeadline bool
	deadline    time.Time
}

// Enumerate returns every committee of size k that Sequential Phragmén can
// produce under some tie-breaking, in lexicographic order of member columns.
// Stage 1: check the precondition and precompute approver sets.
// Stage 2: k rounds of local arg-min branching followed by the global cut-off.
// Stage 3: attach scores.
func Enumerate(mx *approval.Matrix, k int, opts ...Option) ([]Result, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k=%d", ErrCommitteeSize, k)
	}
	if approved := mx.DistinctApproved(); approved < k {
		return nil, fmt.Errorf("%w: k=%d, approved=%d", ErrNotEnoughApproved, k, approved)
	}

	var (
		m, n = mx.Cols(), mx.Rows()
		e    = &engine{
			mx:      mx,
			weights: make([]int, m),
			voters:  make([][]int, m),
			zero:    new(big.Rat),
			never:   new(big.Rat).SetInt64(int64(m * n)),
			ctx:     context.Background(),
		}
		j int
	)
	for _, opt := range opts {
		opt(e)
	}
	if e.budget > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(e.budget)
	}
	for j = 0; j < m; j++ {
		e.voters[j] = mx.Approvers(j)
		e.weights[j] = len(e.voters[j])
	}

	root := &state{loads: make([]*big.Rat, n), max: e.zero}
	for i := range root.loads {
		root.loads[i] = e.zero
	}
	current := newTree()
	current.Put(root.cols, root)

	for round := 0; round < k; round++ {
		next, err := e.round(current)
		if err != nil {
			return nil, err
		}
		current = next
	}

	out := make([]Result, 0, current.Size())
	it := current.Iterator()
	for it.Next() {
		st := it.Value().(*state)
		cov, app := mx.ScoreColumns(st.cols)
		out = append(out, Result{
			Committee: mx.Committee(st.cols),
			MaxLoad:   new(big.Rat).Set(st.max),
			Coverage:  cov,
			Approval:  app,
		})
	}

	return out, nil
}

// round extends every partial committee by one seat and applies the cut-off.
func (e *engine) round(current *redblacktree.Tree) (*redblacktree.Tree, error) {
	var (
		next   = newTree()
		it     = current.Iterator()
		cutoff *big.Rat
	)
	for it.Next() {
		if e.useDeadline && time.Now().After(e.deadline) {
			return nil, ErrTimeLimit
		}
		if err := e.ctx.Err(); err != nil {
			return nil, fmt.Errorf("phragmen: enumeration stopped: %w", err)
		}
		st := it.Value().(*state)
		for _, child := range e.branch(st) {
			// A committee reached on two branches keeps the lower max load and,
			// on equal loads, the branch seen first. A last-wins merge could
			// let the cut-off below drop a committee this one keeps.
			if prev, found := next.Get(child.cols); found && prev.(*state).max.Cmp(child.max) <= 0 {
				continue
			}
			next.Put(child.cols, child)
		}
	}

	nit := next.Iterator()
	for nit.Next() {
		st := nit.Value().(*state)
		if cutoff == nil || st.max.Cmp(cutoff) < 0 {
			cutoff = st.max
		}
	}
	kept := newTree()
	nit = next.Iterator()
	for nit.Next() {
		st := nit.Value().(*state)
		if st.max.Cmp(cutoff) <= 0 {
			kept.Put(st.cols, st)
		}
	}

	return kept, nil
}

// branch returns the children of st for every non-member with minimal new load.
func (e *engine) branch(st *state) []*state {
	var (
		m       = e.mx.Cols()
		member  = make([]bool, m)
		newLoad = make([]*big.Rat, m)
		best    *big.Rat
		j       int
	)
	for _, c := range st.cols {
		member[c] = true
	}
	for j = 0; j < m; j++ {
		if member[j] {
			continue
		}
		if e.weights[j] == 0 {
			newLoad[j] = e.never
		} else {
			sum := big.NewRat(1, 1)
			for _, i := range e.voters[j] {
				sum.Add(sum, st.loads[i])
			}
			newLoad[j] = sum.Quo(sum, big.NewRat(int64(e.weights[j]), 1))
		}
		if best == nil || newLoad[j].Cmp(best) < 0 {
			best = newLoad[j]
		}
	}

	children := make([]*state, 0, 1)
	for j = 0; j < m; j++ {
		if member[j] || newLoad[j].Cmp(best) != 0 {
			continue
		}
		child := &state{
			cols:  insertSorted(st.cols, j),
			loads: append([]*big.Rat(nil), st.loads...),
		}
		for _, i := range e.voters[j] {
			child.loads[i] = newLoad[j]
		}
		child.max = maxLoad(child.loads)
		children = append(children, child)
	}

	return children
}

// maxLoad returns the largest voter load.
func maxLoad(loads []*big.Rat) *big.Rat {
	best := loads[0]
	for _, l := range loads[1:] {
		if l.Cmp(best) > 0 {
			best = l
		}
	}

	return best
}

// insertSorted returns a copy of cols with j inserted in order.
func insertSorted(cols []int, j int) []int {
	out := make([]int, 0, len(cols)+1)
	placed := false
	for _, c := range cols {
		if !placed && j < c {
			out = append(out, j)
			placed = true
		}
		out = append(out, c)
	}
	if !placed {
		out = append(out, j)
	}

	return out
}

// newTree returns a tree ordered lexicographically by member columns.
func newTree() *redblacktree.Tree {
	return redblacktree.NewWith(compareCols)
}

func compareCols(a, b interface{}) int {
	x, y := a.([]int), b.([]int)
	for t := 0; t < len(x) && t < len(y); t++ {
		switch {
		case x[t] < y[t]:
			return -1
		case x[t] > y[t]:
			return 1
		}
	}

	return len(x) - len(y)
}
