// SPDX-License-Identifier: MIT

package search

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/jrmesh/approval"
	"github.com/katalvlaran/jrmesh/axiom"
	"github.com/katalvlaran/jrmesh/oracle"
)

// Outcome is the answer to one committee query. When Found is false the
// remaining fields are zero.
type Outcome struct {
	Found bool
	// Objective is the optimal objective value of the solved model.
	Objective int
	Committee approval.Committee
	Coverage  int
	Approval  int
}

// Option configures an Engine.
type Option func(*Engine)

// WithFactory selects the oracle backend for both the search and the axiom
// checks. nil keeps the default.
func WithFactory(f oracle.Factory) Option {
	return func(e *Engine) {
		if f != nil {
			e.factory = f
		}
	}
}

// WithLogger sets the logger used for refinement tracing. nil keeps the no-op
// logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxRefinements caps the number of no-good cuts per ComputeEJRorPJR call.
// 0 means unlimited.
func WithMaxRefinements(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxRefinements = n
		}
	}
}

// WithTimeout bounds every single oracle call. 0 disables the deadline.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.timeout = d
		}
	}
}

// Engine runs committee queries. It holds configuration only, so one Engine
// may serve concurrent callers; every query builds its own model.
type Engine struct {
	factory        oracle.Factory
	checker        *axiom.Checker
	logger         *zap.Logger
	maxRefinements int
	timeout        time.Duration
}

// New returns an Engine on the gophersat backend unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{factory: oracle.NewPB, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	e.checker = axiom.NewChecker(axiom.WithFactory(e.factory))

	return e
}

// solve runs one oracle call under the per-call deadline.
func (e *Engine) solve(ctx context.Context, model oracle.Model) oracle.Result {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	return model.Solve(ctx)
}

// Compute solves the base model once.
// Infeasible yields Outcome{Found: false} and a nil error.
func (e *Engine) Compute(ctx context.Context, req Request, goal Goal, requireJR bool) (Outcome, error) {
	base, err := BuildBase(e.factory, req, goal, requireJR)
	if err != nil {
		return Outcome{}, err
	}
	res := e.solve(ctx, base.Model)
	switch res.Status {
	case oracle.Optimal:
		return base.outcome(res), nil
	case oracle.Infeasible:
		return Outcome{}, nil
	}

	return Outcome{}, errors.Wrapf(res.Failure(), "compute %s", goal)
}

// ComputeEJR is ComputeEJRorPJR with target axiom.EJR.
func (e *Engine) ComputeEJR(ctx context.Context, req Request) (Outcome, error) {
	return e.ComputeEJRorPJR(ctx, req, axiom.EJR)
}

// ComputePJR is ComputeEJRorPJR with target axiom.PJR.
func (e *Engine) ComputePJR(ctx context.Context, req Request) (Outcome, error) {
	return e.ComputeEJRorPJR(ctx, req, axiom.PJR)
}

// ComputeEJRorPJR searches for a committee inside req's bounds that satisfies
// target. The base model always carries the cohesiveness constraint.
// Stage 1: solve; infeasible means no committee is left.
// Stage 2: verify the committee with the axiom checker; accept on success.
// Stage 3: exclude that exact committee and go back to Stage 1.
// Every iteration removes one k-subset, so the loop ends after at most
// C(m, k) iterations.
func (e *Engine) ComputeEJRorPJR(ctx context.Context, req Request, target axiom.Kind) (Outcome, error) {
	if target != axiom.EJR && target != axiom.PJR {
		return Outcome{}, fmt.Errorf("%w: %v", ErrInvalidAxiom, target)
	}
	base, err := BuildBase(e.factory, req, CommitteeOfSize, true)
	if err != nil {
		return Outcome{}, err
	}

	var (
		iteration int
		ok        bool
		log       = e.logger.With(zap.Stringer("axiom", target))
	)
	for iteration = 1; ; iteration++ {
		res := e.solve(ctx, base.Model)
		switch res.Status {
		case oracle.Infeasible:
			log.Debug("no committee left", zap.Int("iteration", iteration))

			return Outcome{}, nil
		case oracle.Optimal:
		default:
			return Outcome{}, errors.Wrapf(res.Failure(), "%s refinement %d", target, iteration)
		}

		out := base.outcome(res)
		log.Debug("checking committee",
			zap.Int("iteration", iteration),
			zap.Stringer("committee", out.Committee))
		ok, err = e.satisfies(ctx, req.Matrix, out.Committee, target)
		if err != nil {
			return Outcome{}, err
		}
		if ok {
			return out, nil
		}
		if e.maxRefinements > 0 && iteration >= e.maxRefinements {
			return Outcome{}, fmt.Errorf("%w: %d", ErrRefinementLimit, iteration)
		}
		if err = base.Exclude(out.Committee); err != nil {
			return Outcome{}, err
		}
	}
}

// satisfies runs the axiom check under the per-call deadline.
func (e *Engine) satisfies(ctx context.Context, mx *approval.Matrix, w approval.Committee, kind axiom.Kind) (bool, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	return e.checker.Satisfies(ctx, mx, w, kind)
}
