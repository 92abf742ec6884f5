// SPDX-License-Identifier: MIT

package rules

import (
	"context"

	"github.com/katalvlaran/jrmesh/axiom"
	"github.com/katalvlaran/jrmesh/mesh"
	"github.com/katalvlaran/jrmesh/search"
)

// Strategy paints m for one rule.
type Strategy interface {
	Name() string
	Compute(ctx context.Context, env *Env, m *mesh.Mesh, symbol rune) error
}

// JRCommittee marks cells with a size-k committee satisfying the
// cohesiveness constraint.
type JRCommittee struct{}

// Name implements Strategy.
func (JRCommittee) Name() string { return "jr" }

// Compute implements Strategy.
func (s JRCommittee) Compute(ctx context.Context, env *Env, m *mesh.Mesh, symbol rune) error {
	if err := env.check(m); err != nil {
		return err
	}
	env.clipToJR(m)

	return env.paint(ctx, m, s.Name(), symbol, func(ctx context.Context, req search.Request) (search.Outcome, error) {
		return env.Engine.Compute(ctx, req, search.CommitteeOfSize, true)
	})
}

// PJRCommittee marks cells holding a committee that satisfies PJR.
type PJRCommittee struct{}

// Name implements Strategy.
func (PJRCommittee) Name() string { return "pjr" }

// Compute implements Strategy.
func (s PJRCommittee) Compute(ctx context.Context, env *Env, m *mesh.Mesh, symbol rune) error {
	return refine(ctx, env, m, s.Name(), symbol, axiom.PJR)
}

// EJRCommittee marks cells holding a committee that satisfies EJR.
type EJRCommittee struct{}

// Name implements Strategy.
func (EJRCommittee) Name() string { return "ejr" }

// Compute implements Strategy.
func (s EJRCommittee) Compute(ctx context.Context, env *Env, m *mesh.Mesh, symbol rune) error {
	return refine(ctx, env, m, s.Name(), symbol, axiom.EJR)
}

func refine(ctx context.Context, env *Env, m *mesh.Mesh, name string, symbol rune, target axiom.Kind) error {
	if err := env.check(m); err != nil {
		return err
	}
	env.clipToJR(m)

	return env.paint(ctx, m, name, symbol, func(ctx context.Context, req search.Request) (search.Outcome, error) {
		return env.Engine.ComputeEJRorPJR(ctx, req, target)
	})
}

// AnyCommittee marks cells holding any size-k committee.
type AnyCommittee struct{}

// Name implements Strategy.
func (AnyCommittee) Name() string { return "any" }

// Compute implements Strategy.
func (s AnyCommittee) Compute(ctx context.Context, env *Env, m *mesh.Mesh, symbol rune) error {
	if err := env.check(m); err != nil {
		return err
	}
	st := env.Stats
	m.ClipByValues(st.MinCov, st.MaxCov, st.MinApp, st.MaxApp)

	return env.paint(ctx, m, s.Name(), symbol, func(ctx context.Context, req search.Request) (search.Outcome, error) {
		return env.Engine.Compute(ctx, req, search.ApprovalMax, false)
	})
}

// MaxApprovalCommittee marks cells holding a committee of maximal approval
// score.
type MaxApprovalCommittee struct{}

// Name implements Strategy.
func (MaxApprovalCommittee) Name() string { return "max-approval" }

// Compute implements Strategy.
func (s MaxApprovalCommittee) Compute(ctx context.Context, env *Env, m *mesh.Mesh, symbol rune) error {
	if err := env.check(m); err != nil {
		return err
	}
	st := env.Stats
	m.ClipByValues(st.MinCov, st.MaxCov, st.MaxApp, st.MaxApp)

	return env.paint(ctx, m, s.Name(), symbol, func(ctx context.Context, req search.Request) (search.Outcome, error) {
		return env.Engine.Compute(ctx, req, search.CoverageMax, false)
	})
}

// ChamberlinCourant marks cells holding a committee of maximal coverage.
type ChamberlinCourant struct{}

// Name implements Strategy.
func (ChamberlinCourant) Name() string { return "cc" }

// Compute implements Strategy.
func (s ChamberlinCourant) Compute(ctx context.Context, env *Env, m *mesh.Mesh, symbol rune) error {
	if err := env.check(m); err != nil {
		return err
	}
	st := env.Stats
	m.ClipByValues(st.MaxCov, st.MaxCov, st.MinApp, st.MaxApp)

	return env.paint(ctx, m, s.Name(), symbol, func(ctx context.Context, req search.Request) (search.Outcome, error) {
		return env.Engine.Compute(ctx, req, search.CommitteeOfSize, false)
	})
}
