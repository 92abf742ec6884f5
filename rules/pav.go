// SPDX-License-Identifier: MIT

package rules

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/jrmesh/mesh"
	"github.com/katalvlaran/jrmesh/search"
)

// SinglePAV marks the cell of one PAV winner found inside the JR region.
type SinglePAV struct{}

// Name implements Strategy.
func (SinglePAV) Name() string { return "single-pav" }

// Compute implements Strategy.
func (s SinglePAV) Compute(ctx context.Context, env *Env, m *mesh.Mesh, symbol rune) error {
	_, _, err := s.Maximize(ctx, env, m, symbol)

	return err
}

// Maximize runs one PAV maximisation over the JR statistics box and marks the
// cell containing the winner's (coverage, approval score), clipped or not.
// It returns the scaled satisfaction (see search.HarmonicScale) and whether
// any committee was found. No JR committee means nothing is marked.
func (s SinglePAV) Maximize(ctx context.Context, env *Env, m *mesh.Mesh, symbol rune) (int, bool, error) {
	if err := env.check(m); err != nil {
		return 0, false, err
	}
	st := env.Stats
	if !st.HasJR {
		return 0, false, nil
	}

	req := search.NewRequest(env.Matrix, env.CommitteeSize).Within(
		search.Bounds{Lo: st.MinJRCov, Hi: st.MaxJRCov},
		search.Bounds{Lo: st.MinJRApp, Hi: st.MaxJRApp},
	)
	out, err := env.Engine.ComputePAV(ctx, req, nil)
	if err != nil {
		return 0, false, errors.Wrap(err, s.Name())
	}
	if !out.Found {
		return 0, false, nil
	}
	env.logger().Debug("pav winner",
		zap.Stringer("committee", out.Committee),
		zap.Int("satisfaction", out.Objective),
		zap.Int("coverage", out.Coverage),
		zap.Int("approval", out.Approval))
	if err = m.SetValueAt(out.Coverage, out.Approval, symbol); err != nil {
		return 0, false, err
	}

	return out.Objective, true, nil
}

// PAV marks every JR-region cell holding a committee with the maximal PAV
// satisfaction.
type PAV struct{}

// Name implements Strategy.
func (PAV) Name() string { return "pav" }

// Compute implements Strategy.
func (s PAV) Compute(ctx context.Context, env *Env, m *mesh.Mesh, symbol rune) error {
	if err := env.check(m); err != nil {
		return err
	}
	env.clipToJR(m)

	level, ok, err := SinglePAV{}.Maximize(ctx, env, m, symbol)
	if err != nil || !ok {
		return err
	}

	return env.paint(ctx, m, fmt.Sprintf("%s@%d", s.Name(), level), symbol,
		func(ctx context.Context, req search.Request) (search.Outcome, error) {
			return env.Engine.ComputePAV(ctx, req, &level)
		})
}
