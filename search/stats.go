// SPDX-License-Identifier: MIT

package search

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/jrmesh/approval"
)

// Stats are the coverage and approval extremes over all committees of size k,
// and over the JR committees only.
type Stats struct {
	MinCov, MaxCov int
	MinApp, MaxApp int

	// HasJR is false when no committee satisfies the cohesiveness constraint;
	// the JR fields are zero then.
	HasJR              bool
	MinJRCov, MaxJRCov int
	MinJRApp, MaxJRApp int
}

// ComputeStats solves the eight extreme queries concurrently, one model per
// query.
func (e *Engine) ComputeStats(ctx context.Context, mx *approval.Matrix, k int) (Stats, error) {
	req := NewRequest(mx, k)
	if err := req.Validate(); err != nil {
		return Stats{}, err
	}

	type query struct {
		goal      Goal
		requireJR bool
		dst       *int
	}
	var (
		st      Stats
		found   [8]bool
		queries = [8]query{
			{CoverageMin, false, &st.MinCov},
			{CoverageMax, false, &st.MaxCov},
			{ApprovalMin, false, &st.MinApp},
			{ApprovalMax, false, &st.MaxApp},
			{CoverageMin, true, &st.MinJRCov},
			{CoverageMax, true, &st.MaxJRCov},
			{ApprovalMin, true, &st.MinJRApp},
			{ApprovalMax, true, &st.MaxJRApp},
		}
	)

	g, gctx := errgroup.WithContext(ctx)
	for q := range queries {
		q := q
		g.Go(func() error {
			out, err := e.Compute(gctx, req, queries[q].goal, queries[q].requireJR)
			if err != nil {
				return err
			}
			found[q] = out.Found
			*queries[q].dst = out.Objective

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	if !found[0] {
		return Stats{}, ErrNoCommittee
	}
	st.HasJR = found[4]
	if !st.HasJR {
		st.MinJRCov, st.MaxJRCov, st.MinJRApp, st.MaxJRApp = 0, 0, 0, 0
	}
	e.logger.Debug("profile stats",
		zap.Int("k", k),
		zap.Int("minCov", st.MinCov), zap.Int("maxCov", st.MaxCov),
		zap.Int("minApp", st.MinApp), zap.Int("maxApp", st.MaxApp),
		zap.Bool("hasJR", st.HasJR))

	return st, nil
}
