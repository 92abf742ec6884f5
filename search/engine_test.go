// SPDX-License-Identifier: MIT

package search_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/jrmesh/approval"
	"github.com/katalvlaran/jrmesh/axiom"
	"github.com/katalvlaran/jrmesh/oracle"
	"github.com/katalvlaran/jrmesh/search"
)

func mustRows(t *testing.T, rows [][]int) *approval.Matrix {
	t.Helper()
	mx, err := approval.FromRows(rows)
	require.NoError(t, err)

	return mx
}

// scenarioA: ballots {0,1},{0,1},{2},{2}.
func scenarioA(t *testing.T) *approval.Matrix {
	return mustRows(t, [][]int{{1, 1, 0}, {1, 1, 0}, {0, 0, 1}, {0, 0, 1}})
}

func TestRequest_Validate(t *testing.T) {
	mx := mustRows(t, [][]int{{1, 0, 0}, {1, 0, 0}})
	cases := []struct {
		name string
		req  search.Request
		err  error
	}{
		{"NilMatrix", search.Request{CommitteeSize: 1}, search.ErrNilMatrix},
		{"ZeroK", search.NewRequest(mx, 0), search.ErrCommitteeSize},
		{"KAboveM", search.NewRequest(mx, 4), search.ErrCommitteeSize},
		{"NotEnoughApproved", func() search.Request {
			r := search.NewRequest(mx, 2)
			r.RequireApproved = true
			return r
		}(), search.ErrCommitteeSize},
		{"OK", search.NewRequest(mx, 2), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
			require.ErrorIs(t, err, search.ErrInvalidConfiguration)
		})
	}
}

func TestCompute_Goals(t *testing.T) {
	mx := scenarioA(t)
	eng := search.New()
	ctx := context.Background()
	req := search.NewRequest(mx, 2)

	out, err := eng.Compute(ctx, req, search.CommitteeOfSize, true)
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, 2, out.Objective)
	jr, err := axiom.IsJR(mx, out.Committee)
	require.NoError(t, err)
	assert.True(t, jr, "cohesive model returned %v", out.Committee)
	assert.Equal(t, 4, out.Coverage)

	out, err = eng.Compute(ctx, req, search.CoverageMin, false)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Objective)
	assert.Equal(t, approval.Committee{0, 1}, out.Committee)

	out, err = eng.Compute(ctx, req, search.ApprovalMax, false)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Objective)
	assert.Equal(t, 4, out.Approval)

	out, err = eng.Compute(ctx, req, search.CoreMin, false)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Objective)
	assert.Len(t, out.Committee, 1)
}

func TestCompute_InvertedBoundsInfeasible(t *testing.T) {
	eng := search.New()
	req := search.NewRequest(scenarioA(t), 2).Within(search.Bounds{Lo: 3, Hi: 2}, search.Bounds{Lo: 1, Hi: 8})

	out, err := eng.Compute(context.Background(), req, search.CommitteeOfSize, false)
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.Equal(t, search.Outcome{}, out)
}

func TestCompute_Errors(t *testing.T) {
	eng := search.New()
	ctx := context.Background()

	_, err := eng.Compute(ctx, search.NewRequest(scenarioA(t), 2), search.Goal(42), false)
	require.ErrorIs(t, err, search.ErrInvalidGoal)

	_, err = eng.ComputeEJRorPJR(ctx, search.NewRequest(scenarioA(t), 2), axiom.JR)
	require.ErrorIs(t, err, search.ErrInvalidAxiom)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = eng.Compute(cctx, search.NewRequest(scenarioA(t), 2), search.CommitteeOfSize, false)
	require.ErrorIs(t, err, oracle.ErrSolver)
	require.ErrorIs(t, err, context.Canceled)
}

// erroringModel fails every solve.
type erroringModel struct{ oracle.Model }

func (erroringModel) Solve(context.Context) oracle.Result {
	return oracle.Result{Status: oracle.Error, Err: oracle.ErrSolver}
}

func TestComputeEJRorPJR_SolverErrorStopsLoop(t *testing.T) {
	calls := 0
	eng := search.New(search.WithFactory(func(name string) oracle.Model {
		calls++
		return erroringModel{Model: oracle.NewPB(name)}
	}))

	_, err := eng.ComputeEJR(context.Background(), search.NewRequest(scenarioA(t), 2))
	require.ErrorIs(t, err, oracle.ErrSolver)
	assert.Equal(t, 1, calls)
}

// TestComputeEJRorPJR_RefinesUntilAxiomHolds uses a profile where the
// cohesive committee {2,3} is PJR but not EJR, and the only EJR committees
// contain candidate 0 or 1.
func TestComputeEJRorPJR_RefinesUntilAxiomHolds(t *testing.T) {
	mx := mustRows(t, [][]int{{1, 1, 1, 0}, {1, 1, 0, 1}})
	eng := search.New(search.WithTimeout(time.Minute))
	ctx := context.Background()
	chk := axiom.NewChecker()

	// restrict to approval 2 so that {2,3} (score 2) is the only candidate
	req := search.NewRequest(mx, 2).Within(search.Bounds{Lo: 1, Hi: 2}, search.Bounds{Lo: 2, Hi: 2})
	out, err := eng.ComputePJR(ctx, req)
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, approval.Committee{2, 3}, out.Committee)

	out, err = eng.ComputeEJR(ctx, req)
	require.NoError(t, err)
	assert.False(t, out.Found)

	out, err = eng.ComputeEJR(ctx, search.NewRequest(mx, 2))
	require.NoError(t, err)
	require.True(t, out.Found)
	ok, err := chk.IsEJR(ctx, mx, out.Committee)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestComputeEJRorPJR_RefinementLimit(t *testing.T) {
	mx := mustRows(t, [][]int{{1, 1, 1, 0}, {1, 1, 0, 1}})
	eng := search.New(search.WithMaxRefinements(1))
	// {2,3} is the only committee in the region and it is not EJR
	req := search.NewRequest(mx, 2).Within(search.Bounds{Lo: 1, Hi: 2}, search.Bounds{Lo: 2, Hi: 2})

	_, err := eng.ComputeEJR(context.Background(), req)
	require.ErrorIs(t, err, search.ErrRefinementLimit)
}

// TestComputeEJRorPJR_MatchesBruteForce checks soundness and completeness on
// random small profiles and random regions.
func TestComputeEJRorPJR_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	eng := search.New()
	chk := axiom.NewChecker()
	ctx := context.Background()

	for trial := 0; trial < 12; trial++ {
		n, m := 3+rng.Intn(3), 3+rng.Intn(2)
		rows := make([][]int, n)
		for i := range rows {
			rows[i] = make([]int, m)
			rows[i][rng.Intn(m)] = 1
			for j := range rows[i] {
				if rng.Intn(3) == 0 {
					rows[i][j] = 1
				}
			}
		}
		mx := mustRows(t, rows)
		k := 2
		lo := 1 + rng.Intn(n)
		req := search.NewRequest(mx, k).Within(search.Bounds{Lo: lo, Hi: n}, search.Bounds{Lo: 1, Hi: k * n})

		for _, kind := range []axiom.Kind{axiom.PJR, axiom.EJR} {
			out, err := eng.ComputeEJRorPJR(ctx, req, kind)
			require.NoError(t, err)

			want := false
			for _, w := range subsets(m, k) {
				cov, app, err := mx.Score(w)
				require.NoError(t, err)
				if !req.Coverage.Contains(cov) || !req.Approval.Contains(app) {
					continue
				}
				ok, err := chk.Satisfies(ctx, mx, w, kind)
				require.NoError(t, err)
				if ok {
					want = true
					break
				}
			}
			require.Equalf(t, want, out.Found, "%v rows=%v lo=%d", kind, rows, lo)
			if out.Found {
				ok, err := chk.Satisfies(ctx, mx, out.Committee, kind)
				require.NoError(t, err)
				require.True(t, ok)
				assert.True(t, req.Coverage.Contains(out.Coverage))
			}
		}
	}
}

// bruteCompute enumerates committees directly from rows and returns the
// optimum Compute must report for goal, or found=false.
func bruteCompute(rows [][]int, k int, goal search.Goal, requireJR bool) (best int, found bool) {
	n, m := len(rows), len(rows[0])
	sizes := []int{k}
	if goal == search.CoreMin {
		sizes = sizes[:0]
		for s := 0; s <= k; s++ {
			sizes = append(sizes, s)
		}
	}
	for _, size := range sizes {
		for _, w := range subsets(m, size) {
			in := make([]bool, m)
			for _, c := range w {
				in[c] = true
			}
			covered := make([]bool, n)
			cov, app := 0, 0
			for i, row := range rows {
				for j, a := range row {
					if a == 1 && in[j] {
						app++
						covered[i] = true
					}
				}
				if covered[i] {
					cov++
				}
			}
			if cov < 1 || app < 1 {
				continue
			}
			if requireJR {
				cohesive := true
				for j := 0; j < m; j++ {
					uncovered := 0
					for i, row := range rows {
						if row[j] == 1 && !covered[i] {
							uncovered++
						}
					}
					if uncovered*k >= n {
						cohesive = false
					}
				}
				if !cohesive {
					continue
				}
			}

			var v int
			switch goal {
			case search.CommitteeOfSize, search.CoreMin:
				v = size
			case search.ApprovalMax, search.ApprovalMin:
				v = app
			case search.CoverageMax, search.CoverageMin:
				v = cov
			}
			maximize := goal == search.ApprovalMax || goal == search.CoverageMax
			if !found || (maximize && v > best) || (!maximize && v < best) {
				best, found = v, true
			}
		}
	}

	return best, found
}

// TestCompute_ObjectivesTerminate pins every Goal on small profiles against
// enumeration. The per-call timeout turns a stalled solve into a failure.
func TestCompute_ObjectivesTerminate(t *testing.T) {
	goals := []search.Goal{
		search.CommitteeOfSize, search.CoreMin,
		search.ApprovalMax, search.ApprovalMin,
		search.CoverageMax, search.CoverageMin,
	}
	eng := search.New(search.WithTimeout(10 * time.Second))
	ctx := context.Background()

	check := func(t *testing.T, rows [][]int, k int) {
		t.Helper()
		mx := mustRows(t, rows)
		for _, goal := range goals {
			for _, jr := range []bool{false, true} {
				out, err := eng.Compute(ctx, search.NewRequest(mx, k), goal, jr)
				require.NoErrorf(t, err, "%v jr=%v k=%d rows=%v", goal, jr, k, rows)
				want, found := bruteCompute(rows, k, goal, jr)
				require.Equalf(t, found, out.Found, "%v jr=%v k=%d rows=%v", goal, jr, k, rows)
				if found {
					assert.Equalf(t, want, out.Objective, "%v jr=%v k=%d rows=%v", goal, jr, k, rows)
				}
			}
		}
	}

	t.Run("ApprovalMaxSingleSeat", func(t *testing.T) {
		rows := [][]int{{1, 1, 1}, {0, 0, 1}, {1, 1, 1}, {0, 0, 1}, {0, 1, 0}}
		out, err := eng.Compute(ctx, search.NewRequest(mustRows(t, rows), 1), search.ApprovalMax, false)
		require.NoError(t, err)
		require.True(t, out.Found)
		assert.Equal(t, 4, out.Objective)
		assert.Equal(t, approval.Committee{2}, out.Committee)
		check(t, rows, 1)
	})

	t.Run("Random", func(t *testing.T) {
		rng := rand.New(rand.NewSource(23))
		for trial := 0; trial < 10; trial++ {
			n, m := 3+rng.Intn(4), 3+rng.Intn(3)
			rows := make([][]int, n)
			for i := range rows {
				rows[i] = make([]int, m)
				for j := range rows[i] {
					if rng.Intn(2) == 0 {
						rows[i][j] = 1
					}
				}
			}
			for k := 1; k <= 3 && k <= m; k++ {
				check(t, rows, k)
			}
		}
	})
}

// bareErrorModel reports Error without any detail.
type bareErrorModel struct{ oracle.Model }

func (bareErrorModel) Solve(context.Context) oracle.Result {
	return oracle.Result{Status: oracle.Error}
}

// unknownStatusModel reports a status outside the tri-state.
type unknownStatusModel struct{ oracle.Model }

func (unknownStatusModel) Solve(context.Context) oracle.Result {
	return oracle.Result{Status: oracle.Status(9)}
}

func TestEngine_NonDefiniteResultsAreErrors(t *testing.T) {
	wrappers := map[string]func(oracle.Model) oracle.Model{
		"BareError":     func(m oracle.Model) oracle.Model { return bareErrorModel{Model: m} },
		"UnknownStatus": func(m oracle.Model) oracle.Model { return unknownStatusModel{Model: m} },
	}
	ctx := context.Background()
	for name, wrap := range wrappers {
		t.Run(name, func(t *testing.T) {
			eng := search.New(search.WithFactory(func(label string) oracle.Model {
				return wrap(oracle.NewPB(label))
			}))
			req := search.NewRequest(scenarioA(t), 2)

			out, err := eng.Compute(ctx, req, search.ApprovalMax, false)
			require.ErrorIs(t, err, oracle.ErrSolver)
			assert.False(t, out.Found)

			out, err = eng.ComputeEJRorPJR(ctx, req, axiom.PJR)
			require.ErrorIs(t, err, oracle.ErrSolver)
			assert.False(t, out.Found)

			out, err = eng.ComputePAV(ctx, req, nil)
			require.ErrorIs(t, err, oracle.ErrSolver)
			assert.False(t, out.Found)
		})
	}
}

// subsets lists every k-subset of {0..m-1} in lexicographic order.
func subsets(m, k int) []approval.Committee {
	var (
		out []approval.Committee
		cur approval.Committee
		rec func(start int)
	)
	rec = func(start int) {
		if len(cur) == k {
			out = append(out, append(approval.Committee(nil), cur...))
			return
		}
		for c := start; c < m; c++ {
			cur = append(cur, approval.Candidate(c))
			rec(c + 1)
			cur = cur[:len(cur)-1]
		}
	}
	rec(0)

	return out
}
