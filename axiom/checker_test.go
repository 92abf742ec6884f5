// SPDX-License-Identifier: MIT

package axiom_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/jrmesh/approval"
	"github.com/katalvlaran/jrmesh/axiom"
	"github.com/katalvlaran/jrmesh/oracle"
)

// mustRows builds a matrix or fails the test.
func mustRows(t *testing.T, rows [][]int) *approval.Matrix {
	t.Helper()
	mx, err := approval.FromRows(rows)
	require.NoError(t, err)

	return mx
}

// TestIsJR_ScenarioA pins the n/k boundary: two uncovered voters sharing a
// candidate with n/k = 2 is a violation (2 is not strictly below 2).
func TestIsJR_ScenarioA(t *testing.T) {
	mx := mustRows(t, [][]int{
		{1, 1, 0},
		{1, 1, 0},
		{0, 0, 1},
		{0, 0, 1},
	})

	ok, err := axiom.IsJR(mx, approval.Committee{0, 1})
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = axiom.IsJR(mx, approval.Committee{0, 2})
	require.NoError(t, err)
	require.True(t, ok)

	col, cnt := axiom.MostPopular(mx, []int{2, 3})
	require.Equal(t, 2, col)
	require.Equal(t, 2, cnt)
}

func TestIsJR_Errors(t *testing.T) {
	mx := mustRows(t, [][]int{{1, 0}})
	_, err := axiom.IsJR(mx, nil)
	require.ErrorIs(t, err, axiom.ErrEmptyCommittee)
	_, err = axiom.IsJR(mx, approval.Committee{0, 0})
	require.ErrorIs(t, err, axiom.ErrDuplicateMember)
	_, err = axiom.IsJR(mx, approval.Committee{5})
	require.ErrorIs(t, err, approval.ErrUnknownCandidate)
}

// TestCheck_Triples covers each reachable triple.
func TestCheck_Triples(t *testing.T) {
	cases := []struct {
		name string
		rows [][]int
		w    approval.Committee
		want axiom.Result
	}{
		{
			name: "AllHold",
			rows: [][]int{{1, 1, 0}, {1, 1, 0}, {0, 0, 1}, {0, 0, 1}},
			w:    approval.Committee{0, 2},
			want: axiom.Result{JR: true, EJR: true, PJR: true},
		},
		{
			name: "JRFails",
			rows: [][]int{{1, 1, 0}, {1, 1, 0}, {0, 0, 1}, {0, 0, 1}},
			w:    approval.Committee{0, 1},
			want: axiom.Result{},
		},
		{
			// both voters share {0,1}; each gets one of {2,3}
			name: "PJRButNotEJR",
			rows: [][]int{{1, 1, 1, 0}, {1, 1, 0, 1}},
			w:    approval.Committee{2, 3},
			want: axiom.Result{JR: true, PJR: true},
		},
		{
			// the group {v0,v1} deserves two of {0,1} but gets one
			name: "OnlyJR",
			rows: [][]int{{1, 1, 0}, {1, 1, 0}},
			w:    approval.Committee{0, 2},
			want: axiom.Result{JR: true},
		},
	}
	chk := axiom.NewChecker()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := chk.Check(context.Background(), mustRows(t, tc.rows), tc.w)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// TestWitness_ReportsGroup reads the cohesive group back from the oracle.
func TestWitness_ReportsGroup(t *testing.T) {
	mx := mustRows(t, [][]int{{1, 1, 1, 0}, {1, 1, 0, 1}})
	chk := axiom.NewChecker()

	v, err := chk.Witness(context.Background(), mx, approval.Committee{2, 3}, axiom.EJR)
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, 2, v.Ell)
	require.Equal(t, []approval.VoterID{0, 1}, v.Voters)
	require.Equal(t, approval.Committee{0, 1}, v.Candidates)

	v, err = chk.Witness(context.Background(), mx, approval.Committee{2, 3}, axiom.PJR)
	require.NoError(t, err)
	require.Nil(t, v)

	jr := mustRows(t, [][]int{{1, 1, 0}, {1, 1, 0}, {0, 0, 1}, {0, 0, 1}})
	v, err = chk.Witness(context.Background(), jr, approval.Committee{0, 1}, axiom.JR)
	require.NoError(t, err)
	require.Equal(t, approval.Committee{2}, v.Candidates)
	require.Equal(t, []approval.VoterID{2, 3}, v.Voters)

	_, err = chk.Witness(context.Background(), jr, approval.Committee{0, 1}, axiom.Kind(9))
	require.ErrorIs(t, err, axiom.ErrUnknownKind)
}

// failingModel reports a backend error on every solve.
type failingModel struct{ oracle.Model }

func (failingModel) Solve(context.Context) oracle.Result {
	return oracle.Result{Status: oracle.Error, Err: oracle.ErrSolver}
}

// TestCheck_SolverErrorPropagates ensures a backend failure is not read as
// an axiom failure.
func TestCheck_SolverErrorPropagates(t *testing.T) {
	chk := axiom.NewChecker(axiom.WithFactory(func(name string) oracle.Model {
		return failingModel{Model: oracle.NewPB(name)}
	}))
	mx := mustRows(t, [][]int{{1, 0}, {0, 1}})

	_, err := chk.IsEJR(context.Background(), mx, approval.Committee{0, 1})
	require.True(t, errors.Is(err, oracle.ErrSolver))

	res, err := chk.Check(context.Background(), mx, approval.Committee{0, 1})
	require.ErrorIs(t, err, oracle.ErrSolver)
	require.Equal(t, axiom.Result{}, res)
}

// detaillessModel reports the given status with a nil Err on every solve.
type detaillessModel struct {
	oracle.Model
	status oracle.Status
}

func (m detaillessModel) Solve(context.Context) oracle.Result {
	return oracle.Result{Status: m.status}
}

// TestCheck_DetaillessFailureIsError ensures an Error result without detail,
// or a status outside the tri-state, never reads as a satisfied axiom.
func TestCheck_DetaillessFailureIsError(t *testing.T) {
	mx := mustRows(t, [][]int{{1, 0}, {0, 1}})
	for _, status := range []oracle.Status{oracle.Error, oracle.Status(9)} {
		t.Run(status.String(), func(t *testing.T) {
			chk := axiom.NewChecker(axiom.WithFactory(func(name string) oracle.Model {
				return detaillessModel{Model: oracle.NewPB(name), status: status}
			}))

			ok, err := chk.IsEJR(context.Background(), mx, approval.Committee{0, 1})
			require.ErrorIs(t, err, oracle.ErrSolver)
			require.False(t, ok)

			ok, err = chk.IsPJR(context.Background(), mx, approval.Committee{0, 1})
			require.ErrorIs(t, err, oracle.ErrSolver)
			require.False(t, ok)
		})
	}
}

// TestAxioms_MonotoneAndMatchBruteForce samples small random profiles and
// checks EJR ⇒ PJR ⇒ JR together with agreement against exhaustive search.
func TestAxioms_MonotoneAndMatchBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	chk := axiom.NewChecker()
	ctx := context.Background()

	for trial := 0; trial < 30; trial++ {
		n, m := 2+rng.Intn(4), 3+rng.Intn(2)
		rows := make([][]int, n)
		for i := range rows {
			rows[i] = make([]int, m)
			for j := range rows[i] {
				if rng.Intn(2) == 0 {
					rows[i][j] = 1
				}
			}
		}
		k := 1 + rng.Intn(2)
		perm := rng.Perm(m)[:k]
		w := make(approval.Committee, k)
		cols := make([]int, k)
		for t2, j := range perm {
			w[t2] = approval.Candidate(j)
			cols[t2] = j
		}
		mx := mustRows(t, rows)

		jr, err := axiom.IsJR(mx, w)
		require.NoError(t, err)
		pjr, err := chk.IsPJR(ctx, mx, w)
		require.NoError(t, err)
		ejr, err := chk.IsEJR(ctx, mx, w)
		require.NoError(t, err)

		require.Falsef(t, ejr && !pjr, "EJR without PJR: rows=%v w=%v", rows, w)
		require.Falsef(t, pjr && !jr, "PJR without JR: rows=%v w=%v", rows, w)
		require.Equalf(t, bruteSatisfies(rows, cols, axiom.PJR), pjr, "PJR rows=%v w=%v", rows, w)
		require.Equalf(t, bruteSatisfies(rows, cols, axiom.EJR), ejr, "EJR rows=%v w=%v", rows, w)
		require.Equalf(t, bruteSatisfies(rows, cols, axiom.JR), jr, "JR rows=%v w=%v", rows, w)
	}
}

// bruteSatisfies checks the axiom by enumerating every voter group and every
// set of ell commonly approved candidates.
func bruteSatisfies(rows [][]int, cols []int, kind axiom.Kind) bool {
	n, m, k := len(rows), len(rows[0]), len(cols)
	maxEll := k
	if kind == axiom.JR {
		maxEll = 1
	}
	for ell := 1; ell <= maxEll; ell++ {
		size := (ell*n + k - 1) / k
		for mask := 0; mask < 1<<n; mask++ {
			if popcount(mask) != size {
				continue
			}
			common := 0
			for j := 0; j < m; j++ {
				all := true
				for i := 0; i < n; i++ {
					if mask&(1<<i) != 0 && rows[i][j] == 0 {
						all = false
						break
					}
				}
				if all {
					common++
				}
			}
			if common < ell {
				continue
			}
			if underRepresented(rows, cols, mask, ell, kind) {
				return false
			}
		}
	}

	return true
}

func underRepresented(rows [][]int, cols []int, mask, ell int, kind axiom.Kind) bool {
	switch kind {
	case axiom.PJR, axiom.JR:
		covered := 0
		for _, j := range cols {
			for i := range rows {
				if mask&(1<<i) != 0 && rows[i][j] == 1 {
					covered++
					break
				}
			}
		}
		return covered < ell
	default:
		for i := range rows {
			if mask&(1<<i) == 0 {
				continue
			}
			got := 0
			for _, j := range cols {
				got += rows[i][j]
			}
			if got >= ell {
				return false
			}
		}
		return true
	}
}

func popcount(x int) int {
	c := 0
	for ; x != 0; x &= x - 1 {
		c++
	}

	return c
}
